package pipeline

import "errors"

var (
	ErrNotAnImage        = errors.New("file is not a supported image")
	ErrTooLarge          = errors.New("image exceeds size limit")
	ErrInvalidDimensions = errors.New("image dimensions out of range")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrDecode            = errors.New("decode image")
	ErrEncode            = errors.New("encode image")
)

// MaxDimension bounds the width and height of a source image.
const MaxDimension = 12000

// MaxSourceBytes bounds the size of a source file read into memory.
const MaxSourceBytes int64 = 64 << 20
