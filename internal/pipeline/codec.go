package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GravityPDF/gravity-pdf-images/internal/storage"
)

// FileCodec resizes image files on disk.
type FileCodec struct {
	Quality  int
	MaxBytes int64
}

// NewFileCodec returns a FileCodec with default JPEG quality and source limit.
func NewFileCodec() *FileCodec {
	return &FileCodec{Quality: DefaultJPEGQuality, MaxBytes: MaxSourceBytes}
}

// Resize reads src, applies its EXIF orientation, fits it inside a
// constraint x constraint box and atomically writes the result to dst in the
// format implied by dst's extension.
func (c *FileCodec) Resize(src, dst string, constraint int) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	maxBytes := c.MaxBytes
	if maxBytes <= 0 {
		maxBytes = MaxSourceBytes
	}
	data, err := ReadSource(f, maxBytes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	img, _, err := Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	img = AutoOrient(img, data)
	img = Fit(img, constraint)

	var buf bytes.Buffer
	if err := Encode(&buf, img, filepath.Ext(dst), c.Quality); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := storage.AtomicWrite(dst, &buf); err != nil {
		return fmt.Errorf("save %s: %w", dst, err)
	}
	return nil
}
