package pipeline

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	webp "github.com/chai2010/webp"
	"github.com/gen2brain/avif"
	"github.com/rs/zerolog/log"
)

// DefaultJPEGQuality is the quality used when writing resized JPEGs.
const DefaultJPEGQuality = 90

// DefaultWebPQuality is the quality used for lossy WebP encoding.
const DefaultWebPQuality = 80

// DefaultAVIFQuality is the quality used for AVIF encoding.
const DefaultAVIFQuality = 60

// DefaultAVIFSpeed is the encoder speed used for AVIF encoding.
const DefaultAVIFSpeed = 6

// Encode writes img to w in the format named by ext (with or without the
// leading dot). The format of the destination file name decides the output
// format so a resized copy keeps the original's type.
func Encode(w io.Writer, img image.Image, ext string, quality int) error {
	if img == nil {
		return ErrEncode
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}

	c := &countingWriter{w: w}
	format := strings.ToLower(strings.TrimPrefix(ext, "."))

	var err error
	switch format {
	case "jpg", "jpeg":
		err = jpeg.Encode(c, img, &jpeg.Options{Quality: quality})
	case "png":
		err = png.Encode(c, img)
	case "gif":
		err = gif.Encode(c, img, nil)
	case "webp":
		err = webp.Encode(c, img, &webp.Options{Quality: float32(DefaultWebPQuality)})
	case "avif":
		err = avif.Encode(c, img, avif.Options{Quality: DefaultAVIFQuality, QualityAlpha: DefaultAVIFQuality, Speed: DefaultAVIFSpeed})
	default:
		return ErrUnsupportedFormat
	}
	if err != nil {
		return err
	}

	log.Debug().Str("format", format).Int64("size", c.n).Msg("image encoded")
	return nil
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	m, err := c.w.Write(p)
	c.n += int64(m)
	return m, err
}
