package pipeline

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	webp "github.com/chai2010/webp"
	"github.com/gen2brain/avif"
)

// DetectFormat returns the MIME type of the image held in data. AVIF is not
// known to http.DetectContentType so its ftyp brand is checked first.
func DetectFormat(data []byte) string {
	if isAVIF(data) {
		return "image/avif"
	}
	return http.DetectContentType(data)
}

func isAVIF(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	brand := string(data[8:12])
	return brand == "avif" || brand == "avis"
}

// ReadSource reads up to maxBytes from r.
func ReadSource(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// Decode detects the format of data, decodes it and validates its dimensions.
// It returns the decoded image and the detected MIME type.
func Decode(data []byte) (image.Image, string, error) {
	ct := DetectFormat(data)

	var img image.Image
	var err error

	switch {
	case strings.HasPrefix(ct, "image/jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(data))
	case strings.HasPrefix(ct, "image/png"):
		img, err = png.Decode(bytes.NewReader(data))
	case strings.HasPrefix(ct, "image/gif"):
		img, err = gif.Decode(bytes.NewReader(data))
	case strings.HasPrefix(ct, "image/webp"):
		img, err = webp.Decode(bytes.NewReader(data))
	case ct == "image/avif":
		img, err = avif.Decode(bytes.NewReader(data))
	default:
		return nil, ct, ErrNotAnImage
	}
	if err != nil {
		return nil, ct, err
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		return nil, ct, ErrInvalidDimensions
	}

	return img, ct, nil
}
