package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	webp "github.com/chai2010/webp"
	"github.com/gen2brain/avif"
)

func encodeJPEG(w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 80})
}

func encodePNG(w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	return png.Encode(w, img)
}

func TestDecodeFormats(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	encoders := map[string]func(io.Writer) error{
		"image/jpeg": encodeJPEG,
		"image/png":  encodePNG,
		"image/gif": func(w io.Writer) error {
			return gif.Encode(w, src, nil)
		},
		"image/webp": func(w io.Writer) error {
			return webp.Encode(w, src, &webp.Options{Quality: 80})
		},
		"image/avif": func(w io.Writer) error {
			return avif.Encode(w, src, avif.Options{Quality: 60, Speed: 6})
		},
	}

	for want, enc := range encoders {
		var b bytes.Buffer
		if err := enc(&b); err != nil {
			t.Fatalf("%s: encode: %v", want, err)
		}
		img, ct, err := Decode(b.Bytes())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", want, err)
		}
		if img == nil {
			t.Fatalf("%s: expected image, got nil", want)
		}
		if ct != want {
			t.Fatalf("expected %s, got %s", want, ct)
		}
	}
}

func TestRejectText(t *testing.T) {
	_, _, err := Decode([]byte("this is not an image"))
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestReadSourceTooLarge(t *testing.T) {
	data := bytes.Repeat([]byte{'a'}, 1024*10)
	if _, err := ReadSource(bytes.NewReader(data), 1024); err != ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	got, err := ReadSource(bytes.NewReader(data), int64(len(data)))
	if err != nil || len(got) != len(data) {
		t.Fatalf("expected full read at limit, got %d bytes err=%v", len(got), err)
	}
}

func TestRejectInvalidDimensions(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, MaxDimension+1, 1))
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Decode(b.Bytes()); err != ErrInvalidDimensions {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}
