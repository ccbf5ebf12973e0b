package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	webp "github.com/chai2010/webp"
	"github.com/gen2brain/avif"
)

func smallTestImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	// put a red dot to avoid fully blank image optimizations
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	return img
}

func TestEncode_KeepsFormat(t *testing.T) {
	cases := map[string]string{
		".jpg":  "image/jpeg",
		"JPEG":  "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".avif": "image/avif",
	}
	for ext, want := range cases {
		var buf bytes.Buffer
		if err := Encode(&buf, smallTestImage(), ext, 0); err != nil {
			t.Fatalf("%s: encode failed: %v", ext, err)
		}
		if got := DetectFormat(buf.Bytes()); got != want {
			t.Fatalf("%s: expected %s, got %s", ext, want, got)
		}
	}
}

func TestEncode_Decodable(t *testing.T) {
	var wb, ab bytes.Buffer
	if err := Encode(&wb, smallTestImage(), "webp", 0); err != nil {
		t.Fatalf("encode webp: %v", err)
	}
	if _, err := webp.Decode(bytes.NewReader(wb.Bytes())); err != nil {
		t.Fatalf("decoded webp failed: %v", err)
	}
	if err := Encode(&ab, smallTestImage(), "avif", 0); err != nil {
		t.Fatalf("encode avif: %v", err)
	}
	if _, err := avif.Decode(bytes.NewReader(ab.Bytes())); err != nil {
		t.Fatalf("decoded avif failed: %v", err)
	}
}

func TestEncode_QualityAffectsSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), uint8((x ^ y) * 4), 255})
		}
	}
	var low, high bytes.Buffer
	if err := Encode(&low, img, ".jpg", 20); err != nil {
		t.Fatalf("encode low quality failed: %v", err)
	}
	if err := Encode(&high, img, ".jpg", 95); err != nil {
		t.Fatalf("encode high quality failed: %v", err)
	}
	if low.Len() >= high.Len() {
		t.Fatalf("expected low quality size < high quality size, got %d >= %d", low.Len(), high.Len())
	}
}

func TestEncode_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, smallTestImage(), ".bmp", 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := Encode(&buf, nil, ".png", 0); !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode for nil image, got %v", err)
	}
}

type badWriter struct{}

func (badWriter) Write(p []byte) (int, error) { return 0, fmt.Errorf("closed writer") }

func TestEncode_ClosedWriter(t *testing.T) {
	if err := Encode(badWriter{}, smallTestImage(), ".png", 0); err == nil {
		t.Fatalf("expected error when writing to closed writer")
	}
}
