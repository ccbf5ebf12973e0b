package pipeline_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GravityPDF/gravity-pdf-images/internal/pipeline"
	"github.com/GravityPDF/gravity-pdf-images/internal/testutil"
)

func TestFileCodecResize_JPEG(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteJPEG(t, dir, "photo.jpg", 2400, 1200)
	dst := filepath.Join(dir, "photo-resized-abc123.jpg")

	if err := pipeline.NewFileCodec().Resize(src, dst, 1000); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	w, h := testutil.ImageSize(t, dst)
	if w != 1000 || h != 500 {
		t.Fatalf("expected 1000x500, got %dx%d", w, h)
	}
	if w, h := testutil.ImageSize(t, src); w != 2400 || h != 1200 {
		t.Fatalf("source must be left untouched, got %dx%d", w, h)
	}
}

func TestFileCodecResize_PNGKeepsFormat(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WritePNG(t, dir, "diagram.png", 1200, 1800)
	dst := filepath.Join(dir, "out", "diagram-resized.png")

	if err := pipeline.NewFileCodec().Resize(src, dst, 1000); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if ct := pipeline.DetectFormat(data); ct != "image/png" {
		t.Fatalf("expected png output, got %s", ct)
	}
	if w, h := testutil.ImageSize(t, dst); w != 667 || h != 1000 {
		t.Fatalf("expected 667x1000, got %dx%d", w, h)
	}
}

func TestFileCodecResize_SmallImageCopied(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteJPEG(t, dir, "small.jpg", 300, 200)
	dst := filepath.Join(dir, "small-resized.jpg")

	if err := pipeline.NewFileCodec().Resize(src, dst, 1000); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := testutil.ImageSize(t, dst); w != 300 || h != 200 {
		t.Fatalf("expected 300x200, got %dx%d", w, h)
	}
}

func TestFileCodecResize_Errors(t *testing.T) {
	dir := t.TempDir()
	codec := pipeline.NewFileCodec()

	if err := codec.Resize(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg"), 1000); err == nil {
		t.Fatalf("expected error for missing source")
	}

	text := testutil.WriteFile(t, dir, "fake.jpg", []byte("plain text"))
	if err := codec.Resize(text, filepath.Join(dir, "fake-out.jpg"), 1000); !errors.Is(err, pipeline.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}

	src := testutil.WriteJPEG(t, dir, "ok.jpg", 20, 20)
	if err := codec.Resize(src, filepath.Join(dir, "ok.bmp"), 1000); !errors.Is(err, pipeline.ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fake-out.jpg")); !os.IsNotExist(err) {
		t.Fatalf("no output expected after decode failure")
	}
}

func TestFileCodecResize_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteJPEG(t, dir, "photo.jpg", 50, 50)
	blocker := testutil.WriteFile(t, dir, "blocker", []byte("x"))

	err := pipeline.NewFileCodec().Resize(src, filepath.Join(blocker, "photo-resized.jpg"), 1000)
	if err == nil {
		t.Fatalf("expected error when destination directory is a file")
	}
}
