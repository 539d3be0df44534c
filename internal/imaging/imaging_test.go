package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func TestFit(t *testing.T) {
	cases := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{4032, 3024, 1024, 1024, 768},
		{3024, 4032, 1024, 768, 1024},
		{2000, 2000, 1024, 1024, 1024},
		{800, 600, 1024, 800, 600},
		{5000, 2, 1024, 1024, 1},
	}
	for _, c := range cases {
		w, h := Fit(c.w, c.h, c.max)
		if w != c.wantW || h != c.wantH {
			t.Fatalf("Fit(%d,%d,%d)=%dx%d want %dx%d", c.w, c.h, c.max, w, h, c.wantW, c.wantH)
		}
	}
}

func TestThumbnail_BoundsAndAspect(t *testing.T) {
	src := gradient(2048, 1536)
	thumb := Thumbnail(src, MaxSide)
	got := thumb.Bounds().Size()
	if got.X > MaxSide || got.Y > MaxSide {
		t.Fatalf("thumbnail %v exceeds bound", got)
	}
	if got.X != 1024 || got.Y != 768 {
		t.Fatalf("aspect not preserved: %v", got)
	}
}

func TestThumbnail_NeverEnlarges(t *testing.T) {
	src := gradient(300, 200)
	thumb := Thumbnail(src, MaxSide)
	if got := thumb.Bounds().Size(); got != image.Pt(300, 200) {
		t.Fatalf("small image resized to %v", got)
	}
	if r, g, b, _ := thumb.At(10, 20).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 128 {
		t.Fatalf("small image pixels changed: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestThumbnail_TransparentBecomesWhite(t *testing.T) {
	for _, side := range []int{200, 2000} {
		src := image.NewNRGBA(image.Rect(0, 0, side, side))
		data, err := EncodeJPEG(Thumbnail(src, MaxSide), Quality)
		if err != nil {
			t.Fatalf("%d: encode: %v", side, err)
		}
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%d: decode: %v", side, err)
		}
		r, g, b, _ := img.At(5, 5).RGBA()
		if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
			t.Fatalf("%d: transparent pixel came out rgb=(%d,%d,%d)", side, r>>8, g>>8, b>>8)
		}
	}
}

func TestPrepareUpload_DeterministicSize(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(1600, 1200)); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	raw := buf.Bytes()

	first, err := PrepareUpload(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("PrepareUpload: %v", err)
	}
	second, err := PrepareUpload(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("PrepareUpload again: %v", err)
	}
	if len(first.Data) != len(second.Data) {
		t.Fatalf("re-encoding not size stable: %d vs %d", len(first.Data), len(second.Data))
	}
	if first.Format != "png" || first.Original != image.Pt(1600, 1200) || first.Resized != image.Pt(1024, 768) {
		t.Fatalf("unexpected metadata: %+v", first)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(first.Data))
	if err != nil {
		t.Fatalf("output is not a jpeg: %v", err)
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Fatalf("decoded jpeg is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestPrepareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "IMG_0001.JPG")
	data, err := EncodeJPEG(gradient(640, 480), 90)
	if err != nil {
		t.Fatalf("EncodeJPEG: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	up, err := PrepareFile(path)
	if err != nil {
		t.Fatalf("PrepareFile: %v", err)
	}
	if up.Resized != image.Pt(640, 480) || up.Format != "jpeg" {
		t.Fatalf("unexpected upload: %+v", up)
	}

	if _, err := PrepareFile(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := PrepareUpload(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatalf("expected decode error")
	}
}
