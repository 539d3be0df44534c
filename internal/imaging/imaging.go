// Package imaging shrinks photos before they are attached to a multipart
// probe, so the upload stays small enough for the hook to accept.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"os"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxSide = 1024
	Quality = 85
)

// Upload is a re-encoded JPEG ready to attach.
type Upload struct {
	Data     []byte
	Format   string // format of the decoded source
	Original image.Point
	Resized  image.Point
}

// Fit returns the largest size within max×max that keeps the w:h ratio.
// Sizes already inside the bound are returned unchanged.
func Fit(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		return max, atLeastOne(math.Round(float64(h) * float64(max) / float64(w)))
	}
	return atLeastOne(math.Round(float64(w) * float64(max) / float64(h))), max
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

// Thumbnail scales src down to fit max×max on a white background. It
// never enlarges; JPEG has no alpha, so transparent areas end up white
// whether or not src was resized.
func Thumbnail(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), max)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// PrepareUpload decodes r, bounds it to MaxSide and re-encodes it as JPEG
// at Quality.
func PrepareUpload(r io.Reader) (Upload, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return Upload{}, fmt.Errorf("decode image: %w", err)
	}
	thumb := Thumbnail(src, MaxSide)
	data, err := EncodeJPEG(thumb, Quality)
	if err != nil {
		return Upload{}, err
	}
	return Upload{
		Data:     data,
		Format:   format,
		Original: src.Bounds().Size(),
		Resized:  thumb.Bounds().Size(),
	}, nil
}

func PrepareFile(path string) (Upload, error) {
	f, err := os.Open(path)
	if err != nil {
		return Upload{}, err
	}
	defer f.Close()
	return PrepareUpload(f)
}
