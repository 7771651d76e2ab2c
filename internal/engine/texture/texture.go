// Package texture decodes image files into RGBA pixel data ready for upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Image is tightly packed RGBA pixel data with the first row at the bottom,
// matching OpenGL's texture origin.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Load reads and decodes an image file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes BMP, PNG, JPEG or TGA data. TGA has no magic number, so
// it is selected by the file extension of name.
func Decode(data []byte, name string) (*Image, error) {
	var (
		src image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		src, err = DecodeTGA(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	return FromImage(src), nil
}

// FromImage converts any image to bottom-up RGBA.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return &Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    flipRows(rgba),
	}
}

func flipRows(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	rowSize := w * 4
	out := make([]byte, rowSize*h)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		copy(out[(h-1-y)*rowSize:], src)
	}
	return out
}

// At returns the pixel at (x, y) with y counted from the bottom row.
func (i *Image) At(x, y int) (r, g, b, a uint8) {
	o := (y*i.Width + x) * 4
	return i.Pix[o], i.Pix[o+1], i.Pix[o+2], i.Pix[o+3]
}
