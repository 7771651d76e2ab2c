package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

// testImage is 2x2: top row red, green; bottom row blue, white.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

// tgaHeader builds a true-color TGA header.
func tgaHeader(imageType byte, w, h int, bpp byte, topToBottom bool) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topToBottom {
		hdr[17] = 0x20
	}
	return hdr
}

// assertFlipped checks that testImage came out with its bottom row first.
func assertFlipped(t *testing.T, img *Image) {
	t.Helper()
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
	if len(img.Pix) != 16 {
		t.Fatalf("len(Pix) = %d, want 16", len(img.Pix))
	}
	checks := []struct {
		x, y    int
		r, g, b uint8
	}{
		{0, 0, 0, 0, 255},
		{1, 0, 255, 255, 255},
		{0, 1, 255, 0, 0},
		{1, 1, 0, 255, 0},
	}
	for _, c := range checks {
		r, g, b, a := img.At(c.x, c.y)
		if r != c.r || g != c.g || b != c.b || a != 255 {
			t.Errorf("At(%d,%d) = (%d,%d,%d,%d), want (%d,%d,%d,255)", c.x, c.y, r, g, b, a, c.r, c.g, c.b)
		}
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(buf.Bytes(), "tex.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assertFlipped(t, img)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	// Content sniffing ignores the extension.
	img, err := Decode(buf.Bytes(), "texture.dat")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assertFlipped(t, img)
}

func TestDecodeTGAUncompressed(t *testing.T) {
	tests := []struct {
		name        string
		topToBottom bool
		bpp         byte
	}{
		{"bottom-up 24bpp", false, 24},
		{"top-down 24bpp", true, 24},
		{"bottom-up 32bpp", false, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testImage()
			data := tgaHeader(TGATypeUncompressed, 2, 2, tt.bpp, tt.topToBottom)
			rows := []int{1, 0}
			if tt.topToBottom {
				rows = []int{0, 1}
			}
			for _, y := range rows {
				for x := 0; x < 2; x++ {
					c := src.RGBAAt(x, y)
					data = append(data, c.B, c.G, c.R)
					if tt.bpp == 32 {
						data = append(data, c.A)
					}
				}
			}

			img, err := Decode(data, "TEX.TGA")
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			assertFlipped(t, img)
		})
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1: one RLE packet of two red pixels, one raw packet of a blue pixel.
	data := tgaHeader(TGATypeRLE, 3, 1, 24, true)
	data = append(data, 0x81, 0, 0, 255)
	data = append(data, 0x00, 255, 0, 0)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	rgba := img.(*image.RGBA)
	want := []color.RGBA{{255, 0, 0, 255}, {255, 0, 0, 255}, {0, 0, 255, 255}}
	for x, w := range want {
		if got := rgba.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		file string
	}{
		{"short TGA header", []byte{0, 0, 2}, "a.tga"},
		{"color-mapped TGA", func() []byte {
			h := tgaHeader(TGATypeUncompressed, 1, 1, 24, false)
			h[1] = 1
			return h
		}(), "a.tga"},
		{"unsupported TGA type", tgaHeader(3, 1, 1, 8, false), "a.tga"},
		{"unsupported TGA depth", tgaHeader(TGATypeUncompressed, 1, 1, 16, false), "a.tga"},
		{"truncated TGA pixels", tgaHeader(TGATypeUncompressed, 2, 2, 24, false), "a.tga"},
		{"zero-size TGA", tgaHeader(TGATypeUncompressed, 0, 0, 24, false), "a.tga"},
		{"unknown format", []byte("not an image"), "a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data, tt.file); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertFlipped(t, img)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bmp"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}
