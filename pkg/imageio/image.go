package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Quantize maps a color component to a byte: round(clamp(c, 0, 1) * 255)
func Quantize(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(math.Round(c * 255))
}

// ToRGBA converts a pixel buffer to an opaque RGBA image
func ToRGBA(buf *core.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: Quantize(c.X),
				G: Quantize(c.Y),
				B: Quantize(c.Z),
				A: 255,
			})
		}
	}
	return img
}

// FromImage converts any image to a pixel buffer with components in [0,1]
func FromImage(img image.Image) *core.PixelBuffer {
	bounds := img.Bounds()
	buf := core.NewPixelBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			// RGBA returns uint32 in [0, 65535]
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			buf.Set(x, y, core.NewVec3(float64(r)/65535.0, float64(g)/65535.0, float64(b)/65535.0))
		}
	}
	return buf
}

// Encode writes buf to w in the given format
func Encode(w io.Writer, buf *core.PixelBuffer, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, buf)
	case FormatPNG:
		return png.Encode(w, ToRGBA(buf))
	case FormatBMP:
		return bmp.Encode(w, ToRGBA(buf))
	case FormatTIFF:
		return tiff.Encode(w, ToRGBA(buf), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode reads an image written by Encode
func Decode(r io.Reader, format Format) (*core.PixelBuffer, error) {
	switch format {
	case FormatPPM:
		return ReadPPM(r)
	case FormatPNG:
		img, err := png.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode png: %w", err)
		}
		return FromImage(img), nil
	case FormatBMP:
		img, err := bmp.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode bmp: %w", err)
		}
		return FromImage(img), nil
	case FormatTIFF:
		img, err := tiff.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode tiff: %w", err)
		}
		return FromImage(img), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// SaveFile encodes buf in the format implied by path, creating parent directories as needed
func SaveFile(path string, buf *core.PixelBuffer) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := Encode(file, buf, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return file.Close()
}

// LoadFile reads an image saved by SaveFile
func LoadFile(path string) (*core.PixelBuffer, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return Decode(file, format)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatPPM:
		return "image/x-portable-pixmap"
	}
	return "application/octet-stream"
}
