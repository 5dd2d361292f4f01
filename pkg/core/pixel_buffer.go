package core

// PixelBuffer is a row-major grid of colors. Row 0 is the top of the image.
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []Vec3
}

// NewPixelBuffer allocates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Vec3, width*height),
	}
}

// At returns the color stored at (x, y)
func (b *PixelBuffer) At(x, y int) Vec3 {
	return b.Pixels[y*b.Width+x]
}

// Set stores a color at (x, y)
func (b *PixelBuffer) Set(x, y int, c Vec3) {
	b.Pixels[y*b.Width+x] = c
}
