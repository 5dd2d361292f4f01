package imageio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ppmMaxLineLength is the longest line plain PPM readers must accept
const ppmMaxLineLength = 70

// ppmWriter packs space separated tokens into lines no longer than ppmMaxLineLength
type ppmWriter struct {
	w    *bufio.Writer
	line []byte
}

func (p *ppmWriter) token(s string) {
	if len(p.line) > 0 && len(p.line)+1+len(s) > ppmMaxLineLength {
		p.newLine()
	}
	if len(p.line) > 0 {
		p.line = append(p.line, ' ')
	}
	p.line = append(p.line, s...)
}

func (p *ppmWriter) newLine() {
	p.w.Write(p.line)
	p.w.WriteByte('\n')
	p.line = p.line[:0]
}

// WritePPM writes buf as a plain (P3) PPM. Each image row starts on a new line
// and the output ends with a newline.
func WritePPM(w io.Writer, buf *core.PixelBuffer) error {
	p := &ppmWriter{w: bufio.NewWriter(w), line: make([]byte, 0, ppmMaxLineLength)}

	p.token("P3")
	p.newLine()
	p.token(fmt.Sprintf("%d %d", buf.Width, buf.Height))
	p.newLine()
	p.token("255")
	p.newLine()

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			p.token(strconv.Itoa(int(Quantize(c.X))))
			p.token(strconv.Itoa(int(Quantize(c.Y))))
			p.token(strconv.Itoa(int(Quantize(c.Z))))
		}
		p.newLine()
	}

	return p.w.Flush()
}

// ppmMaxPixels bounds the image size ReadPPM will allocate
const ppmMaxPixels = 1 << 26

// ppmTokens yields whitespace separated words, dropping everything from '#' to the end of a line
type ppmTokens struct {
	scanner *bufio.Scanner
	words   []string
}

func (p *ppmTokens) next() (string, error) {
	for len(p.words) == 0 {
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		line := p.scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		p.words = strings.Fields(line)
	}
	word := p.words[0]
	p.words = p.words[1:]
	return word, nil
}

func (p *ppmTokens) nextInt(what string) (int, error) {
	word, err := p.next()
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", what, err)
	}
	v, err := strconv.Atoi(word)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", what, err)
	}
	return v, nil
}

// ReadPPM parses a plain (P3) PPM into a buffer with components scaled to [0,1]
func ReadPPM(r io.Reader) (*core.PixelBuffer, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	tokens := &ppmTokens{scanner: scanner}

	magic, err := tokens.next()
	if err != nil {
		return nil, fmt.Errorf("reading magic number: %w", err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: expected P3, got %q", ErrUnknownFormat, magic)
	}

	width, err := tokens.nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := tokens.nextInt("height")
	if err != nil {
		return nil, err
	}
	maxValue, err := tokens.nextInt("max value")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || maxValue <= 0 || maxValue > 65535 {
		return nil, fmt.Errorf("invalid PPM header %dx%d max %d", width, height, maxValue)
	}
	if width > ppmMaxPixels/height {
		return nil, fmt.Errorf("PPM image %dx%d exceeds %d pixels", width, height, ppmMaxPixels)
	}

	buf := core.NewPixelBuffer(width, height)
	scale := 1.0 / float64(maxValue)
	for i := range buf.Pixels {
		var rgb [3]int
		for c := range rgb {
			if rgb[c], err = tokens.nextInt("pixel data"); err != nil {
				return nil, err
			}
		}
		buf.Pixels[i] = core.NewVec3(float64(rgb[0])*scale, float64(rgb[1])*scale, float64(rgb[2])*scale)
	}

	return buf, nil
}
