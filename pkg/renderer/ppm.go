package renderer

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-lensing-raytracer/pkg/core"
)

// maxComponent keeps quantized channels strictly below 256
const maxComponent = 0.999

// PPMWriter serializes pixels as a plain-text (P3) PPM image
type PPMWriter struct {
	w *bufio.Writer
}

// NewPPMWriter wraps w in a buffered PPM writer. Call Flush when done.
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the P3 header for a width x height image
func (p *PPMWriter) WriteHeader(width, height int) error {
	if _, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	return nil
}

// WriteColor averages an accumulated color over samples and writes one "r g b" line
func (p *PPMWriter) WriteColor(accum core.Vec3, samples int) error {
	r, g, b := QuantizeColor(accum, samples)
	if _, err := fmt.Fprintf(p.w, "%d %d %d\n", r, g, b); err != nil {
		return fmt.Errorf("write ppm pixel: %w", err)
	}
	return nil
}

// Flush writes any buffered data to the underlying writer
func (p *PPMWriter) Flush() error {
	if err := p.w.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}

// WriteFrame writes a complete frame, top row first
func (p *PPMWriter) WriteFrame(frame *Frame) error {
	if err := p.WriteHeader(frame.Width, frame.Height); err != nil {
		return err
	}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			ps := frame.Pixels[y][x]
			if err := p.WriteColor(ps.ColorAccum, ps.SampleCount); err != nil {
				return err
			}
		}
	}
	return p.Flush()
}

// WritePPM writes frame to w as a P3 image
func WritePPM(w io.Writer, frame *Frame) error {
	return NewPPMWriter(w).WriteFrame(frame)
}

// QuantizeColor scales an accumulated color by 1/samples, clamps each channel
// to [0, 0.999] and maps it to an integer in [0, 255]
func QuantizeColor(accum core.Vec3, samples int) (r, g, b int) {
	scale := 1.0
	if samples > 0 {
		scale = 1.0 / float64(samples)
	}
	c := accum.Multiply(scale)
	return quantize(c.X), quantize(c.Y), quantize(c.Z)
}

func quantize(x float64) int {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	return int(256 * min(x, maxComponent))
}
