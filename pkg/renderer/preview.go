package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
)

// ToImage converts a frame into an 8-bit image, top row first
func ToImage(frame *Frame) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := frame.Color(x, y).Clamp(0, maxComponent)
			img.SetNRGBA(x, y, fauxgl.Color{R: c.X, G: c.Y, B: c.Z, A: 1}.NRGBA())
		}
	}
	return img
}

// PreviewImage returns the frame as an image that fits within maxSize x maxSize.
// A non-positive maxSize keeps the full resolution.
func PreviewImage(frame *Frame, maxSize int) image.Image {
	img := image.Image(ToImage(frame))
	if maxSize > 0 && (frame.Width > maxSize || frame.Height > maxSize) {
		img = resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Bilinear)
	}
	return img
}

// SaveImage writes img to path as PNG
func SaveImage(path string, img image.Image) error {
	if err := fauxgl.SavePNG(path, img); err != nil {
		return fmt.Errorf("save preview %s: %w", path, err)
	}
	return nil
}

// EncodeImage writes img to w as PNG
func EncodeImage(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(pixels)
}
