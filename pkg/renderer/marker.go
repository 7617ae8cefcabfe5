package renderer

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// Marker ring appearance, in preview pixels
const (
	markerMinRadius = 3.0
	markerLineWidth = 1.5
)

// SingularityPixel returns where the scene's singularity lands on a
// width x height frame. ok is false when it is behind the camera or off screen.
func SingularityPixel(s *scene.Scene, width, height int) (x, y float64, ok bool) {
	u, v, ok := s.Camera.Project(s.Singularity.Position)
	if !ok || u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}
	// Inverse of ScreenCoords without jitter
	x = u * screenSpan(width)
	y = screenSpan(height) - v*screenSpan(height)
	return x, y, true
}

// MarkSingularity draws a ring over img at the singularity's screen position.
// img may be a scaled copy of a frame rendered at the scene's image size.
// Massless or off-screen singularities leave img unchanged.
func MarkSingularity(img image.Image, s *scene.Scene) image.Image {
	if s.Singularity.Mass == 0 {
		return img
	}
	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	x, y, ok := SingularityPixel(s, width, height)
	if !ok {
		return img
	}

	bounds := img.Bounds()
	scaleX := float64(bounds.Dx()) / float64(width)
	scaleY := float64(bounds.Dy()) / float64(height)
	radius := math.Max(markerMinRadius, 0.03*math.Min(float64(bounds.Dx()), float64(bounds.Dy())))

	dc := gg.NewContextForImage(img)
	dc.SetRGBA(1, 0.2, 0.2, 0.9)
	dc.SetLineWidth(markerLineWidth)
	dc.DrawCircle((x+0.5)*scaleX, (y+0.5)*scaleY, radius)
	dc.Stroke()
	return dc.Image()
}
