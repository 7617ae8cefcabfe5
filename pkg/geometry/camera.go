package geometry

import (
	"github.com/df07/go-lensing-raytracer/pkg/core"
)

// CameraConfig contains the parameters of a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Eye position
	AspectRatio float64   // Viewport width / height
	Height      float64   // Viewport height in world units
	FocalLength float64   // Distance from eye to viewport along -Z
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		AspectRatio: 16.0 / 9.0,
		Height:      2.0,
		FocalLength: 1.0,
	}
}

// Camera generates primary rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	focalLength     float64
}

// NewCamera creates a pinhole camera from the given config
func NewCamera(config CameraConfig) *Camera {
	viewportHeight := config.Height
	viewportWidth := config.AspectRatio * viewportHeight

	origin := config.Center
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
		focalLength:     config.FocalLength,
	}
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1
// and (0, 0) is the lower left corner
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// Project maps a world point to screen coordinates (u, v) on the viewport.
// ok is false for points at or behind the eye plane.
func (c *Camera) Project(p core.Vec3) (u, v float64, ok bool) {
	d := p.Subtract(c.origin)
	if d.Z >= 0 {
		return 0, 0, false
	}
	onPlane := c.origin.Add(d.Multiply(c.focalLength / -d.Z)).Subtract(c.lowerLeftCorner)
	return onPlane.X / c.horizontal.X, onPlane.Y / c.vertical.Y, true
}
