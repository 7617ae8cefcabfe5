package scene

import (
	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/geometry"
	"github.com/df07/go-lensing-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// A scene is built once and treated as read-only while rendering.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.ShapeList // Objects in the scene
	TopColor       core.Vec3           // Sky color straight up
	BottomColor    core.Vec3           // Sky color straight down
	Singularity    Singularity         // Point mass bending ray paths
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	StepLength      float64 // Length of each ray-bending segment
	MaxTime         float64 // Total path length a ray may travel before escaping
}

// Singularity is a fixed point mass that deflects rays toward itself
type Singularity struct {
	Position core.Vec3
	Mass     float64
	G        float64 // Gravitational constant
}

// DefaultSamplingConfig returns the standard sampling settings
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        10,
		StepLength:      0.05,
		MaxTime:         40,
	}
}

// Default sky gradient: pale horizon fading to a slate blue overhead
var (
	DefaultTopColor    = core.NewVec3(0.28, 0.35, 0.50)
	DefaultBottomColor = core.NewVec3(0.81, 0.93, 0.96)
)

// NewScene creates an empty scene with the default camera, sky and sampling config
func NewScene() *Scene {
	cameraConfig := geometry.DefaultCameraConfig()
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewShapeList(),
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
		Singularity:    Singularity{G: 1},
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// Add appends a shape to the scene
func (s *Scene) Add(shape geometry.Shape) {
	s.World.Add(shape)
}

// AddSphere adds a sphere with the given material
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Add(geometry.NewSphere(center, radius, mat))
}

// AddBox adds an axis-aligned box with the given material
func (s *Scene) AddBox(min, max core.Vec3, mat material.Material) {
	s.Add(geometry.NewBox(min, max, mat))
}

// SetImageSize updates the output resolution and matches the camera aspect ratio to it
func (s *Scene) SetImageSize(width, height int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	if width > 0 && height > 0 {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
