package renderer

import (
	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// MockIntegrator returns a constant color for every ray
type MockIntegrator struct {
	returnColor core.Vec3
}

func (m *MockIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return m.returnColor
}

// DirectionIntegrator returns the primary ray direction as the color
type DirectionIntegrator struct{}

func (DirectionIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return ray.Direction
}

// createTestScene creates an empty scene of the given size
func createTestScene(width, height, samples int) *scene.Scene {
	s := scene.NewScene()
	s.SetImageSize(width, height)
	s.SamplingConfig.SamplesPerPixel = samples
	return s
}
