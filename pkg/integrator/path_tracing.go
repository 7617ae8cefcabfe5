package integrator

import (
	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// scatterEpsilon keeps scattered rays from re-hitting the surface they left
const scatterEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing through a gravity field
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single primary ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	marcher := NewRayMarcher(s)
	marcher.StepLength = pt.config.StepLength
	marcher.MaxTime = pt.config.MaxTime
	return pt.rayColor(ray, s, marcher, sampler, pt.config.MaxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, s *scene.Scene, marcher RayMarcher, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, segment, isHit := marcher.Trace(ray, s.World, scatterEpsilon)
	if !isHit {
		return BackgroundGradient(segment, s)
	}

	scatter, didScatter := hit.Material.Scatter(segment, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.rayColor(scatter.Scattered, s, marcher, sampler, depth-1))
}

// BackgroundGradient returns the sky color seen along a ray's direction
func BackgroundGradient(r core.Ray, s *scene.Scene) core.Vec3 {
	topColor, bottomColor := s.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}
