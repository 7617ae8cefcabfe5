package integrator

import (
	"math"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/geometry"
	"github.com/df07/go-lensing-raytracer/pkg/material"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// singularityFloor is the distance below which a ray is considered swallowed by the point mass
const singularityFloor = 1e-6

// seamOverlap is the relative overshoot of each segment past StepLength
const seamOverlap = 1e-9

// GravityField is a Newtonian point-mass field used to bend ray paths
type GravityField struct {
	Position core.Vec3
	Mass     float64
	G        float64
}

// NewGravityField creates a field from a scene singularity
func NewGravityField(s scene.Singularity) GravityField {
	return GravityField{Position: s.Position, Mass: s.Mass, G: s.G}
}

// Step advances a unit direction and position by dt under the field.
// It returns false when pos is within singularityFloor of the mass.
func (f GravityField) Step(pos, dir core.Vec3, dt float64) (core.Vec3, core.Vec3, bool) {
	if f.Mass != 0 {
		toMass := f.Position.Subtract(pos)
		r := toMass.Length()
		if r < singularityFloor {
			return pos, dir, false
		}

		// Acceleration of magnitude G*M/R² pointing at the mass
		rHat := toMass.Multiply(1.0 / r)
		accel := rHat.Multiply(f.G * f.Mass / (r * r))
		dir = dir.Add(accel.Multiply(dt)).Normalize()
	}

	pos = pos.Add(dir.Multiply(dt))
	return pos, dir, true
}

// RayMarcher walks a ray through the field in short straight segments,
// testing each segment against the world before bending the ray further.
type RayMarcher struct {
	Field      GravityField
	StepLength float64 // Segment length and integration step
	MaxTime    float64 // Total path length before the ray escapes
}

// NewRayMarcher creates a marcher for the given scene
func NewRayMarcher(s *scene.Scene) RayMarcher {
	return RayMarcher{
		Field:      NewGravityField(s.Singularity),
		StepLength: s.SamplingConfig.StepLength,
		MaxTime:    s.SamplingConfig.MaxTime,
	}
}

// Steps returns how many segments fit in the time budget
func (m RayMarcher) Steps() int {
	if m.StepLength <= 0 || m.MaxTime <= 0 {
		return 0
	}
	// Small slack so budgets that are exact multiples of the step don't gain a segment
	return int(math.Ceil(m.MaxTime/m.StepLength - 1e-9))
}

// segmentEnd is the far bound each segment is tested to. Segments overlap
// slightly so a surface exactly on a seam is hit by the earlier segment.
func (m RayMarcher) segmentEnd() float64 {
	return m.StepLength*(1+seamOverlap) + seamOverlap*1e-3
}

// Trace marches ray through the world. On a hit it returns the hit and the
// segment that produced it; otherwise it returns the final bent ray, which
// is treated as having escaped to the background.
// tMin applies to the first segment only so later segments join without gaps.
func (m RayMarcher) Trace(ray core.Ray, world geometry.Shape, tMin float64) (*material.HitRecord, core.Ray, bool) {
	pos := ray.Origin
	dir := ray.Direction.Normalize()
	segmentMin := tMin
	segmentMax := m.segmentEnd()

	steps := m.Steps()
	for step := 0; step < steps; step++ {
		segment := core.NewRay(pos, dir)
		if hit, isHit := world.Hit(segment, segmentMin, segmentMax); isHit {
			return hit, segment, true
		}

		var ok bool
		pos, dir, ok = m.Field.Step(pos, dir, m.StepLength)
		if !ok {
			break
		}
		segmentMin = 0
	}

	return nil, core.NewRay(pos, dir), false
}
