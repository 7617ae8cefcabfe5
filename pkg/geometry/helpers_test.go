package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/material"
)

// DummyMaterial absorbs every ray
type DummyMaterial struct {
	Name string
}

func (d *DummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

func assertVecNear(t *testing.T, label string, expected, actual core.Vec3, tolerance float64) {
	t.Helper()
	if math.Abs(expected.X-actual.X) > tolerance ||
		math.Abs(expected.Y-actual.Y) > tolerance ||
		math.Abs(expected.Z-actual.Z) > tolerance {
		t.Errorf("Expected %s %v, got %v", label, expected, actual)
	}
}
