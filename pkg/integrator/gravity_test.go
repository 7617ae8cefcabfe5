package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/geometry"
	"github.com/df07/go-lensing-raytracer/pkg/material"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

type absorbingMaterial struct{}

func (absorbingMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

func TestRayMarcher_Steps(t *testing.T) {
	tests := []struct {
		name       string
		stepLength float64
		maxTime    float64
		expected   int
	}{
		{"default budget", 0.05, 40, 800},
		{"exact multiple", 0.05, 0.1, 2},
		{"partial final step", 0.3, 1, 4},
		{"zero step", 0, 10, 0},
		{"zero time", 0.1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RayMarcher{StepLength: tt.stepLength, MaxTime: tt.maxTime}
			if got := m.Steps(); got != tt.expected {
				t.Errorf("Expected %d steps, got %d", tt.expected, got)
			}
		})
	}
}

func TestGravityField_StepBendsTowardMass(t *testing.T) {
	field := GravityField{Position: core.NewVec3(0, 1, 0), Mass: 1, G: 1}

	pos, dir, ok := field.Step(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0.1)
	if !ok {
		t.Fatal("Expected step to succeed away from the singularity")
	}

	expectedDir := core.NewVec3(0, 0.1, -1).Normalize()
	if math.Abs(dir.Subtract(expectedDir).Length()) > 1e-12 {
		t.Errorf("Expected direction %v, got %v", expectedDir, dir)
	}
	if math.Abs(dir.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", dir.Length())
	}

	expectedPos := expectedDir.Multiply(0.1)
	if pos.Subtract(expectedPos).Length() > 1e-12 {
		t.Errorf("Expected position %v, got %v", expectedPos, pos)
	}
}

func TestGravityField_InverseSquare(t *testing.T) {
	near := GravityField{Position: core.NewVec3(0, 1, 0), Mass: 0.01, G: 1}
	far := GravityField{Position: core.NewVec3(0, 2, 0), Mass: 0.01, G: 1}

	_, nearDir, _ := near.Step(core.Vec3{}, core.NewVec3(1, 0, 0), 0.01)
	_, farDir, _ := far.Step(core.Vec3{}, core.NewVec3(1, 0, 0), 0.01)

	// Small deflections scale roughly with 1/R²
	ratio := nearDir.Y / farDir.Y
	if math.Abs(ratio-4) > 0.01 {
		t.Errorf("Expected deflection ratio near 4, got %f", ratio)
	}
}

func TestGravityField_SingularityFloor(t *testing.T) {
	field := GravityField{Position: core.NewVec3(1, 2, 3), Mass: 1, G: 1}
	start := core.NewVec3(1, 2, 3+1e-8)
	dir := core.NewVec3(0, 0, -1)

	pos, newDir, ok := field.Step(start, dir, 0.1)
	if ok {
		t.Error("Expected step inside the singularity floor to terminate")
	}
	if pos != start || newDir != dir {
		t.Errorf("Expected ray unchanged at termination, got pos %v dir %v", pos, newDir)
	}
}

func TestRayMarcher_ZeroMassStaysStraight(t *testing.T) {
	m := RayMarcher{
		Field:      GravityField{Position: core.NewVec3(0, 0, -2), Mass: 0, G: 1},
		StepLength: 0.05,
		MaxTime:    40,
	}
	input := core.NewRay(core.NewVec3(0.5, -0.25, 0), core.NewVec3(1, 2, -3))

	hit, final, isHit := m.Trace(input, geometry.NewShapeList(), 0.001)
	if isHit || hit != nil {
		t.Fatal("Expected no hit in an empty world")
	}

	unit := input.Direction.Normalize()
	if final.Direction != unit {
		t.Errorf("Expected direction %v to be preserved, got %v", unit, final.Direction)
	}

	// Final position must lie on the unperturbed line
	offset := final.Origin.Subtract(input.Origin)
	if offset.Cross(unit).Length() > 1e-9 {
		t.Errorf("Expected final position on the input line, offset %v", offset)
	}
	if math.Abs(offset.Length()-40) > 1e-6 {
		t.Errorf("Expected ray to travel the full budget, travelled %f", offset.Length())
	}
}

func TestRayMarcher_BendsTowardMass(t *testing.T) {
	m := RayMarcher{
		Field:      GravityField{Position: core.NewVec3(0, 0.5, -3), Mass: 0.02, G: 1},
		StepLength: 0.05,
		MaxTime:    10,
	}

	_, final, isHit := m.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), geometry.NewShapeList(), 0.001)
	if isHit {
		t.Fatal("Expected no hit in an empty world")
	}
	if final.Direction.Y <= 0 {
		t.Errorf("Expected ray bent upward toward the mass, got direction %v", final.Direction)
	}
}

func TestRayMarcher_NoTunneling(t *testing.T) {
	tests := []struct {
		name  string
		mass  float64
		nearZ float64 // Near face of a wall thinner than the step length
	}{
		{"straight", 0, -1.2},
		{"curved", 0.3, -1.2},
		{"straight on segment seam", 0, -1.0},
		{"straight on later seam", 0, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wall := geometry.NewBox(core.NewVec3(-5, -5, tt.nearZ-0.005), core.NewVec3(5, 5, tt.nearZ), absorbingMaterial{})
			m := RayMarcher{
				Field:      GravityField{Position: core.NewVec3(0, 1, -4), Mass: tt.mass, G: 1},
				StepLength: 0.5,
				MaxTime:    20,
			}

			hit, segment, isHit := m.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), geometry.NewShapeList(wall), 0.001)
			if !isHit {
				t.Fatal("Expected the wall to be hit along the path")
			}
			if !hit.FrontFace {
				t.Errorf("Expected the near face from outside, got a back face at %v", hit.Point)
			}
			if hit.T <= 0 || hit.T > m.StepLength*(1+1e-6) {
				t.Errorf("Expected hit within one segment, got t=%f", hit.T)
			}
			if math.Abs(hit.Point.Z-tt.nearZ) > 1e-9 {
				t.Errorf("Expected hit on the near face z=%v, got %v", tt.nearZ, hit.Point)
			}
			if segment.At(hit.T).Subtract(hit.Point).Length() > 1e-9 {
				t.Errorf("Expected returned segment to produce the hit point")
			}
		})
	}
}

func TestRayMarcher_SurfaceOnSegmentSeam(t *testing.T) {
	// Every near face lies a whole number of 0.05 steps from the origin
	tests := []struct {
		name  string
		world geometry.Shape
		nearZ float64
	}{
		{"sphere", geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, -1.5), 0.5, absorbingMaterial{})), -1},
		{"box", geometry.NewShapeList(geometry.NewBox(core.NewVec3(-1, -1, -3), core.NewVec3(1, 1, -0.75), absorbingMaterial{})), -0.75},
		{"single sphere scene", scene.NewSingleSphereScene().World, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := RayMarcher{StepLength: 0.05, MaxTime: 40}
			hit, _, isHit := m.Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), tt.world, 0.001)
			if !isHit {
				t.Fatal("Expected a hit")
			}
			if !hit.FrontFace {
				t.Fatalf("Expected front face hit, got back face at %v", hit.Point)
			}
			assertNear(t, "hit z", tt.nearZ, hit.Point.Z, 1e-9)
			assertNear(t, "normal z", 1, hit.Normal.Z, 1e-9)
		})
	}
}

func assertNear(t *testing.T, name string, expected, got, tolerance float64) {
	t.Helper()
	if math.Abs(expected-got) > tolerance {
		t.Errorf("Expected %s %v, got %v", name, expected, got)
	}
}

func TestRayMarcher_StartAtSingularityEscapes(t *testing.T) {
	center := core.NewVec3(0, 0, -2)
	m := RayMarcher{
		Field:      GravityField{Position: center, Mass: 1, G: 1},
		StepLength: 0.05,
		MaxTime:    5,
	}

	_, final, isHit := m.Trace(core.NewRay(center, core.NewVec3(0, 1, 0)), geometry.NewShapeList(), 0.001)
	if isHit {
		t.Fatal("Expected escape, not a hit")
	}
	if final.Origin != center || final.Direction != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected integration to stop at the singularity, got %v", final)
	}
}
