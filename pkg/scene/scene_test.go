package scene

import (
	"math"
	"testing"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/material"
)

func TestScene_SetImageSize(t *testing.T) {
	s := NewScene()
	s.SetImageSize(200, 200)

	if s.SamplingConfig.Width != 200 || s.SamplingConfig.Height != 200 {
		t.Errorf("Expected 200x200, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected square aspect ratio, got %f", s.CameraConfig.AspectRatio)
	}

	// Upper right corner of a square viewport is (1, 1, -1)
	ray := s.Camera.GetRay(1, 1)
	if math.Abs(ray.Direction.X-1) > 1e-9 || math.Abs(ray.Direction.Y-1) > 1e-9 {
		t.Errorf("Unexpected corner direction %v", ray.Direction)
	}
}

func TestScene_SharedMaterial(t *testing.T) {
	s := NewScene()
	shared := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, shared)
	s.AddBox(core.NewVec3(-1, -2, -3), core.NewVec3(1, -1, -2), shared)

	if s.GetPrimitiveCount() != 2 {
		t.Fatalf("Expected 2 primitives, got %d", s.GetPrimitiveCount())
	}

	hit, isHit := s.World.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !isHit || hit.Material != material.Material(shared) {
		t.Error("Expected hit on sphere with shared material")
	}
	hit, isHit = s.World.Hit(core.NewRay(core.NewVec3(0, -1.5, 0), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !isHit || hit.Material != material.Material(shared) {
		t.Error("Expected hit on box with shared material")
	}
}

func TestScene_BackgroundColors(t *testing.T) {
	top, bottom := NewScene().GetBackgroundColors()
	if top != DefaultTopColor || bottom != DefaultBottomColor {
		t.Errorf("Unexpected background colors %v %v", top, bottom)
	}
}
