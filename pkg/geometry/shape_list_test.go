package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-lensing-raytracer/pkg/core"
)

func TestShapeList_ClosestHit(t *testing.T) {
	near := &DummyMaterial{Name: "near"}
	far := &DummyMaterial{Name: "far"}

	// Far sphere added first so traversal order does not decide the winner
	list := NewShapeList(
		NewSphere(core.NewVec3(0, 0, -10), 1, far),
		NewSphere(core.NewVec3(0, 0, -4), 1, near),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := list.Hit(ray, 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != near {
		t.Errorf("Expected nearest sphere, got material %v", hit.Material)
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got %f", hit.T)
	}
}

func TestShapeList_TieGoesToFirst(t *testing.T) {
	first := &DummyMaterial{Name: "first"}
	second := &DummyMaterial{Name: "second"}

	list := NewShapeList()
	list.Add(NewBox(core.NewVec3(-1, -1, -3), core.NewVec3(1, 1, -2), first))
	list.Add(NewBox(core.NewVec3(-1, -1, -3), core.NewVec3(1, 1, -2), second))

	if list.Len() != 2 {
		t.Fatalf("Expected 2 shapes, got %d", list.Len())
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := list.Hit(ray, 0.001, 1000)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != first {
		t.Errorf("Expected first shape to win the tie, got %v", hit.Material)
	}
}

func TestShapeList_MissAndWindow(t *testing.T) {
	list := NewShapeList(NewSphere(core.NewVec3(0, 0, -5), 1, &DummyMaterial{}))

	if _, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0.001, 1000); isHit {
		t.Error("Expected miss")
	}
	if _, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 2); isHit {
		t.Error("Expected miss when all shapes are beyond tMax")
	}
	if _, isHit := NewShapeList().Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, 1000); isHit {
		t.Error("Empty list should never hit")
	}
}
