package geometry

import (
	"math"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/material"
)

// faceEpsilon is the absolute tolerance used to match a slab parameter to the chosen face
const faceEpsilon = 1e-6

// Box represents an axis-aligned box tested with the slab method
type Box struct {
	Min      core.Vec3 // Minimum corner
	Max      core.Vec3 // Maximum corner
	Material material.Material
}

// NewBox creates a new axis-aligned box from two corners
func NewBox(min, max core.Vec3, material material.Material) *Box {
	return &Box{
		Min:      min,
		Max:      max,
		Material: material,
	}
}

// Hit tests if a ray intersects the box.
// Zero direction components are divided through on purpose: the resulting
// signed infinities (or NaN on a slab boundary) drop out of the comparisons below.
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var entries, exits [3]float64
	entry := math.Inf(-1)
	exit := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		t0 := (b.Min.Component(axis) - origin) / direction
		t1 := (b.Max.Component(axis) - origin) / direction
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		entries[axis] = t0
		exits[axis] = t1

		// The entry is the last slab the ray enters, the exit the first one it leaves
		if t0 > entry {
			entry = t0
		}
		if t1 < exit {
			exit = t1
		}
	}

	if entry > exit || exit <= tMin {
		return nil, false
	}

	var t float64
	var outwardNormal core.Vec3
	switch {
	case entry > tMin && entry < tMax:
		t = entry
		outwardNormal = faceNormal(entries, entry, ray.Direction, -1)
	case entry <= tMin && exit < tMax:
		// Origin is inside the box: the ray leaves through the exit face
		t = exit
		outwardNormal = faceNormal(exits, exit, ray.Direction, 1)
	default:
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: b.Material,
	}
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// faceNormal picks the axis whose slab parameter produced t and returns the
// outward normal of that face. sign is -1 for the entry face (normal against
// the ray) and +1 for the exit face (normal along the ray).
func faceNormal(params [3]float64, t float64, direction core.Vec3, sign float64) core.Vec3 {
	axis := 2
	for i := 0; i < 3; i++ {
		if math.Abs(params[i]-t) < faceEpsilon {
			axis = i
			break
		}
	}

	component := sign
	if direction.Component(axis) < 0 {
		component = -sign
	}

	switch axis {
	case 0:
		return core.NewVec3(component, 0, 0)
	case 1:
		return core.NewVec3(0, component, 0)
	default:
		return core.NewVec3(0, 0, component)
	}
}
