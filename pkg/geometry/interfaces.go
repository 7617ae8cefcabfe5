package geometry

import (
	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit reports the nearest intersection with tMin < t < tMax.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
