package scene

import (
	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/material"
)

// NewDefaultScene creates the classic scene: a diffuse sphere, two cubes and a floor slab
// with a small singularity hovering above the sphere
func NewDefaultScene() *Scene {
	s := NewScene()

	grey := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	red := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	silver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.05)

	s.AddSphere(core.NewVec3(0, -1, -1), 0.5, grey)
	s.AddBox(core.NewVec3(-2, -1.5, -2), core.NewVec3(-1, -0.5, -1), red)
	s.AddBox(core.NewVec3(1.5, -0.75, -2.5), core.NewVec3(2.5, 0.25, -1.5), silver)

	// Floor slab shares the grey material with the sphere
	s.AddBox(core.NewVec3(-5, -1.75, -2.5), core.NewVec3(5, -1.5, 1.5), grey)

	s.Singularity = Singularity{
		Position: core.NewVec3(0, 0.2, -1.5),
		Mass:     0.02,
		G:        1,
	}

	return s
}

// NewSingleSphereScene creates a single diffuse sphere directly in front of the camera
// with no singularity
func NewSingleSphereScene() *Scene {
	s := NewScene()
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}
