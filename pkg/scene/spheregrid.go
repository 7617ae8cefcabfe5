package scene

import (
	"math"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewLensingScene creates a wall of rainbow spheres behind a singularity.
// The grid reads as a lensed ring around the point mass.
func NewLensingScene() *Scene {
	s := NewScene()

	const gridSize = 9
	const spacing = 0.6
	const radius = 0.22
	const wallZ = -6.0

	half := float64(gridSize-1) * spacing / 2
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			hue := float64(row*gridSize+col) / float64(gridSize*gridSize) * 360.0
			color := oklchToRGB(0.7, 0.15, hue)

			var mat material.Material
			if (row+col)%2 == 0 {
				mat = material.NewLambertian(color)
			} else {
				mat = material.NewMetal(color, 0.2)
			}

			center := core.NewVec3(float64(col)*spacing-half, float64(row)*spacing-half, wallZ)
			s.AddSphere(center, radius, mat)
		}
	}

	// Dark floor well below the grid
	s.AddBox(core.NewVec3(-20, -4, -30), core.NewVec3(20, -3.5, 5), material.NewLambertian(core.NewVec3(0.3, 0.3, 0.35)))

	s.Singularity = Singularity{
		Position: core.NewVec3(0, 0, -3),
		Mass:     0.1,
		G:        1,
	}
	s.SamplingConfig.MaxTime = 60

	return s
}
