package material

import "github.com/df07/go-lensing-raytracer/pkg/core"

// fixedSampler returns the same samples on every call
type fixedSampler struct {
	two   core.Vec2
	three core.Vec3
}

func (f fixedSampler) Get2D() core.Vec2 { return f.two }
func (f fixedSampler) Get3D() core.Vec3 { return f.three }
