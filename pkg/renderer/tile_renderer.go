package renderer

import (
	"image"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/integrator"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders pixels within the specified bounds, writing into the shared
// pixel stats array. Tiles never overlap so concurrent calls are safe.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, samples int) RenderStats {
	config := tr.scene.SamplingConfig

	stats := RenderStats{TilesRendered: 1}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			for s := 0; s < samples; s++ {
				u, v := ScreenCoords(x, y, config.Width, config.Height, sampler.Get2D())
				ray := tr.scene.Camera.GetRay(u, v)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
			}
			stats.TotalPixels++
			stats.TotalSamples += samples
		}
	}

	stats.finalize()
	return stats
}

// ScreenCoords maps image pixel (x, y), row 0 at the top, plus a jitter in [0,1)²
// to camera coordinates with (0, 0) at the lower left
func ScreenCoords(x, y, width, height int, jitter core.Vec2) (u, v float64) {
	j := height - 1 - y
	u = (float64(x) + jitter.X) / screenSpan(width)
	v = (float64(j) + jitter.Y) / screenSpan(height)
	return u, v
}

// screenSpan maps pixel indices onto [0,1] across the image, guarding single-pixel axes
func screenSpan(n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(n - 1)
}
