package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/integrator"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// Config controls how a frame is split up and scheduled
type Config struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for the per-tile random streams
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
	}
}

// Frame holds the accumulated samples of a finished render.
// Pixels is indexed [row][column] with row 0 at the top of the image.
type Frame struct {
	Width, Height int
	Pixels        [][]PixelStats
}

// NewFrame allocates an empty frame
func NewFrame(width, height int) *Frame {
	pixels := make([][]PixelStats, height)
	for y := range pixels {
		pixels[y] = make([]PixelStats, width)
	}
	return &Frame{Width: width, Height: height, Pixels: pixels}
}

// Color returns the averaged color of a pixel
func (f *Frame) Color(x, y int) core.Vec3 {
	return f.Pixels[y][x].GetColor()
}

// Raytracer renders a scene into a frame using a tile worker pool
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render traces every pixel of the scene. It returns ctx.Err() if the context is
// cancelled before all tiles finish.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	sampling := rt.scene.SamplingConfig
	if sampling.Width <= 0 || sampling.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", sampling.Width, sampling.Height)
	}
	if sampling.SamplesPerPixel <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid samples per pixel %d", sampling.SamplesPerPixel)
	}

	start := time.Now()
	frame := NewFrame(sampling.Width, sampling.Height)
	tiles := NewTileGrid(sampling.Width, sampling.Height, rt.config.TileSize, rt.config.Seed)

	pool := NewWorkerPool(NewTileRenderer(rt.scene, rt.integrator), len(tiles), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d at %d samples/pixel: %d tiles on %d workers\n",
		sampling.Width, sampling.Height, sampling.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:       tile,
			Samples:    sampling.SamplesPerPixel,
			TaskID:     i,
			PixelStats: frame.Pixels,
		})
	}

	var stats RenderStats
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		stats.Merge(result.Stats)
		if stats.TilesRendered%progressInterval(len(tiles)) == 0 || stats.TilesRendered == len(tiles) {
			rt.logger.Printf("Tiles completed: %d/%d\n", stats.TilesRendered, len(tiles))
		}
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if firstErr != nil {
		rt.logger.Printf("Render stopped after %d/%d tiles: %v\n", stats.TilesRendered, len(tiles), firstErr)
		return nil, stats, firstErr
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return frame, stats, nil
}

// progressInterval logs roughly ten progress lines per frame
func progressInterval(numTiles int) int {
	return max(1, numTiles/10)
}
