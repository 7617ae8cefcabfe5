package renderer

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-lensing-raytracer/pkg/core"
)

func TestTileRenderer_AccumulatesSamples(t *testing.T) {
	s := createTestScene(4, 3, 3)
	color := core.NewVec3(0.25, 0.5, 0.75)
	tr := NewTileRenderer(s, &MockIntegrator{returnColor: color})

	frame := NewFrame(4, 3)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	stats := tr.RenderTileBounds(image.Rect(0, 0, 4, 3), frame.Pixels, sampler, 3)

	if stats.TotalPixels != 12 || stats.TotalSamples != 36 {
		t.Errorf("Expected 12 pixels and 36 samples, got %d and %d", stats.TotalPixels, stats.TotalSamples)
	}
	if stats.AverageSamples != 3 {
		t.Errorf("Expected 3 average samples, got %f", stats.AverageSamples)
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			ps := frame.Pixels[y][x]
			if ps.SampleCount != 3 {
				t.Fatalf("Pixel (%d,%d): expected 3 samples, got %d", x, y, ps.SampleCount)
			}
			if ps.GetColor().Subtract(color).Length() > 1e-12 {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, color, ps.GetColor())
			}
		}
	}
}

func TestTileRenderer_OnlyTouchesBounds(t *testing.T) {
	s := createTestScene(4, 4, 1)
	tr := NewTileRenderer(s, &MockIntegrator{returnColor: core.NewVec3(1, 1, 1)})

	frame := NewFrame(4, 4)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	tr.RenderTileBounds(image.Rect(2, 0, 4, 2), frame.Pixels, sampler, 1)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			inside := x >= 2 && y < 2
			got := frame.Pixels[y][x].SampleCount
			if inside && got != 1 || !inside && got != 0 {
				t.Errorf("Pixel (%d,%d): unexpected sample count %d", x, y, got)
			}
		}
	}
}

func TestTileRenderer_ImageOrientation(t *testing.T) {
	width, height := 8, 6
	s := createTestScene(width, height, 1)
	tr := NewTileRenderer(s, DirectionIntegrator{})

	frame := NewFrame(width, height)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	tr.RenderTileBounds(image.Rect(0, 0, width, height), frame.Pixels, sampler, 4)

	topLeft := frame.Color(0, 0)
	bottomRight := frame.Color(width-1, height-1)

	// Row 0 is the top of the picture, column 0 the left edge
	if topLeft.Y <= 0 || topLeft.X >= 0 {
		t.Errorf("Expected top-left ray pointing up and left, got %v", topLeft)
	}
	if bottomRight.Y >= 0 || bottomRight.X <= 0 {
		t.Errorf("Expected bottom-right ray pointing down and right, got %v", bottomRight)
	}
}

func TestScreenSpan(t *testing.T) {
	tests := []struct {
		n        int
		expected float64
	}{
		{0, 1},
		{1, 1},
		{2, 1},
		{400, 399},
	}
	for _, tt := range tests {
		if got := screenSpan(tt.n); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("screenSpan(%d): expected %f, got %f", tt.n, tt.expected, got)
		}
	}
}

func TestScreenCoords(t *testing.T) {
	tests := []struct {
		name          string
		x, y          int
		width, height int
		jitter        core.Vec2
		u, v          float64
	}{
		{"bottom left", 0, 3, 5, 4, core.NewVec2(0, 0), 0, 0},
		{"top right", 4, 0, 5, 4, core.NewVec2(0, 0), 1, 1},
		{"jittered", 1, 2, 5, 4, core.NewVec2(0.5, 0.25), 1.5 / 4, 1.25 / 3},
		{"single pixel", 0, 0, 1, 1, core.NewVec2(0.5, 0.5), 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := ScreenCoords(tt.x, tt.y, tt.width, tt.height, tt.jitter)
			if math.Abs(u-tt.u) > 1e-12 || math.Abs(v-tt.v) > 1e-12 {
				t.Errorf("Expected (%f, %f), got (%f, %f)", tt.u, tt.v, u, v)
			}
		})
	}
}
