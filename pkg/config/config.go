// Package config assembles render settings from defaults, an optional .env
// file, LENSRT_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/publish"
	"github.com/df07/go-lensing-raytracer/pkg/renderer"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "LENSRT_"

// Config holds everything needed to render and publish one image
type Config struct {
	Scene           string
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	NumWorkers      int // 0 = use CPU count
	TileSize        int

	// Gravity overrides; nil keeps the scene's own singularity
	Mass     *float64
	G        *float64
	Position *core.Vec3

	StepLength float64 // 0 keeps the scene default
	MaxTime    float64 // 0 keeps the scene default

	Output      string // PPM path, "-" for stdout
	Preview     string // Optional PNG preview path
	PreviewSize int    // Longest preview edge, 0 for full size
	Mark        bool   // Ring the singularity on previews

	S3 publish.Config

	List bool // Print the available scenes and exit
}

// Default returns the built-in configuration
func Default() Config {
	sampling := scene.DefaultSamplingConfig()
	rc := renderer.DefaultConfig()
	return Config{
		Scene:           "default",
		Width:           sampling.Width,
		Height:          sampling.Height,
		SamplesPerPixel: sampling.SamplesPerPixel,
		MaxDepth:        sampling.MaxDepth,
		Seed:            rc.Seed,
		NumWorkers:      rc.NumWorkers,
		TileSize:        rc.TileSize,
		Output:          "-",
		PreviewSize:     512,
	}
}

// Load builds a config from defaults, envFile (ignored if missing), the
// process environment and args
func Load(args []string, envFile string) (Config, error) {
	c := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return c, err
	}

	flags := flag.NewFlagSet("lensrt", flag.ContinueOnError)
	c.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return c, err
	}

	return c, c.Validate()
}

// ApplyEnv overrides fields from LENSRT_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	var errs []error
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	setFloat := func(name string, dst *float64) {
		if v, ok := get(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = f
		}
	}
	setOptionalFloat := func(name string, dst **float64) {
		var f float64
		if _, ok := get(name); ok {
			before := len(errs)
			setFloat(name, &f)
			if len(errs) == before {
				*dst = &f
			}
		}
	}
	setString := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	setString("SCENE", &c.Scene)
	setInt("WIDTH", &c.Width)
	setInt("HEIGHT", &c.Height)
	setInt("SAMPLES", &c.SamplesPerPixel)
	setInt("DEPTH", &c.MaxDepth)
	setInt("WORKERS", &c.NumWorkers)
	setInt("TILE_SIZE", &c.TileSize)
	if v, ok := get("SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Seed = seed
		}
	}

	setOptionalFloat("MASS", &c.Mass)
	setOptionalFloat("G", &c.G)
	if v, ok := get("SINGULARITY"); ok {
		p, err := ParseVec3(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSINGULARITY: %w", EnvPrefix, err))
		} else {
			c.Position = &p
		}
	}
	setFloat("STEP", &c.StepLength)
	setFloat("MAX_TIME", &c.MaxTime)

	setString("OUTPUT", &c.Output)
	setString("PREVIEW", &c.Preview)
	setInt("PREVIEW_SIZE", &c.PreviewSize)
	if v, ok := get("MARK"); ok {
		mark, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMARK: %w", EnvPrefix, err))
		} else {
			c.Mark = mark
		}
	}

	setString("S3_BUCKET", &c.S3.Bucket)
	setString("S3_REGION", &c.S3.Region)
	setString("S3_ENDPOINT", &c.S3.Endpoint)
	setString("S3_PREFIX", &c.S3.Prefix)
	setString("S3_ACCESS_KEY", &c.S3.AccessKey)
	setString("S3_SECRET_KEY", &c.S3.SecretKey)

	return errors.Join(errs...)
}

// RegisterFlags binds command-line flags to c, using the current values as defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "Scene to render (see -list)")
	fs.IntVar(&c.Width, "width", c.Width, "Image width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "Image height in pixels")
	fs.IntVar(&c.SamplesPerPixel, "samples", c.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&c.MaxDepth, "depth", c.MaxDepth, "Maximum bounce depth")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed")
	fs.IntVar(&c.NumWorkers, "workers", c.NumWorkers, "Number of render workers (0 = CPU count)")
	fs.IntVar(&c.TileSize, "tile", c.TileSize, "Tile size in pixels")

	fs.Var(&optionalFloat{dst: &c.Mass}, "mass", "Singularity mass (overrides the scene)")
	fs.Var(&optionalFloat{dst: &c.G}, "g", "Gravitational constant (overrides the scene)")
	fs.Var(&vecFlag{dst: &c.Position}, "singularity", "Singularity position as x,y,z (overrides the scene)")
	fs.Float64Var(&c.StepLength, "step", c.StepLength, "Ray-bending step length (0 = scene default)")
	fs.Float64Var(&c.MaxTime, "max-time", c.MaxTime, "Ray-bending time budget (0 = scene default)")

	fs.StringVar(&c.Output, "o", c.Output, "PPM output path, - for stdout")
	fs.StringVar(&c.Preview, "preview", c.Preview, "Optional PNG preview path")
	fs.IntVar(&c.PreviewSize, "preview-size", c.PreviewSize, "Longest preview edge in pixels (0 = full size)")
	fs.BoolVar(&c.Mark, "mark", c.Mark, "Ring the singularity on PNG previews")

	fs.StringVar(&c.S3.Bucket, "s3-bucket", c.S3.Bucket, "Publish renders to this bucket")
	fs.StringVar(&c.S3.Region, "s3-region", c.S3.Region, "Bucket region")
	fs.StringVar(&c.S3.Endpoint, "s3-endpoint", c.S3.Endpoint, "Custom S3-compatible endpoint")
	fs.StringVar(&c.S3.Prefix, "s3-prefix", c.S3.Prefix, "Object key prefix")
	fs.BoolVar(&c.List, "list", c.List, "List available scenes and exit")
}

// Validate reports every invalid field
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		errs = append(errs, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("depth must not be negative, got %d", c.MaxDepth))
	}
	if c.TileSize < 0 || c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("tile size and workers must not be negative"))
	}
	if c.StepLength < 0 {
		errs = append(errs, fmt.Errorf("step length must not be negative, got %g", c.StepLength))
	}
	if c.MaxTime < 0 {
		errs = append(errs, fmt.Errorf("max time must not be negative, got %g", c.MaxTime))
	}
	if c.Mass != nil && *c.Mass < 0 {
		errs = append(errs, fmt.Errorf("mass must not be negative, got %g", *c.Mass))
	}
	if c.PreviewSize < 0 {
		errs = append(errs, fmt.Errorf("preview size must not be negative, got %d", c.PreviewSize))
	}
	if c.Output == "" {
		errs = append(errs, fmt.Errorf("output path must not be empty"))
	}
	return errors.Join(errs...)
}

// ApplyToScene copies image, sampling and gravity settings onto s
func (c Config) ApplyToScene(s *scene.Scene) {
	s.SetImageSize(c.Width, c.Height)
	s.SamplingConfig.SamplesPerPixel = c.SamplesPerPixel
	s.SamplingConfig.MaxDepth = c.MaxDepth
	if c.StepLength > 0 {
		s.SamplingConfig.StepLength = c.StepLength
	}
	if c.MaxTime > 0 {
		s.SamplingConfig.MaxTime = c.MaxTime
	}

	if c.Mass != nil {
		s.Singularity.Mass = *c.Mass
	}
	if c.G != nil {
		s.Singularity.G = *c.G
	}
	if c.Position != nil {
		s.Singularity.Position = *c.Position
	}
}

// RendererConfig returns the scheduling part of the config
func (c Config) RendererConfig() renderer.Config {
	return renderer.Config{
		TileSize:   c.TileSize,
		NumWorkers: c.NumWorkers,
		Seed:       c.Seed,
	}
}

// ParseVec3 parses "x,y,z"
func ParseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid component %q: %w", part, err)
		}
		v[i] = f
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// optionalFloat is a flag.Value that is nil until set
type optionalFloat struct {
	dst **float64
}

func (f *optionalFloat) String() string {
	if f.dst == nil || *f.dst == nil {
		return ""
	}
	return strconv.FormatFloat(**f.dst, 'g', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f.dst = &v
	return nil
}

// vecFlag is a flag.Value holding an optional x,y,z vector
type vecFlag struct {
	dst **core.Vec3
}

func (f *vecFlag) String() string {
	if f.dst == nil || *f.dst == nil {
		return ""
	}
	v := **f.dst
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

func (f *vecFlag) Set(s string) error {
	v, err := ParseVec3(s)
	if err != nil {
		return err
	}
	*f.dst = &v
	return nil
}
