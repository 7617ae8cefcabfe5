package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-lensing-raytracer/pkg/config"
	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/integrator"
	"github.com/df07/go-lensing-raytracer/pkg/publish"
	"github.com/df07/go-lensing-raytracer/pkg/renderer"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], ".env", os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one image. The PPM goes to stdout unless an output path is given,
// so all progress output is written to stderr.
func run(ctx context.Context, args []string, envFile string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(args, envFile)
	if err != nil {
		return err
	}

	if cfg.List {
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(stdout, "  %-14s %s\n", info.ID, info.Description)
		}
		return nil
	}

	logger := renderer.NewWriterLogger(stderr)

	s, err := scene.NewSceneByName(cfg.Scene)
	if err != nil {
		return err
	}
	cfg.ApplyToScene(s)
	logger.Printf("Scene %q: %d primitives, singularity mass %g at %v\n",
		cfg.Scene, s.GetPrimitiveCount(), s.Singularity.Mass, s.Singularity.Position)

	pt := integrator.NewPathTracingIntegrator(s.SamplingConfig)
	frame, stats, err := renderer.NewRaytracer(s, pt, cfg.RendererConfig(), logger).Render(ctx)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logger.Printf("Samples per pixel: %.1f over %d pixels, average luminance %.3f\n",
		stats.AverageSamples, stats.TotalPixels, renderer.CalculateAverageLuminance(renderer.ToImage(frame)))

	var ppm bytes.Buffer
	if err := renderer.WritePPM(&ppm, frame); err != nil {
		return err
	}
	if err := writeOutput(cfg.Output, ppm.Bytes(), stdout); err != nil {
		return err
	}
	if cfg.Output != "-" {
		logger.Printf("Render saved as %s\n", cfg.Output)
	}

	if cfg.Preview != "" {
		if err := renderer.SaveImage(cfg.Preview, previewImage(cfg, s, frame)); err != nil {
			return err
		}
		logger.Printf("Preview saved as %s\n", cfg.Preview)
	}

	if cfg.S3.Enabled() {
		if err := publishFrame(ctx, cfg, s, frame, ppm.Bytes(), logger); err != nil {
			return err
		}
	}

	return nil
}

// writeOutput writes data to path, or to stdout when path is "-"
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// publishFrame uploads the PPM and a PNG preview under a timestamped name
func publishFrame(ctx context.Context, cfg config.Config, s *scene.Scene, frame *renderer.Frame, ppm []byte, logger core.Logger) error {
	uploader, err := publish.NewUploader(cfg.S3, logger)
	if err != nil {
		return err
	}

	base := fmt.Sprintf("%s/render_%s", cfg.Scene, time.Now().Format("20060102_150405"))

	var png bytes.Buffer
	if err := renderer.EncodeImage(&png, previewImage(cfg, s, frame)); err != nil {
		return err
	}

	for name, data := range map[string][]byte{base + ".ppm": ppm, base + ".png": png.Bytes()} {
		if _, err := uploader.Upload(ctx, name, data, publish.ContentType(name)); err != nil {
			return err
		}
	}
	return nil
}

// previewImage scales the frame for preview output, ringing the singularity if asked
func previewImage(cfg config.Config, s *scene.Scene, frame *renderer.Frame) image.Image {
	img := renderer.PreviewImage(frame, cfg.PreviewSize)
	if cfg.Mark {
		img = renderer.MarkSingularity(img, s)
	}
	return img
}
