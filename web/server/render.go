package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-lensing-raytracer/pkg/integrator"
	"github.com/df07/go-lensing-raytracer/pkg/renderer"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

var renderCounter atomic.Int64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string
	Width   int
	Height  int
	Samples int
	Depth   int
	Seed    int
	Mass    *float64 // nil keeps the scene's singularity
	Format  string   // "ppm" or "png"
	Mark    bool     // Ring the singularity on png output
}

// parseRenderRequest parses and validates request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: "png"}

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}
	if format := query.Get("format"); format != "" {
		if format != "ppm" && format != "png" {
			return nil, fmt.Errorf("format must be ppm or png, got: %s", format)
		}
		req.Format = format
	}
	if mark := query.Get("mark"); mark != "" {
		v, err := strconv.ParseBool(mark)
		if err != nil {
			return nil, fmt.Errorf("invalid value for mark: %s", mark)
		}
		req.Mark = v
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 1920); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 1, 1080); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 16, 1, 1024); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 10, 0, 50); err != nil {
		return nil, err
	}
	if req.Seed, err = parseIntParam(query, "seed", 42, 0, 1<<31-1); err != nil {
		return nil, err
	}
	if req.Mass, err = parseOptionalFloatParam(query, "mass", 0, 10); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// buildScene creates the requested scene with the request's overrides applied
func buildScene(req *RenderRequest) (*scene.Scene, error) {
	s, err := scene.NewSceneByName(req.Scene)
	if err != nil {
		return nil, err
	}
	s.SetImageSize(req.Width, req.Height)
	s.SamplingConfig.SamplesPerPixel = req.Samples
	s.SamplingConfig.MaxDepth = req.Depth
	if req.Mass != nil {
		s.Singularity.Mass = *req.Mass
	}
	return s, nil
}

// handleRender renders a single frame and returns it as PPM or PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := buildScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	config := renderer.DefaultConfig()
	config.Seed = int64(req.Seed)

	// Use request context to stop rendering when the client disconnects
	ctx := r.Context()
	pt := integrator.NewPathTracingIntegrator(sceneObj.SamplingConfig)
	frame, stats, err := renderer.NewRaytracer(sceneObj, pt, config, NewRequestLogger(renderID)).Render(ctx)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			log.Printf("[%s] client disconnected, render cancelled", renderID)
			return
		}
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Total-Samples", strconv.Itoa(stats.TotalSamples))

	start := time.Now()
	switch req.Format {
	case "ppm":
		w.Header().Set("Content-Type", "image/x-portable-pixmap")
		err = renderer.WritePPM(w, frame)
	default:
		w.Header().Set("Content-Type", "image/png")
		img := renderer.PreviewImage(frame, 0)
		if req.Mark {
			img = renderer.MarkSingularity(img, sceneObj)
		}
		err = renderer.EncodeImage(w, img)
	}
	if err != nil {
		log.Printf("[%s] failed to write %s response: %v", renderID, req.Format, err)
		return
	}
	log.Printf("[%s] sent %s in %v", renderID, req.Format, time.Since(start))
}
