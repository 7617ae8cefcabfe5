package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-lensing-raytracer/pkg/core"
	"github.com/df07/go-lensing-raytracer/pkg/geometry"
	"github.com/df07/go-lensing-raytracer/pkg/integrator"
	"github.com/df07/go-lensing-raytracer/pkg/material"
	"github.com/df07/go-lensing-raytracer/pkg/renderer"
	"github.com/df07/go-lensing-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"` // Along the final segment
	FrontFace    bool                   `json:"frontFace"`
	Direction    [3]float64             `json:"direction"`  // Direction of the ray where it stopped
	Deflection   float64                `json:"deflection"` // Angle in degrees between primary and final direction
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes where a bent primary ray ended up
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // The shape that was hit, nil on a miss
	Primary   core.Ray       // Camera ray through the pixel center
	Final     core.Ray       // Segment that hit, or the escaped ray
}

// inspectPixel marches a ray through the center of a pixel and reports the first
// surface it reaches along its bent path
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	config := sceneObj.SamplingConfig
	u, v := renderer.ScreenCoords(pixelX, pixelY, config.Width, config.Height, core.NewVec2(0.5, 0.5))
	primary := sceneObj.Camera.GetRay(u, v)

	marcher := integrator.NewRayMarcher(sceneObj)
	hit, final, isHit := marcher.Trace(primary, sceneObj.World, 0.001)
	result := InspectResult{Hit: isHit, HitRecord: hit, Primary: primary, Final: final}
	if !isHit {
		return result
	}

	// The aggregate doesn't report which shape was hit, so re-test the segment
	for _, shape := range sceneObj.World.Shapes {
		if shapeHit, ok := shape.Hit(final, 0, hit.T+1e-9); ok && shapeHit.T == hit.T {
			result.Shape = shape
			break
		}
	}
	return result
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Box:
		properties["min"] = vecArray(geom.Min)
		properties["max"] = vecArray(geom.Max)
		return "box", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := buildScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	response := InspectResponse{
		Hit:        result.Hit,
		Direction:  vecArray(result.Final.Direction),
		Deflection: deflectionDegrees(result.Primary.Direction, result.Final.Direction),
	}

	if result.Hit {
		materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
		geometryType, geometryProps := extractGeometryInfo(result.Shape)

		response.MaterialType = materialType
		response.GeometryType = geometryType
		response.Point = vecArray(result.HitRecord.Point)
		response.Normal = vecArray(result.HitRecord.Normal)
		response.Distance = result.HitRecord.T
		response.FrontFace = result.HitRecord.FrontFace
		response.Properties = map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// deflectionDegrees returns the angle between two directions.
// atan2 keeps precision for the tiny angles weak fields produce.
func deflectionDegrees(a, b core.Vec3) float64 {
	a, b = a.Normalize(), b.Normalize()
	return math.Atan2(a.Cross(b).Length(), a.Dot(b)) * 180 / math.Pi
}
