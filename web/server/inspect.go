package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"` // World-space distance from the ray origin
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray // The camera ray; its direction is not unit length
	HitRecord *material.HitRecord
	Object    geometry.Hittable // The top-level scene object that was hit, nil if unknown
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", imageio.Quantize(c.X), imageio.Quantize(c.Y), imageio.Quantize(c.Z))
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material, point core.Vec3) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		albedo := m.Albedo.Evaluate(point)
		properties["albedo"] = vecArray(albedo)
		properties["color"] = hexColor(albedo)
		switch m.Albedo.(type) {
		case *material.StripePattern:
			properties["pattern"] = "stripe"
		case *material.CheckerPattern:
			properties["pattern"] = "checker"
		}
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.Transformed:
		innerType, innerProps := extractGeometryInfo(geom.Object)
		properties["object"] = map[string]interface{}{
			"type":       innerType,
			"properties": innerProps,
		}
		bbox := geom.BoundingBox()
		properties["boundingBox"] = map[string]interface{}{
			"min": vecArray(bbox.Min),
			"max": vecArray(bbox.Max),
		}
		return "transformed", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y), row 0 at the top,
// and returns the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	camera, err := sceneObj.GetCamera()
	if err != nil {
		return InspectResult{}, err
	}

	config := sceneObj.GetSamplingConfig()
	s := (float64(pixelX) + 0.5) / float64(config.Width)
	t := (float64(config.Height-1-pixelY) + 0.5) / float64(config.Height)

	// Fixed seed so the same pixel always inspects the same lens position
	ray := camera.GetRay(s, t, core.NewSeededSampler(0))

	hit, isHit := sceneObj.GetWorld().Hit(ray, core.SecondaryRayInterval())
	if !isHit {
		return InspectResult{Hit: false, Ray: ray}, nil
	}

	// Find the object that produced the closest hit; the aggregate doesn't say
	for _, object := range sceneObj.Objects {
		if objectHit, ok := object.Hit(ray, core.SecondaryRayInterval()); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, Ray: ray, HitRecord: hit, Object: object}, nil
		}
	}

	return InspectResult{Hit: true, Ray: ray, HitRecord: hit}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid scene parameters: %v", err)
	}

	sceneObj, err := buildScene(req)
	if err != nil {
		return renderError(c, req, err)
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	config := sceneObj.GetSamplingConfig()
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		return jsonError(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Inspect error: %v", err)
	}
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	record := result.HitRecord
	materialType, materialProps := extractMaterialInfo(record.Material, record.Point)
	geometryType, geometryProps := extractGeometryInfo(result.Object)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(record.Point),
		Normal:       vecArray(record.Normal),
		Distance:     record.T * result.Ray.Direction.Length(),
		FrontFace:    record.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
