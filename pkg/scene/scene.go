package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	CameraConfig   renderer.CameraConfig // AspectRatio is taken from SamplingConfig
	SamplingConfig core.SamplingConfig
	Objects        []geometry.Hittable   // Objects in the scene, in insertion order
	Background     integrator.Background // Color of rays that escape
	UseBVH         bool                  // Intersect through a BVH instead of a linear list
}

// NewScene creates an empty scene with default sampling and a sky background
func NewScene(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:           name,
		CameraConfig:   cameraConfig,
		SamplingConfig: core.DefaultSamplingConfig(),
		Background:     integrator.NewSkyBackground(),
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// SetWidth changes the image width and derives the height from the current aspect ratio
func (s *Scene) SetWidth(width int) {
	aspect := s.SamplingConfig.AspectRatio()
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = max(1, int(math.Round(float64(width)/aspect)))
}

// GetCamera builds the camera for the configured image aspect ratio
func (s *Scene) GetCamera() (*renderer.Camera, error) {
	config := s.CameraConfig
	config.AspectRatio = s.SamplingConfig.AspectRatio()
	return renderer.NewCamera(config)
}

// GetWorld returns the aggregate the integrator intersects against
func (s *Scene) GetWorld() geometry.Hittable {
	if s.UseBVH {
		return geometry.NewBVH(s.Objects)
	}
	return geometry.NewHittableList(s.Objects...)
}

// GetBackground returns the scene background
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetSamplingConfig returns the image and sampling settings
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the total number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// Validate reports the first problem that would make the scene unrenderable
func (s *Scene) Validate() error {
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if _, err := s.GetCamera(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	for i, object := range s.Objects {
		if err := validateObject(object); err != nil {
			return fmt.Errorf("%w: scene %q object %d: %v", core.ErrInvalidConfig, s.Name, i, err)
		}
	}
	return nil
}

// validateObject checks shapes and materials that carry parameters
func validateObject(object geometry.Hittable) error {
	switch obj := object.(type) {
	case nil:
		return fmt.Errorf("nil object")
	case *geometry.Transformed:
		return validateObject(obj.Object)
	case *geometry.Sphere:
		if err := obj.Validate(); err != nil {
			return err
		}
		return validateMaterial(obj.Material)
	case *geometry.Plane:
		if obj.Material == nil {
			return fmt.Errorf("plane: material is required")
		}
		return validateMaterial(obj.Material)
	}
	return nil
}

func validateMaterial(mat material.Material) error {
	if dielectric, ok := mat.(*material.Dielectric); ok {
		if !(dielectric.RefractiveIndex > 0) {
			return fmt.Errorf("dielectric: refractive index must be positive, got %g", dielectric.RefractiveIndex)
		}
	}
	return nil
}
