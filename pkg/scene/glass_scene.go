package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewGlassScene creates solid and hollow glass spheres over a checkered floor
func NewGlassScene() (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 1.2, 3),
		LookAt:   core.NewVec3(0, 0.5, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     35.0,
	}
	s := NewScene("glass", cameraConfig)

	checker := material.NewCheckerPattern(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.3, 0.1))
	floor, err := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewPatternedLambertian(checker))
	if err != nil {
		return nil, err
	}

	glass := material.NewDielectric(1.5)
	water := material.NewDielectric(1.33)
	bubble := material.NewDielectric(1.0 / 1.5)
	red := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))

	s.Add(
		floor,
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1.5), 0.5, glass),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1.5), 0.45, bubble),
		geometry.NewSphere(core.NewVec3(1.1, 0.5, -1), 0.5, water),
		geometry.NewSphere(core.NewVec3(0.3, 0.2, -3), 0.2, red),
	)

	return s, nil
}
