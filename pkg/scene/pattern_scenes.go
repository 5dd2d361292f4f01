package scene

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewPlaneStripesScene creates a striped ground plane with two spheres
func NewPlaneStripesScene() (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 1.5, -5),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60.0,
	}
	s := NewScene("plane-stripes", cameraConfig)

	// Narrow stripes running diagonally across the floor
	stripeTransform, err := core.NewTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.RotationY(math.Pi/4)))
	if err != nil {
		return nil, err
	}
	stripes := material.NewStripePattern(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.6, 0.1, 0.1)).WithTransform(stripeTransform)

	floor, err := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewPatternedLambertian(stripes))
	if err != nil {
		return nil, err
	}

	s.Add(
		floor,
		geometry.NewSphere(core.NewVec3(-0.5, 1, 0.5), 1, material.NewLambertian(core.NewVec3(0.1, 1, 0.5))),
		geometry.NewSphere(core.NewVec3(1.5, 0.5, -0.5), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05)),
	)

	return s, nil
}

// NewShadowsScene creates squashed and rotated spheres on a floor in front of a backdrop
func NewShadowsScene() (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 1.5, -5),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     60.0,
	}
	s := NewScene("shadows", cameraConfig)
	s.UseBVH = true

	checker := material.NewCheckerPattern(core.NewVec3(1, 0.9, 0.9), core.NewVec3(0.3, 0.3, 0.3))
	floor, err := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewPatternedLambertian(checker))
	if err != nil {
		return nil, err
	}
	backdrop, err := geometry.NewPlane(core.NewVec3(0, 0, 6), core.NewVec3(0, 0, -1), material.NewLambertian(core.NewVec3(0.8, 0.85, 0.9)))
	if err != nil {
		return nil, err
	}
	s.Add(floor, backdrop)

	ellipsoids := []struct {
		translate [3]float64
		scale     [3]float64
		rotationZ float64
		mat       material.Material
	}{
		{[3]float64{-1.5, 0.33, -0.75}, [3]float64{0.33, 0.33, 0.33}, 0, material.NewLambertian(core.NewVec3(1, 0.8, 0.1))},
		{[3]float64{0, 0.6, 0.5}, [3]float64{1.2, 0.6, 0.6}, math.Pi / 8, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.1)},
		{[3]float64{1.5, 0.5, -0.5}, [3]float64{0.3, 0.5, 0.3}, -math.Pi / 6, material.NewDielectric(1.5)},
	}

	for _, e := range ellipsoids {
		transform, err := core.NewTransform(core.Chain(
			core.Scaling(e.scale[0], e.scale[1], e.scale[2]),
			core.RotationZ(e.rotationZ),
			core.Translation(e.translate[0], e.translate[1], e.translate[2]),
		))
		if err != nil {
			return nil, err
		}
		unit := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, e.mat)
		s.Add(geometry.NewTransformed(unit, transform))
	}

	return s, nil
}
