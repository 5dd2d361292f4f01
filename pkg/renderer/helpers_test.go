package renderer

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// testScene implements Scene for testing
type testScene struct {
	cameraConfig CameraConfig
	world        *geometry.HittableList
	background   integrator.Background
	sampling     core.SamplingConfig
}

func (s *testScene) GetCamera() (*Camera, error) {
	config := s.cameraConfig
	config.AspectRatio = s.sampling.AspectRatio()
	return NewCamera(config)
}
func (s *testScene) GetWorld() geometry.Hittable            { return s.world }
func (s *testScene) GetBackground() integrator.Background   { return s.background }
func (s *testScene) GetSamplingConfig() core.SamplingConfig { return s.sampling }

// newEmptyScene creates a scene with nothing but a background
func newEmptyScene(width, height, spp, depth int, background integrator.Background) *testScene {
	return &testScene{
		cameraConfig: DefaultCameraConfig(),
		world:        geometry.NewHittableList(),
		background:   background,
		sampling: core.SamplingConfig{
			Width:           width,
			Height:          height,
			SamplesPerPixel: spp,
			MaxDepth:        depth,
		},
	}
}

// newSpheresScene creates a small scene exercising every material
func newSpheresScene(width, height, spp, depth int) *testScene {
	s := newEmptyScene(width, height, spp, depth, integrator.NewSkyBackground())
	s.world.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))))
	s.world.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))))
	s.world.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)))
	s.world.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)))
	return s
}
