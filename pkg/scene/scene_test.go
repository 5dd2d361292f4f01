package scene

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestCreate_AllScenesValid(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene should be valid: %v", err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene should contain objects")
			}
		})
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	_, err := Create("no-such-scene")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestListScenes_MatchesNames(t *testing.T) {
	names := Names()
	infos := ListScenes()
	if len(names) != len(infos) {
		t.Fatalf("Expected %d infos, got %d", len(names), len(infos))
	}
	for i, info := range infos {
		if info.ID != names[i] {
			t.Errorf("Info %d: expected id %q, got %q", i, names[i], info.ID)
		}
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("Info %q is missing display metadata", info.ID)
		}
	}
}

func TestRandomSpheres_Reproducible(t *testing.T) {
	a, err := NewRandomSpheresScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b, err := NewRandomSpheresScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("Object counts differ: %d vs %d", len(a.Objects), len(b.Objects))
	}
	for i := range a.Objects {
		sa := a.Objects[i].(*geometry.Sphere)
		sb := b.Objects[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs: %v vs %v", i, sa.Center, sb.Center)
		}
	}
}

func TestValidate_RejectsBadScenes(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Scene)
		target error
	}{
		{"Zero radius sphere", func(s *Scene) {
			s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0, material.NewLambertian(core.NewVec3(1, 1, 1))))
		}, core.ErrInvalidConfig},
		{"Negative radius inside transform", func(s *Scene) {
			s.Add(geometry.NewTransformed(
				geometry.NewSphere(core.NewVec3(0, 0, 0), -1, material.NewLambertian(core.NewVec3(1, 1, 1))),
				core.IdentityTransform(),
			))
		}, core.ErrInvalidConfig},
		{"Non-positive refractive index", func(s *Scene) {
			s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 1, material.NewDielectric(0)))
		}, core.ErrInvalidConfig},
		{"Missing material", func(s *Scene) {
			s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 1, nil))
		}, core.ErrInvalidConfig},
		{"Zero samples", func(s *Scene) { s.SamplingConfig.SamplesPerPixel = 0 }, core.ErrInvalidConfig},
		{"Zero height", func(s *Scene) { s.SamplingConfig.Height = 0 }, core.ErrInvalidConfig},
		{"Negative depth", func(s *Scene) { s.SamplingConfig.MaxDepth = -1 }, core.ErrInvalidConfig},
		{"Degenerate camera", func(s *Scene) { s.CameraConfig.LookAt = s.CameraConfig.LookFrom }, renderer.ErrInvalidCamera},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSingleSphereScene()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.modify(s)
			if err := s.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestSetWidth_KeepsAspectRatio(t *testing.T) {
	s := NewScene("test", renderer.DefaultCameraConfig())
	s.SetWidth(800)

	if s.SamplingConfig.Width != 800 || s.SamplingConfig.Height != 450 {
		t.Errorf("Expected 800x450, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}

	s.SetWidth(1)
	if s.SamplingConfig.Height != 1 {
		t.Errorf("Height should never drop below 1, got %d", s.SamplingConfig.Height)
	}
}

func TestGetWorld_BVHMatchesList(t *testing.T) {
	s, err := NewRandomSpheresScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	s.UseBVH = false
	list := s.GetWorld()
	s.UseBVH = true
	bvh := s.GetWorld()

	if _, ok := bvh.(*geometry.BVH); !ok {
		t.Fatalf("Expected a BVH world, got %T", bvh)
	}

	camera, err := s.GetCamera()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	sampler := core.NewSeededSampler(1)
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(sampler.Get1D(), sampler.Get1D(), sampler)
		listHit, listOK := list.Hit(ray, core.SecondaryRayInterval())
		bvhHit, bvhOK := bvh.Hit(ray, core.SecondaryRayInterval())
		if listOK != bvhOK || (listOK && listHit.T != bvhHit.T) {
			t.Fatalf("Ray %d: list and BVH disagree", i)
		}
	}
}

func TestScenes_RenderSmall(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			s.SetWidth(16)
			s.SamplingConfig.SamplesPerPixel = 1
			s.SamplingConfig.MaxDepth = 4

			rt, err := renderer.NewRaytracer(s, renderer.Config{TileSize: 8, NumWorkers: 2, Seed: 1}, nil)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			buffer, stats, err := rt.Render(context.Background())
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if stats.TotalPixels != buffer.Width*buffer.Height {
				t.Errorf("Expected %d pixels, got %d", buffer.Width*buffer.Height, stats.TotalPixels)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"random-spheres", "Random Spheres"},
		{"sphere_grid", "Sphere Grid"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if result := titleCase(tc.input); result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}
