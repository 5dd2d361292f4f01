package material

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestDielectric_MatchedIndexPassesStraight(t *testing.T) {
	glass := NewDielectric(1.0)
	sampler := core.NewSeededSampler(3)

	directions := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(0.9, 0.2, -0.1),
		core.NewVec3(-3, 2, -0.5),
	}

	for _, dir := range directions {
		unit := mustNormalize(dir)
		rayIn := core.NewRay(core.NewVec3(0, 0, 1), unit)

		for _, outward := range []core.Vec3{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)} {
			hit := hitFrom(rayIn, outward)
			for i := 0; i < 20; i++ {
				result, scattered := glass.Scatter(rayIn, hit, sampler)
				if !scattered {
					t.Fatal("Dielectric should always scatter")
				}
				if !result.Scattered.Direction.EqualsWithin(unit, 1e-9) {
					t.Fatalf("Direction %v: expected unchanged, got %v", unit, result.Scattered.Direction)
				}
			}
		}
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving glass at 60 degrees from the normal: 1.5 * sin(60) > 1
	dir := mustNormalize(core.NewVec3(math.Sin(math.Pi/3), 0, math.Cos(math.Pi/3)))
	rayIn := core.NewRay(core.NewVec3(0, 0, -1), dir)

	// Outward normal points +z, ray travels +z, so this is a back-face hit
	hit := hitFrom(rayIn, core.NewVec3(0, 0, 1))
	if hit.FrontFace {
		t.Fatal("Expected back-face hit")
	}

	// A draw of 1 never chooses Schlick reflection, so only TIR can reflect
	sampler := fixedSampler{value: 0.999999}

	result, _ := glass.Scatter(rayIn, hit, sampler)
	expected := core.Reflect(dir, hit.Normal)
	if !result.Scattered.Direction.EqualsWithin(expected, 1e-12) {
		t.Errorf("Expected reflection %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	sampler := core.NewSeededSampler(11)
	white := core.NewVec3(1, 1, 1)

	rayIn := core.NewRay(core.NewVec3(0, 1, 1), mustNormalize(core.NewVec3(0, -1, -1)))
	hit := hitFrom(rayIn, core.NewVec3(0, 0, 1))

	for i := 0; i < 50; i++ {
		result, scattered := glass.Scatter(rayIn, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != white {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
	}
}

func TestDielectric_RefractsIntoGlass(t *testing.T) {
	glass := NewDielectric(1.5)

	dir := mustNormalize(core.NewVec3(1, 0, -1))
	rayIn := core.NewRay(core.NewVec3(-1, 0, 1), dir)
	hit := hitFrom(rayIn, core.NewVec3(0, 0, 1))

	// Draw above the Schlick reflectance forces refraction
	sampler := fixedSampler{value: 0.999999}
	result, _ := glass.Scatter(rayIn, hit, sampler)

	// Snell: sin(out) = sin(45) / 1.5
	expectedSin := math.Sin(math.Pi/4) / 1.5
	if math.Abs(result.Scattered.Direction.X-expectedSin) > 1e-9 {
		t.Errorf("Expected sin(theta_t) %f, got %f", expectedSin, result.Scattered.Direction.X)
	}
	if result.Scattered.Direction.Z >= 0 {
		t.Errorf("Refracted ray should continue into the surface, got %v", result.Scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"Normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"Grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"Matched indices", 0.3, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
