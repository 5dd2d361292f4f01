package renderer

import (
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestPixelStats_Average(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Empty pixel should be black, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	ps.AddSample(core.NewVec3(0, 0, 1))
	ps.AddSample(core.NewVec3(1, 1, 1))

	expected := core.NewVec3(0.5, 0.5, 0.5)
	if got := ps.GetColor(); !got.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if ps.SampleCount != 4 {
		t.Errorf("Expected 4 samples, got %d", ps.SampleCount)
	}
}

func TestRenderStats_Merge(t *testing.T) {
	total := RenderStats{Workers: 2}
	total.Merge(RenderStats{TotalPixels: 10, TotalSamples: 40, Tiles: 1})
	total.Merge(RenderStats{TotalPixels: 6, TotalSamples: 24, Tiles: 1})
	total.finalize()

	if total.TotalPixels != 16 || total.TotalSamples != 64 || total.Tiles != 2 {
		t.Errorf("Unexpected totals %+v", total)
	}
	if total.AverageSamples != 4 {
		t.Errorf("Expected average 4, got %f", total.AverageSamples)
	}
	if total.Workers != 2 {
		t.Errorf("Merge should not touch Workers, got %d", total.Workers)
	}
}
