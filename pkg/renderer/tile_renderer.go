package renderer

import (
	"image"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// displayGamma is the gamma applied before storing pixels
const displayGamma = 2.0

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds no mutable state, so one instance serves every worker.
type TileRenderer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	sampling   core.SamplingConfig
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(camera *Camera, world geometry.Hittable, integ integrator.Integrator, sampling core.SamplingConfig) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integ,
		sampling:   sampling,
	}
}

// RenderTileBounds renders pixels within bounds into buffer.
// Pixels are visited row by row so the sampler sequence is fixed for a given tile.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, buffer *core.PixelBuffer, sampler core.Sampler) RenderStats {
	stats := RenderStats{Tiles: 1}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var ps PixelStats
			tr.samplePixel(i, j, &ps, sampler)
			buffer.Set(i, j, ps.GetColor().GammaCorrect(displayGamma).Clamp(0, 1))

			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount
		}
	}

	return stats
}

// samplePixel traces SamplesPerPixel jittered rays through pixel (i, j); j = 0 is the top row
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) {
	width := float64(tr.sampling.Width)
	height := float64(tr.sampling.Height)
	row := float64(tr.sampling.Height - 1 - j)

	for ps.SampleCount < tr.sampling.SamplesPerPixel {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / width
		t := (row + jitter.Y) / height

		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}
}
