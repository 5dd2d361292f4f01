package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() (*Camera, error)
	GetWorld() geometry.Hittable
	GetBackground() integrator.Background
	GetSamplingConfig() core.SamplingConfig
}

// Config contains settings that affect how a render is scheduled, not what it shows
type Config struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed for every tile's random generator
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       1,
	}
}

// Raytracer renders a scene into a pixel buffer
type Raytracer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator *integrator.PathTracingIntegrator
	sampling   core.SamplingConfig
	config     Config
	logger     core.Logger
}

// NewRaytracer prepares a render of scene. A nil logger discards output.
func NewRaytracer(scene Scene, config Config, logger core.Logger) (*Raytracer, error) {
	sampling := scene.GetSamplingConfig()
	if err := sampling.Validate(); err != nil {
		return nil, err
	}
	if config.TileSize < 0 {
		return nil, fmt.Errorf("%w: tile size %d must not be negative", core.ErrInvalidConfig, config.TileSize)
	}

	camera, err := scene.GetCamera()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = NopLogger{}
	}

	return &Raytracer{
		camera:     camera,
		world:      scene.GetWorld(),
		integrator: integrator.NewPathTracingIntegrator(sampling.MaxDepth, scene.GetBackground()),
		sampling:   sampling,
		config:     config,
		logger:     logger,
	}, nil
}

// Render traces the whole image. The result is gamma corrected, clamped to [0,1]
// and depends only on the scene and Config.Seed, not on worker count or scheduling.
func (rt *Raytracer) Render(ctx context.Context) (*core.PixelBuffer, RenderStats, error) {
	startTime := time.Now()

	width, height := rt.sampling.Width, rt.sampling.Height
	buffer := core.NewPixelBuffer(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)

	tileRenderer := NewTileRenderer(rt.camera, rt.world, rt.integrator, rt.sampling)
	pool := NewWorkerPool(tileRenderer, buffer, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (%d tiles, %d workers)...\n",
		width, height, rt.sampling.SamplesPerPixel, rt.integrator.MaxDepth(), len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: taskID})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var renderErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	stats.finalize()

	if renderErr != nil {
		rt.logger.Printf("Render stopped after %d/%d tiles: %v\n", stats.Tiles, len(tiles), renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	return buffer, stats, nil
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}
