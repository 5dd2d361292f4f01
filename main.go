package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options holds everything the command line can control
type options struct {
	Scene   string
	Output  string
	Format  string
	Width   int // 0 keeps the scene's width
	SPP     int // 0 keeps the scene's samples per pixel
	Depth   int // -1 keeps the scene's max depth
	Workers int
	Seed    int64
	BVH     bool
	List    bool
	Help    bool
}

// errHelp signals that usage was printed and nothing should be rendered
var errHelp = errors.New("help requested")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseOptions parses command line arguments. Usage text goes to output.
func parseOptions(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.Scene, "scene", "default", "Scene to render (see -list)")
	fs.StringVar(&opts.Output, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.Format, "format", "png", "Image format when -out is not given: png, ppm, bmp or tiff")
	fs.IntVar(&opts.Width, "width", 0, "Image width in pixels; height follows the scene's aspect ratio (0 = scene default)")
	fs.IntVar(&opts.SPP, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.Depth, "depth", -1, "Maximum ray bounce depth (-1 = scene default)")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.Int64Var(&opts.Seed, "seed", 1, "Random seed; the same seed always produces the same image")
	fs.BoolVar(&opts.BVH, "bvh", false, "Force BVH acceleration for the scene")
	fs.BoolVar(&opts.List, "list", false, "List available scenes")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.Help {
		fmt.Fprintln(output, "Weekend Raytracer")
		fmt.Fprintln(output, "Usage: raytracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(output)
		printScenes(output)
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Output will be saved to output/<scene>/render_<timestamp>.<format> unless -out is given")
		return opts, errHelp
	}

	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.Width < 0 {
		return opts, fmt.Errorf("width must not be negative, got %d", opts.Width)
	}
	if opts.SPP < 0 {
		return opts, fmt.Errorf("samples per pixel must not be negative, got %d", opts.SPP)
	}
	if opts.Workers < 0 {
		return opts, fmt.Errorf("workers must not be negative, got %d", opts.Workers)
	}

	return opts, nil
}

func printScenes(output io.Writer) {
	fmt.Fprintln(output, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(output, "  %-15s - %s\n", info.ID, info.Description)
	}
}

// createScene builds the requested scene and applies command line overrides
func createScene(opts options) (*scene.Scene, error) {
	sc, err := scene.Create(opts.Scene)
	if err != nil {
		return nil, err
	}

	if opts.Width > 0 {
		sc.SetWidth(opts.Width)
	}
	if opts.SPP > 0 {
		sc.SamplingConfig.SamplesPerPixel = opts.SPP
	}
	if opts.Depth >= 0 {
		sc.SamplingConfig.MaxDepth = opts.Depth
	}
	if opts.BVH {
		sc.UseBVH = true
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// createOutputPath returns the file to write. An explicit path wins; otherwise the
// file goes to output/<scene>/ with a timestamped name.
func createOutputPath(opts options, now time.Time) (string, error) {
	if opts.Output != "" {
		if _, err := imageio.FormatFromPath(opts.Output); err != nil {
			return "", err
		}
		return opts.Output, nil
	}

	format, err := imageio.ParseFormat(opts.Format)
	if err != nil {
		return "", err
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", opts.Scene, "render_"+timestamp+format.Extension()), nil
}

// printSystemInfo reports the host the render runs on
func printSystemInfo(output io.Writer) {
	physical, err := cpu.Counts(false)
	if err != nil {
		physical = 0
	}
	logical, err := cpu.Counts(true)
	if err != nil {
		logical = 0
	}
	fmt.Fprintf(output, "CPU cores: %d physical, %d logical\n", physical, logical)

	if memInfo, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(output, "Memory: %.1f GB total, %.1f GB available\n",
			float64(memInfo.Total)/(1<<30), float64(memInfo.Available)/(1<<30))
	}
}

func run(args []string, output io.Writer) error {
	opts, err := parseOptions(args, output)
	if err != nil {
		return err
	}

	if opts.List {
		printScenes(output)
		return nil
	}

	fmt.Fprintln(output, "Starting Weekend Raytracer...")
	printSystemInfo(output)

	sc, err := createScene(opts)
	if err != nil {
		return err
	}
	filename, err := createOutputPath(opts, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Using %s scene (%d objects)...\n", sc.Name, sc.GetPrimitiveCount())

	config := renderer.DefaultConfig()
	config.NumWorkers = opts.Workers
	config.Seed = opts.Seed

	raytracer, err := renderer.NewRaytracer(sc, config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	buffer, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(output, "Render completed in %v\n", stats.Duration)
	fmt.Fprintf(output, "Samples per pixel: %.1f (%d tiles, %d workers)\n",
		stats.AverageSamples, stats.Tiles, stats.Workers)

	if err := imageio.SaveFile(filename, buffer); err != nil {
		return fmt.Errorf("error saving image: %w", err)
	}

	fmt.Fprintf(output, "Render saved as %s\n", filename)
	return nil
}
