package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		check       func(t *testing.T, opts options)
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, opts options) {
				if opts.Scene != "default" || opts.Format != "png" || opts.Depth != -1 || opts.Seed != 1 {
					t.Errorf("Unexpected defaults: %+v", opts)
				}
			},
		},
		{
			name: "overrides",
			args: []string{"-scene", "glass", "-width", "200", "-spp", "8", "-depth", "5", "-seed", "7", "-bvh"},
			check: func(t *testing.T, opts options) {
				if opts.Scene != "glass" || opts.Width != 200 || opts.SPP != 8 || opts.Depth != 5 || opts.Seed != 7 || !opts.BVH {
					t.Errorf("Overrides not applied: %+v", opts)
				}
			},
		},
		{name: "negative width", args: []string{"-width", "-5"}, expectError: true},
		{name: "negative spp", args: []string{"-spp", "-1"}, expectError: true},
		{name: "unknown flag", args: []string{"-bogus"}, expectError: true},
		{name: "extra arguments", args: []string{"extra"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			opts, err := parseOptions(tt.args, &out)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for args %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestParseOptions_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := parseOptions([]string{"-help"}, &out)
	if !errors.Is(err, errHelp) {
		t.Fatalf("Expected errHelp, got %v", err)
	}

	for _, name := range scene.Names() {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Help output should list scene %q", name)
		}
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		opts        options
		expectError bool
	}{
		{"default scene", options{Scene: "default", Depth: -1}, false},
		{"glass scene", options{Scene: "glass", Depth: -1}, false},
		{"resized scene", options{Scene: "random-spheres", Width: 120, SPP: 4, Depth: 3}, false},
		{"unknown scene", options{Scene: "nonexistent", Depth: -1}, true},
		{"empty scene name", options{Scene: "", Depth: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := createScene(tt.opts)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, but got none", tt.opts.Scene)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for %q", tt.opts.Scene)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.opts.Scene, err)
			}
			if tt.opts.Width > 0 && sc.SamplingConfig.Width != tt.opts.Width {
				t.Errorf("Expected width %d, got %d", tt.opts.Width, sc.SamplingConfig.Width)
			}
			if tt.opts.SPP > 0 && sc.SamplingConfig.SamplesPerPixel != tt.opts.SPP {
				t.Errorf("Expected spp %d, got %d", tt.opts.SPP, sc.SamplingConfig.SamplesPerPixel)
			}
			if tt.opts.Depth >= 0 && sc.SamplingConfig.MaxDepth != tt.opts.Depth {
				t.Errorf("Expected depth %d, got %d", tt.opts.Depth, sc.SamplingConfig.MaxDepth)
			}
			if sc.SamplingConfig.Height <= 0 {
				t.Errorf("Scene height should be positive, got %d", sc.SamplingConfig.Height)
			}
		})
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name        string
		opts        options
		expected    string
		expectError bool
	}{
		{"default png", options{Scene: "glass", Format: "png"}, filepath.Join("output", "glass", "render_20240309_140507.png"), false},
		{"ppm format", options{Scene: "default", Format: "PPM"}, filepath.Join("output", "default", "render_20240309_140507.ppm"), false},
		{"explicit path", options{Scene: "default", Format: "png", Output: "out/image.bmp"}, "out/image.bmp", false},
		{"unknown format", options{Scene: "default", Format: "gif"}, "", true},
		{"explicit path without extension", options{Scene: "default", Output: "out/image"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := createOutputPath(tt.opts, now)
			if tt.expectError {
				if !errors.Is(err, imageio.ErrUnknownFormat) {
					t.Errorf("Expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if path != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, path)
			}
		})
	}
}

func TestRun_WritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.ppm")

	var out bytes.Buffer
	err := run([]string{"-scene", "single-sphere", "-width", "16", "-spp", "2", "-depth", "3", "-out", path}, &out)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out.String())
	}

	buf, err := imageio.LoadFile(path)
	if err != nil {
		t.Fatalf("Failed to load rendered image: %v", err)
	}
	if buf.Width != 16 {
		t.Errorf("Expected width 16, got %d", buf.Width)
	}
	if !strings.Contains(out.String(), "Render saved as") {
		t.Errorf("Expected save message in output:\n%s", out.String())
	}
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-list"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "random-spheres") {
		t.Errorf("Expected scene list, got:\n%s", out.String())
	}
}
