package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Accepted ranges for render parameters
var (
	widthLimits = ParamLimits{Min: 16, Max: 1920}
	sppLimits   = ParamLimits{Min: 1, Max: 1000}
	depthLimits = ParamLimits{Min: 0, Max: 100}
)

// RenderIDHeader carries the ID assigned to each render
const RenderIDHeader = "X-Render-Id"

// RenderRequest represents a render request from the client.
// Zero Width or SamplesPerPixel and negative MaxDepth keep the scene's values.
type RenderRequest struct {
	Scene           string         `json:"scene"`
	Width           int            `json:"width"`
	SamplesPerPixel int            `json:"samplesPerPixel"`
	MaxDepth        int            `json:"maxDepth"`
	Seed            int64          `json:"seed"`
	Format          imageio.Format `json:"format"`
}

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	ID        string           `json:"id"`
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Format    imageio.Format   `json:"format"`
	ImageData string           `json:"imageData"` // Base64 encoded image
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	Dropped   int64            `json:"consoleDropped"` // Messages that did not fit in the console buffer
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Tiles          int     `json:"tiles"`
	Workers        int     `json:"workers"`
}

// renderResult is the outcome of renderScene
type renderResult struct {
	id      string
	scene   *scene.Scene
	image   []byte
	stats   renderer.RenderStats
	console []ConsoleMessage
	dropped int64
}

// errBadRequest marks failures caused by the request rather than the server
var errBadRequest = errors.New("bad request")

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Seed: 1, Format: imageio.FormatPNG}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, widthLimits.Min, widthLimits.Max); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, sppLimits.Min, sppLimits.Max); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", -1, depthLimits.Min, depthLimits.Max); err != nil {
		return nil, err
	}

	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}
	if value := values.Get("format"); value != "" {
		if req.Format, err = imageio.ParseFormat(value); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// buildScene creates the requested scene with the request's overrides applied
func buildScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sceneObj.SetWidth(req.Width)
	}
	if req.SamplesPerPixel > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth >= 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}

	if err := sceneObj.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return sceneObj, nil
}

// renderScene renders the request and encodes the image. The render stops when ctx is done.
func (s *Server) renderScene(ctx context.Context, req *RenderRequest) (*renderResult, error) {
	sceneObj, err := buildScene(req)
	if err != nil {
		return nil, err
	}

	renderID := uuid.New().String()
	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(renderID, consoleChan)

	config := renderer.DefaultConfig()
	config.Seed = req.Seed

	raytracer, err := renderer.NewRaytracer(sceneObj, config, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	buffer, stats, err := raytracer.Render(ctx)
	if err != nil {
		return nil, err
	}

	var encoded bytes.Buffer
	if err := imageio.Encode(&encoded, buffer, req.Format); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &renderResult{
		id:      renderID,
		scene:   sceneObj,
		image:   encoded.Bytes(),
		stats:   stats,
		console: drainConsole(consoleChan),
		dropped: logger.Dropped(),
	}, nil
}

// drainConsole collects the messages already queued without waiting for more
func drainConsole(consoleChan chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

// renderError maps render failures to HTTP responses
func renderError(c echo.Context, req *RenderRequest, err error) error {
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		return jsonError(c, http.StatusNotFound, "Unknown scene: %s", req.Scene)
	case errors.Is(err, errBadRequest):
		return jsonError(c, http.StatusBadRequest, "Invalid request: %v", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return jsonError(c, http.StatusServiceUnavailable, "Render cancelled: %v", err)
	}
	return jsonError(c, http.StatusInternalServerError, "Render error: %v", err)
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request: %v", err)
	}

	result, err := s.renderScene(c.Request().Context(), req)
	if err != nil {
		return renderError(c, req, err)
	}

	c.Response().Header().Set(RenderIDHeader, result.id)
	return c.Blob(http.StatusOK, req.Format.ContentType(), result.image)
}

// handleRenderJSON renders a scene and returns the image base64 encoded with stats and console output
func (s *Server) handleRenderJSON(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request: %v", err)
	}

	startTime := time.Now()
	result, err := s.renderScene(c.Request().Context(), req)
	if err != nil {
		return renderError(c, req, err)
	}

	sampling := result.scene.GetSamplingConfig()
	c.Response().Header().Set(RenderIDHeader, result.id)
	return c.JSON(http.StatusOK, RenderResponse{
		ID:        result.id,
		Scene:     req.Scene,
		Width:     sampling.Width,
		Height:    sampling.Height,
		Format:    req.Format,
		ImageData: base64.StdEncoding.EncodeToString(result.image),
		Stats: Stats{
			TotalPixels:    result.stats.TotalPixels,
			TotalSamples:   result.stats.TotalSamples,
			AverageSamples: result.stats.AverageSamples,
			Tiles:          result.stats.Tiles,
			Workers:        result.stats.Workers,
		},
		Console:   result.console,
		Dropped:   result.dropped,
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
}
