package server

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	echo *echo.Echo
}

// NewServer creates a new web server with all routes registered
func NewServer(port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${method} ${uri} ${status} ${latency_human}\n",
	}))
	e.Use(middleware.CORS())

	s := &Server{port: port, echo: e}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/render/json", s.handleRenderJSON)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// errorResponse is the JSON body of every failed API call
type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(c echo.Context, status int, format string, args ...interface{}) error {
	return c.JSON(status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// HealthResponse reports server status and the host's capacity
type HealthResponse struct {
	Status      string  `json:"status"`
	CPUs        int     `json:"cpus"`
	MemoryTotal uint64  `json:"memoryTotal,omitempty"`
	MemoryUsed  float64 `json:"memoryUsedPercent,omitempty"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	response := HealthResponse{Status: "ok"}

	if cpus, err := cpu.Counts(true); err == nil {
		response.CPUs = cpus
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		response.MemoryTotal = memInfo.Total
		response.MemoryUsed = memInfo.UsedPercent
	}

	return c.JSON(http.StatusOK, response)
}

// handleScenes lists the scenes that can be rendered
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListScenes())
}

// SceneConfigResponse describes a scene's defaults and the accepted parameter ranges
type SceneConfigResponse struct {
	Scene    string                 `json:"scene"`
	Defaults SceneDefaults          `json:"defaults"`
	Limits   map[string]ParamLimits `json:"limits"`
}

// SceneDefaults contains the settings a scene renders with when not overridden
type SceneDefaults struct {
	Width           int `json:"width"`
	Height          int `json:"height"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

// ParamLimits is the inclusive range accepted for an integer parameter
type ParamLimits struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		return jsonError(c, http.StatusNotFound, "Unknown scene: %s", sceneName)
	}

	config := sceneObj.GetSamplingConfig()
	return c.JSON(http.StatusOK, SceneConfigResponse{
		Scene: sceneName,
		Defaults: SceneDefaults{
			Width:           config.Width,
			Height:          config.Height,
			SamplesPerPixel: config.SamplesPerPixel,
			MaxDepth:        config.MaxDepth,
		},
		Limits: map[string]ParamLimits{
			"width": {widthLimits.Min, widthLimits.Max},
			"spp":   {sppLimits.Min, sppLimits.Max},
			"depth": {depthLimits.Min, depthLimits.Max},
		},
	})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
