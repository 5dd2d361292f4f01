package integrator

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Background supplies the color of rays that escape the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground blends vertically from Bottom (looking straight down) to Top (straight up)
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a new gradient background
func NewGradientBackground(top, bottom core.Vec3) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// NewSkyBackground returns the white-to-blue sky
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Color maps the ray direction's Y from [-1,1] to a blend factor in [0,1]
func (g *GradientBackground) Color(ray core.Ray) core.Vec3 {
	direction, err := ray.Direction.Normalize()
	if err != nil {
		return g.Bottom.Lerp(g.Top, 0.5)
	}
	a := 0.5 * (direction.Y + 1.0)
	return g.Bottom.Lerp(g.Top, a)
}

// SolidBackground returns the same color in every direction
type SolidBackground struct {
	Value core.Vec3
}

// NewSolidBackground creates a new solid background
func NewSolidBackground(color core.Vec3) *SolidBackground {
	return &SolidBackground{Value: color}
}

// Color returns the background color
func (s *SolidBackground) Color(ray core.Ray) core.Vec3 {
	return s.Value
}
