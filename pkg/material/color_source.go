package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at a world-space point
	Evaluate(point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Vec3) core.Vec3 {
	return s.Color
}

// StripePattern alternates between two colors along the pattern-space X axis
type StripePattern struct {
	A, B      core.Vec3
	transform core.Transform
}

// NewStripePattern creates stripes one unit wide, starting with A at x = 0
func NewStripePattern(a, b core.Vec3) *StripePattern {
	return &StripePattern{A: a, B: b, transform: core.IdentityTransform()}
}

// WithTransform places the pattern in world space
func (s *StripePattern) WithTransform(t core.Transform) *StripePattern {
	return &StripePattern{A: s.A, B: s.B, transform: t}
}

// Evaluate returns A when floor(x) is even and B otherwise
func (s *StripePattern) Evaluate(point core.Vec3) core.Vec3 {
	p := s.transform.InversePoint(point)
	if isEven(math.Floor(p.X)) {
		return s.A
	}
	return s.B
}

// CheckerPattern alternates between two colors in a 3D checkerboard
type CheckerPattern struct {
	A, B      core.Vec3
	transform core.Transform
}

// NewCheckerPattern creates unit cubes alternating between A and B
func NewCheckerPattern(a, b core.Vec3) *CheckerPattern {
	return &CheckerPattern{A: a, B: b, transform: core.IdentityTransform()}
}

// WithTransform places the pattern in world space
func (c *CheckerPattern) WithTransform(t core.Transform) *CheckerPattern {
	return &CheckerPattern{A: c.A, B: c.B, transform: t}
}

// Evaluate returns A when floor(x)+floor(y)+floor(z) is even and B otherwise
func (c *CheckerPattern) Evaluate(point core.Vec3) core.Vec3 {
	p := c.transform.InversePoint(point)
	if isEven(math.Floor(p.X) + math.Floor(p.Y) + math.Floor(p.Z)) {
		return c.A
	}
	return c.B
}

func isEven(f float64) bool {
	return math.Mod(f, 2) == 0
}
