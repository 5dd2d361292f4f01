package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// planeExtent bounds infinite planes so they can live inside a BVH
const planeExtent = 1e6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Unit normal
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane. The normal is normalized; a zero normal is an error.
func NewPlane(point, normal core.Vec3, mat material.Material) (*Plane, error) {
	unit, err := normal.Normalize()
	if err != nil {
		return nil, fmt.Errorf("plane normal: %w", err)
	}
	return &Plane{
		Point:    point,
		Normal:   unit,
		Material: mat,
	}, nil
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel rays never meet the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !rayT.Surrounds(t) {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}

// BoundingBox returns a bounding box for this plane
func (p *Plane) BoundingBox() core.AABB {
	const epsilon = 0.001 // Keeps axis-aligned boxes from having zero width

	switch {
	case math.Abs(p.Normal.X) == 1:
		x := p.Point.X
		return core.NewAABB(
			core.NewVec3(x-epsilon, -planeExtent, -planeExtent),
			core.NewVec3(x+epsilon, planeExtent, planeExtent),
		)
	case math.Abs(p.Normal.Y) == 1:
		y := p.Point.Y
		return core.NewAABB(
			core.NewVec3(-planeExtent, y-epsilon, -planeExtent),
			core.NewVec3(planeExtent, y+epsilon, planeExtent),
		)
	case math.Abs(p.Normal.Z) == 1:
		z := p.Point.Z
		return core.NewAABB(
			core.NewVec3(-planeExtent, -planeExtent, z-epsilon),
			core.NewVec3(planeExtent, planeExtent, z+epsilon),
		)
	default:
		return core.NewAABB(
			core.NewVec3(-planeExtent, -planeExtent, -planeExtent),
			core.NewVec3(planeExtent, planeExtent, planeExtent),
		)
	}
}
