package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Transformed places an object defined in its own local space into the world
type Transformed struct {
	Object    Hittable
	Transform core.Transform
	bounds    core.AABB
}

// NewTransformed wraps object with transform. The world bounds are computed once.
func NewTransformed(object Hittable, transform core.Transform) *Transformed {
	return &Transformed{
		Object:    object,
		Transform: transform,
		bounds:    transform.Bounds(object.BoundingBox()),
	}
}

// Hit intersects in local space and maps the record back to world space.
// The local ray keeps an unnormalized direction, so t is the same in both spaces.
func (tr *Transformed) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	local := tr.Transform.InverseRay(ray)

	localHit, ok := tr.Object.Hit(local, rayT)
	if !ok {
		return nil, false
	}

	outward, err := tr.Transform.Normal(localHit.OutwardNormal()).Normalize()
	if err != nil {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        localHit.T,
		Point:    ray.At(localHit.T),
		Material: localHit.Material,
	}
	hit.SetFaceNormal(ray, outward)

	return hit, true
}

// BoundingBox returns the world-space bounds of the transformed object
func (tr *Transformed) BoundingBox() core.AABB {
	return tr.bounds
}
