package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// DummyMaterial scatters nothing; geometry tests only care about hit records
type DummyMaterial struct{}

func (d DummyMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

// defaultInterval matches what the integrator uses for secondary rays
func defaultInterval() core.Interval {
	return core.SecondaryRayInterval()
}
