package material

import "github.com/df07/go-weekend-raytracer/pkg/core"

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value float64
	pair  core.Vec2
}

func (f fixedSampler) Get1D() float64 {
	return f.value
}

func (f fixedSampler) Get2D() core.Vec2 {
	return f.pair
}

func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.pair.X, f.pair.Y, f.value)
}

func mustNormalize(v core.Vec3) core.Vec3 {
	n, err := v.Normalize()
	if err != nil {
		panic(err)
	}
	return n
}

// hitFrom builds a hit record at the origin for a surface with the given outward normal
func hitFrom(ray core.Ray, outward core.Vec3) HitRecord {
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), T: 1}
	hit.SetFaceNormal(ray, outward)
	return hit
}
