package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an invertible affine transform with its inverse cached
type Transform struct {
	matrix  mgl64.Mat4
	inverse mgl64.Mat4
}

// IdentityTransform returns the transform that leaves everything unchanged
func IdentityTransform() Transform {
	return Transform{matrix: mgl64.Ident4(), inverse: mgl64.Ident4()}
}

// NewTransform wraps a 4x4 matrix. Singular matrices are rejected.
func NewTransform(m mgl64.Mat4) (Transform, error) {
	if det := m.Det(); math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return Transform{}, fmt.Errorf("%w: transform matrix is not invertible (det=%g)", ErrInvalidConfig, det)
	}
	return Transform{matrix: m, inverse: m.Inv()}, nil
}

// Translation moves points by (x, y, z)
func Translation(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// Scaling scales along each axis
func Scaling(x, y, z float64) mgl64.Mat4 {
	return mgl64.Scale3D(x, y, z)
}

// RotationX rotates by radians around the X axis
func RotationX(radians float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(radians)
}

// RotationY rotates by radians around the Y axis
func RotationY(radians float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(radians)
}

// RotationZ rotates by radians around the Z axis
func RotationZ(radians float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(radians)
}

// Shearing moves each coordinate in proportion to the other two
func Shearing(xy, xz, yx, yz, zx, zy float64) mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		mgl64.Vec4{1, xy, xz, 0},
		mgl64.Vec4{yx, 1, yz, 0},
		mgl64.Vec4{zx, zy, 1, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// Chain composes matrices so that the first argument is applied first
func Chain(matrices ...mgl64.Mat4) mgl64.Mat4 {
	result := mgl64.Ident4()
	for _, m := range matrices {
		result = m.Mul4(result)
	}
	return result
}

// Point applies the transform to a position
func (t Transform) Point(p Vec3) Vec3 {
	return fromVec4(t.matrix.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// InversePoint maps a position back through the inverse transform
func (t Transform) InversePoint(p Vec3) Vec3 {
	return fromVec4(t.inverse.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// InverseVector maps a direction back through the inverse transform
func (t Transform) InverseVector(v Vec3) Vec3 {
	return fromVec4(t.inverse.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}))
}

// InverseRay maps a world-space ray into the transform's local space.
// The direction is not renormalized so hit parameters are shared between spaces.
func (t Transform) InverseRay(r Ray) Ray {
	return Ray{Origin: t.InversePoint(r.Origin), Direction: t.InverseVector(r.Direction)}
}

// Normal maps a local-space surface normal to world space using the inverse transpose.
// The result is not normalized.
func (t Transform) Normal(n Vec3) Vec3 {
	return fromVec4(t.inverse.Transpose().Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0}))
}

// Bounds returns the world-space box enclosing the transformed local box
func (t Transform) Bounds(local AABB) AABB {
	corners := local.Corners()
	for i, c := range corners {
		corners[i] = t.Point(c)
	}
	return NewAABBFromPoints(corners[:]...)
}

func fromVec4(v mgl64.Vec4) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
