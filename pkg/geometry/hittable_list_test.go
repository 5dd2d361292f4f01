package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if _, isHit := list.Hit(ray, defaultInterval()); isHit {
		t.Error("Empty list should never report a hit")
	}
}

func TestHittableList_NearestHit(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -3), 1, DummyMaterial{})
	far := NewSphere(core.NewVec3(0, 0, -10), 1, DummyMaterial{})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	// Order in the list must not matter
	for _, list := range []*HittableList{NewHittableList(near, far), NewHittableList(far, near)} {
		hit, isHit := list.Hit(ray, defaultInterval())
		if !isHit {
			t.Fatal("Expected hit, but got miss")
		}
		if math.Abs(hit.T-2.0) > 1e-9 {
			t.Errorf("Expected nearest hit at t=2, got t=%f", hit.T)
		}
	}
}

func TestHittableList_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(99))
	list := NewHittableList()
	var spheres []*Sphere
	for i := 0; i < 30; i++ {
		s := NewSphere(
			core.NewVec3(random.Float64()*10-5, random.Float64()*10-5, -random.Float64()*20-2),
			random.Float64()+0.2,
			DummyMaterial{},
		)
		spheres = append(spheres, s)
		list.Add(s)
	}

	for i := 0; i < 200; i++ {
		dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, -1)
		ray := core.NewRay(core.NewVec3(0, 0, 0), dir)

		var best *material.HitRecord
		for _, s := range spheres {
			if hit, ok := s.Hit(ray, defaultInterval()); ok && (best == nil || hit.T < best.T) {
				best = hit
			}
		}

		hit, isHit := list.Hit(ray, defaultInterval())
		if isHit != (best != nil) {
			t.Fatalf("Ray %d: list hit=%t, brute force hit=%t", i, isHit, best != nil)
		}
		if isHit && math.Abs(hit.T-best.T) > 1e-12 {
			t.Fatalf("Ray %d: list t=%f, brute force t=%f", i, hit.T, best.T)
		}
	}
}

func TestHittableList_BoundingBox(t *testing.T) {
	list := NewHittableList(
		NewSphere(core.NewVec3(-2, 0, 0), 1, DummyMaterial{}),
		NewSphere(core.NewVec3(3, 1, 0), 0.5, DummyMaterial{}),
	)
	box := list.BoundingBox()

	expected := core.NewAABB(core.NewVec3(-3, -1, -1), core.NewVec3(3.5, 1.5, 1))
	if !box.Min.Equals(expected.Min) || !box.Max.Equals(expected.Max) {
		t.Errorf("Expected %v, got %v", expected, box)
	}
	if list.Len() != 2 {
		t.Errorf("Expected 2 objects, got %d", list.Len())
	}
}
