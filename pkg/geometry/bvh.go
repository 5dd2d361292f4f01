package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Objects     []Hittable // Objects for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It returns the same nearest hit as a HittableList over the same objects.
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: if we have this many or fewer objects, store them in a leaf node
const leafThreshold = 4

// NewBVH constructs a BVH from a slice of objects
func NewBVH(objects []Hittable) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	// Partitioning reorders, so work on a copy
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return &BVH{Root: buildBVH(objectsCopy)}
}

// buildBVH recursively builds the tree with midpoint splits along the longest axis
func buildBVH(objects []Hittable) *BVHNode {
	boundingBox := objects[0].BoundingBox()
	for _, object := range objects[1:] {
		boundingBox = boundingBox.Union(object.BoundingBox())
	}

	if len(objects) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Objects: objects}
	}

	axis := boundingBox.LongestAxis()
	minVal := boundingBox.Min.Component(axis)
	maxVal := boundingBox.Max.Component(axis)
	if maxVal <= minVal {
		return &BVHNode{BoundingBox: boundingBox, Objects: objects}
	}

	left, right := partitionObjects(objects, axis, (minVal+maxVal)*0.5)

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Objects: objects}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(left),
		Right:       buildBVH(right),
	}
}

// partitionObjects splits objects by bounding box center on the chosen axis
func partitionObjects(objects []Hittable, axis int, splitPos float64) ([]Hittable, []Hittable) {
	var left, right []Hittable
	for _, object := range objects {
		if object.BoundingBox().Center().Component(axis) < splitPos {
			left = append(left, object)
		} else {
			right = append(right, object)
		}
	}
	return left, right
}

// Hit tests if a ray intersects any object in the BVH
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return hitNode(bvh.Root, ray, rayT)
}

// hitNode recursively tests ray intersection with BVH nodes
func hitNode(node *BVHNode, ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, rayT) {
		return nil, false
	}

	var closest *material.HitRecord
	closestSoFar := rayT.Max

	if node.Objects != nil {
		for _, object := range node.Objects {
			if hit, ok := object.Hit(ray, rayT.WithMax(closestSoFar)); ok {
				closest = hit
				closestSoFar = hit.T
			}
		}
		return closest, closest != nil
	}

	if hit, ok := hitNode(node.Left, ray, rayT); ok {
		closest = hit
		closestSoFar = hit.T
	}
	if hit, ok := hitNode(node.Right, ray, rayT.WithMax(closestSoFar)); ok {
		closest = hit
	}

	return closest, closest != nil
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// BVHStats summarizes the shape of the tree
type BVHStats struct {
	TotalNodes   int
	LeafNodes    int
	MaxDepth     int
	AvgDepth     float64
	TotalObjects int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root == nil {
		return stats
	}

	collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Objects != nil {
		stats.LeafNodes++
		stats.TotalObjects += len(node.Objects)
		stats.AvgDepth += float64(depth)
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
