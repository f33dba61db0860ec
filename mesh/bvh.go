// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"sort"

	"github.com/dylanmsu/caustic-engineering/polygon"
)

// BVH is a top-down, axis-aligned-box tree over the triangles of the
// target parameterization, split on the longest axis at the median
// (§4.4). It answers point-in-mesh queries; InvertedTransportMap is its
// only caller (InterpolateRaster and the height driver do not use it).
type BVH struct {
	root      *bvhNode
	points    []polygon.Vec3
	triangles []Triangle
	leafSize  int
	maxDepth  int
}

type bvhBox struct {
	minX, minY, maxX, maxY float64
}

func (b bvhBox) contains(x, y float64) bool {
	return x >= b.minX && x <= b.maxX && y >= b.minY && y <= b.maxY
}

func (b bvhBox) union(o bvhBox) bvhBox {
	return bvhBox{
		minX: math.Min(b.minX, o.minX),
		minY: math.Min(b.minY, o.minY),
		maxX: math.Max(b.maxX, o.maxX),
		maxY: math.Max(b.maxY, o.maxY),
	}
}

type bvhNode struct {
	box   bvhBox
	left  *bvhNode
	right *bvhNode
	tris  []int // leaf-only: triangle indices
}

// BuildBVH (re)builds the BVH over the current target_points, with the
// given leaf capacity and maximum tree depth. Call it before any
// point-location query that follows vertex motion (§3 Lifecycles).
func (m *Mesh) BuildBVH(leafSize, maxDepth int) {
	if leafSize < 1 {
		leafSize = 1
	}
	boxes := make([]bvhBox, len(m.Triangles))
	ids := make([]int, len(m.Triangles))
	for i, tri := range m.Triangles {
		boxes[i] = triangleBox(m.TargetPoints, tri)
		ids[i] = i
	}
	b := &BVH{points: m.TargetPoints, triangles: m.Triangles, leafSize: leafSize, maxDepth: maxDepth}
	b.root = b.build(ids, boxes, 0)
	m.bvh = b
}

func triangleBox(points []polygon.Vec3, tri Triangle) bvhBox {
	a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
	return bvhBox{
		minX: math.Min(a.X, math.Min(b.X, c.X)),
		minY: math.Min(a.Y, math.Min(b.Y, c.Y)),
		maxX: math.Max(a.X, math.Max(b.X, c.X)),
		maxY: math.Max(a.Y, math.Max(b.Y, c.Y)),
	}
}

func (b *BVH) build(ids []int, boxes []bvhBox, depth int) *bvhNode {
	node := &bvhNode{box: boundAll(ids, boxes)}

	if len(ids) <= b.leafSize || depth >= b.maxDepth {
		node.tris = ids
		return node
	}

	axis := longestAxis(node.box)
	sorted := make([]int, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return centerOf(boxes, sorted[i], axis) < centerOf(boxes, sorted[j], axis)
	})
	mid := len(sorted) / 2
	leftIDs := sorted[:mid]
	rightIDs := sorted[mid:]

	node.left = b.build(leftIDs, boxes, depth+1)
	node.right = b.build(rightIDs, boxes, depth+1)
	return node
}

func boundAll(ids []int, boxes []bvhBox) bvhBox {
	box := boxes[ids[0]]
	for _, id := range ids[1:] {
		box = box.union(boxes[id])
	}
	return box
}

func longestAxis(b bvhBox) int {
	if (b.maxX - b.minX) >= (b.maxY - b.minY) {
		return 0
	}
	return 1
}

func centerOf(boxes []bvhBox, id, axis int) float64 {
	b := boxes[id]
	if axis == 0 {
		return (b.minX + b.maxX) / 2
	}
	return (b.minY + b.maxY) / 2
}

// Locate returns the index of a triangle of the target parameterization
// containing point (x,y), along with its barycentric coordinates, or
// found=false if no triangle covers the point.
func (b *BVH) Locate(x, y float64) (triID int, l0, l1, l2 float64, found bool) {
	if b == nil || b.root == nil {
		return 0, 0, 0, 0, false
	}
	return b.locate(b.root, x, y)
}

func (b *BVH) locate(n *bvhNode, x, y float64) (int, float64, float64, float64, bool) {
	if !n.box.contains(x, y) {
		return 0, 0, 0, 0, false
	}
	if n.tris != nil {
		for _, t := range n.tris {
			tri := b.triangles[t]
			a, c1, c2 := b.points[tri[0]], b.points[tri[1]], b.points[tri[2]]
			if inside, l0, l1, l2 := polygon.PointInTriangle(a, c1, c2, x, y, 1e-9); inside {
				return t, l0, l1, l2, true
			}
		}
		return 0, 0, 0, 0, false
	}
	if id, l0, l1, l2, ok := b.locate(n.left, x, y); ok {
		return id, l0, l1, l2, ok
	}
	return b.locate(n.right, x, y)
}
