// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"

	"github.com/dylanmsu/caustic-engineering/polygon"
)

// BuildTargetDualCells rebuilds the median dual cells of every vertex
// using the current target_points (§4.4 "build_*_dual_cells"). Call this
// at the start of every transport iteration, after the target points have
// moved.
func (m *Mesh) BuildTargetDualCells() []polygon.Polygon {
	return buildDualCells(m.TargetPoints, m)
}

// BuildSourceDualCells builds the median dual cells against the fixed
// source_points; used once, up front, to derive per-vertex target areas
// from the input image.
func (m *Mesh) BuildSourceDualCells() []polygon.Polygon {
	return buildDualCells(m.SourcePoints, m)
}

func buildDualCells(points []polygon.Vec3, m *Mesh) []polygon.Polygon {
	cells := make([]polygon.Polygon, m.NumVertices())
	for v := range cells {
		cells[v] = dualCellOf(points, m, v)
	}
	return cells
}

func midpoint(a, b polygon.Vec3) polygon.Vec3 {
	return polygon.Vec3{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Z: (a.Z + b.Z) / 2}
}

// sharedOther returns the vertex common to the two "other-than-v" vertex
// pairs of two angularly-adjacent incident triangles.
func sharedOther(oA, oB [2]int) (shared int, ok bool) {
	if oA[0] == oB[0] || oA[0] == oB[1] {
		return oA[0], true
	}
	if oA[1] == oB[0] || oA[1] == oB[1] {
		return oA[1], true
	}
	return 0, false
}

// dualCellOf builds the median dual cell of vertex v: the ring alternates
// between incident-triangle centroids and incident-edge midpoints.
// Boundary vertices close their cell via the two bounding edge midpoints
// and the vertex itself (§4.4).
func dualCellOf(points []polygon.Vec3, m *Mesh, v int) polygon.Polygon {
	tris := m.Neighbors[v]
	n := len(tris)
	if n == 0 {
		return nil
	}

	others := make([][2]int, n)
	for k, t := range tris {
		a, b := otherTwo(m.Triangles[t], v)
		others[k] = [2]int{a, b}
	}

	if !m.Boundary[v] {
		poly := make(polygon.Polygon, 0, 2*n)
		for k := 0; k < n; k++ {
			poly = append(poly, triangleCentroid(points, m.Triangles[tris[k]]))
			next := (k + 1) % n
			shared, ok := sharedOther(others[k], others[next])
			if !ok {
				chk.Panic("mesh: interior vertex %d has a broken triangle fan (tri %d / %d)", v, tris[k], tris[next])
			}
			poly = append(poly, midpoint(points[v], points[shared]))
		}
		return poly
	}

	// boundary vertex: the fan is open; find the two ends.
	poly := make(polygon.Polygon, 0, 2*n+3)
	poly = append(poly, points[v])

	if n == 1 {
		// a single incident triangle at a boundary vertex (the mesh's
		// bottom-right and top-left corners): both fan ends are its own two
		// other vertices, taken in the triangle's counter-clockwise order
		// after v so the cell winds counter-clockwise like the triangle.
		first, second := others[0][0], others[0][1]
		if m.Triangles[tris[0]][1] == v {
			first, second = second, first
		}
		poly = append(poly, midpoint(points[v], points[first]))
		poly = append(poly, triangleCentroid(points, m.Triangles[tris[0]]))
		poly = append(poly, midpoint(points[v], points[second]))
		return poly
	}

	startUnshared, ok := unsharedEnd(others[0], others[1])
	if !ok {
		chk.Panic("mesh: boundary vertex %d has a broken triangle fan at its start", v)
	}
	poly = append(poly, midpoint(points[v], points[startUnshared]))

	for k := 0; k < n; k++ {
		poly = append(poly, triangleCentroid(points, m.Triangles[tris[k]]))
		if k == n-1 {
			break
		}
		shared, ok := sharedOther(others[k], others[k+1])
		if !ok {
			chk.Panic("mesh: boundary vertex %d has a broken triangle fan (tri %d / %d)", v, tris[k], tris[k+1])
		}
		poly = append(poly, midpoint(points[v], points[shared]))
	}

	endUnshared, ok := unsharedEnd(others[n-1], others[n-2])
	if !ok {
		chk.Panic("mesh: boundary vertex %d has a broken triangle fan at its end", v)
	}
	poly = append(poly, midpoint(points[v], points[endUnshared]))

	return poly
}

// unsharedEnd returns the vertex of `own` that is NOT the one shared with
// `neighbor` — i.e. the loose end of a triangle fan.
func unsharedEnd(own, neighbor [2]int) (int, bool) {
	shared, ok := sharedOther(own, neighbor)
	if !ok {
		return 0, false
	}
	if own[0] == shared {
		return own[1], true
	}
	return own[0], true
}
