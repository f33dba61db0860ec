// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/la"

	"github.com/dylanmsu/caustic-engineering/polygon"
)

// vertexRing returns the set of vertices directly edge-connected to v,
// derived from its incident triangles (§4.4, used by Laplacian smoothing).
func (m *Mesh) vertexRing(v int) []int {
	seen := make(map[int]bool)
	var ring []int
	for _, t := range m.Neighbors[v] {
		a, b := otherTwo(m.Triangles[t], v)
		for _, o := range [2]int{a, b} {
			if !seen[o] {
				seen[o] = true
				ring = append(ring, o)
			}
		}
	}
	return ring
}

// LaplacianSmooth moves every interior vertex of TargetPoints by
// alpha*(mean(neighbor positions) - position); boundary vertices are
// pinned (slid only along their boundary edge) per §4.4.
func (m *Mesh) LaplacianSmooth(alpha float64) {
	n := m.NumVertices()
	next := make([]polygon.Vec3, n)
	copy(next, m.TargetPoints)

	for v := 0; v < n; v++ {
		ring := m.vertexRing(v)
		if len(ring) == 0 {
			continue
		}
		var mean polygon.Vec3
		for _, o := range ring {
			mean.X += m.TargetPoints[o].X
			mean.Y += m.TargetPoints[o].Y
		}
		inv := 1 / float64(len(ring))
		mean.X *= inv
		mean.Y *= inv

		if !m.Boundary[v] {
			next[v].X = m.TargetPoints[v].X + alpha*(mean.X-m.TargetPoints[v].X)
			next[v].Y = m.TargetPoints[v].Y + alpha*(mean.Y-m.TargetPoints[v].Y)
			continue
		}

		// boundary vertex: project the smoothing displacement onto the
		// boundary edge direction so the vertex slides along the edge
		// rather than leaving the domain.
		bdir, ok := m.boundaryDirection(v, ring)
		if !ok {
			continue
		}
		dx := alpha * (mean.X - m.TargetPoints[v].X)
		dy := alpha * (mean.Y - m.TargetPoints[v].Y)
		proj := dx*bdir.X + dy*bdir.Y
		next[v].X = m.TargetPoints[v].X + proj*bdir.X
		next[v].Y = m.TargetPoints[v].Y + proj*bdir.Y
	}
	m.TargetPoints = next
}

// boundaryDirection returns the unit tangent of the boundary edge at
// vertex v, derived from its two neighbors in `ring` across boundary edges
// (edges of exactly one triangle). A corner, whose two boundary edges are
// not collinear, has no such tangent and reports false (it stays pinned).
func (m *Mesh) boundaryDirection(v int, ring []int) (polygon.Vec3, bool) {
	var ends []int
	for _, o := range ring {
		shared := 0
		for _, t := range m.Neighbors[v] {
			if tri := m.Triangles[t]; tri[0] == o || tri[1] == o || tri[2] == o {
				shared++
			}
		}
		if shared == 1 {
			ends = append(ends, o)
		}
	}
	if len(ends) < 2 {
		return polygon.Vec3{}, false
	}
	sa, sb, sv := m.SourcePoints[ends[0]], m.SourcePoints[ends[1]], m.SourcePoints[v]
	if cross := (sa.X-sv.X)*(sb.Y-sv.Y) - (sa.Y-sv.Y)*(sb.X-sv.X); cross > polygon.AreaEps || cross < -polygon.AreaEps {
		return polygon.Vec3{}, false
	}
	a := m.TargetPoints[ends[0]]
	b := m.TargetPoints[ends[1]]
	dx, dy := b.X-a.X, b.Y-a.Y
	length := hypot(dx, dy)
	if length < 1e-15 {
		return polygon.Vec3{}, false
	}
	return polygon.Vec3{X: dx / length, Y: dy / length}, true
}

func hypot(dx, dy float64) float64 {
	return la.VecNorm([]float64{dx, dy})
}
