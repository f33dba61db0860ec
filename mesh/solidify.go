// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/dylanmsu/caustic-engineering/polygon"

// Solid is a closed triangle mesh: a front face (the solved lens surface),
// a flat back face offset by -thickness, and stitched side walls joining
// their shared boundary loop (§4.4 "Solidification"). It carries no
// texture or normal data; writers consume Vertices/Triangles directly.
type Solid struct {
	Vertices  []polygon.Vec3
	Triangles []Triangle
}

// Solidify extrudes the mesh's current source_points (with their solved Z)
// into a closed solid of the given thickness: the front face keeps the
// lens geometry, a parallel back face sits at z = min(frontZ) - thickness,
// and the boundary loop is stitched into side-wall quads (as two
// triangles each), so the result is watertight and printable.
func (m *Mesh) Solidify(thickness float64) *Solid {
	n := m.NumVertices()
	minZ := m.SourcePoints[0].Z
	for _, p := range m.SourcePoints[1:] {
		if p.Z < minZ {
			minZ = p.Z
		}
	}
	backZ := minZ - thickness

	verts := make([]polygon.Vec3, 2*n)
	copy(verts, m.SourcePoints)
	for i, p := range m.SourcePoints {
		verts[n+i] = polygon.Vec3{X: p.X, Y: p.Y, Z: backZ}
	}

	var tris []Triangle
	for _, t := range m.Triangles {
		tris = append(tris, t)
		tris = append(tris, Triangle{n + t[0], n + t[2], n + t[1]})
	}

	loop := m.boundaryLoop()
	for k := 0; k < len(loop); k++ {
		a := loop[k]
		b := loop[(k+1)%len(loop)]
		tris = append(tris, Triangle{a, b, n + a})
		tris = append(tris, Triangle{b, n + b, n + a})
	}

	return &Solid{Vertices: verts, Triangles: tris}
}

// boundaryLoop walks the boundary vertices of the mesh into a single
// ordered cycle, starting from an arbitrary boundary vertex and following
// whichever neighbor across a boundary edge (an edge of exactly one
// triangle) hasn't been visited yet.
func (m *Mesh) boundaryLoop() []int {
	var start = -1
	for v, b := range m.Boundary {
		if b {
			start = v
			break
		}
	}
	if start < 0 {
		return nil
	}

	visited := make(map[int]bool)
	loop := []int{start}
	visited[start] = true
	cur := start
	for {
		next := -1
		for _, o := range m.vertexRing(cur) {
			if visited[o] {
				continue
			}
			shared := 0
			for _, t := range m.Neighbors[cur] {
				if tri := m.Triangles[t]; tri[0] == o || tri[1] == o || tri[2] == o {
					shared++
				}
			}
			if shared == 1 {
				next = o
				break
			}
		}
		if next < 0 {
			break
		}
		loop = append(loop, next)
		visited[next] = true
		cur = next
	}
	return loop
}
