// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// InvertedTransportMap samples, for every cell of a resX×resY grid over the
// target domain, the source-domain point that the current transport map
// sends to that cell's center — a diagnostic overlay confirming the map
// stays a bijection (supplements the transport iteration with the
// inverted-map visualization the original driver produced alongside each
// solve). Cells the map doesn't cover are reported with ok=false.
func (m *Mesh) InvertedTransportMap(resX, resY int) (sx, sy [][]float64, ok [][]bool) {
	sx = make([][]float64, resY)
	sy = make([][]float64, resY)
	ok = make([][]bool, resY)
	for i := range sx {
		sx[i] = make([]float64, resX)
		sy[i] = make([]float64, resX)
		ok[i] = make([]bool, resX)
	}

	if m.bvh == nil {
		m.BuildBVH(8, 20)
	}

	pxW := m.Width / float64(resX)
	pxH := m.Height / float64(resY)

	for i := 0; i < resY; i++ {
		py := (float64(i) + 0.5) * pxH
		for j := 0; j < resX; j++ {
			px := (float64(j) + 0.5) * pxW
			triID, l0, l1, l2, found := m.bvh.Locate(px, py)
			if !found {
				continue
			}
			tri := m.Triangles[triID]
			s0, s1, s2 := m.SourcePoints[tri[0]], m.SourcePoints[tri[1]], m.SourcePoints[tri[2]]
			sx[i][j] = l0*s0.X + l1*s1.X + l2*s2.X
			sy[i][j] = l0*s0.Y + l1*s1.Y + l2*s2.Y
			ok[i][j] = true
		}
	}
	return
}
