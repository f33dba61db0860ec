// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/gosl/la"

// RefractiveNormals computes, for every vertex, the (nx,ny) of the back
// surface normal that bends a vertically incident ray (0,0,-1) travelling
// inside the slab (index of refraction eta) so that it reaches the
// vertex's target point on a screen focalLength beyond the surface (§4.4
// "Refractive normals").
//
// Derivation: Snell's law decomposes the incident direction I and the
// desired transmitted direction T into normal and tangential components;
// since the tangential components of I and T are parallel (Snell's law),
// eta*I - T is purely along the normal, so N ∝ eta*I - T.
func (m *Mesh) RefractiveNormals(focalLength, eta float64) (nx, ny []float64) {
	n := m.NumVertices()
	nx = make([]float64, n)
	ny = make([]float64, n)

	incident := [3]float64{0, 0, -1}

	for i := 0; i < n; i++ {
		s := m.SourcePoints[i]
		t := m.TargetPoints[i]

		originZ := s.Z + focalLength
		dx := t.X - s.X
		dy := t.Y - s.Y
		dz := 0 - originZ
		length := la.VecNorm([]float64{dx, dy, dz})
		if length < 1e-15 {
			continue
		}
		tx, ty, tz := dx/length, dy/length, dz/length

		rx := eta*incident[0] - tx
		ry := eta*incident[1] - ty
		rz := eta*incident[2] - tz

		if rz < 0 {
			rx, ry, rz = -rx, -ry, -rz
		}
		rl := la.VecNorm([]float64{rx, ry, rz})
		if rl < 1e-15 {
			continue
		}
		nx[i] = rx / rl
		ny[i] = ry / rl
	}
	return
}
