// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_construction01(tst *testing.T) {
	chk.PrintTitle("construction01. vertex count, winding, boundary flags")

	m := New(4, 3, 5, 4)
	if m.NumVertices() != 20 {
		tst.Errorf("expected 20 vertices, got %d", m.NumVertices())
	}
	if len(m.Triangles) != 2*4*3 {
		tst.Errorf("expected 24 triangles, got %d", len(m.Triangles))
	}

	for i, tri := range m.Triangles {
		a, b, c := m.SourcePoints[tri[0]], m.SourcePoints[tri[1]], m.SourcePoints[tri[2]]
		area := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
		if area <= 0 {
			tst.Errorf("triangle %d has non-positive signed area %v", i, area)
		}
	}

	for j := 0; j < m.Rx; j++ {
		if !m.Boundary[m.Idx(0, j)] || !m.Boundary[m.Idx(m.Ry-1, j)] {
			tst.Errorf("row 0/last should be boundary at col %d", j)
		}
	}
	if m.Boundary[m.Idx(1, 1)] {
		tst.Errorf("interior vertex (1,1) flagged as boundary")
	}
}

func Test_dualCells01_areaSum(tst *testing.T) {
	chk.PrintTitle("dualCells01. sum of dual cell areas equals mesh area")

	m := New(2, 2, 6, 5)
	cells := m.BuildSourceDualCells()
	var sum float64
	for _, c := range cells {
		sum += math.Abs(c.SignedArea())
	}
	want := m.Width * m.Height
	if math.Abs(sum-want) > 1e-9*want {
		tst.Errorf("dual cell area sum = %v, want %v", sum, want)
	}
}

func Test_calculateErrors01_zeroSum(tst *testing.T) {
	chk.PrintTitle("calculateErrors01. errors sum to zero")

	src := []float64{1.0, 2.5, 0.3, 4.0}
	tgt := []float64{0.9, 2.0, 1.0, 3.0}
	errs := CalculateErrors(src, tgt)
	var sum float64
	for _, e := range errs {
		sum += e
	}
	if math.Abs(sum) > 1e-12 {
		tst.Errorf("error sum = %v, want 0", sum)
	}
}

func Test_stepGrid01_neverInverts(tst *testing.T) {
	chk.PrintTitle("stepGrid01. step_grid never folds a triangle")

	m := New(1, 1, 5, 5)
	n := m.NumVertices()
	dx := make([]float64, n)
	dy := make([]float64, n)
	for i, p := range m.TargetPoints {
		dx[i] = 0.5 - p.X
		dy[i] = 0.5 - p.Y
	}

	m.StepGrid(dx, dy, 0.9)

	for i, tri := range m.Triangles {
		a, b, c := m.TargetPoints[tri[0]], m.TargetPoints[tri[1]], m.TargetPoints[tri[2]]
		area := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
		if area <= 0 {
			tst.Errorf("triangle %d folded after step_grid, area=%v", i, area)
		}
	}
}

func Test_bvh01_locate(tst *testing.T) {
	chk.PrintTitle("bvh01. point location finds the containing triangle")

	m := New(10, 10, 6, 6)
	m.BuildBVH(4, 16)

	triID, l0, l1, l2, found := m.bvh.Locate(5, 5)
	if !found {
		tst.Fatalf("expected to locate point (5,5) inside mesh")
	}
	if l0 < 0 || l1 < 0 || l2 < 0 {
		tst.Errorf("barycentric coords should be non-negative inside triangle: %v %v %v", l0, l1, l2)
	}
	sum := l0 + l1 + l2
	if math.Abs(sum-1) > 1e-9 {
		tst.Errorf("barycentric coords should sum to 1, got %v", sum)
	}
	_ = triID

	_, _, _, _, found = m.bvh.Locate(-5, -5)
	if found {
		tst.Errorf("expected point outside mesh bounds to not be located")
	}
}

func Test_raster01_constantField(tst *testing.T) {
	chk.PrintTitle("raster01. rasterizing a constant field reproduces the constant")

	m := New(4, 4, 5, 5)
	scalar := make([]float64, m.NumVertices())
	for i := range scalar {
		scalar[i] = 3.25
	}

	out, miss := m.InterpolateRaster(scalar, 20, 20)
	if miss {
		tst.Fatalf("unexpected triangle miss on a fresh, unfolded mesh")
	}
	for i := range out {
		for j := range out[i] {
			if math.Abs(out[i][j]-3.25) > 1e-9 && out[i][j] != 0 {
				tst.Errorf("pixel (%d,%d) = %v, want 3.25 or 0 (uncovered)", i, j, out[i][j])
			}
		}
	}
}

func Test_laplacianSmooth01_boundaryStaysOnEdge(tst *testing.T) {
	chk.PrintTitle("laplacianSmooth01. boundary vertices stay on the domain edge")

	m := New(5, 5, 6, 6)
	for i := range m.TargetPoints {
		if m.Boundary[i] {
			continue // boundary vertices start on the domain edge
		}
		m.TargetPoints[i].X += 0.05 * float64(i%3)
		m.TargetPoints[i].Y += 0.05 * float64(i%2)
	}
	m.LaplacianSmooth(0.5)

	const eps = 1e-9
	for v, isB := range m.Boundary {
		if !isB {
			continue
		}
		p := m.TargetPoints[v]
		onEdge := math.Abs(p.X) < eps || math.Abs(p.X-m.Width) < eps ||
			math.Abs(p.Y) < eps || math.Abs(p.Y-m.Height) < eps
		if !onEdge {
			tst.Errorf("boundary vertex %d left the domain edge: %+v", v, p)
		}
	}
}

func Test_refractiveNormals01_unitLength(tst *testing.T) {
	chk.PrintTitle("refractiveNormals01. (nx,ny) stay within the unit disk")

	m := New(10, 10, 4, 4)
	for i := range m.TargetPoints {
		m.TargetPoints[i].X += 0.3
	}
	nx, ny := m.RefractiveNormals(40, 1.49)
	for i := range nx {
		r2 := nx[i]*nx[i] + ny[i]*ny[i]
		if r2 > 1+1e-9 {
			tst.Errorf("vertex %d: nx^2+ny^2 = %v exceeds 1", i, r2)
		}
	}
}

func Test_refractiveNormals02_gaussianBlobOutwardZ(tst *testing.T) {
	chk.PrintTitle("refractiveNormals02. Gaussian-blob target keeps the full 3D normal outward (+z)")

	m := New(10, 10, 12, 12)
	cx, cy := m.Width/2, m.Height/2
	sigma := m.Width / 5

	// bend target points toward the center the way a converged
	// Gaussian-blob transport would: vertices near the blob's peak pull
	// inward to concentrate light there.
	for i, p := range m.SourcePoints {
		dx, dy := p.X-cx, p.Y-cy
		bump := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
		m.TargetPoints[i].X = p.X - 0.3*bump*dx
		m.TargetPoints[i].Y = p.Y - 0.3*bump*dy
	}

	nx, ny := m.RefractiveNormals(40, 1.49)
	for i := range nx {
		r2 := nx[i]*nx[i] + ny[i]*ny[i]
		if r2 >= 1 {
			tst.Errorf("vertex %d: nx^2+ny^2 = %v, no valid outward normal", i, r2)
			continue
		}
		if nz := math.Sqrt(1 - r2); nz <= 0 {
			tst.Errorf("vertex %d: reconstructed outward normal z-component %v is not positive", i, nz)
		}
	}
}

func Test_solidify01_watertight(tst *testing.T) {
	chk.PrintTitle("solidify01. solidify produces a front+back+walls mesh")

	m := New(4, 4, 5, 5)
	for i := range m.SourcePoints {
		m.SourcePoints[i].Z = 0.1
	}
	solid := m.Solidify(2.0)

	n := m.NumVertices()
	if len(solid.Vertices) != 2*n {
		tst.Errorf("expected %d vertices, got %d", 2*n, len(solid.Vertices))
	}
	expectWalls := 2 * len(m.boundaryLoop())
	expectTris := 2*len(m.Triangles) + expectWalls
	if len(solid.Triangles) != expectTris {
		tst.Errorf("expected %d triangles, got %d", expectTris, len(solid.Triangles))
	}
	for _, p := range solid.Vertices[n:] {
		if math.Abs(p.Z-(-1.9)) > 1e-9 {
			tst.Errorf("back face vertex z = %v, want -1.9", p.Z)
		}
	}
}
