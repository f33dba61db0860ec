// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"

	"github.com/dylanmsu/caustic-engineering/grid"
	"github.com/dylanmsu/caustic-engineering/polygon"
)

// InterpolateRaster rasterizes a per-vertex scalar field `scalar` (indexed
// like TargetPoints) into a resX×resY grid, barycentrically interpolating
// within each triangle of the current target parameterization (§4.4
// "interpolate_raster"). If any pixel inside the mesh's own bounding box
// is missed by every triangle — possible when the mesh has folded — miss
// is true and the returned grid should be discarded; callers smooth and
// retry without taking a step (§7).
func (m *Mesh) InterpolateRaster(scalar []float64, resX, resY int) (out grid.Grid, miss bool) {
	out = grid.New(resX, resY)
	covered := make([][]bool, resY)
	for i := range covered {
		covered[i] = make([]bool, resX)
	}

	pxW := m.Width / float64(resX)
	pxH := m.Height / float64(resY)

	for _, tri := range m.Triangles {
		a, b, c := m.TargetPoints[tri[0]], m.TargetPoints[tri[1]], m.TargetPoints[tri[2]]
		minX := math.Min(a.X, math.Min(b.X, c.X))
		maxX := math.Max(a.X, math.Max(b.X, c.X))
		minY := math.Min(a.Y, math.Min(b.Y, c.Y))
		maxY := math.Max(a.Y, math.Max(b.Y, c.Y))

		j0 := clampi(int(math.Floor(minX/pxW)), 0, resX-1)
		j1 := clampi(int(math.Ceil(maxX/pxW)), 0, resX-1)
		i0 := clampi(int(math.Floor(minY/pxH)), 0, resY-1)
		i1 := clampi(int(math.Ceil(maxY/pxH)), 0, resY-1)

		for i := i0; i <= i1; i++ {
			py := (float64(i) + 0.5) * pxH
			for j := j0; j <= j1; j++ {
				px := (float64(j) + 0.5) * pxW
				inside, l0, l1, l2 := polygon.PointInTriangle(a, b, c, px, py, 1e-9)
				if !inside {
					continue
				}
				out[i][j] = l0*scalar[tri[0]] + l1*scalar[tri[1]] + l2*scalar[tri[2]]
				covered[i][j] = true
			}
		}
	}

	// any pixel within the mesh's own bounding box that no triangle
	// claimed signals a fold (§4.4, §7 "triangle miss").
	meshJ0, meshJ1, meshI0, meshI1 := m.targetBoundsPixels(pxW, pxH, resX, resY)
	for i := meshI0; i <= meshI1; i++ {
		for j := meshJ0; j <= meshJ1; j++ {
			if !covered[i][j] {
				return out, true
			}
		}
	}
	return out, false
}

func (m *Mesh) targetBoundsPixels(pxW, pxH float64, resX, resY int) (j0, j1, i0, i1 int) {
	minX, minY := m.TargetPoints[0].X, m.TargetPoints[0].Y
	maxX, maxY := minX, minY
	for _, p := range m.TargetPoints[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	j0 = clampi(int(math.Ceil(minX/pxW)), 0, resX-1)
	j1 = clampi(int(math.Floor(maxX/pxW))-1, 0, resX-1)
	i0 = clampi(int(math.Ceil(minY/pxH)), 0, resY-1)
	i1 = clampi(int(math.Floor(maxY/pxH))-1, 0, resY-1)
	if j1 < j0 {
		j1 = j0
	}
	if i1 < i0 {
		i1 = i0
	}
	return
}

// IntegrateCellGradients area-weights a gradient field (gx,gy), sampled on
// a resX×resY grid, over each vertex's current target dual cell: clip the
// cell against every pixel it overlaps, accumulate pixel_grad·clipped_area,
// and divide by the cell's own area (§4.5 step 7).
func IntegrateCellGradients(gx, gy grid.Grid, cells []polygon.Polygon, resX, resY int, width, height float64) (vx, vy []float64) {
	pxW := width / float64(resX)
	pxH := height / float64(resY)

	n := len(cells)
	vx = make([]float64, n)
	vy = make([]float64, n)

	for v, cell := range cells {
		if len(cell) < 3 {
			continue
		}
		x0, y0, x1, y1 := cellPixelBounds(cell, pxW, pxH, resX, resY)
		var accX, accY, accArea float64
		for py := y0; py < y1; py++ {
			for px := x0; px < x1; px++ {
				rect := polygon.Rect{
					MinX: float64(px) * pxW, MaxX: float64(px+1) * pxW,
					MinY: float64(py) * pxH, MaxY: float64(py+1) * pxH,
				}
				clipped := cell.ClipToRect(rect)
				a := math.Abs(clipped.SignedArea())
				if a <= polygon.AreaEps {
					continue
				}
				accX += gx[py][px] * a
				accY += gy[py][px] * a
				accArea += a
			}
		}
		if accArea > polygon.AreaEps {
			vx[v] = accX / accArea
			vy[v] = accY / accArea
		}
	}
	return
}
