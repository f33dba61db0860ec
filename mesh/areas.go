// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"

	"github.com/dylanmsu/caustic-engineering/polygon"
)

// SourceAreas returns the signed area of every cell in cells (the current
// target-parameterization dual cells, per call site).
func SourceAreas(cells []polygon.Polygon) []float64 {
	areas := make([]float64, len(cells))
	for i, c := range cells {
		areas[i] = c.SignedArea()
	}
	return areas
}

// TargetAreas derives, for every vertex i, a target area from the input
// image: its source dual cell is clipped against every pixel rectangle it
// overlaps and pixel_intensity·clipped_area is accumulated. The result is
// globally renormalized so that Σ A_target[i] equals the mesh's own total
// area (§9 open question (b): never assume the source-cell-area sum
// equals W·H exactly — measure it and renormalize against it).
func (m *Mesh) TargetAreas(pixels [][]float64, sourceCells []polygon.Polygon, resX, resY int) []float64 {
	pxW := m.Width / float64(resX)
	pxH := m.Height / float64(resY)

	areas := make([]float64, len(sourceCells))
	var totalTargetArea float64
	for v, cell := range sourceCells {
		if len(cell) < 3 {
			continue
		}
		bx0, by0, bx1, by1 := cellPixelBounds(cell, pxW, pxH, resX, resY)
		var acc float64
		for py := by0; py < by1; py++ {
			for px := bx0; px < bx1; px++ {
				rect := polygon.Rect{
					MinX: float64(px) * pxW, MaxX: float64(px+1) * pxW,
					MinY: float64(py) * pxH, MaxY: float64(py+1) * pxH,
				}
				clipped := cell.ClipToRect(rect)
				a := math.Abs(clipped.SignedArea())
				if a <= polygon.AreaEps {
					continue
				}
				acc += pixels[py][px] * a
			}
		}
		areas[v] = acc
		totalTargetArea += acc
	}

	meshArea := m.totalSourceArea()
	if totalTargetArea > polygon.AreaEps {
		scale := meshArea / totalTargetArea
		for v := range areas {
			areas[v] *= scale
		}
	}
	return areas
}

// totalSourceArea sums the signed area of every source dual cell, used as
// the renormalization target for TargetAreas.
func (m *Mesh) totalSourceArea() float64 {
	cells := m.BuildSourceDualCells()
	var sum float64
	for _, c := range cells {
		sum += math.Abs(c.SignedArea())
	}
	return sum
}

func cellPixelBounds(cell polygon.Polygon, pxW, pxH float64, resX, resY int) (x0, y0, x1, y1 int) {
	minX, minY := cell[0].X, cell[0].Y
	maxX, maxY := cell[0].X, cell[0].Y
	for _, v := range cell[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	x0 = clampi(int(math.Floor(minX/pxW)), 0, resX-1)
	x1 = clampi(int(math.Ceil(maxX/pxW)), 0, resX)
	y0 = clampi(int(math.Floor(minY/pxH)), 0, resY-1)
	y1 = clampi(int(math.Ceil(maxY/pxH)), 0, resY)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CalculateErrors computes e[i] = A_source[i] - A_target[i], then subtracts
// the mean from every entry so that Σe ≈ 0 (the Poisson compatibility condition), per
// §4.4 "calculate_errors". The teacher's reference divides out any
// residual by spreading it evenly rather than assuming Σ cancels exactly.
func CalculateErrors(sourceAreas, targetAreas []float64) []float64 {
	n := len(sourceAreas)
	errs := make([]float64, n)
	var sum float64
	for i := range errs {
		errs[i] = sourceAreas[i] - targetAreas[i]
		sum += errs[i]
	}
	if n > 0 {
		avg := sum / float64(n)
		for i := range errs {
			errs[i] -= avg
		}
	}
	return errs
}
