// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the dense 2D matrix algebra used throughout the
// caustic engine: bilinear sampling, gradient/divergence stencils, and the
// mean-subtraction and rescaling helpers required by the Poisson solver.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Grid is a dense, row-major W×H matrix of reals. Rows are the first index,
// so Grid[row][col] with row ∈ [0,H) and col ∈ [0,W).
type Grid [][]float64

// New allocates a zeroed grid with h rows and w columns.
func New(w, h int) Grid {
	if w <= 0 || h <= 0 {
		chk.Panic("grid.New: width and height must be positive: got w=%d h=%d", w, h)
	}
	return Grid(la.MatAlloc(h, w))
}

// Dims returns the (width, height) of g.
func (g Grid) Dims() (w, h int) {
	h = len(g)
	if h == 0 {
		return 0, 0
	}
	return len(g[0]), h
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	w, h := g.Dims()
	o := New(w, h)
	for i := 0; i < h; i++ {
		copy(o[i], g[i])
	}
	return o
}

// clampInt clamps value to [lo,hi].
func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Bilinear samples g at pixel coordinates (x,y). Out-of-range inputs are
// clamped to the nearest valid sample; this function never errors.
func (g Grid) Bilinear(x, y float64) float64 {
	w, h := g.Dims()
	xc := clampFloat(x, 0, float64(w-1))
	yc := clampFloat(y, 0, float64(h-1))

	x0 := clampInt(int(math.Floor(xc)), 0, w-1)
	y0 := clampInt(int(math.Floor(yc)), 0, h-1)
	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)

	fx := xc - float64(x0)
	fy := yc - float64(y0)

	g00 := g[y0][x0]
	g10 := g[y0][x1]
	g01 := g[y1][x0]
	g11 := g[y1][x1]

	return (1-fx)*(1-fy)*g00 + fx*(1-fy)*g10 + (1-fx)*fy*g01 + fx*fy*g11
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Gradient returns (Gx, Gy), the central-difference gradient of g in the
// interior and one-sided forward/backward differences at the boundary.
func Gradient(g Grid) (gx, gy Grid) {
	w, h := g.Dims()
	gx = New(w, h)
	gy = New(w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			switch {
			case j == 0:
				gx[i][j] = g[i][1] - g[i][0]
			case j == w-1:
				gx[i][j] = g[i][w-1] - g[i][w-2]
			default:
				gx[i][j] = (g[i][j+1] - g[i][j-1]) / 2
			}
			switch {
			case i == 0:
				gy[i][j] = g[1][j] - g[0][j]
			case i == h-1:
				gy[i][j] = g[h-1][j] - g[h-2][j]
			default:
				gy[i][j] = (g[i+1][j] - g[i-1][j]) / 2
			}
		}
	}
	return
}

// Divergence computes div = ∂nx/∂x + ∂ny/∂y using the same stencil
// convention as Gradient.
func Divergence(nx, ny Grid) Grid {
	w, h := nx.Dims()
	nxdx, _ := Gradient(nx)
	_, nydy := Gradient(ny)
	div := New(w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			div[i][j] = nxdx[i][j] + nydy[i][j]
		}
	}
	return div
}

// Mean returns the arithmetic mean of all cells in g, row-reduced with
// gonum/floats rather than a hand-rolled accumulator.
func (g Grid) Mean() float64 {
	w, h := g.Dims()
	if w*h == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < h; i++ {
		sum += floats.Sum(g[i])
	}
	return sum / float64(w*h)
}

// SubtractAverage shifts g in place so that its arithmetic mean becomes
// zero; this is the Neumann compatibility condition required before every
// call into poisson.Solve.
func (g Grid) SubtractAverage() {
	avg := g.Mean()
	w, h := g.Dims()
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			g[i][j] -= avg
		}
	}
}

// MinMax returns the minimum and maximum cell values of g.
func (g Grid) MinMax() (min, max float64) {
	w, h := g.Dims()
	if w*h == 0 {
		return 0, 0
	}
	min, max = g[0][0], g[0][0]
	for i := 0; i < h; i++ {
		rmin := floats.Min(g[i])
		rmax := floats.Max(g[i])
		if rmin < min {
			min = rmin
		}
		if rmax > max {
			max = rmax
		}
	}
	return
}

// RescaleProportional linearly maps the actual [min,max] of g onto the
// requested [lo,hi], returning a new grid. A degenerate input (max == min)
// collapses to lo everywhere.
func RescaleProportional(g Grid, lo, hi float64) Grid {
	w, h := g.Dims()
	min, max := g.MinMax()
	o := New(w, h)
	span := max - min
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if span == 0 {
				o[i][j] = lo
				continue
			}
			t := (g[i][j] - min) / span
			o[i][j] = lo + t*(hi-lo)
		}
	}
	return o
}
