// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_bilinear01(tst *testing.T) {

	chk.PrintTitle("bilinear01")

	g := New(3, 3)
	for i := range g {
		for j := range g[i] {
			g[i][j] = float64(i*3 + j)
		}
	}

	// exact grid points reproduce the stored value
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := g.Bilinear(float64(j), float64(i))
			if math.Abs(v-g[i][j]) > 1e-12 {
				tst.Errorf("bilinear at grid point (%d,%d) failed: got %v want %v", j, i, v, g[i][j])
			}
		}
	}

	// out-of-range samples clamp instead of erroring
	corner := g.Bilinear(-5, -5)
	if math.Abs(corner-g[0][0]) > 1e-12 {
		tst.Errorf("clamped corner sample failed: got %v want %v", corner, g[0][0])
	}
	far := g.Bilinear(100, 100)
	if math.Abs(far-g[2][2]) > 1e-12 {
		tst.Errorf("clamped far sample failed: got %v want %v", far, g[2][2])
	}
}

func Test_subtractAverage01(tst *testing.T) {

	chk.PrintTitle("subtractAverage01")

	g := New(4, 4)
	for i := range g {
		for j := range g[i] {
			g[i][j] = float64(i + j + 1)
		}
	}
	g.SubtractAverage()
	mean := g.Mean()
	if math.Abs(mean) > 1e-9 {
		tst.Errorf("mean after subtract-average should be ~0, got %v", mean)
	}
}

func Test_rescaleProportional01(tst *testing.T) {

	chk.PrintTitle("rescaleProportional01")

	g := New(3, 1)
	g[0][0], g[0][1], g[0][2] = 10, 20, 30
	r := RescaleProportional(g, 0, 1)
	if math.Abs(r[0][0]-0) > 1e-12 || math.Abs(r[0][1]-0.5) > 1e-12 || math.Abs(r[0][2]-1) > 1e-12 {
		tst.Errorf("rescale failed: got %v", r)
	}

	// degenerate input collapses to lo
	flat := New(2, 1)
	flat[0][0], flat[0][1] = 5, 5
	rf := RescaleProportional(flat, 0.25, 1)
	if rf[0][0] != 0.25 || rf[0][1] != 0.25 {
		tst.Errorf("degenerate rescale should collapse to lo, got %v", rf)
	}
}

func Test_gradientDivergence01(tst *testing.T) {

	chk.PrintTitle("gradientDivergence01")

	// ψ(x,y) = x, so ∂ψ/∂x = 1 everywhere and ∂ψ/∂y = 0
	w, h := 10, 10
	psi := New(w, h)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			psi[i][j] = float64(j)
		}
	}
	gx, gy := Gradient(psi)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if math.Abs(gx[i][j]-1) > 1e-9 {
				tst.Errorf("gx[%d][%d] = %v, want 1", i, j, gx[i][j])
			}
			if math.Abs(gy[i][j]) > 1e-9 {
				tst.Errorf("gy[%d][%d] = %v, want 0", i, j, gy[i][j])
			}
		}
	}

	div := Divergence(psi, psi)
	// div(psi, psi) = d/dx(x) + d/dy(x) = 1 + 0 = 1
	for i := 1; i < h-1; i++ {
		for j := 1; j < w-1; j++ {
			if math.Abs(div[i][j]-1) > 1e-9 {
				tst.Errorf("div[%d][%d] = %v, want 1", i, j, div[i][j])
			}
		}
	}
}
