// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package poisson solves ∇²φ = f on a rectangular grid with homogeneous
// Neumann boundaries via parallel Jacobi relaxation (§4.3). The previous φ
// is always reused across calls (warm start); callers that want a fresh
// solve must pass a freshly zeroed grid.
package poisson

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/io"
)

// Result reports the outcome of a Solve call.
type Result struct {
	Sweeps    int     // sweeps actually performed
	Residual  float64 // max cell delta of the final sweep
	Converged bool    // whether Residual < the requested tolerance
}

// Solve relaxes phi in place toward a solution of ∇²φ = f. f must satisfy
// mean(f) ≈ 0 (callers call grid.SubtractAverage first); phi is warm-started
// from its incoming values. nthreads horizontal bands are swept in
// parallel, joined by a barrier between sweeps; it never aborts early
// except on reaching maxSweeps, in which case the best-effort φ is
// returned along with Converged=false.
func Solve(f, phi [][]float64, maxSweeps int, tol float64, nthreads int) Result {
	h := len(f)
	if h == 0 {
		return Result{}
	}
	w := len(f[0])
	if nthreads < 1 {
		nthreads = 1
	}
	if nthreads > h {
		nthreads = h
	}

	next := make([][]float64, h)
	for i := range next {
		next[i] = make([]float64, w)
	}

	var residual float64
	sweep := 0
	for ; sweep < maxSweeps; sweep++ {
		residual = sweepOnce(f, phi, next, w, h, nthreads)
		phi, next = next, phi
		if residual < tol {
			sweep++
			break
		}
	}

	// if the final write landed in the scratch buffer, copy it back so the
	// caller's phi slice holds the latest values regardless of parity
	if sweep%2 == 1 {
		for i := 0; i < h; i++ {
			copy(next[i], phi[i])
		}
	}

	return Result{Sweeps: sweep, Residual: residual, Converged: residual < tol}
}

// sweepOnce performs one Jacobi sweep of the whole domain, fanning out over
// nthreads horizontal bands, and returns the max cell delta observed.
func sweepOnce(f, cur, out [][]float64, w, h, nthreads int) float64 {
	bandSize := (h + nthreads - 1) / nthreads
	deltas := make([]float64, nthreads)

	var wg sync.WaitGroup
	for t := 0; t < nthreads; t++ {
		rowStart := t * bandSize
		rowEnd := rowStart + bandSize
		if rowEnd > h {
			rowEnd = h
		}
		if rowStart >= rowEnd {
			continue
		}
		wg.Add(1)
		go func(id, i0, i1 int) {
			defer wg.Done()
			deltas[id] = sweepBand(f, cur, out, w, h, i0, i1)
		}(t, rowStart, rowEnd)
	}
	wg.Wait()

	max := 0.0
	for _, d := range deltas {
		if d > max {
			max = d
		}
	}
	return max
}

// sweepBand updates rows [i0,i1) of out from cur, applying the five-point
// Jacobi update to interior cells and copying the inward neighbor at the
// domain boundary (zero-normal-derivative Neumann condition).
func sweepBand(f, cur, out [][]float64, w, h, i0, i1 int) float64 {
	maxDelta := 0.0
	for i := i0; i < i1; i++ {
		for j := 0; j < w; j++ {
			var v float64
			switch {
			case i == 0:
				v = cur[1][j]
			case i == h-1:
				v = cur[h-2][j]
			case j == 0:
				v = cur[i][1]
			case j == w-1:
				v = cur[i][w-2]
			default:
				v = (cur[i-1][j] + cur[i+1][j] + cur[i][j-1] + cur[i][j+1] - f[i][j]) / 4
			}
			out[i][j] = v
			if d := math.Abs(v - cur[i][j]); d > maxDelta {
				maxDelta = d
			}
		}
	}
	return maxDelta
}

// LogNonConvergence reports (non-fatally) that the solver hit its sweep
// cap without reaching tol; callers use the returned φ regardless.
func LogNonConvergence(r Result, tol float64) {
	if r.Converged {
		return
	}
	io.Pfyel("poisson: sweep cap reached (sweeps=%d residual=%e tol=%e), using best-effort phi\n", r.Sweeps, r.Residual, tol)
}
