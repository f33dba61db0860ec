// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport implements the optimal-transport mesh relaxation
// driver (§4.5): dual cells → area errors → raster → Poisson → gradient →
// per-vertex step → smooth.
package transport

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/dylanmsu/caustic-engineering/grid"
	"github.com/dylanmsu/caustic-engineering/mesh"
	"github.com/dylanmsu/caustic-engineering/poisson"
)

// Params controls one transport iteration (§4.5, §9 promoting the
// original's literal constants to configuration).
type Params struct {
	ResolutionX, ResolutionY int
	MaxSweeps                int
	Tolerance                float64
	NThreads                 int
	Omega                    float64 // step_grid safety factor, reference default 0.95
	SmoothFold               float64 // Laplacian alpha applied on a triangle miss, reference default 0.1
}

// Driver runs successive transport iterations over a mesh, holding the
// warm-started potential Phi and the per-vertex target areas derived once
// from the input image up front (§3 Lifecycles: phi is the only state
// that survives across iterations).
type Driver struct {
	Mesh        *mesh.Mesh
	TargetAreas []float64
	Phi         grid.Grid
	Params      Params
}

// NewDriver constructs a Driver with a freshly zeroed Phi grid.
func NewDriver(m *mesh.Mesh, targetAreas []float64, p Params) *Driver {
	return &Driver{
		Mesh:        m,
		TargetAreas: targetAreas,
		Phi:         grid.New(p.ResolutionX, p.ResolutionY),
		Params:      p,
	}
}

// Step runs one outer transport iteration (§4.5 steps 1-10) and returns
// the scale-invariant convergence measure `min_step·(resolution_x/width)`.
// Returns NaN when this round hit a triangle miss: the caller should not
// treat the NaN as converged, only as "retry next round".
func (d *Driver) Step() float64 {
	m := d.Mesh

	cells := m.BuildTargetDualCells()
	sourceAreas := mesh.SourceAreas(cells)
	errs := mesh.CalculateErrors(sourceAreas, d.TargetAreas)

	raster, miss := m.InterpolateRaster(errs, d.Params.ResolutionX, d.Params.ResolutionY)
	if miss {
		m.LaplacianSmooth(d.Params.SmoothFold)
		return math.NaN()
	}

	raster.SubtractAverage()
	res := poisson.Solve(raster, d.Phi, d.Params.MaxSweeps, d.Params.Tolerance, d.Params.NThreads)
	poisson.LogNonConvergence(res, d.Params.Tolerance)

	gx, gy := grid.Gradient(d.Phi)
	vx, vy := mesh.IntegrateCellGradients(gx, gy, cells, d.Params.ResolutionX, d.Params.ResolutionY, m.Width, m.Height)

	minStep := m.StepGrid(vx, vy, d.Params.Omega)

	alpha := minStep * (float64(d.Params.ResolutionX) / m.Width) / 2
	m.LaplacianSmooth(alpha)

	scale := minStep * (float64(d.Params.ResolutionX) / m.Width)
	io.Pf("transport: min_step=%v scale=%v sweeps=%d\n", minStep, scale, res.Sweeps)
	return scale
}

// Run iterates Step until the returned measure drops below tol or
// maxIters is reached, skipping the convergence check on rounds that
// returned NaN (triangle miss). Returns the number of iterations run and
// the final measure (NaN if the loop ended mid-miss).
func Run(d *Driver, tol float64, maxIters int) (iters int, final float64) {
	for iters = 0; iters < maxIters; iters++ {
		final = d.Step()
		if math.IsNaN(final) {
			continue
		}
		if final < tol {
			iters++
			return
		}
	}
	return
}
