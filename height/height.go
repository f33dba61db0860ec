// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package height implements the surface-height solver driver (§4.6):
// refractive normals → rasterize → divergence → Poisson → sample back to
// source vertices.
package height

import (
	"github.com/cpmech/gosl/io"

	"github.com/dylanmsu/caustic-engineering/grid"
	"github.com/dylanmsu/caustic-engineering/mesh"
	"github.com/dylanmsu/caustic-engineering/poisson"
)

// Params controls one height-solver iteration (§4.6, §9's promoted
// constants: focal length in the mesh's physical units, index of
// refraction, grid size).
type Params struct {
	ResolutionX, ResolutionY int
	MaxSweeps                int
	Tolerance                float64
	NThreads                 int
	FocalLength              float64
	Eta                      float64 // index of refraction, reference default 1.49
}

// Driver runs successive height-solver iterations, writing the solved
// elevation directly into Mesh.SourcePoints[i].Z. Unlike the transport
// driver's Phi, h is never warm-started across runs (§4.6 step 5).
type Driver struct {
	Mesh   *mesh.Mesh
	Params Params
}

func NewDriver(m *mesh.Mesh, p Params) *Driver {
	return &Driver{Mesh: m, Params: p}
}

// Step runs one outer height iteration (§4.6 steps 1-6). Returns
// miss=true if rasterizing the normal field hit a fold; the caller should
// stop the height loop on a miss rather than retry; nothing is written to
// SourcePoints in that case.
func (d *Driver) Step() (miss bool) {
	m := d.Mesh

	nx, ny := m.RefractiveNormals(d.Params.FocalLength, d.Params.Eta)

	gridNx, missX := m.InterpolateRaster(nx, d.Params.ResolutionX, d.Params.ResolutionY)
	gridNy, missY := m.InterpolateRaster(ny, d.Params.ResolutionX, d.Params.ResolutionY)
	if missX || missY {
		return true
	}

	div := grid.Divergence(gridNx, gridNy)
	div.SubtractAverage()

	h := grid.New(d.Params.ResolutionX, d.Params.ResolutionY)
	res := poisson.Solve(div, h, d.Params.MaxSweeps, d.Params.Tolerance, d.Params.NThreads)
	poisson.LogNonConvergence(res, d.Params.Tolerance)

	for i := range m.SourcePoints {
		p := m.SourcePoints[i]
		gx := p.X / m.Width * float64(d.Params.ResolutionX)
		gy := p.Y / m.Height * float64(d.Params.ResolutionY)
		m.SourcePoints[i].Z = h.Bilinear(gx, gy)
	}

	io.Pf("height: sweeps=%d residual=%v\n", res.Sweeps, res.Residual)
	return false
}

// Run runs Step n times, stopping early (and reporting) on a fold.
func Run(d *Driver, n int) (ran int, lastMiss bool) {
	for ran = 0; ran < n; ran++ {
		if d.Step() {
			io.Pfyel("height: triangle miss at iteration %d, stopping early\n", ran)
			return ran, true
		}
	}
	return ran, false
}
