// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine holds the single owning value of a caustic-lens design
// run: the mesh, the warm-started transport potential, and the run
// parameters (§9 "Mutable global state in the source" design note).
package engine

import (
	"github.com/cpmech/gosl/chk"

	"github.com/dylanmsu/caustic-engineering/height"
	"github.com/dylanmsu/caustic-engineering/mesh"
	"github.com/dylanmsu/caustic-engineering/transport"
)

// SurfaceMode names which of the mesh's two vertex lattices the height
// solver refines (§9 "Polymorphism": the reference implementation has one
// of the two paths commented out). Only SourceSurface is implemented: the
// drivers do not read Params.Surface and always refine the source lattice.
type SurfaceMode int

const (
	SourceSurface SurfaceMode = iota
	TargetSurface
)

// Params bundles every configurable constant named across §4.5/§4.6/§6,
// with the reference implementation's literal values as defaults.
type Params struct {
	Width, Height    float64
	FocalLength      float64
	Thickness        float64
	Rx, Ry           int
	ResolutionX      int
	ResolutionY      int
	Eta              float64
	NThreads         int
	PoissonMaxSweeps int
	PoissonTol       float64
	TransportOmega   float64
	TransportFold    float64
	TransportTol     float64
	TransportMaxIter int
	HeightIterations int
	Surface          SurfaceMode
}

// DefaultParams returns the reference implementation's literal constants
// (§9 "Configurable convergence thresholds"), to be overridden by job
// configuration.
func DefaultParams() Params {
	return Params{
		Eta:              1.49,
		PoissonMaxSweeps: 100000,
		PoissonTol:       1e-7,
		TransportOmega:   0.95,
		TransportFold:    0.1,
		TransportTol:     0.005,
		TransportMaxIter: 100,
		HeightIterations: 3,
		Surface:          SourceSurface,
	}
}

// Engine owns the mesh and both drivers for one design run.
type Engine struct {
	Mesh      *mesh.Mesh
	Params    Params
	Transport *transport.Driver
	Height    *height.Driver
}

// New builds the mesh and both drivers, deriving per-vertex target areas
// from the decoded/resized/grayscale-converted source image `pixels`
// (resX×resY, §6 "Inputs") via the mesh's own source dual cells.
func New(p Params, pixels [][]float64, resX, resY int) *Engine {
	if p.Rx < 2 || p.Ry < 2 {
		chk.Panic("engine.New: mesh resolution must be at least 2x2, got %dx%d", p.Rx, p.Ry)
	}
	m := mesh.New(p.Width, p.Height, p.Rx, p.Ry)

	sourceCells := m.BuildSourceDualCells()
	targetAreas := m.TargetAreas(pixels, sourceCells, resX, resY)

	td := transport.NewDriver(m, targetAreas, transport.Params{
		ResolutionX: p.ResolutionX,
		ResolutionY: p.ResolutionY,
		MaxSweeps:   p.PoissonMaxSweeps,
		Tolerance:   p.PoissonTol,
		NThreads:    p.NThreads,
		Omega:       p.TransportOmega,
		SmoothFold:  p.TransportFold,
	})

	hd := height.NewDriver(m, height.Params{
		ResolutionX: p.ResolutionX,
		ResolutionY: p.ResolutionY,
		MaxSweeps:   p.PoissonMaxSweeps,
		Tolerance:   p.PoissonTol,
		NThreads:    p.NThreads,
		FocalLength: p.FocalLength,
		Eta:         p.Eta,
	})

	return &Engine{Mesh: m, Params: p, Transport: td, Height: hd}
}

// RunTransport runs the transport driver to convergence or the iteration
// cap (§4.5's terminating loop) and returns how many iterations ran.
func (e *Engine) RunTransport() int {
	iters, _ := transport.Run(e.Transport, e.Params.TransportTol, e.Params.TransportMaxIter)
	return iters
}

// RunHeight runs the height driver its configured fixed number of times
// (§4.6: "repeat a small fixed number of times, ≈3") and emits the
// solidified mesh.
func (e *Engine) RunHeight() *mesh.Solid {
	height.Run(e.Height, e.Params.HeightIterations)
	return e.Mesh.Solidify(e.Params.Thickness)
}
