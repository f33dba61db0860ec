// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the job configuration read from a
// (.causticjob) JSON file, mirroring the teacher's inp.ReadSim: defaults
// set first, then overridden by the decoded file (§6 "Parameters").
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Job holds everything read from a .causticjob file plus the run's file
// paths. The solver-setting fields default to the reference
// implementation's literal constants (§9); the paths, Width, FocalLength
// and Thickness have no default. Whatever the JSON file sets overrides.
type Job struct {
	ImagePath string `json:"image"`  // input grayscale/RGB image
	ObjPath   string `json:"objOut"` // output OBJ path

	Width       float64 `json:"width"`       // physical slab width (mm)
	FocalLength float64 `json:"focalLength"` // mm, distance to the screen
	Thickness   float64 `json:"thickness"`   // mm, slab thickness
	Eta         float64 `json:"eta"`         // index of refraction

	MeshRx int `json:"meshRx"` // mesh vertices along X; Ry derives from image aspect (§9c)

	NThreads int `json:"nthreads"`

	PoissonMaxSweeps int     `json:"poissonMaxSweeps"`
	PoissonTol       float64 `json:"poissonTol"`

	TransportOmega   float64 `json:"transportOmega"`
	TransportFold    float64 `json:"transportFold"`
	TransportTol     float64 `json:"transportTol"`
	TransportMaxIter int     `json:"transportMaxIter"`

	HeightIterations int `json:"heightIterations"`

	ExportSVG bool `json:"exportSvg"`
}

// SetDefault fills every zero solver setting (Eta, MeshRx, NThreads and
// the Poisson, transport and height-iteration settings) with the reference
// implementation's constants, mirroring inp.SolverData.SetDefault. The
// paths, Width, FocalLength and Thickness are left as they are.
func (j *Job) SetDefault() {
	if j.Eta == 0 {
		j.Eta = 1.49
	}
	if j.MeshRx == 0 {
		j.MeshRx = 128
	}
	if j.NThreads == 0 {
		j.NThreads = 4
	}
	if j.PoissonMaxSweeps == 0 {
		j.PoissonMaxSweeps = 100000
	}
	if j.PoissonTol == 0 {
		j.PoissonTol = 1e-7
	}
	if j.TransportOmega == 0 {
		j.TransportOmega = 0.95
	}
	if j.TransportFold == 0 {
		j.TransportFold = 0.1
	}
	if j.TransportTol == 0 {
		j.TransportTol = 0.005
	}
	if j.TransportMaxIter == 0 {
		j.TransportMaxIter = 100
	}
	if j.HeightIterations == 0 {
		j.HeightIterations = 3
	}
}

// Read loads a Job from a .causticjob JSON file, applying defaults first
// so the file only needs to set what it wants to override.
func Read(path string) *Job {
	var j Job
	j.SetDefault()

	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("config.Read: cannot read job file %q: %v", path, err)
	}
	if err := json.Unmarshal(b, &j); err != nil {
		chk.Panic("config.Read: cannot unmarshal job file %q: %v", path, err)
	}
	return &j
}
