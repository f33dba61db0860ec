// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/dylanmsu/caustic-engineering/engine"
	"github.com/dylanmsu/caustic-engineering/internal/config"
	"github.com/dylanmsu/caustic-engineering/internal/exportsvg"
	"github.com/dylanmsu/caustic-engineering/internal/imagesrc"
	"github.com/dylanmsu/caustic-engineering/internal/objwriter"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.Pfred("ERROR: %v\n", err)
		}
	}()

	// flags override the job file
	width := flag.Float64("width", 0, "physical slab width in mm (overrides job file)")
	focal := flag.Float64("focal", 0, "focal length in mm (overrides job file)")
	rx := flag.Int("rx", 0, "mesh resolution along X (overrides job file)")
	svgOut := flag.Bool("svg", false, "write diagnostic SVGs alongside the OBJ")
	flag.Parse()

	if len(flag.Args()) < 1 {
		chk.Panic("causticgen: provide a job file. Ex.: lens.causticjob")
	}
	job := config.Read(flag.Arg(0))
	if *width > 0 {
		job.Width = *width
	}
	if *focal > 0 {
		job.FocalLength = *focal
	}
	if *rx > 0 {
		job.MeshRx = *rx
	}
	if *svgOut {
		job.ExportSVG = true
	}

	io.PfWhite("\ncausticgen -- optimal-transport caustic lens surface generator\n\n")

	// decode and resample the target image at 4x mesh resolution (§6)
	resX := 4 * job.MeshRx
	pixels, aspect := imagesrc.Load(job.ImagePath, resX, resX) // square raster until Ry is known below
	ry := int(float64(job.MeshRx) * aspect)
	if ry < 2 {
		ry = 2
	}
	resY := 4 * ry
	if resY != resX {
		pixels, _ = imagesrc.Load(job.ImagePath, resX, resY)
	}

	p := engine.DefaultParams()
	p.Width = job.Width
	p.Height = job.Width * aspect
	p.FocalLength = job.FocalLength
	p.Thickness = job.Thickness
	p.Rx = job.MeshRx
	p.Ry = ry
	p.ResolutionX = resX
	p.ResolutionY = resY
	p.Eta = job.Eta
	p.NThreads = job.NThreads
	p.PoissonMaxSweeps = job.PoissonMaxSweeps
	p.PoissonTol = job.PoissonTol
	p.TransportOmega = job.TransportOmega
	p.TransportFold = job.TransportFold
	p.TransportTol = job.TransportTol
	p.TransportMaxIter = job.TransportMaxIter
	p.HeightIterations = job.HeightIterations

	eng := engine.New(p, pixels, resX, resY)

	iters := eng.RunTransport()
	io.Pfgreen("transport converged after %d iterations\n", iters)

	solid := eng.RunHeight()

	if err := objwriter.Write(job.ObjPath, solid); err != nil {
		chk.Panic("causticgen: cannot write OBJ %q: %v", job.ObjPath, err)
	}
	io.Pfgreen("wrote %s\n", job.ObjPath)

	if job.ExportSVG {
		cells := eng.Mesh.BuildTargetDualCells()
		if err := exportsvg.DualCells(job.ObjPath+".cells.svg", cells, p.Width, p.Height, 800, int(800*p.Height/p.Width)); err != nil {
			io.Pfyel("causticgen: dual-cell SVG export failed: %v\n", err)
		}
		sx, sy, ok := eng.Mesh.InvertedTransportMap(resX, resY)
		if err := exportsvg.InvertedTransportMap(job.ObjPath+".transport.svg", sx, sy, ok, resX, resY, p.Width, p.Height, 800, int(800*p.Height/p.Width)); err != nil {
			io.Pfyel("causticgen: transport-map SVG export failed: %v\n", err)
		}
	}
}
