// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exportsvg draws optional diagnostic SVGs (§6 "Optional
// diagnostic images ... SVG exports"): the median dual cells and the
// inverted transport map overlay, using github.com/ajstarks/svgo.
package exportsvg

import (
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/dylanmsu/caustic-engineering/polygon"
)

// DualCells draws every dual cell polygon as a stroked path, one per
// vertex, scaled from physical mesh units to an svgW×svgH canvas.
func DualCells(path string, cells []polygon.Polygon, meshW, meshH float64, svgW, svgH int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(svgW, svgH)
	canvas.Rect(0, 0, svgW, svgH, "fill:white")

	sx := float64(svgW) / meshW
	sy := float64(svgH) / meshH

	for _, cell := range cells {
		if len(cell) < 3 {
			continue
		}
		xs := make([]int, len(cell))
		ys := make([]int, len(cell))
		for i, v := range cell {
			xs[i] = int(v.X * sx)
			ys[i] = int(v.Y * sy)
		}
		canvas.Polygon(xs, ys, "fill:none;stroke:black;stroke-width:1")
	}
	canvas.End()
	return nil
}

// InvertedTransportMap draws a grid of short line segments, each joining a
// target-domain sample point to the source-domain point the transport map
// currently sends it to — a visual check that the map stays a bijection
// (no crossing segments).
func InvertedTransportMap(path string, sx, sy [][]float64, ok [][]bool, resX, resY int, meshW, meshH float64, svgW, svgH int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(svgW, svgH)
	canvas.Rect(0, 0, svgW, svgH, "fill:white")

	cellW := float64(svgW) / float64(resX)
	cellH := float64(svgH) / float64(resY)

	for i := 0; i < resY; i++ {
		for j := 0; j < resX; j++ {
			if !ok[i][j] {
				continue
			}
			tx := (float64(j) + 0.5) * cellW
			ty := (float64(i) + 0.5) * cellH
			srcx := sx[i][j] / meshW * float64(svgW)
			srcy := sy[i][j] / meshH * float64(svgH)
			canvas.Line(int(tx), int(ty), int(srcx), int(srcy), "stroke:red;stroke-width:1")
		}
	}
	canvas.End()
	return nil
}
