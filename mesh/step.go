// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"

	"github.com/dylanmsu/caustic-engineering/polygon"
)

// StepGrid advances every target vertex by omega*minT*(dx[i],dy[i]), where
// minT is the largest global scale factor that keeps every triangle's
// signed area strictly positive (§4.4 "step_grid"). It returns minT*omega
// so the caller can gauge convergence; never produces a folded triangle.
func (m *Mesh) StepGrid(dx, dy []float64, omega float64) float64 {
	minT := 1.0
	for _, tri := range m.Triangles {
		t := maxSafeT(m.TargetPoints, tri, dx, dy)
		if t < minT {
			minT = t
		}
	}
	if minT < 0 {
		minT = 0
	}
	step := omega * minT
	for i := range m.TargetPoints {
		m.TargetPoints[i].X += step * dx[i]
		m.TargetPoints[i].Y += step * dy[i]
	}
	return step
}

// maxSafeT returns the largest t in (0,1] such that moving tri's three
// vertices by t*(dx,dy) keeps its signed area strictly positive.
//
// The doubled signed area is a quadratic A + B·t + C·t² in t (with A the
// current doubled area, assumed > 0 for a valid mesh); we return the
// smallest positive root of that quadratic, clamped to 1, leaving the
// caller's global safety factor ω to stay strictly clear of it.
func maxSafeT(points []polygon.Vec3, tri Triangle, dx, dy []float64) float64 {
	p0, p1, p2 := points[tri[0]], points[tri[1]], points[tri[2]]
	i0, i1, i2 := tri[0], tri[1], tri[2]

	e1x, e1y := p1.X-p0.X, p1.Y-p0.Y
	e2x, e2y := p2.X-p0.X, p2.Y-p0.Y
	d1x, d1y := dx[i1]-dx[i0], dy[i1]-dy[i0]
	d2x, d2y := dx[i2]-dx[i0], dy[i2]-dy[i0]

	A := e1x*e2y - e1y*e2x
	B := (e1x*d2y + d1x*e2y) - (e1y*d2x + d1y*e2x)
	C := d1x*d2y - d1y*d2x

	root := smallestPositiveRoot(A, B, C)
	if root < 1 {
		return root
	}
	return 1
}

// smallestPositiveRoot returns the smallest t>0 such that A+B·t+C·t²
// crosses zero, or +Inf if the quadratic never crosses zero for t>0.
func smallestPositiveRoot(A, B, C float64) float64 {
	const eps = 1e-12
	if math.Abs(C) < eps {
		if math.Abs(B) < eps {
			return math.Inf(1)
		}
		t := -A / B
		if t > eps {
			return t
		}
		return math.Inf(1)
	}
	disc := B*B - 4*A*C
	if disc < 0 {
		return math.Inf(1)
	}
	sq := math.Sqrt(disc)
	t1 := (-B - sq) / (2 * C)
	t2 := (-B + sq) / (2 * C)
	best := math.Inf(1)
	if t1 > eps && t1 < best {
		best = t1
	}
	if t2 > eps && t2 < best {
		best = t2
	}
	return best
}
