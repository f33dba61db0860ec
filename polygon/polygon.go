// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package polygon implements the 2D computational-geometry primitives the
// mesh package builds dual cells and rasterizes triangles with: signed
// area, centroid, Sutherland-Hodgman clipping against an axis-aligned
// rectangle, and barycentric/point-in-triangle tests.
package polygon

import "math"

// degenerate area threshold; cells at or below this are treated as
// zero-weight rather than aborting (§7 "degenerate cell").
const AreaEps = 1e-12

// Vec3 is a 3-vector; z is unused by most polygon operations but carries
// vertex height when the caller (the height solver) needs it.
type Vec3 struct {
	X, Y, Z float64
}

// Polygon is an ordered list of vertices, implicitly closed (last connects
// back to first).
type Polygon []Vec3

// SignedArea computes the shoelace-formula area of p; positive when the
// vertices wind counter-clockwise. An empty or degenerate polygon yields 0.
func (p Polygon) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Centroid computes the area-weighted centroid of p via a triangle fan
// from p[0]. Degenerate polygons (area ≈ 0) return the vertex average
// instead of dividing by zero.
func (p Polygon) Centroid() Vec3 {
	n := len(p)
	if n == 0 {
		return Vec3{}
	}
	if n < 3 {
		var c Vec3
		for _, v := range p {
			c.X += v.X
			c.Y += v.Y
			c.Z += v.Z
		}
		inv := 1 / float64(n)
		return Vec3{c.X * inv, c.Y * inv, c.Z * inv}
	}
	var cx, cy, areaSum float64
	o := p[0]
	for i := 1; i < n-1; i++ {
		a, b := p[i], p[i+1]
		cross := (a.X-o.X)*(b.Y-o.Y) - (b.X-o.X)*(a.Y-o.Y)
		triArea := cross / 2
		tcx := (o.X + a.X + b.X) / 3
		tcy := (o.Y + a.Y + b.Y) / 3
		cx += tcx * triArea
		cy += tcy * triArea
		areaSum += triArea
	}
	if math.Abs(areaSum) <= AreaEps {
		return meanVertex(p)
	}
	return Vec3{cx / areaSum, cy / areaSum, 0}
}

func meanVertex(p Polygon) Vec3 {
	var c Vec3
	for _, v := range p {
		c.X += v.X
		c.Y += v.Y
		c.Z += v.Z
	}
	n := float64(len(p))
	return Vec3{c.X / n, c.Y / n, c.Z / n}
}

// Rect is an axis-aligned rectangle [MinX,MaxX] x [MinY,MaxY].
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// ClipToRect clips p against r using Sutherland-Hodgman against the four
// axis-aligned half-planes, returning the (possibly empty) clipped polygon.
func (p Polygon) ClipToRect(r Rect) Polygon {
	out := p
	out = clipHalfPlane(out, func(v Vec3) bool { return v.X >= r.MinX },
		func(a, b Vec3) Vec3 { return lerpX(a, b, r.MinX) })
	out = clipHalfPlane(out, func(v Vec3) bool { return v.X <= r.MaxX },
		func(a, b Vec3) Vec3 { return lerpX(a, b, r.MaxX) })
	out = clipHalfPlane(out, func(v Vec3) bool { return v.Y >= r.MinY },
		func(a, b Vec3) Vec3 { return lerpY(a, b, r.MinY) })
	out = clipHalfPlane(out, func(v Vec3) bool { return v.Y <= r.MaxY },
		func(a, b Vec3) Vec3 { return lerpY(a, b, r.MaxY) })
	return out
}

func lerpX(a, b Vec3, x float64) Vec3 {
	if b.X == a.X {
		return Vec3{x, a.Y, 0}
	}
	t := (x - a.X) / (b.X - a.X)
	return Vec3{x, a.Y + t*(b.Y-a.Y), 0}
}

func lerpY(a, b Vec3, y float64) Vec3 {
	if b.Y == a.Y {
		return Vec3{a.X, y, 0}
	}
	t := (y - a.Y) / (b.Y - a.Y)
	return Vec3{a.X + t*(b.X-a.X), y, 0}
}

// clipHalfPlane runs one Sutherland-Hodgman pass against a half-plane
// defined by `inside`, with `intersect` computing the boundary crossing.
func clipHalfPlane(poly Polygon, inside func(Vec3) bool, intersect func(a, b Vec3) Vec3) Polygon {
	n := len(poly)
	if n == 0 {
		return nil
	}
	out := make(Polygon, 0, n+2)
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i+n-1)%n]
		curIn := inside(cur)
		prevIn := inside(prev)
		if curIn {
			if !prevIn {
				out = append(out, intersect(prev, cur))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersect(prev, cur))
		}
	}
	return out
}

// Barycentric returns (λ0,λ1,λ2) for point (x,y) against triangle (a,b,c).
func Barycentric(a, b, c Vec3, x, y float64) (l0, l1, l2 float64) {
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if denom == 0 {
		return 0, 0, 0
	}
	l0 = ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / denom
	l1 = ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / denom
	l2 = 1 - l0 - l1
	return
}

// PointInTriangle reports whether (x,y) lies inside triangle (a,b,c),
// within tolerance eps on the barycentric coordinates, and returns the
// coordinates themselves so the caller need not recompute them.
func PointInTriangle(a, b, c Vec3, x, y, eps float64) (inside bool, l0, l1, l2 float64) {
	l0, l1, l2 = Barycentric(a, b, c, x, y)
	inside = l0 >= -eps && l1 >= -eps && l2 >= -eps
	return
}
