// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"fmt"
	"math"
)

// joinTolerance is the maximum gap between consecutive profile curves.
const joinTolerance = 1e-6

// areaTolerance is the doubled polygon area, relative to the squared extent
// of the polygon, below which the polygon is flat.
const areaTolerance = 1e-12

// VertexPair maps a vertex of the start loop of a blend onto a vertex of
// the end loop.
type VertexPair struct {
	Start, End int
}

// Arc returns steps+1 points on the elliptical arc
// center + xAxis·rx·cos(t) + yAxis·ry·sin(t) for t in [start, end].
func Arc(center XYZ, rx, ry float64, xAxis, yAxis XYZ, start, end float64, steps int) []XYZ {
	if steps < 1 {
		steps = 1
	}
	xAxis, yAxis = xAxis.Normalize(), yAxis.Normalize()
	ps := make([]XYZ, steps+1)
	for i := range ps {
		t := start + (end-start)*float64(i)/float64(steps)
		ps[i] = center.Add(xAxis.Mul(rx * math.Cos(t))).Add(yAxis.Mul(ry * math.Sin(t)))
	}
	return ps
}

// Extrude sweeps a closed planar loop along direction by distance.
func Extrude(profile []XYZ, direction XYZ, distance float64) (*PolySolid, error) {
	if distance <= 0 {
		return nil, fmt.Errorf("%w: extrusion distance %g must be positive", ErrDegenerate, distance)
	}
	d := direction.Normalize()
	if d.IsZeroLength() {
		return nil, fmt.Errorf("%w: extrusion direction has zero length", ErrDegenerate)
	}
	top := Translation(d.Mul(distance)).OfPoints(profile)
	return Blend(profile, top, nil)
}

// Blend lofts a solid between two closed loops with the same number of
// vertices. Vertex i of start is connected to the end vertex chosen by
// pairs; a nil pairs connects vertex i to vertex i.
// Both loops must be convex and planar.
func Blend(start, end []XYZ, pairs []VertexPair) (*PolySolid, error) {
	n := len(start)
	if n < 3 {
		return nil, fmt.Errorf("%w: blend loop needs at least 3 vertices, got %d", ErrInvalidProfile, n)
	}
	if len(end) != n {
		return nil, fmt.Errorf("%w: blend loops differ in size (%d, %d)", ErrInvalidProfile, n, len(end))
	}
	top, err := pairLoop(end, pairs)
	if err != nil {
		return nil, err
	}
	bottom := append([]XYZ(nil), start...)
	center := Centroid(append(append([]XYZ(nil), bottom...), top...))

	faces := make([]*PolyFace, 0, n+2)
	for _, loop := range [][]XYZ{bottom, top} {
		f, err := capFace(loop, center)
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		quad := []XYZ{bottom[i], bottom[j], top[j], top[i]}
		f, err := capFace(quad, center)
		if err != nil {
			return nil, fmt.Errorf("side %d: %w", i, err)
		}
		faces = append(faces, f)
	}

	edges := make([]*PolyEdge, 0, 3*n)
	for _, loop := range [][]XYZ{bottom, top} {
		for i := 0; i < n; i++ {
			edges = append(edges, &PolyEdge{points: []XYZ{loop[i], loop[(i+1)%n]}})
		}
	}
	for i := 0; i < n; i++ {
		edges = append(edges, &PolyEdge{points: []XYZ{bottom[i], top[i]}})
	}
	return NewPolySolid(faces, edges), nil
}

// pairLoop reorders end so that index i holds the vertex paired with start
// vertex i.
func pairLoop(end []XYZ, pairs []VertexPair) ([]XYZ, error) {
	if pairs == nil {
		return append([]XYZ(nil), end...), nil
	}
	n := len(end)
	if len(pairs) != n {
		return nil, fmt.Errorf("%w: %d vertex pairs for %d vertices", ErrInvalidProfile, len(pairs), n)
	}
	out := make([]XYZ, n)
	seen := make([]bool, n)
	for _, p := range pairs {
		if p.Start < 0 || p.Start >= n || p.End < 0 || p.End >= n || seen[p.Start] {
			return nil, fmt.Errorf("%w: invalid vertex pair %v", ErrInvalidProfile, p)
		}
		seen[p.Start] = true
		out[p.Start] = end[p.End]
	}
	return out, nil
}

// capFace fan-triangulates a convex planar loop and orients its normal away
// from interior.
func capFace(loop []XYZ, interior XYZ) (*PolyFace, error) {
	return planarFace(loop, Centroid(loop).Sub(interior))
}

// planarFace fan-triangulates a convex planar loop with its normal on the
// side of want.
func planarFace(loop []XYZ, want XYZ) (*PolyFace, error) {
	n := newellVector(loop)
	l := n.Length()
	if ext := extentSq(loop); ext == 0 || l <= areaTolerance*ext {
		return nil, fmt.Errorf("%w: face loop has zero area", ErrDegenerate)
	}
	n = n.Div(l)
	if n.Dot(want) < 0 {
		n = n.Negate()
	}
	tris := make([]Triangle, 0, len(loop)-2)
	for i := 1; i+1 < len(loop); i++ {
		tris = append(tris, Triangle{loop[0], loop[i], loop[i+1]})
	}
	return NewPolyFace(Mesh{Triangles: tris}, n)
}

// newellVector returns the normal of a polygon by Newell's method,
// following the loop winding. Its length is twice the polygon area.
func newellVector(loop []XYZ) XYZ {
	var n XYZ
	for i, p := range loop {
		q := loop[(i+1)%len(loop)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

// extentSq returns the largest squared distance from the first point of
// loop to any other.
func extentSq(loop []XYZ) float64 {
	var d float64
	for _, p := range loop[1:] {
		d = math.Max(d, p.Sub(loop[0]).LengthSq())
	}
	return d
}

// Revolve sweeps a closed planar profile about the axis through origin.
//
// The profile is a loop of polylines lying in a half-plane bounded by the
// axis; curves on the axis produce no surface. The sweep covers
// [startAngle, endAngle] in gores·steps angular segments, and every
// revolved curve is split into gores faces so that each face's reference
// normal stays representative. Partial turns are closed with planar caps,
// which requires a convex profile.
func Revolve(origin, axis XYZ, profile [][]XYZ, startAngle, endAngle float64, gores, steps int) (*PolySolid, error) {
	a := axis.Normalize()
	if a.IsZeroLength() {
		return nil, fmt.Errorf("%w: revolution axis has zero length", ErrDegenerate)
	}
	sweep := endAngle - startAngle
	if sweep <= 0 || sweep > 2*math.Pi+1e-12 {
		return nil, fmt.Errorf("%w: revolution angle %g out of (0, 2π]", ErrInvalidProfile, sweep)
	}
	if gores < 1 || steps < 1 {
		return nil, fmt.Errorf("%w: gores and steps must be positive", ErrInvalidProfile)
	}
	if err := checkClosed(profile); err != nil {
		return nil, err
	}
	fullTurn := math.Abs(sweep-2*math.Pi) < 1e-9

	frame, ok := profileFrame(origin, a, profile)
	if !ok {
		return nil, fmt.Errorf("%w: profile lies entirely on the axis", ErrInvalidProfile)
	}

	segments := gores * steps
	rotations := make([]Transform, segments+1)
	for k := range rotations {
		rotations[k] = RotationAtPoint(a, startAngle+sweep*float64(k)/float64(segments), origin)
	}
	mids := make([]Transform, segments)
	for k := range mids {
		mids[k] = RotationAtPoint(a, startAngle+sweep*(float64(k)+0.5)/float64(segments), origin)
	}

	var faces []*PolyFace
	for _, curve := range profile {
		if frame.onAxisCurve(curve) {
			continue
		}
		for g := 0; g < gores; g++ {
			var tris []Triangle
			var ref XYZ
			for k := g * steps; k < (g+1)*steps; k++ {
				r0, r1 := rotations[k], rotations[k+1]
				for i := 0; i+1 < len(curve); i++ {
					p, q := curve[i], curve[i+1]
					want := mids[k].OfVector(frame.outward(p, q))
					for _, t := range strip(r0, r1, p, q, frame.onAxis(p), frame.onAxis(q)) {
						if t.Area() < Tolerance {
							continue
						}
						if t.Normal().Dot(want) < 0 {
							t = t.Reversed()
						}
						ref = ref.Add(t.Normal().Mul(t.Area()))
						tris = append(tris, t)
					}
				}
			}
			if len(tris) == 0 {
				continue
			}
			f, err := NewPolyFace(Mesh{Triangles: tris}, ref)
			if err != nil {
				return nil, err
			}
			faces = append(faces, f)
		}
	}

	if !fullTurn {
		flat := flattenLoop(profile)
		tangent := a.Cross(frame.radial)
		caps := []struct {
			r    Transform
			want XYZ
		}{
			{rotations[0], rotations[0].OfVector(tangent).Negate()},
			{rotations[segments], rotations[segments].OfVector(tangent)},
		}
		for _, c := range caps {
			f, err := planarFace(c.r.OfPoints(flat), c.want)
			if err != nil {
				return nil, fmt.Errorf("revolve cap: %w", err)
			}
			faces = append(faces, f)
		}
	}

	var edges []*PolyEdge
	for _, curve := range profile {
		if frame.onAxisCurve(curve) {
			continue
		}
		edges = append(edges, &PolyEdge{points: rotations[0].OfPoints(curve)})
		if !fullTurn {
			edges = append(edges, &PolyEdge{points: rotations[segments].OfPoints(curve)})
		}
		// Circles traced by the curve's start vertex; its end vertex is the
		// start of the next curve.
		if p := curve[0]; !frame.onAxis(p) {
			circle := make([]XYZ, len(rotations))
			for k, r := range rotations {
				circle[k] = r.OfPoint(p)
			}
			edges = append(edges, &PolyEdge{points: circle})
		}
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: revolution produced no faces", ErrDegenerate)
	}
	return NewPolySolid(faces, edges), nil
}

// strip returns the triangles swept by segment pq between two rotations.
// Endpoints on the axis collapse their quad side into a single point.
func strip(r0, r1 Transform, p, q XYZ, pOnAxis, qOnAxis bool) []Triangle {
	p0, p1 := r0.OfPoint(p), r1.OfPoint(p)
	q0, q1 := r0.OfPoint(q), r1.OfPoint(q)
	switch {
	case pOnAxis && qOnAxis:
		return nil
	case pOnAxis:
		return []Triangle{{p0, q0, q1}}
	case qOnAxis:
		return []Triangle{{p0, q0, p1}}
	default:
		return []Triangle{{p0, q0, q1}, {p0, q1, p1}}
	}
}

func checkClosed(profile [][]XYZ) error {
	if len(profile) == 0 {
		return fmt.Errorf("%w: empty profile", ErrInvalidProfile)
	}
	for i, c := range profile {
		if len(c) < 2 {
			return fmt.Errorf("%w: profile curve %d has %d points", ErrInvalidProfile, i, len(c))
		}
		next := profile[(i+1)%len(profile)]
		if c[len(c)-1].DistanceTo(next[0]) > joinTolerance {
			return fmt.Errorf("%w: profile curve %d does not join curve %d", ErrInvalidProfile, i, (i+1)%len(profile))
		}
	}
	return nil
}

// flattenLoop concatenates profile curves dropping the duplicated joints.
func flattenLoop(profile [][]XYZ) []XYZ {
	var out []XYZ
	for _, c := range profile {
		out = append(out, c[:len(c)-1]...)
	}
	return out
}

// revolveFrame expresses profile points in (radius, height) coordinates of
// the profile half-plane.
type revolveFrame struct {
	origin, axis, radial XYZ
	ccw                  bool
}

func profileFrame(origin, axis XYZ, profile [][]XYZ) (revolveFrame, bool) {
	f := revolveFrame{origin: origin, axis: axis}
	for _, c := range profile {
		for _, p := range c {
			if r := f.radialOf(p); !r.IsZeroLength() {
				f.radial = r.Normalize()
				break
			}
		}
		if !f.radial.IsZeroLength() {
			break
		}
	}
	if f.radial.IsZeroLength() {
		return f, false
	}
	// Shoelace in (r, h) decides which side of each segment is outside.
	var area float64
	flat := flattenLoop(profile)
	for i, p := range flat {
		q := flat[(i+1)%len(flat)]
		pr, ph := f.coords(p)
		qr, qh := f.coords(q)
		area += pr*qh - qr*ph
	}
	f.ccw = area > 0
	return f, true
}

func (f revolveFrame) radialOf(p XYZ) XYZ {
	d := p.Sub(f.origin)
	return d.Sub(f.axis.Mul(d.Dot(f.axis)))
}

func (f revolveFrame) coords(p XYZ) (r, h float64) {
	d := p.Sub(f.origin)
	return d.Dot(f.radial), d.Dot(f.axis)
}

func (f revolveFrame) onAxis(p XYZ) bool {
	return f.radialOf(p).Length() < 1e-7
}

func (f revolveFrame) onAxisCurve(c []XYZ) bool {
	for _, p := range c {
		if !f.onAxis(p) {
			return false
		}
	}
	return true
}

// outward returns the outward normal of segment pq in the unrotated
// profile plane.
func (f revolveFrame) outward(p, q XYZ) XYZ {
	pr, ph := f.coords(p)
	qr, qh := f.coords(q)
	dr, dh := qr-pr, qh-ph
	nr, nh := dh, -dr
	if !f.ccw {
		nr, nh = -nr, -nh
	}
	return f.radial.Mul(nr).Add(f.axis.Mul(nh)).Normalize()
}
