// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "math"

// Transform represents a 3D affine transformation.
// It uses a 3x4 matrix in row-major order:
//
//	| m00 m01 m02 tx |
//	| m10 m11 m12 ty |
//	| m20 m21 m22 tz |
//
// Points are transformed as p' = M·p + t; vectors ignore t.
type Transform struct {
	M [3][3]float64
	T XYZ
}

// Identity returns the identity transformation.
func Identity() Transform {
	return Transform{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation creates a translation by v.
func Translation(v XYZ) Transform {
	t := Identity()
	t.T = v
	return t
}

// Scaling creates a uniform scale about the origin.
func Scaling(s float64) Transform {
	return Transform{M: [3][3]float64{{s, 0, 0}, {0, s, 0}, {0, 0, s}}}
}

// RotationAtPoint creates a rotation of angle radians about the axis through
// origin with direction axis (right-hand rule).
// A zero-length axis yields the identity.
func RotationAtPoint(axis XYZ, angle float64, origin XYZ) Transform {
	u := axis.Normalize()
	if u.IsZeroLength() {
		return Identity()
	}
	c, s := math.Cos(angle), math.Sin(angle)
	k := 1 - c
	r := Transform{M: [3][3]float64{
		{c + u.X*u.X*k, u.X*u.Y*k - u.Z*s, u.X*u.Z*k + u.Y*s},
		{u.Y*u.X*k + u.Z*s, c + u.Y*u.Y*k, u.Y*u.Z*k - u.X*s},
		{u.Z*u.X*k - u.Y*s, u.Z*u.Y*k + u.X*s, c + u.Z*u.Z*k},
	}}
	// Conjugate by the translation to rotate about origin.
	r.T = origin.Sub(r.OfVector(origin))
	return r
}

// Multiply returns the transformation applying o first and then t.
func (t Transform) Multiply(o Transform) Transform {
	var r Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[i][j] = t.M[i][0]*o.M[0][j] + t.M[i][1]*o.M[1][j] + t.M[i][2]*o.M[2][j]
		}
	}
	r.T = t.OfPoint(o.T)
	return r
}

// OfPoint transforms a point.
func (t Transform) OfPoint(p XYZ) XYZ {
	return t.OfVector(p).Add(t.T)
}

// OfVector transforms a direction, ignoring translation.
func (t Transform) OfVector(v XYZ) XYZ {
	return XYZ{
		X: t.M[0][0]*v.X + t.M[0][1]*v.Y + t.M[0][2]*v.Z,
		Y: t.M[1][0]*v.X + t.M[1][1]*v.Y + t.M[1][2]*v.Z,
		Z: t.M[2][0]*v.X + t.M[2][1]*v.Y + t.M[2][2]*v.Z,
	}
}

// OfPoints transforms every point of ps into a new slice.
func (t Transform) OfPoints(ps []XYZ) []XYZ {
	out := make([]XYZ, len(ps))
	for i, p := range ps {
		out[i] = t.OfPoint(p)
	}
	return out
}

// Determinant returns the determinant of the linear part.
func (t Transform) Determinant() float64 {
	m := t.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}
