// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "math"

// Tolerance is the length below which a vector is treated as zero.
const Tolerance = 1e-9

// XYZ represents a 3D point or displacement in model coordinates.
type XYZ struct {
	X, Y, Z float64
}

// Basis vectors and the origin.
var (
	Origin = XYZ{}
	BasisX = XYZ{X: 1}
	BasisY = XYZ{Y: 1}
	BasisZ = XYZ{Z: 1}
)

// Pt is a convenience function to create an XYZ.
func Pt(x, y, z float64) XYZ {
	return XYZ{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v XYZ) Add(w XYZ) XYZ {
	return XYZ{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v XYZ) Sub(w XYZ) XYZ {
	return XYZ{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by s.
func (v XYZ) Mul(s float64) XYZ {
	return XYZ{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Div returns the vector divided by s.
func (v XYZ) Div(s float64) XYZ {
	return XYZ{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// Negate returns the opposite vector.
func (v XYZ) Negate() XYZ {
	return XYZ{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors.
func (v XYZ) Dot(w XYZ) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v XYZ) Cross(w XYZ) XYZ {
	return XYZ{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the magnitude of the vector.
func (v XYZ) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// LengthSq returns the squared magnitude of the vector.
func (v XYZ) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector in the same direction.
// Returns the zero vector if v has zero length.
func (v XYZ) Normalize() XYZ {
	l := v.Length()
	if l < Tolerance {
		return XYZ{}
	}
	return v.Div(l)
}

// IsZeroLength reports whether v is shorter than Tolerance.
func (v XYZ) IsZeroLength() bool {
	return v.Length() < Tolerance
}

// AngleTo returns the unsigned angle between v and w in radians, in [0, π].
// Returns 0 if either vector has zero length.
func (v XYZ) AngleTo(w XYZ) float64 {
	lv, lw := v.Length(), w.Length()
	if lv < Tolerance || lw < Tolerance {
		return 0
	}
	c := v.Dot(w) / (lv * lw)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// DistanceTo returns the distance between two points.
func (v XYZ) DistanceTo(w XYZ) float64 {
	return v.Sub(w).Length()
}

// IsAlmostEqualTo reports whether every component of v and w differs by at
// most eps.
func (v XYZ) IsAlmostEqualTo(w XYZ, eps float64) bool {
	return math.Abs(v.X-w.X) <= eps &&
		math.Abs(v.Y-w.Y) <= eps &&
		math.Abs(v.Z-w.Z) <= eps
}

// Lerp interpolates linearly between v (t=0) and w (t=1).
func (v XYZ) Lerp(w XYZ, t float64) XYZ {
	return XYZ{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
		Z: v.Z + (w.Z-v.Z)*t,
	}
}

// Centroid returns the arithmetic mean of points.
// Returns the origin for an empty slice.
func Centroid(points []XYZ) XYZ {
	if len(points) == 0 {
		return Origin
	}
	var c XYZ
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Div(float64(len(points)))
}
