// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "math"

// Outline is an axis-aligned bounding box.
// The zero value is empty; adding a point makes it a degenerate box around
// that point.
type Outline struct {
	Min, Max XYZ
	filled   bool
}

// NewOutline returns the smallest outline containing points.
func NewOutline(points ...XYZ) Outline {
	var o Outline
	for _, p := range points {
		o.AddPoint(p)
	}
	return o
}

// IsEmpty reports whether no point has been added.
func (o Outline) IsEmpty() bool {
	return !o.filled
}

// AddPoint grows the outline to contain p.
func (o *Outline) AddPoint(p XYZ) {
	if !o.filled {
		o.Min, o.Max, o.filled = p, p, true
		return
	}
	o.Min = XYZ{X: math.Min(o.Min.X, p.X), Y: math.Min(o.Min.Y, p.Y), Z: math.Min(o.Min.Z, p.Z)}
	o.Max = XYZ{X: math.Max(o.Max.X, p.X), Y: math.Max(o.Max.Y, p.Y), Z: math.Max(o.Max.Z, p.Z)}
}

// Union returns the smallest outline containing o and other.
func (o Outline) Union(other Outline) Outline {
	if other.IsEmpty() {
		return o
	}
	o.AddPoint(other.Min)
	o.AddPoint(other.Max)
	return o
}

// Expanded returns the outline grown by margin on every side.
// An empty outline stays empty.
func (o Outline) Expanded(margin float64) Outline {
	if o.IsEmpty() {
		return o
	}
	d := XYZ{X: margin, Y: margin, Z: margin}
	return Outline{Min: o.Min.Sub(d), Max: o.Max.Add(d), filled: true}
}

// Contains reports whether p lies inside the outline, boundary included.
func (o Outline) Contains(p XYZ) bool {
	return o.filled &&
		p.X >= o.Min.X && p.X <= o.Max.X &&
		p.Y >= o.Min.Y && p.Y <= o.Max.Y &&
		p.Z >= o.Min.Z && p.Z <= o.Max.Z
}

// Size returns the extent along each axis.
func (o Outline) Size() XYZ {
	if o.IsEmpty() {
		return XYZ{}
	}
	return o.Max.Sub(o.Min)
}

// Center returns the midpoint of the outline.
func (o Outline) Center() XYZ {
	return o.Min.Lerp(o.Max, 0.5)
}
