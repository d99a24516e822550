// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package solids builds the closed solids drawn for points and directions:
// cubes, spheres and square blends between two points.
package solids

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/internal/cache"
)

// Precondition errors. They are returned before any geometry is built.
var (
	ErrInvalidSize         = errors.New("solids: size must be positive and finite")
	ErrDegenerateDirection = errors.New("solids: direction has zero length")
)

// DefaultResolution is the number of segments along a sphere meridian.
const DefaultResolution = 24

// sphereGores is the number of faces around a sphere.
const sphereGores = 8

// Generator creates solids. Unit-sphere templates are cached per
// resolution, so a Generator is cheap to share and safe for concurrent use.
type Generator struct {
	resolution int
	spheres    *cache.Cache[int, *geom.PolySolid]
}

// Option configures a Generator.
type Option func(*Generator)

// WithResolution sets the number of segments along a sphere meridian.
// Values below 4 are raised to 4.
func WithResolution(n int) Option {
	return func(g *Generator) {
		g.resolution = max(n, 4)
	}
}

// WithTemplateCache sets how many sphere templates are kept.
func WithTemplateCache(n int) Option {
	return func(g *Generator) {
		g.spheres = cache.New[int, *geom.PolySolid](n)
	}
}

// NewGenerator creates a generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{resolution: DefaultResolution}
	for _, opt := range opts {
		opt(g)
	}
	if g.spheres == nil {
		g.spheres = cache.New[int, *geom.PolySolid](8)
	}
	return g
}

// Resolution returns the sphere meridian resolution.
func (g *Generator) Resolution() int { return g.resolution }

// TemplateStats reports the sphere template cache counters.
func (g *Generator) TemplateStats() cache.Stats { return g.spheres.Stats() }

var defaultGenerator = NewGenerator()

// CreateCube builds an axis-aligned cube of edge size centered at center.
func CreateCube(center geom.XYZ, size float64) (*geom.PolySolid, error) {
	return defaultGenerator.CreateCube(center, size)
}

// CreateSphere builds a sphere of radius centered at center.
func CreateSphere(center geom.XYZ, radius float64) (*geom.PolySolid, error) {
	return defaultGenerator.CreateSphere(center, radius)
}

// CreateBlend builds a square loft from start to end.
func CreateBlend(start, end geom.XYZ, startSize, endSize float64) (*geom.PolySolid, error) {
	return defaultGenerator.CreateBlend(start, end, startSize, endSize)
}

func checkSize(what string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s %g", ErrInvalidSize, what, v)
	}
	return nil
}

// CreateCube extrudes a square of side size, lying size/2 below center, by
// size along +Z. The result spans center ± size/2 on every axis.
func (g *Generator) CreateCube(center geom.XYZ, size float64) (*geom.PolySolid, error) {
	if err := checkSize("cube size", size); err != nil {
		return nil, err
	}
	h := size / 2
	z := center.Z - h
	profile := []geom.XYZ{
		geom.Pt(center.X-h, center.Y-h, z),
		geom.Pt(center.X+h, center.Y-h, z),
		geom.Pt(center.X+h, center.Y+h, z),
		geom.Pt(center.X-h, center.Y+h, z),
	}
	s, err := geom.Extrude(profile, geom.BasisZ, size)
	if err != nil {
		return nil, fmt.Errorf("solids: cube: %w", err)
	}
	return s, nil
}

// CreateSphere revolves a half circle in the XZ plane, closed by the
// vertical chord through center, a full turn about the vertical axis.
func (g *Generator) CreateSphere(center geom.XYZ, radius float64) (*geom.PolySolid, error) {
	if err := checkSize("sphere radius", radius); err != nil {
		return nil, err
	}
	var buildErr error
	unit := g.spheres.GetOrCreate(g.resolution, func() *geom.PolySolid {
		s, err := unitSphere(g.resolution)
		buildErr = err
		return s
	})
	if buildErr != nil || unit == nil {
		g.spheres.Delete(g.resolution)
		if buildErr == nil {
			buildErr = errors.New("missing template")
		}
		return nil, fmt.Errorf("solids: sphere: %w", buildErr)
	}
	return unit.Transformed(geom.Translation(center).Multiply(geom.Scaling(radius))), nil
}

func unitSphere(resolution int) (*geom.PolySolid, error) {
	arc := geom.Arc(geom.Origin, 1, 1, geom.BasisX, geom.BasisZ, -math.Pi/2, math.Pi/2, resolution)
	chord := []geom.XYZ{geom.Pt(0, 0, 1), geom.Pt(0, 0, -1)}
	steps := max(1, 2*resolution/sphereGores)
	return geom.Revolve(geom.Origin, geom.BasisZ, [][]geom.XYZ{arc, chord}, -math.Pi, math.Pi, sphereGores, steps)
}

// CreateBlend lofts a square of side startSize at start into a square of
// side endSize at end. Both squares are perpendicular to end - start.
// Directions shorter than geom.Tolerance are rejected; any longer loft
// builds, however thin.
func (g *Generator) CreateBlend(start, end geom.XYZ, startSize, endSize float64) (*geom.PolySolid, error) {
	if err := checkSize("blend start size", startSize); err != nil {
		return nil, err
	}
	if err := checkSize("blend end size", endSize); err != nil {
		return nil, err
	}
	direction := end.Sub(start)
	up, err := PerpendicularTo(direction)
	if err != nil {
		return nil, err
	}
	axis := direction.Normalize()
	side := axis.Cross(up).Normalize()
	angle := direction.AngleTo(geom.BasisZ)

	section := func(center geom.XYZ, size float64) []geom.XYZ {
		k := size / math.Sqrt2
		loop := []geom.XYZ{
			center.Add(up.Mul(k)),
			center.Add(side.Mul(k)),
			center.Sub(up.Mul(k)),
			center.Sub(side.Mul(k)),
		}
		return geom.RotationAtPoint(axis, angle, center).OfPoints(loop)
	}

	s, err := geom.Blend(section(start, startSize), section(end, endSize), nil)
	if err != nil {
		return nil, fmt.Errorf("solids: blend: %w", err)
	}
	return s, nil
}

// PerpendicularTo returns a unit vector perpendicular to direction: the
// cross product with Z, or with X when that vanishes, or with Y.
func PerpendicularTo(direction geom.XYZ) (geom.XYZ, error) {
	if direction.IsZeroLength() {
		return geom.XYZ{}, ErrDegenerateDirection
	}
	for _, ref := range []geom.XYZ{geom.BasisZ, geom.BasisX, geom.BasisY} {
		if up := direction.Cross(ref); !up.IsZeroLength() {
			return up.Normalize(), nil
		}
	}
	return geom.XYZ{}, fmt.Errorf("%w: no reference axis is transverse to %v", ErrDegenerateDirection, direction)
}
