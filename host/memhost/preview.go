// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memhost

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
)

// Projection maps model space onto the preview plane.
type Projection int

const (
	// Isometric looks from (+1, +1, +1) towards the origin.
	Isometric Projection = iota
	// Top looks down the -Z axis.
	Top
	// Front looks along +Y.
	Front
)

// PreviewOptions controls Preview. Zero fields take defaults.
type PreviewOptions struct {
	Width, Height int
	Projection    Projection
	Background    color.Color
	// Supersample renders at this multiple of the target size and scales
	// down. Default 2.
	Supersample int
	// LineWidth is the stroke width of line primitives in target pixels.
	LineWidth float64
}

func (o PreviewOptions) withDefaults() PreviewOptions {
	if o.Width <= 0 {
		o.Width = 512
	}
	if o.Height <= 0 {
		o.Height = 512
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Supersample <= 0 {
		o.Supersample = 2
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 1
	}
	return o
}

var lightDir = geom.Pt(0.3, 0.5, 1).Normalize()

// primitive is one projected triangle or line ready to paint.
type primitive struct {
	pts   []geom.XYZ // u, v, depth
	color color.NRGBA
	depth float64
	line  bool
	pass  int
}

// Preview rasterizes the flushes of a frame. Opaque flushes are painted
// before transparent ones; within a pass primitives are painted back to
// front.
func Preview(f *Frame, opts PreviewOptions) *image.RGBA {
	opts = opts.withDefaults()
	ss := opts.Supersample
	w, h := opts.Width*ss, opts.Height*ss

	big := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(big, big.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	prims := collect(f, opts.Projection)
	if len(prims) > 0 {
		toScreen := fit(prims, w, h)
		sort.SliceStable(prims, func(i, j int) bool {
			if prims[i].pass != prims[j].pass {
				return prims[i].pass < prims[j].pass
			}
			return prims[i].depth > prims[j].depth
		})
		z := vector.NewRasterizer(w, h)
		lw := opts.LineWidth * float64(ss)
		for _, p := range prims {
			z.Reset(w, h)
			if p.line {
				strokeSegment(z, toScreen(p.pts[0]), toScreen(p.pts[1]), lw)
			} else {
				a, b, c := toScreen(p.pts[0]), toScreen(p.pts[1]), toScreen(p.pts[2])
				z.MoveTo(a[0], a[1])
				z.LineTo(b[0], b[1])
				z.LineTo(c[0], c[1])
				z.ClosePath()
			}
			z.Draw(big, big.Bounds(), image.NewUniform(p.color), image.Point{})
		}
	}

	if ss == 1 {
		return big
	}
	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), big, big.Bounds(), xdraw.Src, nil)
	return dst
}

func project(p geom.XYZ, proj Projection) geom.XYZ {
	switch proj {
	case Top:
		return geom.Pt(p.X, p.Y, -p.Z)
	case Front:
		return geom.Pt(p.X, p.Z, p.Y)
	default:
		return geom.Pt(
			(p.X-p.Y)/math.Sqrt2,
			(2*p.Z-p.X-p.Y)/math.Sqrt(6),
			-(p.X+p.Y+p.Z)/math.Sqrt(3),
		)
	}
}

func collect(f *Frame, proj Projection) []primitive {
	if f == nil {
		return nil
	}
	var out []primitive
	for _, fl := range f.Flushes {
		req := fl.Request
		attrs := attributesOf(req.Vertices.Layout().BufferLayout())
		stride := attrs.stride
		data := req.Vertices.Floats()
		idx := req.Indices.Indices()
		per := host.IndicesPerPrimitive(req.Topology)
		pass := 0
		if fl.Transparent {
			pass = 1
		}

		vertex := func(i uint32) (geom.XYZ, []float32) {
			v := data[int(i)*stride : int(i+1)*stride]
			k := attrs.position
			return geom.Pt(float64(v[k]), float64(v[k+1]), float64(v[k+2])), v
		}

		for k := 0; k < req.PrimitiveCount; k++ {
			first := req.StartIndex + k*per
			if first+per > len(idx) {
				break
			}
			p := primitive{line: per == 2, pass: pass}
			var raw []float32
			var model []geom.XYZ
			for _, i := range idx[first : first+per] {
				if int(i+1)*stride > len(data) {
					model = nil
					break
				}
				pt, v := vertex(i)
				if raw == nil {
					raw = v
				}
				model = append(model, pt)
			}
			if len(model) != per {
				continue
			}
			depth := 0.0
			for _, m := range model {
				q := project(m, proj)
				p.pts = append(p.pts, q)
				depth += q.Z
			}
			p.depth = depth / float64(per)
			p.color = shade(req, attrs, raw, model)
			out = append(out, p)
		}
	}
	return out
}

// vertexAttributes are float offsets into one vertex, -1 when absent.
type vertexAttributes struct {
	stride   int
	position int
	normal   int
	color    int
}

// attributesOf reads the attribute offsets from a pipeline descriptor:
// the first vec3 is the position, a second vec3 the normal, a vec4 the color.
func attributesOf(bl gputypes.VertexBufferLayout) vertexAttributes {
	a := vertexAttributes{stride: int(bl.ArrayStride / 4), position: -1, normal: -1, color: -1}
	for _, attr := range bl.Attributes {
		off := int(attr.Offset / 4)
		switch attr.Format {
		case gputypes.VertexFormatFloat32x3:
			if a.position < 0 {
				a.position = off
			} else {
				a.normal = off
			}
		case gputypes.VertexFormatFloat32x4:
			a.color = off
		}
	}
	return a
}

func shade(req host.FlushRequest, attrs vertexAttributes, v []float32, model []geom.XYZ) color.NRGBA {
	r, g, b, a := 0.5, 0.5, 0.5, 1.0
	if c := attrs.color; c >= 0 {
		r, g, b, a = float64(v[c]), float64(v[c+1]), float64(v[c+2]), float64(v[c+3])
	} else if e := req.Effect; e != nil && e.HasColor {
		r, g, b = e.Color.R, e.Color.G, e.Color.B
		a = 1 - e.Transparency
	}

	light := 1.0
	if len(model) == 3 {
		var n geom.XYZ
		if k := attrs.normal; k >= 0 {
			n = geom.Pt(float64(v[k]), float64(v[k+1]), float64(v[k+2]))
		} else {
			n = geom.Triangle{model[0], model[1], model[2]}.Normal()
		}
		light = 0.35 + 0.65*math.Abs(n.Normalize().Dot(lightDir))
	}

	to8 := func(x float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
	}
	return color.NRGBA{R: to8(r * light), G: to8(g * light), B: to8(b * light), A: to8(a)}
}

// fit returns a mapping from projected points to pixel coordinates that
// keeps the aspect ratio and leaves a 5% margin.
func fit(prims []primitive, w, h int) func(geom.XYZ) [2]float32 {
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, p := range prims {
		for _, q := range p.pts {
			minU, maxU = math.Min(minU, q.X), math.Max(maxU, q.X)
			minV, maxV = math.Min(minV, q.Y), math.Max(maxV, q.Y)
		}
	}
	spanU, spanV := maxU-minU, maxV-minV
	if spanU < geom.Tolerance {
		spanU = 1
	}
	if spanV < geom.Tolerance {
		spanV = 1
	}
	scale := 0.9 * math.Min(float64(w)/spanU, float64(h)/spanV)
	cu, cv := (minU+maxU)/2, (minV+maxV)/2
	return func(q geom.XYZ) [2]float32 {
		x := float64(w)/2 + (q.X-cu)*scale
		y := float64(h)/2 - (q.Y-cv)*scale
		return [2]float32{float32(x), float32(y)}
	}
}

// strokeSegment adds a quad of width lw around a-b.
func strokeSegment(z *vector.Rasterizer, a, b [2]float32, lw float64) {
	dx, dy := float64(b[0]-a[0]), float64(b[1]-a[1])
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	nx, ny := float32(-dy/l*lw/2), float32(dx/l*lw/2)
	z.MoveTo(a[0]+nx, a[1]+ny)
	z.LineTo(b[0]+nx, b[1]+ny)
	z.LineTo(b[0]-nx, b[1]-ny)
	z.LineTo(a[0]-nx, a[1]-ny)
	z.ClosePath()
}
