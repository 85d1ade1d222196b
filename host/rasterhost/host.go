// Package rasterhost rasterizes artboards into an in-memory image with
// github.com/gogpu/gg. It is the reference host for the vecbridge callback
// table and the backend of the PNG frame exporter.
package rasterhost

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/vecbridge"
)

// Host owns a gg drawing context. Drawing errors are sticky: the first one
// is kept and reported by Err.
type Host struct {
	dc  *gg.Context
	err error
}

// NewHost creates a host with a transparent w x h canvas.
func NewHost(w, h int) *Host {
	return &Host{dc: gg.NewContext(w, h)}
}

// Context returns the underlying gg context.
func (h *Host) Context() *gg.Context { return h.dc }

// Width returns the canvas width in pixels.
func (h *Host) Width() int { return h.dc.Width() }

// Height returns the canvas height in pixels.
func (h *Host) Height() int { return h.dc.Height() }

// Callbacks returns the callback table. The ctx passed to each callback must
// be a *Host.
func Callbacks() vecbridge.Callbacks {
	return vecbridge.Callbacks{
		Save:      func(ctx any) { ctx.(*Host).save() },
		Restore:   func(ctx any) { ctx.(*Host).restore() },
		Transform: func(ctx any, m [6]float32) { ctx.(*Host).transform(m) },
		ClipPath: func(ctx any, points []float32, verbs []vecbridge.Verb) {
			ctx.(*Host).clipPath(points, verbs)
		},
		DrawPath: func(ctx any, points []float32, verbs []vecbridge.Verb, paint *vecbridge.PaintDescriptor) {
			ctx.(*Host).drawPath(points, verbs, paint)
		},
	}
}

// Renderer returns a vecbridge renderer drawing into h.
func (h *Host) Renderer() *vecbridge.Renderer {
	return vecbridge.NewRenderer(h, Callbacks())
}

// Clear resets the transform and clip and fills the canvas with c.
func (h *Host) Clear(c vecbridge.ColorInt) {
	h.dc.Identity()
	h.dc.ResetClip()
	h.dc.ClearWithColor(toRGBA(c))
}

// Image returns the current canvas contents.
func (h *Host) Image() image.Image { return h.dc.Image() }

// SavePNG writes the canvas to path.
func (h *Host) SavePNG(path string) error {
	if err := h.dc.SavePNG(path); err != nil {
		return fmt.Errorf("rasterhost: save %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the canvas as PNG to w.
func (h *Host) EncodePNG(w io.Writer) error {
	if err := h.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("rasterhost: encode png: %w", err)
	}
	return nil
}

// Err returns the first fill or stroke error since the last ResetErr.
func (h *Host) Err() error { return h.err }

// ResetErr clears the sticky error.
func (h *Host) ResetErr() { h.err = nil }

// Close releases the context.
func (h *Host) Close() error {
	return errors.Join(h.err, h.dc.Close())
}

func (h *Host) save()    { h.dc.Push() }
func (h *Host) restore() { h.dc.Pop() }

func (h *Host) transform(m [6]float32) {
	h.dc.Transform(toMatrix(m))
}

func (h *Host) clipPath(points []float32, verbs []vecbridge.Verb) {
	h.dc.ClearPath()
	if !h.replay(points, verbs) {
		return
	}
	h.dc.Clip()
}

func (h *Host) drawPath(points []float32, verbs []vecbridge.Verb, paint *vecbridge.PaintDescriptor) {
	h.dc.ClearPath()
	if !h.replay(points, verbs) {
		return
	}
	brush := h.brush(paint)
	var err error
	if paint.Style == vecbridge.StyleFill {
		h.dc.SetFillBrush(brush)
		err = h.dc.Fill()
	} else {
		h.dc.SetStrokeBrush(brush)
		h.dc.SetLineWidth(float64(paint.Thickness))
		err = h.dc.Stroke()
	}
	if err != nil {
		vecbridge.Logger().Debug("rasterhost: draw failed", "error", err)
		if h.err == nil {
			h.err = fmt.Errorf("rasterhost: draw path: %w", err)
		}
	}
}

// replay feeds the serialized path to the context. Points are in local
// space; gg applies the current transform as they are added.
func (h *Host) replay(points []float32, verbs []vecbridge.Verb) bool {
	pt := func(i int) (float64, float64) {
		return float64(points[2*i]), float64(points[2*i+1])
	}
	n, ok := vecbridge.CountPoints(verbs)
	if !ok || 2*n != len(points) {
		vecbridge.Logger().Warn("rasterhost: malformed path skipped", "verbs", len(verbs), "points", len(points)/2)
		return false
	}
	i := 0
	for _, v := range verbs {
		switch v {
		case vecbridge.VerbMove:
			x, y := pt(i)
			h.dc.MoveTo(x, y)
		case vecbridge.VerbLine:
			x, y := pt(i)
			h.dc.LineTo(x, y)
		case vecbridge.VerbQuad:
			cx, cy := pt(i)
			x, y := pt(i + 1)
			h.dc.QuadraticTo(cx, cy, x, y)
		case vecbridge.VerbCubic:
			ox, oy := pt(i)
			ix, iy := pt(i + 1)
			x, y := pt(i + 2)
			h.dc.CubicTo(ox, oy, ix, iy, x, y)
		case vecbridge.VerbClose:
			h.dc.ClosePath()
		}
		i += v.PointCount()
	}
	return true
}

// brush builds a gg brush for paint. Gradient geometry is given in the
// path's local space while gg evaluates brushes in device space, so the
// points are mapped through the current transform.
func (h *Host) brush(paint *vecbridge.PaintDescriptor) gg.Brush {
	c0, c1 := toRGBA(paint.Color), toRGBA(paint.Color1)
	m := h.dc.GetTransform()
	switch paint.Gradient {
	case vecbridge.GradientLinear:
		s := m.TransformPoint(gg.Pt(float64(paint.SX), float64(paint.SY)))
		e := m.TransformPoint(gg.Pt(float64(paint.EX), float64(paint.EY)))
		return gg.NewLinearGradientBrush(s.X, s.Y, e.X, e.Y).
			AddColorStop(0, c0).
			AddColorStop(1, c1)
	case vecbridge.GradientRadial:
		c := m.TransformPoint(gg.Pt(float64(paint.SX), float64(paint.SY)))
		r := float64(paint.EX) * scaleOf(m)
		return gg.NewRadialGradientBrush(c.X, c.Y, 0, r).
			AddColorStop(0, c0).
			AddColorStop(1, c1)
	default:
		return gg.Solid(c0)
	}
}

// toMatrix converts [xx xy yx yy tx ty] into gg's row-major form.
func toMatrix(m [6]float32) gg.Matrix {
	return gg.Matrix{
		A: float64(m[0]), B: float64(m[2]), C: float64(m[4]),
		D: float64(m[1]), E: float64(m[3]), F: float64(m[5]),
	}
}

// scaleOf is the uniform scale a matrix applies to lengths.
func scaleOf(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
}

func toRGBA(c vecbridge.ColorInt) gg.RGBA {
	return gg.RGBA{
		R: float64(c>>16&0xFF) / 255,
		G: float64(c>>8&0xFF) / 255,
		B: float64(c&0xFF) / 255,
		A: float64(c>>24) / 255,
	}
}
