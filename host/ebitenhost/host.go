// Package ebitenhost draws artboards into an *ebiten.Image.
//
// Ebiten has no path clipping or transform stack of its own, so the host keeps
// both: the current matrix is composed on the host side and applied to every
// point before triangulation, and a clip is approximated by the device-space
// bounding box of the clip path, drawn through a SubImage.
package ebitenhost

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/vecbridge"
	"github.com/phanxgames/vecbridge/engine"
)

type state struct {
	m       engine.Mat2D
	clip    image.Rectangle
	clipped bool
}

// Host owns the drawing state for one target image.
type Host struct {
	target *ebiten.Image
	cur    state
	stack  []state

	// AntiAlias enables ebiten's anti-aliased triangle rasterization.
	AntiAlias bool
}

// NewHost returns a host drawing into target.
func NewHost(target *ebiten.Image) *Host {
	h := &Host{AntiAlias: true}
	h.SetTarget(target)
	return h
}

// SetTarget switches the destination image and resets the matrix, clip and
// save stack. Call it once per frame with the screen image.
func (h *Host) SetTarget(target *ebiten.Image) {
	h.target = target
	h.cur = state{m: engine.IdentityMat2D}
	h.stack = h.stack[:0]
}

// Target returns the destination image.
func (h *Host) Target() *ebiten.Image { return h.target }

// Matrix returns the current device matrix.
func (h *Host) Matrix() engine.Mat2D { return h.cur.m }

// Clip returns the current clip rectangle in target pixels and whether one
// is set.
func (h *Host) Clip() (image.Rectangle, bool) { return h.cur.clip, h.cur.clipped }

// Depth returns the number of unmatched Save calls.
func (h *Host) Depth() int { return len(h.stack) }

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

// Renderer returns a vecbridge renderer drawing through h.
func (h *Host) Renderer() *vecbridge.Renderer {
	return vecbridge.NewRenderer(h, Callbacks())
}

func (h *Host) save() {
	h.stack = append(h.stack, h.cur)
}

func (h *Host) restore() {
	if len(h.stack) == 0 {
		vecbridge.Logger().Warn("ebitenhost: restore without save")
		return
	}
	h.cur = h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
}

func (h *Host) transform(m [6]float32) {
	h.cur.m = h.cur.m.Multiply(engine.Mat2D(m))
}

func (h *Host) clipPath(points []float32, verbs []vecbridge.Verb) {
	if !wellFormed(points, verbs) {
		return
	}
	r := clipBounds(h.cur.m, points)
	if h.cur.clipped {
		r = r.Intersect(h.cur.clip)
	}
	h.cur.clip, h.cur.clipped = r, true
}

func (h *Host) drawPath(points []float32, verbs []vecbridge.Verb, paint *vecbridge.PaintDescriptor) {
	if h.target == nil || !wellFormed(points, verbs) {
		return
	}
	dst := h.target
	if h.cur.clipped {
		if h.cur.clip.Empty() {
			return
		}
		dst = h.target.SubImage(h.cur.clip).(*ebiten.Image)
	}

	var p vector.Path
	replay(&p, h.cur.m, points, verbs)

	if paint.Style == vecbridge.StyleFill {
		vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
		if len(is) == 0 {
			return
		}
		shade(vs, h.cur.m, paint)
		dst.DrawTriangles(vs, is, whiteImage(), &ebiten.DrawTrianglesOptions{
			AntiAlias: h.AntiAlias,
			FillRule:  ebiten.FillRuleNonZero,
		})
		return
	}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:      paint.Thickness * scaleOf(h.cur.m),
		LineJoin:   vector.LineJoinRound,
		LineCap:    vector.LineCapRound,
		MiterLimit: 10,
	})
	if len(is) == 0 {
		return
	}
	shade(vs, h.cur.m, paint)
	dst.DrawTriangles(vs, is, whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: h.AntiAlias})
}

// replay adds the path to p with every point mapped through m.
func replay(p *vector.Path, m engine.Mat2D, points []float32, verbs []vecbridge.Verb) {
	pt := func(i int) (float32, float32) {
		q := m.MapPoint(engine.Vec2D{points[2*i], points[2*i+1]})
		return q[0], q[1]
	}
	i := 0
	for _, v := range verbs {
		switch v {
		case vecbridge.VerbMove:
			x, y := pt(i)
			p.MoveTo(x, y)
		case vecbridge.VerbLine:
			x, y := pt(i)
			p.LineTo(x, y)
		case vecbridge.VerbQuad:
			cx, cy := pt(i)
			x, y := pt(i + 1)
			p.QuadTo(cx, cy, x, y)
		case vecbridge.VerbCubic:
			ox, oy := pt(i)
			ix, iy := pt(i + 1)
			x, y := pt(i + 2)
			p.CubicTo(ox, oy, ix, iy, x, y)
		case vecbridge.VerbClose:
			p.Close()
		}
		i += v.PointCount()
	}
}

func wellFormed(points []float32, verbs []vecbridge.Verb) bool {
	n, ok := vecbridge.CountPoints(verbs)
	if !ok || 2*n != len(points) {
		vecbridge.Logger().Warn("ebitenhost: malformed path skipped", "verbs", len(verbs), "points", len(points)/2)
		return false
	}
	return true
}

// clipBounds returns the pixel rectangle covering points mapped through m.
func clipBounds(m engine.Mat2D, points []float32) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for i := 0; i+1 < len(points); i += 2 {
		q := m.MapPoint(engine.Vec2D{points[i], points[i+1]})
		minX, maxX = min(minX, q[0]), max(maxX, q[0])
		minY, maxY = min(minY, q[1]), max(maxY, q[1])
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// shade colors vertices, which are already in device space. Gradients are
// evaluated per vertex between the first and last color, so the result is
// exact for linear gradients across straight edges and approximate
// otherwise.
func shade(vs []ebiten.Vertex, m engine.Mat2D, paint *vecbridge.PaintDescriptor) {
	c0 := straight(paint.Color)
	c1 := straight(paint.Color1)
	var t func(x, y float32) float32
	switch paint.Gradient {
	case vecbridge.GradientLinear:
		s := m.MapPoint(engine.Vec2D{paint.SX, paint.SY})
		e := m.MapPoint(engine.Vec2D{paint.EX, paint.EY})
		t = func(x, y float32) float32 { return linearT(s, e, x, y) }
	case vecbridge.GradientRadial:
		c := m.MapPoint(engine.Vec2D{paint.SX, paint.SY})
		r := paint.EX * scaleOf(m)
		t = func(x, y float32) float32 { return radialT(c, r, x, y) }
	}
	for i := range vs {
		v := &vs[i]
		v.SrcX, v.SrcY = 1, 1
		col := c0
		if t != nil {
			col = lerp(c0, c1, t(v.DstX, v.DstY))
		}
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = col[0], col[1], col[2], col[3]
	}
}

// linearT projects (x, y) onto the segment s-e and clamps to [0, 1].
func linearT(s, e engine.Vec2D, x, y float32) float32 {
	dx, dy := e[0]-s[0], e[1]-s[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return 0
	}
	return clamp01(((x-s[0])*dx + (y-s[1])*dy) / l2)
}

// radialT is the distance from c relative to r, clamped to [0, 1].
func radialT(c engine.Vec2D, r, x, y float32) float32 {
	if r <= 0 {
		return 1
	}
	d := math.Hypot(float64(x-c[0]), float64(y-c[1]))
	return clamp01(float32(d) / r)
}

func clamp01(v float32) float32 { return min(max(v, 0), 1) }

// straight converts a packed color to straight-alpha RGBA in 0..1.
func straight(c vecbridge.ColorInt) [4]float32 {
	return [4]float32{
		float32(c.Red()) / 255,
		float32(c.Green()) / 255,
		float32(c.Blue()) / 255,
		float32(c.Alpha()) / 255,
	}
}

func lerp(a, b [4]float32, t float32) [4]float32 {
	var out [4]float32
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// scaleOf is the uniform scale m applies to lengths.
func scaleOf(m engine.Mat2D) float32 {
	det := m[0]*m[3] - m[1]*m[2]
	return float32(math.Sqrt(math.Abs(float64(det))))
}

var (
	whiteOnce sync.Once
	white     *ebiten.Image
)

// whiteImage is the 1x1 source for untextured triangles. It is cut from the
// middle of a 3x3 image so sampling never bleeds past its edge.
func whiteImage() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return white
}
