package engine

// Minimal Factory / Renderer implementations that record what the engine
// asks of a backend.

type testPath struct {
	raw  RawPath
	rule FillRule
}

func (p *testPath) Reset()                    { p.raw.Reset() }
func (p *testPath) SetFillRule(rule FillRule) { p.rule = rule }
func (p *testPath) MoveTo(x, y float32)       { p.raw.MoveTo(x, y) }
func (p *testPath) LineTo(x, y float32)       { p.raw.LineTo(x, y) }
func (p *testPath) Close()                    { p.raw.Close() }

func (p *testPath) CubicTo(ox, oy, ix, iy, x, y float32) {
	p.raw.CubicTo(ox, oy, ix, iy, x, y)
}

func (p *testPath) AddRenderPath(other RenderPath, m Mat2D) {
	src := other.(*testPath)
	for _, pt := range src.raw.points {
		p.raw.points = append(p.raw.points, m.MapPoint(pt))
	}
	p.raw.verbs = append(p.raw.verbs, src.raw.verbs...)
}

type testShader struct {
	radial bool
	colors []ColorInt
	stops  []float32
}

type testPaint struct {
	style     PaintStyle
	color     ColorInt
	thickness float32
	shader    *testShader
}

func (p *testPaint) SetStyle(s PaintStyle)  { p.style = s }
func (p *testPaint) SetColor(c ColorInt)    { p.color = c }
func (p *testPaint) SetThickness(t float32) { p.thickness = t }
func (p *testPaint) SetJoin(StrokeJoin)     {}
func (p *testPaint) SetCap(StrokeCap)       {}
func (p *testPaint) SetBlendMode(BlendMode) {}
func (p *testPaint) InvalidateStroke()      {}

func (p *testPaint) SetShader(s RenderShader) {
	if s == nil {
		p.shader = nil
		return
	}
	p.shader = s.(*testShader)
}

type testFactory struct {
	paths, paints, shaders int
}

func newTestFactory() *testFactory { return &testFactory{} }

func (f *testFactory) MakeBufferU16([]uint16) RenderBuffer  { return nil }
func (f *testFactory) MakeBufferU32([]uint32) RenderBuffer  { return nil }
func (f *testFactory) MakeBufferF32([]float32) RenderBuffer { return nil }
func (f *testFactory) DecodeImage([]byte) RenderImage       { return nil }

func (f *testFactory) MakeLinearGradient(sx, sy, ex, ey float32, colors []ColorInt, stops []float32) RenderShader {
	f.shaders++
	return &testShader{colors: colors, stops: stops}
}

func (f *testFactory) MakeRadialGradient(cx, cy, r float32, colors []ColorInt, stops []float32) RenderShader {
	f.shaders++
	return &testShader{radial: true, colors: colors, stops: stops}
}

func (f *testFactory) MakeRenderPath(raw *RawPath, rule FillRule) RenderPath {
	f.paths++
	p := &testPath{rule: rule}
	p.raw.points = append(p.raw.points, raw.points...)
	p.raw.verbs = append(p.raw.verbs, raw.verbs...)
	return p
}

func (f *testFactory) MakeEmptyRenderPath() RenderPath {
	f.paths++
	return &testPath{}
}

func (f *testFactory) MakeRenderPaint() RenderPaint {
	f.paints++
	return &testPaint{}
}

type drawCall struct {
	kind  string
	mat   Mat2D
	path  RawPath
	paint testPaint
}

type testRenderer struct {
	calls []drawCall
}

func (r *testRenderer) Save()    { r.calls = append(r.calls, drawCall{kind: "save"}) }
func (r *testRenderer) Restore() { r.calls = append(r.calls, drawCall{kind: "restore"}) }

func (r *testRenderer) Transform(m Mat2D) {
	r.calls = append(r.calls, drawCall{kind: "transform", mat: m})
}

func (r *testRenderer) DrawPath(path RenderPath, paint RenderPaint) {
	r.calls = append(r.calls, drawCall{
		kind:  "draw",
		path:  cloneRawPath(&path.(*testPath).raw),
		paint: *paint.(*testPaint),
	})
}

func (r *testRenderer) ClipPath(path RenderPath) {
	r.calls = append(r.calls, drawCall{kind: "clip", path: cloneRawPath(&path.(*testPath).raw)})
}

func (r *testRenderer) DrawImage(RenderImage, BlendMode, float32) {}

func (r *testRenderer) DrawImageMesh(RenderImage, RenderBuffer, RenderBuffer, RenderBuffer, BlendMode, float32) {
}

func (r *testRenderer) kinds() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.kind
	}
	return out
}
