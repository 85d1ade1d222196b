package vecbridge

import (
	"slices"
	"testing"

	"github.com/phanxgames/vecbridge/engine"
)

// call is one recorded host callback.
type call struct {
	kind   string
	ctx    any
	mat    [6]float32
	points []float32
	verbs  []Verb
	paint  PaintDescriptor
}

type recorder struct {
	calls []call
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		Save:    func(ctx any) { r.calls = append(r.calls, call{kind: "save", ctx: ctx}) },
		Restore: func(ctx any) { r.calls = append(r.calls, call{kind: "restore", ctx: ctx}) },
		Transform: func(ctx any, m [6]float32) {
			r.calls = append(r.calls, call{kind: "transform", ctx: ctx, mat: m})
		},
		ClipPath: func(ctx any, points []float32, verbs []Verb) {
			r.calls = append(r.calls, call{kind: "clip", ctx: ctx, points: points, verbs: verbs})
		},
		DrawPath: func(ctx any, points []float32, verbs []Verb, p *PaintDescriptor) {
			r.calls = append(r.calls, call{kind: "draw", ctx: ctx, points: points, verbs: verbs, paint: *p})
		},
	}
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) kinds() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.kind
	}
	return out
}

func samplePath() *Path {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(4, 0)
	p.CubicTo(5, 1, 5, 3, 4, 4)
	p.Close()
	return p
}

func TestRendererForwardsSaveRestoreTransform(t *testing.T) {
	rec := &recorder{}
	ctx := "host"
	r := NewRenderer(ctx, rec.callbacks())

	r.Save()
	r.Transform(engine.Mat2D{1, 2, 3, 4, 5, 6})
	r.Restore()
	r.Restore() // unbalanced, forwarded anyway

	if got, want := rec.kinds(), []string{"save", "transform", "restore", "restore"}; !slices.Equal(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if rec.calls[1].mat != [6]float32{1, 2, 3, 4, 5, 6} {
		t.Errorf("transform = %v, want components unchanged", rec.calls[1].mat)
	}
	for i, c := range rec.calls {
		if c.ctx != ctx {
			t.Errorf("call %d ctx = %v, want %v", i, c.ctx, ctx)
		}
	}
}

func TestRendererDrawPath(t *testing.T) {
	rec := &recorder{}
	r := NewRenderer(nil, rec.callbacks())

	p := samplePath()
	paint := NewPaint()
	paint.SetColor(0xFF102030)
	paint.SetStyle(StyleFill)
	r.DrawPath(p, paint)

	if len(rec.calls) != 1 || rec.calls[0].kind != "draw" {
		t.Fatalf("calls = %v, want one draw", rec.kinds())
	}
	c := rec.calls[0]
	wantPoints, wantVerbs := p.Serialize()
	assertFloats(t, "points", c.points, wantPoints)
	if !slices.Equal(c.verbs, wantVerbs) {
		t.Errorf("verbs = %v, want %v", c.verbs, wantVerbs)
	}
	if len(c.points) != 2*p.PointCount() {
		t.Errorf("len(points) = %d, want 2*%d", len(c.points), p.PointCount())
	}
	if c.paint != paint.Descriptor() {
		t.Errorf("paint = %+v, want %+v", c.paint, paint.Descriptor())
	}
}

func TestRendererDrawPathSnapshotsPaint(t *testing.T) {
	paint := NewPaint()
	paint.SetColor(0xFF000001)
	r := NewRenderer(nil, Callbacks{
		DrawPath: func(_ any, _ []float32, _ []Verb, p *PaintDescriptor) {
			p.Color = 0 // host scribbles on its copy
		},
	})
	r.DrawPath(samplePath(), paint)
	if paint.Descriptor().Color != 0xFF000001 {
		t.Error("host mutation leaked into the paint")
	}
}

func TestClipAndDrawSendIdenticalArrays(t *testing.T) {
	rec := &recorder{}
	r := NewRenderer(nil, rec.callbacks())
	p := samplePath()

	r.ClipPath(p)
	r.DrawPath(p, NewPaint())

	if len(rec.calls) != 2 {
		t.Fatalf("calls = %v", rec.kinds())
	}
	clip, draw := rec.calls[0], rec.calls[1]
	assertFloats(t, "points", clip.points, draw.points)
	if !slices.Equal(clip.verbs, draw.verbs) {
		t.Errorf("clip verbs %v != draw verbs %v", clip.verbs, draw.verbs)
	}
}

func TestRendererImagesAreNoOps(t *testing.T) {
	rec := &recorder{}
	r := NewRenderer(nil, rec.callbacks())
	f := NewFactory()

	r.DrawImage(f.DecodeImage([]byte{1, 2, 3}), engine.BlendSrcOver, 1)
	r.DrawImageMesh(nil, f.MakeBufferF32([]float32{0, 0}), f.MakeBufferF32(nil), f.MakeBufferU16([]uint16{0}), engine.BlendScreen, 0.5)

	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.kinds())
	}
}

func TestRendererForeignResourcesIgnored(t *testing.T) {
	rec := &recorder{}
	r := NewRenderer(nil, rec.callbacks())
	r.DrawPath(foreignPath{}, NewPaint())
	r.ClipPath(foreignPath{})
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.kinds())
	}
}

func TestRendererNilCallbackPanics(t *testing.T) {
	r := NewRenderer(nil, Callbacks{})
	defer func() {
		if recover() == nil {
			t.Error("Save with a nil callback did not panic")
		}
	}()
	r.Save()
}

func TestFactoryUnsupportedResources(t *testing.T) {
	f := NewFactory()
	if f.MakeBufferU16([]uint16{1}) != nil || f.MakeBufferU32([]uint32{1}) != nil || f.MakeBufferF32([]float32{1}) != nil {
		t.Error("buffers should be nil")
	}
	if f.DecodeImage([]byte("png")) != nil {
		t.Error("DecodeImage should return nil")
	}
}

func TestFactoryStats(t *testing.T) {
	f := NewFactory()
	var raw engine.RawPath
	raw.AddEllipse(2, 2)
	f.MakeRenderPath(&raw, engine.FillRuleNonZero)
	f.MakeEmptyRenderPath()
	f.MakeRenderPaint()
	f.MakeRadialGradient(0, 0, 1, nil, nil)

	want := FactoryStats{Paths: 2, Paints: 1, Shaders: 1}
	if got := f.Stats(); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}
