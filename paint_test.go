package vecbridge

import (
	"slices"
	"testing"

	"github.com/phanxgames/vecbridge/engine"
)

const (
	c0 ColorInt = 0xFFFF0000
	c1 ColorInt = 0xFF00FF00
	c2 ColorInt = 0xFF0000FF
	c3 ColorInt = 0x80FFFF00
)

func TestFreshPaintIsZero(t *testing.T) {
	d := NewFactory().MakeRenderPaint().(*Paint).Descriptor()
	if d != (PaintDescriptor{}) {
		t.Errorf("fresh descriptor = %+v, want zero", d)
	}
	if d.Style != StyleStroke || d.Gradient != GradientNone {
		t.Errorf("style/gradient = %d/%d, want stroke/none", d.Style, d.Gradient)
	}
}

func TestPaintSetters(t *testing.T) {
	p := NewPaint()
	p.SetColor(c0)
	p.SetStyle(StyleFill)
	p.SetThickness(3.5)
	p.SetJoin(engine.StrokeJoinRound)
	p.SetCap(engine.StrokeCapSquare)
	p.SetBlendMode(engine.BlendMultiply)
	p.InvalidateStroke()

	want := PaintDescriptor{Color: c0, Thickness: 3.5, Style: StyleFill}
	if got := p.Descriptor(); got != want {
		t.Errorf("descriptor = %+v, want %+v", got, want)
	}
}

func TestLinearGradientKeepsFirstAndLast(t *testing.T) {
	f := NewFactory()
	shader := f.MakeLinearGradient(1, 2, 3, 4,
		[]ColorInt{c0, c1, c2, c3}, []float32{0, 0.3, 0.6, 1})

	p := NewPaint()
	p.SetShader(shader)
	d := p.Descriptor()

	if d.Gradient != GradientLinear {
		t.Errorf("Gradient = %d, want %d", d.Gradient, GradientLinear)
	}
	if d.Color != c0 {
		t.Errorf("Color = %#x, want %#x", d.Color, c0)
	}
	if d.Color1 != c3 {
		t.Errorf("Color1 = %#x, want %#x", d.Color1, c3)
	}
	assertFloats(t, "geometry", []float32{d.SX, d.SY, d.EX, d.EY}, []float32{1, 2, 3, 4})
}

func TestRadialGradient(t *testing.T) {
	f := NewFactory()
	p := NewPaint()
	p.SetShader(f.MakeRadialGradient(10, 20, 30, []ColorInt{c1, c2}, []float32{0, 1}))
	d := p.Descriptor()

	if d.Gradient != GradientRadial {
		t.Errorf("Gradient = %d, want %d", d.Gradient, GradientRadial)
	}
	assertFloats(t, "center+radius", []float32{d.SX, d.SY, d.EX}, []float32{10, 20, 30})
	if d.Color != c1 || d.Color1 != c2 {
		t.Errorf("colors = %#x/%#x, want %#x/%#x", d.Color, d.Color1, c1, c2)
	}
}

func TestGradientStopCountBoundaries(t *testing.T) {
	f := NewFactory()

	p := NewPaint()
	p.SetShader(f.MakeLinearGradient(0, 0, 1, 0, []ColorInt{c2}, []float32{0.5}))
	if d := p.Descriptor(); d.Color != c2 || d.Color1 != c2 {
		t.Errorf("single stop colors = %#x/%#x, want both %#x", d.Color, d.Color1, c2)
	}

	p = NewPaint()
	p.SetColor(c0)
	p.SetShader(f.MakeLinearGradient(0, 0, 1, 0, nil, nil))
	if d := p.Descriptor(); d.Color != 0 || d.Color1 != 0 || d.Gradient != GradientLinear {
		t.Errorf("no stops = %+v, want zero colors with a linear gradient", d)
	}

	// Mismatched lengths use the shorter one.
	p = NewPaint()
	p.SetShader(f.MakeLinearGradient(0, 0, 1, 0, []ColorInt{c0, c1, c2}, []float32{0, 1}))
	if d := p.Descriptor(); d.Color1 != c1 {
		t.Errorf("Color1 = %#x, want %#x", d.Color1, c1)
	}
}

func TestShaderCopiesInputs(t *testing.T) {
	colors := []ColorInt{c0, c1}
	stops := []float32{0, 1}
	s := NewFactory().MakeLinearGradient(0, 0, 1, 1, colors, stops).(*Shader)
	colors[1] = c3
	if !slices.Equal(s.Colors, []ColorInt{c0, c1}) {
		t.Errorf("shader colors = %v, changed with caller slice", s.Colors)
	}
}

func TestSetShaderReplacesPrevious(t *testing.T) {
	f := NewFactory()
	p := NewPaint()
	p.SetShader(f.MakeLinearGradient(1, 1, 2, 2, []ColorInt{c0, c1}, []float32{0, 1}))
	p.SetShader(f.MakeRadialGradient(5, 6, 7, []ColorInt{c2, c3}, []float32{0, 1}))

	d := p.Descriptor()
	want := PaintDescriptor{Color: c2, Gradient: GradientRadial, SX: 5, SY: 6, EX: 7, Color1: c3}
	if d != want {
		t.Errorf("descriptor = %+v, want %+v", d, want)
	}
}

func TestSetShaderNilResets(t *testing.T) {
	f := NewFactory()
	p := NewPaint()
	p.SetShader(f.MakeLinearGradient(1, 1, 2, 2, []ColorInt{c0, c1}, []float32{0, 1}))
	p.SetShader(nil)
	p.SetColor(c2)

	want := PaintDescriptor{Color: c2}
	if d := p.Descriptor(); d != want {
		t.Errorf("descriptor = %+v, want %+v", d, want)
	}

	p.SetShader(f.MakeLinearGradient(1, 1, 2, 2, []ColorInt{c0, c1}, []float32{0, 1}))
	p.SetShader((*Shader)(nil))
	if d := p.Descriptor(); d.Gradient != GradientNone {
		t.Errorf("typed nil shader left gradient %d", d.Gradient)
	}
}

func TestNoShaderMeansNoGradient(t *testing.T) {
	p := NewPaint()
	p.SetColor(c1)
	p.SetStyle(StyleFill)
	if d := p.Descriptor(); d.Gradient != GradientNone {
		t.Errorf("Gradient = %d, want 0", d.Gradient)
	}
}

func TestPaintDescriptorBinaryLayout(t *testing.T) {
	d := PaintDescriptor{
		Color:     0xAABBCCDD,
		Thickness: 1,
		Style:     StyleFill,
		Gradient:  GradientRadial,
		SX:        2,
		SY:        -2,
		EX:        0.5,
		EY:        0,
		Color1:    0x11223344,
	}
	b, err := d.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != PaintDescriptorSize {
		t.Fatalf("len = %d, want %d", len(b), PaintDescriptorSize)
	}
	want := []byte{
		0xDD, 0xCC, 0xBB, 0xAA, // color: B, G, R, A
		0x00, 0x00, 0x80, 0x3f, // thickness 1.0
		1, 2, 0, 0, // style, gradient, pad
		0x00, 0x00, 0x00, 0x40, // sx 2.0
		0x00, 0x00, 0x00, 0xc0, // sy -2.0
		0x00, 0x00, 0x00, 0x3f, // ex 0.5
		0x00, 0x00, 0x00, 0x00, // ey 0
		0x44, 0x33, 0x22, 0x11, // color1
	}
	if !slices.Equal(b, want) {
		t.Errorf("MarshalBinary =\n% x\nwant\n% x", b, want)
	}

	var got PaintDescriptor
	if err := got.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("UnmarshalBinary = %+v, want %+v", got, d)
	}
	if err := got.UnmarshalBinary(b[:31]); err == nil {
		t.Error("UnmarshalBinary accepted a short buffer")
	}
}
