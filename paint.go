package vecbridge

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/phanxgames/vecbridge/engine"
)

// ColorInt is a packed 0xAARRGGBB color.
type ColorInt = engine.ColorInt

// Paint styles as they appear in PaintDescriptor.Style.
const (
	StyleStroke = engine.PaintStyleStroke
	StyleFill   = engine.PaintStyleFill
)

// GradientType is the kind of gradient carried by a PaintDescriptor.
type GradientType uint8

const (
	GradientNone   GradientType = 0
	GradientLinear GradientType = 1
	GradientRadial GradientType = 2
)

// PaintDescriptorSize is the length of the binary encoding of a
// PaintDescriptor.
const PaintDescriptorSize = 32

// PaintDescriptor is the fixed-layout style record handed to the host with
// every drawn path. Its binary encoding is the little-endian layout of
//
//	struct {
//		uint32_t color;       // 0xAARRGGBB
//		float    thickness;
//		uint8_t  style;       // 0 stroke, 1 fill
//		uint8_t  gradient;    // 0 none, 1 linear, 2 radial
//		uint8_t  pad[2];
//		float    sx, sy, ex, ey;
//		uint32_t color1;
//	};
//
// For a linear gradient (SX, SY) and (EX, EY) are the start and end points.
// For a radial gradient (SX, SY) is the center, EX the radius and EY unused.
// Color and Color1 are the first and last gradient colors.
type PaintDescriptor struct {
	Color          ColorInt
	Thickness      float32
	Style          engine.PaintStyle
	Gradient       GradientType
	SX, SY, EX, EY float32
	Color1         ColorInt
}

// AppendBinary appends the 32-byte encoding of d to b.
func (d *PaintDescriptor) AppendBinary(b []byte) ([]byte, error) {
	le := binary.LittleEndian
	b = le.AppendUint32(b, uint32(d.Color))
	b = le.AppendUint32(b, math.Float32bits(d.Thickness))
	b = append(b, byte(d.Style), byte(d.Gradient), 0, 0)
	for _, f := range [4]float32{d.SX, d.SY, d.EX, d.EY} {
		b = le.AppendUint32(b, math.Float32bits(f))
	}
	b = le.AppendUint32(b, uint32(d.Color1))
	return b, nil
}

// MarshalBinary returns the 32-byte encoding of d.
func (d *PaintDescriptor) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(make([]byte, 0, PaintDescriptorSize))
}

// UnmarshalBinary decodes exactly PaintDescriptorSize bytes into d. The
// padding bytes are ignored.
func (d *PaintDescriptor) UnmarshalBinary(data []byte) error {
	if len(data) != PaintDescriptorSize {
		return fmt.Errorf("vecbridge: paint descriptor is %d bytes, want %d", len(data), PaintDescriptorSize)
	}
	le := binary.LittleEndian
	d.Color = ColorInt(le.Uint32(data[0:]))
	d.Thickness = math.Float32frombits(le.Uint32(data[4:]))
	d.Style = engine.PaintStyle(data[8])
	d.Gradient = GradientType(data[9])
	d.SX = math.Float32frombits(le.Uint32(data[12:]))
	d.SY = math.Float32frombits(le.Uint32(data[16:]))
	d.EX = math.Float32frombits(le.Uint32(data[20:]))
	d.EY = math.Float32frombits(le.Uint32(data[24:]))
	d.Color1 = ColorInt(le.Uint32(data[28:]))
	return nil
}

// Paint accumulates style state into a PaintDescriptor. It implements
// engine.RenderPaint. The zero value is a transparent stroke of zero
// thickness with no gradient.
type Paint struct {
	desc PaintDescriptor
}

var _ engine.RenderPaint = (*Paint)(nil)

// NewPaint returns a zeroed paint.
func NewPaint() *Paint { return &Paint{} }

// SetStyle sets stroke or fill.
func (p *Paint) SetStyle(style engine.PaintStyle) { p.desc.Style = style }

// SetColor sets the solid color.
func (p *Paint) SetColor(color ColorInt) { p.desc.Color = color }

// SetThickness sets the stroke width.
func (p *Paint) SetThickness(thickness float32) { p.desc.Thickness = thickness }

// SetJoin is accepted and ignored.
func (p *Paint) SetJoin(engine.StrokeJoin) {}

// SetCap is accepted and ignored.
func (p *Paint) SetCap(engine.StrokeCap) {}

// SetBlendMode is accepted and ignored.
func (p *Paint) SetBlendMode(engine.BlendMode) {}

// InvalidateStroke is a no-op; nothing is cached per stroke.
func (p *Paint) InvalidateStroke() {}

// SetShader copies a gradient into the descriptor, replacing any previous
// one. A nil shader clears the gradient; the solid color is kept.
func (p *Paint) SetShader(shader engine.RenderShader) {
	if shader == nil {
		p.clearGradient()
		return
	}
	s, ok := shader.(*Shader)
	if !ok {
		Logger().Warn("vecbridge: SetShader with a foreign shader ignored",
			"type", fmt.Sprintf("%T", shader))
		return
	}
	if s == nil {
		p.clearGradient()
		return
	}
	s.applyTo(&p.desc)
}

func (p *Paint) clearGradient() {
	p.desc.Gradient = GradientNone
	p.desc.SX, p.desc.SY, p.desc.EX, p.desc.EY = 0, 0, 0, 0
	p.desc.Color1 = 0
}

// Descriptor returns a copy of the current descriptor.
func (p *Paint) Descriptor() PaintDescriptor { return p.desc }
