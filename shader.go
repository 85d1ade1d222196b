package vecbridge

import "github.com/phanxgames/vecbridge/engine"

// Shader is a gradient created by a Factory. It implements
// engine.RenderShader and is consumed by Paint.SetShader.
type Shader struct {
	Type GradientType
	// Linear: start (SX, SY) and end (EX, EY). Radial: center (SX, SY) and
	// radius EX.
	SX, SY, EX, EY float32
	Colors         []ColorInt
	Stops          []float32
}

var _ engine.RenderShader = (*Shader)(nil)

// newShader keeps the first n = min(len(colors), len(stops)) entries of
// each slice.
func newShader(typ GradientType, sx, sy, ex, ey float32, colors []ColorInt, stops []float32) *Shader {
	n := min(len(colors), len(stops))
	if n > 2 {
		Logger().Debug("vecbridge: gradient reduced to its first and last stop", "stops", n)
	}
	return &Shader{
		Type:   typ,
		SX:     sx,
		SY:     sy,
		EX:     ex,
		EY:     ey,
		Colors: append([]ColorInt(nil), colors[:n]...),
		Stops:  append([]float32(nil), stops[:n]...),
	}
}

// applyTo writes the gradient into d. Only the first and last colors are
// kept; a single stop yields a flat gradient and no stops yield transparent
// black at both ends.
func (s *Shader) applyTo(d *PaintDescriptor) {
	d.Gradient = s.Type
	d.SX, d.SY, d.EX, d.EY = s.SX, s.SY, s.EX, s.EY
	if len(s.Colors) == 0 {
		d.Color, d.Color1 = 0, 0
		return
	}
	d.Color = s.Colors[0]
	d.Color1 = s.Colors[len(s.Colors)-1]
}
