package vecbridge

import "github.com/phanxgames/vecbridge/engine"

// FactoryStats counts the resources a Factory has handed out.
type FactoryStats struct {
	Paths   int
	Paints  int
	Shaders int
}

// Factory creates paths, paints and gradients for the engine. It implements
// engine.Factory. Create one and pass it to every ImportFile call; it is not
// safe for concurrent use.
type Factory struct {
	stats FactoryStats
}

var _ engine.Factory = (*Factory)(nil)

// NewFactory returns a factory.
func NewFactory() *Factory { return &Factory{} }

// Stats returns the resource counters.
func (f *Factory) Stats() FactoryStats { return f.stats }

// MakeRenderPath copies raw into a new Path.
func (f *Factory) MakeRenderPath(raw *engine.RawPath, rule engine.FillRule) engine.RenderPath {
	f.stats.Paths++
	return newPathFromRaw(raw, rule)
}

// MakeEmptyRenderPath returns a new empty Path.
func (f *Factory) MakeEmptyRenderPath() engine.RenderPath {
	f.stats.Paths++
	return NewPath()
}

// MakeRenderPaint returns a new zeroed Paint.
func (f *Factory) MakeRenderPaint() engine.RenderPaint {
	f.stats.Paints++
	return NewPaint()
}

// MakeLinearGradient returns a linear gradient from (sx, sy) to (ex, ey).
func (f *Factory) MakeLinearGradient(sx, sy, ex, ey float32, colors []ColorInt, stops []float32) engine.RenderShader {
	f.stats.Shaders++
	return newShader(GradientLinear, sx, sy, ex, ey, colors, stops)
}

// MakeRadialGradient returns a radial gradient centered on (cx, cy).
func (f *Factory) MakeRadialGradient(cx, cy, radius float32, colors []ColorInt, stops []float32) engine.RenderShader {
	f.stats.Shaders++
	return newShader(GradientRadial, cx, cy, radius, 0, colors, stops)
}

// MakeBufferU16 is not supported and returns nil.
func (f *Factory) MakeBufferU16([]uint16) engine.RenderBuffer { return nil }

// MakeBufferU32 is not supported and returns nil.
func (f *Factory) MakeBufferU32([]uint32) engine.RenderBuffer { return nil }

// MakeBufferF32 is not supported and returns nil.
func (f *Factory) MakeBufferF32([]float32) engine.RenderBuffer { return nil }

// DecodeImage is not supported and returns nil.
func (f *Factory) DecodeImage(data []byte) engine.RenderImage {
	Logger().Debug("vecbridge: image decoding is not supported", "bytes", len(data))
	return nil
}
