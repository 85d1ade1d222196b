package engine

// The interfaces in this file are the only way the engine produces output.
// A backend implements them once and hands the engine a Factory; the engine
// never knows which concrete rasterizer (if any) sits behind them.

// RenderShader is an opaque gradient created by a Factory and attached to a
// RenderPaint. The engine never inspects it.
type RenderShader interface{}

// RenderBuffer is an opaque vertex or index buffer created by a Factory.
type RenderBuffer interface {
	Len() int
}

// RenderImage is a decoded raster image created by a Factory.
type RenderImage interface {
	Size() (width, height int)
}

// RenderPath is a mutable vector path owned by the engine.
type RenderPath interface {
	Reset()
	// AddRenderPath appends path with every point mapped through transform.
	AddRenderPath(path RenderPath, transform Mat2D)
	SetFillRule(rule FillRule)
	MoveTo(x, y float32)
	LineTo(x, y float32)
	CubicTo(ox, oy, ix, iy, x, y float32)
	Close()
}

// RenderPaint accumulates the style used to draw a RenderPath.
type RenderPaint interface {
	SetStyle(style PaintStyle)
	SetColor(color ColorInt)
	SetThickness(thickness float32)
	SetJoin(join StrokeJoin)
	SetCap(c StrokeCap)
	SetBlendMode(mode BlendMode)
	// SetShader attaches a gradient. A nil shader returns the paint to its
	// solid color.
	SetShader(shader RenderShader)
	InvalidateStroke()
}

// Renderer receives the drawing calls issued while an artboard draws itself.
// Transform composes with the current matrix; Save and Restore push and pop
// the matrix and clip.
type Renderer interface {
	Save()
	Restore()
	Transform(m Mat2D)
	DrawPath(path RenderPath, paint RenderPaint)
	ClipPath(path RenderPath)
	DrawImage(image RenderImage, mode BlendMode, opacity float32)
	DrawImageMesh(image RenderImage, vertices, uvs, indices RenderBuffer, mode BlendMode, opacity float32)
}

// Factory creates every render resource the engine needs.
type Factory interface {
	MakeBufferU16(data []uint16) RenderBuffer
	MakeBufferU32(data []uint32) RenderBuffer
	MakeBufferF32(data []float32) RenderBuffer

	// MakeLinearGradient creates a gradient from (sx, sy) to (ex, ey).
	// colors and stops are parallel slices.
	MakeLinearGradient(sx, sy, ex, ey float32, colors []ColorInt, stops []float32) RenderShader
	// MakeRadialGradient creates a gradient centered at (cx, cy).
	MakeRadialGradient(cx, cy, radius float32, colors []ColorInt, stops []float32) RenderShader

	// MakeRenderPath copies an already built raw path.
	MakeRenderPath(raw *RawPath, rule FillRule) RenderPath
	MakeEmptyRenderPath() RenderPath
	MakeRenderPaint() RenderPaint

	DecodeImage(data []byte) RenderImage
}
