package vecbridge

import (
	"fmt"

	"github.com/phanxgames/vecbridge/engine"
)

// Callbacks is the host drawing interface. Every field must be set; a nil
// function panics when the engine reaches it.
//
// ClipPath and DrawPath receive freshly allocated slices: points holds
// interleaved x, y pairs (len(points) == 2 * point count) and verbs the
// segment codes. The paint descriptor is a snapshot owned by the callee for
// the duration of the call.
type Callbacks struct {
	Save      func(ctx any)
	Restore   func(ctx any)
	Transform func(ctx any, m [6]float32)
	ClipPath  func(ctx any, points []float32, verbs []Verb)
	DrawPath  func(ctx any, points []float32, verbs []Verb, paint *PaintDescriptor)
}

// Renderer forwards the engine's drawing calls to host callbacks. It holds
// no drawing state of its own: matrix composition, clipping and save/restore
// nesting are the host's business.
type Renderer struct {
	ctx any
	cb  Callbacks
}

var _ engine.Renderer = (*Renderer)(nil)

// NewRenderer returns a renderer that passes ctx to every callback. The
// callback table is copied and cannot be changed afterwards.
func NewRenderer(ctx any, cb Callbacks) *Renderer {
	return &Renderer{ctx: ctx, cb: cb}
}

// Context returns the host context passed to NewRenderer.
func (r *Renderer) Context() any { return r.ctx }

// Save forwards to Callbacks.Save.
func (r *Renderer) Save() { r.cb.Save(r.ctx) }

// Restore forwards to Callbacks.Restore.
func (r *Renderer) Restore() { r.cb.Restore(r.ctx) }

// Transform forwards the six matrix components unchanged.
func (r *Renderer) Transform(m engine.Mat2D) { r.cb.Transform(r.ctx, [6]float32(m)) }

// DrawPath serializes path and forwards it with a snapshot of paint's
// descriptor.
func (r *Renderer) DrawPath(path engine.RenderPath, paint engine.RenderPaint) {
	p, ok := path.(*Path)
	if !ok {
		Logger().Warn("vecbridge: DrawPath with a foreign path ignored", "type", fmt.Sprintf("%T", path))
		return
	}
	pt, ok := paint.(*Paint)
	if !ok {
		Logger().Warn("vecbridge: DrawPath with a foreign paint ignored", "type", fmt.Sprintf("%T", paint))
		return
	}
	points, verbs := p.Serialize()
	desc := pt.Descriptor()
	r.cb.DrawPath(r.ctx, points, verbs, &desc)
}

// ClipPath serializes path and forwards it.
func (r *Renderer) ClipPath(path engine.RenderPath) {
	p, ok := path.(*Path)
	if !ok {
		Logger().Warn("vecbridge: ClipPath with a foreign path ignored", "type", fmt.Sprintf("%T", path))
		return
	}
	points, verbs := p.Serialize()
	r.cb.ClipPath(r.ctx, points, verbs)
}

// DrawImage is not supported and issues no callback.
func (r *Renderer) DrawImage(engine.RenderImage, engine.BlendMode, float32) {}

// DrawImageMesh is not supported and issues no callback.
func (r *Renderer) DrawImageMesh(_ engine.RenderImage, _, _, _ engine.RenderBuffer, _ engine.BlendMode, _ float32) {
}
