// Package vecbridge renders a retained vector-animation engine through a flat,
// callback-based drawing interface.
//
// The engine (package engine) never links a rasterizer. It asks a [Factory]
// for paths, paints and gradients, and issues save/restore/transform/clip/draw
// calls against a [Renderer]. This package implements those interfaces once:
// paths become plain point and verb arrays, paints become a fixed-layout
// [PaintDescriptor], and every drawing call is forwarded to one of the five
// host functions in [Callbacks].
//
// # Quick start
//
//	file := vecbridge.ImportFile(data, vecbridge.NewFactory())
//	if file == nil {
//		// malformed document
//	}
//	defer file.Destroy()
//
//	ab := file.ArtboardAt(0)
//	anim := ab.AnimationAt(0)
//
//	r := vecbridge.NewRenderer(host, vecbridge.Callbacks{
//		Save:      func(ctx any) { ... },
//		Restore:   func(ctx any) { ... },
//		Transform: func(ctx any, m [6]float32) { ... },
//		ClipPath:  func(ctx any, points []float32, verbs []vecbridge.Verb) { ... },
//		DrawPath:  func(ctx any, points []float32, verbs []vecbridge.Verb, p *vecbridge.PaintDescriptor) { ... },
//	})
//
//	anim.AdvanceAndApply(dt)
//	ab.Advance(dt)
//	ab.Draw(r)
//
// Ready-made callback tables live in host/rasterhost (a [gg] context) and
// host/ebitenhost (an [Ebitengine] image).
//
// # Wire format
//
// Points are delivered as interleaved x, y float32 pairs. Verbs are one byte
// each and consume a fixed number of points: [VerbMove] and [VerbLine] one,
// [VerbQuad] two, [VerbCubic] three, [VerbClose] none. Transforms are the six
// affine components [xx, xy, yx, yy, tx, ty]:
//
//	x' = xx*x + yx*y + tx
//	y' = xy*x + yy*y + ty
//
// A gradient reaching the host keeps only its first and last color; the
// even-odd fill rule, stroke joins and caps, blend modes, images and meshes
// are accepted and ignored.
//
// # Threading
//
// Everything is single-threaded and synchronous. Callbacks run on the caller's
// goroutine, inside Draw.
//
// [gg]: https://github.com/gogpu/gg
// [Ebitengine]: https://ebitengine.org
package vecbridge
