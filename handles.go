package vecbridge

import "github.com/phanxgames/vecbridge/engine"

// File owns an imported engine file. Destroy it when done; artboards and
// scenes obtained from it must not be used afterwards.
type File struct {
	file *engine.File
}

// ImportFile parses data with factory and returns nil if the document is
// malformed. A nil factory means a fresh one.
func ImportFile(data []byte, factory *Factory) *File {
	if factory == nil {
		factory = NewFactory()
	}
	f, err := engine.Import(data, factory)
	if err != nil {
		Logger().Debug("vecbridge: import failed", "bytes", len(data), "err", err)
		return nil
	}
	return &File{file: f}
}

// Destroy releases the engine file.
func (f *File) Destroy() {
	if f.file != nil {
		f.file.Release()
		f.file = nil
	}
}

// ArtboardCount returns the number of artboards.
func (f *File) ArtboardCount() int { return f.file.ArtboardCount() }

// ArtboardAt returns a new instance of artboard i. i must be in
// [0, ArtboardCount).
func (f *File) ArtboardAt(i int) *Artboard {
	return &Artboard{ab: f.file.ArtboardAt(i)}
}

// ArtboardNamed returns a new instance of the named artboard, or nil.
func (f *File) ArtboardNamed(name string) *Artboard {
	ab := f.file.ArtboardNamed(name)
	if ab == nil {
		return nil
	}
	return &Artboard{ab: ab}
}

// Artboard owns one artboard instance.
type Artboard struct {
	ab *engine.Artboard
}

// Name returns the artboard name.
func (a *Artboard) Name() string { return a.ab.Name() }

// Advance updates the artboard's derived state after animations were
// applied.
func (a *Artboard) Advance(seconds float32) { a.ab.Advance(seconds) }

// Bounds returns {minX, minY, maxX, maxY}.
func (a *Artboard) Bounds() [4]float32 {
	b := a.ab.Bounds()
	return [4]float32{b.MinX, b.MinY, b.MaxX, b.MaxY}
}

// Draw issues the artboard's drawing calls through r.
func (a *Artboard) Draw(r *Renderer) { a.ab.Draw(r) }

// DrawFit draws the artboard scaled uniformly and centered in a w x h
// viewport. The extra transform is wrapped in its own Save/Restore pair.
func (a *Artboard) DrawFit(r *Renderer, w, h float32) {
	r.Save()
	r.Transform(engine.FitContain(a.ab.Bounds(), w, h))
	a.ab.Draw(r)
	r.Restore()
}

// AnimationCount returns the number of animations.
func (a *Artboard) AnimationCount() int { return a.ab.AnimationCount() }

// AnimationAt returns a new scene playing animation i. i must be in
// [0, AnimationCount).
func (a *Artboard) AnimationAt(i int) *Scene {
	return &Scene{inst: a.ab.AnimationAt(i)}
}

// AnimationNamed returns a new scene playing the named animation, or nil.
func (a *Artboard) AnimationNamed(name string) *Scene {
	inst := a.ab.AnimationNamed(name)
	if inst == nil {
		return nil
	}
	return &Scene{inst: inst}
}

// Scene owns one playing animation.
type Scene struct {
	inst *engine.AnimationInstance
}

// Name returns the animation name.
func (s *Scene) Name() string { return s.inst.Name() }

// Duration returns the animation length in seconds.
func (s *Scene) Duration() float32 { return s.inst.Duration() }

// Time returns the playhead in seconds.
func (s *Scene) Time() float32 { return s.inst.Time() }

// AdvanceAndApply moves the playhead and writes the animated values into the
// artboard. It reports whether the animation keeps playing.
func (s *Scene) AdvanceAndApply(seconds float32) bool {
	return s.inst.AdvanceAndApply(seconds)
}
