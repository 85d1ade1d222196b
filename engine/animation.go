package engine

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// LoopMode controls what an animation instance does when it reaches an end.
type LoopMode uint8

const (
	LoopOneShot  LoopMode = iota // stop at the end
	LoopLoop                     // wrap to the start
	LoopPingPong                 // reverse direction at each end
)

// Property identifies the node field a track animates.
type Property uint8

const (
	PropertyX Property = iota
	PropertyY
	PropertyScaleX
	PropertyScaleY
	PropertyRotation
	PropertyOpacity
)

// Keyframe is a value at a point in time. Ease shapes the segment that starts
// at this keyframe; nil means linear.
type Keyframe struct {
	Time  float32
	Value float32
	Ease  ease.TweenFunc
}

// Track animates one property of one named node. Keyframes are sorted by
// time.
type Track struct {
	Node      string
	Property  Property
	Keyframes []Keyframe
}

// LinearAnimation is the immutable definition of a timeline.
type LinearAnimation struct {
	Name     string
	Duration float32
	Speed    float32
	Loop     LoopMode
	Tracks   []Track
}

// Hold is an easing that keeps the segment's start value until the next
// keyframe.
func Hold(t, b, c, d float32) float32 { return b }

// boundTrack is a Track resolved against an artboard instance. Each segment
// between two keyframes is a tween that is re-evaluated at an absolute
// offset.
type boundTrack struct {
	node     *Node
	property Property
	keys     []Keyframe
	segments []*gween.Tween
}

func bindTrack(tr *Track, node *Node) *boundTrack {
	bt := &boundTrack{node: node, property: tr.Property, keys: tr.Keyframes}
	for i := 0; i+1 < len(tr.Keyframes); i++ {
		k0, k1 := tr.Keyframes[i], tr.Keyframes[i+1]
		fn := k0.Ease
		if fn == nil {
			fn = ease.Linear
		}
		bt.segments = append(bt.segments, gween.New(k0.Value, k1.Value, k1.Time-k0.Time, fn))
	}
	return bt
}

// valueAt returns the track value at time t.
func (bt *boundTrack) valueAt(t float32) float32 {
	keys := bt.keys
	if t <= keys[0].Time {
		return keys[0].Value
	}
	last := len(keys) - 1
	if t >= keys[last].Time {
		return keys[last].Value
	}
	i := 0
	for i < last-1 && t >= keys[i+1].Time {
		i++
	}
	if keys[i+1].Time-keys[i].Time <= 0 {
		return keys[i+1].Value
	}
	tw := bt.segments[i]
	tw.Reset()
	v, _ := tw.Update(t - keys[i].Time)
	return v
}

func (bt *boundTrack) apply(t float32) {
	if len(bt.keys) == 0 {
		return
	}
	v := bt.valueAt(t)
	n := bt.node
	switch bt.property {
	case PropertyX:
		n.SetPosition(v, n.Y)
	case PropertyY:
		n.SetPosition(n.X, v)
	case PropertyScaleX:
		n.SetScale(v, n.ScaleY)
	case PropertyScaleY:
		n.SetScale(n.ScaleX, v)
	case PropertyRotation:
		n.SetRotation(v)
	case PropertyOpacity:
		n.SetOpacity(v)
	}
}

// AnimationInstance plays a LinearAnimation against one artboard instance.
type AnimationInstance struct {
	anim      *LinearAnimation
	tracks    []*boundTrack
	time      float32
	direction float32
}

func newAnimationInstance(anim *LinearAnimation, lookup func(string) *Node) *AnimationInstance {
	inst := &AnimationInstance{anim: anim, direction: 1}
	for i := range anim.Tracks {
		tr := &anim.Tracks[i]
		node := lookup(tr.Node)
		if node == nil {
			Logger().Debug("animation track targets unknown node",
				"animation", anim.Name, "node", tr.Node)
			continue
		}
		if len(tr.Keyframes) == 0 {
			continue
		}
		inst.tracks = append(inst.tracks, bindTrack(tr, node))
	}
	if anim.Speed < 0 {
		inst.time = anim.Duration
	}
	return inst
}

// Name returns the animation name.
func (a *AnimationInstance) Name() string { return a.anim.Name }

// Duration returns the animation length in seconds.
func (a *AnimationInstance) Duration() float32 { return a.anim.Duration }

// Time returns the current playhead in seconds.
func (a *AnimationInstance) Time() float32 { return a.time }

// Loop returns the animation's loop mode.
func (a *AnimationInstance) Loop() LoopMode { return a.anim.Loop }

// Advance moves the playhead by seconds scaled by the animation speed. It
// reports whether the animation keeps playing; a one-shot animation stops
// once it reaches an end.
func (a *AnimationInstance) Advance(seconds float32) bool {
	d := a.anim.Duration
	speed := a.anim.Speed
	if speed == 0 {
		speed = 1
	}
	a.time += seconds * speed * a.direction
	if d <= 0 {
		a.time = 0
		return a.anim.Loop != LoopOneShot
	}

	switch a.anim.Loop {
	case LoopOneShot:
		if a.time >= d {
			a.time = d
			return false
		}
		if a.time <= 0 {
			a.time = 0
			return seconds*speed*a.direction >= 0
		}
	case LoopLoop:
		a.time = float32(math.Mod(float64(a.time), float64(d)))
		if a.time < 0 {
			a.time += d
		}
	case LoopPingPong:
		// Fold the playhead into one forward and back cycle; landing in
		// the back half means an odd number of bounces.
		span := 2 * float64(d)
		p := math.Mod(float64(a.time), span)
		if p < 0 {
			p += span
		}
		if p > float64(d) {
			p = span - p
			a.direction = -a.direction
		}
		a.time = float32(p)
	}
	return true
}

// Apply writes the animated values at the current time into the nodes.
func (a *AnimationInstance) Apply() {
	for _, bt := range a.tracks {
		bt.apply(a.time)
	}
}

// AdvanceAndApply advances then applies. The result is that of Advance.
func (a *AnimationInstance) AdvanceAndApply(seconds float32) bool {
	more := a.Advance(seconds)
	a.Apply()
	return more
}
