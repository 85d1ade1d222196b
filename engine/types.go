package engine

import "golang.org/x/image/math/f32"

// Vec2D is a 2D point or direction in artboard space.
type Vec2D = f32.Vec2

// ColorInt is a packed 0xAARRGGBB color. Stored little-endian it reads as
// the byte sequence B, G, R, A.
type ColorInt uint32

// ColorARGB packs the four 8-bit channels into a ColorInt.
func ColorARGB(a, r, g, b uint8) ColorInt {
	return ColorInt(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Alpha returns the alpha channel.
func (c ColorInt) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red channel.
func (c ColorInt) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c ColorInt) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c ColorInt) Blue() uint8 { return uint8(c) }

// WithOpacity scales the alpha channel by opacity, clamped to [0, 1].
func (c ColorInt) WithOpacity(opacity float32) ColorInt {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return c & 0x00FFFFFF
	}
	a := uint32(float32(c.Alpha())*opacity + 0.5)
	return ColorInt(a<<24 | uint32(c)&0x00FFFFFF)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns MaxX - MinX.
func (b AABB) Width() float32 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b AABB) Height() float32 { return b.MaxY - b.MinY }

// PathVerb identifies the geometric operation of a group of points in a
// path's point stream. The values match Skia's.
type PathVerb uint8

const (
	VerbMove  PathVerb = 0 // one point
	VerbLine  PathVerb = 1 // one point
	VerbQuad  PathVerb = 2 // two points
	VerbCubic PathVerb = 4 // three points
	VerbClose PathVerb = 5 // no points
)

// PointCount returns how many points the verb consumes from the point
// stream, or -1 for an unknown verb.
func (v PathVerb) PointCount() int {
	switch v {
	case VerbMove, VerbLine:
		return 1
	case VerbQuad:
		return 2
	case VerbCubic:
		return 3
	case VerbClose:
		return 0
	default:
		return -1
	}
}

// FillRule selects how the interior of a self-intersecting path is computed.
type FillRule uint8

const (
	FillRuleNonZero FillRule = iota // default winding rule
	FillRuleEvenOdd                 // alternating rule
)

// PaintStyle selects stroking or filling.
type PaintStyle uint8

const (
	PaintStyleStroke PaintStyle = 0
	PaintStyleFill   PaintStyle = 1
)

// StrokeJoin is the corner style of stroked paths.
type StrokeJoin uint8

const (
	StrokeJoinMiter StrokeJoin = iota
	StrokeJoinRound
	StrokeJoinBevel
)

// StrokeCap is the end style of open stroked paths.
type StrokeCap uint8

const (
	StrokeCapButt StrokeCap = iota
	StrokeCapRound
	StrokeCapSquare
)

// BlendMode selects a compositing operation for a paint.
type BlendMode uint8

const (
	BlendSrcOver  BlendMode = iota // standard alpha blending
	BlendScreen                    // 1 - (1-src)*(1-dst)
	BlendOverlay                   // multiply or screen depending on dst
	BlendDarken                    // min(src, dst)
	BlendLighten                   // max(src, dst)
	BlendMultiply                  // src * dst
)
