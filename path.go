package vecbridge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/phanxgames/vecbridge/engine"
)

// ErrMalformedPath is returned when a verb stream does not consume exactly
// the stored points, or a binary path cannot be decoded.
var ErrMalformedPath = errors.New("vecbridge: malformed path")

// Path is a mutable 2D path: a verb stream and the point stream it consumes.
// It implements engine.RenderPath.
type Path struct {
	points   []engine.Vec2D
	verbs    []Verb
	fillRule engine.FillRule
}

var _ engine.RenderPath = (*Path)(nil)

// NewPath returns an empty path.
func NewPath() *Path { return &Path{} }

// newPathFromRaw copies an engine raw path verbatim.
func newPathFromRaw(raw *engine.RawPath, rule engine.FillRule) *Path {
	p := &Path{
		points: append([]engine.Vec2D(nil), raw.Points()...),
		verbs:  append([]Verb(nil), raw.Verbs()...),
	}
	p.SetFillRule(rule)
	return p
}

// Reset clears the path, keeping its storage.
func (p *Path) Reset() {
	p.points = p.points[:0]
	p.verbs = p.verbs[:0]
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float32) {
	p.verbs = append(p.verbs, VerbMove)
	p.points = append(p.points, engine.Vec2D{x, y})
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float32) {
	p.verbs = append(p.verbs, VerbLine)
	p.points = append(p.points, engine.Vec2D{x, y})
}

// CubicTo adds a cubic Bezier with out handle (ox, oy), in handle (ix, iy)
// and end point (x, y).
func (p *Path) CubicTo(ox, oy, ix, iy, x, y float32) {
	p.verbs = append(p.verbs, VerbCubic)
	p.points = append(p.points, engine.Vec2D{ox, oy}, engine.Vec2D{ix, iy}, engine.Vec2D{x, y})
}

// Close closes the current contour.
func (p *Path) Close() {
	p.verbs = append(p.verbs, VerbClose)
}

// AddRenderPath appends other with each of its points mapped through m.
// Verbs are copied unchanged. other must have been created by a vecbridge
// Factory (or NewPath); anything else is ignored.
func (p *Path) AddRenderPath(other engine.RenderPath, m engine.Mat2D) {
	src, ok := other.(*Path)
	if !ok || src == nil {
		Logger().Warn("vecbridge: AddRenderPath with a foreign path ignored",
			"type", fmt.Sprintf("%T", other))
		return
	}
	n := len(src.points)
	verbs := src.verbs[:len(src.verbs):len(src.verbs)]
	for i := 0; i < n; i++ {
		p.points = append(p.points, m.MapPoint(src.points[i]))
	}
	p.verbs = append(p.verbs, verbs...)
}

// SetFillRule records the fill rule. Hosts always receive non-zero geometry;
// an even-odd request is logged and otherwise ignored.
func (p *Path) SetFillRule(rule engine.FillRule) {
	p.fillRule = rule
	if rule != engine.FillRuleNonZero {
		Logger().Debug("vecbridge: even-odd fill rule is not transmitted to the host")
	}
}

// FillRule returns the last rule passed to SetFillRule.
func (p *Path) FillRule() engine.FillRule { return p.fillRule }

// PointCount returns the number of stored points.
func (p *Path) PointCount() int { return len(p.points) }

// VerbCount returns the number of stored verbs.
func (p *Path) VerbCount() int { return len(p.verbs) }

// Serialize returns the points as interleaved x, y pairs and a copy of the
// verbs. It may be called any number of times; the path is not modified and
// the returned slices are not retained.
func (p *Path) Serialize() (points []float32, verbs []Verb) {
	points = make([]float32, 0, 2*len(p.points))
	for _, pt := range p.points {
		points = append(points, pt[0], pt[1])
	}
	verbs = append(make([]Verb, 0, len(p.verbs)), p.verbs...)
	return points, verbs
}

// Validate checks that the verb stream consumes exactly the stored points.
func (p *Path) Validate() error {
	return validateStreams(len(p.points), p.verbs)
}

func validateStreams(pointCount int, verbs []Verb) error {
	want, ok := CountPoints(verbs)
	if !ok {
		return fmt.Errorf("%w: unknown verb", ErrMalformedPath)
	}
	if want != pointCount {
		return fmt.Errorf("%w: verbs consume %d points, have %d", ErrMalformedPath, want, pointCount)
	}
	return nil
}

// AppendBinary appends the little-endian encoding of the path to b:
//
//	u32 pointCount, u32 verbCount, f32 x, f32 y per point, u8 per verb
func (p *Path) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint32(b, uint32(len(p.points)))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(p.verbs)))
	for _, pt := range p.points {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(pt[0]))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(pt[1]))
	}
	for _, v := range p.verbs {
		b = append(b, byte(v))
	}
	return b, nil
}

// MarshalBinary returns the AppendBinary encoding of the path.
func (p *Path) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, 8+8*len(p.points)+len(p.verbs)))
}

// DecodePath decodes the output of AppendBinary. The data must hold exactly
// one path and its verbs must consume exactly its points.
func DecodePath(data []byte) (*Path, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: short header (%d bytes)", ErrMalformedPath, len(data))
	}
	np := binary.LittleEndian.Uint32(data[0:])
	nv := binary.LittleEndian.Uint32(data[4:])
	want := 8 + 8*uint64(np) + uint64(nv)
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrMalformedPath, want, len(data))
	}

	p := &Path{
		points: make([]engine.Vec2D, np),
		verbs:  make([]Verb, nv),
	}
	off := 8
	for i := range p.points {
		x := math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
		p.points[i] = engine.Vec2D{x, y}
		off += 8
	}
	for i := range p.verbs {
		p.verbs[i] = Verb(data[off+i])
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
