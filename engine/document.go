package engine

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/tanema/gween/ease"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is wrapped by every error returned from Import.
var ErrInvalidDocument = errors.New("engine: invalid document")

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func documentSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Document types mirror the YAML layout. Optional fields whose zero value is
// not the default are pointers.

type document struct {
	Version   int           `yaml:"version"`
	Artboards []docArtboard `yaml:"artboards"`
}

type docArtboard struct {
	Name       string         `yaml:"name"`
	Width      float32        `yaml:"width"`
	Height     float32        `yaml:"height"`
	Origin     []float32      `yaml:"origin"`
	Clip       *bool          `yaml:"clip"`
	Nodes      []docNode      `yaml:"nodes"`
	Animations []docAnimation `yaml:"animations"`
}

type docNode struct {
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	X        float32       `yaml:"x"`
	Y        float32       `yaml:"y"`
	ScaleX   *float32      `yaml:"scaleX"`
	ScaleY   *float32      `yaml:"scaleY"`
	Rotation float32       `yaml:"rotation"`
	SkewX    float32       `yaml:"skewX"`
	SkewY    float32       `yaml:"skewY"`
	Pivot    []float32     `yaml:"pivot"`
	Opacity  *float32      `yaml:"opacity"`
	Visible  *bool         `yaml:"visible"`
	Clip     bool          `yaml:"clip"`
	Geometry []docGeometry `yaml:"geometry"`
	Fills    []docPaint    `yaml:"fills"`
	Strokes  []docPaint    `yaml:"strokes"`
	Children []docNode     `yaml:"children"`
}

type docGeometry struct {
	Type         string       `yaml:"type"`
	X            float32      `yaml:"x"`
	Y            float32      `yaml:"y"`
	Rotation     float32      `yaml:"rotation"`
	ScaleX       *float32     `yaml:"scaleX"`
	ScaleY       *float32     `yaml:"scaleY"`
	Width        float32      `yaml:"width"`
	Height       float32      `yaml:"height"`
	CornerRadius float32      `yaml:"cornerRadius"`
	Sides        int          `yaml:"sides"`
	Points       int          `yaml:"points"`
	Radius       float32      `yaml:"radius"`
	InnerRadius  *float32     `yaml:"innerRadius"`
	Commands     []docCommand `yaml:"commands"`
}

type docCommand struct {
	Op  string    `yaml:"op"`
	To  []float32 `yaml:"to"`
	Out []float32 `yaml:"out"`
	In  []float32 `yaml:"in"`
}

// docPaint holds both fills and strokes; stroke-only fields are ignored on
// fills and vice versa.
type docPaint struct {
	Color     string       `yaml:"color"`
	Gradient  *docGradient `yaml:"gradient"`
	FillRule  string       `yaml:"fillRule"`
	Thickness *float32     `yaml:"thickness"`
	Join      string       `yaml:"join"`
	Cap       string       `yaml:"cap"`
	Blend     string       `yaml:"blend"`
}

type docGradient struct {
	Type   string    `yaml:"type"`
	Start  []float32 `yaml:"start"`
	End    []float32 `yaml:"end"`
	Center []float32 `yaml:"center"`
	Radius float32   `yaml:"radius"`
	Stops  []struct {
		Color    string  `yaml:"color"`
		Position float32 `yaml:"position"`
	} `yaml:"stops"`
}

type docAnimation struct {
	Name     string     `yaml:"name"`
	Duration float32    `yaml:"duration"`
	Speed    *float32   `yaml:"speed"`
	Loop     string     `yaml:"loop"`
	Tracks   []docTrack `yaml:"tracks"`
}

type docTrack struct {
	Node      string `yaml:"node"`
	Property  string `yaml:"property"`
	Keyframes []struct {
		Time  float32 `yaml:"time"`
		Value float32 `yaml:"value"`
		Ease  string  `yaml:"ease"`
	} `yaml:"keyframes"`
}

// parseDocument decodes and validates a YAML (or JSON) scene document.
func parseDocument(data []byte) (*document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDocument)
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: parse: %w", ErrInvalidDocument, err)
	}

	s, err := documentSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewGoLoader(generic))
	if err != nil {
		return nil, fmt.Errorf("%w: validate: %w", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// ArtboardDef is the compiled, immutable form of an artboard. Instances are
// created from it by File.ArtboardAt.
type ArtboardDef struct {
	Name             string
	Width, Height    float32
	OriginX, OriginY float32
	Clip             bool
	Animations       []*LinearAnimation

	nodes []*nodeTemplate
}

type nodeTemplate struct {
	name           string
	typ            NodeType
	x, y, sx, sy   float32
	rotation       float32
	skewX, skewY   float32
	pivotX, pivotY float32
	opacity        float32
	visible, clip  bool
	geometries     []Geometry
	paints         []ShapePaint
	children       []*nodeTemplate
}

func compileDocument(doc *document) ([]*ArtboardDef, error) {
	defs := make([]*ArtboardDef, 0, len(doc.Artboards))
	for i := range doc.Artboards {
		def, err := compileArtboard(&doc.Artboards[i])
		if err != nil {
			return nil, fmt.Errorf("%w: artboard %d (%q): %w", ErrInvalidDocument, i, doc.Artboards[i].Name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func compileArtboard(d *docArtboard) (*ArtboardDef, error) {
	def := &ArtboardDef{
		Name:   d.Name,
		Width:  d.Width,
		Height: d.Height,
		Clip:   d.Clip == nil || *d.Clip,
	}
	if len(d.Origin) == 2 {
		def.OriginX, def.OriginY = d.Origin[0], d.Origin[1]
	}

	names := make(map[string]bool)
	for i := range d.Nodes {
		t, err := compileNode(&d.Nodes[i], names)
		if err != nil {
			return nil, err
		}
		def.nodes = append(def.nodes, t)
	}

	for i := range d.Animations {
		a, err := compileAnimation(&d.Animations[i], names)
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", d.Animations[i].Name, err)
		}
		def.Animations = append(def.Animations, a)
	}
	return def, nil
}

func compileNode(d *docNode, names map[string]bool) (*nodeTemplate, error) {
	t := &nodeTemplate{
		name:     d.Name,
		x:        d.X,
		y:        d.Y,
		sx:       deref(d.ScaleX, 1),
		sy:       deref(d.ScaleY, 1),
		rotation: degrees(d.Rotation),
		skewX:    degrees(d.SkewX),
		skewY:    degrees(d.SkewY),
		opacity:  deref(d.Opacity, 1),
		visible:  d.Visible == nil || *d.Visible,
		clip:     d.Clip,
	}
	if len(d.Pivot) == 2 {
		t.pivotX, t.pivotY = d.Pivot[0], d.Pivot[1]
	}
	if d.Name != "" {
		names[d.Name] = true
	}

	switch d.Type {
	case "group":
		t.typ = NodeTypeContainer
	case "shape":
		t.typ = NodeTypeShape
	default:
		t.typ = NodeTypeContainer
		if len(d.Geometry) > 0 {
			t.typ = NodeTypeShape
		}
	}
	if t.typ == NodeTypeContainer && (len(d.Geometry) > 0 || len(d.Fills) > 0 || len(d.Strokes) > 0) {
		return nil, fmt.Errorf("node %q: group nodes cannot have geometry or paints", d.Name)
	}
	if t.clip && t.typ != NodeTypeShape {
		return nil, fmt.Errorf("node %q: only shape nodes can clip", d.Name)
	}

	for i := range d.Geometry {
		g, err := compileGeometry(&d.Geometry[i])
		if err != nil {
			return nil, fmt.Errorf("node %q: geometry %d: %w", d.Name, i, err)
		}
		t.geometries = append(t.geometries, g)
	}
	for i := range d.Fills {
		p, err := compilePaint(&d.Fills[i], PaintStyleFill)
		if err != nil {
			return nil, fmt.Errorf("node %q: fill %d: %w", d.Name, i, err)
		}
		t.paints = append(t.paints, p)
	}
	for i := range d.Strokes {
		p, err := compilePaint(&d.Strokes[i], PaintStyleStroke)
		if err != nil {
			return nil, fmt.Errorf("node %q: stroke %d: %w", d.Name, i, err)
		}
		t.paints = append(t.paints, p)
	}

	for i := range d.Children {
		c, err := compileNode(&d.Children[i], names)
		if err != nil {
			return nil, err
		}
		t.children = append(t.children, c)
	}
	return t, nil
}

func compileGeometry(d *docGeometry) (Geometry, error) {
	g := Geometry{
		Transform: composeLocal(d.X, d.Y, deref(d.ScaleX, 1), deref(d.ScaleY, 1), degrees(d.Rotation), 0, 0, 0, 0),
	}
	switch d.Type {
	case "rect":
		g.Raw.AddRect(d.Width, d.Height, d.CornerRadius)
	case "ellipse":
		g.Raw.AddEllipse(d.Width, d.Height)
	case "polygon":
		if d.Sides < 3 {
			return g, errors.New("polygon needs at least 3 sides")
		}
		g.Raw.AddPolygon(d.Sides, d.Radius)
	case "star":
		points := d.Points
		if points == 0 {
			points = 5
		}
		g.Raw.AddStar(points, d.Radius, deref(d.InnerRadius, d.Radius/2))
	case "path":
		if err := compileCommands(&g.Raw, d.Commands); err != nil {
			return g, err
		}
	default:
		return g, fmt.Errorf("unknown geometry type %q", d.Type)
	}
	return g, nil
}

func compileCommands(raw *RawPath, cmds []docCommand) error {
	open := false
	for i, c := range cmds {
		switch c.Op {
		case "move":
			if len(c.To) != 2 {
				return fmt.Errorf("command %d: move needs to", i)
			}
			raw.MoveTo(c.To[0], c.To[1])
			open = true
		case "line":
			if !open || len(c.To) != 2 {
				return fmt.Errorf("command %d: line needs a current point and to", i)
			}
			raw.LineTo(c.To[0], c.To[1])
		case "cubic":
			if !open || len(c.To) != 2 || len(c.Out) != 2 || len(c.In) != 2 {
				return fmt.Errorf("command %d: cubic needs a current point, out, in and to", i)
			}
			raw.CubicTo(c.Out[0], c.Out[1], c.In[0], c.In[1], c.To[0], c.To[1])
		case "close":
			if !open {
				return fmt.Errorf("command %d: close without an open contour", i)
			}
			raw.Close()
			open = false
		default:
			return fmt.Errorf("command %d: unknown op %q", i, c.Op)
		}
	}
	return nil
}

func compilePaint(d *docPaint, style PaintStyle) (ShapePaint, error) {
	p := ShapePaint{
		Style:     style,
		Color:     0xFF000000,
		Thickness: deref(d.Thickness, 1),
	}
	if d.Color != "" {
		c, err := ParseColor(d.Color)
		if err != nil {
			return p, err
		}
		p.Color = c
	}
	if d.Gradient != nil {
		g, err := compileGradient(d.Gradient)
		if err != nil {
			return p, err
		}
		p.Gradient = g
	}
	if d.FillRule == "evenOdd" {
		p.FillRule = FillRuleEvenOdd
	}
	switch d.Join {
	case "round":
		p.Join = StrokeJoinRound
	case "bevel":
		p.Join = StrokeJoinBevel
	}
	switch d.Cap {
	case "round":
		p.Cap = StrokeCapRound
	case "square":
		p.Cap = StrokeCapSquare
	}
	p.Blend = blendModes[d.Blend]
	return p, nil
}

var blendModes = map[string]BlendMode{
	"srcOver":  BlendSrcOver,
	"screen":   BlendScreen,
	"overlay":  BlendOverlay,
	"darken":   BlendDarken,
	"lighten":  BlendLighten,
	"multiply": BlendMultiply,
}

func compileGradient(d *docGradient) (*Gradient, error) {
	g := &Gradient{}
	switch d.Type {
	case "radial":
		g.Kind = GradientRadial
		if len(d.Center) == 2 {
			g.Start = Vec2D{d.Center[0], d.Center[1]}
		}
		g.Radius = d.Radius
	default:
		g.Kind = GradientLinear
		if len(d.Start) == 2 {
			g.Start = Vec2D{d.Start[0], d.Start[1]}
		}
		if len(d.End) == 2 {
			g.End = Vec2D{d.End[0], d.End[1]}
		}
	}
	stops := d.Stops
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Position < stops[j].Position })
	for _, s := range stops {
		c, err := ParseColor(s.Color)
		if err != nil {
			return nil, err
		}
		g.Colors = append(g.Colors, c)
		g.Stops = append(g.Stops, s.Position)
	}
	return g, nil
}

var loopModes = map[string]LoopMode{
	"":         LoopOneShot,
	"oneShot":  LoopOneShot,
	"loop":     LoopLoop,
	"pingPong": LoopPingPong,
}

var properties = map[string]Property{
	"x":        PropertyX,
	"y":        PropertyY,
	"scaleX":   PropertyScaleX,
	"scaleY":   PropertyScaleY,
	"rotation": PropertyRotation,
	"opacity":  PropertyOpacity,
}

func compileAnimation(d *docAnimation, names map[string]bool) (*LinearAnimation, error) {
	a := &LinearAnimation{
		Name:     d.Name,
		Duration: d.Duration,
		Speed:    deref(d.Speed, 1),
		Loop:     loopModes[d.Loop],
	}
	for i, dt := range d.Tracks {
		if !names[dt.Node] {
			return nil, fmt.Errorf("track %d: unknown node %q", i, dt.Node)
		}
		prop, ok := properties[dt.Property]
		if !ok {
			return nil, fmt.Errorf("track %d: unknown property %q", i, dt.Property)
		}
		tr := Track{Node: dt.Node, Property: prop}
		for j, k := range dt.Keyframes {
			fn, err := EaseNamed(k.Ease)
			if err != nil {
				return nil, fmt.Errorf("track %d: keyframe %d: %w", i, j, err)
			}
			v := k.Value
			if prop == PropertyRotation {
				v = degrees(v)
			}
			tr.Keyframes = append(tr.Keyframes, Keyframe{Time: k.Time, Value: v, Ease: fn})
		}
		sort.SliceStable(tr.Keyframes, func(i, j int) bool {
			return tr.Keyframes[i].Time < tr.Keyframes[j].Time
		})
		a.Tracks = append(a.Tracks, tr)
	}
	return a, nil
}

var easings = map[string]ease.TweenFunc{
	"":             ease.Linear,
	"linear":       ease.Linear,
	"hold":         Hold,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// EaseNamed returns the easing function for a document ease name. The empty
// name is linear.
func EaseNamed(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}

// ParseColor parses "#RRGGBB" (opaque) or "#AARRGGBB".
func ParseColor(s string) (ColorInt, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return 0, fmt.Errorf("parse color %q: want #RRGGBB or #AARRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return ColorInt(v), nil
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func degrees(d float32) float32 {
	return d * math.Pi / 180
}
