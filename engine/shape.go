package engine

// GradientKind selects linear or radial interpolation.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// Gradient describes a multi-stop gradient in shape-local coordinates.
// Colors and Stops are parallel slices.
type Gradient struct {
	Kind   GradientKind
	Start  Vec2D   // linear start, radial center
	End    Vec2D   // linear end, unused for radial
	Radius float32 // radial only
	Colors []ColorInt
	Stops  []float32
}

// Geometry is one path component of a shape with its own local transform.
type Geometry struct {
	Raw       RawPath
	Transform Mat2D

	renderPath RenderPath
}

// ShapePaint is a fill or stroke of a shape.
type ShapePaint struct {
	Style     PaintStyle
	Color     ColorInt
	Gradient  *Gradient
	Thickness float32
	Join      StrokeJoin
	Cap       StrokeCap
	Blend     BlendMode
	FillRule  FillRule

	paint          RenderPaint
	appliedOpacity float32
}

// Shape is the drawable content of a NodeTypeShape node: any number of
// geometries combined into one path, drawn once per paint.
type Shape struct {
	Geometries []*Geometry
	Paints     []*ShapePaint

	factory   Factory
	path      RenderPath
	pathDirty bool
}

// NewShape creates a shape whose render resources come from factory. Call
// Build after adding geometries and paints.
func NewShape(factory Factory) *Shape {
	return &Shape{factory: factory, pathDirty: true}
}

// AddGeometry appends a geometry component.
func (s *Shape) AddGeometry(g *Geometry) {
	s.Geometries = append(s.Geometries, g)
	s.pathDirty = true
}

// AddPaint appends a fill or stroke.
func (s *Shape) AddPaint(p *ShapePaint) {
	s.Paints = append(s.Paints, p)
}

// SetGeometryTransform replaces the local transform of geometry i.
func (s *Shape) SetGeometryTransform(i int, m Mat2D) {
	s.Geometries[i].Transform = m
	s.pathDirty = true
}

// Path returns the combined render path.
func (s *Shape) Path() RenderPath { return s.path }

// Build creates the render path and paints. It is called once when the owning
// artboard is instantiated.
func (s *Shape) Build() {
	for _, g := range s.Geometries {
		g.renderPath = s.factory.MakeRenderPath(&g.Raw, FillRuleNonZero)
	}
	s.path = s.factory.MakeEmptyRenderPath()
	s.path.SetFillRule(s.fillRule())
	for _, p := range s.Paints {
		p.paint = s.factory.MakeRenderPaint()
		p.paint.SetStyle(p.Style)
		p.paint.SetThickness(p.Thickness)
		p.paint.SetJoin(p.Join)
		p.paint.SetCap(p.Cap)
		p.paint.SetBlendMode(p.Blend)
		p.appliedOpacity = -1
	}
	s.pathDirty = true
}

// fillRule returns the rule of the first fill; strokes have no fill rule.
func (s *Shape) fillRule() FillRule {
	for _, p := range s.Paints {
		if p.Style == PaintStyleFill {
			return p.FillRule
		}
	}
	return FillRuleNonZero
}

// update rebuilds the combined path if a geometry changed and pushes the
// node opacity into the paints. It reports whether anything changed.
func (s *Shape) update(opacity float32) bool {
	changed := false
	if s.pathDirty {
		s.path.Reset()
		for _, g := range s.Geometries {
			s.path.AddRenderPath(g.renderPath, g.Transform)
		}
		s.pathDirty = false
		changed = true
	}
	for _, p := range s.Paints {
		if p.appliedOpacity == opacity {
			continue
		}
		s.applyPaint(p, opacity)
		changed = true
	}
	return changed
}

func (s *Shape) applyPaint(p *ShapePaint, opacity float32) {
	p.appliedOpacity = opacity
	g := p.Gradient
	if g == nil {
		p.paint.SetShader(nil)
		p.paint.SetColor(p.Color.WithOpacity(opacity))
		return
	}
	colors := make([]ColorInt, len(g.Colors))
	for i, c := range g.Colors {
		colors[i] = c.WithOpacity(opacity)
	}
	var shader RenderShader
	switch g.Kind {
	case GradientRadial:
		shader = s.factory.MakeRadialGradient(g.Start[0], g.Start[1], g.Radius, colors, g.Stops)
	default:
		shader = s.factory.MakeLinearGradient(g.Start[0], g.Start[1], g.End[0], g.End[1], colors, g.Stops)
	}
	p.paint.SetShader(shader)
}

// Bounds returns the local bounding box of all geometries.
func (s *Shape) Bounds() AABB {
	var b AABB
	first := true
	for _, g := range s.Geometries {
		var raw RawPath
		raw.points = make([]Vec2D, len(g.Raw.points))
		g.Transform.MapPoints(raw.points, g.Raw.points)
		gb := raw.Bounds()
		if len(raw.points) == 0 {
			continue
		}
		if first {
			b = gb
			first = false
			continue
		}
		b.MinX = min(b.MinX, gb.MinX)
		b.MinY = min(b.MinY, gb.MinY)
		b.MaxX = max(b.MaxX, gb.MaxX)
		b.MaxY = max(b.MaxY, gb.MaxY)
	}
	return b
}
