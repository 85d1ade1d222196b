package engine

import "math"

// circleConstant is the cubic Bezier handle length for a quarter circle:
// 4/3 * (sqrt(2) - 1).
const circleConstant = 0.5522847498307936

// RawPath is a flattened point + verb path built by the engine before it is
// handed to a Factory.
type RawPath struct {
	points []Vec2D
	verbs  []PathVerb
}

// Points returns the point stream. The returned slice MUST NOT be mutated.
func (p *RawPath) Points() []Vec2D { return p.points }

// Verbs returns the verb stream. The returned slice MUST NOT be mutated.
func (p *RawPath) Verbs() []PathVerb { return p.verbs }

// Empty reports whether the path has no verbs.
func (p *RawPath) Empty() bool { return len(p.verbs) == 0 }

// Reset clears the path, keeping its storage.
func (p *RawPath) Reset() {
	p.points = p.points[:0]
	p.verbs = p.verbs[:0]
}

// MoveTo starts a new contour.
func (p *RawPath) MoveTo(x, y float32) {
	p.verbs = append(p.verbs, VerbMove)
	p.points = append(p.points, Vec2D{x, y})
}

// LineTo adds a line segment.
func (p *RawPath) LineTo(x, y float32) {
	p.verbs = append(p.verbs, VerbLine)
	p.points = append(p.points, Vec2D{x, y})
}

// CubicTo adds a cubic Bezier segment with out handle (ox, oy), in handle
// (ix, iy) and end point (x, y).
func (p *RawPath) CubicTo(ox, oy, ix, iy, x, y float32) {
	p.verbs = append(p.verbs, VerbCubic)
	p.points = append(p.points, Vec2D{ox, oy}, Vec2D{ix, iy}, Vec2D{x, y})
}

// Close closes the current contour.
func (p *RawPath) Close() {
	p.verbs = append(p.verbs, VerbClose)
}

// Transform maps every point through m in place.
func (p *RawPath) Transform(m Mat2D) {
	m.MapPoints(p.points, p.points)
}

// Bounds returns the bounding box of the point stream, control points
// included. An empty path has a zero box.
func (p *RawPath) Bounds() AABB {
	if len(p.points) == 0 {
		return AABB{}
	}
	b := AABB{p.points[0][0], p.points[0][1], p.points[0][0], p.points[0][1]}
	for _, pt := range p.points[1:] {
		b.MinX = min(b.MinX, pt[0])
		b.MinY = min(b.MinY, pt[1])
		b.MaxX = max(b.MaxX, pt[0])
		b.MaxY = max(b.MaxY, pt[1])
	}
	return b
}

// AddRect adds a rectangle centered on the origin. A positive radius rounds
// the corners; it is clamped to half of the smaller side.
func (p *RawPath) AddRect(width, height, radius float32) {
	hw, hh := width/2, height/2
	r := min(radius, min(hw, hh))
	if r <= 0 {
		p.MoveTo(-hw, -hh)
		p.LineTo(hw, -hh)
		p.LineTo(hw, hh)
		p.LineTo(-hw, hh)
		p.Close()
		return
	}
	k := r * circleConstant
	p.MoveTo(-hw+r, -hh)
	p.LineTo(hw-r, -hh)
	p.CubicTo(hw-r+k, -hh, hw, -hh+r-k, hw, -hh+r)
	p.LineTo(hw, hh-r)
	p.CubicTo(hw, hh-r+k, hw-r+k, hh, hw-r, hh)
	p.LineTo(-hw+r, hh)
	p.CubicTo(-hw+r-k, hh, -hw, hh-r+k, -hw, hh-r)
	p.LineTo(-hw, -hh+r)
	p.CubicTo(-hw, -hh+r-k, -hw+r-k, -hh, -hw+r, -hh)
	p.Close()
}

// AddEllipse adds an ellipse centered on the origin using four cubics.
func (p *RawPath) AddEllipse(width, height float32) {
	rx, ry := width/2, height/2
	ox, oy := rx*circleConstant, ry*circleConstant
	p.MoveTo(0, -ry)
	p.CubicTo(ox, -ry, rx, -oy, rx, 0)
	p.CubicTo(rx, oy, ox, ry, 0, ry)
	p.CubicTo(-ox, ry, -rx, oy, -rx, 0)
	p.CubicTo(-rx, -oy, -ox, -ry, 0, -ry)
	p.Close()
}

// AddPolygon adds a regular polygon with the given number of sides, its
// first vertex pointing up. Fewer than three sides adds nothing.
func (p *RawPath) AddPolygon(sides int, radius float32) {
	if sides < 3 {
		return
	}
	for i := 0; i < sides; i++ {
		x, y := polarPoint(float64(i)/float64(sides), radius)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
}

// AddStar adds a star alternating between radius and innerRadius.
func (p *RawPath) AddStar(points int, radius, innerRadius float32) {
	if points < 2 {
		return
	}
	n := points * 2
	for i := 0; i < n; i++ {
		r := radius
		if i%2 == 1 {
			r = innerRadius
		}
		x, y := polarPoint(float64(i)/float64(n), r)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
}

// polarPoint returns the point at fraction t of a full turn, starting
// straight up.
func polarPoint(t float64, r float32) (float32, float32) {
	angle := t*2*math.Pi - math.Pi/2
	sin, cos := math.Sincos(angle)
	return float32(cos) * r, float32(sin) * r
}
