package engine

import "math"

// Mat2D is a 2D affine matrix stored as [xx, xy, yx, yy, tx, ty]:
//
//	| xx  yx  tx |
//	| xy  yy  ty |
//	|  0   0   1 |
type Mat2D [6]float32

// IdentityMat2D is the identity matrix.
var IdentityMat2D = Mat2D{1, 0, 0, 1, 0, 0}

// TranslateMat2D returns a translation matrix.
func TranslateMat2D(tx, ty float32) Mat2D {
	return Mat2D{1, 0, 0, 1, tx, ty}
}

// ScaleMat2D returns a scale matrix.
func ScaleMat2D(sx, sy float32) Mat2D {
	return Mat2D{sx, 0, 0, sy, 0, 0}
}

// RotateMat2D returns a rotation matrix (radians).
func RotateMat2D(rad float32) Mat2D {
	sin, cos := math.Sincos(float64(rad))
	s, c := float32(sin), float32(cos)
	return Mat2D{c, s, -s, c, 0, 0}
}

// Multiply returns m * n, i.e. n is applied first.
func (m Mat2D) Multiply(n Mat2D) Mat2D {
	return Mat2D{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Invert returns the inverse matrix and false if m is singular.
func (m Mat2D) Invert() (Mat2D, bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMat2D, false
	}
	inv := 1 / det
	a := m[3] * inv
	b := -m[1] * inv
	c := -m[2] * inv
	d := m[0] * inv
	return Mat2D{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// MapPoint applies m to p.
func (m Mat2D) MapPoint(p Vec2D) Vec2D {
	return Vec2D{
		m[0]*p[0] + m[2]*p[1] + m[4],
		m[1]*p[0] + m[3]*p[1] + m[5],
	}
}

// MapPoints writes m applied to each point of src into dst. dst must be at
// least as long as src; dst and src may be the same slice.
func (m Mat2D) MapPoints(dst, src []Vec2D) {
	for i, p := range src {
		dst[i] = m.MapPoint(p)
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Mat2D) IsIdentity() bool {
	return m == IdentityMat2D
}

// composeLocal builds the local matrix of a transform described by position,
// scale, rotation, skew and pivot.
//
// Composition order:
//
//	Translate(-pivot) -> Scale -> Skew -> Rotate -> Translate(x, y)
func composeLocal(x, y, sx, sy, rotation, skewX, skewY, px, py float32) Mat2D {
	sin64, cos64 := math.Sincos(float64(rotation))
	sin, cos := float32(sin64), float32(cos64)

	var tanSkewX, tanSkewY float32
	if skewX != 0 {
		tanSkewX = float32(math.Tan(float64(skewX)))
	}
	if skewY != 0 {
		tanSkewY = float32(math.Tan(float64(skewY)))
	}

	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	preTx := -px*sx - tanSkewX*py*sy
	preTy := -tanSkewY*px*sx - py*sy

	return Mat2D{
		cos*a - sin*b,
		sin*a + cos*b,
		cos*c - sin*d,
		sin*c + cos*d,
		cos*preTx - sin*preTy + x,
		sin*preTx + cos*preTy + y,
	}
}

// computeLocalTransform returns the node's local matrix.
func computeLocalTransform(n *Node) Mat2D {
	return composeLocal(n.X, n.Y, n.ScaleX, n.ScaleY, n.Rotation, n.SkewX, n.SkewY, n.PivotX, n.PivotY)
}

// updateWorldTransform recomputes world transforms and opacities below n.
// parentRecomputed forces recomputation even if n is not dirty. It reports
// whether any node was recomputed.
func updateWorldTransform(n *Node, parent Mat2D, parentOpacity float32, parentRecomputed bool) bool {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = parent.Multiply(computeLocalTransform(n))
		n.worldOpacity = parentOpacity * n.Opacity
		n.transformDirty = false
	}
	changed := recompute
	for _, child := range n.children {
		if updateWorldTransform(child, n.worldTransform, n.worldOpacity, recompute) {
			changed = true
		}
	}
	return changed
}

// The setters below are what animations drive. Assigning the fields directly
// also works as long as MarkDirty follows.

// SetPosition moves the node within its parent.
func (n *Node) SetPosition(x, y float32) {
	n.X, n.Y = x, y
	n.MarkDirty()
}

func (n *Node) SetScale(sx, sy float32) {
	n.ScaleX, n.ScaleY = sx, sy
	n.MarkDirty()
}

// SetRotation takes radians.
func (n *Node) SetRotation(r float32) {
	n.Rotation = r
	n.MarkDirty()
}

// SetOpacity changes the node's own opacity; descendants pick it up on the
// next Advance.
func (n *Node) SetOpacity(o float32) {
	n.Opacity = o
	n.MarkDirty()
}

// MarkDirty schedules the node, and with it its subtree, for recomputation.
func (n *Node) MarkDirty() { n.transformDirty = true }

// WorldTransform and WorldOpacity are only current after Artboard.Advance.
func (n *Node) WorldTransform() Mat2D { return n.worldTransform }
func (n *Node) WorldOpacity() float32 { return n.worldOpacity }

// LocalToWorld maps p from the node's space into artboard space.
func (n *Node) LocalToWorld(p Vec2D) Vec2D { return n.worldTransform.MapPoint(p) }

// WorldToLocal is the inverse of LocalToWorld. A singular world matrix
// (zero scale) yields p unchanged.
func (n *Node) WorldToLocal(p Vec2D) Vec2D {
	inv, ok := n.worldTransform.Invert()
	if !ok {
		return p
	}
	return inv.MapPoint(p)
}

// FitContain returns the matrix that scales content uniformly to the largest
// size fitting a w x h frame at the origin and centers it there. An empty
// content box maps to the identity.
func FitContain(content AABB, w, h float32) Mat2D {
	cw, ch := content.Width(), content.Height()
	if cw <= 0 || ch <= 0 {
		return IdentityMat2D
	}
	s := min(w/cw, h/ch)
	tx := (w-cw*s)/2 - content.MinX*s
	ty := (h-ch*s)/2 - content.MinY*s
	return Mat2D{s, 0, 0, s, tx, ty}
}
