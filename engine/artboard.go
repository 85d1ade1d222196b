package engine

// Artboard is one instantiated artboard: a node tree with its own shapes,
// paints and render paths, plus the animations that can drive it. Instances
// obtained from the same File share nothing mutable.
type Artboard struct {
	name          string
	width, height float32
	// originX and originY are fractions of the size; (0.5, 0.5) centers the
	// artboard on its coordinate origin.
	originX, originY float32
	clip             bool

	root       *Node
	nodes      map[string]*Node
	animations []*LinearAnimation

	factory  Factory
	clipPath RenderPath
}

// newArtboard wraps an already built node tree. The artboard is advanced
// once so that it can be drawn immediately.
func newArtboard(def *ArtboardDef, root *Node, factory Factory) *Artboard {
	ab := &Artboard{
		name:       def.Name,
		width:      def.Width,
		height:     def.Height,
		originX:    def.OriginX,
		originY:    def.OriginY,
		clip:       def.Clip,
		root:       root,
		nodes:      make(map[string]*Node),
		animations: def.Animations,
		factory:    factory,
	}
	root.Walk(func(n *Node) bool {
		if n.Name != "" {
			if _, dup := ab.nodes[n.Name]; !dup {
				ab.nodes[n.Name] = n
			}
		}
		if n.Shape != nil {
			n.Shape.Build()
		}
		return true
	})

	b := ab.Bounds()
	var raw RawPath
	raw.AddRect(b.Width(), b.Height(), 0)
	raw.Transform(TranslateMat2D((b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2))
	ab.clipPath = factory.MakeRenderPath(&raw, FillRuleNonZero)

	ab.Advance(0)
	return ab
}

// Name returns the artboard name.
func (ab *Artboard) Name() string { return ab.name }

// Width returns the artboard width.
func (ab *Artboard) Width() float32 { return ab.width }

// Height returns the artboard height.
func (ab *Artboard) Height() float32 { return ab.height }

// Root returns the root node.
func (ab *Artboard) Root() *Node { return ab.root }

// Node returns the first node with the given name, or nil.
func (ab *Artboard) Node(name string) *Node { return ab.nodes[name] }

// Bounds returns the artboard rectangle in its own coordinate space.
func (ab *Artboard) Bounds() AABB {
	minX := -ab.originX * ab.width
	minY := -ab.originY * ab.height
	return AABB{minX, minY, minX + ab.width, minY + ab.height}
}

// Advance refreshes world transforms and opacities and rebuilds any shape
// whose geometry or opacity changed. The artboard itself has no time-based
// state; the elapsed time is accepted for symmetry with animations. It
// reports whether anything changed.
func (ab *Artboard) Advance(float32) bool {
	changed := updateWorldTransform(ab.root, IdentityMat2D, 1, false)
	ab.root.Walk(func(n *Node) bool {
		if n.Shape != nil && n.Shape.update(n.worldOpacity) {
			changed = true
		}
		return true
	})
	return changed
}

// Draw issues the artboard's drawing calls against r.
func (ab *Artboard) Draw(r Renderer) {
	r.Save()
	if ab.clip {
		r.ClipPath(ab.clipPath)
	}
	if ab.originX != 0 || ab.originY != 0 {
		b := ab.Bounds()
		r.Transform(TranslateMat2D(b.MinX, b.MinY))
	}
	ab.drawNode(r, ab.root)
	r.Restore()
}

func (ab *Artboard) drawNode(r Renderer, n *Node) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeShape && n.Shape != nil {
		if n.Clip {
			ab.drawClipped(r, n)
			return
		}
		if n.worldOpacity > 0 {
			drawShape(r, n)
		}
	}
	for _, child := range n.children {
		ab.drawNode(r, child)
	}
}

// drawClipped clips the children of n to n's geometry in world space.
func (ab *Artboard) drawClipped(r Renderer, n *Node) {
	clip := ab.factory.MakeEmptyRenderPath()
	clip.AddRenderPath(n.Shape.Path(), n.worldTransform)
	r.Save()
	r.ClipPath(clip)
	for _, child := range n.children {
		ab.drawNode(r, child)
	}
	r.Restore()
}

func drawShape(r Renderer, n *Node) {
	r.Save()
	r.Transform(n.worldTransform)
	for _, p := range n.Shape.Paints {
		r.DrawPath(n.Shape.Path(), p.paint)
	}
	r.Restore()
}

// AnimationCount returns the number of animations.
func (ab *Artboard) AnimationCount() int { return len(ab.animations) }

// AnimationAt returns a new instance of animation i bound to this artboard.
func (ab *Artboard) AnimationAt(i int) *AnimationInstance {
	return newAnimationInstance(ab.animations[i], ab.Node)
}

// AnimationNamed returns a new instance of the named animation, or nil.
func (ab *Artboard) AnimationNamed(name string) *AnimationInstance {
	for _, a := range ab.animations {
		if a.Name == name {
			return newAnimationInstance(a, ab.Node)
		}
	}
	return nil
}
