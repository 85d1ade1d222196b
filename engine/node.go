package engine

// NodeType distinguishes drawing behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // groups children, draws nothing
	NodeTypeShape                     // draws, or clips with, its Shape
)

// Node is one element of an artboard hierarchy. Groups and shapes share the
// struct; Type says which fields matter.
type Node struct {
	Name   string
	Type   NodeType
	Parent *Node

	children []*Node

	// Local transform. Rotation and skew are in radians; the pivot is in
	// local units and is the point scaling and rotation happen around.
	X, Y           float32
	ScaleX, ScaleY float32
	Rotation       float32
	SkewX, SkewY   float32
	PivotX, PivotY float32

	// Opacity multiplies into every descendant's paints.
	Opacity float32
	Visible bool

	// Clip makes a shape node clip its children instead of being drawn.
	Clip bool

	Shape *Shape

	worldTransform Mat2D
	worldOpacity   float32
	transformDirty bool
}

func newNode(name string, typ NodeType) *Node {
	return &Node{
		Name:           name,
		Type:           typ,
		ScaleX:         1,
		ScaleY:         1,
		Opacity:        1,
		Visible:        true,
		worldTransform: IdentityMat2D,
		worldOpacity:   1,
		transformDirty: true,
	}
}

// NewContainer creates a group node.
func NewContainer(name string) *Node { return newNode(name, NodeTypeContainer) }

// NewShapeNode creates a node drawing shape.
func NewShapeNode(name string, shape *Shape) *Node {
	n := newNode(name, NodeTypeShape)
	n.Shape = shape
	return n
}

// AddChild appends child, detaching it from any previous parent. It panics
// on a nil child or when child is n or one of n's ancestors.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("engine: AddChild(nil)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("engine: AddChild would create a cycle")
		}
	}
	if old := child.Parent; old != nil {
		old.children = slicesDelete(old.children, child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.MarkDirty()
}

// RemoveChild detaches child from n. It reports false when child is not one
// of n's children.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.Parent != n {
		return false
	}
	n.children = slicesDelete(n.children, child)
	child.Parent = nil
	child.MarkDirty()
	n.MarkDirty()
	return true
}

// Dispose detaches n from its parent and tears down its subtree. A disposed
// node can still be read but draws nothing.
func (n *Node) Dispose() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	for _, c := range n.children {
		c.Parent = nil
		c.Dispose()
	}
	n.children = nil
	n.Shape = nil
	n.Visible = false
}

// Children returns the child list; callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

func slicesDelete(list []*Node, n *Node) []*Node {
	for i, c := range list {
		if c == n {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}
