package engine

import (
	"errors"
	"fmt"
)

// File is an imported scene document. It holds only immutable artboard
// definitions; every artboard obtained from it is a fresh instance.
type File struct {
	factory   Factory
	artboards []*ArtboardDef
}

// Import parses data (YAML or JSON) and compiles it against factory. The
// returned error wraps ErrInvalidDocument when the document is malformed.
func Import(data []byte, factory Factory) (*File, error) {
	if factory == nil {
		return nil, errors.New("engine: import requires a factory")
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	defs, err := compileDocument(doc)
	if err != nil {
		return nil, err
	}
	Logger().Debug("document imported", "artboards", len(defs))
	return &File{factory: factory, artboards: defs}, nil
}

// ArtboardCount returns the number of artboards in the file.
func (f *File) ArtboardCount() int { return len(f.artboards) }

// ArtboardDef returns the definition of artboard i.
func (f *File) ArtboardDef(i int) *ArtboardDef { return f.artboards[i] }

// ArtboardAt instantiates artboard i. It panics if i is out of range.
func (f *File) ArtboardAt(i int) *Artboard {
	return instantiate(f.artboards[i], f.factory)
}

// ArtboardNamed instantiates the first artboard with the given name, or
// returns nil.
func (f *File) ArtboardNamed(name string) *Artboard {
	for _, def := range f.artboards {
		if def.Name == name {
			return instantiate(def, f.factory)
		}
	}
	return nil
}

// Release drops the file's definitions. Artboards already instantiated keep
// working; the file itself must not be used afterwards.
func (f *File) Release() {
	f.artboards = nil
	f.factory = nil
}

func instantiate(def *ArtboardDef, factory Factory) *Artboard {
	root := NewContainer(def.Name)
	for _, t := range def.nodes {
		root.AddChild(buildNode(t, factory))
	}
	return newArtboard(def, root, factory)
}

func buildNode(t *nodeTemplate, factory Factory) *Node {
	var n *Node
	if t.typ == NodeTypeShape {
		s := NewShape(factory)
		for _, g := range t.geometries {
			g.Raw = cloneRawPath(&g.Raw)
			s.AddGeometry(&g)
		}
		for _, p := range t.paints {
			s.AddPaint(&p)
		}
		n = NewShapeNode(t.name, s)
	} else {
		n = NewContainer(t.name)
	}
	n.X, n.Y = t.x, t.y
	n.ScaleX, n.ScaleY = t.sx, t.sy
	n.Rotation = t.rotation
	n.SkewX, n.SkewY = t.skewX, t.skewY
	n.PivotX, n.PivotY = t.pivotX, t.pivotY
	n.Opacity = t.opacity
	n.Visible = t.visible
	n.Clip = t.clip
	for _, c := range t.children {
		n.AddChild(buildNode(c, factory))
	}
	return n
}

func cloneRawPath(p *RawPath) RawPath {
	return RawPath{
		points: append([]Vec2D(nil), p.points...),
		verbs:  append([]PathVerb(nil), p.verbs...),
	}
}

// String implements fmt.Stringer for diagnostics.
func (f *File) String() string {
	return fmt.Sprintf("engine.File{artboards: %d}", len(f.artboards))
}
