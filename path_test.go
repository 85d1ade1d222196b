package vecbridge

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/phanxgames/vecbridge/engine"
)

const epsilon = 1e-5

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertFloats(t *testing.T, name string, got, want []float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(%s) = %d, want %d (%v vs %v)", name, len(got), len(want), got, want)
	}
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestPathBuildCounts(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.CubicTo(1, 2, 3, 4, 5, 6)
	p.Close()

	if p.PointCount() != 5 {
		t.Errorf("PointCount = %d, want 5", p.PointCount())
	}
	if p.VerbCount() != 4 {
		t.Errorf("VerbCount = %d, want 4", p.VerbCount())
	}
	points, verbs := p.Serialize()
	if want := []Verb{VerbMove, VerbLine, VerbCubic, VerbClose}; !slices.Equal(verbs, want) {
		t.Errorf("verbs = %v, want %v", verbs, want)
	}
	assertFloats(t, "points", points, []float32{0, 0, 10, 0, 1, 2, 3, 4, 5, 6})
	if err := p.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
}

func TestVerbCodes(t *testing.T) {
	codes := map[Verb]uint8{VerbMove: 0, VerbLine: 1, VerbQuad: 2, VerbCubic: 4, VerbClose: 5}
	for v, want := range codes {
		if uint8(v) != want {
			t.Errorf("verb %v = %d, want %d", v, uint8(v), want)
		}
	}
}

func TestPathSerializeIsRepeatableCopy(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.LineTo(3, 4)

	pts1, verbs1 := p.Serialize()
	pts1[0] = 99
	verbs1[0] = VerbClose
	pts2, verbs2 := p.Serialize()

	assertFloats(t, "points", pts2, []float32{1, 2, 3, 4})
	if verbs2[0] != VerbMove {
		t.Errorf("verbs[0] = %v after mutating a previous result, want VerbMove", verbs2[0])
	}
}

func TestPathReset(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 1)
	p.Close()
	p.Reset()
	if p.PointCount() != 0 || p.VerbCount() != 0 {
		t.Errorf("after Reset counts = %d/%d, want 0/0", p.PointCount(), p.VerbCount())
	}
}

func TestPathAddRenderPath(t *testing.T) {
	dst := NewPath()
	dst.MoveTo(1, 1)
	dst.LineTo(2, 2)

	src := NewPath()
	src.MoveTo(0, 0)
	src.CubicTo(1, 0, 1, 1, 0, 1)
	src.Close()

	m := engine.Mat2D{2, 0, 0, 3, 10, 20} // scale (2, 3), translate (10, 20)
	dst.AddRenderPath(src, m)

	if dst.PointCount() != 2+4 {
		t.Errorf("PointCount = %d, want 6", dst.PointCount())
	}
	if dst.VerbCount() != 2+3 {
		t.Errorf("VerbCount = %d, want 5", dst.VerbCount())
	}
	points, verbs := dst.Serialize()
	assertFloats(t, "points", points, []float32{
		1, 1, 2, 2, // untouched
		10, 20, 12, 20, 12, 23, 10, 23,
	})
	want := []Verb{VerbMove, VerbLine, VerbMove, VerbCubic, VerbClose}
	if !slices.Equal(verbs, want) {
		t.Errorf("verbs = %v, want %v", verbs, want)
	}

	// The source is unchanged.
	srcPoints, _ := src.Serialize()
	assertFloats(t, "src points", srcPoints, []float32{0, 0, 1, 0, 1, 1, 0, 1})
}

func TestPathAddRenderPathRotation(t *testing.T) {
	src := NewPath()
	src.MoveTo(1, 0)
	dst := NewPath()
	dst.AddRenderPath(src, engine.RotateMat2D(math.Pi/2))
	points, _ := dst.Serialize()
	assertFloats(t, "points", points, []float32{0, 1})
}

func TestPathAddRenderPathSelf(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.LineTo(3, 4)
	p.AddRenderPath(p, engine.TranslateMat2D(10, 0))
	points, verbs := p.Serialize()
	assertFloats(t, "points", points, []float32{1, 2, 3, 4, 11, 2, 13, 4})
	if len(verbs) != 4 {
		t.Errorf("len(verbs) = %d, want 4", len(verbs))
	}
}

type foreignPath struct{ engine.RenderPath }

func TestPathAddRenderPathForeignIgnored(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.AddRenderPath(foreignPath{}, engine.IdentityMat2D)
	if p.PointCount() != 1 || p.VerbCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", p.PointCount(), p.VerbCount())
	}
}

func TestNewPathFromRaw(t *testing.T) {
	var raw engine.RawPath
	raw.AddRect(10, 20, 0)
	p := newPathFromRaw(&raw, engine.FillRuleNonZero)

	points, verbs := p.Serialize()
	assertFloats(t, "points", points, []float32{-5, -10, 5, -10, 5, 10, -5, 10})
	want := []Verb{VerbMove, VerbLine, VerbLine, VerbLine, VerbClose}
	if !slices.Equal(verbs, want) {
		t.Errorf("verbs = %v, want %v", verbs, want)
	}

	// Later changes to the raw path do not leak into the copy.
	raw.Reset()
	if p.PointCount() != 4 {
		t.Errorf("PointCount = %d after raw.Reset, want 4", p.PointCount())
	}
}

func TestPathFillRuleAdvisory(t *testing.T) {
	logs := captureLogs(t)

	p := NewPath()
	p.MoveTo(0, 0)
	p.SetFillRule(engine.FillRuleEvenOdd)
	if p.FillRule() != engine.FillRuleEvenOdd {
		t.Errorf("FillRule = %v, want even-odd", p.FillRule())
	}
	if !logs.contains("even-odd") {
		t.Errorf("expected an even-odd diagnostic, got %q", logs.String())
	}
	points, _ := p.Serialize()
	assertFloats(t, "points", points, []float32{0, 0})
}

func TestPathValidate(t *testing.T) {
	p := &Path{
		points: []engine.Vec2D{{0, 0}},
		verbs:  []Verb{VerbMove, VerbLine},
	}
	if err := p.Validate(); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("Validate = %v, want ErrMalformedPath", err)
	}

	p = &Path{points: []engine.Vec2D{{0, 0}}, verbs: []Verb{3}}
	if err := p.Validate(); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("Validate(unknown verb) = %v, want ErrMalformedPath", err)
	}
}

func TestPathBinaryLayout(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 2)
	p.Close()

	b, err := p.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		1, 0, 0, 0, // point count
		2, 0, 0, 0, // verb count
		0x00, 0x00, 0x80, 0x3f, // 1.0
		0x00, 0x00, 0x00, 0x40, // 2.0
		0, 5,
	}
	if !slices.Equal(b, want) {
		t.Errorf("MarshalBinary = % x, want % x", b, want)
	}

	q, err := DecodePath(b)
	if err != nil {
		t.Fatalf("DecodePath: %v", err)
	}
	points, verbs := q.Serialize()
	assertFloats(t, "points", points, []float32{1, 2})
	if !slices.Equal(verbs, []Verb{VerbMove, VerbClose}) {
		t.Errorf("verbs = %v", verbs)
	}
}

func TestDecodePathRejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", []byte{1, 0, 0}},
		{"truncated", []byte{1, 0, 0, 0, 1, 0, 0, 0, 0, 0}},
		{"trailing", []byte{0, 0, 0, 0, 0, 0, 0, 0, 9}},
		{"unbalanced", []byte{0, 0, 0, 0, 1, 0, 0, 0, byte(VerbLine)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePath(tt.data); !errors.Is(err, ErrMalformedPath) {
				t.Errorf("DecodePath = %v, want ErrMalformedPath", err)
			}
		})
	}
}
