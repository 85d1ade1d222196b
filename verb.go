package vecbridge

import "github.com/phanxgames/vecbridge/engine"

// Verb is the one-byte code of a path segment. The values are part of the
// host contract and never change.
type Verb = engine.PathVerb

const (
	VerbMove  = engine.VerbMove  // 0, one point
	VerbLine  = engine.VerbLine  // 1, one point
	VerbQuad  = engine.VerbQuad  // 2, two points; never produced by this package
	VerbCubic = engine.VerbCubic // 4, three points
	VerbClose = engine.VerbClose // 5, no points
)

// CountPoints returns the number of points consumed by verbs, and false if a
// verb is unknown.
func CountPoints(verbs []Verb) (int, bool) {
	n := 0
	for _, v := range verbs {
		c := v.PointCount()
		if c < 0 {
			return 0, false
		}
		n += c
	}
	return n, true
}
