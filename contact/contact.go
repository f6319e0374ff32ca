// Package contact defines contact points and manifolds, and the
// merge operation that carries accumulated impulses across frames so the
// sequential-impulse solver can warm-start instead of re-converging from
// zero every step.
package contact

import (
	"github.com/rigid2d/engine/body"
	"github.com/rigid2d/engine/vec2"
)

// MaxPoints is the number of point slots a manifold declares. Only point 0
// is solved; the second slot exists so a future two-point extension does
// not require a data-layout change.
const MaxPoints = 2

// Point is a single contact location between two bodies.
//
// Invariants: |Normal| == 1 (or zero only before the first solve of an
// empty manifold); Pn >= 0 (no pulling); |Pt| <= mu*Pn after the solver.
type Point struct {
	Position    vec2.Vec2
	Normal      vec2.Vec2
	Penetration float32 // >= 0
	Pn          float32 // accumulated normal impulse, >= 0
	Pt          float32 // accumulated tangent impulse
}

// Manifold is a cached pair description with one or two contact points,
// persisted across frames (by Merge) so Pn/Pt survive as long as the
// {BodyA, BodyB} pair keeps colliding.
//
// Invariant: BodyA is the Dynamic (or Kinematic) side in mixed pairs,
// BodyB is the wall side.
type Manifold struct {
	BodyA      body.ID
	BodyB      body.ID
	Points     [MaxPoints]Point
	PointCount int
}

// NewManifold builds a single-point manifold for the given pair.
func NewManifold(a, b body.ID, p Point) Manifold {
	m := Manifold{BodyA: a, BodyB: b, PointCount: 1}
	m.Points[0] = p
	return m
}

// samePair reports whether m and other reference the same ordered pair.
// Pair identity is order-sensitive in this core: "Dynamic first, wall
// second" is the pairing convention step_bodies_with_ccd always produces,
// so an ordered comparison is sufficient and cheaper than sorting IDs.
func samePair(m, other Manifold) bool {
	return m.BodyA == other.BodyA && m.BodyB == other.BodyB
}

// Merge appends m to dst, or if dst already holds an entry for the same
// {BodyA, BodyB} pair, replaces that entry's geometric data with m's while
// preserving the existing point 0 Pn/Pt (warm-start). Returns the updated
// slice.
//
// Invariant after Merge: each {BodyA, BodyB} pair appears at most once in
// the returned slice.
func Merge(dst []Manifold, m Manifold) []Manifold {
	for i := range dst {
		if samePair(dst[i], m) {
			pn := dst[i].Points[0].Pn
			pt := dst[i].Points[0].Pt
			dst[i].Points = m.Points
			dst[i].PointCount = m.PointCount
			dst[i].Points[0].Pn = pn
			dst[i].Points[0].Pt = pt
			return dst
		}
	}
	return append(dst, m)
}
