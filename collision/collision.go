// Package collision provides discrete AABB overlap testing, generalizing
// the 1D "approaches from the left" contact test into a 2D separating-axis
// check that picks whichever axis has the smaller positive overlap.
package collision

import "github.com/rigid2d/engine/body"

// Axis identifies which AABB axis produced the minimum overlap.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// Overlap describes a discrete AABB-vs-AABB penetration along its
// shallowest axis.
type Overlap struct {
	Hit         bool
	Axis        Axis
	Penetration float32
	// Normal points out of b, the axis direction the overlap should be
	// resolved along.
	Normal [2]float32
}

// AABB computes the overlap of two box bodies, a and b, by comparing
// per-axis overlap extents and selecting the axis of minimum positive
// overlap — the 2D generalization of a fixed-normal horizontal test.
// Returns Overlap{} (Hit == false) when the AABBs are separated or only
// touching on at least one axis.
func AABB(a, b body.Body) Overlap {
	overlapX := axisOverlap(a.Left(), a.Right(), b.Left(), b.Right())
	overlapY := axisOverlap(a.Bottom(), a.Top(), b.Bottom(), b.Top())

	if overlapX <= 0 || overlapY <= 0 {
		return Overlap{}
	}

	if overlapX < overlapY {
		normal := [2]float32{1, 0}
		if a.Position.X < b.Position.X {
			normal[0] = -1
		}
		return Overlap{Hit: true, Axis: AxisX, Penetration: overlapX, Normal: normal}
	}

	normal := [2]float32{0, 1}
	if a.Position.Y < b.Position.Y {
		normal[1] = -1
	}
	return Overlap{Hit: true, Axis: AxisY, Penetration: overlapY, Normal: normal}
}

// axisOverlap returns the positive overlap length of two 1D intervals, or a
// non-positive value if they do not intersect.
func axisOverlap(minA, maxA, minB, maxB float32) float32 {
	return min(maxA, maxB) - max(minA, minB)
}

func min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
