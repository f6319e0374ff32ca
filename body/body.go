// Package body defines the physical entities the physics core simulates:
// their type tag, shape tag, and kinematic state.
package body

import "github.com/rigid2d/engine/vec2"

// Type tags how a body participates in integration and the solver.
type Type int

const (
	// Dynamic bodies respond to forces and constraints.
	Dynamic Type = iota
	// Static bodies have InvMass 0 and never move.
	Static
	// Kinematic bodies move by scripted velocity, ignore forces, and have
	// InvMass 0 for solver purposes but are treated as moving walls by CCD.
	Kinematic
)

func (t Type) String() string {
	switch t {
	case Dynamic:
		return "Dynamic"
	case Static:
		return "Static"
	case Kinematic:
		return "Kinematic"
	default:
		return "Unknown"
	}
}

// ShapeType tags the geometric form of a body.
type ShapeType int

const (
	// Box is an axis-aligned box with HalfWidth/HalfHeight extents.
	Box ShapeType = iota
	// Plane is a horizontal line.
	Plane
)

func (s ShapeType) String() string {
	switch s {
	case Box:
		return "Box"
	case Plane:
		return "Plane"
	default:
		return "Unknown"
	}
}

// ID identifies a body. IDs are assigned by the host and are never reused.
type ID = uint32

// NoID is the sentinel value for an unset/unpaired body reference, matching
// the UINT32_MAX sentinel used by the prototype this core was built from.
const NoID ID = 1<<32 - 1

// Body is a single physical entity: kinematic state, inverse mass, AABB
// half-extents, shape tag, and ground flag.
//
// Invariants: if Type == Static, InvMass == 0 and Velocity == (0,0).
// PseudoVelocity is zero at every frame boundary, before and after a full
// fixed step.
type Body struct {
	ID             ID
	Type           Type
	Position       vec2.Vec2
	Velocity       vec2.Vec2
	Acceleration   vec2.Vec2
	PseudoVelocity vec2.Vec2
	InvMass        float32
	HalfWidth      float32
	HalfHeight     float32
	Shape          ShapeType
	OnGround       bool
}

// NewBox returns a Dynamic, Static, or Kinematic box body. InvMass is
// forced to 0 for Static and Kinematic bodies, matching the data model's
// invariant that only Dynamic bodies participate in the velocity solver.
func NewBox(id ID, t Type, position vec2.Vec2, halfWidth, halfHeight, invMass float32) Body {
	if t == Static || t == Kinematic {
		invMass = 0
	}
	return Body{
		ID:         id,
		Type:       t,
		Position:   position,
		InvMass:    invMass,
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
		Shape:      Box,
	}
}

// NewPlane returns a Static horizontal plane body at the given position.
func NewPlane(id ID, position vec2.Vec2) Body {
	return Body{
		ID:       id,
		Type:     Static,
		Position: position,
		Shape:    Plane,
	}
}

// Bottom returns the lower edge of a box body's AABB along Y.
func (b Body) Bottom() float32 {
	return b.Position.Y - b.HalfHeight
}

// Top returns the upper edge of a box body's AABB along Y.
func (b Body) Top() float32 {
	return b.Position.Y + b.HalfHeight
}

// Left returns the lower edge of a box body's AABB along X.
func (b Body) Left() float32 {
	return b.Position.X - b.HalfWidth
}

// Right returns the upper edge of a box body's AABB along X.
func (b Body) Right() float32 {
	return b.Position.X + b.HalfWidth
}
