// Package integrate advances a single body's kinematic state over a
// timestep using semi-implicit (symplectic) Euler integration.
package integrate

import "github.com/rigid2d/engine/body"

// SemiImplicitEuler advances b over dt in place: velocity is updated from
// the old acceleration first, then position is updated from the new
// velocity. This ordering (rather than explicit Euler, which would use the
// old velocity for the position update) is what gives the scheme its
// energy-stability property. dt == 0 is a valid no-op.
func SemiImplicitEuler(b *body.Body, dt float32) {
	b.Velocity.X += b.Acceleration.X * dt
	b.Velocity.Y += b.Acceleration.Y * dt
	b.Position.X += b.Velocity.X * dt
	b.Position.Y += b.Velocity.Y * dt
}

// SemiImplicitEulerY integrates only the Y axis, honoring OnGround: a
// grounded body keeps Position.Y pinned at its current value instead of
// falling further, while still carrying whatever velocity it has (ground
// contact resolution owns clearing that).
func SemiImplicitEulerY(b *body.Body, dt float32) {
	if b.OnGround {
		return
	}
	b.Velocity.Y += b.Acceleration.Y * dt
	b.Position.Y += b.Velocity.Y * dt
}

// SemiImplicitEulerX integrates only the X axis. Used by the CCD pair loop
// to advance the remainder of a step after a TOI hit is resolved, and by
// the non-hit path for the full dt.
func SemiImplicitEulerX(b *body.Body, dt float32) {
	b.Velocity.X += b.Acceleration.X * dt
	b.Position.X += b.Velocity.X * dt
}
