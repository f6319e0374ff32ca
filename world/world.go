// Package world owns the bodies and contact manifolds of a simulation and
// runs the fixed-timestep pipeline: continuous collision detection, a
// sequential-impulse velocity solver, and a split-impulse position
// correction pass. PhysicsWorld never blocks, spawns a goroutine, or
// touches wall-clock time; it is driven entirely by the frame_dt values a
// host passes to Update.
package world

import (
	"github.com/rigid2d/engine/body"
	"github.com/rigid2d/engine/collision"
	"github.com/rigid2d/engine/contact"
	"github.com/rigid2d/engine/integrate"
	"github.com/rigid2d/engine/internal/tracelog"
	"github.com/rigid2d/engine/toi"
	"github.com/rigid2d/engine/vec2"
)

// Compile-time constants of the world type, fixed per spec and not
// host-configurable.
const (
	Slop        = toi.Slop
	Eps         = toi.Eps
	Mu          = 0.5
	GroundY     = 0
	MaxPoints   = contact.MaxPoints
	Restitution = 0 // declared for completeness; solveContacts does not use it.
)

// PhysicsWorld owns a world's bodies and manifolds and advances them
// through fixed timesteps on every Update call.
type PhysicsWorld struct {
	bodies      []body.Body
	manifolds   []contact.Manifold
	fixedDt     float32
	accumulator float32
	steps       uint64
	log         *tracelog.Logger
}

// NewPhysicsWorld constructs a world with the given fixed timestep.
// fixedDt must be > 0.
func NewPhysicsWorld(fixedDt float32) *PhysicsWorld {
	return &PhysicsWorld{fixedDt: fixedDt}
}

// SetLogger attaches an optional diagnostic trace logger. The world never
// depends on it for correctness; nil disables tracing (the default).
func (w *PhysicsWorld) SetLogger(log *tracelog.Logger) {
	w.log = log
}

// AddBody appends a body to the world in insertion order. IDs are assigned
// by the host and must be unique and never reused.
func (w *PhysicsWorld) AddBody(b body.Body) {
	w.bodies = append(w.bodies, b)
}

// StepCount returns the monotonic count of completed fixed steps.
func (w *PhysicsWorld) StepCount() uint64 {
	return w.steps
}

// Accumulator returns the residual unstepped time. Always in
// [0, fixedDt) up to float epsilon after Update returns.
func (w *PhysicsWorld) Accumulator() float32 {
	return w.accumulator
}

// Position returns body 0's position, or (0,0) if the world has no bodies.
func (w *PhysicsWorld) Position() vec2.Vec2 {
	if len(w.bodies) == 0 {
		return vec2.Zero
	}
	return w.bodies[0].Position
}

// Velocity returns body 0's velocity, or (0,0) if the world has no bodies.
func (w *PhysicsWorld) Velocity() vec2.Vec2 {
	if len(w.bodies) == 0 {
		return vec2.Zero
	}
	return w.bodies[0].Velocity
}

// Bodies returns a read-only view of the world's bodies in insertion order.
// Valid until the next Update.
func (w *PhysicsWorld) Bodies() []body.Body {
	return w.bodies
}

// Manifolds returns a read-only view of the active contact manifolds from
// the most recently completed fixed step. Valid until the next Update.
func (w *PhysicsWorld) Manifolds() []contact.Manifold {
	return w.manifolds
}

// Update advances the simulation by frame_dt: kinematic bodies move by real
// frame time immediately, then zero or more fixed steps run to drain the
// accumulator. A single large frame_dt may trigger many fixed steps; the
// core applies no spiral-of-death guard, that policy belongs to the host.
func (w *PhysicsWorld) Update(frameDt float32) {
	w.updateKinematics(frameDt)

	w.accumulator += frameDt
	for w.accumulator >= w.fixedDt {
		w.fixedStep(w.fixedDt)
		w.accumulator -= w.fixedDt
		w.steps++
	}
}

// updateKinematics advances every Kinematic body by real frame time, so
// scripted motion tracks wall-clock time smoothly regardless of the fixed
// timestep's rate.
func (w *PhysicsWorld) updateKinematics(frameDt float32) {
	for i := range w.bodies {
		if w.bodies[i].Type != body.Kinematic {
			continue
		}
		w.bodies[i].Position = w.bodies[i].Position.Add(w.bodies[i].Velocity.Scale(frameDt))
	}
}

// fixedStep runs one fixed-size tick of the pipeline in strict order: CCD
// broad/narrow pass, velocity solve, position-correction accumulation,
// then application of the accumulated pseudo-velocity.
func (w *PhysicsWorld) fixedStep(dt float32) {
	w.stepBodiesWithCCD(dt)
	w.solveContacts(dt)
	w.solveSplitImpulse(dt)
	w.integratePseudo(dt)
}

func isWallCandidate(t body.Type) bool {
	return t == body.Static || t == body.Kinematic || t == body.Dynamic
}

// stepBodiesWithCCD clears the manifold list and rebuilds it for this step:
// for each Dynamic body, it resolves X-axis TOI against every candidate
// box/kinematic/dynamic wall, resolves Y-axis TOI against elevated
// platforms, applies ground resolution, and finally runs a discrete overlap
// pass to catch resting contact that TOI cannot see.
func (w *PhysicsWorld) stepBodiesWithCCD(dt float32) {
	w.manifolds = w.manifolds[:0]

	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Type != body.Dynamic {
			continue
		}

		// Platforms are evaluated against the pre-step Y state so their TOI
		// is meaningful even though the X pair loop below also integrates Y
		// over the step (on both its hit and no-hit paths).
		preY0, preVY, preAY := b.Position.Y, b.Velocity.Y, b.Acceleration.Y

		w.stepXAxisPairs(i, dt)

		if w.platformCCD(b, preY0, preVY, preAY, dt) {
			// authoritative: platform snap overrides whatever Y the X pass left.
		} else {
			w.solveGround(b)
		}

		w.discreteOverlapPass(i)
	}
}

// stepXAxisPairs finds the earliest X-axis TOI hit for body i against every
// candidate wall, advances it to that time (or over the full dt if no hit),
// and emits a CCD manifold for the impacted pair.
func (w *PhysicsWorld) stepXAxisPairs(i int, dt float32) {
	b := &w.bodies[i]

	bestT := dt
	hit := false
	hitIdx := -1
	var hitNormal vec2.Vec2

	for j := range w.bodies {
		if j == i {
			continue
		}
		other := w.bodies[j]
		if !isWallCandidate(other.Type) || other.Shape != body.Box {
			continue
		}

		x0 := b.Position.X - other.Position.X
		v0 := b.Velocity.X - other.Velocity.X
		a := b.Acceleration.X
		if !vec2.IsFinite(x0) || !vec2.IsFinite(v0) {
			continue
		}

		res := toi.Solve(x0, v0, a, dt)
		if !res.Hit {
			continue
		}

		yGap := absf(b.Position.Y - other.Position.Y)
		maxHalfHeight := maxf(b.HalfHeight, other.HalfHeight)
		if yGap > Slop+maxHalfHeight {
			// Fast horizontal pass at a different height: not a real hit.
			continue
		}

		if !hit || res.T < bestT {
			bestT = res.T
			hit = true
			hitIdx = j
			if v0 > 0 {
				hitNormal = vec2.New(-1, 0)
			} else {
				hitNormal = vec2.New(1, 0)
			}
		}
	}

	if !hit {
		integrate.SemiImplicitEulerX(b, dt)
		integrate.SemiImplicitEulerY(b, dt)
		return
	}

	other := &w.bodies[hitIdx]
	t := bestT

	b.Position.X += b.Velocity.X*t + 0.5*b.Acceleration.X*t*t
	b.Velocity.X += b.Acceleration.X * t
	b.Position.Y += b.Velocity.Y*t + 0.5*b.Acceleration.Y*t*t
	b.Velocity.Y += b.Acceleration.Y * t

	m := contact.NewManifold(b.ID, other.ID, contact.Point{
		Position:    vec2.New(other.Position.X, b.Position.Y),
		Normal:      hitNormal,
		Penetration: 0,
	})
	w.manifolds = contact.Merge(w.manifolds, m)
	if w.log != nil {
		w.log.Debugf("toi hit body=%d wall=%d t=%v", b.ID, other.ID, t)
	}

	// Kinematic-vs-Dynamic transfer model: the Kinematic imparts its
	// velocity to the Dynamic at TOI rather than going through the solver
	// as an infinite-mass impulse.
	if other.Type == body.Kinematic {
		b.Velocity = other.Velocity
	}

	remainder := dt - t
	integrate.SemiImplicitEulerX(b, remainder)
	integrate.SemiImplicitEulerY(b, remainder)
}

// platformCCD tests a 1D vertical TOI against every elevated static plane
// (ground-level planes are redundant with solveGround and are skipped). On
// hit it snaps the body to the plane, zeroes vertical velocity, and sets
// OnGround. Returns whether a platform hit occurred.
func (w *PhysicsWorld) platformCCD(b *body.Body, y0, v0, a float32, dt float32) bool {
	bestT := dt
	hit := false
	var planeY float32

	for j := range w.bodies {
		p := w.bodies[j]
		if p.Type != body.Static || p.Shape != body.Plane {
			continue
		}
		if p.Position.Y <= GroundY {
			continue
		}

		rel0 := y0 - p.Position.Y
		res := toi.Solve(rel0, v0, a, dt)
		if !res.Hit {
			continue
		}
		if !hit || res.T < bestT {
			bestT = res.T
			hit = true
			planeY = p.Position.Y
		}
	}

	if !hit {
		return false
	}

	b.Position.Y = planeY
	b.Velocity.Y = 0
	b.OnGround = true
	return true
}

// solveGround resolves ground-level penetration: a body whose bottom has
// sunk to or below GroundY is pushed back up, its downward velocity is
// clamped, and OnGround is set. Otherwise OnGround is cleared.
func (w *PhysicsWorld) solveGround(b *body.Body) {
	if b.Bottom() <= GroundY {
		b.Position.Y = GroundY + b.HalfHeight
		if b.Velocity.Y < 0 {
			b.Velocity.Y = 0
		}
		b.OnGround = true
		return
	}
	b.OnGround = false
}

// discreteOverlapPass generalizes the original one-dimensional
// "approaches from the left" wall test into a 2D AABB separating-axis
// check, catching resting contact that TOI missed this step.
func (w *PhysicsWorld) discreteOverlapPass(i int) {
	b := w.bodies[i]

	for j := range w.bodies {
		if j == i {
			continue
		}
		other := w.bodies[j]
		if !isWallCandidate(other.Type) || other.Shape != body.Box {
			continue
		}

		ov := collision.AABB(b, other)
		if !ov.Hit {
			continue
		}

		var pos vec2.Vec2
		if ov.Axis == collision.AxisX {
			pos = vec2.New(other.Position.X, b.Position.Y)
		} else {
			pos = vec2.New(b.Position.X, other.Position.Y)
		}

		m := contact.NewManifold(b.ID, other.ID, contact.Point{
			Position:    pos,
			Normal:      vec2.New(ov.Normal[0], ov.Normal[1]),
			Penetration: ov.Penetration,
		})
		w.manifolds = contact.Merge(w.manifolds, m)
	}
}

// solveContacts applies one sequential-impulse velocity correction pass
// over every manifold, normal constraint first then Coulomb friction,
// using accumulated-impulse clamping so the solver never pulls bodies
// together and never exceeds the friction cone. Only BodyA (always the
// Dynamic side) receives a velocity response: BodyB is treated as
// immovable, except a Kinematic BodyB's velocity is subtracted into the
// relative velocity used for the cone, matching the direct-transfer model
// stepXAxisPairs already applies at TOI.
func (w *PhysicsWorld) solveContacts(dt float32) {
	_ = dt // dt is accepted for parity with the pipeline's signature; the
	// impulse-based velocity solve at a single point does not need it.

	for mi := range w.manifolds {
		m := &w.manifolds[mi]
		if m.PointCount == 0 {
			continue
		}

		ai := w.indexOf(m.BodyA)
		bi := w.indexOf(m.BodyB)
		if ai < 0 || bi < 0 {
			continue
		}
		a := &w.bodies[ai]
		b := w.bodies[bi]
		if a.Type != body.Dynamic {
			continue
		}

		p := &m.Points[0]
		n := p.Normal
		t := n.Tangent()

		vrel := a.Velocity
		if b.Type == body.Kinematic {
			vrel = vrel.Sub(b.Velocity)
		}

		vn := vrel.Dot(n)
		if vn < 0 {
			dPn := -vn / a.InvMass
			pnOld := p.Pn
			pnNew := maxf(0, pnOld+dPn)
			dPn = pnNew - pnOld
			p.Pn = pnNew
			a.Velocity = a.Velocity.Add(n.Scale(dPn * a.InvMass))
		}

		vt := vrel.Dot(t)
		dPt := -vt / a.InvMass
		maxPt := Mu * p.Pn
		ptOld := p.Pt
		ptNew := clampf(ptOld+dPt, -maxPt, maxPt)
		dPt = ptNew - ptOld
		p.Pt = ptNew
		a.Velocity = a.Velocity.Add(t.Scale(dPt * a.InvMass))
	}
}

// solveSplitImpulse accumulates a pseudo-velocity, proportional to
// penetration, into each Dynamic body with positive penetration. This
// velocity is consumed and discarded by integratePseudo without ever
// entering the real velocity, so position correction cannot leak energy
// into subsequent frames.
func (w *PhysicsWorld) solveSplitImpulse(dt float32) {
	for mi := range w.manifolds {
		m := &w.manifolds[mi]
		if m.PointCount == 0 || m.Points[0].Penetration <= 0 {
			continue
		}

		ai := w.indexOf(m.BodyA)
		if ai < 0 {
			continue
		}
		a := &w.bodies[ai]
		if a.Type != body.Dynamic || a.InvMass == 0 {
			continue
		}

		n := m.Points[0].Normal
		lambda := m.Points[0].Penetration / (dt * a.InvMass)
		a.PseudoVelocity = a.PseudoVelocity.Add(n.Scale(lambda * a.InvMass))
	}
}

// integratePseudo applies each body's accumulated pseudo-velocity to its
// position and resets it to zero, so PseudoVelocity is always (0,0) at
// every frame boundary.
func (w *PhysicsWorld) integratePseudo(dt float32) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.InvMass == 0 {
			continue
		}
		b.Position = b.Position.Add(b.PseudoVelocity.Scale(dt))
		b.PseudoVelocity = vec2.Zero
	}
}

// indexOf returns the slice index of the body with the given ID, or -1 if
// no such body exists. A stale manifold reference (body removed) is
// handled by the caller skipping the manifold, never by panicking.
func (w *PhysicsWorld) indexOf(id body.ID) int {
	for i := range w.bodies {
		if w.bodies[i].ID == id {
			return i
		}
	}
	return -1
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
