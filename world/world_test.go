package world_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rigid2d/engine/body"
	"github.com/rigid2d/engine/vec2"
	"github.com/rigid2d/engine/world"
)

var _ = Describe("PhysicsWorld", Label("layer:world"), func() {

	Describe("Accumulator", func() {
		It("starts at zero with zero steps", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			Expect(w.Accumulator()).To(BeNumerically("==", 0))
			Expect(w.StepCount()).To(BeEquivalentTo(0))
		})

		It("takes no step when frame_dt is below fixed_dt", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			w.Update(0.005)

			Expect(w.StepCount()).To(BeEquivalentTo(0))
			Expect(w.Accumulator()).To(BeNumerically("~", 0.005, 1e-6))
		})

		It("takes exactly k steps for frame_dt = k*fixed_dt", func() {
			fixedDt := float32(1.0 / 60)
			w := world.NewPhysicsWorld(fixedDt)
			w.Update(fixedDt * 3)

			Expect(w.StepCount()).To(BeEquivalentTo(3))
			Expect(w.Accumulator()).To(BeNumerically("~", 0, 1e-4))
		})

		It("takes 60 steps for a 1 second frame at 1/60 fixed_dt", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			w.Update(1.0)

			Expect(w.StepCount()).To(BeEquivalentTo(60))
			Expect(w.Accumulator()).To(BeNumerically(">=", 0))
			Expect(w.Accumulator()).To(BeNumerically("<", 1.0/60))
		})

		It("carries the remainder across frames", func() {
			fixedDt := float32(1.0 / 60)
			w := world.NewPhysicsWorld(fixedDt)

			w.Update(fixedDt * 0.75)
			Expect(w.StepCount()).To(BeEquivalentTo(0))

			w.Update(fixedDt * 0.75)
			Expect(w.StepCount()).To(BeEquivalentTo(1))
			Expect(w.Accumulator()).To(BeNumerically("~", fixedDt*0.5, 1e-5))
		})

		It("step count is monotonically non-decreasing", func() {
			fixedDt := float32(1.0 / 60)
			w := world.NewPhysicsWorld(fixedDt)

			var prev uint64
			for i := 0; i < 10; i++ {
				w.Update(fixedDt)
				Expect(w.StepCount()).To(BeNumerically(">=", prev))
				prev = w.StepCount()
			}
		})
	})

	Describe("Freefall", func() {
		It("falls under gravity alone with no walls", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			falling := body.NewBox(1, body.Dynamic, vec2.New(0, 10), 0.5, 0.5, 1)
			falling.Acceleration = vec2.New(0, -9.8)
			w.AddBody(falling)

			for i := 0; i < 60; i++ {
				w.Update(1.0 / 60)
			}

			Expect(float64(w.Position().Y)).To(BeNumerically("~", 5.1, 0.2))
		})
	})

	Describe("Wall stop", func() {
		It("does not tunnel through a static wall", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			dyn := body.NewBox(1, body.Dynamic, vec2.New(2, 2), 0.5, 0.5, 1)
			dyn.Velocity = vec2.New(5, 0)
			dyn.Acceleration = vec2.New(2, 0)
			w.AddBody(dyn)
			w.AddBody(body.NewBox(2, body.Static, vec2.New(8, 2), 0.5, 0.5, 0))

			for i := 0; i < 300; i++ {
				w.Update(1.0 / 60)
			}

			Expect(float64(w.Position().X)).To(BeNumerically("<=", 8.5))
		})
	})

	Describe("Kinematic push", func() {
		It("pushes a stationary dynamic body", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			pusher := body.NewBox(1, body.Kinematic, vec2.New(-5, 2), 0.5, 0.5, 0)
			pusher.Velocity = vec2.New(5, 0)
			w.AddBody(pusher)
			w.AddBody(body.NewBox(2, body.Dynamic, vec2.New(0, 2), 0.5, 0.5, 1))

			for i := 0; i < 120; i++ {
				w.Update(1.0 / 60)
			}

			Expect(float64(w.Bodies()[1].Position.X)).To(BeNumerically(">", 0))
		})
	})

	Describe("Resting on ground", func() {
		It("sets OnGround and clamps downward velocity", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			dyn := body.NewBox(1, body.Dynamic, vec2.New(0, 0), 0.5, 0.5, 1)
			dyn.Velocity = vec2.New(0, -5)
			dyn.Acceleration = vec2.New(0, -9.8)
			w.AddBody(dyn)

			for i := 0; i < 30; i++ {
				w.Update(1.0 / 60)
			}

			b := w.Bodies()[0]
			Expect(b.OnGround).To(BeTrue())
			Expect(float64(b.Velocity.Y)).To(BeNumerically(">=", 0))
			Expect(float64(b.Position.Y)).To(BeNumerically(">=", 0))
		})
	})

	Describe("Determinism", func() {
		It("produces identical body states across two independent runs", func() {
			build := func() *world.PhysicsWorld {
				w := world.NewPhysicsWorld(1.0 / 60)
				dyn := body.NewBox(1, body.Dynamic, vec2.New(2, 2), 0.5, 0.5, 1)
				dyn.Velocity = vec2.New(5, 0)
				dyn.Acceleration = vec2.New(2, -9.8)
				w.AddBody(dyn)
				w.AddBody(body.NewBox(2, body.Static, vec2.New(8, 2), 0.5, 0.5, 0))
				return w
			}

			a := build()
			b := build()

			for i := 0; i < 200; i++ {
				a.Update(1.0 / 60)
				b.Update(1.0 / 60)
			}

			Expect(a.Position().X).To(Equal(b.Position().X))
			Expect(a.Position().Y).To(Equal(b.Position().Y))
			Expect(a.StepCount()).To(Equal(b.StepCount()))
		})
	})

	Describe("Manifold invariants", func() {
		It("never duplicates a {bodyA, bodyB} pair in one step", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			dyn := body.NewBox(1, body.Dynamic, vec2.New(0, 0), 0.5, 0.5, 1)
			w.AddBody(dyn)
			w.AddBody(body.NewBox(2, body.Static, vec2.New(0.9, 0), 0.5, 0.5, 0))

			w.Update(1.0 / 60)

			seen := map[[2]uint32]bool{}
			for _, m := range w.Manifolds() {
				key := [2]uint32{m.BodyA, m.BodyB}
				Expect(seen[key]).To(BeFalse())
				seen[key] = true
			}
		})

		It("keeps accumulated normal impulse non-negative", func() {
			w := world.NewPhysicsWorld(1.0 / 60)
			dyn := body.NewBox(1, body.Dynamic, vec2.New(0, 0), 0.5, 0.5, 1)
			dyn.Acceleration = vec2.New(0, -9.8)
			w.AddBody(dyn)
			w.AddBody(body.NewBox(2, body.Static, vec2.New(0.95, 0), 0.5, 0.5, 0))

			for i := 0; i < 30; i++ {
				w.Update(1.0 / 60)
			}

			for _, m := range w.Manifolds() {
				Expect(float64(m.Points[0].Pn)).To(BeNumerically(">=", 0))
			}
		})
	})
})
