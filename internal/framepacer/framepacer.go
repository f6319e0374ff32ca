// Package framepacer paces a real-time host loop to a target frame rate
// and reports the measured frame_dt each tick, the value a physics world's
// Update expects from its caller.
package framepacer

import "time"

// Pacer sleeps out the remainder of each frame so the loop runs at
// (approximately) TargetFPS, and hands back the elapsed wall-clock time as
// frame_dt.
type Pacer struct {
	targetDuration time.Duration
	frameStart     time.Time
	timer          *time.Timer
}

// New returns a Pacer targeting the given frames per second.
func New(targetFPS uint) *Pacer {
	p := &Pacer{
		targetDuration: time.Second / time.Duration(targetFPS),
		timer:          time.NewTimer(0),
	}
	<-p.timer.C
	return p
}

// Begin marks the start of a frame.
func (p *Pacer) Begin() {
	p.frameStart = time.Now()
}

// End sleeps out any remaining time in the frame budget and returns the
// actual elapsed duration as a frame_dt in seconds, suitable for passing to
// world.PhysicsWorld.Update.
func (p *Pacer) End() float32 {
	elapsed := time.Since(p.frameStart)
	if diff := p.targetDuration - elapsed; diff > 0 {
		p.timer.Reset(diff)
		<-p.timer.C
		elapsed = time.Since(p.frameStart)
	}
	return float32(elapsed.Seconds())
}
