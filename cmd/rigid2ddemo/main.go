// Command rigid2ddemo wires a PhysicsWorld to a terminal viewer, driven by
// a frame-paced host loop. It exists outside the physics core's scope: it
// owns all I/O (terminal, timing) so the core itself never has to.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/rigid2d/engine/body"
	"github.com/rigid2d/engine/internal/framepacer"
	"github.com/rigid2d/engine/internal/tracelog"
	"github.com/rigid2d/engine/render"
	"github.com/rigid2d/engine/vec2"
	"github.com/rigid2d/engine/world"
)

func main() {
	fixedHz := flag.Uint("fixed-hz", 60, "fixed physics step rate")
	targetFPS := flag.Uint("fps", 60, "host loop target frame rate")
	verbose := flag.Bool("verbose", false, "emit DEBUG-level diagnostic trace")
	flag.Parse()

	if err := run(*fixedHz, *targetFPS, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fixedHz, targetFPS uint, verbose bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("rigid2ddemo: open terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("rigid2ddemo: init terminal screen: %w", err)
	}
	defer screen.Fini()

	w, h := screen.Size()
	viewer := render.NewTerminalViewer(screen, w, h, 4)

	level := tracelog.INFO
	if verbose {
		level = tracelog.DEBUG
	}
	log := tracelog.New("rigid2ddemo", level, os.Stderr)

	pw := world.NewPhysicsWorld(1.0 / float32(fixedHz))
	pw.SetLogger(log)
	seedScene(pw)

	pacer := framepacer.New(targetFPS)
	events := make(chan tcell.Event)
	go screen.ChannelEvents(events, nil)

	for {
		pacer.Begin()

		select {
		case ev := <-events:
			if quit(ev) {
				return nil
			}
		default:
		}

		frameDt := pacer.End()
		pw.Update(frameDt)
		viewer.RenderFrame(pw.Bodies(), pw.Manifolds(), pw.StepCount())
	}
}

func quit(ev tcell.Event) bool {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return keyEv.Key() == tcell.KeyEscape || keyEv.Key() == tcell.KeyCtrlC || keyEv.Rune() == 'q'
}

// seedScene builds the demo's initial world: a ground plane, a static
// wall, and a dynamic box that falls and slides into it.
func seedScene(pw *world.PhysicsWorld) {
	pw.AddBody(body.NewPlane(0, vec2.New(0, 0)))
	pw.AddBody(body.NewBox(1, body.Static, vec2.New(12, 1), 1, 1, 0))

	falling := body.NewBox(2, body.Dynamic, vec2.New(0, 10), 0.5, 0.5, 1)
	falling.Velocity = vec2.New(3, 0)
	falling.Acceleration = vec2.New(0, -9.8)
	pw.AddBody(falling)
}
