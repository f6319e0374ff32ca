// Package render is a read-only terminal viewer of a physics world: it
// consumes the accessors world.PhysicsWorld exposes (Bodies, Manifolds) and
// draws them, but never mutates simulation state. It is the renderer
// collaborator the core's external-interfaces section assumes exists
// outside the core.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/rigid2d/engine/body"
	"github.com/rigid2d/engine/contact"
	"github.com/rigid2d/engine/vec2"
)

// TerminalViewer draws a world snapshot onto a tcell screen. Units are
// world meters; PixelsPerMeter controls the zoom, OriginX/OriginY place
// world (0,0) on screen.
type TerminalViewer struct {
	screen         tcell.Screen
	width          int
	height         int
	pixelsPerMeter float32
	originX        int
	originY        int
}

// NewTerminalViewer returns a viewer bound to screen with the given
// logical size and world-to-screen scale.
func NewTerminalViewer(screen tcell.Screen, width, height int, pixelsPerMeter float32) *TerminalViewer {
	return &TerminalViewer{
		screen:         screen,
		width:          width,
		height:         height,
		pixelsPerMeter: pixelsPerMeter,
		originX:        width / 2,
		originY:        height - 2,
	}
}

// worldToScreen converts a world position to integer screen coordinates,
// with Y flipped since terminal rows grow downward while world Y grows up.
func (v *TerminalViewer) worldToScreen(p vec2.Vec2) (int, int) {
	x := v.originX + int(p.X*v.pixelsPerMeter)
	y := v.originY - int(p.Y*v.pixelsPerMeter)
	return x, y
}

// RenderFrame draws every body and manifold point of the given read-only
// snapshot, then presents the screen. Bodies and manifolds are never
// written back; the viewer only looks.
func (v *TerminalViewer) RenderFrame(bodies []body.Body, manifolds []contact.Manifold, stepCount uint64) {
	v.screen.Clear()

	style := tcell.StyleDefault
	for _, b := range bodies {
		v.drawBody(b, style.Foreground(bodyColor(b)))
	}

	contactStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for _, m := range manifolds {
		for i := 0; i < m.PointCount; i++ {
			x, y := v.worldToScreen(m.Points[i].Position)
			v.putString(x, y, "*", contactStyle)
		}
	}

	v.putString(0, 0, fmt.Sprintf("steps=%d bodies=%d manifolds=%d", stepCount, len(bodies), len(manifolds)), style)
	v.screen.Show()
}

func bodyColor(b body.Body) tcell.Color {
	switch b.Type {
	case body.Static:
		return tcell.ColorGray
	case body.Kinematic:
		return tcell.ColorYellow
	default:
		return tcell.ColorGreen
	}
}

func (v *TerminalViewer) drawBody(b body.Body, style tcell.Style) {
	if b.Shape == body.Plane {
		x, y := v.worldToScreen(b.Position)
		for dx := -v.width / 2; dx < v.width/2; dx++ {
			v.putRune(x+dx, y, '-', style)
		}
		return
	}

	left, _ := v.worldToScreen(vec2.New(b.Left(), b.Position.Y))
	right, _ := v.worldToScreen(vec2.New(b.Right(), b.Position.Y))
	_, top := v.worldToScreen(vec2.New(b.Position.X, b.Top()))
	_, bottom := v.worldToScreen(vec2.New(b.Position.X, b.Bottom()))

	for x := left; x <= right; x++ {
		v.putRune(x, top, '#', style)
		v.putRune(x, bottom, '#', style)
	}
	for y := top; y <= bottom; y++ {
		v.putRune(left, y, '#', style)
		v.putRune(right, y, '#', style)
	}
}

func (v *TerminalViewer) putRune(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *TerminalViewer) putString(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		v.putRune(x+i, y, r, style)
	}
}
