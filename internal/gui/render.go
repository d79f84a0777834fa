package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/panel"
	"github.com/nkotova/spatialui/internal/widget"
)

var (
	colBg      = rl.NewColor(14, 14, 18, 255)
	colWindow  = rl.NewColor(40, 44, 58, 230)
	colGrabbed = rl.NewColor(66, 72, 96, 230)
	colKnob    = rl.NewColor(180, 180, 190, 255)
	colPointer = rl.NewColor(255, 200, 80, 255)
	colHand    = rl.NewColor(120, 220, 160, 200)
	colTarget  = rl.NewColor(255, 120, 120, 160)
	colText    = rl.NewColor(150, 150, 160, 255)
)

func (a *App) draw(f *input.Frame) {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	rl.BeginMode3D(a.camera)
	rl.DrawGrid(10, 0.25)

	a.drawWindow()
	for _, m := range a.panel.Mounts() {
		a.drawKnob(m)
	}
	a.drawHand(f)

	if target, ok := a.panel.Window.Target(); ok {
		rl.DrawSphereWires(vec3ToRL(target), 0.02, 6, 6, colTarget)
	}

	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawWindow() {
	w := a.panel.Window
	params := w.Params()

	body := colWindow
	if w.State() == widget.Grabbed {
		body = colGrabbed
	}

	// Panel body tinted by the hue knob when one is bound.
	if hue, ok := a.panel.Bound(panel.BindHue); ok {
		body = rl.ColorFromHSV(float32(hue*360), 0.45, 0.35)
	}

	scale := 1.0
	if s, ok := a.panel.Bound(panel.BindScale); ok {
		scale = s
	}

	rl.DrawCube(vec3ToRL(w.Position),
		float32(params.Width*scale), float32(params.Height*scale), 0.01, body)
	rl.DrawCubeWires(vec3ToRL(w.Position),
		float32(params.Width*scale), float32(params.Height*scale), 0.01, colKnob)
}

func (a *App) drawKnob(m panel.Mount) {
	k := m.Knob
	center := vec3ToRL(k.Position)
	radius := float32(k.Params().Radius)

	rl.DrawCircle3D(center, radius, rl.NewVector3(0, 0, 1), 0, colKnob)

	tip := k.Position.Add(k.Orientation.Rotate(k.PointerPosition()))
	rl.DrawLine3D(center, vec3ToRL(tip), colPointer)
	rl.DrawSphere(vec3ToRL(tip), 0.004, colPointer)
}

func (a *App) drawHand(f *input.Frame) {
	h := f.Hand(input.Right)
	if !h.Tracked {
		return
	}
	r := float32(0.012)
	if h.PinchActive {
		r = 0.008
	}
	rl.DrawSphere(vec3ToRL(h.PalmPosition), r, colHand)
}

func (a *App) drawHUD() {
	w := a.panel.Window
	status := fmt.Sprintf("state: %s   idle: %.1fs", w.State(), w.IdleFor())
	rl.DrawText(status, 16, 16, 20, colText)

	y := int32(44)
	for _, m := range a.panel.Mounts() {
		rl.DrawText(fmt.Sprintf("%s (%s): %.3f", m.Name, m.Binding, m.Knob.Value), 16, y, 20, colText)
		y += 24
	}

	rl.DrawText("drag: hold left mouse near the panel · knobs: pinch on the dial", 16, screenH-32, 18, colText)
}
