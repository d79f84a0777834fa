// Package gui is the desktop demo: it renders the panel in 3D and
// emulates the dominant hand with the mouse, so the interaction engine
// can be exercised without an HMD. The mouse ray is projected onto the
// panel's depth plane; holding the left button is the pinch.
package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/nkotova/spatialui/internal/config"
	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
	"github.com/nkotova/spatialui/internal/panel"
)

const (
	screenW = 1280
	screenH = 720
)

type App struct {
	panel  *panel.Panel
	camera rl.Camera3D
	planeZ float64
	hand   mathx.Vec3
}

func Run(cfg *config.Config) error {
	p, err := cfg.BuildPanel()
	if err != nil {
		return err
	}

	app := &App{
		panel:  p,
		planeZ: cfg.Window.Z,
		camera: rl.Camera3D{
			Position:   rl.NewVector3(0, 1.6, 0.6),
			Target:     rl.NewVector3(0, float32(cfg.Window.Y), float32(cfg.Window.Z)),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       60,
			Projection: rl.CameraPerspective,
		},
	}

	rl.InitWindow(screenW, screenH, "spatialui demo")
	defer rl.CloseWindow()
	rl.SetTargetFPS(72)

	for !rl.WindowShouldClose() {
		frame := app.sampleInput()
		app.panel.Update(&frame)
		app.draw(&frame)
	}

	return nil
}

// sampleInput builds the per-frame snapshot the controllers consume:
// mouse as the dominant hand, camera as the head.
func (a *App) sampleInput() input.Frame {
	var f input.Frame
	f.DT = float64(rl.GetFrameTime())

	camPos := vec3FromRL(a.camera.Position)
	forward := vec3FromRL(a.camera.Target).Sub(camPos).Normalize()
	f.Head = input.Head{Position: camPos, Forward: forward}

	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), a.camera)
	if dz := float64(ray.Direction.Z); dz < -1e-6 || dz > 1e-6 {
		t := (a.planeZ - float64(ray.Position.Z)) / dz
		if t > 0 {
			a.hand = vec3FromRL(ray.Position).Add(vec3FromRL(ray.Direction).Scale(t))
		}
	}

	f.Hands[input.Right] = input.Hand{
		Tracked:       true,
		PinchActive:   rl.IsMouseButtonDown(rl.MouseButtonLeft),
		PinchStarted:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		PinchEnded:    rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		PalmPosition:  a.hand,
		PinchPosition: a.hand,
	}

	return f
}

func vec3FromRL(v rl.Vector3) mathx.Vec3 {
	return mathx.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func vec3ToRL(v mathx.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
