//go:build !android

package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"hoverrace/internal/race"
	"hoverrace/internal/scene"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func held(window *glfw.Window, keys ...glfw.Key) bool {
	for _, k := range keys {
		if window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

// Controls samples the driving keys. In free camera mode the arrow keys
// pan the view, so only WASD steers.
func (in *Input) Controls(window *glfw.Window, cam *scene.Camera) race.Controls {
	free := cam.Mode == scene.ModeFree
	up, down, left, right := glfw.KeyUp, glfw.KeyDown, glfw.KeyLeft, glfw.KeyRight
	if free {
		up, down, left, right = glfw.KeyW, glfw.KeyS, glfw.KeyA, glfw.KeyD
	}
	return race.Controls{
		Forward:  held(window, up, glfw.KeyW),
		Backward: held(window, down, glfw.KeyS),
		Left:     held(window, left, glfw.KeyA),
		Right:    held(window, right, glfw.KeyD),
		Boost:    held(window, glfw.KeyLeftShift, glfw.KeyRightShift, glfw.KeyX),
		Start:    in.JustPressed(window, glfw.KeySpace),
		Restart:  in.JustPressed(window, glfw.KeyF1),
		Quit:     in.JustPressed(window, glfw.KeyEscape),
	}
}

// Camera handles mode selection, free panning and zoom.
func (in *Input) Camera(window *glfw.Window, cam *scene.Camera, dt float64) {
	switch {
	case in.JustPressed(window, glfw.Key1):
		cam.SetMode(scene.ModeChase)
	case in.JustPressed(window, glfw.Key2):
		cam.SetMode(scene.ModeClose)
	case in.JustPressed(window, glfw.Key3):
		cam.SetMode(scene.ModeFree)
	}

	if cam.Mode == scene.ModeFree {
		var dx, dy float64
		if held(window, glfw.KeyLeft) {
			dx--
		}
		if held(window, glfw.KeyRight) {
			dx++
		}
		if held(window, glfw.KeyUp) {
			dy--
		}
		if held(window, glfw.KeyDown) {
			dy++
		}
		cam.Pan(dx, dy, dt)
	}

	if held(window, glfw.KeyE) {
		cam.ZoomBy(1, dt)
	}
	if held(window, glfw.KeyR) {
		cam.ZoomBy(-1, dt)
	}
}
