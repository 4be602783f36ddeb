//go:build !android

package game

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"hoverrace/internal/app"
	"hoverrace/internal/logging"
	"hoverrace/internal/scene"
)

// RunDesktop opens a window and drives a until the race quits, the window
// closes or ctx is cancelled.
func RunDesktop(ctx context.Context, a *app.App) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w := a.Settings.Window
	window, err := initWindow(w.Width, w.Height, w.Title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.ClearColor(ClearR, ClearG, ClearB, 1.0)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	rc := a.Race
	static := scene.BuildStatic(rc.Track)
	cam := scene.NewCamera(uint64(a.Seed))
	cam.Snap(rc.Player().Pos)
	input := NewInput()
	var f frame

	a.Log.Info("window open", logging.Int("width", w.Width), logging.Int("height", w.Height))

	last := glfw.GetTime()
	for !window.ShouldClose() && rc.Running {
		if ctx.Err() != nil {
			break
		}
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		input.Camera(window, cam, dt)
		a.Step(dt, input.Controls(window, cam))

		if rc.Shaking() > 0 {
			cam.AddShake(scene.ShakeIntensity, rc.Shaking())
		}
		cam.Follow(rc.Player(), dt)
		cam.UpdateShake(dt)

		rend.BeginFrame(cam, fbW, fbH)
		rend.DrawTrack(static, rc, &f, cam, fbW, fbH)
		rend.DrawActors(rc, &f, cam, fbW, fbH)
		rend.DrawHUD(scene.Layout(rc.HUD, fbW, fbH))
		rend.FlushText(fbW, fbH)

		window.SwapBuffers()
	}
	return nil
}
