package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"hoverrace/internal/app"
	"hoverrace/internal/logging"
	"hoverrace/internal/race"
)

const frameTime = 33 * time.Millisecond

// Run drives a on screen until the race quits or ctx is cancelled. The
// logger is held at error level while the screen is active so log lines
// do not tear the display.
func Run(ctx context.Context, a *app.App, screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	a.Log.SetLevel(logging.LevelError)
	defer func() {
		lvl, err := logging.ParseLevel(a.Settings.LogLevel)
		if err == nil {
			a.Log.SetLevel(lvl)
		}
	}()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	v := NewView(screen, a.Race, uint64(a.Seed))
	var keys Keys
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	last := time.Now()
	for a.Race.Running {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys.Handle(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			v.Update(a.Race, func(in race.Controls) { a.Step(dt, in) }, &keys, dt)
		}
	}
	return nil
}
