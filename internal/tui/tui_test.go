package tui

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoverrace/internal/app"
	"hoverrace/internal/config"
	"hoverrace/internal/level"
	"hoverrace/internal/race"
	"hoverrace/internal/scene"
)

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func newRace(t *testing.T) *race.Race {
	t.Helper()
	records, err := level.Default()
	require.NoError(t, err)
	tun := race.DefaultTuning()
	rng := race.NewRand(7)
	tr, err := race.BuildTrack(records, &tun, rng)
	require.NoError(t, err)
	r, err := race.NewRace(tr, &tun, rng, nil)
	require.NoError(t, err)
	return r
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 24)
	return s
}

func rows(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	out := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		out[y] = b.String()
	}
	return out
}

func TestKeysHoldAndDecay(t *testing.T) {
	var k Keys
	k.Handle(key(tcell.KeyRune, 'W'))
	k.Handle(key(tcell.KeyRight, 0))

	in := k.Controls()
	assert.True(t, in.Forward)
	assert.True(t, in.Right)
	assert.False(t, in.Left)
	assert.True(t, k.Pressed(actForward))

	k.Tick(0.1)
	assert.True(t, k.Controls().Forward)
	assert.False(t, k.Pressed(actForward))

	// A repeat refreshes the hold without a new edge.
	k.Handle(key(tcell.KeyRune, 'w'))
	assert.False(t, k.Pressed(actForward))
	k.Tick(0.15)
	assert.True(t, k.Controls().Forward)
	k.Tick(0.1)
	assert.False(t, k.Controls().Forward)
	assert.False(t, k.Controls().Right)
}

func TestKeysEdges(t *testing.T) {
	var k Keys
	k.Handle(key(tcell.KeyRune, ' '))
	k.Handle(key(tcell.KeyF1, 0))
	k.Handle(key(tcell.KeyEscape, 0))
	k.Handle(key(tcell.KeyRune, '%'))

	in := k.Controls()
	assert.True(t, in.Start)
	assert.True(t, in.Restart)
	assert.True(t, in.Quit)

	k.Tick(0.01)
	in = k.Controls()
	assert.False(t, in.Start)
	assert.False(t, in.Restart)
	assert.False(t, in.Quit)
}

func TestHeadingGlyph(t *testing.T) {
	assert.Equal(t, '>', headingGlyph(0))
	assert.Equal(t, 'v', headingGlyph(math.Pi/2))
	assert.Equal(t, '<', headingGlyph(math.Pi))
	assert.Equal(t, '<', headingGlyph(-math.Pi))
	assert.Equal(t, '^', headingGlyph(-math.Pi/2))
	assert.Equal(t, '^', headingGlyph(scene.CarRotation(race.Vec2{Z: 1})))
}

func TestDraw(t *testing.T) {
	r := newRace(t)
	s := newScreen(t)
	v := NewView(s, r, 1)
	v.Draw(r)

	out := rows(s)
	require.Len(t, out, 24)
	assert.Contains(t, out[0], "Lap 1/")
	assert.Contains(t, out[1], r.HUD.Status)
	assert.Contains(t, out[23], "BOOST [")
	assert.Contains(t, out[23], r.HUD.Health)

	// The camera starts on the player.
	assert.Contains(t, "<>^v", string([]rune(out[12])[40]))
}

func TestUpdateStepsRace(t *testing.T) {
	r := newRace(t)
	s := newScreen(t)
	v := NewView(s, r, 1)

	var k Keys
	k.Handle(key(tcell.KeyRune, ' '))
	k.Handle(key(tcell.KeyRune, '3'))

	var got []race.Controls
	step := func(in race.Controls) {
		got = append(got, in)
		r.Step(1.0/60, in)
	}
	v.Update(r, step, &k, 1.0/60)
	v.Update(r, step, &k, 1.0/60)

	require.Len(t, got, 2)
	assert.True(t, got[0].Start)
	assert.False(t, got[1].Start)
	assert.Equal(t, scene.ModeFree, v.Camera().Mode)
	assert.Equal(t, race.StateStart, r.RaceState)
	assert.Positive(t, r.Countdown)
}

func TestRun(t *testing.T) {
	s := config.Default()
	s.Seed = 42
	s.Audio.Enabled = false
	s.LogLevel = "error"
	a, err := app.Initialize(context.Background(), &s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	screen := tcell.NewSimulationScreen("UTF-8")
	screen.SetSize(80, 24)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Run(ctx, a, screen) }()

	assert.Eventually(t, func() bool {
		select {
		case err := <-done:
			assert.NoError(t, err)
			return true
		default:
			screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)
	assert.False(t, a.Race.Running)
}

func TestRunCancel(t *testing.T) {
	s := config.Default()
	s.Seed = 42
	s.Audio.Enabled = false
	s.LogLevel = "error"
	a, err := app.Initialize(context.Background(), &s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, a, tcell.NewSimulationScreen("UTF-8")) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, a.Race.Running)
}
