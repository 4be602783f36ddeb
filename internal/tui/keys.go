package tui

import (
	"github.com/gdamore/tcell/v2"

	"hoverrace/internal/race"
)

// Terminals report key presses and repeats, never releases. A key counts
// as held until holdTime passes without another event for it.
const holdTime = 0.2

type action int

const (
	actForward action = iota
	actBackward
	actLeft
	actRight
	actBoost
	actStart
	actRestart
	actQuit
	actChase
	actClose
	actFree
	actZoomIn
	actZoomOut
	actionCount
)

var runeBindings = map[rune]action{
	'w': actForward,
	's': actBackward,
	'a': actLeft,
	'd': actRight,
	'x': actBoost,
	' ': actStart,
	'r': actRestart,
	'q': actQuit,
	'1': actChase,
	'2': actClose,
	'3': actFree,
	'e': actZoomIn,
	'z': actZoomOut,
}

var keyBindings = map[tcell.Key]action{
	tcell.KeyUp:     actForward,
	tcell.KeyDown:   actBackward,
	tcell.KeyLeft:   actLeft,
	tcell.KeyRight:  actRight,
	tcell.KeyTab:    actBoost,
	tcell.KeyEnter:  actStart,
	tcell.KeyF1:     actRestart,
	tcell.KeyEscape: actQuit,
	tcell.KeyCtrlC:  actQuit,
}

func bind(ev *tcell.EventKey) (action, bool) {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		a, ok := runeBindings[r]
		return a, ok
	}
	a, ok := keyBindings[ev.Key()]
	return a, ok
}

// Keys turns the terminal's key event stream into held and just-pressed
// state.
type Keys struct {
	hold    [actionCount]float64
	pressed [actionCount]bool
}

// Handle records one key event. Unbound keys are ignored.
func (k *Keys) Handle(ev *tcell.EventKey) {
	a, ok := bind(ev)
	if !ok {
		return
	}
	if k.hold[a] <= 0 {
		k.pressed[a] = true
	}
	k.hold[a] = holdTime
}

func (k *Keys) held(a action) bool { return k.hold[a] > 0 }

// Pressed reports whether a was pressed since the last Tick.
func (k *Keys) Pressed(a action) bool { return k.pressed[a] }

// Controls maps the current key state to race input.
func (k *Keys) Controls() race.Controls {
	return race.Controls{
		Forward:  k.held(actForward),
		Backward: k.held(actBackward),
		Left:     k.held(actLeft),
		Right:    k.held(actRight),
		Boost:    k.held(actBoost),
		Start:    k.pressed[actStart],
		Restart:  k.pressed[actRestart],
		Quit:     k.pressed[actQuit],
	}
}

// Tick ages held keys and clears edge state. Call once per frame after
// the state has been read.
func (k *Keys) Tick(dt float64) {
	for i := range k.hold {
		k.hold[i] = max(k.hold[i]-dt, 0)
	}
	k.pressed = [actionCount]bool{}
}
