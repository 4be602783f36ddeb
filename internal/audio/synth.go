package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"hoverrace/internal/race"
)

// SampleRate is shared by every generated sound and the output device.
const SampleRate = beep.SampleRate(44100)

type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// tone is a fixed-length oscillator whose pitch slides linearly from
// `from` to `to` Hz.
type tone struct {
	from, to float64
	wave     Wave
	phase    float64
	pos, n   int
	seed     uint64
}

func newTone(from, to float64, d time.Duration, w Wave) *tone {
	return &tone{from: from, to: to, wave: w, n: SampleRate.N(d), seed: 0x9e3779b97f4a7c15}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.n {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.n {
			return i, true
		}
		var v float64
		switch t.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * t.phase)
		case Square:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case Saw:
			v = 2*t.phase - 1
		case Noise:
			v = lcg(&t.seed)
		}
		samples[i] = [2]float64{v, v}

		k := float64(t.pos) / float64(t.n)
		t.phase += (t.from + (t.to-t.from)*k) / float64(SampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// shape applies a linear attack and an exponential-ish release over the
// whole length of the wrapped streamer.
type shape struct {
	s       beep.Streamer
	attack  int
	release int
	n, pos  int
}

func newShape(s beep.Streamer, d, attack, release time.Duration) *shape {
	return &shape{s: s, n: SampleRate.N(d), attack: SampleRate.N(attack), release: SampleRate.N(release)}
}

func (e *shape) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if left := e.n - e.pos; left < e.release {
			g *= math.Max(float64(left)/float64(e.release), 0)
			g *= g
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *shape) Err() error { return e.s.Err() }

func gained(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

func note(from, to float64, d time.Duration, w Wave, gain float64) beep.Streamer {
	return gained(newShape(newTone(from, to, d, w), d, 5*time.Millisecond, d/2), gain)
}

// lcg advances seed and returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

type Sound int

const (
	SoundCountdown Sound = iota
	SoundGo
	SoundCheckpoint
	SoundLap
	SoundFinish
	SoundCrash
	SoundExplosion
	SoundBurn
	SoundOverheat
	SoundGameOver
	soundCount
)

var soundNames = [...]string{
	SoundCountdown:  "countdown",
	SoundGo:         "go",
	SoundCheckpoint: "checkpoint",
	SoundLap:        "lap",
	SoundFinish:     "finish",
	SoundCrash:      "crash",
	SoundExplosion:  "explosion",
	SoundBurn:       "burn",
	SoundOverheat:   "overheat",
	SoundGameOver:   "game_over",
}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// Generate builds a fresh finite streamer for s.
func Generate(s Sound) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	switch s {
	case SoundCountdown:
		return note(660, 660, ms(140), Sine, 0.6)
	case SoundGo:
		return note(990, 990, ms(320), Sine, 0.7)
	case SoundCheckpoint:
		return beep.Mix(note(1320, 1320, ms(180), Sine, 0.4), note(1980, 1980, ms(120), Sine, 0.2))
	case SoundLap:
		return beep.Seq(note(880, 880, ms(110), Square, 0.25), note(1175, 1175, ms(200), Square, 0.25))
	case SoundFinish:
		return beep.Seq(
			note(523, 523, ms(140), Square, 0.3),
			note(659, 659, ms(140), Square, 0.3),
			note(784, 784, ms(140), Square, 0.3),
			note(1047, 1047, ms(420), Square, 0.3),
		)
	case SoundCrash:
		return beep.Mix(note(120, 60, ms(160), Square, 0.35), note(0, 0, ms(90), Noise, 0.3))
	case SoundExplosion:
		return beep.Mix(note(0, 0, ms(700), Noise, 0.6), note(80, 30, ms(600), Sine, 0.7))
	case SoundBurn:
		return note(0, 0, ms(120), Noise, 0.15)
	case SoundOverheat:
		return note(900, 200, ms(450), Saw, 0.3)
	case SoundGameOver:
		return beep.Seq(note(392, 392, ms(250), Saw, 0.3), note(330, 330, ms(250), Saw, 0.3), note(262, 131, ms(700), Saw, 0.3))
	}
	return beep.Silence(0)
}

// ForEvent maps a race event to the sound the player should hear, if any.
// Events about other cars are quieter, except countdown and race start.
func ForEvent(e race.Event, player race.CarID) (Sound, float64, bool) {
	mine := e.Car == player || e.Other == player
	gain := 1.0
	if !mine {
		gain = 0.35
	}
	switch e.Type {
	case race.EventCountdown:
		return SoundCountdown, 1, true
	case race.EventRaceStart:
		return SoundGo, 1, true
	case race.EventCheckpoint:
		return SoundCheckpoint, 1, mine
	case race.EventLap:
		return SoundLap, 1, mine
	case race.EventFinish:
		return SoundFinish, 1, mine
	case race.EventCollision:
		return SoundCrash, gain * math.Min(0.4+float64(e.Value)/10, 1), true
	case race.EventBombTrigger:
		return SoundExplosion, gain, true
	case race.EventBurn:
		return SoundBurn, 1, mine
	case race.EventOverheat:
		return SoundOverheat, 1, mine
	case race.EventGameOver:
		return SoundGameOver, 1, true
	}
	return 0, 0, false
}
