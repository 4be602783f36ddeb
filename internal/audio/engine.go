// Package audio plays procedurally generated race sound effects.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/oto/v2"

	"hoverrace/internal/logging"
	"hoverrace/internal/race"
)

const (
	channels = 2
	// maxExplosions limits simultaneous blasts; more of them clip.
	maxExplosions = 2
)

// Engine mixes every playing sound into one output stream. Read pulls mixed
// float32 frames, which is what the oto player does once the device is
// ready. Until then Play drops sounds.
type Engine struct {
	log *logging.Logger

	mu         sync.Mutex
	mixer      beep.Mixer
	buf        [][2]float64
	volume     float64
	explosions int
	ready      bool

	ctx    *oto.Context
	player oto.Player
}

func NewEngine(volume float64, log *logging.Logger) *Engine {
	return &Engine{log: log, volume: clamp01(volume)}
}

// Open starts the output device. Sounds play once the device reports ready.
func (e *Engine) Open() error {
	ctx, ready, err := oto.NewContext(int(SampleRate), channels, oto.FormatFloat32LE)
	if err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	e.ctx = ctx
	go func() {
		<-ready
		p := ctx.NewPlayer(e)
		p.Play()
		e.mu.Lock()
		e.player = p
		e.ready = true
		e.mu.Unlock()
		e.log.Debug("audio device ready", logging.Int("rate", int(SampleRate)))
	}()
	return nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	p := e.player
	e.player = nil
	e.ready = false
	e.clear()
	e.mu.Unlock()
	if p != nil {
		return p.Close()
	}
	return nil
}

// clear drops every queued sound. Callers hold mu.
func (e *Engine) clear() {
	e.mixer.Clear()
	e.explosions = 0
}

// Stop silences everything still playing.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clear()
}

// Active returns the number of sounds still playing.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len()
}

// Play queues a sound at the given gain. Without a ready device the sound
// is dropped.
func (e *Engine) Play(s Sound, gain float64) {
	if gain <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		return
	}
	st := Generate(s)
	if s == SoundExplosion {
		if e.explosions >= maxExplosions {
			return
		}
		e.explosions++
		// Runs inside Read, which already holds mu.
		st = beep.Seq(st, beep.Callback(func() { e.explosions-- }))
	}
	e.mixer.Add(gained(st, math.Min(gain, 1)))
}

// Attach plays the sound of every event on bus, from player's point of view.
// A restart cuts whatever is still playing.
func (e *Engine) Attach(bus *race.EventBus, player race.CarID) {
	bus.SubscribeAll(func(ev race.Event) {
		if s, gain, ok := ForEvent(ev, player); ok {
			e.Play(s, gain)
		}
	})
	bus.Subscribe(race.EventRestart, func(race.Event) { e.Stop() })
}

// Read fills p with interleaved stereo float32 little-endian frames.
func (e *Engine) Read(p []byte) (int, error) {
	frames := len(p) / (4 * channels)
	e.mu.Lock()
	defer e.mu.Unlock()
	if cap(e.buf) < frames {
		e.buf = make([][2]float64, frames)
	}
	buf := e.buf[:frames]
	n, _ := e.mixer.Stream(buf)
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}
	for i := range buf {
		putStereo(p, i, softSat(buf[i][0]*e.volume), softSat(buf[i][1]*e.volume))
	}
	return frames * 4 * channels, nil
}

func putStereo(b []byte, i int, left, right float64) {
	l := math.Float32bits(float32(left))
	r := math.Float32bits(float32(right))
	o := i * 8
	b[o], b[o+1], b[o+2], b[o+3] = byte(l), byte(l>>8), byte(l>>16), byte(l>>24)
	b[o+4], b[o+5], b[o+6], b[o+7] = byte(r), byte(r>>8), byte(r>>16), byte(r>>24)
}

// softSat is a gentle saturation curve that never exceeds [-1,1].
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 - 0.5/x
	}
	return x - x*x*x/3
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(v, 1)) }
