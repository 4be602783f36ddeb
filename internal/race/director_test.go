package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	events []Event
}

func recordEvents(r *Race) *eventLog {
	l := &eventLog{}
	r.Events.SubscribeAll(func(e Event) { l.events = append(l.events, e) })
	return l
}

func (l *eventLog) count(typ EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (l *eventLog) values(typ EventType) []int {
	var out []int
	for _, e := range l.events {
		if e.Type == typ {
			out = append(out, e.Value)
		}
	}
	return out
}

func startRace(r *Race) {
	r.Game, r.RaceState = StateRace, StateRace
}

func TestNewRacePlacesCars(t *testing.T) {
	r := newTestRace(t, 1)
	require.Len(t, r.Cars, 4)
	assert.False(t, r.Player().AI)
	assert.Equal(t, "YOU", r.Player().Name)
	for i, c := range r.Cars[1:] {
		assert.True(t, c.AI)
		assert.Equal(t, CarName(r.Tuning(), i+1), c.Name)
	}

	seen := map[Vec2]bool{}
	for _, c := range r.Cars {
		assert.Contains(t, r.Track.Starts, c.Pos)
		assert.False(t, seen[c.Pos], "two cars on one slot")
		seen[c.Pos] = true
		assert.Equal(t, r.Track.StartYaw, c.Yaw)
	}
	assert.Equal(t, StateStart, r.Game)
	assert.Equal(t, NoCar, r.Winner)
	assert.Nil(t, r.Car(9))
	assert.Same(t, r.Cars[2], r.Car(2))
}

func TestNewRaceRejectsBadTuning(t *testing.T) {
	tune := testTuning()
	rng := NewRand(1)
	tr, err := BuildTrack(loopRecords(), tune, rng)
	require.NoError(t, err)

	tune.Game.Laps = 0
	_, err = NewRace(tr, tune, rng, nil)
	assert.ErrorIs(t, err, ErrInvalidTuning)
}

func TestCountdownStartsRace(t *testing.T) {
	r := newTestRace(t, 1)
	log := recordEvents(r)

	r.Step(0.25, Controls{})
	assert.Equal(t, StateStart, r.Game)
	assert.Equal(t, -1.0, r.Countdown)

	r.Step(0.25, Controls{Start: true})
	assert.Equal(t, "3...", r.HUD.Status)
	for i := 0; i < 11; i++ {
		r.Step(0.25, Controls{Start: true})
	}
	assert.Equal(t, StateRace, r.Game)
	assert.Equal(t, StateRace, r.RaceState)
	assert.Equal(t, "Go!", r.HUD.Status)
	assert.Equal(t, []int{3, 2, 1}, log.values(EventCountdown))
	assert.Equal(t, 1, log.count(EventRaceStart))

	for _, c := range r.Cars {
		assert.Zero(t, c.RaceTime, "clock starts with the race")
	}
}

func TestCheckpointGateCountsOnce(t *testing.T) {
	r := newTestRace(t, 2)
	startRace(r)
	p := r.Player()
	p.Pos = r.Track.Checkpoints[0].Pos

	r.checkCheckpoints()
	r.checkCheckpoints()
	assert.Equal(t, 1, p.NextCheck)
	assert.True(t, r.Track.Checkpoints[0].CrossVisible)
	assert.Equal(t, "Stage 1 complete", r.HUD.Status)
}

func TestCheckpointsMustBeTakenInOrder(t *testing.T) {
	r := newTestRace(t, 2)
	startRace(r)
	p := r.Player()
	p.Pos = r.Track.Checkpoints[2].Pos
	r.checkCheckpoints()
	assert.Equal(t, 0, p.NextCheck)
}

func TestLapWrapAndFinishOnce(t *testing.T) {
	r := newTestRace(t, 3)
	log := recordEvents(r)
	startRace(r)
	p := r.Player()
	cps := r.Track.Checkpoints

	drive := func(laps int) {
		for l := 0; l < laps; l++ {
			for _, cp := range cps {
				p.Pos = cp.Pos
				r.checkCheckpoints()
			}
		}
	}

	drive(1)
	assert.Equal(t, 2, p.Lap)
	assert.Equal(t, 0, p.NextCheck)
	assert.Equal(t, "Lap 2/2", r.HUD.Lap)
	assert.Equal(t, StateRace, r.Game)

	drive(1)
	assert.Equal(t, 3, p.Lap)
	assert.True(t, p.Finished)
	assert.Equal(t, StateOver, r.Game)
	assert.Equal(t, StateOver, r.RaceState)
	assert.Equal(t, p.ID, r.Winner)
	assert.True(t, r.HUD.EndVisible)
	assert.Equal(t, "Race complete!", r.HUD.Status)

	drive(2)
	assert.Equal(t, 1, log.count(EventFinish))
	assert.Equal(t, 1, log.count(EventWinner))
	assert.Equal(t, []int{2, 3, 4, 5}, log.values(EventLap))
}

func TestAIWinnerThenPlayerFinishes(t *testing.T) {
	r := newTestRace(t, 4)
	log := recordEvents(r)
	startRace(r)
	cps := r.Track.Checkpoints
	last := cps[len(cps)-1]

	ai := r.Cars[1]
	ai.Lap, ai.NextCheck = r.Tuning().Game.Laps, len(cps)-1
	ai.Pos = last.Pos
	r.checkCheckpoints()
	require.True(t, ai.Finished)
	assert.Equal(t, ai.ID, r.Winner)
	assert.Equal(t, StateOver, r.RaceState)
	assert.Equal(t, StateRace, r.Game, "player keeps racing")
	assert.Contains(t, r.HUD.EndTitle, "CAR2 WON")
	assert.False(t, r.HUD.EndVisible)

	ai.Pos = cps[0].Pos
	p := r.Player()
	p.Lap, p.NextCheck = r.Tuning().Game.Laps, len(cps)-1
	p.Pos = last.Pos
	r.checkCheckpoints()
	assert.True(t, p.Finished)
	assert.Equal(t, ai.ID, r.Winner)
	assert.Equal(t, StateOver, r.Game)
	assert.True(t, r.HUD.EndVisible)
	assert.Equal(t, 2, log.count(EventFinish))
	assert.Equal(t, 1, log.count(EventWinner))
}

func TestGameOverEmittedOnce(t *testing.T) {
	r := newTestRace(t, 5)
	log := recordEvents(r)
	startRace(r)
	r.Player().TakeDamage(500)

	r.Step(0.01, Controls{})
	r.Step(0.01, Controls{})
	r.Step(0.01, Controls{})
	assert.Equal(t, StateOver, r.Game)
	assert.Equal(t, "Game Over", r.HUD.Status)
	assert.Equal(t, "0/100HP", r.HUD.Health)
	assert.Equal(t, 1, log.count(EventGameOver))
}

func TestRestart(t *testing.T) {
	r := newTestRace(t, 6)
	log := recordEvents(r)
	startRace(r)
	for i := 0; i < 120; i++ {
		r.Step(1.0/60, Controls{Forward: true})
	}
	r.Track.Bombs[0].Detonate()
	r.Player().TakeDamage(500)
	r.Step(0.01, Controls{})
	require.Equal(t, StateOver, r.Game)

	r.Step(0.01, Controls{Restart: true})
	assert.Equal(t, StateStart, r.Game)
	assert.Equal(t, StateStart, r.RaceState)
	assert.Equal(t, -1.0, r.Countdown)
	assert.Equal(t, NoCar, r.Winner)
	assert.Equal(t, 1, log.count(EventRestart))
	assert.Equal(t, BombActive, r.Track.Bombs[0].State)
	assert.Equal(t, "Hit Space to Start", r.HUD.Status)
	assert.Equal(t, "100/100HP", r.HUD.Health)

	seen := map[Vec2]bool{}
	for _, c := range r.Cars {
		assert.Equal(t, 1, c.Lap)
		assert.Equal(t, 100, c.Health.Current)
		assert.Contains(t, r.Track.Starts, c.Pos)
		assert.False(t, seen[c.Pos])
		seen[c.Pos] = true
	}

	// Restart is only honoured once the game is over.
	r.Step(0.01, Controls{Restart: true})
	assert.Equal(t, 1, log.count(EventRestart))
}

func TestQuit(t *testing.T) {
	r := newTestRace(t, 7)
	r.Step(0.01, Controls{})
	assert.True(t, r.Running)
	r.Step(0.01, Controls{Quit: true})
	assert.False(t, r.Running)
}

func TestOverheatEvent(t *testing.T) {
	r := newTestRace(t, 8)
	log := recordEvents(r)
	startRace(r)
	for i := 0; i < 14; i++ {
		r.Step(0.25, Controls{Forward: true, Boost: true})
	}
	assert.True(t, r.Player().Overheated())
	assert.Equal(t, 1, log.count(EventOverheat))
}

func TestLongRaceKeepsInvariants(t *testing.T) {
	r := newTestRace(t, 9)
	startRace(r)
	rng := NewRand(42)
	const dt = 1.0 / 60

	hp := make([]int, len(r.Cars))
	for i, c := range r.Cars {
		hp[i] = c.Health.Current
	}
	for frame := 0; frame < 60*60; frame++ {
		in := Controls{
			Forward: true,
			Left:    rng.Chance(0.2),
			Boost:   rng.Chance(0.3),
		}
		r.Step(dt, in)

		for i, c := range r.Cars {
			require.LessOrEqual(t, c.Health.Current, hp[i], "car %d healed", i)
			hp[i] = c.Health.Current
			require.GreaterOrEqual(t, c.NextCheck, 0)
			require.Less(t, c.NextCheck, len(r.Track.Checkpoints))
			for _, fx := range []Effect{c.Fire, c.Smoke, c.Exhaust} {
				for _, e := range fx {
					require.Less(t, e.Live(), e.Capacity())
				}
			}
		}
	}
	assert.True(t, r.Running)

	moved := 0
	for _, c := range r.Cars[1:] {
		if c.NextCheck > 0 || c.Lap > 1 {
			moved++
		}
	}
	assert.Positive(t, moved, "AI cars make progress")
}

func TestSnapshot(t *testing.T) {
	r := newTestRace(t, 10)
	r.Step(0.01, Controls{})
	s := r.Snapshot()
	assert.Equal(t, uint64(1), s.Frame)
	assert.Equal(t, "start", s.Game)
	assert.Equal(t, -1, s.Winner)
	assert.Equal(t, 2, s.Laps)
	require.Len(t, s.Cars, 4)
	assert.Equal(t, "YOU", s.Cars[0].Name)
	assert.Equal(t, r.Player().Pos.X, s.Cars[0].X)
	require.Len(t, s.Bombs, 1)
	assert.Equal(t, "active", s.Bombs[0].State)
	assert.Len(t, s.Checkpoints, 4)
}
