package race

import "fmt"

const mpsToKmph = 3.6

// GameState is the phase of the game or of the race itself.
type GameState uint8

const (
	StateStart GameState = iota
	StateRace
	StateOver
)

func (s GameState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateRace:
		return "race"
	case StateOver:
		return "over"
	}
	return "unknown"
}

// Race owns a built track, the car arena and the HUD, and advances them one
// frame at a time. Car 0 is the player.
//
// Game tracks the player's view of the session: it ends when the player
// finishes or dies. RaceState ends when the first car finishes.
type Race struct {
	Track  *Track
	Cars   []*Car
	HUD    *HUD
	Events *EventBus

	Game      GameState
	RaceState GameState
	Winner    CarID
	Countdown float64
	Running   bool
	Frame     uint64
	Elapsed   float64

	starts       []Vec2
	cells        [][2]int
	shake        float64
	sample       float64
	gameOverSent bool
	t            *Tuning
	rng          *Rand
}

// NewRace places one player and up to MaxCars-1 AI cars on the start slots
// of tr, in shuffled order.
func NewRace(tr *Track, t *Tuning, rng *Rand, bus *EventBus) (*Race, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	n := min(t.Game.MaxCars, len(tr.Starts))
	if n < 1 {
		return nil, fmt.Errorf("%w: no start slots", ErrIncompleteTrack)
	}
	if bus == nil {
		bus = NewEventBus()
	}
	r := &Race{
		Track:     tr,
		HUD:       NewHUD(t),
		Events:    bus,
		Winner:    NoCar,
		Countdown: -1,
		Running:   true,
		starts:    append([]Vec2(nil), tr.Starts...),
		cells:     make([][2]int, n),
		t:         t,
		rng:       rng,
	}
	r.shuffleStarts()
	for i := 0; i < n; i++ {
		r.Cars = append(r.Cars, NewCar(CarID(i), i != 0, r.starts[i], tr.StartYaw, tr.Lanes, t, rng))
	}
	return r, nil
}

// Player returns car 0.
func (r *Race) Player() *Car { return r.Cars[0] }

func (r *Race) Car(id CarID) *Car {
	if id < 0 || int(id) >= len(r.Cars) {
		return nil
	}
	return r.Cars[id]
}

func (r *Race) Tuning() *Tuning { return r.t }

// Shaking reports the remaining camera shake time.
func (r *Race) Shaking() float64 { return max(r.shake, 0) }

func (r *Race) shuffleStarts() {
	r.rng.Shuffle(len(r.starts), func(i, j int) {
		r.starts[i], r.starts[j] = r.starts[j], r.starts[i]
	})
}

func (r *Race) emit(e Event) { r.Events.Emit(e) }

// Step simulates one frame. dt is used unchanged by every subsystem.
func (r *Race) Step(dt float64, in Controls) {
	r.Frame++
	r.Elapsed += dt

	for _, fx := range r.Track.Fires {
		fx.Update(dt, true, SpawnParams{})
	}

	switch r.Game {
	case StateStart:
		r.stepStart(dt, in)
	case StateRace:
		r.stepRace(dt, in)
	case StateOver:
		for _, c := range r.Cars {
			c.FollowPath(dt)
		}
		if in.Restart {
			r.Restart()
		}
	}

	UpdateStandings(r.Cars, r.Track.Checkpoints)

	player := r.Player()
	r.sample += dt
	if r.sample > r.t.Game.SampleRate {
		kmph := player.Speed() * r.t.Game.WorldScale * mpsToKmph
		r.HUD.UpdateGeneral(kmph, GetTime(player.RaceTime), player.RacePos, len(r.Cars))
		r.sample = 0
	}
	r.HUD.Update(dt, player.BoostTimer)

	for _, c := range r.Cars {
		c.Update(dt)
	}

	r.shake -= dt
	for _, cp := range r.Track.Checkpoints {
		cp.Update(dt)
	}

	r.collide(dt)

	if player.Health.Current > 0 {
		r.HUD.UpdateHP(player.Health.Current)
	} else {
		r.HUD.UpdateHP(0)
		r.Game = StateOver
		r.HUD.GameOver()
		if !r.gameOverSent {
			r.gameOverSent = true
			r.emit(Event{Type: EventGameOver, Car: player.ID, Other: NoCar, Pos: player.Pos})
		}
	}

	if in.Quit {
		r.Running = false
	}
}

func (r *Race) stepStart(dt float64, in Controls) {
	if in.Start && r.Countdown == -1 {
		r.Countdown = r.t.Game.Countdown
		r.emit(Event{Type: EventCountdown, Car: NoCar, Other: NoCar, Value: ceilInt(r.Countdown)})
	}
	if r.Countdown < 0 {
		return
	}
	before := ceilInt(r.Countdown)
	r.Countdown -= dt
	r.HUD.Countdown(r.Countdown)
	if r.Countdown <= 0 {
		r.Game, r.RaceState = StateRace, StateRace
		r.emit(Event{Type: EventRaceStart, Car: NoCar, Other: NoCar})
		return
	}
	if now := ceilInt(r.Countdown); now != before {
		r.emit(Event{Type: EventCountdown, Car: NoCar, Other: NoCar, Value: now})
	}
}

func (r *Race) stepRace(dt float64, in Controls) {
	p := r.Player()
	hot := p.Overheated()
	p.Drive(in, dt)
	if !hot && p.Overheated() {
		r.emit(Event{Type: EventOverheat, Car: p.ID, Other: NoCar, Pos: p.Pos})
	}
	for _, c := range r.Cars {
		c.UpdateTime(dt)
	}
	for _, c := range r.Cars[1:] {
		c.FollowPath(dt)
	}
	r.checkCheckpoints()
}

// checkCheckpoints advances lap progress. The player must pass through the
// narrow gate; AI cars use the wide one. A car is not counted again for a
// gate it is still inside of.
func (r *Race) checkCheckpoints() {
	cps := r.Track.Checkpoints
	for i, c := range r.Cars {
		player := i == 0
		body := c.Body()
		if c.gate >= 0 && !cps[c.gate].Crossed(body, !player) {
			c.gate = -1
		}
		cp := cps[c.NextCheck]
		if cp.Index == c.gate || !cp.Crossed(body, !player) {
			continue
		}
		c.gate = cp.Index
		if player {
			cp.ShowCross()
		}
		c.NextCheck++
		r.emit(Event{Type: EventCheckpoint, Car: c.ID, Other: NoCar, Pos: c.Pos, Value: cp.Index})

		if c.NextCheck >= len(cps) {
			c.NextCheck = 0
			c.Lap++
			r.emit(Event{Type: EventLap, Car: c.ID, Other: NoCar, Pos: c.Pos, Value: c.Lap})
			if c.Lap > r.t.Game.Laps && !c.Finished {
				r.finish(c, player)
			}
		}
		if player {
			r.HUD.UpdateStatus(c.NextCheck, c.Lap, len(cps))
		}
	}
}

// finish records a car completing its last lap. The first finisher wins.
func (r *Race) finish(c *Car, player bool) {
	c.Finished = true
	r.emit(Event{Type: EventFinish, Car: c.ID, Other: NoCar, Pos: c.Pos, Value: c.RacePos})
	if r.RaceState == StateRace {
		r.Winner = c.ID
		r.RaceState = StateOver
		r.HUD.ShowWinner(c.Name, GetTime(c.RaceTime))
		r.emit(Event{Type: EventWinner, Car: c.ID, Other: NoCar, Pos: c.Pos})
	}
	if player {
		r.HUD.ShowEnd()
		r.Game = StateOver
	}
}

// Restart puts every car back on a reshuffled grid without rebuilding the
// track.
func (r *Race) Restart() {
	r.Game, r.RaceState = StateStart, StateStart
	r.Winner = NoCar
	r.Countdown = -1
	r.shake, r.sample = 0, 0
	r.gameOverSent = false

	r.shuffleStarts()
	for i, c := range r.Cars {
		c.Reset(r.starts[i], r.Track.StartYaw)
	}
	for _, cp := range r.Track.Checkpoints {
		cp.HideCross()
	}
	for _, b := range r.Track.Bombs {
		b.Rearm()
	}
	r.HUD.Reset()
	r.emit(Event{Type: EventRestart, Car: NoCar, Other: NoCar})
}

func ceilInt(v float64) int {
	n := int(v)
	if float64(n) < v {
		n++
	}
	return n
}
