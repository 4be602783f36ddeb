package race

// Snapshot is a world-space view of a race for front-ends and spectators.
type Snapshot struct {
	Frame       uint64               `msgpack:"frame" json:"frame"`
	Elapsed     float64              `msgpack:"elapsed" json:"elapsed"`
	Game        string               `msgpack:"game" json:"game"`
	Race        string               `msgpack:"race" json:"race"`
	Winner      int                  `msgpack:"winner" json:"winner"`
	Laps        int                  `msgpack:"laps" json:"laps"`
	Cars        []CarSnapshot        `msgpack:"cars" json:"cars"`
	Bombs       []BombSnapshot       `msgpack:"bombs" json:"bombs"`
	Checkpoints []CheckpointSnapshot `msgpack:"checkpoints" json:"checkpoints"`
}

type CarSnapshot struct {
	ID        int     `msgpack:"id" json:"id"`
	Name      string  `msgpack:"name" json:"name"`
	AI        bool    `msgpack:"ai" json:"ai"`
	X         float64 `msgpack:"x" json:"x"`
	Y         float64 `msgpack:"y" json:"y"`
	Z         float64 `msgpack:"z" json:"z"`
	Yaw       float64 `msgpack:"yaw" json:"yaw"`
	Tilt      float64 `msgpack:"tilt" json:"tilt"`
	Lean      float64 `msgpack:"lean" json:"lean"`
	Speed     float64 `msgpack:"speed" json:"speed"`
	HP        int     `msgpack:"hp" json:"hp"`
	Lap       int     `msgpack:"lap" json:"lap"`
	NextCheck int     `msgpack:"next_check" json:"next_check"`
	RacePos   int     `msgpack:"pos" json:"pos"`
	Boost     float64 `msgpack:"boost" json:"boost"`
	Burning   bool    `msgpack:"burning" json:"burning"`
	Finished  bool    `msgpack:"finished" json:"finished"`
	RaceTime  float64 `msgpack:"time" json:"time"`
}

type BombSnapshot struct {
	X     float64 `msgpack:"x" json:"x"`
	Z     float64 `msgpack:"z" json:"z"`
	State string  `msgpack:"state" json:"state"`
}

type CheckpointSnapshot struct {
	Index int     `msgpack:"index" json:"index"`
	X     float64 `msgpack:"x" json:"x"`
	Z     float64 `msgpack:"z" json:"z"`
	Rot   float64 `msgpack:"rot" json:"rot"`
	Cross bool    `msgpack:"cross" json:"cross"`
}

func (r *Race) Snapshot() Snapshot {
	s := Snapshot{
		Frame:       r.Frame,
		Elapsed:     r.Elapsed,
		Game:        r.Game.String(),
		Race:        r.RaceState.String(),
		Winner:      int(r.Winner),
		Laps:        r.t.Game.Laps,
		Cars:        make([]CarSnapshot, 0, len(r.Cars)),
		Bombs:       make([]BombSnapshot, 0, len(r.Track.Bombs)),
		Checkpoints: make([]CheckpointSnapshot, 0, len(r.Track.Checkpoints)),
	}
	for _, c := range r.Cars {
		s.Cars = append(s.Cars, CarSnapshot{
			ID:        int(c.ID),
			Name:      c.Name,
			AI:        c.AI,
			X:         c.Pos.X,
			Y:         c.Height,
			Z:         c.Pos.Z,
			Yaw:       c.Yaw,
			Tilt:      c.Tilt,
			Lean:      c.Lean,
			Speed:     c.Speed(),
			HP:        max(c.Health.Current, 0),
			Lap:       c.Lap,
			NextCheck: c.NextCheck,
			RacePos:   c.RacePos,
			Boost:     c.BoostTimer,
			Burning:   c.BurnTimer > 0,
			Finished:  c.Finished,
			RaceTime:  c.RaceTime,
		})
	}
	for _, b := range r.Track.Bombs {
		s.Bombs = append(s.Bombs, BombSnapshot{X: b.Pos.X, Z: b.Pos.Z, State: b.State.String()})
	}
	for _, cp := range r.Track.Checkpoints {
		s.Checkpoints = append(s.Checkpoints, CheckpointSnapshot{
			Index: cp.Index,
			X:     cp.Pos.X,
			Z:     cp.Pos.Z,
			Rot:   cp.Rot,
			Cross: cp.CrossVisible,
		})
	}
	return s
}
