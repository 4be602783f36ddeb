package race

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testTuning() *Tuning {
	t := DefaultTuning()
	return &t
}

// loopRecords is a rectangular circuit with four gates, two lanes and a
// few hazards off the racing line.
func loopRecords() []Record {
	return []Record{
		{Type: "Checkpoint", X: 0, Z: 0, R: 0},
		{Type: "Checkpoint", X: -60, Z: 240, R: 90},
		{Type: "Checkpoint", X: -120, Z: 100, R: 180},
		{Type: "Checkpoint", X: -60, Z: -40, R: 270},

		{Type: "Waypoint", X: -3, Z: 60},
		{Type: "Waypoint", X: -3, Z: 237},
		{Type: "Waypoint", X: -117, Z: 237},
		{Type: "Waypoint", X: -117, Z: -37},
		{Type: "Waypoint", X: -3, Z: -37},
		{Type: "Waypoint2", X: 3, Z: 60},
		{Type: "Waypoint2", X: 3, Z: 243},
		{Type: "Waypoint2", X: -123, Z: 243},
		{Type: "Waypoint2", X: -123, Z: -43},
		{Type: "Waypoint2", X: 3, Z: -43},

		{Type: "Wall", X: 20, Z: 120, R: 0},
		{Type: "Tank2", X: 30, Z: 30, R: 0},
		{Type: "Bomb", X: -60, Z: 230, R: 0},
		{Type: "Slow", X: -3, Z: 200, R: 0},
		{Type: "Fast", X: -117, Z: 150, R: 0},
		{Type: "Bush", X: 40, Z: 0, R: 0},
	}
}

func newTestRace(t *testing.T, seed uint64) *Race {
	t.Helper()
	tune := testTuning()
	rng := NewRand(seed)
	tr, err := BuildTrack(loopRecords(), tune, rng)
	require.NoError(t, err)
	r, err := NewRace(tr, tune, rng, nil)
	require.NoError(t, err)
	return r
}

func newTestCar(t *testing.T, ai bool) *Car {
	t.Helper()
	lanes := [][]Vec2{{{0, 50}, {0, 100}}, {{5, 50}, {5, 100}}}
	return NewCar(1, ai, Vec2{0, 0}, 0, lanes, testTuning(), NewRand(7))
}
