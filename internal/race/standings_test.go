package race

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standingsPair(t *testing.T) (*Car, *Car) {
	tune := testTuning()
	rng := NewRand(1)
	a := NewCar(0, false, Vec2{0, 0}, 0, testLanes(), tune, rng)
	b := NewCar(1, true, Vec2{0, 0}, 0, testLanes(), tune, rng)
	a.RacePos, b.RacePos = 2, 1
	return a, b
}

func TestComparePositionByLap(t *testing.T) {
	a, b := standingsPair(t)
	a.Lap = 2
	require.True(t, ComparePosition(a, b, Vec2{}))
	assert.Equal(t, 1, a.RacePos)
	assert.Equal(t, 2, b.RacePos)

	assert.False(t, ComparePosition(a, b, Vec2{}), "already in order")
}

func TestComparePositionByCheckpoint(t *testing.T) {
	a, b := standingsPair(t)
	a.NextCheck, b.NextCheck = 2, 1
	assert.True(t, ComparePosition(a, b, Vec2{}))

	a, b = standingsPair(t)
	a.NextCheck, b.NextCheck = 1, 3
	a.Pos = Vec2{0, 100}
	assert.False(t, ComparePosition(a, b, Vec2{0, 100}))
}

func TestComparePositionStartLineIsLeastProgress(t *testing.T) {
	a, b := standingsPair(t)
	a.NextCheck, b.NextCheck = 3, 0
	assert.True(t, ComparePosition(a, b, Vec2{}))

	a, b = standingsPair(t)
	a.NextCheck, b.NextCheck = 0, 3
	assert.False(t, ComparePosition(a, b, Vec2{}))
}

func TestComparePositionByDistance(t *testing.T) {
	a, b := standingsPair(t)
	target := Vec2{0, 100}
	a.Pos, b.Pos = Vec2{0, 90}, Vec2{0, 50}
	assert.True(t, ComparePosition(a, b, target))

	a, b = standingsPair(t)
	a.Pos, b.Pos = Vec2{0, 10}, Vec2{0, 50}
	assert.False(t, ComparePosition(a, b, target))
}

func TestUpdateStandingsIsPermutation(t *testing.T) {
	r := newTestRace(t, 5)
	rng := NewRand(99)
	for round := 0; round < 50; round++ {
		for _, c := range r.Cars {
			c.Lap = 1 + rng.Intn(3)
			c.NextCheck = rng.Intn(len(r.Track.Checkpoints))
			c.Pos = Vec2{rng.RangeF(-100, 100), rng.RangeF(-100, 100)}
		}
		UpdateStandings(r.Cars, r.Track.Checkpoints)

		pos := make([]int, 0, len(r.Cars))
		for _, c := range r.Cars {
			pos = append(pos, c.RacePos)
		}
		sort.Ints(pos)
		for i, p := range pos {
			require.Equal(t, i+1, p)
		}
	}
}

func TestUpdateStandingsLeaderFirst(t *testing.T) {
	r := newTestRace(t, 5)
	for _, c := range r.Cars {
		c.Lap = 1
	}
	leader := r.Cars[len(r.Cars)-1]
	leader.Lap = 2
	for i := 0; i < len(r.Cars); i++ {
		UpdateStandings(r.Cars, r.Track.Checkpoints)
	}
	assert.Equal(t, 1, leader.RacePos)
}
