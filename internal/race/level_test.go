package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTrack(t *testing.T) {
	tune := testTuning()
	tr, err := BuildTrack(loopRecords(), tune, NewRand(1))
	require.NoError(t, err)

	assert.Len(t, tr.Checkpoints, 4)
	for i, cp := range tr.Checkpoints {
		assert.Equal(t, i, cp.Index)
	}
	assert.Len(t, tr.Lanes[0], 5)
	assert.Len(t, tr.Lanes[1], 5)
	assert.Len(t, tr.Bombs, 1)
	assert.Len(t, tr.Fires, 1)
	assert.Len(t, tr.Starts, 4)
	assert.Equal(t, 0.0, tr.StartYaw)
	assert.Zero(t, tr.Skipped)

	// Two struts per gate plus the tank.
	assert.Len(t, tr.Grid.Spheres(), 9)
	// The wall plus the world edges.
	assert.Len(t, tr.Grid.Boxes(), 1+4*48)
	assert.Len(t, tr.Grid.Zones(), 3)

	wall := tr.Grid.CellAt(Vec2{20, 120})
	require.Len(t, wall.Boxes, 1)
	assert.InDelta(t, 19.1, wall.Boxes[0].XStart, 1e-9)
	assert.InDelta(t, 124.8, wall.Boxes[0].ZEnd, 1e-9)
}

func TestBuildTrackSkipsUnknown(t *testing.T) {
	recs := append(loopRecords(), Record{Type: "Windmill", X: 1, Z: 1})
	tr, err := BuildTrack(recs, testTuning(), NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Skipped)
	assert.False(t, KnownRecord("Windmill"))
	assert.True(t, KnownRecord("Skyscraper2"))
}

func TestBuildTrackIncomplete(t *testing.T) {
	_, err := BuildTrack([]Record{{Type: "Waypoint", X: 1, Z: 1}}, testTuning(), NewRand(1))
	assert.ErrorIs(t, err, ErrIncompleteTrack)

	_, err = BuildTrack([]Record{{Type: "Checkpoint"}}, testTuning(), NewRand(1))
	assert.ErrorIs(t, err, ErrIncompleteTrack)
}

func TestBuildTrackSingleLane(t *testing.T) {
	recs := []Record{
		{Type: "Checkpoint"},
		{Type: "Waypoint2", X: 0, Z: 50},
		{Type: "Waypoint2", X: 0, Z: -50},
	}
	tr, err := BuildTrack(recs, testTuning(), NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, tr.Lanes[1], tr.Lanes[0])
}

func TestSkyscraperShift(t *testing.T) {
	build := func(rot float64) *Track {
		recs := []Record{{Type: "Checkpoint"}, {Type: "Waypoint"}, {Type: "Skyscraper", X: 100, Z: 100, R: rot}}
		tr, err := BuildTrack(recs, testTuning(), NewRand(1))
		require.NoError(t, err)
		return tr
	}
	boxes := build(0).Grid.CellAt(Vec2{100, 100}).Boxes
	require.Len(t, boxes, 2)
	assert.Equal(t, Vec2{100, 98}, boxes[0].Center())
	assert.Equal(t, Vec2{11, 7}, boxes[0].HalfSize())

	boxes = build(180).Grid.CellAt(Vec2{100, 100}).Boxes
	assert.Equal(t, Vec2{100, 102}, boxes[0].Center())

	boxes = build(90).Grid.CellAt(Vec2{100, 100}).Boxes
	assert.Equal(t, Vec2{98, 100}, boxes[0].Center())
	assert.Equal(t, Vec2{7, 11}, boxes[0].HalfSize())
}

func TestBuildingHasCornerTowers(t *testing.T) {
	recs := []Record{{Type: "Checkpoint"}, {Type: "Waypoint"}, {Type: "Building", X: 300, Z: 300}}
	tr, err := BuildTrack(recs, testTuning(), NewRand(1))
	require.NoError(t, err)
	assert.Len(t, tr.Grid.CellAt(Vec2{300, 300}).Boxes, 5)
	assert.Len(t, tr.Props, 2)
}
