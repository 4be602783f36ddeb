package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCoord(t *testing.T) {
	g := NewGrid(DefaultTuning().Grid)
	require.Equal(t, 50, g.Size())

	x, z := g.Coord(Vec2{0, 0})
	assert.Equal(t, 25, x)
	assert.Equal(t, 25, z)

	x, z = g.Coord(Vec2{-1000, 999.9})
	assert.Equal(t, 0, x)
	assert.Equal(t, 49, z)

	x, z = g.Coord(Vec2{-1001, 1000})
	assert.Equal(t, -1, x)
	assert.Equal(t, 50, z)
	assert.Nil(t, g.Cell(x, z))
	assert.Nil(t, g.CellAt(Vec2{5000, 0}))
	assert.NotNil(t, g.CellAt(Vec2{0, 0}))
}

func TestGridNeighboursClamped(t *testing.T) {
	g := NewGrid(DefaultTuning().Grid)
	count := func(x, z int) int {
		n := 0
		g.Neighbours(x, z, func(*Cell, int, int) { n++ })
		return n
	}
	assert.Equal(t, 9, count(10, 10))
	assert.Equal(t, 4, count(0, 0))
	assert.Equal(t, 6, count(49, 20))
	assert.Equal(t, 0, count(-5, -5))
}

func TestGridRegistration(t *testing.T) {
	g := NewGrid(DefaultTuning().Grid)
	a := g.AddBox(Vec2{10, 10}, NewBox(10, 10, 1, 1))
	b := g.AddSphere(Vec2{10, 10}, NewSphere(12, 10, 1))
	assert.NotEqual(t, a, b)
	assert.Equal(t, NoObstacle, g.AddBox(Vec2{5000, 0}, NewBox(5000, 0, 1, 1)))

	cell := g.CellAt(Vec2{10, 10})
	require.Len(t, cell.Boxes, 1)
	require.Len(t, cell.Spheres, 1)
	assert.Equal(t, a, cell.Boxes[0].ID)
	assert.Equal(t, b, cell.Spheres[0].ID)

	assert.True(t, g.AddZone(ZoneFire, NewSphere(10, 10, 2)))
	assert.True(t, g.AddZone(ZoneSlow, NewSphere(10, 10, 3)))
	assert.False(t, g.AddZone(ZoneFast, NewSphere(-3000, 0, 3)))
	assert.Len(t, cell.Fire, 1)
	assert.Len(t, cell.Slow, 1)
	assert.Len(t, g.Zones(), 2)
}

func TestGridWorldEdgesStopCars(t *testing.T) {
	g := NewGrid(DefaultTuning().Grid)
	g.AddWorldEdges()
	assert.Len(t, g.Boxes(), 4*48)

	// A car driving out past the western edge hits the wall in a nearby cell.
	body := Body{Pos: Vec2{-999.5, 100}, Prev: Vec2{-997, 100}, R: 1.12}
	x, z := g.Coord(body.Pos)
	hit := AxisNone
	g.Neighbours(x, z, func(c *Cell, _, _ int) {
		for _, b := range c.Boxes {
			if a := b.Collision(body); a != AxisNone {
				hit = a
			}
		}
	})
	assert.Equal(t, AxisX, hit)
}
