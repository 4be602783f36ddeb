package race

import "math"

// ObstacleID identifies a static obstacle across the whole grid.
type ObstacleID int

// NoObstacle is the empty collision guard.
const NoObstacle ObstacleID = -1

type BoxObstacle struct {
	ID ObstacleID
	Box
}

type SphereObstacle struct {
	ID ObstacleID
	Sphere
}

type ZoneKind uint8

const (
	ZoneSlow ZoneKind = iota
	ZoneFast
	ZoneFire
)

type Zone struct {
	Kind ZoneKind
	Sphere
}

// Cell owns the obstacles and zones registered at its position.
type Cell struct {
	Boxes   []BoxObstacle
	Spheres []SphereObstacle
	Slow    []Sphere
	Fast    []Sphere
	Fire    []Sphere
}

// Grid is a uniform partition of the terrain. Objects are stored in the cell
// that holds their registration point; queries scan a 3x3 neighbourhood.
type Grid struct {
	cfg   GridTuning
	n     int
	cells []Cell

	nextID  ObstacleID
	boxes   []BoxObstacle
	spheres []SphereObstacle
	zones   []Zone
}

func NewGrid(cfg GridTuning) *Grid {
	n := cfg.Squares()
	return &Grid{cfg: cfg, n: n, cells: make([]Cell, n*n)}
}

// Size is the number of cells along one side.
func (g *Grid) Size() int { return g.n }

// Coord maps a world position to cell indices. The result may lie outside
// the grid; Cell returns nil for such indices.
func (g *Grid) Coord(p Vec2) (int, int) {
	half := g.cfg.TerrainSize / 2
	return int(math.Floor((p.X + half) / g.cfg.CellSize)), int(math.Floor((p.Z + half) / g.cfg.CellSize))
}

func (g *Grid) Cell(x, z int) *Cell {
	if x < 0 || z < 0 || x >= g.n || z >= g.n {
		return nil
	}
	return &g.cells[x*g.n+z]
}

func (g *Grid) CellAt(p Vec2) *Cell {
	return g.Cell(g.Coord(p))
}

// Neighbours visits the 3x3 block around (x, z), clamped to the grid.
func (g *Grid) Neighbours(x, z int, fn func(c *Cell, cx, cz int)) {
	for cx := max(x-1, 0); cx <= min(x+1, g.n-1); cx++ {
		for cz := max(z-1, 0); cz <= min(z+1, g.n-1); cz++ {
			fn(&g.cells[cx*g.n+cz], cx, cz)
		}
	}
}

// AddBox registers b in the cell containing at. Registrations outside the
// grid are dropped and return NoObstacle.
func (g *Grid) AddBox(at Vec2, b Box) ObstacleID {
	return g.addBoxToCell(g.CellAt(at), b)
}

func (g *Grid) addBoxToCell(c *Cell, b Box) ObstacleID {
	if c == nil {
		return NoObstacle
	}
	o := BoxObstacle{ID: g.nextID, Box: b}
	g.nextID++
	c.Boxes = append(c.Boxes, o)
	g.boxes = append(g.boxes, o)
	return o.ID
}

func (g *Grid) AddSphere(at Vec2, s Sphere) ObstacleID {
	c := g.CellAt(at)
	if c == nil {
		return NoObstacle
	}
	o := SphereObstacle{ID: g.nextID, Sphere: s}
	g.nextID++
	c.Spheres = append(c.Spheres, o)
	g.spheres = append(g.spheres, o)
	return o.ID
}

func (g *Grid) AddZone(kind ZoneKind, s Sphere) bool {
	c := g.CellAt(s.Center)
	if c == nil {
		return false
	}
	switch kind {
	case ZoneSlow:
		c.Slow = append(c.Slow, s)
	case ZoneFast:
		c.Fast = append(c.Fast, s)
	case ZoneFire:
		c.Fire = append(c.Fire, s)
	}
	g.zones = append(g.zones, Zone{Kind: kind, Sphere: s})
	return true
}

// AddWorldEdges fences the terrain with zero-thickness walls along the
// second ring of cells, so a car can never leave the grid.
func (g *Grid) AddWorldEdges() {
	e := g.cfg.WorldEdge
	last := g.n - 2
	if last < 1 {
		return
	}
	for i := 1; i <= last; i++ {
		g.addBoxToCell(g.Cell(1, i), NewBox(-e, 0, 0, e))
		g.addBoxToCell(g.Cell(last, i), NewBox(e, 0, 0, e))
		g.addBoxToCell(g.Cell(i, 1), NewBox(0, -e, e, 0))
		g.addBoxToCell(g.Cell(i, last), NewBox(0, e, e, 0))
	}
}

// Boxes lists every registered box obstacle.
func (g *Grid) Boxes() []BoxObstacle { return g.boxes }

func (g *Grid) Spheres() []SphereObstacle { return g.spheres }

func (g *Grid) Zones() []Zone { return g.zones }
