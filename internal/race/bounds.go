package race

// Axis names the direction a box collision was entered from.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisZ
	AxisBoth
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	case AxisBoth:
		return "both"
	}
	return "none"
}

// Body is the collision footprint of a moving object: a square of half
// size R around Pos, with the position it held before the last move.
type Body struct {
	Pos, Prev Vec2
	R         float64
}

// Box is an axis-aligned rectangle on the ground plane.
type Box struct {
	XStart, XEnd float64
	ZStart, ZEnd float64
}

func NewBox(x, z, halfWidth, halfLength float64) Box {
	return Box{
		XStart: x - halfWidth,
		XEnd:   x + halfWidth,
		ZStart: z - halfLength,
		ZEnd:   z + halfLength,
	}
}

func (b Box) overlapsX(x, r float64) bool { return x+r > b.XStart && x-r < b.XEnd }
func (b Box) overlapsZ(z, r float64) bool { return z+r > b.ZStart && z-r < b.ZEnd }

// Contains reports whether a body footprint overlaps the box.
func (b Box) Contains(pos Vec2, r float64) bool {
	return b.overlapsX(pos.X, r) && b.overlapsZ(pos.Z, r)
}

// Collision returns AxisNone when the body does not overlap the box. Otherwise
// the axis is chosen from the previous position: if it already overlapped on
// X the body came in along Z, and the other way round; a diagonal entry
// reports both.
func (b Box) Collision(body Body) Axis {
	if !b.Contains(body.Pos, body.R) {
		return AxisNone
	}
	px := b.overlapsX(body.Prev.X, body.R)
	pz := b.overlapsZ(body.Prev.Z, body.R)
	switch {
	case px && !pz:
		return AxisZ
	case pz && !px:
		return AxisX
	}
	return AxisBoth
}

func (b Box) Center() Vec2 {
	return Vec2{(b.XStart + b.XEnd) / 2, (b.ZStart + b.ZEnd) / 2}
}

func (b Box) HalfSize() Vec2 {
	return Vec2{(b.XEnd - b.XStart) / 2, (b.ZEnd - b.ZStart) / 2}
}

// Sphere is a circle on the ground plane. R2 holds the squared radius.
type Sphere struct {
	Center Vec2
	R2     float64
}

func NewSphere(x, z, radius float64) Sphere {
	return Sphere{Center: Vec2{x, z}, R2: radius * radius}
}

// Collision compares the squared centre distance against the sum of the
// squared radii.
func (s Sphere) Collision(pos Vec2, r float64) bool {
	return pos.Sub(s.Center).Length()-s.R2-r*r < 0
}
