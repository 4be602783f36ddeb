package race

// Checkpoint is a gate on the course. The narrow box detects exact
// crossings; the wide box is a lenient target for AI drivers.
type Checkpoint struct {
	Index  int
	Pos    Vec2
	Rot    float64
	Narrow Box
	Wide   Box

	CrossVisible bool
	crossTimer   float64
	crossTime    float64
}

// alongX reports whether a gate at rotation r spans the X axis.
func alongX(r float64) bool { return r == 0 || r == 180 }

func NewCheckpoint(index int, pos Vec2, rot float64, ct CheckpointTuning) *Checkpoint {
	inner := ct.Length - ct.StrutRadius*2
	wide := ct.Length * ct.WideMult
	c := &Checkpoint{Index: index, Pos: pos, Rot: rot, crossTime: ct.CrossTime}
	if alongX(rot) {
		c.Narrow = NewBox(pos.X, pos.Z, inner, ct.Width)
		c.Wide = NewBox(pos.X, pos.Z, wide, ct.Width)
	} else {
		c.Narrow = NewBox(pos.X, pos.Z, ct.Width, inner)
		c.Wide = NewBox(pos.X, pos.Z, ct.Width, wide)
	}
	return c
}

// Struts returns the two posts at either end of the gate.
func (c *Checkpoint) Struts(ct CheckpointTuning) [2]Sphere {
	off := ct.Length - ct.StrutRadius
	if alongX(c.Rot) {
		return [2]Sphere{
			NewSphere(c.Pos.X-off, c.Pos.Z, ct.StrutRadius),
			NewSphere(c.Pos.X+off, c.Pos.Z, ct.StrutRadius),
		}
	}
	return [2]Sphere{
		NewSphere(c.Pos.X, c.Pos.Z-off, ct.StrutRadius),
		NewSphere(c.Pos.X, c.Pos.Z+off, ct.StrutRadius),
	}
}

// Crossed tests a body against the narrow box, or the wide one for AI.
func (c *Checkpoint) Crossed(b Body, wide bool) bool {
	if wide {
		return c.Wide.Collision(b) != AxisNone
	}
	return c.Narrow.Collision(b) != AxisNone
}

func (c *Checkpoint) ShowCross() {
	c.CrossVisible = true
	c.crossTimer = c.crossTime
}

func (c *Checkpoint) HideCross() {
	c.CrossVisible = false
}

// Update counts down the cross marker and hides it on expiry.
func (c *Checkpoint) Update(dt float64) {
	if c.crossTimer > 0 {
		c.crossTimer -= dt
		if c.crossTimer <= 0 {
			c.HideCross()
		}
	}
}

// StartSlots returns the grid slots behind a start gate, one per offset,
// and the heading that faces through it.
func StartSlots(c *Checkpoint, track TrackTuning) ([]Vec2, float64) {
	d := track.StartDistance
	slots := make([]Vec2, len(track.StartOffsets))
	for i, o := range track.StartOffsets {
		switch c.Rot {
		case 0:
			slots[i] = Vec2{c.Pos.X + o, c.Pos.Z + d}
		case 180:
			slots[i] = Vec2{c.Pos.X + o, c.Pos.Z - d}
		case 90:
			slots[i] = Vec2{c.Pos.X + d, c.Pos.Z + o}
		default:
			slots[i] = Vec2{c.Pos.X - d, c.Pos.Z + o}
		}
	}
	return slots, c.Rot
}
