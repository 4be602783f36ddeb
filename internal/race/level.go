package race

import (
	"errors"
	"fmt"
)

// ErrIncompleteTrack is returned when a level lacks checkpoints or a path.
var ErrIncompleteTrack = errors.New("incomplete track")

// Record is one parsed level entry: a type token, a ground position and a
// rotation in degrees.
type Record struct {
	Type string
	X, Z float64
	R    float64
}

// Prop is a placed visual instance. Solid props also registered obstacles.
type Prop struct {
	Type  string
	Pos   Vec2
	Rot   float64
	Scale float64
	Solid bool
}

// Track is a built level: the collision grid plus every entity the race
// director updates.
type Track struct {
	Grid        *Grid
	Checkpoints []*Checkpoint
	Bombs       []*Bomb
	Fires       []Effect
	Lanes       [][]Vec2
	Starts      []Vec2
	StartYaw    float64
	Props       []Prop
	Skipped     int
}

type recipe func(b *trackBuilder, r Record)

var recipes = map[string]recipe{
	"Isle":         (*trackBuilder).isle,
	"Isle2":        (*trackBuilder).isle,
	"Wall":         (*trackBuilder).wall,
	"Checkpoint":   (*trackBuilder).checkpoint,
	"Hills":        (*trackBuilder).decor,
	"Walkway":      (*trackBuilder).decor,
	"Smallestbush": (*trackBuilder).bush,
	"Smallbush":    (*trackBuilder).bush,
	"Bush":         (*trackBuilder).bush,
	"Bigbush":      (*trackBuilder).bush,
	"Tank1":        (*trackBuilder).tank,
	"Tank2":        (*trackBuilder).burningTank,
	"Skyscraper":   (*trackBuilder).skyscraper,
	"Skyscraper2":  (*trackBuilder).skyscraper2,
	"Building":     (*trackBuilder).building,
	"Tribune":      (*trackBuilder).tribune,
	"Waypoint":     (*trackBuilder).waypoint,
	"Waypoint2":    (*trackBuilder).waypoint,
	"Slow":         (*trackBuilder).zone,
	"Fast":         (*trackBuilder).zone,
	"Bomb":         (*trackBuilder).bomb,
}

var bushSizes = map[string]int{"Smallestbush": 0, "Smallbush": 1, "Bush": 2, "Bigbush": 3}

// KnownRecord reports whether typ has a construction recipe.
func KnownRecord(typ string) bool {
	_, ok := recipes[typ]
	return ok
}

type trackBuilder struct {
	t   *Tuning
	rng *Rand
	tr  *Track
}

// BuildTrack registers every record into a new grid. Unknown record types
// are skipped and counted.
func BuildTrack(records []Record, t *Tuning, rng *Rand) (*Track, error) {
	b := &trackBuilder{
		t:   t,
		rng: rng,
		tr: &Track{
			Grid:  NewGrid(t.Grid),
			Lanes: make([][]Vec2, 2),
		},
	}
	for _, r := range records {
		fn, ok := recipes[r.Type]
		if !ok {
			b.tr.Skipped++
			continue
		}
		fn(b, r)
	}
	b.tr.Grid.AddWorldEdges()

	tr := b.tr
	if len(tr.Checkpoints) == 0 {
		return nil, fmt.Errorf("%w: no checkpoints", ErrIncompleteTrack)
	}
	if len(tr.Lanes[0]) == 0 && len(tr.Lanes[1]) == 0 {
		return nil, fmt.Errorf("%w: no waypoints", ErrIncompleteTrack)
	}
	// A single-lane track drives both lanes along the same path.
	if len(tr.Lanes[0]) == 0 {
		tr.Lanes[0] = tr.Lanes[1]
	} else if len(tr.Lanes[1]) == 0 {
		tr.Lanes[1] = tr.Lanes[0]
	}
	return tr, nil
}

func (b *trackBuilder) prop(r Record, scale float64, solid bool) {
	b.tr.Props = append(b.tr.Props, Prop{Type: r.Type, Pos: Vec2{r.X, r.Z}, Rot: r.R, Scale: scale, Solid: solid})
}

// box registers a box whose size is given for the unrotated placement.
func (b *trackBuilder) box(at Vec2, x, z float64, size Vec2, rot float64) {
	if alongX(rot) {
		b.tr.Grid.AddBox(at, NewBox(x, z, size.X, size.Z))
		return
	}
	b.tr.Grid.AddBox(at, NewBox(x, z, size.Z, size.X))
}

func (b *trackBuilder) sphere(at Vec2, x, z, radius float64) {
	b.tr.Grid.AddSphere(at, NewSphere(x, z, radius))
}

func (b *trackBuilder) isle(r Record) {
	b.prop(r, 1, true)
	b.box(Vec2{r.X, r.Z}, r.X, r.Z, b.t.Track.Isle, r.R)
}

func (b *trackBuilder) wall(r Record) {
	b.prop(r, 1, true)
	b.box(Vec2{r.X, r.Z}, r.X, r.Z, b.t.Track.Wall, r.R)
}

func (b *trackBuilder) checkpoint(r Record) {
	b.prop(r, 1, true)
	at := Vec2{r.X, r.Z}
	cp := NewCheckpoint(len(b.tr.Checkpoints), at, r.R, b.t.Checkpoint)
	for _, s := range cp.Struts(b.t.Checkpoint) {
		b.tr.Grid.AddSphere(at, s)
	}
	b.tr.Checkpoints = append(b.tr.Checkpoints, cp)
	if len(b.tr.Checkpoints) == 1 {
		b.tr.Starts, b.tr.StartYaw = StartSlots(cp, b.t.Track)
	}
}

func (b *trackBuilder) decor(r Record) {
	b.prop(r, 1, false)
}

func (b *trackBuilder) bush(r Record) {
	scale := 1.0
	if i := bushSizes[r.Type]; i < len(b.t.Track.BushScales) {
		scale = b.t.Track.BushScales[i]
	}
	b.prop(r, scale, false)
}

func (b *trackBuilder) tank(r Record) {
	b.prop(r, 1, true)
	b.sphere(Vec2{r.X, r.Z}, r.X, r.Z, b.t.Track.TankRadius)
}

func (b *trackBuilder) burningTank(r Record) {
	b.tank(r)
	tt := &b.t.Track
	b.tr.Fires = append(b.tr.Fires, NewFire(b.t.Particles, Vec3{r.X, tt.TankFireHeight, r.Z}, b.t.Particles.TankFireRadius, 1, b.rng))
	b.tr.Grid.AddZone(ZoneFire, NewSphere(r.X, r.Z, tt.TankFireZone))
}

// skyscraper is two overlapping boxes shifted off the model origin.
func (b *trackBuilder) skyscraper(r Record) {
	b.prop(r, 1, true)
	tt := &b.t.Track
	at := Vec2{r.X, r.Z}
	shift := tt.SkyscraperShift
	if r.R != 0 && r.R != 90 {
		shift = -shift
	}
	if alongX(r.R) {
		b.box(at, r.X, r.Z+shift, tt.SkyscraperCore, r.R)
		b.box(at, r.X, r.Z+shift, tt.SkyscraperWing, r.R)
		return
	}
	b.box(at, r.X+shift, r.Z, tt.SkyscraperCore, r.R)
	b.box(at, r.X+shift, r.Z, tt.SkyscraperWing, r.R)
}

// skyscraper2 is a box with a rounded end made of two spheres.
func (b *trackBuilder) skyscraper2(r Record) {
	b.prop(r, 1, true)
	tt := &b.t.Track
	at := Vec2{r.X, r.Z}
	rad := tt.Skyscraper2Radius
	end := tt.Skyscraper2Box.X - rad
	b.box(at, r.X, r.Z, tt.Skyscraper2Box, r.R)
	switch r.R {
	case 0:
		b.sphere(at, r.X+end, r.Z+rad, rad)
		b.sphere(at, r.X+end, r.Z-rad, rad)
	case 180:
		b.sphere(at, r.X-end, r.Z+rad, rad)
		b.sphere(at, r.X-end, r.Z-rad, rad)
	case 90:
		b.sphere(at, r.X+rad, r.Z-end, rad)
		b.sphere(at, r.X-rad, r.Z-end, rad)
	case 270:
		b.sphere(at, r.X+rad, r.Z+end, rad)
		b.sphere(at, r.X-rad, r.Z+end, rad)
	}
}

// building is a square block with four corner towers.
func (b *trackBuilder) building(r Record) {
	b.prop(r, 1, true)
	tt := &b.t.Track
	at := Vec2{r.X, r.Z}
	h := tt.BuildingHalf
	b.tr.Grid.AddBox(at, NewBox(r.X, r.Z, h, h))
	for _, i := range []float64{-1, 1} {
		for _, j := range []float64{-1, 1} {
			b.tr.Grid.AddBox(at, NewBox(r.X+i*h-i, r.Z+j*h-j, tt.BuildingCorner, tt.BuildingCorner))
		}
	}
}

func (b *trackBuilder) tribune(r Record) {
	b.prop(r, 1, true)
	b.sphere(Vec2{r.X, r.Z}, r.X, r.Z, b.t.Track.TribuneRadius)
}

func (b *trackBuilder) waypoint(r Record) {
	lane := 0
	if r.Type == "Waypoint2" {
		lane = 1
	}
	b.tr.Lanes[lane] = append(b.tr.Lanes[lane], Vec2{r.X, r.Z})
}

func (b *trackBuilder) zone(r Record) {
	kind := ZoneSlow
	if r.Type == "Fast" {
		kind = ZoneFast
	}
	b.tr.Grid.AddZone(kind, NewSphere(r.X, r.Z, b.t.Grid.ZoneRadius))
}

func (b *trackBuilder) bomb(r Record) {
	b.tr.Bombs = append(b.tr.Bombs, NewBomb(Vec2{r.X, r.Z}, r.R, b.t, b.rng))
}
