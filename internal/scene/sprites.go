// Package scene turns race state into flat draw lists: point sprites,
// axis-aligned rectangles and HUD text. It has no GL dependency, so the
// desktop renderer only uploads what is built here.
package scene

import (
	"math"

	"hoverrace/internal/race"
)

// Stride is the float count of one sprite: x, y, size, r, g, b, a, rotation.
const Stride = 8

const (
	carScale     = 2.6
	heightSkew   = 0.35
	barWidth     = 5
	barPixel     = 1.2
	bombSize     = 3.0
	propSize     = 3.0
	blinkPerSec  = 4.0
	burnTint     = 0.4
	particleSize = 1.4
)

// Sprites is a point sprite buffer in the layout the sprite shaders read.
type Sprites []float32

func (s *Sprites) Add(x, y, size float64, c RGB, a, rot float64) {
	r, g, b := c.Floats()
	*s = append(*s, float32(x), float32(y), float32(size), r, g, b, float32(a), float32(rot))
}

func (s *Sprites) Reset() { *s = (*s)[:0] }

func (s Sprites) Len() int { return len(s) / Stride }

// Rect is a filled rectangle centred on (X, Y) in the screen plane.
type Rect struct {
	X, Y, W, H float64
	Col        RGB
	A          float64
}

func boxRect(b race.Box, col RGB, a float64) Rect {
	x, y := Ground(b.Center())
	return Rect{X: x, Y: y, W: b.XEnd - b.XStart, H: b.ZEnd - b.ZStart, Col: col, A: a}
}

func sphereSize(s race.Sphere) float64 { return 2 * math.Sqrt(s.R2) }

// Static holds the parts of a track that never move.
type Static struct {
	Walls   []Rect
	Solids  Sprites
	Props   Sprites
	Zones   Sprites // drawn with the glow program
	Extents Rect
}

// BuildStatic collects every obstacle, zone and decorative prop of tr.
func BuildStatic(tr *race.Track) *Static {
	st := &Static{}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, b := range tr.Grid.Boxes() {
		r := boxRect(b.Box, Palette.Wall, 1)
		st.Walls = append(st.Walls, r)
		grow(r.X, r.Y)
	}
	for _, s := range tr.Grid.Spheres() {
		x, y := Ground(s.Center)
		st.Solids.Add(x, y, sphereSize(s.Sphere), Palette.Obstacle, 1, 0)
	}
	for _, z := range tr.Grid.Zones() {
		col := Palette.SlowZone
		switch z.Kind {
		case race.ZoneFast:
			col = Palette.FastZone
		case race.ZoneFire:
			col = Palette.FireZone
		}
		x, y := Ground(z.Center)
		st.Zones.Add(x, y, sphereSize(z.Sphere), col.Mul(110), 1, 0)
	}
	for _, p := range tr.Props {
		if p.Solid {
			continue
		}
		x, y := Ground(p.Pos)
		st.Props.Add(x, y, propSize*p.Scale, Palette.Prop, 0.9, 0)
	}
	if minX <= maxX {
		st.Extents = Rect{X: (minX + maxX) / 2, Y: (minY + maxY) / 2, W: maxX - minX, H: maxY - minY}
	}
	return st
}

// Gates returns the checkpoint bars and their struts. The gate the player
// must pass next is highlighted, recently crossed gates flash.
func Gates(dst *Sprites, cps []*race.Checkpoint, next int, ct race.CheckpointTuning) []Rect {
	rects := make([]Rect, 0, len(cps))
	for _, cp := range cps {
		col := Palette.Gate
		switch {
		case cp.CrossVisible:
			col = Palette.GateCross
		case cp.Index == next:
			col = Palette.GateNext
		}
		rects = append(rects, boxRect(cp.Narrow, col, 0.8))
		for _, s := range cp.Struts(ct) {
			x, y := Ground(s.Center)
			dst.Add(x, y, sphereSize(s), Palette.Strut, 1, 0)
		}
	}
	return rects
}

// CarColor is the body colour of a car.
func CarColor(c *race.Car) RGB {
	if c.Health.Current <= 0 {
		return Palette.Dead
	}
	col := Palette.Player
	if c.AI {
		col = CarColors[(int(c.ID)-1+len(CarColors))%len(CarColors)]
	}
	if c.BurnTimer > 0 {
		col = col.Lerp(Palette.FireMid, burnTint)
	}
	return col
}

// CarRotation is the screen-space heading of a facing vector. Screen y
// points down, so forward on the track (+Z) is -pi/2.
func CarRotation(facing race.Vec2) float64 { return math.Atan2(-facing.Z, facing.X) }

func Cars(dst *Sprites, cars []*race.Car, radius float64) {
	for _, c := range cars {
		x, y := Ground(c.Pos)
		dst.Add(x, y, radius*carScale, CarColor(c), 1, CarRotation(c.Facing))
	}
}

// HealthBars draws a small bar above every damaged car that is still alive.
func HealthBars(dst *Sprites, cars []*race.Car, radius float64) {
	for _, c := range cars {
		frac := c.Health.Fraction()
		if frac >= 1 || frac <= 0 {
			continue
		}
		col := HealthBarColor(frac)
		x, y := Ground(c.Pos)
		bx := x - barWidth*barPixel*0.5
		by := y - radius*carScale
		filled := max(int(barWidth*frac), 1)
		for px := 0; px < barWidth; px++ {
			cc := Palette.BarEmpty
			if px < filled {
				cc = col
			}
			dst.Add(bx+float64(px)*barPixel, by, barPixel, cc, 0.9, 0)
		}
	}
}

// Bombs draws armed bombs with a blinking light. Exploding bombs are drawn
// by their particles.
func Bombs(dst *Sprites, bombs []*race.Bomb, elapsed float64) {
	lit := int(elapsed*blinkPerSec)%2 == 0
	for _, b := range bombs {
		if b.State != race.BombActive {
			continue
		}
		x, y := Ground(b.Pos)
		dst.Add(x, y, bombSize, Palette.Bomb, 1, 0)
		if lit {
			dst.Add(x, y, bombSize*0.4, Palette.BombArmed, 1, 0)
		}
	}
}

// ParticleColor fades each kind over its lifetime.
func ParticleColor(p *race.Particle) (RGB, float64) {
	f := p.Fraction()
	switch p.Kind {
	case race.ParticleFire, race.ParticleExplosion:
		if f < 0.5 {
			return Palette.FireHot.Lerp(Palette.FireMid, f*2), 1 - f*0.5
		}
		return Palette.FireMid.Lerp(Palette.FireCool, (f-0.5)*2), 1 - f
	case race.ParticleFireCore:
		return Palette.FireHot, 1 - f
	case race.ParticleExhaust:
		return Palette.Exhaust, 0.8 * (1 - f)
	}
	return Palette.Smoke, 0.6 * (1 - f)
}

func particleScale(k race.ParticleKind, f float64) float64 {
	switch k {
	case race.ParticleSmoke:
		return 1 + f
	case race.ParticleExplosion:
		return 1.6 - f
	case race.ParticleExhaust:
		return 0.6
	}
	return 1 - f*0.5
}

// Particles draws the visible particles of every effect. Height lifts a
// particle up the screen.
func Particles(dst *Sprites, effects ...race.Effect) {
	for _, fx := range effects {
		fx.Each(func(p *race.Particle) {
			col, a := ParticleColor(p)
			if a <= 0 {
				return
			}
			dst.Add(p.Pos.X, -p.Pos.Z-p.Pos.Y*heightSkew, particleSize*particleScale(p.Kind, p.Fraction()), col, a, 0)
		})
	}
}

// World gathers every effect of the race that can hold particles.
func World(r *race.Race) []race.Effect {
	fx := append([]race.Effect(nil), r.Track.Fires...)
	for _, b := range r.Track.Bombs {
		fx = append(fx, b.Effect)
	}
	for _, c := range r.Cars {
		fx = append(fx, c.Exhaust, c.Smoke, c.Fire)
	}
	return fx
}
