package scene

import (
	"math"

	"hoverrace/internal/race"
)

type Mode int

const (
	ModeChase Mode = iota + 1
	ModeClose
	ModeFree
)

func (m Mode) String() string {
	switch m {
	case ModeChase:
		return "chase"
	case ModeClose:
		return "close"
	case ModeFree:
		return "free"
	}
	return "unknown"
}

const (
	ChaseZoom  = 3.0
	CloseZoom  = 6.0
	FreeZoom   = 1.5
	MinZoom    = 0.5
	MaxZoom    = 12.0
	lookAhead  = 18.0
	followRate = 6.0
	panSpeed   = 240.0 // screen pixels per second
	// ShakeIntensity is the peak offset in world units while a bomb hits
	// the player.
	ShakeIntensity = 2.5
)

// Camera is a top-down view centred on (X, Y) in screen-plane world units
// (see Ground). Zoom is screen pixels per world unit.
type Camera struct {
	X, Y float64
	Zoom float64
	Mode Mode

	ShakeX, ShakeY float64
	ShakeTimer     float64
	ShakeIntensity float64

	rng *race.Rand
}

func NewCamera(seed uint64) *Camera {
	return &Camera{Zoom: ChaseZoom, Mode: ModeChase, rng: race.NewRand(seed ^ 0xCA3E)}
}

// SetMode switches view and resets the zoom to the mode's default.
func (c *Camera) SetMode(m Mode) {
	if m == c.Mode {
		return
	}
	c.Mode = m
	switch m {
	case ModeChase:
		c.Zoom = ChaseZoom
	case ModeClose:
		c.Zoom = CloseZoom
	case ModeFree:
		c.Zoom = FreeZoom
	}
}

// Snap centres the camera on p immediately.
func (c *Camera) Snap(p race.Vec2) {
	c.X, c.Y = Ground(p)
}

// Follow eases towards the car. Chase looks ahead along the car's facing;
// the free camera ignores the car.
func (c *Camera) Follow(car *race.Car, dt float64) {
	var tx, ty float64
	switch c.Mode {
	case ModeChase:
		tx, ty = Ground(car.Pos.Add(car.Facing.Scale(lookAhead)))
	case ModeClose:
		tx, ty = Ground(car.Pos)
	default:
		return
	}
	k := math.Min(1, dt*followRate)
	c.X += (tx - c.X) * k
	c.Y += (ty - c.Y) * k
}

// Pan moves the free camera by a screen direction.
func (c *Camera) Pan(dx, dy, dt float64) {
	if c.Mode != ModeFree {
		return
	}
	c.X += dx * panSpeed * dt / c.Zoom
	c.Y += dy * panSpeed * dt / c.Zoom
}

// ZoomBy scales the zoom exponentially; dir is +1 to zoom in.
func (c *Camera) ZoomBy(dir, dt float64) {
	c.Zoom = clampF(c.Zoom*math.Exp(1.4*dir*dt), MinZoom, MaxZoom)
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and picks a new random offset.
func (c *Camera) UpdateShake(dt float64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX, c.ShakeY, c.ShakeIntensity = 0, 0, 0
		return
	}
	c.ShakeTimer = math.Max(c.ShakeTimer-dt, 0)
	t := c.ShakeTimer
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = c.rng.RangeF(-mag, mag)
	c.ShakeY = c.rng.RangeF(-mag, mag)
}

// EffectivePos returns camera position with shake applied.
func (c *Camera) EffectivePos() (float64, float64) {
	return c.X + c.ShakeX, c.Y + c.ShakeY
}

// ToScreen maps a ground point to framebuffer pixels.
func (c *Camera) ToScreen(p race.Vec2, fbW, fbH int) (float64, float64) {
	x, y := Ground(p)
	cx, cy := c.EffectivePos()
	return (x-cx)*c.Zoom + float64(fbW)/2, (y-cy)*c.Zoom + float64(fbH)/2
}

// Ground maps a track point to the screen plane: +Z is up on screen.
func Ground(p race.Vec2) (float64, float64) { return p.X, -p.Z }
