package scene

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

// Lerp blends towards o by t in [0,1].
func (c RGB) Lerp(o RGB, t float64) RGB {
	t = clampF(t, 0, 1)
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5) }
	return RGB{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B)}
}

// Floats returns the channels normalised to [0,1].
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

var Palette = struct {
	Ground     RGB
	Wall       RGB
	Obstacle   RGB
	Prop       RGB
	Gate       RGB
	GateNext   RGB
	GateCross  RGB
	Strut      RGB
	SlowZone   RGB
	FastZone   RGB
	FireZone   RGB
	Bomb       RGB
	BombArmed  RGB
	Player     RGB
	Dead       RGB
	Smoke      RGB
	Exhaust    RGB
	FireHot    RGB
	FireMid    RGB
	FireCool   RGB
	BarEmpty   RGB
	Text       RGB
	TextWarn   RGB
	TextGood   RGB
	TextShadow RGB
}{
	Ground:     RGB{R: 58, G: 84, B: 66},
	Wall:       RGB{R: 104, G: 108, B: 112},
	Obstacle:   RGB{R: 153, G: 144, B: 133},
	Prop:       RGB{R: 90, G: 120, B: 65},
	Gate:       RGB{R: 214, G: 190, B: 153},
	GateNext:   RGB{R: 255, G: 220, B: 80},
	GateCross:  RGB{R: 100, G: 255, B: 100},
	Strut:      RGB{R: 60, G: 66, B: 79},
	SlowZone:   RGB{R: 60, G: 140, B: 255},
	FastZone:   RGB{R: 120, G: 255, B: 120},
	FireZone:   RGB{R: 255, G: 150, B: 70},
	Bomb:       RGB{R: 40, G: 40, B: 40},
	BombArmed:  RGB{R: 255, G: 60, B: 40},
	Player:     RGB{R: 240, G: 240, B: 250},
	Dead:       RGB{R: 50, G: 50, B: 50},
	Smoke:      RGB{R: 120, G: 120, B: 125},
	Exhaust:    RGB{R: 140, G: 200, B: 255},
	FireHot:    RGB{R: 255, G: 210, B: 110},
	FireMid:    RGB{R: 255, G: 150, B: 70},
	FireCool:   RGB{R: 190, G: 70, B: 45},
	BarEmpty:   RGB{R: 40, G: 40, B: 40},
	Text:       RGB{R: 255, G: 255, B: 255},
	TextWarn:   RGB{R: 255, G: 80, B: 80},
	TextGood:   RGB{R: 100, G: 255, B: 100},
	TextShadow: RGB{R: 0, G: 0, B: 0},
}

// CarColors tints AI cars by index; the player uses Palette.Player.
var CarColors = []RGB{
	{R: 230, G: 70, B: 60},
	{R: 70, G: 120, B: 230},
	{R: 240, G: 200, B: 60},
	{R: 180, G: 90, B: 220},
	{R: 60, G: 200, B: 190},
}

// BoostColors are the HUD boost bar colours, from full to empty.
var BoostColors = [...]RGB{
	{R: 80, G: 220, B: 255},
	{R: 100, G: 255, B: 100},
	{R: 255, G: 255, B: 100},
	{R: 255, G: 150, B: 70},
	{R: 255, G: 60, B: 40},
}

// HealthBarColor goes from green at full health to red when nearly dead.
func HealthBarColor(frac float64) RGB {
	frac = clampF(frac, 0, 1)
	if frac > 0.5 {
		return RGB{R: 255, G: 220, B: 60}.Lerp(RGB{R: 80, G: 220, B: 80}, (frac-0.5)*2)
	}
	return RGB{R: 230, G: 40, B: 40}.Lerp(RGB{R: 255, G: 220, B: 60}, frac*2)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
