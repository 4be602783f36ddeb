// Package tui draws a race as coloured characters on a terminal.
package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"hoverrace/internal/race"
	"hoverrace/internal/scene"
)

const (
	// cellAspect is the height of a terminal cell in cell widths.
	cellAspect = 2.0
	// zoomScale converts camera zoom (pixels per unit) to columns per unit.
	zoomScale = 1.0 / 3
)

// View projects the race onto a tcell screen around a scene camera.
type View struct {
	screen tcell.Screen
	cam    *scene.Camera
	static *scene.Static

	w, h int

	gates, bombs, particles, cars scene.Sprites
}

func NewView(screen tcell.Screen, r *race.Race, seed uint64) *View {
	v := &View{
		screen: screen,
		cam:    scene.NewCamera(seed),
		static: scene.BuildStatic(r.Track),
	}
	v.cam.Snap(r.Player().Pos)
	return v
}

func (v *View) Camera() *scene.Camera { return v.cam }

func style(col scene.RGB) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B))).
		Background(groundColor)
}

var groundColor = tcell.NewRGBColor(
	int32(scene.Palette.Ground.R), int32(scene.Palette.Ground.G), int32(scene.Palette.Ground.B))

// cell maps a screen-plane point to a terminal cell.
func (v *View) cell(x, y float64) (int, int) {
	cx, cy := v.cam.EffectivePos()
	z := v.cam.Zoom * zoomScale
	col := int(math.Floor((x-cx)*z + float64(v.w)/2))
	row := int(math.Floor((y-cy)*z/cellAspect + float64(v.h)/2))
	return col, row
}

func (v *View) set(col, row int, ch rune, st tcell.Style) {
	if col < 0 || row < 0 || col >= v.w || row >= v.h {
		return
	}
	v.screen.SetContent(col, row, ch, nil, st)
}

func (v *View) fillRect(r scene.Rect, ch rune) {
	c0, r0 := v.cell(r.X-r.W/2, r.Y-r.H/2)
	c1, r1 := v.cell(r.X+r.W/2, r.Y+r.H/2)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, v.w-1), min(r1, v.h-1)
	st := style(r.Col)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			v.screen.SetContent(col, row, ch, nil, st)
		}
	}
}

func spriteAt(s scene.Sprites, i int) (x, y, size float64, col scene.RGB, rot float64) {
	o := i * scene.Stride
	col = scene.RGB{
		R: uint8(s[o+3]*255 + 0.5),
		G: uint8(s[o+4]*255 + 0.5),
		B: uint8(s[o+5]*255 + 0.5),
	}
	return float64(s[o]), float64(s[o+1]), float64(s[o+2]), col, float64(s[o+7])
}

// dots draws every sprite as one character at its centre.
func (v *View) dots(s scene.Sprites, ch rune) {
	for i := range s.Len() {
		x, y, _, col, _ := spriteAt(s, i)
		c, r := v.cell(x, y)
		v.set(c, r, ch, style(col))
	}
}

// discs fills the cells covered by each sprite's circle.
func (v *View) discs(s scene.Sprites, ch rune) {
	z := v.cam.Zoom * zoomScale
	for i := range s.Len() {
		x, y, size, col, _ := spriteAt(s, i)
		rad := size / 2
		c0, r0 := v.cell(x-rad, y-rad)
		c1, r1 := v.cell(x+rad, y+rad)
		if c0 == c1 && r0 == r1 {
			v.set(c0, r0, ch, style(col))
			continue
		}
		st := style(col)
		cx, cy := v.cam.EffectivePos()
		for row := max(r0, 0); row <= min(r1, v.h-1); row++ {
			for c := max(c0, 0); c <= min(c1, v.w-1); c++ {
				wx := (float64(c)+0.5-float64(v.w)/2)/z + cx
				wy := (float64(row)+0.5-float64(v.h)/2)*cellAspect/z + cy
				if math.Hypot(wx-x, wy-y) <= rad {
					v.screen.SetContent(c, row, ch, nil, st)
				}
			}
		}
	}
}

// headingGlyph picks an arrow for a screen rotation with y pointing down.
func headingGlyph(rot float64) rune {
	arrows := [...]rune{'>', 'v', '<', '^'}
	i := int(math.Round(rot/(math.Pi/2))) & 3
	return arrows[i]
}

// Update advances camera and race by dt and redraws.
func (v *View) Update(r *race.Race, step func(race.Controls), k *Keys, dt float64) {
	switch {
	case k.Pressed(actChase):
		v.cam.SetMode(scene.ModeChase)
	case k.Pressed(actClose):
		v.cam.SetMode(scene.ModeClose)
	case k.Pressed(actFree):
		v.cam.SetMode(scene.ModeFree)
	}
	if k.held(actZoomIn) {
		v.cam.ZoomBy(1, dt)
	}
	if k.held(actZoomOut) {
		v.cam.ZoomBy(-1, dt)
	}

	step(k.Controls())
	k.Tick(dt)

	if r.Shaking() > 0 {
		v.cam.AddShake(scene.ShakeIntensity, r.Shaking())
	}
	v.cam.Follow(r.Player(), dt)
	v.cam.UpdateShake(dt)

	v.Draw(r)
}

// Draw renders one frame of r.
func (v *View) Draw(r *race.Race) {
	v.w, v.h = v.screen.Size()
	v.screen.SetStyle(tcell.StyleDefault.Background(groundColor))
	v.screen.Clear()

	v.discs(v.static.Zones, '░')
	for _, w := range v.static.Walls {
		v.fillRect(w, '#')
	}
	v.discs(v.static.Solids, 'O')
	v.dots(v.static.Props, 'T')

	v.gates.Reset()
	for _, g := range scene.Gates(&v.gates, r.Track.Checkpoints, r.Player().NextCheck, r.Tuning().Checkpoint) {
		v.fillRect(g, '=')
	}
	v.dots(v.gates, 'o')

	v.bombs.Reset()
	scene.Bombs(&v.bombs, r.Track.Bombs, r.Elapsed)
	v.dots(v.bombs, '*')

	v.particles.Reset()
	scene.Particles(&v.particles, scene.World(r)...)
	v.dots(v.particles, '.')

	v.cars.Reset()
	scene.Cars(&v.cars, r.Cars, r.Tuning().Car.Radius)
	for i := range v.cars.Len() {
		x, y, _, col, rot := spriteAt(v.cars, i)
		c, row := v.cell(x, y)
		st := style(col)
		if i == 0 {
			st = st.Bold(true)
		}
		v.set(c, row, headingGlyph(rot), st)
	}

	v.hud(r.HUD)
	v.screen.Show()
}

func (v *View) text(s string, col, row int, st tcell.Style) {
	for _, ch := range s {
		v.set(col, row, ch, st)
		col++
	}
}

func (v *View) centred(s string, row int, st tcell.Style) {
	v.text(s, (v.w-len(s))/2, row, st)
}

func (v *View) hud(h *race.HUD) {
	txt := style(scene.Palette.Text)
	v.text(h.Lap+"  "+h.Position, 1, 0, txt)
	right := h.Speed + "  " + h.Time
	v.text(right, v.w-len(right)-1, 0, txt)
	if h.Status != "" {
		v.centred(h.Status, 1, style(scene.Palette.TextWarn).Bold(true))
	}

	health := style(scene.Palette.Text)
	if h.LowHealth {
		health = style(scene.Palette.TextWarn)
	}
	bottom := v.h - 1
	v.text(h.Health, 1, bottom, health)
	band := scene.BoostColors[min(max(h.BoostBand, 0), len(scene.BoostColors)-1)]
	bar := "BOOST " + scene.BoostBar(h.BoostFill)
	v.text(bar, v.w-len(bar)-1, bottom, style(band))
	if h.BoostWarning != "" {
		v.text(h.BoostWarning, v.w-len(h.BoostWarning)-1, bottom-1, style(scene.Palette.TextWarn))
	}

	if h.EndVisible {
		mid := v.h / 2
		v.centred(h.EndTitle, mid-1, style(scene.Palette.TextGood).Bold(true))
		v.centred(h.EndHint, mid+1, txt)
	}
}
