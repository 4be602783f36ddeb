package scene

import (
	"strings"

	"hoverrace/internal/race"
)

// Text is one HUD string placed in framebuffer pixels (top-left origin).
type Text struct {
	S     string
	X, Y  int
	Scale float32
	Col   RGB
}

const (
	hudScale    = 2
	bannerScale = 3
	hudMargin   = 10
	boostCells  = 12
)

func lineH(scale float32) int { return int(FontCellH * scale) }

// BoostBar renders the boost fill as a fixed-width character bar.
func BoostBar(fill float64) string {
	n := int(clampF(fill, 0, 1)*boostCells + 0.5)
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", boostCells-n) + "]"
}

// Layout places every visible HUD field for a framebuffer of fbW x fbH.
func Layout(h *race.HUD, fbW, fbH int) []Text {
	var out []Text
	add := func(s string, x, y int, scale float32, col RGB) {
		if s == "" {
			return
		}
		out = append(out, Text{S: s, X: x, Y: y, Scale: scale, Col: col})
	}
	right := func(s string, y int, scale float32, col RGB) {
		add(s, fbW-TextWidth(s, scale)-hudMargin, y, scale, col)
	}
	centre := func(s string, y int, scale float32, col RGB) {
		add(s, fbW/2-TextWidth(s, scale)/2, y, scale, col)
	}
	lh := lineH(hudScale)

	add(h.Lap, hudMargin, hudMargin, hudScale, Palette.Text)
	add(h.Position, hudMargin, hudMargin+lh, hudScale, Palette.Text)
	right(h.Speed, hudMargin, hudScale, Palette.Text)
	right(h.Time, hudMargin+lh, hudScale, Palette.Text)
	centre(h.Status, hudMargin, hudScale, Palette.TextGood)

	hpCol := Palette.Text
	if h.LowHealth {
		hpCol = Palette.TextWarn
	}
	bottom := fbH - hudMargin - lh
	add(h.Health, hudMargin, bottom, hudScale, hpCol)

	band := min(max(h.BoostBand, 0), len(BoostColors)-1)
	bar := "BOOST " + BoostBar(h.BoostFill)
	right(bar, bottom, hudScale, BoostColors[band])
	centre(h.BoostWarning, bottom-lh, hudScale, Palette.TextWarn)

	if h.EndVisible {
		bl := lineH(bannerScale)
		mid := fbH/2 - bl
		for i, line := range wrap(h.EndTitle, fbW, bannerScale) {
			centre(line, mid+i*bl, bannerScale, Palette.GateNext)
		}
		centre(h.EndHint, mid+3*bl, hudScale, Palette.Text)
	}
	return out
}

// wrap splits s on spaces so every line fits in width pixels.
func wrap(s string, width int, scale float32) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(s) {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if cur != "" && TextWidth(next, scale) > width-2*hudMargin {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
