package scene

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font atlas layout: printable ASCII in a 16x6 grid of basicfont cells.
const (
	FontCols   = 16
	FontRows   = 6
	FontFirst  = 32
	FontLast   = FontFirst + FontCols*FontRows - 1
	FontCellW  = 7
	FontCellH  = 13
	FontAtlasW = FontCellW * FontCols
	FontAtlasH = FontCellH * FontRows
)

// Atlas is a white-on-transparent glyph sheet ready for texture upload.
type Atlas struct {
	Img *image.NRGBA
}

// NewAtlas rasterises basicfont.Face7x13.
func NewAtlas() *Atlas {
	img := image.NewNRGBA(image.Rect(0, 0, FontAtlasW, FontAtlasH))
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for ch := FontFirst; ch <= FontLast; ch++ {
		i := ch - FontFirst
		col, row := i%FontCols, i/FontCols
		d.Dot = fixed.P(col*FontCellW, row*FontCellH+face.Ascent)
		d.DrawString(string(rune(ch)))
	}
	return &Atlas{Img: img}
}

// Glyph returns the texture coordinates of ch. ok is false for runes the
// atlas does not hold.
func (a *Atlas) Glyph(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < FontFirst || ch > FontLast {
		return 0, 0, 0, 0, false
	}
	i := int(ch) - FontFirst
	col, row := i%FontCols, i/FontCols
	u0 = float32(col*FontCellW) / FontAtlasW
	v0 = float32(row*FontCellH) / FontAtlasH
	u1 = float32((col+1)*FontCellW) / FontAtlasW
	v1 = float32((row+1)*FontCellH) / FontAtlasH
	return u0, v0, u1, v1, true
}

// TextWidth returns the width in screen pixels of text at the given scale.
func TextWidth(text string, scale float32) int {
	line, widest := 0, 0
	for _, ch := range text {
		if ch == '\n' {
			widest = max(widest, line)
			line = 0
			continue
		}
		line++
	}
	widest = max(widest, line)
	return int(float32(widest*FontCellW) * scale)
}
