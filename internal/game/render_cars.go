//go:build !android

package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"hoverrace/internal/scene"
)

// makeCarTexture builds a grey hover-car top view tinted per car by the
// shader. The nose points along +u.
func makeCarTexture() uint32 {
	const s = 8
	pix := make([]uint8, s*s*4)

	hull := scene.RGB{R: 230, G: 230, B: 230}
	canopy := scene.RGB{R: 90, G: 110, B: 130}
	thruster := scene.RGB{R: 255, G: 170, B: 90}
	trim := hull.Mul(170)

	set := func(x, y int, col scene.RGB) {
		i := (y*s + x) * 4
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 255
	}

	// Columns from tail to nose: thrusters, hull, canopy, hull, pointed nose.
	for y := 0; y < s; y++ {
		edge := y == 0 || y == s-1
		for x := 0; x < s; x++ {
			col := hull
			switch {
			case x == 0:
				if y == 1 || y == s-2 {
					col = thruster
				} else {
					continue
				}
			case x >= 3 && x <= 4 && !edge:
				col = canopy
			case x == s-1 && (y < 2 || y > s-3):
				continue
			case edge:
				col = trim
			}
			set(x, y, col)
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, s, s, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return tex
}

// DrawCarSprites renders cars with the rotated hover-car texture.
func (r *Renderer) DrawCarSprites(buf scene.Sprites, cam *scene.Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := spriteCount(buf)
	x, y := cam.EffectivePos()

	gl.UseProgram(r.carProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.carUCamera, float32(x), float32(y))
	gl.Uniform1f(r.carUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.carUResolution, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.carTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferData(gl.ARRAY_BUFFER, int(count)*scene.Stride*4, gl.Ptr([]float32(buf)), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, count)

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
}
