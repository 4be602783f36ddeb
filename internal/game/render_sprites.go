//go:build !android

package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"hoverrace/internal/scene"
)

func spriteCount(buf scene.Sprites) int32 {
	return int32(min(buf.Len(), MaxSpriteRender))
}

// DrawSprites renders round point sprites.
// additive: true = glow-style additive blend, false = standard alpha blend.
func (r *Renderer) DrawSprites(buf scene.Sprites, cam *scene.Camera, fbW, fbH int, additive bool) {
	if len(buf) == 0 {
		return
	}
	count := spriteCount(buf)
	x, y := cam.EffectivePos()

	gl.UseProgram(r.spriteProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.spUCamera, float32(x), float32(y))
	gl.Uniform1f(r.spUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.spUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, int(count)*scene.Stride*4, gl.Ptr([]float32(buf)), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, count)

	gl.Disable(gl.BLEND)
}

// DrawGlowSprites renders light sprites with additive blending and radial
// falloff.
func (r *Renderer) DrawGlowSprites(buf scene.Sprites, cam *scene.Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := spriteCount(buf)
	x, y := cam.EffectivePos()
	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	gl.Uniform2f(r.glowUCamera, float32(x), float32(y))
	gl.Uniform1f(r.glowUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.glowUResolution, float32(fbW), float32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.BufferData(gl.ARRAY_BUFFER, int(count)*scene.Stride*4, gl.Ptr([]float32(buf)), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, count)
	gl.Disable(gl.BLEND)
}

// DrawRects renders filled rectangles. BeginFrame must have loaded the
// camera into the rect program.
func (r *Renderer) DrawRects(rects []scene.Rect) {
	if len(rects) == 0 {
		return
	}
	gl.UseProgram(r.rectProg)
	gl.BindVertexArray(r.rectVAO)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for _, rc := range rects {
		cr, cg, cb := rc.Col.Floats()
		gl.Uniform2f(r.rUCenter, float32(rc.X), float32(rc.Y))
		gl.Uniform2f(r.rUSize, float32(rc.W), float32(rc.H))
		gl.Uniform4f(r.rUColor, cr, cg, cb, float32(rc.A))
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
	gl.Disable(gl.BLEND)
}
