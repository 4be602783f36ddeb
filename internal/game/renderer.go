//go:build !android

package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"hoverrace/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Rect program: walls and gates.
	rectProg uint32
	rectVAO  uint32
	rectVBO  uint32

	rUCenter     int32
	rUSize       int32
	rUColor      int32
	rUCamera     int32
	rUZoom       int32
	rUResolution int32

	// Point sprite program.
	spriteProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32

	// Glow program, shares spriteVAO, additive blend only.
	glowProg        uint32
	glowUCamera     int32
	glowUZoom       int32
	glowUResolution int32

	// Car program.
	carProg        uint32
	carUCamera     int32
	carUZoom       int32
	carUResolution int32
	carUTex        int32
	carUAspect     int32
	carTex         uint32

	// Font/text rendering.
	atlas        *scene.Atlas
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	rectProg, err := linkProgram(rectVertSrc, rectFragSrc)
	if err != nil {
		return nil, fmt.Errorf("rect program: %w", err)
	}
	spriteProg, err := linkProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		gl.DeleteProgram(rectProg)
		return nil, fmt.Errorf("sprite program: %w", err)
	}
	glowProg, err := linkProgram(spriteVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(rectProg)
		gl.DeleteProgram(spriteProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}
	carProg, err := linkProgram(spriteVertSrc, carFragSrc)
	if err != nil {
		gl.DeleteProgram(rectProg)
		gl.DeleteProgram(spriteProg)
		gl.DeleteProgram(glowProg)
		return nil, fmt.Errorf("car program: %w", err)
	}

	r := &Renderer{
		rectProg:   rectProg,
		spriteProg: spriteProg,
		glowProg:   glowProg,
		carProg:    carProg,
	}

	// Rect VAO/VBO: a unit quad (6 vertices, 2 triangles).
	var qVAO, qVBO uint32
	gl.GenVertexArrays(1, &qVAO)
	gl.GenBuffers(1, &qVBO)
	gl.BindVertexArray(qVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, qVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.rectVAO = qVAO
	r.rectVBO = qVBO

	gl.UseProgram(rectProg)
	r.rUCenter = gl.GetUniformLocation(rectProg, gl.Str("uCenter\x00"))
	r.rUSize = gl.GetUniformLocation(rectProg, gl.Str("uSize\x00"))
	r.rUColor = gl.GetUniformLocation(rectProg, gl.Str("uColor\x00"))
	r.rUCamera = gl.GetUniformLocation(rectProg, gl.Str("uCamera\x00"))
	r.rUZoom = gl.GetUniformLocation(rectProg, gl.Str("uZoom\x00"))
	r.rUResolution = gl.GetUniformLocation(rectProg, gl.Str("uResolution\x00"))

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	var sVAO, sVBO uint32
	gl.GenVertexArrays(1, &sVAO)
	gl.GenBuffers(1, &sVBO)
	gl.BindVertexArray(sVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, sVBO)

	stride := int32(scene.Stride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))
	r.spriteVAO = sVAO
	r.spriteVBO = sVBO

	gl.UseProgram(spriteProg)
	r.spUCamera = gl.GetUniformLocation(spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(spriteProg, gl.Str("uResolution\x00"))

	gl.UseProgram(glowProg)
	r.glowUCamera = gl.GetUniformLocation(glowProg, gl.Str("uCamera\x00"))
	r.glowUZoom = gl.GetUniformLocation(glowProg, gl.Str("uZoom\x00"))
	r.glowUResolution = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))

	gl.UseProgram(carProg)
	r.carUCamera = gl.GetUniformLocation(carProg, gl.Str("uCamera\x00"))
	r.carUZoom = gl.GetUniformLocation(carProg, gl.Str("uZoom\x00"))
	r.carUResolution = gl.GetUniformLocation(carProg, gl.Str("uResolution\x00"))
	r.carUTex = gl.GetUniformLocation(carProg, gl.Str("uCarTex\x00"))
	gl.Uniform1i(r.carUTex, 1)
	r.carUAspect = gl.GetUniformLocation(carProg, gl.Str("uCarAspect\x00"))
	gl.Uniform1f(r.carUAspect, CarVisualAspect)
	r.carTex = makeCarTexture()

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.rectVBO, r.spriteVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.rectVAO, r.spriteVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.rectProg, r.spriteProg, r.glowProg, r.carProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	for _, id := range []uint32{r.fontTex, r.carTex} {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
}

// BeginFrame clears the framebuffer and loads the camera into the rect
// program.
func (r *Renderer) BeginFrame(cam *scene.Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	x, y := cam.EffectivePos()
	gl.UseProgram(r.rectProg)
	gl.BindVertexArray(r.rectVAO)
	gl.Uniform2f(r.rUCamera, float32(x), float32(y))
	gl.Uniform1f(r.rUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.rUResolution, float32(fbW), float32(fbH))
}
