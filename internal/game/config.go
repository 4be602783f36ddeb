package game

// Renderer limits.
const (
	MaxSpriteRender = 20000
	maxTextQuads    = 1024
)

// CarVisualAspect is the width to length ratio of the car sprite.
const CarVisualAspect = 0.68

// Background colour.
const (
	ClearR = 0.07
	ClearG = 0.08
	ClearB = 0.10
)
