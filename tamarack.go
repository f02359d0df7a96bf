package tamarack

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default material base color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to the stdlib color type used by the viewer.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle in viewport pixel space. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NDC is a normalized device coordinate in [-1, 1] on both axes.
// X grows rightward and Y grows upward, unlike pixel space.
type NDC struct {
	X, Y float32
}

// Vec3 is the 3D vector type used throughout the API.
type Vec3 = mgl32.Vec3

// Structural pick failures. A pick that returns one of these was abandoned
// before any selection state changed.
var (
	// ErrDegenerateViewport is returned when the viewport rectangle has zero
	// width or height, making pointer normalization impossible.
	ErrDegenerateViewport = errors.New("tamarack: viewport has zero width or height")

	// ErrNoCamera is returned when a pick is attempted without a camera.
	ErrNoCamera = errors.New("tamarack: no camera")

	// ErrNoScene is returned when a pick is attempted with no scene roots.
	ErrNoScene = errors.New("tamarack: no scene roots")
)
