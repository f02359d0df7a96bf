package tamarack

// ResolvePointer converts a pointer position in viewport pixel space into a
// normalized device coordinate in [-1, 1] on both axes. Pixel-space Y grows
// downward; NDC Y grows upward, so the Y axis is inverted.
//
// A viewport with zero width or height returns ErrDegenerateViewport before
// any normalization is attempted.
func ResolvePointer(x, y float32, viewport Rect) (NDC, error) {
	if viewport.Width == 0 || viewport.Height == 0 {
		return NDC{}, ErrDegenerateViewport
	}
	return NDC{
		X: (x-viewport.X)/viewport.Width*2 - 1,
		Y: -(y-viewport.Y)/viewport.Height*2 + 1,
	}, nil
}
