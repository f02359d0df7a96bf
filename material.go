package tamarack

import "math"

// Material is the mutable appearance of a solid node: a base color plus an
// emissive (glow) color. The highlight mechanism works purely on the
// Emissive field, so external code owns Color entirely.
type Material struct {
	Color    Color
	Emissive Color
}

// valid reports whether all components are finite. A material that has been
// fed NaN or Inf (typically from an upstream animation bug) is skipped during
// highlight with a diagnostic rather than saved and restored.
func (m Material) valid() bool {
	for _, v := range [8]float32{
		m.Color.R, m.Color.G, m.Color.B, m.Color.A,
		m.Emissive.R, m.Emissive.G, m.Emissive.B, m.Emissive.A,
	} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

// HighlightStyle controls how a selected entity is emphasized.
type HighlightStyle struct {
	// Emissive is the glow color applied to every material in the selected
	// entity's subtree.
	Emissive Color

	// Pulse animates the glow intensity when true.
	Pulse bool

	// PulsePeriod is the full bright-dim-bright cycle time in seconds.
	// Zero means the default period.
	PulsePeriod float32
}

// DefaultHighlight is the highlight style a new Picker starts with.
var DefaultHighlight = HighlightStyle{
	Emissive:    Color{R: 1, G: 0.85, B: 0.1, A: 1},
	PulsePeriod: 1.2,
}

// scaled returns the style's emissive color with its RGB scaled by k.
// Used by the pulse animation; alpha is left alone.
func (h HighlightStyle) scaled(k float32) Color {
	return Color{R: h.Emissive.R * k, G: h.Emissive.G * k, B: h.Emissive.B * k, A: h.Emissive.A}
}
