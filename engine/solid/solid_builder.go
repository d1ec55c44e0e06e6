package solid

import "github.com/Carmen-Shannon/wavegrid/common"

// SolidBuilderOption is a functional option for configuring a Solid before its buffer is generated.
type SolidBuilderOption func(*solid)

// WithPosition sets the position offset of the solid.
//
// Parameters:
//   - position: translation applied to each cube corner before scaling
//
// Returns:
//   - SolidBuilderOption: option function to apply
func WithPosition(position common.Vec3) SolidBuilderOption {
	return func(s *solid) {
		s.position = position
	}
}

// WithPhase sets the animation phase written to every vertex.
//
// Parameters:
//   - phase: the phase value
//
// Returns:
//   - SolidBuilderOption: option function to apply
func WithPhase(phase float32) SolidBuilderOption {
	return func(s *solid) {
		s.phase = phase
	}
}

// WithSize sets the per-axis scale of the solid.
//
// Parameters:
//   - size: scale factors applied after translation
//
// Returns:
//   - SolidBuilderOption: option function to apply
func WithSize(size common.Vec3) SolidBuilderOption {
	return func(s *solid) {
		s.size = size
	}
}

// WithFaceColors overrides face colors by axis pair. Keys not present keep their defaults.
// The map is copied so later changes by the caller do not affect the solid.
//
// Parameters:
//   - colors: face colors keyed by axis pair
//
// Returns:
//   - SolidBuilderOption: option function to apply
func WithFaceColors(colors map[FaceKey]common.Color) SolidBuilderOption {
	return func(s *solid) {
		s.faceColors = cloneFaceColors(colors)
	}
}

// WithFaceColor overrides the color of a single axis pair.
//
// Parameters:
//   - key: the axis pair
//   - color: the face color
//
// Returns:
//   - SolidBuilderOption: option function to apply
func WithFaceColor(key FaceKey, color common.Color) SolidBuilderOption {
	return func(s *solid) {
		s.faceColors = cloneFaceColors(s.faceColors)
		s.faceColors[key] = color
	}
}

// WithTint sets the uniform tint written to every vertex.
//
// Parameters:
//   - tint: the RGBA tint
//
// Returns:
//   - SolidBuilderOption: option function to apply
func WithTint(tint common.Color) SolidBuilderOption {
	return func(s *solid) {
		s.tint = tint
	}
}

// WithLayout selects the vertex layout used to serialize the buffer.
//
// Parameters:
//   - layout: LayoutFull, LayoutNoTint or LayoutMinimal
//
// Returns:
//   - SolidBuilderOption: option function to apply
func WithLayout(layout Layout) SolidBuilderOption {
	return func(s *solid) {
		s.layout = layout
	}
}
