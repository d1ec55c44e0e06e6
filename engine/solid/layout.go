package solid

import "fmt"

// Vertex buffer constants for the full layout. The packer, the renderer's attribute
// bindings and the WGSL SolidVertex struct are all derived from these values.
const (
	// VerticesPerSolid is the number of vertices emitted per solid: 6 faces × 2 triangles × 3 corners.
	VerticesPerSolid = 36

	// FloatsPerVertex is the number of float32 fields in a full-layout vertex.
	FloatsPerVertex = 12

	// BytesPerVertex is the stride of a full-layout vertex in bytes.
	BytesPerVertex = FloatsPerVertex * 4

	// BytesPerSolid is the size of one solid's full-layout vertex buffer in bytes.
	BytesPerSolid = VerticesPerSolid * BytesPerVertex
)

// Byte offsets of each attribute within a full-layout vertex.
const (
	PositionOffset = 0
	ColorOffset    = 12
	TintOffset     = 28
	PhaseOffset    = 44
)

// Layout selects which vertex fields are serialized. Reduced layouts drop fields from the
// full [position, color, tint, phase] record while keeping the remaining fields in order.
type Layout int

const (
	// LayoutFull emits position, face color, tint and phase (12 floats, 48 bytes).
	LayoutFull Layout = iota

	// LayoutNoTint emits position, face color and phase (8 floats, 32 bytes).
	LayoutNoTint

	// LayoutMinimal emits position and face color (7 floats, 28 bytes).
	LayoutMinimal
)

// AttributeName identifies one field of the vertex record.
type AttributeName string

const (
	AttributePosition AttributeName = "position"
	AttributeColor    AttributeName = "color"
	AttributeTint     AttributeName = "tint"
	AttributePhase    AttributeName = "phase"
)

// Attribute describes where a single vertex field lives inside a vertex of a given layout.
type Attribute struct {
	// Name is the field name, matching the WGSL struct member.
	Name AttributeName

	// Location is the shader input location the field is bound to.
	Location uint32

	// Components is the number of float32 components in the field.
	Components int

	// Offset is the byte offset of the field from the start of the vertex.
	Offset uint64
}

// fullAttributes is the canonical attribute table from which every layout is derived.
var fullAttributes = []Attribute{
	{Name: AttributePosition, Location: 0, Components: 3, Offset: PositionOffset},
	{Name: AttributeColor, Location: 1, Components: 4, Offset: ColorOffset},
	{Name: AttributeTint, Location: 2, Components: 4, Offset: TintOffset},
	{Name: AttributePhase, Location: 3, Components: 1, Offset: PhaseOffset},
}

// Attributes returns the attribute table for the layout. Offsets are packed so that each
// retained field follows the previous one without gaps; shader locations are renumbered
// consecutively from 0.
//
// Parameters:
//   - layout: the vertex layout
//
// Returns:
//   - []Attribute: the attributes of the layout in serialization order
func Attributes(layout Layout) []Attribute {
	attrs := make([]Attribute, 0, len(fullAttributes))
	var offset uint64
	for _, a := range fullAttributes {
		if !layout.Has(a.Name) {
			continue
		}
		attrs = append(attrs, Attribute{
			Name:       a.Name,
			Location:   uint32(len(attrs)),
			Components: a.Components,
			Offset:     offset,
		})
		offset += uint64(a.Components * 4)
	}
	return attrs
}

// Has reports whether the layout serializes the named attribute.
func (l Layout) Has(name AttributeName) bool {
	switch name {
	case AttributeTint:
		return l == LayoutFull
	case AttributePhase:
		return l != LayoutMinimal
	default:
		return true
	}
}

// FloatsPerVertex returns the number of float32 values per vertex in this layout.
func (l Layout) FloatsPerVertex() int {
	switch l {
	case LayoutNoTint:
		return 8
	case LayoutMinimal:
		return 7
	default:
		return FloatsPerVertex
	}
}

// BytesPerVertex returns the vertex stride in bytes for this layout.
func (l Layout) BytesPerVertex() int {
	return l.FloatsPerVertex() * 4
}

// BytesPerSolid returns the size in bytes of one solid's buffer in this layout.
func (l Layout) BytesPerSolid() int {
	return VerticesPerSolid * l.BytesPerVertex()
}

func (l Layout) String() string {
	switch l {
	case LayoutFull:
		return "full"
	case LayoutNoTint:
		return "no_tint"
	case LayoutMinimal:
		return "minimal"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout converts a layout name ("full", "no_tint", "minimal") into a Layout.
// An empty name selects LayoutFull.
//
// Parameters:
//   - name: the layout name
//
// Returns:
//   - Layout: the parsed layout
//   - error: an error if the name is unknown
func ParseLayout(name string) (Layout, error) {
	switch name {
	case "", "full":
		return LayoutFull, nil
	case "no_tint":
		return LayoutNoTint, nil
	case "minimal":
		return LayoutMinimal, nil
	default:
		return LayoutFull, fmt.Errorf("unknown vertex layout %q", name)
	}
}
