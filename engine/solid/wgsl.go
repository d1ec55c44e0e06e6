package solid

import (
	"fmt"
	"strings"
)

// wgslAttributeTypes maps a component count to the WGSL type of the attribute.
var wgslAttributeTypes = map[int]string{
	1: "f32",
	3: "vec3<f32>",
	4: "vec4<f32>",
}

// VertexSource returns the WGSL source a vertex shader includes to read solids of the given
// layout: the SolidVertex input struct plus vertex_tint and vertex_phase accessors. Fields the
// layout omits are replaced by their defaults (white tint, zero phase) so one shader body
// serves every layout.
//
// Parameters:
//   - layout: the vertex layout of the uploaded buffer
//
// Returns:
//   - string: WGSL source declaring SolidVertex and its accessors
func VertexSource(layout Layout) string {
	var sb strings.Builder
	if layout == LayoutFull {
		sb.WriteString(strings.TrimRight(GPUSolidVertexSource, "\n"))
	} else {
		sb.WriteString(VertexStructSource(layout))
	}
	sb.WriteString("\n\n")

	sb.WriteString("fn vertex_tint(v: SolidVertex) -> vec4<f32> {\n")
	if layout.Has(AttributeTint) {
		sb.WriteString("    return v.tint;\n")
	} else {
		sb.WriteString("    return vec4<f32>(1.0, 1.0, 1.0, 1.0);\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("fn vertex_phase(v: SolidVertex) -> f32 {\n")
	if layout.Has(AttributePhase) {
		sb.WriteString("    return v.phase;\n")
	} else {
		sb.WriteString("    return 0.0;\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// VertexStructSource generates the WGSL SolidVertex struct for a layout from its attribute table.
//
// Parameters:
//   - layout: the vertex layout
//
// Returns:
//   - string: the WGSL struct declaration
func VertexStructSource(layout Layout) string {
	var sb strings.Builder
	sb.WriteString("struct SolidVertex {\n")
	for _, a := range Attributes(layout) {
		fmt.Fprintf(&sb, "    @location(%d) %s: %s,\n", a.Location, a.Name, wgslAttributeTypes[a.Components])
	}
	sb.WriteString("};")
	return sb.String()
}
