// annotations.go defines the annotation types, argument constants and parser for the
// WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed with
// @wave: that inject engine-owned struct definitions and declare bind groups, so the
// WGSL layouts always come from the same Go source as the buffers written into them.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an annotation within a WGSL comment line.
const annotationPrefix = "@wave:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition at the
	// annotation site. It is consumed entirely during pre-processing.
	//
	// Syntax: //@wave:include <struct_type>
	//
	// Example: //@wave:include solid_vertex
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration and
	// records an Annotation in the pre-processor's declarations list, so the Scene can find
	// which binding carries which struct without string lookups on variable names.
	//
	// Syntax: //@wave:group <group> <binding> <address_space> <var_name> <struct_type>
	//
	// Example: //@wave:group 0 0 storage_uniform frame frame_uniform
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation is a single parsed @wave: annotation.
type Annotation struct {
	// Type is the annotation kind.
	Type AnnotationType

	// Args holds the annotation's arguments. For include: [struct_type]. For group: [address_space, var_name, struct_type].
	Args []AnnotationArg

	// Line is the 1-based source line the annotation was found on.
	Line int

	// Group and Binding are set for AnnotationTypeBindingGroup only.
	Group   *int
	Binding *int
}

// AnnotationArg is a single annotation argument.
type AnnotationArg string

// Struct type arguments. Each has a registry entry in the pre-processor that maps it to embedded WGSL source.
const (
	// AnnotationArgSolidVertex is the per-vertex input of a solid (position, color, tint, phase).
	AnnotationArgSolidVertex AnnotationArg = "solid_vertex"

	// AnnotationArgFrameUniform is the per-frame uniform (view-projection, time, wave parameters).
	AnnotationArgFrameUniform AnnotationArg = "frame_uniform"
)

// Address space arguments for @wave:group annotations.
const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

var validStructTypes = []AnnotationArg{
	AnnotationArgSolidVertex,
	AnnotationArgFrameUniform,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

// parseAnnotation attempts to parse a single line of WGSL source as an annotation.
// Returns nil with no error for lines without the annotation prefix, and an error for
// lines with the prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: group annotation requires five arguments (group, binding, address space, name, struct type)", lineNum)
		}
		group, err := strconv.Atoi(args[1])
		if err != nil || group < 0 {
			return nil, fmt.Errorf("line %d: invalid group number %q in group annotation", lineNum, args[1])
		}
		binding, err := strconv.Atoi(args[2])
		if err != nil || binding < 0 {
			return nil, fmt.Errorf("line %d: invalid binding number %q in group annotation", lineNum, args[2])
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, args[0])
	}
}
