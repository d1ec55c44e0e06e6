// pre_processor.go implements the WGSL shader pre-processor. It scans shader source for
// @wave: annotations, replaces them with injected struct source or generated binding
// declarations, and collects a declarations list the Scene uses to wire the frame uniform.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/wavegrid/engine/camera"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
)

// registryEntry pairs an embedded WGSL struct source with the WGSL type name it declares.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by @wave:include.
	Source string

	// Type is the WGSL type name emitted in @wave:group declarations (e.g. "FrameUniform").
	Type string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// structRegistry maps struct type arguments to their embedded WGSL source and type name.
	structRegistry map[AnnotationArg]registryEntry

	// addressSpaceRegistry maps address space arguments to WGSL var<> syntax.
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates AnnotationTypeBindingGroup annotations during a Process call.
	declarations []Annotation

	// vertexLayout selects the SolidVertex struct injected for solid_vertex includes.
	vertexLayout solid.Layout
}

// PreProcessor replaces @wave: annotations in WGSL source with their generated WGSL and
// records binding declarations for downstream resource wiring.
type PreProcessor interface {
	// Process replaces include annotations with embedded struct source and group annotations
	// with @group/@binding variable declarations. The declarations list is reset at the start
	// of each call.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if any annotation is malformed or references an unknown type
	Process(source string) (string, error)

	// Declarations returns the group annotations collected during the most recent Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the collected declarations
	Declarations() []Annotation

	// VertexLayout returns the layout whose SolidVertex struct is injected by solid_vertex includes.
	VertexLayout() solid.Layout
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with the engine's GPU struct types registered.
// The solid_vertex include expands to the SolidVertex struct of the given layout.
//
// Parameters:
//   - layout: the vertex layout of the buffers the shader will read
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(layout solid.Layout) PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgSolidVertex:  {Source: solid.VertexSource(layout), Type: "SolidVertex"},
			AnnotationArgFrameUniform: {Source: camera.GPUFrameUniformSource, Type: "FrameUniform"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
		vertexLayout: layout,
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	included := make(map[AnnotationArg]bool)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			// a struct may only be declared once per module
			if included[a.Args[0]] {
				continue
			}
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: no registered source for %q", i+1, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, strings.TrimRight(entry.Source, "\n"))
		case AnnotationTypeBindingGroup:
			entry, ok := p.structRegistry[a.Args[2]]
			if !ok {
				return "", fmt.Errorf("line %d: no registered source for %q", i+1, a.Args[2])
			}
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) VertexLayout() solid.Layout {
	return p.vertexLayout
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
