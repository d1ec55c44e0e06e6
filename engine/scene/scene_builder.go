package scene

import (
	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/batch"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithGrid sets the grid whose solids the scene draws. The grid is generated lazily on Prepare
// and closed by Release. Takes precedence over WithSolids.
//
// Parameters:
//   - grid: the grid to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGrid(grid batch.Grid) SceneBuilderOption {
	return func(s *scene) {
		s.grid = grid
	}
}

// WithSolids appends solids for the scene to draw. All solids must share one vertex layout.
//
// Parameters:
//   - solids: the solids to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSolids(solids ...solid.Solid) SceneBuilderOption {
	return func(s *scene) {
		s.solids = append(s.solids, solids...)
	}
}

// WithWave sets the initial wave parameters. Defaults to amplitude 2 and frequency 2.
//
// Parameters:
//   - amplitude: the peak z offset in world units
//   - frequency: the angular frequency in radians per second
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWave(amplitude, frequency float32) SceneBuilderOption {
	return func(s *scene) {
		s.amplitude = amplitude
		s.frequency = frequency
	}
}

// WithPipelineKey sets the key the scene's render pipeline is registered under.
// Scenes drawing different vertex layouts need distinct keys.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipelineKey(key string) SceneBuilderOption {
	return func(s *scene) {
		if key != "" {
			s.pipelineKey = key
		}
	}
}

// WithShaderSources replaces the embedded wave shaders with in-memory WGSL. An empty
// string keeps the embedded source for that stage.
func WithShaderSources(vertex, fragment string) SceneBuilderOption {
	return func(s *scene) {
		s.vertexSource = common.Coalesce(vertex, s.vertexSource)
		s.fragmentSource = common.Coalesce(fragment, s.fragmentSource)
	}
}

// WithShaderPaths replaces the embedded wave shaders with WGSL files read during Prepare.
// An empty path keeps the embedded source for that stage.
//
// Parameters:
//   - vertex: path to the vertex shader, or ""
//   - fragment: path to the fragment shader, or ""
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShaderPaths(vertex, fragment string) SceneBuilderOption {
	return func(s *scene) {
		s.vertexPath = vertex
		s.fragmentPath = fragment
	}
}
