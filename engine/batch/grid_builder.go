package batch

import (
	"maps"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
)

// GridBuilderOption is a functional option for configuring a Grid.
type GridBuilderOption func(*grid)

// WithRows sets the number of rows (solids along x).
//
// Parameters:
//   - rows: the row count, negative values are treated as 0
//
// Returns:
//   - GridBuilderOption: option function to apply
func WithRows(rows int) GridBuilderOption {
	return func(g *grid) {
		g.rows = rows
	}
}

// WithColumns sets the number of columns (solids along y).
//
// Parameters:
//   - columns: the column count, negative values are treated as 0
//
// Returns:
//   - GridBuilderOption: option function to apply
func WithColumns(columns int) GridBuilderOption {
	return func(g *grid) {
		g.columns = columns
	}
}

// WithSpacing sets the centre-to-centre distance between neighbouring solids.
// A unit cube spans 2 units, so spacing 6 leaves a gap of 4.
//
// Parameters:
//   - spacing: the distance between solid centres
//
// Returns:
//   - GridBuilderOption: option function to apply
func WithSpacing(spacing float32) GridBuilderOption {
	return func(g *grid) {
		g.spacing = spacing
	}
}

// WithSize sets the per-axis scale applied to every solid.
func WithSize(size common.Vec3) GridBuilderOption {
	return func(g *grid) {
		g.size = size
	}
}

// WithTint sets the tint applied to every solid.
func WithTint(tint common.Color) GridBuilderOption {
	return func(g *grid) {
		g.tint = tint
	}
}

// WithFaceColors overrides face colors for every solid. Keys not present keep their defaults.
//
// Parameters:
//   - colors: face colors keyed by axis pair
//
// Returns:
//   - GridBuilderOption: option function to apply
func WithFaceColors(colors map[solid.FaceKey]common.Color) GridBuilderOption {
	return func(g *grid) {
		merged := solid.DefaultFaceColors()
		maps.Copy(merged, colors)
		g.faceColors = merged
	}
}

// WithLayout sets the vertex layout of every solid in the grid.
func WithLayout(layout solid.Layout) GridBuilderOption {
	return func(g *grid) {
		g.layout = layout
	}
}

// WithPhaseFunc sets the function assigning an animation phase to the solid at (row, col).
// It is called concurrently from the grid's workers and must not mutate shared state.
//
// Parameters:
//   - fn: the phase function
//
// Returns:
//   - GridBuilderOption: option function to apply
func WithPhaseFunc(fn func(row, col int) float32) GridBuilderOption {
	return func(g *grid) {
		g.phaseFunc = fn
	}
}

// WithPhaseStep sets the phase increment per row and per column used by the default phase function.
// Ignored when WithPhaseFunc is also given.
//
// Parameters:
//   - step: the phase added for each step along a row or column
//
// Returns:
//   - GridBuilderOption: option function to apply
func WithPhaseStep(step float32) GridBuilderOption {
	return func(g *grid) {
		g.phaseStep = step
	}
}

// WithWorkers sets the number of workers used to generate solids.
//
// Parameters:
//   - n: the worker count, values below 1 are treated as 1
//
// Returns:
//   - GridBuilderOption: option function to apply
func WithWorkers(n int) GridBuilderOption {
	return func(g *grid) {
		g.workers = n
	}
}
