package batch

import (
	"testing"

	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridDefaults(t *testing.T) {
	g := NewGrid()
	defer g.Close()

	assert.Equal(t, 20, g.Rows())
	assert.Equal(t, 20, g.Columns())
	assert.Equal(t, float32(6), g.Spacing())
	assert.Equal(t, solid.LayoutFull, g.Layout())
	assert.Equal(t, 400, g.Len())
	assert.Equal(t, uint32(400*solid.VerticesPerSolid), g.VertexCount())
}

func TestGridPositions(t *testing.T) {
	g := NewGrid()
	defer g.Close()

	assert.Equal(t, common.Vec3{-60, -60, 0}, g.PositionAt(0, 0))
	assert.Equal(t, common.Vec3{0, 0, 0}, g.PositionAt(10, 10))
	assert.Equal(t, common.Vec3{54, -30, 0}, g.PositionAt(19, 5))
}

func TestGridDefaultPhase(t *testing.T) {
	g := NewGrid(WithPhaseStep(0.5))
	defer g.Close()

	assert.Equal(t, float32(0), g.PhaseAt(0, 0))
	assert.Equal(t, float32(1.5), g.PhaseAt(1, 2))
}

func TestGridSolidsRowMajor(t *testing.T) {
	g := NewGrid(WithRows(3), WithColumns(4), WithWorkers(2))
	defer g.Close()

	solids := g.Solids()
	require.Len(t, solids, 12)
	for row := range 3 {
		for col := range 4 {
			s := solids[row*4+col]
			assert.Equal(t, g.PositionAt(row, col), s.Position())
			assert.Equal(t, g.PhaseAt(row, col), s.Phase())
		}
	}

	// cached after the first call
	assert.Same(t, solids[0], g.Solids()[0])
}

func TestGridParallelMatchesSequential(t *testing.T) {
	opts := []GridBuilderOption{
		WithRows(9),
		WithColumns(7),
		WithSpacing(4),
		WithTint(common.Color{0.8, 0.9, 1, 1}),
		WithPhaseFunc(func(row, col int) float32 {
			return float32(row)*0.25 - float32(col)*0.125
		}),
	}

	parallel := NewGrid(append(opts, WithWorkers(8))...)
	defer parallel.Close()
	sequential := NewGrid(append(opts, WithWorkers(1))...)
	defer sequential.Close()

	assert.Equal(t, sequential.Pack(), parallel.Pack())

	var expected []solid.Solid
	for row := range 9 {
		for col := range 7 {
			expected = append(expected, solid.NewSolid(
				solid.WithPosition(parallel.PositionAt(row, col)),
				solid.WithPhase(parallel.PhaseAt(row, col)),
				solid.WithTint(common.Color{0.8, 0.9, 1, 1}),
			))
		}
	}
	assert.Equal(t, Pack(expected), parallel.Pack())
}

func TestGridAfterCloseStillGenerates(t *testing.T) {
	g := NewGrid(WithRows(2), WithColumns(2))
	g.Close()

	assert.Len(t, g.Solids(), 4)
	assert.Len(t, g.Pack(), 4*solid.BytesPerSolid)
}

func TestGridEmpty(t *testing.T) {
	g := NewGrid(WithRows(0), WithColumns(5))
	defer g.Close()

	assert.Empty(t, g.Solids())
	assert.NotNil(t, g.Pack())
	lo, hi := g.Bounds()
	assert.Equal(t, common.Vec3{}, lo)
	assert.Equal(t, common.Vec3{}, hi)
}

func TestGridLayoutAndColors(t *testing.T) {
	g := NewGrid(
		WithRows(1),
		WithColumns(2),
		WithLayout(solid.LayoutNoTint),
		WithFaceColors(map[solid.FaceKey]common.Color{solid.FaceYZ: common.ColorWhite}),
	)
	defer g.Close()

	for _, s := range g.Solids() {
		assert.Equal(t, solid.LayoutNoTint, s.Layout())
		assert.Equal(t, common.ColorWhite, s.FaceColor(solid.FaceYZ))
		assert.Equal(t, common.ColorRed, s.FaceColor(solid.FaceXY))
	}
	assert.Len(t, g.Pack(), 2*solid.LayoutNoTint.BytesPerSolid())
}

func TestGridBounds(t *testing.T) {
	g := NewGrid()
	defer g.Close()

	lo, hi := g.Bounds()
	assert.Equal(t, common.Vec3{-61, -61, -1}, lo)
	assert.Equal(t, common.Vec3{55, 55, 1}, hi)

	scaled := NewGrid(WithRows(2), WithColumns(2), WithSpacing(2), WithSize(common.Vec3{2, 2, 3}))
	defer scaled.Close()
	lo, hi = scaled.Bounds()
	// positions -2 and 0; corners (p±1)*size
	assert.Equal(t, common.Vec3{-6, -6, -3}, lo)
	assert.Equal(t, common.Vec3{2, 2, 3}, hi)
}
