package batch

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/wavegrid/common"
	"github.com/Carmen-Shannon/wavegrid/engine/solid"
)

const (
	defaultRows      = 20
	defaultColumns   = 20
	defaultPadding   = 5
	defaultPhaseStep = 0.3
)

type grid struct {
	mu sync.Mutex

	rows       int
	columns    int
	spacing    float32
	size       common.Vec3
	tint       common.Color
	faceColors map[solid.FaceKey]common.Color
	layout     solid.Layout
	phaseStep  float32
	phaseFunc  func(row, col int) float32

	workers int
	pool    worker.DynamicWorkerPool

	solids []solid.Solid
}

// Grid is a rows × columns arrangement of solids centred on the origin in the z = 0 plane.
// Solids are generated once on a worker pool and cached; Pack returns the batched buffer of the cached solids.
type Grid interface {
	// Rows returns the number of rows (along x).
	Rows() int

	// Columns returns the number of columns (along y).
	Columns() int

	// Spacing returns the centre-to-centre distance between neighbouring solids.
	Spacing() float32

	// Layout returns the vertex layout every solid in the grid is generated with.
	Layout() solid.Layout

	// Len returns the number of solids in the grid.
	Len() int

	// PositionAt returns the position offset of the solid at (row, col).
	//
	// Parameters:
	//   - row: the row index
	//   - col: the column index
	//
	// Returns:
	//   - common.Vec3: ((row − rows/2) × spacing, (col − cols/2) × spacing, 0)
	PositionAt(row, col int) common.Vec3

	// PhaseAt returns the animation phase assigned to the solid at (row, col).
	PhaseAt(row, col int) float32

	// Solids returns the grid's solids in row-major order, generating them on first use.
	// Generation is spread over the grid's worker pool; each task writes only its own slot,
	// so the order is deterministic regardless of scheduling.
	//
	// Returns:
	//   - []solid.Solid: rows × columns solids
	Solids() []solid.Solid

	// Pack returns the packed vertex buffer of all solids in row-major order.
	//
	// Returns:
	//   - []byte: Len() × layout.BytesPerSolid() bytes
	Pack() []byte

	// VertexCount returns the number of vertices in the packed buffer.
	VertexCount() uint32

	// Bounds returns the axis-aligned extents of the generated geometry, ignoring the wave offset.
	//
	// Returns:
	//   - common.Vec3: the minimum corner
	//   - common.Vec3: the maximum corner
	Bounds() (common.Vec3, common.Vec3)

	// Close stops the grid's worker pool. Solids already generated remain available.
	Close()
}

var _ Grid = &grid{}

// NewGrid creates a new Grid with the provided options applied over the defaults
// (20 × 20 solids, spacing 6, unit size, default face colors, white tint, full layout,
// phase (row + col) × 0.3, one worker per CPU).
//
// Parameters:
//   - options: functional options to configure the grid
//
// Returns:
//   - Grid: the configured grid; solids are generated lazily
func NewGrid(options ...GridBuilderOption) Grid {
	g := &grid{
		rows:       defaultRows,
		columns:    defaultColumns,
		spacing:    1 + defaultPadding,
		size:       common.Vec3{1, 1, 1},
		tint:       common.ColorWhite,
		faceColors: solid.DefaultFaceColors(),
		layout:     solid.LayoutFull,
		phaseStep:  defaultPhaseStep,
		workers:    runtime.NumCPU(),
	}

	for _, opt := range options {
		opt(g)
	}

	if g.phaseFunc == nil {
		step := g.phaseStep
		g.phaseFunc = func(row, col int) float32 {
			return float32(row+col) * step
		}
	}
	g.rows = max(g.rows, 0)
	g.columns = max(g.columns, 0)
	g.workers = max(g.workers, 1)

	// Workers are kept for the grid's lifetime; the per-call WaitGroup is the barrier since
	// pool.Wait() only returns once workers idle-exit.
	g.pool = worker.NewDynamicWorkerPool(g.workers, max(g.rows*g.columns, 1), 1*time.Second)
	return g
}

func (g *grid) Rows() int {
	return g.rows
}

func (g *grid) Columns() int {
	return g.columns
}

func (g *grid) Spacing() float32 {
	return g.spacing
}

func (g *grid) Layout() solid.Layout {
	return g.layout
}

func (g *grid) Len() int {
	return g.rows * g.columns
}

func (g *grid) PositionAt(row, col int) common.Vec3 {
	return common.Vec3{
		float32(row-g.rows/2) * g.spacing,
		float32(col-g.columns/2) * g.spacing,
		0,
	}
}

func (g *grid) PhaseAt(row, col int) float32 {
	return g.phaseFunc(row, col)
}

func (g *grid) Solids() []solid.Solid {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.solids != nil {
		return g.solids
	}

	start := time.Now()
	out := make([]solid.Solid, g.Len())

	if g.pool == nil {
		for idx := range out {
			out[idx] = g.build(idx/g.columns, idx%g.columns)
		}
		g.solids = out
		return g.solids
	}

	var wg sync.WaitGroup
	for row := range g.rows {
		for col := range g.columns {
			idx := row*g.columns + col
			wg.Add(1)
			g.pool.SubmitTask(worker.Task{
				ID: idx,
				Do: func() (any, error) {
					defer wg.Done()
					out[idx] = g.build(row, col)
					return nil, nil
				},
			})
		}
	}
	wg.Wait()

	g.solids = out
	log.Printf("[Grid] generated %d solids (%dx%d, %s layout) on %d workers in %s", len(out), g.rows, g.columns, g.layout, g.workers, time.Since(start))
	return g.solids
}

func (g *grid) Pack() []byte {
	return Pack(g.Solids())
}

func (g *grid) VertexCount() uint32 {
	return VertexCount(g.Len())
}

func (g *grid) Bounds() (common.Vec3, common.Vec3) {
	if g.Len() == 0 {
		return common.Vec3{}, common.Vec3{}
	}

	// corners are (±1 + position) × size, so the extremes come from the first and last row/column
	lo := g.PositionAt(0, 0)
	hi := g.PositionAt(g.rows-1, g.columns-1)
	var minV, maxV common.Vec3
	for axis := range 3 {
		a := (lo[axis] - 1) * g.size[axis]
		b := (hi[axis] + 1) * g.size[axis]
		minV[axis] = min(a, b)
		maxV[axis] = max(a, b)
	}
	return minV, maxV
}

func (g *grid) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pool != nil {
		g.pool.Stop()
		g.pool = nil
	}
}

// build generates the solid at (row, col) from the grid's shared settings.
func (g *grid) build(row, col int) solid.Solid {
	return solid.NewSolid(
		solid.WithPosition(g.PositionAt(row, col)),
		solid.WithPhase(g.phaseFunc(row, col)),
		solid.WithSize(g.size),
		solid.WithFaceColors(g.faceColors),
		solid.WithTint(g.tint),
		solid.WithLayout(g.layout),
	)
}
