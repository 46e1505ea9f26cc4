package sim

import (
	"fmt"
	"math"
	"slices"
)

// CellSizeFactor: cell side relative to the largest particle radius. Any two
// overlapping circles are at most 2*maxRadius apart, so they always share a cell
// or sit in neighbouring ones.
const CellSizeFactor = 5.0

// Cell is a bucket of the grid. Members holds particle indices in insertion order.
type Cell struct {
	X, Y    int
	Members []int
}

func (c *Cell) insert(id int) {
	c.Members = append(c.Members, id)
}

func (c *Cell) remove(id int) {
	if i := slices.Index(c.Members, id); i >= 0 {
		c.Members = slices.Delete(c.Members, i, i+1)
	}
}

// Grid partitions the window into square cells for the broad phase.
// Cells are stored row-major in one slice and live as long as the grid.
type Grid struct {
	cellSize float64
	width    int // Cells per row
	height   int // Cells per column
	cells    []Cell
}

// NewGrid builds a grid over a windowWidth x windowHeight plane with cells of
// CellSizeFactor*maxRadius. Partial cells at the right and bottom edges are folded
// into the last column and row.
func NewGrid(windowWidth, windowHeight, maxRadius float64) (*Grid, error) {
	if !(maxRadius > 0) {
		return nil, fmt.Errorf("max radius %g must be positive: %w", maxRadius, ErrConstruction)
	}
	cellSize := CellSizeFactor * maxRadius
	w := int(math.Floor(windowWidth / cellSize))
	h := int(math.Floor(windowHeight / cellSize))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("cell size %g does not fit a %gx%g window: %w",
			cellSize, windowWidth, windowHeight, ErrConstruction)
	}

	g := &Grid{
		cellSize: cellSize,
		width:    w,
		height:   h,
		cells:    make([]Cell, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := &g.cells[y*w+x]
			c.X, c.Y = x, y
		}
	}
	return g, nil
}

// CellSize returns the side of a cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Size returns the number of cells per row and per column.
func (g *Grid) Size() (width, height int) { return g.width, g.height }

// Cell returns the cell at (x, y). Coordinates are clamped into the grid.
func (g *Grid) Cell(x, y int) *Cell {
	x = min(max(x, 0), g.width-1)
	y = min(max(y, 0), g.height-1)
	return &g.cells[y*g.width+x]
}

// CoordFor maps a position to its cell, clamping anything outside the grid to
// the nearest border cell.
func (g *Grid) CoordFor(pos Vec2) CellCoord {
	return CellCoord{
		X: clampIndex(pos.X/g.cellSize, g.width),
		Y: clampIndex(pos.Y/g.cellSize, g.height),
	}
}

func clampIndex(v float64, n int) int {
	f := math.Floor(v)
	switch {
	case !(f >= 0): // Also catches NaN
		return 0
	case f >= float64(n-1):
		return n - 1
	}
	return int(f)
}

// Reassign moves particle id into the cell matching its current position,
// keeping the particle's cell reference and the cell membership in step.
func (g *Grid) Reassign(id int, p *Particle) {
	target := g.CoordFor(p.Position)
	if p.inCell {
		if p.cell == target {
			return
		}
		g.Cell(p.cell.X, p.cell.Y).remove(id)
		p.inCell = false
	}
	g.Cell(target.X, target.Y).insert(id)
	p.cell = target
	p.inCell = true
}

// BroadPhase calls visit for every candidate pair of particles sharing a cell
// or sitting in neighbouring cells. Each unordered pair of distinct cells is
// visited once. A cell is also paired with itself and its members are crossed
// without ordering, so particles in the same cell are visited as (p, q) and
// again as (q, p). Returns the number of visit calls.
func (g *Grid) BroadPhase(visit func(a, b int)) int {
	calls := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cur := &g.cells[y*g.width+x]
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= g.width || ny >= g.height {
						continue
					}
					if !(nx > x || (nx == x && ny >= y)) {
						continue
					}
					other := &g.cells[ny*g.width+nx]
					for _, a := range cur.Members {
						for _, b := range other.Members {
							if a == b {
								continue
							}
							visit(a, b)
							calls++
						}
					}
				}
			}
		}
	}
	return calls
}
