package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakeclash/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // Delta from query origin
	DistSq float32
}

// SpatialGrid provides cell-based neighbor lookups over a square centred on
// the origin. Positions outside the square are clamped into edge cells.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	half     float32
	cells    [][]ecs.Entity
}

// NewSpatialGrid creates a grid covering [-extent/2, extent/2] on both axes.
func NewSpatialGrid(extent, cellSize float32) *SpatialGrid {
	cols := int(extent/cellSize) + 1
	rows := cols

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		half:     extent / 2,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	col, row := g.cellCoords(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
}

// QueryRadiusInto appends entities within radius of (x, y) to dst, stopping
// after limit results. A limit <= 0 returns every match.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, limit int, posMap *ecs.Map[components.Position]) []Neighbor {
	start := len(dst)
	minCol, minRow := g.cellCoords(x-radius, y-radius)
	maxCol, maxRow := g.cellCoords(x+radius, y+radius)
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
					if limit > 0 && len(dst)-start >= limit {
						return dst
					}
				}
			}
		}
	}

	return dst
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float32) (col, row int) {
	col = int((x + g.half) / g.cellSize)
	row = int((y + g.half) / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
