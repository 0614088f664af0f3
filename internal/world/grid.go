package world

import (
	"errors"
	"fmt"

	"magearena/internal/mathutil"
)

// CellEmpty is the only walkable cell code. Every positive code is equally
// solid; the value only selects a wall color.
const CellEmpty = 0

// OutOfBoundsCell is what CellAt reports outside the map.
const OutOfBoundsCell = 1

// ErrMalformedMap is returned for empty, ragged, or negative-coded matrices.
var ErrMalformedMap = errors.New("malformed map")

// Grid is an immutable rectangular matrix of cell codes with a fixed tile
// edge length. It is safe for concurrent readers.
type Grid struct {
	cells    []int // row-major
	width    int
	height   int
	tileSize float64
}

// NewGrid validates rows and copies them into a new Grid.
func NewGrid(rows [][]int, tileSize float64) (*Grid, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size must be positive, got %g", ErrMalformedMap, tileSize)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: map contains no cells", ErrMalformedMap)
	}

	width := len(rows[0])
	cells := make([]int, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has inconsistent width: expected %d, got %d",
				ErrMalformedMap, y+1, width, len(row))
		}
		for x, code := range row {
			if code < 0 {
				return nil, fmt.Errorf("%w: negative cell code %d at (%d, %d)", ErrMalformedMap, code, x, y)
			}
		}
		cells = append(cells, row...)
	}

	return &Grid{
		cells:    cells,
		width:    width,
		height:   len(rows),
		tileSize: tileSize,
	}, nil
}

// MustNewGrid is NewGrid for literal maps known to be well formed.
func MustNewGrid(rows [][]int, tileSize float64) *Grid {
	g, err := NewGrid(rows, tileSize)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether (col, row) addresses a cell of the map.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// CellAt returns the code stored at (col, row), or OutOfBoundsCell outside
// the map.
func (g *Grid) CellAt(col, row int) int {
	if !g.InBounds(col, row) {
		return OutOfBoundsCell
	}
	return g.cells[row*g.width+col]
}

// IsSolid is true for any nonzero cell and for every cell outside the map.
func (g *Grid) IsSolid(col, row int) bool {
	if !g.InBounds(col, row) {
		return true
	}
	return g.cells[row*g.width+col] != CellEmpty
}

// ToCell converts world coordinates to grid indices by floor division.
func (g *Grid) ToCell(x, y float64) (col, row int) {
	return mathutil.FloorDiv(x, g.tileSize), mathutil.FloorDiv(y, g.tileSize)
}

// TileCenter returns the world coordinates of the center of a cell.
func (g *Grid) TileCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * g.tileSize, (float64(row) + 0.5) * g.tileSize
}

// WorldBounds returns the map extent in world units.
func (g *Grid) WorldBounds() (width, height float64) {
	return float64(g.width) * g.tileSize, float64(g.height) * g.tileSize
}

// Rows returns a copy of the matrix.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		rows[y] = append([]int(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return rows
}

// OpenCells counts walkable cells.
func (g *Grid) OpenCells() int {
	n := 0
	for _, c := range g.cells {
		if c == CellEmpty {
			n++
		}
	}
	return n
}
