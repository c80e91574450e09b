package core

import "fmt"

// Cell represents a position on the game board. Coordinates are 1-based:
// the top-left cell of a board of edge length n is (1,1), the bottom-right
// cell is (n,n). Cell is a value type and is safe to use as a map key.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewCell creates a new cell with the given x and y values.
func NewCell(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// IsValid checks whether the cell lies on a board of the given edge length.
func (c Cell) IsValid(size int) bool {
	return c.X >= 1 && c.X <= size && c.Y >= 1 && c.Y <= size
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
