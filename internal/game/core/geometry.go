package core

// Geometry answers adjacency and point-symmetry queries for a board shape.
// Implementations must be deterministic: the same cell always yields the
// same neighbours and the same mirror within one game.
type Geometry interface {
	// Adjacent returns the cells adjacent to c that lie on the board.
	Adjacent(c Cell) []Cell
	// Mirror returns the point-symmetric counterpart of c.
	Mirror(c Cell) Cell
}

// SquareGeometry is the standard board shape: a size×size grid with
// 8-neighbour (Moore) adjacency and symmetry through the board centre.
type SquareGeometry struct {
	Size int
}

// NewSquareGeometry creates a square geometry for a board of the given edge length.
func NewSquareGeometry(size int) SquareGeometry {
	return SquareGeometry{Size: size}
}

// Adjacent returns the up-to-8 in-bounds neighbours of c.
func (g SquareGeometry) Adjacent(c Cell) []Cell {
	out := make([]Cell, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Cell{X: c.X + dx, Y: c.Y + dy}
			if n.IsValid(g.Size) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Mirror returns the cell opposite c through the centre of the board.
func (g SquareGeometry) Mirror(c Cell) Cell {
	return Cell{X: g.Size + 1 - c.X, Y: g.Size + 1 - c.Y}
}
