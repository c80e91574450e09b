package core

import (
	"encoding/json"
	"sort"
)

// CellSet is an unordered set of cells. The zero value is not usable;
// create sets with NewCellSet.
type CellSet map[Cell]struct{}

// NewCellSet creates a set containing the given cells. Every call returns
// an independently owned set, so player records never share storage.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a cell into the set.
func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

// Remove deletes a cell from the set. Removing an absent cell is a no-op.
func (s CellSet) Remove(c Cell) {
	delete(s, c)
}

// Contains reports whether the cell is in the set.
func (s CellSet) Contains(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of cells in the set.
func (s CellSet) Len() int {
	return len(s)
}

// Clone returns a copy of the set that shares no storage with the original.
func (s CellSet) Clone() CellSet {
	out := make(CellSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Intersect returns a new set holding the cells present in both sets.
func (s CellSet) Intersect(other CellSet) CellSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(CellSet)
	for c := range small {
		if large.Contains(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array of cells, so wire output
// is stable across runs.
func (s CellSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of cells into the set.
func (s *CellSet) UnmarshalJSON(data []byte) error {
	var cells []Cell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	*s = NewCellSet(cells...)
	return nil
}

// Sorted returns the cells ordered by Y then X. Map iteration order is
// randomized, so anything that must be deterministic (bots, rendering)
// goes through this.
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}
