package util

import "slices"

// Selection tracks the selected rows of a list, with shift-click
// range selection anchored at the last clicked row.
type Selection struct {
	selected map[int]struct{}
	anchor   int
	len      func() int
}

func NewSelection(lenFn func() int) *Selection {
	return &Selection{selected: map[int]struct{}{}, anchor: -1, len: lenFn}
}

// Select replaces the selection with the given row.
func (s *Selection) Select(row int) {
	if row < 0 {
		return
	}
	clear(s.selected)
	s.selected[row] = struct{}{}
	s.anchor = row
}

// Toggle adds row to the selection, or removes it if already selected.
func (s *Selection) Toggle(row int) {
	if row < 0 {
		return
	}
	if _, ok := s.selected[row]; ok {
		delete(s.selected, row)
	} else {
		s.selected[row] = struct{}{}
	}
	s.anchor = row
}

// SelectRange selects every row between the anchor and row, inclusive.
func (s *Selection) SelectRange(row int) {
	if row < 0 {
		return
	}
	if s.anchor < 0 {
		s.Select(row)
		return
	}
	lo, hi := min(s.anchor, row), max(s.anchor, row)
	for i := lo; i <= hi; i++ {
		s.selected[i] = struct{}{}
	}
}

func (s *Selection) SelectAll() {
	for i := 0; i < s.len(); i++ {
		s.selected[i] = struct{}{}
	}
}

func (s *Selection) Clear() {
	clear(s.selected)
	s.anchor = -1
}

func (s *Selection) IsSelected(row int) bool {
	_, ok := s.selected[row]
	return ok
}

// Rows returns the selected rows that are within the list, in ascending order.
func (s *Selection) Rows() []int {
	n := s.len()
	rows := make([]int, 0, len(s.selected))
	for r := range s.selected {
		if r < n {
			rows = append(rows, r)
		}
	}
	slices.Sort(rows)
	return rows
}
