package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	n := 10
	s := NewSelection(func() int { return n })

	s.Select(3)
	assert.Equal(t, []int{3}, s.Rows())

	s.SelectRange(6)
	assert.Equal(t, []int{3, 4, 5, 6}, s.Rows())

	s.Toggle(4)
	assert.Equal(t, []int{3, 5, 6}, s.Rows())
	assert.False(t, s.IsSelected(4))

	// range from the last toggled row
	s.SelectRange(1)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, s.Rows())

	s.Select(8)
	assert.Equal(t, []int{8}, s.Rows())

	n = 5
	assert.Empty(t, s.Rows())

	s.SelectAll()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.Rows())

	s.Clear()
	s.SelectRange(2)
	assert.Equal(t, []int{2}, s.Rows())
}
