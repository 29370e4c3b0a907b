package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item%d", i)
	}
	return out
}

func assertVisible(t *testing.T, c *Catalogue, capacity int) {
	t.Helper()
	h, off := c.HighlightedIndex(), c.Offset()
	if h < off || h >= off+capacity {
		t.Fatalf("highlight %d outside window [%d, %d)", h, off, off+capacity)
	}
}

func TestCatalogueScrollsOneRowAtTheEdge(t *testing.T) {
	c := NewCatalogue("")
	require.NoError(t, c.Load(items(5)))
	assert.Equal(t, "item0", c.Highlighted())
	assert.Equal(t, 0, c.Offset())

	for i := 0; i < 3; i++ {
		c.Advance(Forward, 3)
	}
	assert.Equal(t, "item3", c.Highlighted())
	assert.Equal(t, 1, c.Offset())

	c.Advance(Forward, 3)
	assert.Equal(t, "item4", c.Highlighted())
	assert.Equal(t, 2, c.Offset())
	assert.Equal(t, []string{"item2", "item3", "item4"}, c.Visible(3))
}

func TestAdvanceVisitsEveryItem(t *testing.T) {
	tests := []struct {
		n        int
		capacity int
	}{
		{5, 3},
		{10, 1},
		{10, 4},
		{37, 8},
		{3, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d/cap=%d", tt.n, tt.capacity), func(t *testing.T) {
			c := NewCatalogue("")
			require.NoError(t, c.Load(items(tt.n)))

			visited := []string{c.Highlighted()}
			for i := 0; i < tt.n-1; i++ {
				c.Advance(Forward, tt.capacity)
				assertVisible(t, c, tt.capacity)
				visited = append(visited, c.Highlighted())
			}
			assert.Equal(t, items(tt.n), visited)

			// Forward from the last element is a no-op.
			h, off := c.HighlightedIndex(), c.Offset()
			c.Advance(Forward, tt.capacity)
			assert.Equal(t, h, c.HighlightedIndex())
			assert.Equal(t, off, c.Offset())

			for i := tt.n - 1; i > 0; i-- {
				c.Advance(Backward, tt.capacity)
				assertVisible(t, c, tt.capacity)
				assert.Equal(t, i-1, c.HighlightedIndex())
			}
			assert.Equal(t, 0, c.Offset())

			c.Advance(Backward, tt.capacity)
			assert.Equal(t, 0, c.HighlightedIndex())
			assert.Equal(t, 0, c.Offset())
		})
	}
}

func TestAdvanceBackwardScrollsOnlyAtTopRow(t *testing.T) {
	// Window [4, 7), highlight in the middle row.
	h, off := Advance(10, 5, 4, 3, Backward)
	assert.Equal(t, 4, h)
	assert.Equal(t, 4, off)

	h, off = Advance(10, h, off, 3, Backward)
	assert.Equal(t, 3, h)
	assert.Equal(t, 3, off)
}

func TestClampAfterCapacityShrinks(t *testing.T) {
	c := NewCatalogue("")
	require.NoError(t, c.Load(items(20)))
	for i := 0; i < 9; i++ {
		c.Advance(Forward, 10)
	}
	require.Equal(t, 9, c.HighlightedIndex())
	require.Equal(t, 0, c.Offset())

	c.Clamp(4)
	assertVisible(t, c, 4)
	assert.Equal(t, 6, c.Offset())

	// Growing the window again keeps the offset where it is.
	c.Clamp(10)
	assert.Equal(t, 6, c.Offset())
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, offset, capacity int
		start, end          int
	}{
		{5, 0, 3, 0, 3},
		{5, 2, 3, 2, 5},
		{5, 4, 3, 4, 5},
		{2, 0, 10, 0, 2},
		{0, 0, 3, 0, 0},
		{5, 7, 3, 5, 5},
	}

	for _, tt := range tests {
		start, end := Window(tt.n, tt.offset, tt.capacity)
		if start != tt.start || end != tt.end {
			t.Errorf("Window(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.n, tt.offset, tt.capacity, start, end, tt.start, tt.end)
		}
	}
}

func TestCatalogueLoad(t *testing.T) {
	c := NewCatalogue("qwen/qwen3-32b:free")
	assert.ErrorIs(t, c.Load(nil), ErrEmptyCatalogue)
	assert.Equal(t, "", c.Highlighted())

	require.NoError(t, c.Load([]string{"a", "b", "c"}))
	c.Advance(Forward, 2)
	c.Advance(Forward, 2)
	require.Equal(t, 1, c.Offset())

	// Reloading resets highlight and offset.
	require.NoError(t, c.Load([]string{"x", "y"}))
	assert.Equal(t, "x", c.Highlighted())
	assert.Equal(t, 0, c.Offset())
	assert.Equal(t, "qwen/qwen3-32b:free", c.Chosen)

	c.Advance(Forward, 2)
	c.Choose()
	assert.Equal(t, "y", c.Chosen)
}
