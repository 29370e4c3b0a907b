package game

import "errors"

// ErrEmptyCatalogue is returned when the model listing yields no entries.
var ErrEmptyCatalogue = errors.New("no models available")

// Direction is the way the highlight moves through the catalogue.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Advance moves the highlight one step in dir over a list of n items and
// returns the new highlight index and scroll offset. The window shown is
// [offset, offset+capacity). The offset only moves when the highlight was on
// the edge row of the window in the direction of travel; moving past either end
// of the list is a no-op.
func Advance(n, highlighted, offset, capacity int, dir Direction) (int, int) {
	if n <= 0 {
		return 0, 0
	}
	if capacity < 1 {
		capacity = 1
	}
	offset = ClampOffset(n, highlighted, offset, capacity)

	switch dir {
	case Forward:
		if highlighted >= n-1 {
			return highlighted, offset
		}
		if highlighted == offset+capacity-1 {
			offset++
		}
		return highlighted + 1, offset
	case Backward:
		if highlighted <= 0 {
			return highlighted, offset
		}
		if highlighted == offset {
			offset--
		}
		return highlighted - 1, offset
	}
	return highlighted, offset
}

// ClampOffset returns the offset nearest to the given one that keeps the
// highlighted index inside a window of the given capacity.
func ClampOffset(n, highlighted, offset, capacity int) int {
	if capacity < 1 {
		capacity = 1
	}
	if highlighted < offset {
		offset = highlighted
	}
	if highlighted >= offset+capacity {
		offset = highlighted - capacity + 1
	}
	if offset > n-1 {
		offset = n - 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// Window returns the bounds [start, end) of the visible slice, clipped to n.
func Window(n, offset, capacity int) (start, end int) {
	if capacity < 0 {
		capacity = 0
	}
	start = offset
	if start > n {
		start = n
	}
	if start < 0 {
		start = 0
	}
	end = start + capacity
	if end > n {
		end = n
	}
	return start, end
}

// Catalogue is the fetched list of model identifiers together with the
// view state of the model menu.
type Catalogue struct {
	items       []string
	highlighted int
	offset      int
	loading     bool

	// Chosen is the model used for requests. It is independent of the
	// highlight and need not be a member of the catalogue.
	Chosen string
}

// NewCatalogue returns an empty catalogue with the given chosen model.
func NewCatalogue(chosen string) *Catalogue {
	return &Catalogue{Chosen: chosen}
}

// Load replaces the items and resets the highlight to the first entry and the
// offset to zero. An empty listing is rejected.
func (c *Catalogue) Load(items []string) error {
	c.loading = false
	if len(items) == 0 {
		return ErrEmptyCatalogue
	}
	c.items = append(c.items[:0], items...)
	c.highlighted = 0
	c.offset = 0
	return nil
}

func (c *Catalogue) Len() int              { return len(c.items) }
func (c *Catalogue) Items() []string       { return c.items }
func (c *Catalogue) Offset() int           { return c.offset }
func (c *Catalogue) Loading() bool         { return c.loading }
func (c *Catalogue) HighlightedIndex() int { return c.highlighted }

// Highlighted returns the highlighted identifier, or "" when empty.
func (c *Catalogue) Highlighted() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[c.highlighted]
}

// Advance moves the highlight one step, scrolling by at most one row.
func (c *Catalogue) Advance(dir Direction, capacity int) {
	c.highlighted, c.offset = Advance(len(c.items), c.highlighted, c.offset, capacity, dir)
}

// Clamp pulls the offset back so the highlight is visible at the given
// capacity. The render pass calls it because capacity follows the terminal size.
func (c *Catalogue) Clamp(capacity int) {
	if len(c.items) == 0 {
		return
	}
	c.offset = ClampOffset(len(c.items), c.highlighted, c.offset, capacity)
}

// Visible returns the window of items starting at the offset.
func (c *Catalogue) Visible(capacity int) []string {
	start, end := Window(len(c.items), c.offset, capacity)
	return c.items[start:end]
}

// Choose makes the highlighted identifier the chosen one.
func (c *Catalogue) Choose() {
	if len(c.items) > 0 {
		c.Chosen = c.items[c.highlighted]
	}
}
