// Package carousel implements wrap-around slide navigation and timed rotation.
package carousel

// Cursor points at one of n slides and wraps at both ends. A cursor over
// zero slides stays at 0.
type Cursor struct {
	n       int
	current int
}

// NewCursor creates a cursor over n slides positioned at start
func NewCursor(n, start int) Cursor {
	c := Cursor{n: max(n, 0)}
	c.current = c.wrap(start)
	return c
}

func (c Cursor) wrap(i int) int {
	if c.n == 0 {
		return 0
	}
	return ((i % c.n) + c.n) % c.n
}

// Len returns the number of slides
func (c Cursor) Len() int { return c.n }

// Current returns the current index
func (c Cursor) Current() int { return c.current }

// Next moves forward, wrapping from the last slide to the first
func (c Cursor) Next() Cursor {
	c.current = c.wrap(c.current + 1)
	return c
}

// Prev moves back, wrapping from the first slide to the last
func (c Cursor) Prev() Cursor {
	c.current = c.wrap(c.current - 1)
	return c
}

// Goto jumps to index i, wrapping out-of-range values
func (c Cursor) Goto(i int) Cursor {
	c.current = c.wrap(i)
	return c
}

// Neighbors are the indices around the current slide
type Neighbors struct {
	Prev    int `json:"prev"`
	Current int `json:"current"`
	Next    int `json:"next"`
	Total   int `json:"total"`
}

// Neighbors returns prev, current and next indices
func (c Cursor) Neighbors() Neighbors {
	return Neighbors{
		Prev:    c.Prev().Current(),
		Current: c.current,
		Next:    c.Next().Current(),
		Total:   c.n,
	}
}

// Breakpoints in pixels for the team carousel
const (
	BreakpointTablet  = 768
	BreakpointDesktop = 1024
)

// PerView returns how many slides fit a viewport width
func PerView(width int) int {
	switch {
	case width < BreakpointTablet:
		return 1
	case width < BreakpointDesktop:
		return 2
	default:
		return 3
	}
}

// Window returns the indices of up to perView slides starting at start,
// wrapping past the end. Each slide appears at most once.
func Window(n, start, perView int) []int {
	if n <= 0 || perView <= 0 {
		return []int{}
	}
	perView = min(perView, n)

	c := NewCursor(n, start)
	out := make([]int, 0, perView)
	for i := 0; i < perView; i++ {
		out = append(out, c.Current())
		c = c.Next()
	}
	return out
}
