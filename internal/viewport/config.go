package viewport

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfig reports viewport constants the scheduler cannot work with.
var ErrConfig = errors.New("viewport: invalid configuration")

// DefaultOverscan is the number of extra rows rendered on each side.
const DefaultOverscan = 3

// Config holds the constants of a viewport. Row height is fixed: every row
// occupies exactly RowHeight units.
type Config struct {
	RowHeight    float64
	ViewportSize float64
	Overscan     int
}

// Validate checks that the constants are usable.
func (c Config) Validate() error {
	switch {
	case !(c.RowHeight > 0) || math.IsInf(c.RowHeight, 0):
		return fmt.Errorf("%w: row height must be positive, got %v", ErrConfig, c.RowHeight)
	case !(c.ViewportSize > 0) || math.IsInf(c.ViewportSize, 0):
		return fmt.Errorf("%w: viewport size must be positive, got %v", ErrConfig, c.ViewportSize)
	case c.Overscan < 0:
		return fmt.Errorf("%w: overscan must not be negative, got %d", ErrConfig, c.Overscan)
	}
	return nil
}

// capacity is the largest number of rows a window can ever span.
func (c Config) capacity() int {
	return int(math.Ceil(c.ViewportSize/c.RowHeight)) + 1 + 2*c.Overscan
}

// Range is the half-open index range [First, Last).
type Range struct {
	First, Last int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.Last - r.First }

// Contains reports whether i lies in r.
func (r Range) Contains(i int) bool { return i >= r.First && i < r.Last }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.First, r.Last) }

// VisibleRange returns the indices of a collection of the given length that
// intersect the viewport at offset, widened by the overscan on both sides.
func VisibleRange(c Config, offset float64, length int) Range {
	// Offsets beyond these bounds give the same range as the bound itself;
	// clamping keeps the float to int conversions in range.
	margin := float64(c.Overscan+1) * c.RowHeight
	lo, hi := -(c.ViewportSize + margin), float64(length)*c.RowHeight+margin
	switch {
	case math.IsNaN(offset):
		offset = 0
	case offset < lo:
		offset = lo
	case offset > hi:
		offset = hi
	}
	first := int(math.Floor(offset/c.RowHeight)) - c.Overscan
	last := int(math.Ceil((offset+c.ViewportSize)/c.RowHeight)) + c.Overscan
	first = clamp(first, 0, length)
	last = clamp(last, 0, length)
	if last < first {
		last = first
	}
	return Range{First: first, Last: last}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
