package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

// ParseLimit reads a page size. Missing or malformed values fall back to DefaultLimit and the
// result is clamped to [1, MaxLimit].
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultLimit
	}
	return ClampLimit(n)
}

// ClampLimit bounds n to [1, MaxLimit].
func ClampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// ParseOffset reads a row offset. Missing, malformed or negative values become 0.
func ParseOffset(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Window describes one page of an offset paginated listing.
type Window struct {
	Offset int
	Limit  int
	Count  int // total rows across all pages
}

// From is the 1-based position of the first row on the page, 0 for an empty listing.
func (w Window) From() int {
	if w.Count == 0 || w.Offset >= w.Count {
		return 0
	}
	return w.Offset + 1
}

// To is the 1-based position of the last row on the page.
func (w Window) To() int {
	if w.From() == 0 {
		return 0
	}
	to := w.Offset + w.Limit
	if to > w.Count {
		to = w.Count
	}
	return to
}

func (w Window) HasPrev() bool {
	return w.Offset > 0
}

func (w Window) HasNext() bool {
	return w.Offset+w.Limit < w.Count
}

// PrevOffset is the offset of the previous page, never below 0.
func (w Window) PrevOffset() int {
	prev := w.Offset - w.Limit
	if prev < 0 {
		return 0
	}
	return prev
}

func (w Window) NextOffset() int {
	return w.Offset + w.Limit
}
