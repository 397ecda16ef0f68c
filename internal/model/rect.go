package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rectRe matches the exact bounds-string form "[x1,y1][x2,y2]" with
// non-negative integer coordinates. Whitespace is not tolerated; callers
// normalize before validating.
var rectRe = regexp.MustCompile(`^\[(\d+),(\d+)\]\[(\d+),(\d+)\]$`)

// rectScanRe is the unanchored variant used to find a bounds string embedded
// in free text (attribute panels, detail views).
var rectScanRe = regexp.MustCompile(`\[(\d+),(\d+)\]\[(\d+),(\d+)\]`)

// Rect is a screen rectangle in absolute pixel coordinates, as two corners.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// ParseRect parses a bounds string of the form "[x1,y1][x2,y2]".
// Internal whitespace is stripped first, matching what inspection UIs render.
func ParseRect(s string) (*Rect, error) {
	s = NormalizeRect(s)
	m := rectRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid bounds %q: expected [x1,y1][x2,y2]", s)
	}
	vals := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		vals[i] = v
	}
	return &Rect{X1: vals[0], Y1: vals[1], X2: vals[2], Y2: vals[3]}, nil
}

// ValidRect reports whether s is a well-formed bounds string.
func ValidRect(s string) bool {
	return rectRe.MatchString(NormalizeRect(s))
}

// FindRect returns the first bounds string embedded in free text, in
// document order, or "" if none is present.
func FindRect(text string) string {
	return rectScanRe.FindString(text)
}

// NormalizeRect strips all whitespace from a bounds string, tolerating
// forms like "[ 10, 20 ][ 110, 70 ]".
func NormalizeRect(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// String renders the rectangle back to its wire form.
func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d][%d,%d]", r.X1, r.Y1, r.X2, r.Y2)
}

// Center returns the rectangle's center point, matching the bridge service's
// integer-division tap coordinates.
func (r Rect) Center() (x, y int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}
