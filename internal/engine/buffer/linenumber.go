package buffer

import "fmt"

// LineNumber is a line lookup result that is either exact (the index
// has scanned past the position) or an estimate extrapolated from the
// scanned prefix.
type LineNumber struct {
	line           int
	fromCachedLine int
	absolute       bool
}

// Absolute returns an exact line number.
func Absolute(line int) LineNumber {
	return LineNumber{line: line, absolute: true}
}

// Relative returns an estimated line number extrapolated from the last
// cached line.
func Relative(line, fromCachedLine int) LineNumber {
	return LineNumber{line: line, fromCachedLine: fromCachedLine}
}

// Value returns the line number, exact or estimated.
func (n LineNumber) Value() int {
	return n.line
}

// IsAbsolute reports whether the line number is exact.
func (n LineNumber) IsAbsolute() bool {
	return n.absolute
}

// IsRelative reports whether the line number is an estimate.
func (n LineNumber) IsRelative() bool {
	return !n.absolute
}

// FromCachedLine returns the cached line the estimate was extrapolated
// from. Zero for absolute line numbers.
func (n LineNumber) FromCachedLine() int {
	return n.fromCachedLine
}

// Format renders the line number 1-indexed for display. Estimates get
// a "~" prefix.
func (n LineNumber) Format() string {
	if n.absolute {
		return fmt.Sprintf("%d", n.line+1)
	}
	return fmt.Sprintf("~%d", n.line+1)
}
