// Package suppress turns directive tokens into byte-range suppression sets
// and answers whether a source span is suppressed.
package suppress

import (
	"fmt"

	"scopelint/internal/source"
)

// Mode selects how a span is tested against a range.
type Mode uint8

const (
	// Loose matches spans that start inside the range.
	Loose Mode = iota
	// Strict matches spans that lie entirely inside the range.
	Strict
)

func (m Mode) String() string {
	if m == Loose {
		return "loose"
	}
	return "strict"
}

// Range is a suppressed byte range of one file. Start <= End.
type Range struct {
	Start uint32
	End   uint32
	Mode  Mode
}

// Includes reports whether sp falls inside r. The upper bound is exclusive for
// Loose ranges and inclusive of sp.End for Strict ones.
func (r Range) Includes(sp source.Span) bool {
	if sp.Start < r.Start {
		return false
	}
	if r.Mode == Loose {
		return sp.Start < r.End
	}
	return sp.End <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d) %s", r.Start, r.End, r.Mode)
}
