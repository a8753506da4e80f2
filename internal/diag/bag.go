package diag

import (
	"slices"
)

// Bag collects the findings of one file.
type Bag struct {
	items []Finding
	max   int
}

// NewBag returns a bag that keeps at most max findings; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends a finding, respecting the limit.
// Returns false when the finding was dropped.
func (b *Bag) Add(f Finding) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, f)
	return true
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the findings. The slice aliases the bag; do not modify it.
func (b *Bag) Items() []Finding {
	return b.items
}

// Sort orders findings by start, end, rule and message.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, compareFindings)
}
