package heap

import "cmp"

// Comparator defines priority between two keys.
//   - < 0: a has higher priority than b
//   - > 0: b has higher priority than a
//   - 0:   equal priority
//
// Equal keys come out in no particular order; the heap is not stable.
type Comparator func(a, b int32) int

// Ascending pops the smallest key first.
func Ascending(a, b int32) int { return cmp.Compare(a, b) }

// Descending pops the largest key first.
func Descending(a, b int32) int { return cmp.Compare(b, a) }
