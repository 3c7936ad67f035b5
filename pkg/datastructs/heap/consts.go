package heap

import "math"

const (
	component = "heap"

	// Header layout: [Capacity | NextEmpty], little-endian uint32 each.
	capacityOff  = 0
	nextEmptyOff = 4
	headerSize   = 8

	// Node layout: [Key int32 | Value]
	keySize = 4

	// Nodes are 1-indexed: children of n are 2n and 2n+1, parent is n/2.
	// Node 0 is allocated but never holds data.
	rootIndex = 1

	maxCapacity = math.MaxInt32 - rootIndex
	maxInt      = math.MaxInt
)
