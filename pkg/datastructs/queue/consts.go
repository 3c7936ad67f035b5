package queue

import "math"

const (
	component = "queue"

	// Header layout: [Capacity | NodeCount | Head | Tail], little-endian uint32 each.
	// Slots follow the header directly.
	capacityOff  = 0
	nodeCountOff = 4
	headOff      = 8
	tailOff      = 12
	headerSize   = 16

	// sentinelSlots is the slot count reserved on top of capacity. The ring
	// never fills its last free slot, so head == tail always means empty.
	sentinelSlots = 1

	maxCapacity = math.MaxInt32 - sentinelSlots
	maxInt      = math.MaxInt
)
