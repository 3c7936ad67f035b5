package queue

// Queue is a generic interface for bounded FIFO queues.
type Queue[T any] interface {
	// Insert adds an item at the tail.
	// Returns an OperationFailed error if the queue is full.
	Insert(item T) error

	// Remove removes and returns the item at the head.
	// Returns (zero, OperationFailed error) if the queue is empty.
	Remove() (T, error)

	// Capacity returns the maximum number of live items.
	Capacity() int

	// Size returns the number of live items.
	Size() int
}
