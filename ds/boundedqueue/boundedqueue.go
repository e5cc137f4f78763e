package boundedqueue

import (
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/hiveledger/minmax.go/ds/minmaxheap"
)

// ErrInvalidCapacity is returned when a negative capacity is requested.
var ErrInvalidCapacity = ierrors.New("capacity must not be negative")

// Polarity selects which end of the ordering a BoundedPriorityQueue retains
// when it overflows.
type Polarity uint8

const (
	// MinKeep retains the smallest elements seen so far.
	MinKeep Polarity = iota
	// MaxKeep retains the largest elements seen so far.
	MaxKeep
)

// String returns a human-readable version of the Polarity.
func (p Polarity) String() string {
	if p == MinKeep {
		return "MinKeep"
	}

	return "MaxKeep"
}

// BoundedPriorityQueue is a priority queue that holds at most a fixed number
// of elements. Offering an element to a full queue either evicts the current
// worst element under the configured Polarity or discards the offered element,
// so the queue always holds the best capacity many elements seen so far.
// It is backed by a MinMaxHeap, which makes both the inspection of the worst
// element and its eviction cheap.
type BoundedPriorityQueue[T any] struct {
	heap     *minmaxheap.MinMaxHeap[T]
	less     minmaxheap.LessFunc[T]
	polarity Polarity
	capacity int
}

// New returns a new empty BoundedPriorityQueue with the given capacity and
// Polarity. It panics if the capacity is negative; a capacity of zero yields a
// queue that discards everything offered to it.
func New[T any](capacity int, polarity Polarity, less minmaxheap.LessFunc[T]) *BoundedPriorityQueue[T] {
	if capacity < 0 {
		panic(ierrors.Wrapf(ErrInvalidCapacity, "cannot create a queue with capacity %d", capacity))
	}

	return &BoundedPriorityQueue[T]{
		heap:     minmaxheap.New(less, minmaxheap.WithCapacity(capacity+1)),
		less:     less,
		polarity: polarity,
		capacity: capacity,
	}
}

// NewMinKeep returns a new empty BoundedPriorityQueue that retains the
// capacity many smallest elements.
func NewMinKeep[T any](capacity int, less minmaxheap.LessFunc[T]) *BoundedPriorityQueue[T] {
	return New(capacity, MinKeep, less)
}

// NewMaxKeep returns a new empty BoundedPriorityQueue that retains the
// capacity many largest elements.
func NewMaxKeep[T any](capacity int, less minmaxheap.LessFunc[T]) *BoundedPriorityQueue[T] {
	return New(capacity, MaxKeep, less)
}

// NewFromSlice returns a new BoundedPriorityQueue filled from the given
// values. The first capacity many values are bulk-loaded through the heap's
// linear time constructor, the remainder is offered one by one, so the result
// is identical to offering the whole slice to an empty queue.
func NewFromSlice[T any](values []T, capacity int, polarity Polarity, less minmaxheap.LessFunc[T]) *BoundedPriorityQueue[T] {
	if capacity < 0 {
		panic(ierrors.Wrapf(ErrInvalidCapacity, "cannot create a queue with capacity %d", capacity))
	}

	bulkCount := len(values)
	if bulkCount > capacity {
		bulkCount = capacity
	}

	queue := &BoundedPriorityQueue[T]{
		heap:     minmaxheap.NewFromSlice(values[:bulkCount], less),
		less:     less,
		polarity: polarity,
		capacity: capacity,
	}
	for _, element := range values[bulkCount:] {
		queue.Offer(element)
	}

	return queue
}

// Offer adds an element to the queue and returns true. If the queue is full,
// the element is only added if it ranks ahead of the current worst element,
// which is then evicted; otherwise the element is discarded and Offer returns
// false. The comparison happens before any mutation, so a discarded element
// never touches the heap.
func (b *BoundedPriorityQueue[T]) Offer(element T) bool {
	if b.heap.Size() < b.capacity {
		b.heap.Insert(element)

		return true
	}

	if b.capacity == 0 || !b.better(element, lo.PanicOnErr(b.findWorst())) {
		return false
	}

	b.heap.Insert(element)
	if err := b.dropWorst(); err != nil {
		panic(err) // the heap cannot be empty right after an insertion
	}

	return true
}

// Peek returns the best element under the queue's Polarity without removing
// it. It fails with minmaxheap.ErrEmpty if the queue is empty.
func (b *BoundedPriorityQueue[T]) Peek() (element T, err error) {
	if b.polarity == MinKeep {
		return b.heap.FindMin()
	}

	return b.heap.FindMax()
}

// Pop returns and removes the best element under the queue's Polarity.
// It fails with minmaxheap.ErrEmpty if the queue is empty.
func (b *BoundedPriorityQueue[T]) Pop() (element T, err error) {
	if b.polarity == MinKeep {
		return b.heap.PopMin()
	}

	return b.heap.PopMax()
}

// Size returns the number of elements in the queue.
func (b *BoundedPriorityQueue[T]) Size() int {
	return b.heap.Size()
}

// IsEmpty returns true if the queue holds no elements.
func (b *BoundedPriorityQueue[T]) IsEmpty() bool {
	return b.heap.IsEmpty()
}

// Capacity returns the maximum number of elements the queue holds.
func (b *BoundedPriorityQueue[T]) Capacity() int {
	return b.capacity
}

// SetCapacity changes the capacity of the queue. When shrinking below the
// current size, the worst elements are evicted until the queue fits, so the
// queue keeps the best elements it held. It fails with ErrInvalidCapacity if
// the given capacity is negative.
func (b *BoundedPriorityQueue[T]) SetCapacity(capacity int) error {
	if capacity < 0 {
		return ierrors.Wrapf(ErrInvalidCapacity, "cannot set capacity to %d", capacity)
	}

	b.capacity = capacity
	for b.heap.Size() > b.capacity {
		if err := b.dropWorst(); err != nil {
			return err
		}
	}

	return nil
}

// Clear removes all elements from the queue.
func (b *BoundedPriorityQueue[T]) Clear() {
	b.heap.Clear()
}

// ForEach iterates through the elements in their storage order, not in sorted
// order, and calls the consumer for each element until it returns false.
func (b *BoundedPriorityQueue[T]) ForEach(consumer func(element T) bool) {
	b.heap.ForEach(consumer)
}

// Values returns a copy of the held elements in storage order, not in sorted
// order.
func (b *BoundedPriorityQueue[T]) Values() []T {
	return b.heap.Values()
}

// String returns a human-readable version of the queue.
func (b *BoundedPriorityQueue[T]) String() string {
	return stringify.Struct("BoundedPriorityQueue",
		stringify.NewStructField("size", b.Size()),
		stringify.NewStructField("capacity", b.capacity),
		stringify.NewStructField("polarity", b.polarity),
	)
}

// findWorst returns the element that is evicted first under the queue's
// Polarity: the maximum for MinKeep, the minimum for MaxKeep.
func (b *BoundedPriorityQueue[T]) findWorst() (worst T, err error) {
	if b.polarity == MinKeep {
		return b.heap.FindMax()
	}

	return b.heap.FindMin()
}

// dropWorst evicts the worst element under the queue's Polarity.
func (b *BoundedPriorityQueue[T]) dropWorst() error {
	if b.polarity == MinKeep {
		return b.heap.DeleteMax()
	}

	return b.heap.DeleteMin()
}

// better returns true if the candidate ranks strictly ahead of the incumbent
// under the queue's Polarity.
func (b *BoundedPriorityQueue[T]) better(candidate, incumbent T) bool {
	if b.polarity == MinKeep {
		return b.less(candidate, incumbent)
	}

	return b.less(incumbent, candidate)
}
