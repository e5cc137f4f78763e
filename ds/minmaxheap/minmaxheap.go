package minmaxheap

import (
	"math/bits"

	"github.com/iotaledger/hive.go/constraints"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/stringify"
)

// ErrEmpty is returned when an extremum is queried or removed from an empty heap.
var ErrEmpty = ierrors.New("min-max heap is empty")

// LessFunc compares two elements and returns true if a orders strictly before b.
type LessFunc[T any] func(a, b T) bool

// MinMaxHeap is a double-ended priority heap. It behaves like a regular binary
// heap, except that both the minimum and the maximum element can be read in
// constant time and removed in logarithmic time. Levels of the underlying
// complete binary tree alternate between min ordering (even levels, starting
// at the root) and max ordering (odd levels): a node on a min level is not
// larger than any of its descendants, a node on a max level is not smaller.
type MinMaxHeap[T any] struct {
	items []T
	less  LessFunc[T]
}

// New returns a new empty MinMaxHeap that orders elements with the given LessFunc.
func New[T any](less LessFunc[T], opts ...Option) *MinMaxHeap[T] {
	heapOpts := &Options{}
	heapOpts.apply(defaultOptions...)
	heapOpts.apply(opts...)

	return &MinMaxHeap[T]{
		items: make([]T, 0, heapOpts.capacity),
		less:  less,
	}
}

// NewOrdered returns a new empty MinMaxHeap over a natively ordered element type.
func NewOrdered[T constraints.Ordered](opts ...Option) *MinMaxHeap[T] {
	return New[T](func(a, b T) bool { return a < b }, opts...)
}

// NewFromSlice returns a new MinMaxHeap holding a copy of the given values.
// The heap is built in place with a bottom-up pass adapted from Floyd's
// construction algorithm, which takes linear instead of linearithmic time.
func NewFromSlice[T any](values []T, less LessFunc[T]) *MinMaxHeap[T] {
	heap := &MinMaxHeap[T]{
		items: make([]T, len(values), len(values)+1),
		less:  less,
	}
	copy(heap.items, values)

	// a tree with less than two nodes is ordered by definition
	if len(heap.items) < 2 {
		return heap
	}

	for index := parentIndex(len(heap.items) - 1); index >= 0; index-- {
		heap.trickleDown(index)
	}

	return heap
}

// NewOrderedFromSlice returns a new MinMaxHeap holding a copy of the given
// natively ordered values.
func NewOrderedFromSlice[T constraints.Ordered](values []T) *MinMaxHeap[T] {
	return NewFromSlice(values, func(a, b T) bool { return a < b })
}

// Size returns the number of elements in the heap.
func (h *MinMaxHeap[T]) Size() int {
	return len(h.items)
}

// IsEmpty returns true if the heap holds no elements.
func (h *MinMaxHeap[T]) IsEmpty() bool {
	return len(h.items) == 0
}

// Insert adds an element to the heap.
func (h *MinMaxHeap[T]) Insert(element T) {
	h.items = append(h.items, element)
	h.bubbleUp(len(h.items) - 1)
}

// FindMin returns the smallest element without removing it.
// It fails with ErrEmpty if the heap is empty.
func (h *MinMaxHeap[T]) FindMin() (minimum T, err error) {
	if len(h.items) == 0 {
		return minimum, ErrEmpty
	}

	return h.items[0], nil
}

// FindMax returns the largest element without removing it.
// It fails with ErrEmpty if the heap is empty.
func (h *MinMaxHeap[T]) FindMax() (maximum T, err error) {
	if len(h.items) == 0 {
		return maximum, ErrEmpty
	}

	return h.items[h.maxIndex()], nil
}

// DeleteMin removes the smallest element.
// It fails with ErrEmpty if the heap is empty.
func (h *MinMaxHeap[T]) DeleteMin() error {
	if len(h.items) == 0 {
		return ErrEmpty
	}
	h.removeAt(0)

	return nil
}

// DeleteMax removes the largest element.
// It fails with ErrEmpty if the heap is empty.
func (h *MinMaxHeap[T]) DeleteMax() error {
	if len(h.items) == 0 {
		return ErrEmpty
	}
	h.removeAt(h.maxIndex())

	return nil
}

// PopMin returns and removes the smallest element.
// It fails with ErrEmpty if the heap is empty.
func (h *MinMaxHeap[T]) PopMin() (minimum T, err error) {
	if len(h.items) == 0 {
		return minimum, ErrEmpty
	}
	minimum = h.items[0]
	h.removeAt(0)

	return minimum, nil
}

// PopMax returns and removes the largest element.
// It fails with ErrEmpty if the heap is empty.
func (h *MinMaxHeap[T]) PopMax() (maximum T, err error) {
	if len(h.items) == 0 {
		return maximum, ErrEmpty
	}
	maxIndex := h.maxIndex()
	maximum = h.items[maxIndex]
	h.removeAt(maxIndex)

	return maximum, nil
}

// Clear removes all elements from the heap.
func (h *MinMaxHeap[T]) Clear() {
	h.items = nil
}

// Height returns the height of the underlying tree. A tree with a single node
// has a height of zero, an empty tree a height of -1.
func (h *MinMaxHeap[T]) Height() int {
	return binaryLogCeil(uint(len(h.items))+1) - 1
}

// ForEach iterates through the elements in their storage order, not in sorted
// order, and calls the consumer for each element until it returns false.
func (h *MinMaxHeap[T]) ForEach(consumer func(element T) bool) {
	for _, element := range h.items {
		if !consumer(element) {
			return
		}
	}
}

// Values returns a copy of the backing array. The values appear in storage
// order, not in sorted order.
func (h *MinMaxHeap[T]) Values() []T {
	return lo.CopySlice(h.items)
}

// String returns a human-readable version of the heap.
func (h *MinMaxHeap[T]) String() string {
	return stringify.Struct("MinMaxHeap",
		stringify.NewStructField("size", len(h.items)),
		stringify.NewStructField("height", h.Height()),
	)
}

// maxIndex returns the index of the largest element. The largest element is
// the root for a single node tree, otherwise the greater of the two nodes on
// the first max level, which dominate all max levels below them.
// The caller has to make sure that the heap is not empty.
func (h *MinMaxHeap[T]) maxIndex() int {
	switch {
	case len(h.items) == 1:
		return 0
	case len(h.items) == 2 || !h.less(h.items[1], h.items[2]):
		return 1
	default:
		return 2
	}
}

// removeAt moves the last leaf over the element at the given index, shrinks
// the heap by one and restores the ordering of the disturbed subtree.
func (h *MinMaxHeap[T]) removeAt(index int) {
	lastIndex := len(h.items) - 1
	h.items[index] = h.items[lastIndex]

	var zeroValue T
	h.items[lastIndex] = zeroValue // avoid memory leak
	h.items = h.items[:lastIndex]

	// when the removed element was the last leaf itself there is nothing to repair
	if index < lastIndex {
		h.trickleDown(index)
	}
}

// lt compares two elements under the ordering discipline of a level: on min
// levels (inverted == false) it is the user's less than, on max levels the
// operands are swapped to derive the corresponding greater than.
func (h *MinMaxHeap[T]) lt(inverted bool, a, b T) bool {
	if inverted {
		return h.less(b, a)
	}

	return h.less(a, b)
}

// bubbleUp restores the ordering invariants after the node at the given index
// has been appended as the last leaf. A single swap with the parent fixes the
// relation between the two bottom levels if needed, afterwards only the same
// polarity ancestors two levels up can still be violated.
func (h *MinMaxHeap[T]) bubbleUp(index int) {
	onMaxLevel := !onMinLevel(index)

	if index > 0 {
		parent := parentIndex(index)
		if h.lt(!onMaxLevel, h.items[index], h.items[parent]) {
			h.items[index], h.items[parent] = h.items[parent], h.items[index]
			h.bubbleUpOnLevel(parent, !onMaxLevel)

			return
		}
	}

	h.bubbleUpOnLevel(index, onMaxLevel)
}

// bubbleUpOnLevel moves the node towards the root, two levels at a time, while
// it is out of order with its grandparent on the same polarity level.
func (h *MinMaxHeap[T]) bubbleUpOnLevel(index int, onMaxLevel bool) {
	for index > 2 {
		grandparent := grandparentIndex(index)
		if !h.lt(onMaxLevel, h.items[index], h.items[grandparent]) {
			return
		}
		h.items[index], h.items[grandparent] = h.items[grandparent], h.items[index]
		index = grandparent
	}
}

// trickleDown restores the ordering invariants of the subtree rooted at the
// given index, honoring the polarity of the level the root sits on.
func (h *MinMaxHeap[T]) trickleDown(index int) {
	h.trickleDownOnLevel(index, !onMinLevel(index))
}

// trickleDownOnLevel moves the subtree root downwards, up to two levels at a
// time, until the level ordering holds. On every step the extremum among the
// up to six descendants within the next two levels is selected; a complete
// tree stores them at consecutive indices.
func (h *MinMaxHeap[T]) trickleDownOnLevel(index int, onMaxLevel bool) {
	for {
		leftChild := leftChildIndex(index)
		if leftChild >= len(h.items) {
			return
		}

		// select the smallest (largest) of both children and all four
		// grandchildren, ties resolve to the lowest index
		extremum := leftChild
		firstGrandchild := leftChildIndex(leftChild)
		for _, descendant := range [5]int{leftChild + 1, firstGrandchild, firstGrandchild + 1, firstGrandchild + 2, firstGrandchild + 3} {
			if descendant >= len(h.items) {
				break
			}
			if h.lt(onMaxLevel, h.items[descendant], h.items[extremum]) {
				extremum = descendant
			}
		}

		// a child on the opposite polarity level only needs a single swap
		// since its own subtree is still intact
		if extremum <= leftChild+1 {
			if h.lt(onMaxLevel, h.items[extremum], h.items[index]) {
				h.items[extremum], h.items[index] = h.items[index], h.items[extremum]
			}

			return
		}

		if !h.lt(onMaxLevel, h.items[extremum], h.items[index]) {
			return
		}
		h.items[extremum], h.items[index] = h.items[index], h.items[extremum]

		// the swapped down value may now violate the opposite polarity of the
		// level in between
		parent := parentIndex(extremum)
		if h.lt(onMaxLevel, h.items[parent], h.items[extremum]) {
			h.items[extremum], h.items[parent] = h.items[parent], h.items[extremum]
		}

		index = extremum
	}
}

// parentIndex returns the index of the parent of the node at the given index.
func parentIndex(index int) int {
	return (index - 1) / 2
}

// grandparentIndex returns the index of the grandparent of the node at the given index.
func grandparentIndex(index int) int {
	return parentIndex(parentIndex(index))
}

// leftChildIndex returns the index the left child of the node at the given index would have.
func leftChildIndex(index int) int {
	return 2*index + 1
}

// level returns the tree level of the node at the given index, counting from
// zero at the root. It is computed as an exact integer binary logarithm: a
// floating point logarithm rounds near power of two boundaries and would
// place nodes on the wrong level, silently breaking the ordering invariants
// (index 16777204 is such a case).
func level(index int) int {
	return bits.Len(uint(index)+1) - 1
}

// onMinLevel returns true if the node at the given index sits on a min level
// (levels 0, 2, 4, ...).
func onMinLevel(index int) bool {
	return level(index)%2 == 0
}

// binaryLogCeil returns the ceiling of the binary logarithm of the given value.
func binaryLogCeil(value uint) int {
	if value == 1 {
		return 0
	}

	return bits.Len(value-1)
}
