package minmaxheap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	// the reference divides by two until the value is exhausted, which is
	// exact for every input
	referenceLevel := func(index int) (level int) {
		for value := uint(index) + 1; value > 1; value >>= 1 {
			level++
		}

		return level
	}

	indexes := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 14, 15, 16, 62, 63, 64}
	for power := 8; power <= 30; power++ {
		boundary := 1 << power
		indexes = append(indexes, boundary-2, boundary-1, boundary, boundary+1)
	}
	// node 16777205: a float32 logarithm of 16777205 rounds up to 24.0 here
	// and reports the wrong level
	indexes = append(indexes, 16777204)

	for _, index := range indexes {
		assert.Equal(t, referenceLevel(index), level(index), "wrong level for index %d", index)
	}
	assert.Equal(t, 23, level(16777204))
}

func TestBinaryLogCeil(t *testing.T) {
	assert.Equal(t, 0, binaryLogCeil(1))
	assert.Equal(t, 1, binaryLogCeil(2))
	assert.Equal(t, 2, binaryLogCeil(3))
	assert.Equal(t, 2, binaryLogCeil(4))
	assert.Equal(t, 3, binaryLogCeil(5))
	assert.Equal(t, 24, binaryLogCeil(16777216))
	assert.Equal(t, 25, binaryLogCeil(16777217))
}

func TestInvariantsAfterInsert(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	heap := NewOrdered[int]()
	for i := 0; i < 512; i++ {
		heap.Insert(random.Intn(128))
		requireInvariants(t, heap)
	}
}

func TestInvariantsAfterDelete(t *testing.T) {
	random := rand.New(rand.NewSource(43))

	heap := NewOrderedFromSlice(random.Perm(512))
	requireInvariants(t, heap)

	for !heap.IsEmpty() {
		if random.Intn(2) == 0 {
			require.NoError(t, heap.DeleteMin())
		} else {
			require.NoError(t, heap.DeleteMax())
		}
		requireInvariants(t, heap)
	}
}

func TestInvariantsAfterFloydBuild(t *testing.T) {
	random := rand.New(rand.NewSource(44))

	// sizes around the partially filled last level are the interesting ones
	for _, size := range []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 15, 16, 17, 31, 32, 33, 100, 1000} {
		values := make([]int, size)
		for i := range values {
			values[i] = random.Intn(64)
		}

		heap := NewOrderedFromSlice(values)
		require.Equal(t, size, heap.Size())
		requireInvariants(t, heap)
	}
}

func TestWithCapacity(t *testing.T) {
	heap := NewOrdered[int](WithCapacity(100))
	assert.Equal(t, 0, heap.Size())
	assert.Equal(t, 100, cap(heap.items))
}

// requireInvariants checks completeness implicitly (the backing array has no
// holes by construction) and the min-max ordering explicitly: every node on a
// min level is not larger than any of its descendants, every node on a max
// level not smaller. Walking the ancestor chain of every node covers exactly
// these relations.
func requireInvariants(t *testing.T, heap *MinMaxHeap[int]) {
	t.Helper()

	for index := 1; index < len(heap.items); index++ {
		for ancestor := parentIndex(index); ; ancestor = parentIndex(ancestor) {
			if onMinLevel(ancestor) {
				require.LessOrEqual(t, heap.items[ancestor], heap.items[index],
					"min level violation between ancestor %d and node %d", ancestor, index)
			} else {
				require.GreaterOrEqual(t, heap.items[ancestor], heap.items[index],
					"max level violation between ancestor %d and node %d", ancestor, index)
			}

			if ancestor == 0 {
				break
			}
		}
	}
}
