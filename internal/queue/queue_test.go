package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_New(t *testing.T) {
	q := New[int]()
	require.NotNil(t, q)
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())
}

func TestQueue_Push(t *testing.T) {
	q := New[string]()

	q.Push("a")
	q.Push("b", "c")
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []string{"a", "b", "c"}, q.GetAndEmpty())
}

func TestQueue_GetAndEmpty(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3)

	assert.Equal(t, []int{1, 2, 3}, q.GetAndEmpty())
	assert.True(t, q.Empty())

	q.Push(4)
	assert.Equal(t, []int{4}, q.GetAndEmpty())
}

func TestQueue_Requeue(t *testing.T) {
	q := New[int]()
	q.Push(1, 2)
	taken := q.GetAndEmpty()
	q.Push(3)

	q.Requeue(taken...)
	assert.Equal(t, []int{1, 2, 3}, q.GetAndEmpty())

	q.Requeue()
	assert.True(t, q.Empty())
}

func TestQueue_Bounded(t *testing.T) {
	q := NewBounded[int](3)

	q.Push(1, 2, 3, 4)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 1, q.Dropped())

	q.Requeue(0)
	assert.Equal(t, 2, q.Dropped())
	assert.Equal(t, []int{2, 3, 4}, q.GetAndEmpty(), "the oldest items go first")
}

func TestQueue_Concurrent(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1000, q.Len())
	assert.Len(t, q.GetAndEmpty(), 1000)
}
