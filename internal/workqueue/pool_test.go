package workqueue

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsEverySubmittedJob(t *testing.T) {
	pool := New(4)
	var count atomic.Int64
	for i := 0; i < 100; i++ {
		pool.Submit(func() { count.Add(1) })
	}
	pool.Close()
	assert.Equal(t, int64(100), count.Load())
}

func TestPoolSerializesSharedState(t *testing.T) {
	pool := New(8)
	var mu sync.Mutex
	shared := map[int]bool{}
	for i := 0; i < 50; i++ {
		i := i
		pool.Submit(func() {
			mu.Lock()
			shared[i] = true
			mu.Unlock()
		})
	}
	pool.Close()
	assert.Len(t, shared, 50)
}

func TestProgressCountsErrors(t *testing.T) {
	p := NewProgress("test", 3)
	p.Step(nil)
	p.Step(assertError{})
	p.Step(nil)
	assert.Equal(t, 1, p.Errors())
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
