package dispose_test

import (
	"sync"
	"testing"
	"time"

	"github.com/delaneyj/bindable/dispose"
	"github.com/stretchr/testify/assert"
)

func TestRecursiveMutexReenter(t *testing.T) {
	var mu dispose.RecursiveMutex

	mu.Lock()
	mu.Lock()
	assert.True(t, mu.TryLock())
	mu.Unlock()
	mu.Unlock()
	mu.Unlock()

	assert.True(t, mu.TryLock())
	mu.Unlock()
}

func TestRecursiveMutexExcludesOtherGoroutines(t *testing.T) {
	var mu dispose.RecursiveMutex

	mu.Lock()
	acquired := make(chan struct{})
	go func() {
		mu.Lock()
		close(acquired)
		mu.Unlock()
	}()

	select {
	case <-acquired:
		assert.Fail(t, "lock acquired while held by another goroutine")
	case <-time.After(20 * time.Millisecond):
	}

	mu.Unlock()
	<-acquired
}

func TestRecursiveMutexTryLockContended(t *testing.T) {
	var mu dispose.RecursiveMutex

	mu.Lock()
	defer mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.False(t, mu.TryLock())
	}()
	wg.Wait()
}

func TestRecursiveMutexUnlockByStranger(t *testing.T) {
	var mu dispose.RecursiveMutex
	assert.Panics(t, func() { mu.Unlock() })
}
