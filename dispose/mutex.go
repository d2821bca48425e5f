package dispose

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// RecursiveMutex is a mutual exclusion lock that the goroutine holding it may
// lock again. Every Lock must be paired with an Unlock on the same goroutine.
// Subscriber callbacks run with their container locked and may call back into
// it.
type RecursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (m *RecursiveMutex) Lock() {
	gid := goid.Get()
	if m.owner.Load() == gid {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(gid)
	m.depth = 1
}

func (m *RecursiveMutex) Unlock() {
	if m.owner.Load() != goid.Get() {
		panic("dispose: unlock of RecursiveMutex not held by this goroutine")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// TryLock reports whether the lock was acquired without blocking.
func (m *RecursiveMutex) TryLock() bool {
	gid := goid.Get()
	if m.owner.Load() == gid {
		m.depth++
		return true
	}
	if !m.mu.TryLock() {
		return false
	}
	m.owner.Store(gid)
	m.depth = 1
	return true
}
