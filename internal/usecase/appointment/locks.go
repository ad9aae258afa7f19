package appointment

import "sync"

// LockTable serializes lifecycle operations per doctor so the
// check-conflict → persist region is atomic for one calendar without
// blocking other doctors.
type LockTable struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewLockTable() *LockTable {
	return &LockTable{locks: make(map[uint]*sync.Mutex)}
}

// Lock acquires the doctor's mutex and returns its release func.
func (t *LockTable) Lock(doctorID uint) func() {
	t.mu.Lock()
	l, ok := t.locks[doctorID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[doctorID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
