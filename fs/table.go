package fs

import "sync"

// inode is one slot in the table: a kind tag, a reader/writer lock guarding
// the kind and payload, and (for directories) the fixed entry array.
type inode struct {
	mu      sync.RWMutex
	kind    Kind
	entries Entries
}

// Table is the fixed-size inode table (spec.md §4.1). Allocation is
// guarded by a single table-wide mutex held only for the scan-and-mark
// step; everything else is guarded per-slot.
type Table struct {
	allocMu sync.Mutex
	inodes  [InodeTableSize]inode
}

func newTable() *Table {
	return &Table{}
}

// create finds the first Free slot, marks it with kind, and returns it
// write-locked: the caller is responsible for unlocking it. A slot whose
// lock is currently held (by any goroutine, including the caller's own
// lock-set) is skipped rather than waited on. Fails without side effects
// if no free, unlocked slot is found.
func (t *Table) create(kind Kind) (int, error) {
	t.allocMu.Lock()
	defer t.allocMu.Unlock()

	for i := range t.inodes {
		n := &t.inodes[i]
		if !n.mu.TryLock() {
			continue
		}
		if n.kind != Free {
			n.mu.Unlock()
			continue
		}
		n.kind = kind
		if kind == Directory {
			n.entries = newEntries()
		}
		return i, nil
	}
	return Fail, opErr("create", "", ErrFull)
}

// get is a snapshot read of a slot's kind and a pointer to its entry
// array. The caller must hold at least a read lock on inumber.
func (t *Table) get(inumber int) (Kind, *Entries) {
	n := &t.inodes[inumber]
	return n.kind, &n.entries
}

// delete marks the slot Free. Fails if it is already Free. Caller must
// hold the write lock.
func (t *Table) delete(inumber int) error {
	n := &t.inodes[inumber]
	if n.kind == Free {
		return opErr("delete", "", ErrAlreadyFree)
	}
	n.kind = Free
	return nil
}

func (t *Table) rlock(inumber int)   { t.inodes[inumber].mu.RLock() }
func (t *Table) wlock(inumber int)   { t.inodes[inumber].mu.Lock() }
func (t *Table) unlock(inumber int, write bool) {
	if write {
		t.inodes[inumber].mu.Unlock()
	} else {
		t.inodes[inumber].mu.RUnlock()
	}
}
