// Package fs implements the concurrent in-memory tree at the core of
// TecnicoFS: a fixed-size inode table, fixed-capacity directory entry
// arrays, and the path-resolution algorithm that acquires per-node
// reader/writer locks hand-over-hand while walking a path.
//
// Every node is identified by its inumber, a stable index into the table.
// Slot 0 always holds the root directory. A node is reachable from the
// root by at most one path: the tree never forms a cycle, and every
// directory entry either names a live inode or is free.
package fs

const (
	// InodeTableSize is the fixed capacity of the inode table. Slot 0 is
	// reserved for the root directory.
	InodeTableSize = 50

	// MaxDirEntries is the fixed number of (name, inumber) slots a
	// directory inode carries.
	MaxDirEntries = 20

	// MaxFileName bounds the length of a full path, including separators.
	MaxFileName = 100

	// StackSize is the lock-set's conservative initial capacity.
	StackSize = 50

	// FreeInode marks an empty directory entry slot.
	FreeInode = -1

	// FSRoot is the inumber of the root directory, fixed for the
	// lifetime of the filesystem.
	FSRoot = 0
)

// Reply sentinels, carried in the 4-byte wire reply (spec glossary).
const (
	Success = 0
	Fail    = -1
	Abort   = -2
)

// Kind is the type of a node.
type Kind int

const (
	Free Kind = iota
	File
	Directory
)

func (k Kind) String() string {
	switch k {
	case Free:
		return "free"
	case File:
		return "file"
	case Directory:
		return "directory"
	default:
		return "unknown"
	}
}

// FS is a single TecnicoFS tree: the inode table plus the operations that
// compose path resolution with directory-entry edits. An *FS is safe for
// concurrent use by multiple goroutines; all serialization is done with
// per-inode locks, not a global lock.
type FS struct {
	table *Table
}

// New creates a filesystem with an empty root directory at FSRoot.
func New() *FS {
	t := newTable()
	root, err := t.create(Directory)
	if err != nil {
		// The table is freshly allocated; the first Create can only
		// fail if InodeTableSize is zero, which is a programming error.
		panic("fs: failed to create root: " + err.Error())
	}
	t.unlock(root, true)
	if root != FSRoot {
		panic("fs: root did not land on slot 0")
	}
	return &FS{table: t}
}

// Table returns the underlying inode table. All of Table's methods are
// unexported, so outside package fs the returned value is opaque.
func (fsys *FS) Table() *Table { return fsys.table }
