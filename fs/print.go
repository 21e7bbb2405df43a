package fs

import (
	"fmt"
	"io"
)

// PrintTree writes a deterministic, depth-first pre-order snapshot of the
// tree to w, one line per node. Locks are taken read-only, top-down, and
// held for the duration of each subtree's traversal, so the whole walk
// observes one consistent snapshot taken under the root's read lock
// (spec.md §4.5, §6).
func (fsys *FS) PrintTree(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "/"); err != nil {
		return err
	}
	return fsys.printSubtree(w, FSRoot, "")
}

func (fsys *FS) printSubtree(w io.Writer, inumber int, prefix string) error {
	fsys.table.rlock(inumber)
	defer fsys.table.unlock(inumber, false)

	kind, entries := fsys.table.get(inumber)
	if kind != Directory {
		return nil
	}

	for i := range entries {
		if entries[i].Inumber == FreeInode {
			continue
		}
		path := prefix + "/" + entries[i].Name
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
		if err := fsys.printSubtree(w, entries[i].Inumber, path); err != nil {
			return err
		}
	}
	return nil
}
