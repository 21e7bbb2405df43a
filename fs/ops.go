package fs

import (
	"strings"
)

func validatePath(path string) error {
	if len(path) >= MaxFileName {
		return opErr("resolve", path, ErrMalformed)
	}
	return nil
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/ \t\r\n") {
		return ErrMalformed
	}
	return nil
}

// Create adds a new node of the given kind at path. parent_path must
// resolve to an existing directory with no existing entry named
// child_name (spec.md §4.5).
func (fsys *FS) Create(path string, kind Kind) error {
	if err := validatePath(path); err != nil {
		return err
	}
	parentPath, childName := splitParentChild(path)
	if err := validateName(childName); err != nil {
		return opErr("create", path, err)
	}

	ls := newLockSet(fsys.table)
	defer ls.unlockAll()

	parent, err := fsys.lookupAux(parentPath, ls, createOrDelete)
	if err != nil {
		return opErr("create", path, ErrNotFound)
	}

	parentKind, parentEntries := fsys.table.get(parent)
	if parentKind != Directory {
		return opErr("create", path, ErrNotDir)
	}
	if _, exists := lookupChild(childName, parentEntries); exists {
		return opErr("create", path, ErrExists)
	}

	child, err := fsys.table.create(kind)
	if err != nil {
		return opErr("create", path, ErrFull)
	}
	ls.entries = append(ls.entries, lockEntry{child, true})

	if err := addEntry(parentEntries, child, childName); err != nil {
		return opErr("create", path, err)
	}
	return nil
}

// Delete removes the node at path. A non-empty directory cannot be
// deleted (invariant I7).
func (fsys *FS) Delete(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	parentPath, childName := splitParentChild(path)

	ls := newLockSet(fsys.table)
	defer ls.unlockAll()

	parent, err := fsys.lookupAux(parentPath, ls, createOrDelete)
	if err != nil {
		return opErr("delete", path, ErrNotFound)
	}

	parentKind, parentEntries := fsys.table.get(parent)
	if parentKind != Directory {
		return opErr("delete", path, ErrNotDir)
	}

	child, ok := lookupChild(childName, parentEntries)
	if !ok {
		return opErr("delete", path, ErrNotFound)
	}
	ls.wlock(child)

	childKind, childEntries := fsys.table.get(child)
	if childKind == Directory && !isEmpty(childEntries) {
		return opErr("delete", path, ErrNotEmpty)
	}

	if err := resetEntry(parentEntries, child); err != nil {
		return opErr("delete", path, err)
	}
	if err := fsys.table.delete(child); err != nil {
		return opErr("delete", path, err)
	}
	return nil
}

// Move re-parents or renames the node at orig to dest, atomically: it
// either fully succeeds or leaves the tree exactly as it was (spec.md
// §4.5, the hard case).
func (fsys *FS) Move(orig, dest string) error {
	if err := validatePath(orig); err != nil {
		return err
	}
	if err := validatePath(dest); err != nil {
		return err
	}

	if dest == orig {
		return nil
	}
	if isWithin(orig, dest) {
		return opErr("move", dest, ErrCycle)
	}

	destParentPath, destChildName := splitParentChild(dest)
	origParentPath, origChildName := splitParentChild(orig)
	if err := validateName(destChildName); err != nil {
		return opErr("move", dest, err)
	}

	ls := newLockSet(fsys.table)
	defer ls.unlockAll()

	// Lock-ordering rule (§4.5, §5): resolve the ancestor walk of
	// whichever of orig/dest is lexicographically smaller first, giving
	// any two concurrent moves a total order on the pair of walks they
	// perform, regardless of which names them "source" and "destination".
	var origParent, destParent int
	var err error
	if orig < dest {
		if origParent, err = fsys.lookupAux(origParentPath, ls, move); err != nil {
			return opErr("move", orig, ErrNotFound)
		}
		if destParent, err = fsys.lookupAux(destParentPath, ls, move); err != nil {
			return opErr("move", dest, ErrNotFound)
		}
	} else {
		if destParent, err = fsys.lookupAux(destParentPath, ls, move); err != nil {
			return opErr("move", dest, ErrNotFound)
		}
		if origParent, err = fsys.lookupAux(origParentPath, ls, move); err != nil {
			return opErr("move", orig, ErrNotFound)
		}
	}

	_, destEntries := fsys.table.get(destParent)
	if _, exists := lookupChild(destChildName, destEntries); exists {
		return opErr("move", dest, ErrExists)
	}

	_, origEntries := fsys.table.get(origParent)
	child, ok := lookupChild(origChildName, origEntries)
	if !ok {
		return opErr("move", orig, ErrNotFound)
	}
	ls.wlock(child)

	if err := resetEntry(origEntries, child); err != nil {
		return opErr("move", orig, ErrNotFound)
	}

	if err := addEntry(destEntries, child, destChildName); err != nil {
		// Compensate: restore the entry under its original name so the
		// tree is unchanged on a failed move (spec.md §7).
		addEntry(origEntries, child, origChildName)
		return opErr("move", dest, ErrFull)
	}

	return nil
}

// isWithin reports whether dest names orig itself or a path inside orig's
// subtree (orig is a path-prefix of dest ending on a component boundary),
// which would turn the move into a cycle. Every path is within the root.
func isWithin(orig, dest string) bool {
	orig = strings.TrimSuffix(orig, "/")
	dest = strings.TrimSuffix(dest, "/")
	if orig == "" {
		return true
	}
	if !strings.HasPrefix(dest, orig) {
		return false
	}
	rest := dest[len(orig):]
	return rest == "" || strings.HasPrefix(rest, "/")
}
