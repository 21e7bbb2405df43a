package fs

import "strings"

// walkMode selects the locking discipline of lookupAux, mirroring the
// source's flag argument (CREATE/DELETE vs MOVE, §4.4).
type walkMode int

const (
	createOrDelete walkMode = iota
	move
)

// splitParentChild mirrors split_parent_child_from_path: given "/a/b/c" it
// returns ("/a/b", "c"); given "x" (no slash) it returns ("", "x") so the
// parent resolves to the root. A trailing slash is stripped first.
func splitParentChild(path string) (parent, child string) {
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// tokenize splits a path into its slash-separated components. An empty
// path (root) yields no components. A path with an embedded empty
// component ("//") is malformed (spec.md §9 resolves this ambiguity as a
// failure rather than silently collapsing it).
func tokenize(path string) ([]string, error) {
	trimmed := strings.TrimSuffix(path, "/")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, "/")
	for _, p := range parts {
		if p == "" {
			return nil, opErr("resolve", path, ErrMalformed)
		}
	}
	return parts, nil
}

// Lookup walks path from the root read-only, acquiring a read lock on
// every node visited and releasing the whole walk before returning
// (spec.md §4.4). It returns the terminal inumber, or Fail if any
// component does not resolve.
func (fsys *FS) Lookup(path string) (int, error) {
	ls := newLockSet(fsys.table)
	defer ls.unlockAll()

	parts, err := tokenize(path)
	if err != nil {
		return Fail, err
	}

	current := FSRoot
	ls.rlock(current)

	for _, name := range parts {
		_, entries := fsys.table.get(current)
		next, ok := lookupChild(name, entries)
		if !ok {
			return Fail, opErr("lookup", path, ErrNotFound)
		}
		ls.rlock(next)
		current = next
	}
	return current, nil
}

// lookupAux walks path from the root, read-locking every intermediate
// ancestor and write-locking the terminal node, pushing every lock it
// takes into ls. When mode == move and a node to be locked is already in
// ls (pushed by a previous call during the same move), the acquisition is
// skipped entirely — the deadlock-avoidance rule of §4.5. Unlike Lookup,
// lookupAux does not release ls itself: the caller holds the locks across
// the rest of the operation and releases them on every exit path.
func (fsys *FS) lookupAux(path string, ls *lockSet, mode walkMode) (int, error) {
	parts, err := tokenize(path)
	if err != nil {
		return Fail, err
	}

	current := FSRoot
	previous := FSRoot
	_, entries := fsys.table.get(current)

	for _, name := range parts {
		next, ok := lookupChild(name, entries)
		if !ok {
			return Fail, opErr("resolve", path, ErrNotFound)
		}
		current = next
		_, entries = fsys.table.get(current)

		if mode == move && ls.contains(previous) {
			// Already held by an earlier walk in this move; taking it
			// again would self-deadlock on the non-reentrant rwlock.
		} else {
			ls.rlock(previous)
		}
		previous = current
	}

	if mode == move && ls.contains(previous) {
		// see above
	} else {
		ls.wlock(previous)
	}

	return current, nil
}
