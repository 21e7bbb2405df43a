package fs

import (
	"strconv"
	"testing"
)

func mustLookup(t *testing.T, fsys *FS, path string) int {
	t.Helper()
	n, err := fsys.Lookup(path)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", path, err)
	}
	return n
}

func TestCreateLookupDeleteRoundTrip(t *testing.T) {
	fsys := New()

	if err := fsys.Create("/x", Directory); err != nil {
		t.Fatalf("Create: %v", err)
	}
	n := mustLookup(t, fsys, "/x")
	if n < 1 {
		t.Fatalf("Lookup(/x) = %d, want >= 1", n)
	}

	if err := fsys.Delete("/x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := fsys.Lookup("/x"); err == nil {
		t.Fatalf("Lookup(/x) after delete succeeded, want failure")
	}
}

func TestNestedCreate(t *testing.T) {
	fsys := New()

	if err := fsys.Create("/a", Directory); err != nil {
		t.Fatalf("Create /a: %v", err)
	}
	if err := fsys.Create("/a/b", Directory); err != nil {
		t.Fatalf("Create /a/b: %v", err)
	}
	if err := fsys.Create("/a/b/c", File); err != nil {
		t.Fatalf("Create /a/b/c: %v", err)
	}
	if n := mustLookup(t, fsys, "/a/b/c"); n < 1 {
		t.Fatalf("Lookup(/a/b/c) = %d, want >= 1", n)
	}
}

func TestDeleteNonEmptyDirectoryFails(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", Directory))
	must(t, fsys.Create("/a/b", Directory))
	must(t, fsys.Create("/a/b/c", File))

	if err := fsys.Delete("/a"); err == nil {
		t.Fatalf("Delete(/a) on non-empty directory succeeded, want failure")
	}
}

func TestMoveCycleRejected(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", Directory))
	must(t, fsys.Create("/a/b", Directory))

	if err := fsys.Move("/a", "/a/b/x"); err == nil {
		t.Fatalf("Move(/a, /a/b/x) succeeded, want cycle failure")
	}
}

func TestMoveRenameSameParent(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", Directory))
	must(t, fsys.Create("/a/b", File))

	if err := fsys.Move("/a/b", "/a/c"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := fsys.Lookup("/a/b"); err == nil {
		t.Fatalf("Lookup(/a/b) after move succeeded, want failure")
	}
	if n := mustLookup(t, fsys, "/a/c"); n < 1 {
		t.Fatalf("Lookup(/a/c) = %d, want >= 1", n)
	}
}

func TestMoveSameSourceAndDestIsNoop(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", Directory))
	before := mustLookup(t, fsys, "/a")

	if err := fsys.Move("/a", "/a"); err != nil {
		t.Fatalf("Move(/a, /a): %v", err)
	}
	if after := mustLookup(t, fsys, "/a"); after != before {
		t.Fatalf("inumber changed across no-op move: %d -> %d", before, after)
	}
}

func TestMoveAcrossDirectories(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", Directory))
	must(t, fsys.Create("/b", Directory))
	must(t, fsys.Create("/a/f", File))

	before := mustLookup(t, fsys, "/a/f")
	if err := fsys.Move("/a/f", "/b/f"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := fsys.Lookup("/a/f"); err == nil {
		t.Fatalf("Lookup(/a/f) after move succeeded, want failure")
	}
	if after := mustLookup(t, fsys, "/b/f"); after != before {
		t.Fatalf("inumber changed across move: %d -> %d", before, after)
	}
}

func TestMoveDestinationExistsFails(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", File))
	must(t, fsys.Create("/b", File))

	if err := fsys.Move("/a", "/b"); err == nil {
		t.Fatalf("Move(/a, /b) onto existing name succeeded, want failure")
	}
}

func TestCreateDuplicateNameFails(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", File))
	if err := fsys.Create("/a", File); err == nil {
		t.Fatalf("second Create(/a) succeeded, want failure")
	}
}

func TestCreateUnderFileFails(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", File))
	if err := fsys.Create("/a/b", File); err == nil {
		t.Fatalf("Create(/a/b) under a file succeeded, want failure")
	}
}

func TestDirectoryCapacity(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/d", Directory))

	for i := 0; i < MaxDirEntries; i++ {
		name := "/d/f" + strconv.Itoa(i)
		if err := fsys.Create(name, Directory); err != nil {
			t.Fatalf("Create(%s) #%d: %v", name, i, err)
		}
	}
	if err := fsys.Create("/d/overflow", Directory); err == nil {
		t.Fatalf("21st Create under /d succeeded, want capacity failure")
	}
}

func TestEmbeddedEmptyComponentIsMalformed(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", Directory))
	if _, err := fsys.Lookup("/a//b"); err == nil {
		t.Fatalf("Lookup(/a//b) succeeded, want malformed-path failure")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
