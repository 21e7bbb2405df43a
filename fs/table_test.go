package fs

import "testing"

func TestTableCreateFillsCapacity(t *testing.T) {
	table := newTable()
	// Slot 0 is never reserved here; newTable alone doesn't seed a root.
	for i := 0; i < InodeTableSize; i++ {
		n, err := table.create(File)
		if err != nil {
			t.Fatalf("create #%d: %v", i, err)
		}
		table.unlock(n, true)
	}
	if _, err := table.create(File); err == nil {
		t.Fatalf("create past capacity succeeded, want ErrFull")
	}
}

func TestTableDeleteFreesSlotForReuse(t *testing.T) {
	table := newTable()
	n, err := table.create(File)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := table.delete(n); err != nil {
		t.Fatalf("delete: %v", err)
	}
	table.unlock(n, true)

	n2, err := table.create(Directory)
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	table.unlock(n2, true)
	if n2 != n {
		t.Fatalf("freed slot %d was not reused, got %d", n, n2)
	}
}

func TestTableDeleteAlreadyFreeFails(t *testing.T) {
	table := newTable()
	n, err := table.create(File)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := table.delete(n); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := table.delete(n); err == nil {
		t.Fatalf("second delete on already-free slot succeeded, want error")
	}
	table.unlock(n, true)
}
