package fs

import (
	"strings"
	"testing"
)

func TestPrintTreeFormat(t *testing.T) {
	fsys := New()
	must(t, fsys.Create("/a", Directory))
	must(t, fsys.Create("/a/b", File))
	must(t, fsys.Create("/c", File))

	var sb strings.Builder
	must(t, fsys.PrintTree(&sb))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	want := map[string]bool{"/": true, "/a": true, "/a/b": true, "/c": true}
	if len(lines) != len(want) {
		t.Fatalf("PrintTree produced %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for _, l := range lines {
		if !want[l] {
			t.Fatalf("unexpected line %q in print_tree output", l)
		}
	}
}

func TestPrintTreeEmptyRoot(t *testing.T) {
	fsys := New()
	var sb strings.Builder
	must(t, fsys.PrintTree(&sb))
	if got := sb.String(); got != "/\n" {
		t.Fatalf("PrintTree on empty root = %q, want \"/\\n\"", got)
	}
}
