// Copyright © NGRSoftlab 2020-2025

package pathresolve

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	entries, err := Expand(dir, "*.txt")
	if err != nil {
		t.Fatalf("Expand(): %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expand() returned %d entries; want 2", len(entries))
	}
	for _, e := range entries {
		if e.Kind != EntryRegular {
			t.Errorf("Expand() entry %q kind = %v; want EntryRegular", e.Name, e.Kind)
		}
	}
}

func TestExpandClassifiesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	entries, err := Expand(dir, "sub*")
	if err != nil {
		t.Fatalf("Expand(): %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != EntryDir {
		t.Fatalf("Expand() = %+v; want one EntryDir", entries)
	}
}

func TestExpandBadPattern(t *testing.T) {
	dir := t.TempDir()
	if _, err := Expand(dir, "[unterminated"); err == nil {
		t.Fatal("Expand(): expected error for malformed pattern")
	}
}
