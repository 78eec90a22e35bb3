// Copyright © NGRSoftlab 2020-2025

package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSCPTransfer_CopyTreeSingleFile(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "nested", "dst")

	srcFile := filepath.Join(srcDir, "hello.txt")
	if err := os.WriteFile(srcFile, []byte("hello, local"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	scp := NewSCPTransfer(nil)
	if err := scp.CopyTree(context.Background(), srcFile, dstDir, false, false, nil); err != nil {
		t.Fatalf("CopyTree(): %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dstDir, "hello.txt"))
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if string(got) != "hello, local" {
		t.Errorf("contents = %q", got)
	}
}

func TestSCPTransfer_CopyTreeRecursive(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	sub := filepath.Join(srcDir, "project")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "a.txt"), []byte("abc"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	scp := NewSCPTransfer(NewClient(nil))
	if err := scp.CopyTree(context.Background(), sub, dstDir, true, false, nil); err != nil {
		t.Fatalf("CopyTree(): %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dstDir, "project", "a.txt"))
	if err != nil {
		t.Fatalf("read nested file: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("nested file contents = %q", got)
	}
}

func TestSCPTransfer_CopyTreeMissingSourceFails(t *testing.T) {
	dstDir := t.TempDir()

	scp := NewSCPTransfer(nil)
	err := scp.CopyTree(context.Background(), filepath.Join(t.TempDir(), "missing"), dstDir, false, false, nil)
	if err == nil {
		t.Fatal("CopyTree(): expected error for missing source")
	}
}
