// Copyright © NGRSoftlab 2020-2025

package pathresolve

import (
	"os"
	"path/filepath"

	"github.com/ngrsoftlab/goscp"
)

// EntryKind classifies a matched glob entry so the Sender can decide
// whether it needs to recurse, warn, or stream it as a plain file.
type EntryKind int

const (
	EntryRegular EntryKind = iota
	EntryDir
	EntryOther
)

// Entry is one basedir-relative name matched by a glob pattern.
type Entry struct {
	Name string
	Path string
	Kind EntryKind
	Mode os.FileMode
}

// Expand scans basedir for entries matching leafPattern (a shell-style
// pattern understood by path/filepath.Match) and classifies each. The
// result is sorted by Name for deterministic transfer ordering.
func Expand(basedir, leafPattern string) ([]Entry, error) {
	if _, merr := filepath.Match(leafPattern, ""); merr != nil {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, merr, "bad glob pattern %q", leafPattern)
	}
	dirEntries, err := os.ReadDir(basedir)
	if err != nil {
		return nil, goscp.NewError(goscp.CodeNotFound, err, "read dir %s", basedir)
	}

	var out []Entry
	for _, de := range dirEntries {
		matched, merr := filepath.Match(leafPattern, de.Name())
		if merr != nil {
			return nil, goscp.NewError(goscp.CodeMalformedHeader, merr, "bad glob pattern %q", leafPattern)
		}
		if !matched {
			continue
		}
		info, ierr := de.Info()
		if ierr != nil {
			return nil, goscp.NewError(goscp.CodeAccessIndeterminate, ierr, "stat %s", de.Name())
		}
		kind := EntryRegular
		switch {
		case info.IsDir():
			kind = EntryDir
		case !info.Mode().IsRegular():
			kind = EntryOther
		}
		out = append(out, Entry{
			Name: de.Name(),
			Path: filepath.Join(basedir, de.Name()),
			Kind: kind,
			Mode: info.Mode(),
		})
	}
	return out, nil
}
