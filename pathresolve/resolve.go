// Copyright © NGRSoftlab 2020-2025

// Package pathresolve translates peer-supplied, slash-separated names into
// host filesystem paths and arbitrates where a header's payload actually
// lands when the declared target is ambiguous (an existing directory, an
// existing file, or a path that doesn't exist yet).
package pathresolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngrsoftlab/goscp"
)

// ResolveLocal joins base (possibly empty) and the peer-supplied subpath
// sub, converting sub's slashes to the host's native separator. The
// filesystem itself remains the authority on rooting and symlink policy;
// this is a pure string join.
func ResolveLocal(base, sub string) string {
	native := filepath.FromSlash(sub)
	if base == "" {
		return native
	}
	return filepath.Join(base, native)
}

// Arbitrate decides the actual destination path for a header with target
// path targetPath and leaf name leaf, per the four destination-arbitration
// rules: an existing directory receives targetPath/leaf, an existing
// regular file is overwritten in place (valid only for file headers), a
// non-existent path writes through to its parent if the parent exists, and
// an indeterminate stat outcome fails rather than guesses.
func Arbitrate(targetPath, leaf string, isFileHeader bool) (string, error) {
	leafNative := filepath.FromSlash(leaf)

	info, err := os.Stat(targetPath)
	switch {
	case err == nil:
		if info.IsDir() {
			return filepath.Join(targetPath, leafNative), nil
		}
		if !isFileHeader {
			return "", goscp.NewError(goscp.CodeCannotWrite, nil, "%s: is a regular file, cannot receive a directory into it", targetPath)
		}
		return targetPath, nil
	case errors.Is(err, os.ErrNotExist):
		parent := filepath.Dir(targetPath)
		pinfo, perr := os.Stat(parent)
		if perr != nil {
			if errors.Is(perr, os.ErrNotExist) {
				return "", goscp.NewError(goscp.CodeCannotWrite, perr, "%s: parent directory does not exist", targetPath)
			}
			return "", goscp.NewError(goscp.CodeAccessIndeterminate, perr, "stat parent of %s", targetPath)
		}
		if !pinfo.IsDir() {
			return "", goscp.NewError(goscp.CodeCannotWrite, nil, "%s: parent is not a directory", targetPath)
		}
		return targetPath, nil
	default:
		return "", goscp.NewError(goscp.CodeAccessIndeterminate, err, "stat %s", targetPath)
	}
}

// SplitGlob splits a source pattern containing a `*` into (basedir,
// leaf-pattern) at the last separator preceding the first `*`. If pattern
// has no `*`, ok is false and the caller should treat it as a literal
// path instead.
func SplitGlob(pattern string) (basedir, leafPattern string, ok bool) {
	star := strings.IndexByte(pattern, '*')
	if star < 0 {
		return "", "", false
	}
	prefix := pattern[:star]
	sep := strings.LastIndexByte(prefix, '/')
	if sep < 0 {
		return ".", pattern, true
	}
	return filepath.FromSlash(pattern[:sep]), pattern[sep+1:], true
}
