// Copyright © NGRSoftlab 2020-2025

// Package source drives scp -f semantics: it reads the local filesystem
// and writes control headers and payload bytes to the peer. A Sender is
// strictly single-threaded and blocks on every read/write to the channel
// it's given.
package source

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ngrsoftlab/goscp"
	"github.com/ngrsoftlab/goscp/attrs"
	"github.com/ngrsoftlab/goscp/pathresolve"
	"github.com/ngrsoftlab/goscp/wire"
)

// Sender holds the configuration of one scp -f run.
type Sender struct {
	R *bufio.Reader
	W *bufio.Writer

	Recursive bool
	Preserve  bool

	Observer *goscp.Observer
}

// New builds a Sender over r/w. obs may be nil.
func New(r *bufio.Reader, w *bufio.Writer, recursive, preserve bool, obs *goscp.Observer) *Sender {
	return &Sender{R: r, W: w, Recursive: recursive, Preserve: preserve, Observer: obs}
}

// Run reads the initial ACK from the peer, then streams every pattern in
// paths in order.
func (sd *Sender) Run(ctx context.Context, paths []string) error {
	if err := wire.ReadAck(sd.R, false); err != nil {
		return err
	}
	for _, pattern := range paths {
		if err := sd.sendPattern(ctx, filepath.FromSlash(pattern)); err != nil {
			return err
		}
	}
	return nil
}

func (sd *Sender) sendPattern(ctx context.Context, pattern string) error {
	basedir, leaf, isGlob := pathresolve.SplitGlob(pattern)
	if isGlob {
		entries, err := pathresolve.Expand(basedir, leaf)
		if err != nil {
			return err
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		for _, e := range entries {
			switch e.Kind {
			case pathresolve.EntryRegular:
				if err := sd.sendFile(ctx, e.Path, e.Name); err != nil {
					return err
				}
			case pathresolve.EntryDir:
				if sd.Recursive {
					if err := sd.sendDir(ctx, e.Path, e.Name); err != nil {
						return err
					}
				} else if err := wire.SendWarning(sd.W, e.Name+" not a regular file"); err != nil {
					return err
				}
			default:
				if err := wire.SendWarning(sd.W, e.Name+" not a regular file"); err != nil {
					return err
				}
			}
		}
		return nil
	}

	info, err := os.Stat(pattern)
	if err != nil {
		if os.IsNotExist(err) {
			return goscp.NewError(goscp.CodeNotFound, err, "%s", pattern)
		}
		return goscp.NewError(goscp.CodeAccessIndeterminate, err, "stat %s", pattern)
	}
	leafName := filepath.Base(pattern)
	switch {
	case info.IsDir():
		if !sd.Recursive {
			return goscp.NewError(goscp.CodeIsADirectory, nil, "%s is a directory, recursion not enabled", pattern)
		}
		return sd.sendDir(ctx, pattern, leafName)
	case info.Mode().IsRegular():
		return sd.sendFile(ctx, pattern, leafName)
	default:
		return goscp.NewError(goscp.CodeNotADirectory, nil, "%s is neither a regular file nor a directory", pattern)
	}
}

func (sd *Sender) sendFile(ctx context.Context, path, leafName string) (ferr error) {
	info, err := os.Stat(path)
	if err != nil {
		return goscp.NewError(goscp.CodeNotFound, err, "stat %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "open %s", path)
	}
	defer f.Close()

	hookErr := sd.Observer.StartFileEvent(goscp.Send, path, info.Size(), info.Mode())
	defer func() {
		reported := ferr
		if reported == nil {
			reported = hookErr
		}
		sd.Observer.EndFileEvent(goscp.Send, path, info.Size(), info.Mode(), reported)
	}()

	if sd.Preserve {
		if err := sd.sendTime(info.ModTime()); err != nil {
			return err
		}
	}

	mode := uint32(0644)
	if sd.Preserve {
		mode = uint32(info.Mode().Perm())
	}
	if err := wire.WriteHeader(sd.W, wire.FormatFile(mode, info.Size(), leafName)); err != nil {
		return err
	}
	if err := wire.ReadAck(sd.R, false); err != nil {
		return err
	}

	if err := wire.CopyPayload(ctx, sd.W, f, info.Size()); err != nil {
		return err
	}
	if err := sd.W.WriteByte(0x00); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write payload terminator")
	}
	if err := sd.W.Flush(); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "flush payload terminator")
	}
	return wire.ReadAck(sd.R, false)
}

func (sd *Sender) sendDir(ctx context.Context, path, leafName string) (derr error) {
	info, err := os.Stat(path)
	if err != nil {
		return goscp.NewError(goscp.CodeNotFound, err, "stat %s", path)
	}

	hookErr := sd.Observer.StartFolderEvent(goscp.Send, path, info.Mode())
	defer func() {
		reported := derr
		if reported == nil {
			reported = hookErr
		}
		sd.Observer.EndFolderEvent(goscp.Send, path, info.Mode(), reported)
	}()

	if sd.Preserve {
		if err := sd.sendTime(info.ModTime()); err != nil {
			return err
		}
	}

	mode := uint32(0755)
	if sd.Preserve {
		mode = uint32(info.Mode().Perm())
	}
	if err := wire.WriteHeader(sd.W, wire.FormatDir(mode, leafName)); err != nil {
		return err
	}
	if err := wire.ReadAck(sd.R, false); err != nil {
		return err
	}

	children, err := os.ReadDir(path)
	if err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "read dir %s", path)
	}
	for _, child := range children {
		childPath := filepath.Join(path, child.Name())
		cinfo, ierr := child.Info()
		if ierr != nil {
			return goscp.NewError(goscp.CodeAccessIndeterminate, ierr, "stat %s", childPath)
		}
		switch {
		case cinfo.IsDir():
			if err := sd.sendDir(ctx, childPath, child.Name()); err != nil {
				return err
			}
		case cinfo.Mode().IsRegular():
			if err := sd.sendFile(ctx, childPath, child.Name()); err != nil {
				return err
			}
		default:
			// Other entry types (symlinks, devices, sockets) are silently
			// skipped rather than warned on, unlike glob misses.
		}
	}

	if err := wire.WriteHeader(sd.W, wire.FormatEnd()); err != nil {
		return err
	}
	return wire.ReadAck(sd.R, false)
}

// sendTime emits a T record using t for both mtime and atime: os.FileInfo
// exposes no portable access time, so the modification time stands in for
// both, matching the common simplification taken by portable SCP clients.
func (sd *Sender) sendTime(t time.Time) error {
	epoch := attrs.ToEpoch(t)
	if err := wire.WriteHeader(sd.W, wire.FormatTime(epoch, epoch)); err != nil {
		return err
	}
	return wire.ReadAck(sd.R, false)
}
