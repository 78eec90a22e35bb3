// Copyright © NGRSoftlab 2020-2025

// Package sink drives scp -t semantics: it receives control headers and
// payload bytes from the peer and writes them to the local filesystem. A
// Receiver is strictly single-threaded and blocks on every read/write to
// the channel it's given.
package sink

import (
	"bufio"
	"context"
	"os"

	"github.com/ngrsoftlab/goscp"
	"github.com/ngrsoftlab/goscp/attrs"
	"github.com/ngrsoftlab/goscp/pathresolve"
	"github.com/ngrsoftlab/goscp/wire"
)

// Receiver holds the configuration and transient state of one scp -t run.
// The pending-time buffer is the only mutable field carried across
// records; the directory stack is implicit in the Go call stack since
// processDir recurses.
type Receiver struct {
	R *bufio.Reader
	W *bufio.Writer

	Recursive       bool
	MustBeDirectory bool
	Preserve        bool

	Observer *goscp.Observer

	pendingTimes *attrs.Times
}

// New builds a Receiver over r/w. obs may be nil.
func New(r *bufio.Reader, w *bufio.Writer, recursive, mustBeDirectory, preserve bool, obs *goscp.Observer) *Receiver {
	return &Receiver{R: r, W: w, Recursive: recursive, MustBeDirectory: mustBeDirectory, Preserve: preserve, Observer: obs}
}

// Run drives the full state machine against targetPath: Idle -> AwaitHeader
// -> ProcessFile|ProcessDir|ProcessTime -> AwaitHeader -> Terminal.
func (rv *Receiver) Run(ctx context.Context, targetPath string) error {
	if rv.MustBeDirectory {
		info, err := os.Stat(targetPath)
		if err != nil {
			if os.IsNotExist(err) {
				return goscp.NewError(goscp.CodeNotFound, err, "%s", targetPath)
			}
			return goscp.NewError(goscp.CodeAccessIndeterminate, err, "stat %s", targetPath)
		}
		if !info.IsDir() {
			return goscp.NewError(goscp.CodeNotADirectory, nil, "%s", targetPath)
		}
	}
	if err := wire.SendAck(rv.W); err != nil {
		return err
	}
	return rv.loop(ctx, targetPath)
}

// loop is the re-entrant core shared by the top-level call and recursive
// directory descents; it returns after an EOF (top level only) or after
// ACKing a balancing E record (recursive descents).
func (rv *Receiver) loop(ctx context.Context, targetPath string) error {
	for {
		line, err := wire.ReadLine(rv.R, true)
		if err == wire.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		kind, file, dir, tm, perr := wire.ParseHeader(line)
		if perr != nil {
			return perr
		}

		switch kind {
		case wire.KindFile:
			if err := rv.processFile(ctx, targetPath, file); err != nil {
				return err
			}
			rv.pendingTimes = nil
		case wire.KindDir:
			if !rv.Recursive {
				return goscp.NewError(goscp.CodeProtocolViolation, nil, "directory record received without recursion enabled")
			}
			if err := rv.processDir(ctx, targetPath, dir); err != nil {
				return err
			}
			rv.pendingTimes = nil
		case wire.KindTime:
			rv.pendingTimes = &attrs.Times{
				ModTime:    attrs.FromEpoch(tm.ModTime),
				AccessTime: attrs.FromEpoch(tm.AccessTime),
			}
			if err := wire.SendAck(rv.W); err != nil {
				return err
			}
		case wire.KindEnd:
			return wire.SendAck(rv.W)
		default:
			// Tolerant: unknown discriminators in the outer loop are
			// treated as already-handled ACK echoes.
		}
	}
}

func (rv *Receiver) processFile(ctx context.Context, targetPath string, hdr *wire.FileHeader) (ferr error) {
	mode := os.FileMode(hdr.Mode) & os.ModePerm

	dest, err := pathresolve.Arbitrate(targetPath, hdr.Name, true)
	if err != nil {
		sendAndReturn(rv.W, err)
		return err
	}

	if info, statErr := os.Stat(dest); statErr == nil && info.IsDir() {
		err := goscp.NewError(goscp.CodeIsADirectory, nil, "%s", dest)
		sendAndReturn(rv.W, err)
		return err
	}

	hookErr := rv.Observer.StartFileEvent(goscp.Receive, dest, hdr.Size, mode)
	defer func() {
		reported := ferr
		if reported == nil {
			reported = hookErr
		}
		rv.Observer.EndFileEvent(goscp.Receive, dest, hdr.Size, mode, reported)
	}()

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		if os.IsPermission(err) {
			werr := goscp.NewError(goscp.CodeNotWritable, err, "%s", dest)
			sendAndReturn(rv.W, werr)
			return werr
		}
		werr := goscp.NewError(goscp.CodeCannotWrite, err, "open %s", dest)
		sendAndReturn(rv.W, werr)
		return werr
	}
	defer f.Close()

	if err := wire.SendAck(rv.W); err != nil {
		return err
	}

	if err := wire.CopyPayload(ctx, f, rv.R, hdr.Size); err != nil {
		return err
	}

	term, err := rv.R.ReadByte()
	if err != nil {
		return goscp.NewError(goscp.CodeUnexpectedEof, err, "read payload terminator")
	}
	if term != 0x00 {
		return goscp.NewError(goscp.CodeProtocolViolation, nil, "peer aborted after payload for %s", dest)
	}

	if rv.Preserve {
		if err := f.Chmod(mode); err != nil {
			return goscp.NewError(goscp.CodeIoFailure, err, "chmod %s", dest)
		}
		if rv.pendingTimes != nil {
			if err := os.Chtimes(dest, rv.pendingTimes.AccessTime, rv.pendingTimes.ModTime); err != nil {
				return goscp.NewError(goscp.CodeIoFailure, err, "chtimes %s", dest)
			}
		}
	}

	return wire.SendAck(rv.W)
}

func (rv *Receiver) processDir(ctx context.Context, targetPath string, hdr *wire.DirHeader) (derr error) {
	dest, err := pathresolve.Arbitrate(targetPath, hdr.Name, false)
	if err != nil {
		sendAndReturn(rv.W, err)
		return err
	}

	mode := os.FileMode(hdr.Mode) & os.ModePerm

	if info, statErr := os.Stat(dest); statErr == nil && !info.IsDir() {
		err := goscp.NewError(goscp.CodeNotADirectory, nil, "%s exists and is not a directory", dest)
		sendAndReturn(rv.W, err)
		return err
	} else if statErr != nil {
		if mkErr := os.MkdirAll(dest, mode); mkErr != nil {
			werr := goscp.NewError(goscp.CodeCannotWrite, mkErr, "mkdir %s", dest)
			sendAndReturn(rv.W, werr)
			return werr
		}
	}

	hookErr := rv.Observer.StartFolderEvent(goscp.Receive, dest, mode)
	defer func() {
		reported := derr
		if reported == nil {
			reported = hookErr
		}
		rv.Observer.EndFolderEvent(goscp.Receive, dest, mode, reported)
	}()

	// Preserved permission application targets the original target path,
	// not the resolved destination: a faithful carry-over of legacy
	// behavior rather than a deliberate design choice.
	if rv.Preserve {
		if err := os.Chmod(targetPath, mode); err != nil && !os.IsNotExist(err) {
			return goscp.NewError(goscp.CodeIoFailure, err, "chmod %s", targetPath)
		}
		if rv.pendingTimes != nil {
			if err := os.Chtimes(dest, rv.pendingTimes.AccessTime, rv.pendingTimes.ModTime); err != nil {
				return goscp.NewError(goscp.CodeIoFailure, err, "chtimes %s", dest)
			}
		}
	}

	if err := wire.SendAck(rv.W); err != nil {
		return err
	}

	return rv.loop(ctx, dest)
}

func sendAndReturn(w *bufio.Writer, err error) {
	_ = wire.SendError(w, err.Error())
}
