// Copyright © NGRSoftlab 2020-2025

package ssh

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ngrsoftlab/goscp"
	"github.com/ngrsoftlab/goscp/attrs"
	"github.com/ngrsoftlab/goscp/command"
	"github.com/ngrsoftlab/goscp/executor"
	"github.com/ngrsoftlab/goscp/scpd"
	"github.com/ngrsoftlab/goscp/sender"
	"github.com/ngrsoftlab/goscp/sink"
	"github.com/ngrsoftlab/goscp/source"
	"github.com/ngrsoftlab/goscp/utils"
	"github.com/ngrsoftlab/goscp/wire"
	gossh "golang.org/x/crypto/ssh"
)

const (
	defaultSCPBufferSize = 2 << 14 // default 32 KB buffer for I/O
	defaultSCPDirMode    = 0o755   // default permission for created directories
)

// SCPOption customizes scpConfig for a transfer.
type SCPOption func(config *scpConfig)

// scpConfig holds settings for SCP transfer commands.
type scpConfig struct {
	scpBinPath string      // path to the scp executable
	bufSize    int         // size for bufio reader/writer
	folderMode os.FileMode // mode for intermediate directories
}

func newScpConfig(mode os.FileMode, opts ...SCPOption) *scpConfig {
	cfg := &scpConfig{
		folderMode: defaultSCPDirMode,
		bufSize:    defaultSCPBufferSize,
		scpBinPath: "scp",
	}
	if mode > 0 {
		cfg.folderMode = mode
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithScpBinPath sets a custom scp binary path.
func WithScpBinPath(path string) SCPOption {
	return func(config *scpConfig) {
		if path != "" {
			config.scpBinPath = path
		}
	}
}

// WithBufferSize sets a custom bufio buffer size.
func WithBufferSize(bufSize int) SCPOption {
	return func(config *scpConfig) {
		if bufSize > 0 {
			config.bufSize = bufSize
		}
	}
}

// SCPTransfer implements goscp.FileTransfer by driving the wire codec
// directly over a remote `scp -t`/`scp -f` session, and additionally
// offers whole-directory push/pull built on the Sender/Receiver state
// machines.
type SCPTransfer struct {
	client *Client
}

// NewSCPTransfer initializes an SCPTransfer using an SSH client.
func NewSCPTransfer(client *Client) *SCPTransfer {
	return &SCPTransfer{client: client}
}

// pipes opens a session, starts cmdline on it, and returns buffered
// views of its stdin/stdout along with a function that finalizes the
// session (closing stdin, waiting, mapping the exit code to a message).
func (t *SCPTransfer) pipes(ctx context.Context, cfg *scpConfig, cmdline string) (*bufio.Reader, *bufio.Writer, func() error, error) {
	cmdline = cfg.scpBinPath + strings.TrimPrefix(cmdline, "scp")
	sess, err := t.client.OpenSession(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open ssh session: %w", err)
	}

	stdinPipe, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		return nil, nil, nil, fmt.Errorf("get stdin pipe: %w", err)
	}
	stdoutPipe, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		return nil, nil, nil, fmt.Errorf("get stdout pipe: %w", err)
	}
	stderrPipe, err := sess.StderrPipe()
	if err != nil {
		sess.Close()
		return nil, nil, nil, fmt.Errorf("get stderr pipe: %w", err)
	}

	var errBuf bytes.Buffer
	errCh := make(chan error, 1)
	go func() { _, copyErr := errBuf.ReadFrom(stderrPipe); errCh <- copyErr }()

	if err := sess.Start(cmdline); err != nil {
		sess.Close()
		return nil, nil, nil, fmt.Errorf("start %q: %w", cmdline, err)
	}

	r := bufio.NewReaderSize(stdoutPipe, cfg.bufSize)
	w := bufio.NewWriterSize(stdinPipe, cfg.bufSize)

	finish := func() error {
		stdinPipe.Close()
		waitErr := sess.Wait()
		<-errCh
		defer sess.Close()
		if waitErr == nil {
			return nil
		}
		var exitErr *gossh.ExitError
		if errors.As(waitErr, &exitErr) {
			code := exitErr.ExitStatus()
			msg := t.client.mapper.Lookup(code)
			wrapped := fmt.Errorf("%s [%s]: %w -- %s", cmdline, msg, waitErr, errBuf.String())
			return goscp.NewError(classifyExitCode(t.client.mapper, code), wrapped, "remote scp command failed")
		}
		return fmt.Errorf("%s: %w -- %s", cmdline, waitErr, errBuf.String())
	}

	return r, w, finish, nil
}

// classifyExitCode turns the remote `scp` binary's exit status into one of
// the engine's own failure codes, so a caller driving SCPTransfer sees the
// same goscp.Code taxonomy it would get from the in-process wire/sink/source
// state machines instead of a bare gossh.ExitError.
func classifyExitCode(mapper *utils.ExitCodeMapper, code int) goscp.Code {
	switch mapper.Classify(code) {
	case utils.ExitClassNotFound:
		return goscp.CodeNotFound
	case utils.ExitClassPermission:
		return goscp.CodeNotWritable
	case utils.ExitClassIO:
		return goscp.CodeIoFailure
	default:
		return goscp.CodeProtocolViolation
	}
}

// Copy uploads spec.Content to the remote host by driving `scp -t`
// directly with the wire codec: it handles arbitrary in-memory or
// streamed content, not just content already sitting on local disk.
func (t *SCPTransfer) Copy(ctx context.Context, spec *goscp.FileSpec, opts ...SCPOption) (cerr error) {
	if err := spec.Validate(); err != nil {
		return err
	}

	cfg := newScpConfig(spec.FolderMode, opts...)
	target := escapeShellPath(spec.TargetDir)

	mkdirCmd := command.New("mkdir -p -m %04o %s", command.WithArgs(cfg.folderMode.Perm(), target))
	if res := executor.NewClientExecutor[RunOption](t.client, WithEnvVar("LC_ALL", "C")).Run(ctx, mkdirCmd); !res.Success() {
		if res.Err != nil {
			return fmt.Errorf("remote mkdir: %w", res.Err)
		}
		return fmt.Errorf("remote mkdir: exit %d: %s", res.ExitCode, res.Stderr)
	}

	cmdline := scpd.Command(true, false, spec.Preserve, false, target)
	r, w, finish, err := t.pipes(ctx, cfg, cmdline)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := finish(); ferr != nil && cerr == nil {
			cerr = ferr
		}
	}()

	if err := wire.ReadAck(r, false); err != nil {
		return fmt.Errorf("initial ack: %w", err)
	}

	reader, size, err := spec.Content.ReaderAndSize()
	if err != nil {
		return err
	}
	defer reader.Close()

	if spec.Preserve {
		epoch := attrs.ToEpoch(spec.ModTime)
		atimeEpoch := attrs.ToEpoch(spec.AccessTime)
		if atimeEpoch == 0 {
			atimeEpoch = epoch
		}
		if err := wire.WriteHeader(w, wire.FormatTime(epoch, atimeEpoch)); err != nil {
			return err
		}
		if err := wire.ReadAck(r, false); err != nil {
			return fmt.Errorf("ack after time header: %w", err)
		}
	}

	mode := uint32(spec.Mode.Perm())
	if mode == 0 {
		mode = 0644
	}
	if err := wire.WriteHeader(w, wire.FormatFile(mode, size, spec.Filename)); err != nil {
		return err
	}
	if err := wire.ReadAck(r, false); err != nil {
		return fmt.Errorf("ack after file header: %w", err)
	}

	if err := wire.CopyPayload(ctx, w, reader, size); err != nil {
		return err
	}
	if err := w.WriteByte(0x00); err != nil {
		return fmt.Errorf("write payload terminator: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush payload terminator: %w", err)
	}
	return wire.ReadAck(r, false)
}

// Download reads a single remote file named by remotePath into memory and
// returns its contents and permission bits, driving `scp -f` with a
// Receiver-shaped single-file read directly over the wire codec.
func (t *SCPTransfer) Download(ctx context.Context, remotePath string, opts ...SCPOption) (data []byte, mode os.FileMode, err error) {
	cfg := newScpConfig(0, opts...)
	cmdline := scpd.Command(false, false, false, false, escapeShellPath(remotePath))
	r, w, finish, err := t.pipes(ctx, cfg, cmdline)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if ferr := finish(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	if err := wire.SendAck(w); err != nil {
		return nil, 0, err
	}

	line, err := wire.ReadLine(r, false)
	if err != nil {
		return nil, 0, err
	}
	kind, file, _, _, perr := wire.ParseHeader(line)
	if perr != nil {
		return nil, 0, perr
	}
	if kind != wire.KindFile {
		return nil, 0, goscp.NewError(goscp.CodeProtocolViolation, nil, "expected file header, got %q", line)
	}

	if err := wire.SendAck(w); err != nil {
		return nil, 0, err
	}

	var buf bytes.Buffer
	if err := wire.CopyPayload(ctx, &buf, r, file.Size); err != nil {
		return nil, 0, err
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, 0, goscp.NewError(goscp.CodeUnexpectedEof, err, "read payload terminator")
	}
	if err := wire.SendAck(w); err != nil {
		return nil, 0, err
	}

	return buf.Bytes(), os.FileMode(file.Mode) & os.ModePerm, nil
}

// SendTree drives a local recursive upload of localPath into remotePath
// by starting `scp -t` on the peer and running a Sender against the
// session's pipes.
func (t *SCPTransfer) SendTree(ctx context.Context, localPath, remotePath string, recursive, preserve bool, obs *goscp.Observer, opts ...SCPOption) (serr error) {
	cfg := newScpConfig(0, opts...)
	cmdline := scpd.Command(true, recursive, preserve, false, escapeShellPath(remotePath))
	r, w, finish, err := t.pipes(ctx, cfg, cmdline)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := finish(); ferr != nil && serr == nil {
			serr = ferr
		}
	}()

	sd := source.New(r, w, recursive, preserve, obs)
	return sd.Run(ctx, []string{localPath})
}

// ReceiveTree drives a local recursive download of remotePath into
// localPath by starting `scp -f` on the peer and running a Receiver
// against the session's pipes.
func (t *SCPTransfer) ReceiveTree(ctx context.Context, remotePath, localPath string, recursive, preserve bool, obs *goscp.Observer, opts ...SCPOption) (rerr error) {
	cfg := newScpConfig(0, opts...)
	cmdline := scpd.Command(false, recursive, preserve, false, escapeShellPath(remotePath))
	r, w, finish, err := t.pipes(ctx, cfg, cmdline)
	if err != nil {
		return err
	}
	defer func() {
		if ferr := finish(); ferr != nil && rerr == nil {
			rerr = ferr
		}
	}()

	rv := sink.New(r, w, recursive, false, preserve, obs)
	return rv.Run(ctx, localPath)
}

// escapeShellPath safely quotes a path for sh single-quoted strings.
func escapeShellPath(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// Send implements sender.Sender by streaming src to destPath in one shot,
// without requiring the caller to build a goscp.FileSpec by hand. src must
// be seekable, the same constraint FileContent.Reader carries. When
// preserve is true, modTime is carried to the peer via a T record ahead
// of the C header, mirroring the `-p` flag.
func (t *SCPTransfer) Send(ctx context.Context, src io.Reader, destPath string, mode os.FileMode, preserve bool, modTime time.Time) error {
	dir, name := filepath.Split(destPath)
	if dir == "" {
		dir = "."
	}
	spec := &goscp.FileSpec{
		TargetDir:  dir,
		Filename:   name,
		Mode:       mode,
		FolderMode: defaultSCPDirMode,
		Content:    &goscp.FileContent{Reader: src},
		Preserve:   preserve,
		ModTime:    modTime,
	}
	return t.Copy(ctx, spec)
}

var _ sender.Sender = (*SCPTransfer)(nil)
