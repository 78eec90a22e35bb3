// Copyright © NGRSoftlab 2020-2025

package local

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ngrsoftlab/goscp"
	"github.com/ngrsoftlab/goscp/command"
	"github.com/ngrsoftlab/goscp/executor"
	"github.com/ngrsoftlab/goscp/sink"
	"github.com/ngrsoftlab/goscp/source"
)

// SCPTransfer drives the same source.Sender/sink.Receiver state machines
// ssh.SCPTransfer uses, but over an in-process pipe instead of an SSH
// session: both ends of the "wire" are this process, moving a file or
// directory tree between two local paths while going through the full
// wire codec (headers, acks, T-record preservation) rather than a plain
// filesystem copy.
type SCPTransfer struct {
	client *Client
}

// NewSCPTransfer builds an SCPTransfer using client for the mkdir-p
// pre-step. client may be nil, in which case a default Client is used.
func NewSCPTransfer(client *Client) *SCPTransfer {
	if client == nil {
		client = NewClient(nil)
	}
	return &SCPTransfer{client: client}
}

// CopyTree copies srcPath into dstDir, recursing into subdirectories when
// recursive is set and preserving mtimes/permissions when preserve is
// set. Before the transfer, it creates dstDir with a "mkdir -p", exactly
// the pre-step ssh.SCPTransfer.Copy runs against a remote host, except
// here it is dispatched through the local goscp.Client[RunOption]
// adapter instead of a bare os.MkdirAll, so a caller driving both local
// and remote transfers through goscp.Client sees the same shape on
// either side.
func (t *SCPTransfer) CopyTree(ctx context.Context, srcPath, dstDir string, recursive, preserve bool, obs *goscp.Observer) (err error) {
	mkdirCmd := command.New("mkdir -p -m 0755 %s", command.WithArgs(escapeShellPath(dstDir)))
	if res := executor.NewClientExecutor[RunOption](t.client, WithEnvVar("LC_ALL", "C")).Run(ctx, mkdirCmd); !res.Success() {
		if res.Err != nil {
			return fmt.Errorf("local mkdir: %w", res.Err)
		}
		return fmt.Errorf("local mkdir: exit %d: %s", res.ExitCode, res.Stderr)
	}

	dstReadsFromSrc, srcToDst := io.Pipe()
	srcReadsFromDst, dstToSrc := io.Pipe()

	sd := source.New(bufio.NewReader(srcReadsFromDst), bufio.NewWriter(srcToDst), recursive, preserve, obs)
	rv := sink.New(bufio.NewReader(dstReadsFromSrc), bufio.NewWriter(dstToSrc), recursive, true, preserve, obs)

	errs := make(chan error, 2)
	go func() {
		sErr := sd.Run(ctx, []string{srcPath})
		srcToDst.Close()
		errs <- sErr
	}()
	go func() {
		rErr := rv.Run(ctx, dstDir)
		dstToSrc.Close()
		errs <- rErr
	}()

	for i := 0; i < 2; i++ {
		if e := <-errs; e != nil && err == nil {
			err = e
		}
	}
	return err
}

// escapeShellPath safely quotes a path for sh single-quoted strings, the
// same shape ssh.SCPTransfer uses for its remote mkdir-p argument.
func escapeShellPath(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}
