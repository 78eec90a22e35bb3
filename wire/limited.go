// Copyright © NGRSoftlab 2020-2025

package wire

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/ngrsoftlab/goscp"
)

const defaultCopyBufferSize = 32 * 1024

var bufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, defaultCopyBufferSize)
		return &buf
	},
}

// LimitedReader bounds reads to exactly n bytes from the shared peer
// stream without ever calling Close on it: the wire codec owns the
// stream's lifetime for the whole session, not just one file.
type LimitedReader struct {
	r io.Reader
	n int64
}

// NewLimitedReader returns a view over r that reports io.EOF after n bytes.
func NewLimitedReader(r io.Reader, n int64) *LimitedReader {
	return &LimitedReader{r: r, n: n}
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	return n, err
}

// CopyPayload streams exactly n bytes from src to dst using a pooled
// buffer, checking ctx between reads so a cancellation unblocks a stalled
// transfer instead of running to completion.
func CopyPayload(ctx context.Context, dst io.Writer, src io.Reader, n int64) error {
	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)
	buf := *bufp

	lr := NewLimitedReader(src, n)
	var written int64
	for written < n {
		if err := ctx.Err(); err != nil {
			return goscp.NewError(goscp.CodeIoFailure, err, "payload copy canceled after %d/%d bytes", written, n)
		}
		rn, rerr := lr.Read(buf)
		if rn > 0 {
			wn, werr := dst.Write(buf[:rn])
			written += int64(wn)
			if werr != nil {
				return goscp.NewError(goscp.CodeIoFailure, werr, "write payload")
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return goscp.NewError(goscp.CodeIoFailure, rerr, "read payload")
		}
	}
	if written != n {
		return goscp.NewError(goscp.CodeUnexpectedEof, nil, "payload short by %d bytes", n-written)
	}
	return nil
}

// DiscardPayload reads and throws away exactly n bytes, used when a
// receiver rejects a file after the header ack but must still drain the
// payload to keep the stream's framing in sync.
func DiscardPayload(ctx context.Context, src io.Reader, n int64) error {
	return CopyPayload(ctx, io.Discard, src, n)
}
