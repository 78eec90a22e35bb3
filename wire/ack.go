// Copyright © NGRSoftlab 2020-2025

// Package wire is the sole accessor of the peer's input/output streams. It
// reads and writes ACK bytes, control headers, and framed payload bytes,
// and owns the LimitedReader view used to bound a single file's payload
// without giving up ownership of the underlying stream.
package wire

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/ngrsoftlab/goscp"
	"github.com/sirupsen/logrus"
)

// Ack is one of the three single-byte status codes the protocol exchanges.
type Ack byte

const (
	AckOK      Ack = 0x00
	AckWarning Ack = 0x01
	AckError   Ack = 0x02
)

// EOF reports end-of-stream when the caller opted into allowing it instead
// of treating it as a failure.
var EOF = errors.New("wire: eof")

// SendAck writes a single 0x00 byte and flushes.
func SendAck(w *bufio.Writer) error {
	if err := w.WriteByte(byte(AckOK)); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write ack")
	}
	if err := w.Flush(); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "flush ack")
	}
	return nil
}

// SendWarning writes a WARNING ack followed by a newline-terminated
// diagnostic line, the shape used for glob-miss and other recoverable
// peer-side diagnostics that don't abort the transfer.
func SendWarning(w *bufio.Writer, msg string) error {
	if err := w.WriteByte(byte(AckWarning)); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write warning")
	}
	if _, err := w.WriteString(msg + "\n"); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write warning text")
	}
	return w.Flush()
}

// SendError writes an ERROR ack followed by a newline-terminated diagnostic.
func SendError(w *bufio.Writer, msg string) error {
	if err := w.WriteByte(byte(AckError)); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write error ack")
	}
	if _, err := w.WriteString(msg + "\n"); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write error text")
	}
	return w.Flush()
}

// ReadAck reads one status byte: 0x00 is OK, 0x01 is a WARNING (the
// following line is logged, the transfer continues), 0x02 is an ERROR (the
// following line fails the transfer with PeerRejected). Any other byte is
// tolerated and treated as OK, reproducing a long-standing interop quirk of
// the reference implementation. On EOF: if allowEOF, returns wire.EOF;
// otherwise returns UnexpectedEof.
func ReadAck(r *bufio.Reader, allowEOF bool) error {
	b, err := r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) && allowEOF {
			return EOF
		}
		return goscp.NewError(goscp.CodeUnexpectedEof, err, "read ack")
	}

	switch Ack(b) {
	case AckOK:
		return nil
	case AckWarning:
		msg, rerr := ReadLine(r, false)
		if rerr != nil {
			return rerr
		}
		logrus.WithField("scp", "peer-warning").Warn(msg)
		return nil
	case AckError:
		msg, rerr := ReadLine(r, false)
		if rerr != nil {
			return rerr
		}
		return goscp.NewError(goscp.CodePeerRejected, nil, "%s", strings.TrimSpace(msg))
	default:
		return nil
	}
}

// ReadLine reads up to and including a newline, returning the bytes before
// it. A final line cut off by EOF is returned as is, without error. On EOF
// with nothing read: with allowEOF, returns wire.EOF; otherwise
// UnexpectedEof.
func ReadLine(r *bufio.Reader, allowEOF bool) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if allowEOF && len(line) == 0 {
				return "", EOF
			}
			if len(line) > 0 {
				return strings.TrimRight(line, "\n"), nil
			}
			return "", goscp.NewError(goscp.CodeUnexpectedEof, err, "read line")
		}
		return "", goscp.NewError(goscp.CodeIoFailure, err, "read line")
	}
	return strings.TrimRight(line, "\n"), nil
}

// WriteHeader writes record followed by a newline and flushes. Never
// retries; I/O failures propagate as CodeIoFailure.
func WriteHeader(w *bufio.Writer, record string) error {
	if _, err := w.WriteString(record); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write header %q", record)
	}
	if err := w.WriteByte('\n'); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "write header newline")
	}
	if err := w.Flush(); err != nil {
		return goscp.NewError(goscp.CodeIoFailure, err, "flush header")
	}
	return nil
}
