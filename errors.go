// Copyright © NGRSoftlab 2020-2025

package goscp

import (
	"errors"
	"fmt"
)

// Code is the closed vocabulary of operational failures the SCP engine
// can raise, mirroring utils.ExitCodeMapper's closed-vocabulary approach
// but for protocol/filesystem causes instead of process exit codes.
type Code int

const (
	// CodeIoFailure wraps an underlying stream or filesystem I/O error.
	CodeIoFailure Code = iota
	// CodeUnexpectedEof means the stream ended while bytes were required.
	CodeUnexpectedEof
	// CodeMalformedHeader means a header did not match the wire grammar.
	CodeMalformedHeader
	// CodeProtocolViolation means a record arrived in a state that forbids it.
	CodeProtocolViolation
	// CodePeerRejected means the peer sent 0x02 ERROR with a diagnostic.
	CodePeerRejected
	// CodeAccessIndeterminate means the filesystem could not decide whether a path exists.
	CodeAccessIndeterminate
	// CodeNotFound means a required path does not exist.
	CodeNotFound
	// CodeNotADirectory means a path that must be a directory is not one.
	CodeNotADirectory
	// CodeIsADirectory means a path that must not be a directory is one.
	CodeIsADirectory
	// CodeCannotWrite means a destination could not be resolved for writing.
	CodeCannotWrite
	// CodeNotWritable means an existing destination is not writable.
	CodeNotWritable
)

func (c Code) String() string {
	switch c {
	case CodeIoFailure:
		return "io failure"
	case CodeUnexpectedEof:
		return "unexpected eof"
	case CodeMalformedHeader:
		return "malformed header"
	case CodeProtocolViolation:
		return "protocol violation"
	case CodePeerRejected:
		return "peer rejected"
	case CodeAccessIndeterminate:
		return "access indeterminate"
	case CodeNotFound:
		return "not found"
	case CodeNotADirectory:
		return "not a directory"
	case CodeIsADirectory:
		return "is a directory"
	case CodeCannotWrite:
		return "cannot write"
	case CodeNotWritable:
		return "not writable"
	default:
		return fmt.Sprintf("code %d", int(c))
	}
}

// Error is a protocol-level failure tagged with its Code. Always construct
// with NewError so errors.Is/As keep working through the wrap chain.
type Error struct {
	Code  Code
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an *Error for code, formatting msg like fmt.Sprintf.
func NewError(code Code, cause error, msg string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(msg, args...), Cause: cause}
}

// Is reports whether err is a goscp.Error carrying code, matching through wraps.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
