// Copyright © NGRSoftlab 2020-2025

package scpd

import (
	"bufio"
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ngrsoftlab/goscp"
	"github.com/ngrsoftlab/goscp/sink"
	"github.com/ngrsoftlab/goscp/source"
)

// Dispatch runs inv against the channel described by r/w: -t invocations
// drive a Receiver, -f invocations drive a Sender. obs may be nil.
func Dispatch(ctx context.Context, inv *Invocation, r *bufio.Reader, w *bufio.Writer, obs *goscp.Observer) error {
	log := logrus.WithFields(logrus.Fields{"path": inv.Path, "recursive": inv.Recursive, "preserve": inv.Preserve})

	var err error
	switch {
	case inv.Sink:
		log.Debug("dispatching as receiver")
		rv := sink.New(r, w, inv.Recursive, inv.MustBeDirectory, inv.Preserve, obs)
		err = rv.Run(ctx, inv.Path)
	case inv.Source:
		log.Debug("dispatching as sender")
		sd := source.New(r, w, inv.Recursive, inv.Preserve, obs)
		err = sd.Run(ctx, []string{inv.Path})
	default:
		return goscp.NewError(goscp.CodeProtocolViolation, nil, "invocation specifies neither sink nor source")
	}

	if err != nil {
		log.WithError(err).Debug("dispatch finished with error")
	} else {
		log.Debug("dispatch finished")
	}
	return err
}

// Command renders the invocation the remote peer must execute to drive
// the other half of a transfer, the counterpart of what Parse decodes.
func Command(asSink bool, recursive, preserve, mustBeDirectory bool, path string) string {
	flags := "-"
	if asSink {
		flags += "t"
	} else {
		flags += "f"
	}
	if recursive {
		flags += "r"
	}
	if preserve {
		flags += "p"
	}
	if mustBeDirectory {
		flags += "d"
	}
	return "scp " + flags + " " + path
}
