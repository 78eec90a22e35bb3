// Copyright © NGRSoftlab 2020-2025

// Package scpd parses the remote command line a peer executes over the
// channel ("scp <flags> <path>") and dispatches it to a Receiver or Sender,
// playing the role normally filled by the scp binary itself.
package scpd

import (
	"strings"

	"github.com/ngrsoftlab/goscp"
)

// Invocation is the decoded form of a `scp <flags> <path>` command line.
type Invocation struct {
	Sink            bool // -t
	Source          bool // -f
	Recursive       bool // -r
	Preserve        bool // -p
	MustBeDirectory bool // -d
	Quiet           bool // -q (supplemental)
	Verbose         bool // -v (supplemental)
	Path            string
}

// Parse splits cmdline into whitespace-separated tokens, recognizing -t,
// -f, -r, -p, -d, -q, -v; any other flag token is ignored. The final
// non-flag token is the target path or source pattern.
func Parse(cmdline string) (*Invocation, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, nil, "empty command line")
	}
	if fields[0] != "scp" {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, nil, "not an scp invocation: %q", fields[0])
	}

	inv := &Invocation{}
	var path string
	for _, field := range fields[1:] {
		if !strings.HasPrefix(field, "-") {
			path = field
			continue
		}
		for _, flag := range field[1:] {
			switch flag {
			case 't':
				inv.Sink = true
			case 'f':
				inv.Source = true
			case 'r':
				inv.Recursive = true
			case 'p':
				inv.Preserve = true
			case 'd':
				inv.MustBeDirectory = true
			case 'q':
				inv.Quiet = true
			case 'v':
				inv.Verbose = true
			default:
				// Unrecognized flags are ignored rather than rejected.
			}
		}
	}
	inv.Path = path

	if inv.Sink == inv.Source {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, nil, "invocation must specify exactly one of -t or -f")
	}
	if inv.Path == "" {
		return nil, goscp.NewError(goscp.CodeMalformedHeader, nil, "invocation missing target path")
	}
	return inv, nil
}
