// Copyright © NGRSoftlab 2020-2025

package executor

import (
	"context"

	"github.com/ngrsoftlab/goscp/command"
	"github.com/ngrsoftlab/goscp/parser"
)

// Executor is the abstraction over running a command, letting callers that
// only need a remote pre-step (e.g. ensuring a directory exists before a
// transfer) depend on this narrow interface instead of a full goscp.Client.
type Executor interface {
	Run(ctx context.Context, cmd *command.Command) *parser.RawResult
}
