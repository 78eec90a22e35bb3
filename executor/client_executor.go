// Copyright © NGRSoftlab 2020-2025

package executor

import (
	"context"

	"github.com/ngrsoftlab/goscp"
	"github.com/ngrsoftlab/goscp/parser"

	"github.com/ngrsoftlab/goscp/command"
)

// ClientExecutor adapts any goscp.Client[O] to the Executor interface,
// fixing a set of options to apply on every Run.
type ClientExecutor[O any] struct {
	Client goscp.Client[O]
	Opts   []O
}

// NewClientExecutor builds a ClientExecutor over client with opts applied
// to every command it runs.
func NewClientExecutor[O any](client goscp.Client[O], opts ...O) *ClientExecutor[O] {
	return &ClientExecutor[O]{Client: client, Opts: opts}
}

// Run executes cmd via the underlying client, folding any error into the
// returned RawResult rather than returning it separately.
func (e *ClientExecutor[O]) Run(ctx context.Context, cmd *command.Command) *parser.RawResult {
	result, err := e.Client.Run(ctx, cmd, nil, e.Opts...)
	if result == nil {
		result = parser.NewRawResult(cmd)
	}
	if err != nil {
		result.Err = err
	}
	return result
}
