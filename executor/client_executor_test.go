// Copyright © NGRSoftlab 2020-2025

package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/ngrsoftlab/goscp/command"
	"github.com/ngrsoftlab/goscp/parser"
)

type stubOption struct{}

type stubClient struct {
	result *parser.RawResult
	err    error
}

func (s *stubClient) Run(ctx context.Context, cmd *command.Command, dst any, opts ...stubOption) (*parser.RawResult, error) {
	return s.result, s.err
}

func (s *stubClient) Close() error { return nil }

func TestClientExecutorRun(t *testing.T) {
	cmd := command.New("true")

	t.Run("propagates error into result", func(t *testing.T) {
		client := &stubClient{result: nil, err: errors.New("boom")}
		exec := NewClientExecutor[stubOption](client)
		got := exec.Run(context.Background(), cmd)
		if got.Err == nil {
			t.Fatal("Run(): expected Err to be set")
		}
	})

	t.Run("passes through successful result", func(t *testing.T) {
		want := parser.NewRawResult(cmd)
		want.Stdout = "ok"
		client := &stubClient{result: want}
		exec := NewClientExecutor[stubOption](client)
		got := exec.Run(context.Background(), cmd)
		if got.Stdout != "ok" {
			t.Errorf("Run().Stdout = %q; want %q", got.Stdout, "ok")
		}
	})
}

var _ Executor = (*ClientExecutor[stubOption])(nil)
