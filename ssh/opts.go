package ssh

import (
	"bytes"
	"sync"
)

// RunOption configures a single SSH command execution
type RunOption func(*runConfig)

// bufPoolOut is a pool of buffers used to capture stdout
var bufPoolOut = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// bufPoolErr is a pool of buffers used to capture stderr
var bufPoolErr = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// runConfig holds settings and buffers for one SSH command run. stdout and
// stderr always point at bufOut/bufErr: every remote command this engine
// runs (the mkdir-p preflight) only needs its captured output, never a live
// stream, so there's no writer-substitution knob to carry.
type runConfig struct {
	env    map[string]string // environment variables for this run
	stdout *bytes.Buffer     // captured stdout
	stderr *bytes.Buffer     // captured stderr
	bufOut *bytes.Buffer     // internal buffer for stdout
	bufErr *bytes.Buffer     // internal buffer for stderr
	usePTY bool              // allocate a PTY for the session
}

// newRunConfig creates a runConfig from base envVars and applies opts.
func newRunConfig(envVars map[string]string, opts ...RunOption) *runConfig {
	bufOut := bufPoolOut.Get().(*bytes.Buffer)
	bufErr := bufPoolErr.Get().(*bytes.Buffer)
	bufOut.Reset()
	bufErr.Reset()

	runConfig := &runConfig{
		env:    make(map[string]string, len(envVars)),
		stdout: bufOut,
		stderr: bufErr,
		bufOut: bufOut,
		bufErr: bufErr,
	}

	for k, v := range envVars {
		runConfig.env[k] = v
	}

	for _, opt := range opts {
		opt(runConfig)
	}

	return runConfig
}

// WithEnvVar adds or overrides an environment variable for this run. The
// mkdir-p preflight uses it to pin LC_ALL=C so exit-code classification
// doesn't have to account for localized error text.
func WithEnvVar(key, value string) RunOption {
	return func(config *runConfig) {
		config.env[key] = value
	}
}
