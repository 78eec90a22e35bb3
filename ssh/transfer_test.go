// Copyright © NGRSoftlab 2020-2025

package ssh

import "testing"

func TestEscapeShellPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/tmp/plain", "'/tmp/plain'"},
		{"it's/a/path", `'it'\''s/a/path'`},
	}
	for _, tc := range tests {
		if got := escapeShellPath(tc.in); got != tc.want {
			t.Errorf("escapeShellPath(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewScpConfigDefaults(t *testing.T) {
	cfg := newScpConfig(0)
	if cfg.scpBinPath != "scp" {
		t.Errorf("scpBinPath = %q; want scp", cfg.scpBinPath)
	}
	if cfg.bufSize != defaultSCPBufferSize {
		t.Errorf("bufSize = %d; want %d", cfg.bufSize, defaultSCPBufferSize)
	}
	if cfg.folderMode != defaultSCPDirMode {
		t.Errorf("folderMode = %v; want %v", cfg.folderMode, defaultSCPDirMode)
	}
}

func TestNewScpConfigOptions(t *testing.T) {
	cfg := newScpConfig(0o700, WithScpBinPath("/usr/bin/scp"), WithBufferSize(4096))
	if cfg.scpBinPath != "/usr/bin/scp" {
		t.Errorf("scpBinPath = %q", cfg.scpBinPath)
	}
	if cfg.bufSize != 4096 {
		t.Errorf("bufSize = %d", cfg.bufSize)
	}
	if cfg.folderMode != 0o700 {
		t.Errorf("folderMode = %v", cfg.folderMode)
	}
}

func TestNewScpConfigIgnoresZeroOptions(t *testing.T) {
	cfg := newScpConfig(0o755, WithScpBinPath(""), WithBufferSize(0))
	if cfg.scpBinPath != "scp" {
		t.Errorf("scpBinPath = %q; want default scp", cfg.scpBinPath)
	}
	if cfg.bufSize != defaultSCPBufferSize {
		t.Errorf("bufSize = %d; want default", cfg.bufSize)
	}
}
