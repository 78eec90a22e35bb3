// Copyright © NGRSoftlab 2020-2025

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ngrsoftlab/goscp/ssh"
)

// connectOptions collects the flags shared by commands that dial a remote host.
type connectOptions struct {
	port         int
	password     string
	identity     string
	passphrase   string
	timeout      time.Duration
	knownHosts   string
	maxSessions  int
	sudoPassword string
}

func (o *connectOptions) register(flags interface {
	IntVar(p *int, name string, value int, usage string)
	StringVar(p *string, name string, value string, usage string)
	DurationVar(p *time.Duration, name string, value time.Duration, usage string)
}) {
	flags.IntVar(&o.port, "port", 22, "remote SSH port")
	flags.StringVar(&o.password, "password", "", "password authentication")
	flags.StringVar(&o.identity, "identity", "", "path to a private key file")
	flags.StringVar(&o.passphrase, "passphrase", "", "passphrase for --identity")
	flags.DurationVar(&o.timeout, "timeout", 30*time.Second, "dial timeout")
	flags.StringVar(&o.knownHosts, "known-hosts", "", "known_hosts file to verify the host key against (default: accept any host key)")
	flags.IntVar(&o.maxSessions, "max-sessions", 4, "maximum concurrent SSH sessions")
	flags.StringVar(&o.sudoPassword, "sudo-password", "", "password to answer a sudo prompt seen on remote stdout")
}

// remoteSpec is a parsed "user@host:path" argument.
type remoteSpec struct {
	User string
	Host string
	Path string
}

// parseRemoteSpec splits "user@host:path" the way scp's own argument
// syntax does: everything before the first ':' is user@host, the rest is
// the remote path. The user part is required; there is no default user.
func parseRemoteSpec(arg string) (*remoteSpec, error) {
	idx := strings.IndexByte(arg, ':')
	if idx < 0 {
		return nil, fmt.Errorf("invalid remote spec %q: expected user@host:path", arg)
	}
	hostPart, path := arg[:idx], arg[idx+1:]
	if hostPart == "" || path == "" {
		return nil, fmt.Errorf("invalid remote spec %q: expected user@host:path", arg)
	}

	user := ""
	host := hostPart
	if at := strings.IndexByte(hostPart, '@'); at >= 0 {
		user = hostPart[:at]
		host = hostPart[at+1:]
	}
	if user == "" {
		return nil, fmt.Errorf("invalid remote spec %q: missing user", arg)
	}
	return &remoteSpec{User: user, Host: host, Path: path}, nil
}

// dial opens an SSH client to spec.Host using the credentials in opts.
func dial(spec *remoteSpec, opts *connectOptions) (*ssh.Client, error) {
	var authOpts []ssh.ConfigOption
	switch {
	case opts.identity != "":
		authOpts = append(authOpts, ssh.WithPrivateKeyPathAuth(opts.identity, opts.passphrase))
	case opts.password != "":
		authOpts = append(authOpts, ssh.WithPasswordAuth(opts.password))
	default:
		authOpts = append(authOpts, ssh.WithAgentAuth())
	}
	authOpts = append(authOpts, ssh.WithTimeout(opts.timeout))
	if opts.maxSessions > 0 {
		authOpts = append(authOpts, ssh.WithMaxSessions(opts.maxSessions))
	}
	if opts.knownHosts != "" {
		authOpts = append(authOpts, ssh.WithKnownHosts(opts.knownHosts))
	}
	if opts.sudoPassword != "" {
		authOpts = append(authOpts, ssh.WithSudoPassword(opts.sudoPassword))
	}

	cfg, err := ssh.NewConfig(spec.User, spec.Host, opts.port, authOpts...)
	if err != nil {
		return nil, fmt.Errorf("build ssh config: %w", err)
	}
	client, err := ssh.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s@%s:%d: %w", spec.User, spec.Host, opts.port, err)
	}
	return client, nil
}
