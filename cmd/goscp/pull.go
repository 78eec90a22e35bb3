// Copyright © NGRSoftlab 2020-2025

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrsoftlab/goscp/ssh"
)

var pullOptions struct {
	connectOptions
	recursive bool
	preserve  bool
}

var cmdPull = &cobra.Command{
	Use:   "pull user@host:remote-path local-path",
	Short: "Download a file or directory from a remote host",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPull(cmd.Context(), args[0], args[1])
	},
}

func init() {
	pullOptions.register(cmdPull.Flags())
	cmdPull.Flags().BoolVarP(&pullOptions.recursive, "recursive", "r", false, "copy directories recursively")
	cmdPull.Flags().BoolVarP(&pullOptions.preserve, "preserve", "p", false, "preserve modification times and permissions")
	cmdRoot.AddCommand(cmdPull)
}

func runPull(ctx context.Context, remoteArg, localPath string) error {
	spec, err := parseRemoteSpec(remoteArg)
	if err != nil {
		return err
	}
	client, err := dial(spec, &pullOptions.connectOptions)
	if err != nil {
		return err
	}
	defer client.Close()

	scp := ssh.NewSCPTransfer(client)
	if err := scp.ReceiveTree(ctx, spec.Path, localPath, pullOptions.recursive, pullOptions.preserve, progressObserver()); err != nil {
		return fmt.Errorf("pull %s to %s: %w", remoteArg, localPath, err)
	}
	return nil
}
