// Copyright © NGRSoftlab 2020-2025

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrsoftlab/goscp/ssh"
)

var pushOptions struct {
	connectOptions
	recursive bool
	preserve  bool
}

var cmdPush = &cobra.Command{
	Use:   "push local-path user@host:remote-path",
	Short: "Upload a local file or directory to a remote host",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPush(cmd.Context(), args[0], args[1])
	},
}

func init() {
	pushOptions.register(cmdPush.Flags())
	cmdPush.Flags().BoolVarP(&pushOptions.recursive, "recursive", "r", false, "copy directories recursively")
	cmdPush.Flags().BoolVarP(&pushOptions.preserve, "preserve", "p", false, "preserve modification times and permissions")
	cmdRoot.AddCommand(cmdPush)
}

func runPush(ctx context.Context, localPath, remoteArg string) error {
	spec, err := parseRemoteSpec(remoteArg)
	if err != nil {
		return err
	}
	client, err := dial(spec, &pushOptions.connectOptions)
	if err != nil {
		return err
	}
	defer client.Close()

	scp := ssh.NewSCPTransfer(client)
	if err := scp.SendTree(ctx, localPath, spec.Path, pushOptions.recursive, pushOptions.preserve, progressObserver()); err != nil {
		return fmt.Errorf("push %s to %s: %w", localPath, remoteArg, err)
	}
	return nil
}
