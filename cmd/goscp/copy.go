// Copyright © NGRSoftlab 2020-2025

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrsoftlab/goscp/local"
)

var copyOptions struct {
	recursive bool
	preserve  bool
}

var cmdCopy = &cobra.Command{
	Use:   "copy src-path dst-dir",
	Short: "Copy a local file or directory through the scp wire codec without a network hop",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCopy(cmd.Context(), args[0], args[1])
	},
}

func init() {
	cmdCopy.Flags().BoolVarP(&copyOptions.recursive, "recursive", "r", false, "copy directories recursively")
	cmdCopy.Flags().BoolVarP(&copyOptions.preserve, "preserve", "p", false, "preserve modification times and permissions")
	cmdRoot.AddCommand(cmdCopy)
}

func runCopy(ctx context.Context, srcPath, dstDir string) error {
	cfg := local.NewConfig().WithEnvVars(map[string]string{"LC_ALL": "C"})
	scp := local.NewSCPTransfer(local.NewClient(cfg))
	if err := scp.CopyTree(ctx, srcPath, dstDir, copyOptions.recursive, copyOptions.preserve, progressObserver()); err != nil {
		return fmt.Errorf("copy %s to %s: %w", srcPath, dstDir, err)
	}
	return nil
}
