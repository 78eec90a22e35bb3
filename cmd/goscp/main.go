// Copyright © NGRSoftlab 2020-2025

// Command goscp is a thin command-line front end over the goscp engine: it
// can push/pull files and directories to a remote host over SSH, or act as
// the responder end of the wire protocol when invoked as the remote side of
// someone else's scp.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var globalOptions struct {
	verbose bool
}

// cmdRoot is the base command when no other command has been specified.
var cmdRoot = &cobra.Command{
	Use:   "goscp",
	Short: "Push and pull files over SSH using the scp wire protocol",
	Long: `
goscp transfers files and directories to and from a remote host by speaking
the scp wire protocol directly over an SSH session, without shelling out to
the system scp binary.
`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	DisableAutoGenTag: true,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if globalOptions.verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

func init() {
	cmdRoot.PersistentFlags().BoolVarP(&globalOptions.verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "goscp:", err)
		os.Exit(1)
	}
}
