// Copyright © NGRSoftlab 2020-2025

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrsoftlab/goscp/scpd"
)

var cmdServe = &cobra.Command{
	Use:                "serve -t|-f [-r] [-p] [-d] path",
	Short:              "Act as the remote responder in the scp wire protocol (internal use)",
	Hidden:             true,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmdline := "scp " + strings.Join(args, " ")
		inv, err := scpd.Parse(cmdline)
		if err != nil {
			return fmt.Errorf("parse invocation: %w", err)
		}

		r := bufio.NewReader(os.Stdin)
		w := bufio.NewWriter(os.Stdout)
		if err := scpd.Dispatch(cmd.Context(), inv, r, w, nil); err != nil {
			return fmt.Errorf("serve %q: %w", cmdline, err)
		}
		return w.Flush()
	},
}

func init() {
	cmdRoot.AddCommand(cmdServe)
}
