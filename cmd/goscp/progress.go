// Copyright © NGRSoftlab 2020-2025

package main

import (
	"fmt"
	"os"

	"github.com/ngrsoftlab/goscp"
)

// progressObserver reports start/end-of-file and start/end-of-folder events
// to stderr, keeping stdout free for serve's wire-protocol traffic.
func progressObserver() *goscp.Observer {
	return &goscp.Observer{
		StartFile: func(op goscp.Direction, path string, size int64, perm os.FileMode) {
			fmt.Fprintf(os.Stderr, "%s %s (%d bytes)\n", op, path, size)
		},
		EndFile: func(op goscp.Direction, path string, size int64, perm os.FileMode, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %s failed: %v\n", op, path, err)
			}
		},
		StartFolder: func(op goscp.Direction, path string, perm os.FileMode) {
			fmt.Fprintf(os.Stderr, "%s %s/\n", op, path)
		},
		EndFolder: func(op goscp.Direction, path string, perm os.FileMode, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %s/ failed: %v\n", op, path, err)
			}
		},
	}
}
