// Copyright © NGRSoftlab 2020-2025

package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/ngrsoftlab/goscp"
	"github.com/ngrsoftlab/goscp/command"
	"github.com/ngrsoftlab/goscp/parser"
	"github.com/ngrsoftlab/goscp/parser/examples"
	"github.com/ngrsoftlab/goscp/ssh"
)

func main() {
	// 1. setting up ssh client
	sshCfg, err := ssh.NewConfig(
		"alice", "example.ip", 22, // to test - change credits
		ssh.WithPasswordAuth("secret"),
		ssh.WithRetry(3, 5*time.Second),
		ssh.WithKeepAlive(30*time.Second),
	)
	if err != nil {
		panic(err)
	}
	client, err := ssh.NewClient(sshCfg)
	if err != nil {
		panic(err)
	}
	defer client.Close()

	ctx := context.Background()
	scp := ssh.NewSCPTransfer(client)

	// 2. upload a single file by driving the wire codec directly
	data := []byte("Hello, goscp!")
	remoteDir := "/tmp/goscp-demo"
	fileName := "hello.txt"
	spec := &goscp.FileSpec{
		TargetDir:  remoteDir,
		Filename:   fileName,
		Mode:       0644,
		FolderMode: 0755,
		Content:    &goscp.FileContent{Data: data},
	}
	if err := scp.Copy(ctx, spec); err != nil {
		panic(err)
	}

	// 3. pull the same file straight back into memory
	remotePath := path.Join(remoteDir, fileName)
	downloaded, mode, err := scp.Download(ctx, remotePath)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Downloaded %d bytes, mode %v: %s\n", len(downloaded), mode, downloaded)

	// 4. push a whole local directory tree, recursively, preserving times and perms
	obs := &goscp.Observer{
		StartFile: func(op goscp.Direction, path string, size int64, perm os.FileMode) {
			fmt.Printf("start %s %s (%d bytes)\n", op, path, size)
		},
		EndFile: func(op goscp.Direction, path string, size int64, perm os.FileMode, err error) {
			fmt.Printf("done  %s %s: %v\n", op, path, err)
		},
	}
	if err := scp.SendTree(ctx, "./testdata", remoteDir, true, true, obs); err != nil {
		panic(err)
	}

	// 5. pull it back down into a fresh local directory
	if err := scp.ReceiveTree(ctx, remoteDir, "./testdata-roundtrip", true, true, obs); err != nil {
		panic(err)
	}

	// 6. check uploaded file existence
	var exists bool
	cmdExist := command.New(
		"test -f %s && echo true || echo false",
		command.WithArgs(remotePath),
		command.WithParser(&examples.BoolParser{}),
	)
	exists, err = goscp.RunParse[ssh.RunOption, bool](ctx, client, cmdExist)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Exists: %v\n", exists)

	// 7. gathering details of uploaded file
	var entries []examples.LsEntry
	cmdLs := command.New(
		"ls -la %s",
		command.WithArgs(remotePath),
		command.WithParser(&examples.LsParser{}),
	)
	entries, err = goscp.RunParse[ssh.RunOption, []examples.LsEntry](ctx, client, cmdLs)
	if err != nil {
		panic(err)
	}

	// 8. print result
	if len(entries) > 0 {
		e := entries[0]
		fmt.Printf("File: %s\n", e.Name)
		fmt.Printf("Owner: %s\n", e.Owner)
		fmt.Printf("Created: %s %s %s\n", e.Month, e.Day, e.TimeOrYear)
	}

	// PARSING RESULTS IN VARS FORM BATCH EXECUTION

	cmdList := []*command.Command{
		cmdExist,
		cmdLs,
	}

	results := make([]*parser.RawResult, 0, len(cmdList))
	for _, cmd := range cmdList {
		res, err := client.Run(ctx, cmd, nil)
		if err != nil {
			panic(err)
		}
		results = append(results, res)
	}

	var boolVar bool
	var lsEntries []examples.LsEntry

	mappingVars := map[*command.Command]any{
		cmdLs:    &lsEntries,
		cmdExist: &boolVar,
	}

	if err := goscp.ApplyParsers(results, mappingVars); err != nil {
		panic(err)
	}

	// OR YOU CAN MANUALLY CREATE COMMAND->RAWRESULT MAPPING

	rawMap := make(map[*command.Command]*parser.RawResult, len(results))
	for i, cmd := range cmdList {
		rawMap[cmd] = results[i]
	}

	if err := goscp.ParseWithMapping(rawMap, mappingVars); err != nil {
		panic(err)
	}

	fmt.Printf("Exists: %v\n", boolVar)
	if len(lsEntries) > 0 {
		e := lsEntries[0]
		fmt.Printf("File: %s, Owner: %s, Created: %s %s %s\n",
			e.Name, e.Owner, e.Month, e.Day, e.TimeOrYear)
	}
}
