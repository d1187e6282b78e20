// Copyright 2026 © The Praxis Authors
// SPDX-License-Identifier: Apache-2.0

// Command praxis is the command-line surface of the task-execution engine:
// one-shot questions, persistent chat sessions, and knowledge-base ingestion.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

const version = "0.1.0"

type globalFlags struct {
	ConfigPath string
	JSON       bool
	Verbose    bool
	Help       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global, args, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	if global.Help || len(args) == 0 {
		printUsage()
		return
	}

	app, err := newApp(ctx, global)
	if err != nil {
		fatal(err)
	}
	defer app.Close(ctx)

	switch cmd := args[0]; cmd {
	case "ask":
		err = app.runAsk(ctx, args[1:])
	case "chat":
		err = app.runChat(ctx, args[1:])
	case "ingest":
		err = app.runIngest(ctx, args[1:])
	case "tools":
		err = app.runTools(args[1:])
	case "version":
		fmt.Println("praxis", version)
	case "help":
		printUsage()
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fatal(err)
	}
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	var flags globalFlags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return flags, args[i:], nil
		}
		switch {
		case arg == "-h" || arg == "--help":
			flags.Help = true
			return flags, nil, nil
		case arg == "--json":
			flags.JSON = true
		case arg == "--verbose" || arg == "-v":
			flags.Verbose = true
		case arg == "--config":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("missing value for --config")
			}
			flags.ConfigPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			flags.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			return flags, nil, fmt.Errorf("unknown global flag %q", arg)
		}
	}
	return flags, nil, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "praxis:", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`praxis - LLM task-execution engine

Usage:
  praxis [global flags] <command> [args]

Commands:
  ask <question>              Answer a one-shot question
      --kb <name>             Ground the answer in a knowledge base
  chat                        Start an interactive conversation
      --session <id>          Resume or name a session
      --kb <name>             Ground answers in a knowledge base
  ingest --kb <name> <file>   Load a document into a knowledge base
  tools                       List available tools
  version                     Print the version
  help                        Show this help

Global flags:
  --config <path>   Configuration file (YAML)
  --json            Print results as JSON
  --verbose, -v     Log tool invocations at info level
`)
}
