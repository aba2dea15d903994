package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"libtrack/internal/cli"
	"libtrack/internal/config"
	"libtrack/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// Local .env overrides are optional
	_ = godotenv.Load()

	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "add":
		runCommand(cli.NewAddCommand(), args)

	case "progress":
		runCommand(cli.NewProgressCommand(), args)

	case "remove":
		runCommand(cli.NewRemoveCommand(), args)

	case "list":
		runCommand(cli.NewListCommand(), args)

	case "sweep":
		runCommand(cli.NewSweepCommand(), args)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// command is the shape every CLI subcommand shares.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func runCommand(cmd command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP API server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  add       Add a new progress entry from a file or directory\n")
	fmt.Fprintf(os.Stderr, "  progress  Record progress on an entry\n")
	fmt.Fprintf(os.Stderr, "  remove    Remove an entry and its asset directory\n")
	fmt.Fprintf(os.Stderr, "  list      List entries sorted by completion\n")
	fmt.Fprintf(os.Stderr, "  sweep     Delete orphaned asset directories\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
