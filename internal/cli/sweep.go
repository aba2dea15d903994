package cli

import (
	"flag"
	"fmt"
	"os"

	"libtrack/internal/config"
)

// SweepCommand removes asset directories no entry references.
type SweepCommand struct {
	DryRun       bool
	DatabasePath string
	EntriesDir   string
}

func NewSweepCommand() *SweepCommand {
	return &SweepCommand{}
}

// ParseFlags parses command line flags
func (cmd *SweepCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)

	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be removed without making changes")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the collection file")
	fs.StringVar(&cmd.EntriesDir, "entries-dir", config.DefaultEntriesDir, "Root directory for entry assets")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sweep [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete orphaned asset directories: directories left behind when a\n")
		fmt.Fprintf(os.Stderr, "removal persisted the collection but could not delete the assets.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the sweep command
func (cmd *SweepCommand) Run() error {
	cfg := config.NewConfig()
	repo, err := openRepository(cmd.DatabasePath, cmd.EntriesDir, cfg)
	if err != nil {
		return err
	}

	if cmd.DryRun {
		orphans, err := repo.Orphans()
		if err != nil {
			return err
		}
		for _, id := range orphans {
			fmt.Printf("would remove %s\n", id)
		}
		fmt.Printf("%d orphaned directories\n", len(orphans))
		return nil
	}

	removed, err := repo.Sweep()
	if err != nil {
		return err
	}
	for _, id := range removed {
		fmt.Printf("removed %s\n", id)
	}
	fmt.Printf("%d orphaned directories removed\n", len(removed))
	return nil
}
