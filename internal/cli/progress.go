package cli

import (
	"flag"
	"fmt"
	"os"

	"libtrack/internal/config"
)

// ProgressCommand records progress on an existing entry.
type ProgressCommand struct {
	FolderID     string
	Delta        int
	DatabasePath string
	EntriesDir   string
}

func NewProgressCommand() *ProgressCommand {
	return &ProgressCommand{}
}

// ParseFlags parses command line flags
func (cmd *ProgressCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("progress", flag.ExitOnError)

	fs.StringVar(&cmd.FolderID, "id", "", "Folder id of the entry (required)")
	fs.IntVar(&cmd.Delta, "delta", 0, "Amount of progress to add (required, positive)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the collection file")
	fs.StringVar(&cmd.EntriesDir, "entries-dir", config.DefaultEntriesDir, "Root directory for entry assets")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s progress -id <folder-id> -delta <n>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Record progress on an entry. The delta must be positive and must\n")
		fmt.Fprintf(os.Stderr, "not push progress past the entry's target amount.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the progress command
func (cmd *ProgressCommand) Run() error {
	cfg := config.NewConfig()
	repo, err := openRepository(cmd.DatabasePath, cmd.EntriesDir, cfg)
	if err != nil {
		return err
	}

	entry, err := repo.Advance(cmd.FolderID, cmd.Delta)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d/%d (%.1f%%)\n", entry.Name, entry.AmountDone, entry.Amount, entry.CompletionPercentage())
	return nil
}
