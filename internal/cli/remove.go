package cli

import (
	"flag"
	"fmt"
	"os"

	"libtrack/internal/config"
)

// RemoveCommand deletes an entry and its asset directory.
type RemoveCommand struct {
	FolderID     string
	DatabasePath string
	EntriesDir   string
}

func NewRemoveCommand() *RemoveCommand {
	return &RemoveCommand{}
}

// ParseFlags parses command line flags
func (cmd *RemoveCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)

	fs.StringVar(&cmd.FolderID, "id", "", "Folder id of the entry (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the collection file")
	fs.StringVar(&cmd.EntriesDir, "entries-dir", config.DefaultEntriesDir, "Root directory for entry assets")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s remove -id <folder-id>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Remove an entry: the record is deleted and persisted first, then\n")
		fmt.Fprintf(os.Stderr, "the asset directory. A stranded directory can be cleaned up later\n")
		fmt.Fprintf(os.Stderr, "with the sweep command.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the remove command
func (cmd *RemoveCommand) Run() error {
	cfg := config.NewConfig()
	repo, err := openRepository(cmd.DatabasePath, cmd.EntriesDir, cfg)
	if err != nil {
		return err
	}

	if err := repo.Remove(cmd.FolderID); err != nil {
		return err
	}

	fmt.Printf("Removed %s\n", cmd.FolderID)
	return nil
}
