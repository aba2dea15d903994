package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"libtrack/internal/config"
	"libtrack/internal/view"
)

// ListCommand prints the visible entries in display order.
type ListCommand struct {
	Tag          string
	AmountType   string
	DatabasePath string
	EntriesDir   string
}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

// ParseFlags parses command line flags
func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	fs.StringVar(&cmd.Tag, "tag", view.All, "Only show entries with this tag")
	fs.StringVar(&cmd.AmountType, "type", view.All, "Only show entries with this type")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the collection file")
	fs.StringVar(&cmd.EntriesDir, "entries-dir", config.DefaultEntriesDir, "Root directory for entry assets")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List entries sorted by completion percentage. Entries with an\n")
		fmt.Fprintf(os.Stderr, "excluded tag are hidden unless that tag is selected explicitly.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the list command
func (cmd *ListCommand) Run() error {
	cfg := config.NewConfig()
	repo, err := openRepository(cmd.DatabasePath, cmd.EntriesDir, cfg)
	if err != nil {
		return err
	}

	f := view.NewFilter(cfg.View.ExcludedTags)
	f.Tag = cmd.Tag
	f.AmountType = cmd.AmountType

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTAG\tTYPE\tPROGRESS\tDONE")
	count := 0
	for e := range view.Visible(repo.List(), f) {
		count++
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%.1f%%\n",
			e.FolderID, e.Name, e.TagTask, e.AmountType, e.AmountDone, e.Amount, e.CompletionPercentage())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d entries\n", count)
	return nil
}
