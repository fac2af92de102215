package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/shelfcheck/internal/config"
	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

// ParseCommand parses library exports and prints the merged loan list.
type ParseCommand struct {
	Paths   []string
	Format  string
	Verbose bool

	Out io.Writer
}

func NewParseCommand() *ParseCommand {
	return &ParseCommand{Format: formatText, Out: os.Stdout}
}

func (cmd *ParseCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)

	fs.StringVar(&cmd.Format, "format", formatText, "Output format: text, json or yaml")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print authors and return dates")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s parse [options] <file.csv>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Parse library loan exports (Decalog or any CSV with a title column).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s parse loans.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s parse -format json loans.csv other-library.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(cmd.Format); err != nil {
		return err
	}

	cmd.Paths = fs.Args()
	if len(cmd.Paths) == 0 {
		return fmt.Errorf("at least one library file is required")
	}

	return nil
}

func (cmd *ParseCommand) Run() error {
	files, closeFiles, err := openLibraryFiles(cmd.Paths)
	if err != nil {
		return err
	}
	defer closeFiles()

	cfg := config.NewConfig()
	service := reconcile.NewService(nil, cfg.ReconcileOptions())

	results := service.ParseFiles(context.Background(), files)
	books := service.Merge(results)

	if cmd.Format != formatText {
		return writeStructured(cmd.Out, cmd.Format, books)
	}

	for _, r := range results {
		if r.Failed() {
			fmt.Fprintf(cmd.Out, "✗ %s: %v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(cmd.Out, "✓ %s: %d books (%s)\n", r.Name, len(r.Books), r.Layout)
	}
	fmt.Fprintln(cmd.Out)

	for i, book := range books {
		marker := ""
		if book.Overdue {
			marker = " [overdue]"
		}
		fmt.Fprintf(cmd.Out, "%d. %s%s\n", i+1, book.Title, marker)
		if cmd.Verbose {
			fmt.Fprintf(cmd.Out, "   by %s\n", authorsString(book.Authors))
			if book.HasReturnDate() {
				fmt.Fprintf(cmd.Out, "   return on %s\n", book.ReturnDate)
			}
		}
	}

	fmt.Fprintf(cmd.Out, "\nTotal: %d books\n", len(books))
	return nil
}
