package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/shelfcheck/internal/config"
	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/metadata"
	"github.com/mrlokans/shelfcheck/internal/reconcile"
)

// MatchCommand reconciles library exports with a list of scanned ISBN codes.
type MatchCommand struct {
	Paths     []string
	CodesPath string
	Codes     []string
	Format    string

	Out      io.Writer
	Provider metadata.Provider // Defaults to the configured provider
}

func NewMatchCommand() *MatchCommand {
	return &MatchCommand{Format: formatText, Out: os.Stdout}
}

func (cmd *MatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)

	var codes string
	fs.StringVar(&cmd.CodesPath, "codes-file", "", "File with the scanned ISBN codes, one per line (- for stdin)")
	fs.StringVar(&codes, "codes", "", "Comma separated scanned ISBN codes")
	fs.StringVar(&cmd.Format, "format", formatText, "Output format: text, json or yaml")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s match [options] <file.csv>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Match library loans with the books identified by their scanned ISBN codes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s match -codes 9782331078996,9782070612758 loans.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s match -codes-file scanned.txt -format yaml loans.csv\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(cmd.Format); err != nil {
		return err
	}

	cmd.Paths = fs.Args()
	if codes != "" {
		cmd.Codes = strings.Split(codes, ",")
	}
	if len(cmd.Paths) == 0 && len(cmd.Codes) == 0 && cmd.CodesPath == "" {
		return fmt.Errorf("no library file and no ISBN code provided")
	}

	return nil
}

func (cmd *MatchCommand) Run() error {
	codes := append([]string{}, cmd.Codes...)
	if cmd.CodesPath != "" {
		fileCodes, err := cmd.readCodesFile()
		if err != nil {
			return err
		}
		codes = append(codes, fileCodes...)
	}

	files, closeFiles, err := openLibraryFiles(cmd.Paths)
	if err != nil {
		return err
	}
	defer closeFiles()

	cfg := config.NewConfig()
	provider := cmd.Provider
	if provider == nil {
		provider = cfg.MetadataProvider()
	}
	service := reconcile.NewService(provider, cfg.ReconcileOptions())

	report, err := service.Run(context.Background(), files, codes)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if cmd.Format != formatText {
		return writeStructured(cmd.Out, cmd.Format, report)
	}

	cmd.printReport(report)
	return nil
}

func (cmd *MatchCommand) readCodesFile() ([]string, error) {
	if cmd.CodesPath == "-" {
		return readCodes(os.Stdin)
	}
	f, err := os.Open(cmd.CodesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open codes file: %w", err)
	}
	defer f.Close()
	return readCodes(f)
}

func (cmd *MatchCommand) printReport(report *reconcile.Report) {
	out := cmd.Out

	for _, f := range report.Files {
		if f.Error != "" {
			fmt.Fprintf(out, "✗ %s: %s\n", f.Name, f.Error)
		}
	}
	for _, c := range report.IgnoredCodes {
		fmt.Fprintf(out, "✗ %s: %s\n", c.Code, c.Reason)
	}
	for _, e := range report.FetchErrors {
		fmt.Fprintf(out, "✗ %s\n", e.Message)
	}

	fmt.Fprintln(out, "\n=== Results ===")
	for _, item := range report.Items {
		switch item.Kind {
		case entities.MatchKindMatched:
			fmt.Fprintf(out, "✓ %s  <->  %s (%s)\n", item.LibraryBook.Title, item.MatchedIsbnBook.Title, item.MatchedIsbnBook.IsbnCode)
		case entities.MatchKindUnmatchedLibrary:
			fmt.Fprintf(out, "? %s (not scanned)\n", item.LibraryBook.Title)
		case entities.MatchKindUnmatchedIsbn:
			fmt.Fprintf(out, "! %s (%s, not in the loan list)\n", item.IsbnBook.Title, item.IsbnBook.IsbnCode)
		}
	}

	fmt.Fprintln(out, "\n=== Summary ===")
	fmt.Fprintf(out, "Matched:           %d\n", report.Stats.MatchedBooks)
	fmt.Fprintf(out, "Not scanned:       %d\n", report.Stats.UnmatchedLibraryBooks)
	fmt.Fprintf(out, "Not in loan list:  %d\n", report.Stats.UnmatchedIsbnBooks)
	fmt.Fprintf(out, "Total:             %d\n", report.Stats.Total)
}
