package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/shelfcheck/internal/library"
)

// openLibraryFiles opens every path as a library export. The returned close
// function must be called once the files are parsed.
func openLibraryFiles(paths []string) ([]library.NamedReader, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]library.NamedReader, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open library file: %w", err)
		}
		opened = append(opened, f)
		files = append(files, library.NamedReader{Name: filepath.Base(path), Reader: f})
	}
	return files, closeAll, nil
}

// readCodes reads scanned codes separated by commas, semicolons or whitespace.
func readCodes(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\r' || r == '\t'
	}), nil
}

func authorsString(authors []string) string {
	if len(authors) == 0 {
		return "(no author)"
	}
	return strings.Join(authors, ", ")
}
