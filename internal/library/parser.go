package library

import (
	"github.com/mrlokans/shelfcheck/internal/entities"
)

// Layout identifies the export format a file was recognized as.
type Layout string

const (
	LayoutDecalog Layout = "decalog"
	LayoutGeneric Layout = "generic"
)

// DetectLayout picks the layout for a header row.
func DetectLayout(headers []string) Layout {
	if IsDecalogLayout(headers) {
		return LayoutDecalog
	}
	return LayoutGeneric
}

// ParseLibraryFile parses raw rows, the first one being the header row.
// The Decalog layout is tried first, any other header falls back to the
// generic title column lookup.
func ParseLibraryFile(rows [][]string) ([]entities.LibraryBook, error) {
	books, _, err := parseRows(rows)
	return books, err
}

func parseRows(rows [][]string) ([]entities.LibraryBook, Layout, error) {
	if len(rows) == 0 {
		return nil, "", ErrEmptyFile
	}

	headers, data := rows[0], rows[1:]
	layout := DetectLayout(headers)

	var (
		books []entities.LibraryBook
		err   error
	)
	switch layout {
	case LayoutDecalog:
		books, err = ParseDecalog(headers, data)
	default:
		books, err = ParseGeneric(headers, data)
	}
	if err != nil {
		return nil, layout, err
	}
	return books, layout, nil
}
