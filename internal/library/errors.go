package library

import "errors"

var (
	// ErrNoTitleColumn is returned when a generic export has no title column.
	ErrNoTitleColumn = errors.New("no title column found")

	// ErrNotDecalogLayout is returned when the Decalog parser is given
	// headers of another layout.
	ErrNotDecalogLayout = errors.New("not a decalog CSV")

	// ErrEmptyFile is returned when a file holds no header row.
	ErrEmptyFile = errors.New("empty CSV file")
)
