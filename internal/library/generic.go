package library

import (
	"strings"

	"github.com/mrlokans/shelfcheck/internal/entities"
)

var titleHeaderPrefixes = []string{"titre", "title"}

// TitleColumn returns the index of the first header starting with "titre" or
// "title", ignoring case, or -1.
func TitleColumn(headers []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, prefix := range titleHeaderPrefixes {
			if strings.HasPrefix(lower, prefix) {
				return i
			}
		}
	}
	return -1
}

// ParseGeneric keeps the title column of an unknown export, cell text as is.
// Only empty cells are dropped. Every book is considered on time, without
// authors or return date.
func ParseGeneric(headers []string, rows [][]string) ([]entities.LibraryBook, error) {
	titleColumn := TitleColumn(headers)
	if titleColumn == -1 {
		return nil, ErrNoTitleColumn
	}

	books := make([]entities.LibraryBook, 0, len(rows))
	for _, row := range rows {
		if titleColumn >= len(row) {
			continue
		}
		title := row[titleColumn]
		if title == "" {
			continue
		}
		books = append(books, entities.LibraryBook{
			Title:   title,
			Authors: []string{},
		})
	}
	return books, nil
}
