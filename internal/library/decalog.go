package library

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mrlokans/shelfcheck/internal/entities"
)

const (
	decalogStatusColumn = 0
	decalogTitleColumn  = 1
	decalogInfoColumn   = 2
	decalogColumnCount  = 3

	decalogStatusHeader = "État"
	decalogTitleHeader  = "Titre du document"
	decalogInfoHeader   = "Informations"

	decalogStatusOverdue = "En retard"
	decalogAuthorMarker  = "par"
	decalogPublishedBy   = "Publié par"
	decalogPublishedIn   = "Publié en"
)

var decalogReturnDatePattern = regexp.MustCompile(`Retour prévu le (\d{2})/(\d{2})/(\d{4})`)

// IsDecalogLayout reports whether headers are exactly the Decalog export headers.
func IsDecalogLayout(headers []string) bool {
	return len(headers) == decalogColumnCount &&
		headers[decalogStatusColumn] == decalogStatusHeader &&
		headers[decalogTitleColumn] == decalogTitleHeader &&
		headers[decalogInfoColumn] == decalogInfoHeader
}

// ParseDecalog parses the data rows of a Decalog export. Rows without a
// title are dropped.
func ParseDecalog(headers []string, rows [][]string) ([]entities.LibraryBook, error) {
	if !IsDecalogLayout(headers) {
		return nil, fmt.Errorf("%w: headers %q", ErrNotDecalogLayout, headers)
	}

	books := make([]entities.LibraryBook, 0, len(rows))
	for _, row := range rows {
		book := parseDecalogRow(repairDecalogRow(row))
		if book.Title == "" {
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

// repairDecalogRow folds the cells of an over-split row back into three
// columns. Decalog does not quote titles, so every comma in a title adds a
// cell: the first cell is the status, the last one the information and
// everything in between belongs to the title.
func repairDecalogRow(row []string) []string {
	switch {
	case len(row) == decalogColumnCount:
		return row
	case len(row) < decalogColumnCount:
		padded := make([]string, decalogColumnCount)
		copy(padded, row)
		return padded
	}

	extra := len(row) - decalogColumnCount
	title := strings.Join(row[decalogTitleColumn:decalogTitleColumn+extra+1], ",")
	return []string{row[decalogStatusColumn], title, row[len(row)-1]}
}

func parseDecalogRow(row []string) entities.LibraryBook {
	title, authors := splitDecalogTitle(row[decalogTitleColumn])
	return entities.LibraryBook{
		Title:      title,
		Authors:    authors,
		Overdue:    row[decalogStatusColumn] == decalogStatusOverdue,
		ReturnDate: extractReturnDate(row[decalogInfoColumn]),
	}
}

// splitDecalogTitle splits a Decalog title cell, which reads like
//
//	<Title> par <Author1>, <Author2> Publié par <Publisher>, <date>
//	<Title> par <Authors> Publié en <date>
//
// The author marker is matched literally; when it does not split the cell
// in exactly two parts the whole cell is the title.
func splitDecalogTitle(cell string) (string, []string) {
	titleAndAuthors := removePublishInfo(cell)

	parts := strings.Split(titleAndAuthors, decalogAuthorMarker)
	if len(parts) != 2 {
		return strings.TrimSpace(titleAndAuthors), []string{}
	}

	names := strings.Split(parts[1], ",")
	authors := make([]string, 0, len(names))
	for _, name := range names {
		authors = append(authors, strings.TrimSpace(name))
	}
	return strings.TrimSpace(parts[0]), authors
}

// removePublishInfo cuts the cell at the last "Publié par" marker, or at the
// last "Publié en" one when there is no publisher.
func removePublishInfo(cell string) string {
	if i := strings.LastIndex(cell, decalogPublishedBy); i != -1 {
		return cell[:i]
	}
	if i := strings.LastIndex(cell, decalogPublishedIn); i != -1 {
		return cell[:i]
	}
	return cell
}

// extractReturnDate finds "Retour prévu le DD/MM/YYYY" and returns it as YYYY-MM-DD.
func extractReturnDate(info string) string {
	m := decalogReturnDatePattern.FindStringSubmatch(info)
	if m == nil {
		return ""
	}
	day, month, year := m[1], m[2], m[3]
	return year + "-" + month + "-" + day
}
