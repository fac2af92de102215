package entities

// LibraryBook is a loan-list entry imported from a library CSV export,
// before any metadata has been attached to it.
type LibraryBook struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	Overdue bool     `json:"overdue"`

	// ReturnDate is an ISO-8601 date (YYYY-MM-DD), empty when the export
	// did not mention one.
	ReturnDate string `json:"return_date,omitempty"`
}

// HasReturnDate reports whether the export provided an expected return date.
func (b LibraryBook) HasReturnDate() bool {
	return b.ReturnDate != ""
}
