package entities

type MatchKind string

const (
	MatchKindMatched          MatchKind = "matched"
	MatchKindUnmatchedLibrary MatchKind = "unmatched-library"
	MatchKindUnmatchedIsbn    MatchKind = "unmatched-isbn"
)

// MatchResultItem is one entry of a reconciliation result. Which book
// fields are set depends on Kind:
//
//	matched            LibraryBook and MatchedIsbnBook
//	unmatched-library  LibraryBook
//	unmatched-isbn     IsbnBook
type MatchResultItem struct {
	Kind            MatchKind    `json:"type"`
	LibraryBook     *LibraryBook `json:"library_book,omitempty"`
	MatchedIsbnBook *IsbnBook    `json:"matched_isbn_book,omitempty"`
	IsbnBook        *IsbnBook    `json:"isbn_book,omitempty"`
}

func NewMatchedItem(libraryBook LibraryBook, isbnBook IsbnBook) MatchResultItem {
	return MatchResultItem{
		Kind:            MatchKindMatched,
		LibraryBook:     &libraryBook,
		MatchedIsbnBook: &isbnBook,
	}
}

func NewUnmatchedLibraryItem(libraryBook LibraryBook) MatchResultItem {
	return MatchResultItem{
		Kind:        MatchKindUnmatchedLibrary,
		LibraryBook: &libraryBook,
	}
}

func NewUnmatchedIsbnItem(isbnBook IsbnBook) MatchResultItem {
	return MatchResultItem{
		Kind:     MatchKindUnmatchedIsbn,
		IsbnBook: &isbnBook,
	}
}

// MatchResultStats is a summary of a match result.
type MatchResultStats struct {
	MatchedBooks          int `json:"matched_books"`
	UnmatchedLibraryBooks int `json:"unmatched_library_books"`
	UnmatchedIsbnBooks    int `json:"unmatched_isbn_books"`
	Total                 int `json:"total"`
}
