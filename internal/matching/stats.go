package matching

import "github.com/mrlokans/shelfcheck/internal/entities"

// Stats counts the items of a match result by kind.
func Stats(items []entities.MatchResultItem) entities.MatchResultStats {
	stats := entities.MatchResultStats{Total: len(items)}
	for _, item := range items {
		switch item.Kind {
		case entities.MatchKindMatched:
			stats.MatchedBooks++
		case entities.MatchKindUnmatchedLibrary:
			stats.UnmatchedLibraryBooks++
		case entities.MatchKindUnmatchedIsbn:
			stats.UnmatchedIsbnBooks++
		}
	}
	return stats
}
