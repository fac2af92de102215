package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelfcheck/internal/entities"
)

var (
	sampleLibraryBook = entities.LibraryBook{Title: "Sample Book", Authors: []string{"Author One"}}
	sampleIsbnBook    = entities.IsbnBook{IsbnCode: "1234567890", Title: "Sample Book", Authors: []string{"Author One"}}
)

func TestMatch_ExactTitle(t *testing.T) {
	result := Match([]entities.LibraryBook{sampleLibraryBook}, []entities.IsbnBook{sampleIsbnBook})

	require.Len(t, result, 1)
	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
	assert.Equal(t, sampleLibraryBook, *result[0].LibraryBook)
	assert.Equal(t, sampleIsbnBook, *result[0].MatchedIsbnBook)
	assert.Nil(t, result[0].IsbnBook)

	assert.Equal(t, entities.MatchResultStats{MatchedBooks: 1, Total: 1}, Stats(result))
}

func TestMatch_OnFragments(t *testing.T) {
	libraryBook := entities.LibraryBook{Title: "Sample Book: A Story"}

	result := Match([]entities.LibraryBook{libraryBook}, []entities.IsbnBook{sampleIsbnBook})

	require.Len(t, result, 1)
	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
	assert.Equal(t, sampleIsbnBook, *result[0].MatchedIsbnBook)
}

func TestMatch_OnNormalizedTitle(t *testing.T) {
	libraryBook := entities.LibraryBook{Title: "A Song of Ice and Fire (6)"}
	isbnBook := entities.IsbnBook{IsbnCode: "9782331078996", Title: "A Song of Ice and Fire - Tome 06"}

	result := Match([]entities.LibraryBook{libraryBook}, []entities.IsbnBook{isbnBook})

	require.Len(t, result, 1)
	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
	assert.Equal(t, 0, Stats(result).UnmatchedIsbnBooks)
}

func TestMatch_SeriesTitleMatchesVolumeWithSeparator(t *testing.T) {
	tests := []struct {
		libraryTitle string
		isbnTitle    string
	}{
		{"Lightfall", "Lightfall - Tome 2"},
		{"Lightfall", "Lightfall-tome 2"},
		{"Lightfall (2)", "Lightfall: Volume 2"},
		{"Astérix volume 2", "Astérix - Tome 2"},
	}

	for _, tt := range tests {
		t.Run(tt.libraryTitle+" / "+tt.isbnTitle, func(t *testing.T) {
			assert.True(t, IsMatching(
				entities.LibraryBook{Title: tt.libraryTitle},
				entities.IsbnBook{IsbnCode: "1", Title: tt.isbnTitle},
			))
		})
	}
}

func TestMatch_OnSubtitleFragment(t *testing.T) {
	libraryBook := entities.LibraryBook{Title: "Sorceline (6) : Mystère et boule de gnome !"}
	isbnBook := entities.IsbnBook{IsbnCode: "9782749308579", Title: "Sorceline", Subtitle: "Mystère et boule de gnome !"}

	result := Match([]entities.LibraryBook{libraryBook}, []entities.IsbnBook{isbnBook})

	require.Len(t, result, 1)
	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
}

func TestMatch_DifferentTitles(t *testing.T) {
	libraryBook := entities.LibraryBook{Title: "Different Book", Authors: []string{"Author Two"}}

	result := Match([]entities.LibraryBook{libraryBook}, []entities.IsbnBook{sampleIsbnBook})

	require.Len(t, result, 2)
	assert.Equal(t, entities.MatchKindUnmatchedLibrary, result[0].Kind)
	assert.Equal(t, "Different Book", result[0].LibraryBook.Title)
	assert.Equal(t, entities.MatchKindUnmatchedIsbn, result[1].Kind)
	assert.Equal(t, sampleIsbnBook, *result[1].IsbnBook)

	assert.Equal(t, entities.MatchResultStats{
		UnmatchedLibraryBooks: 1,
		UnmatchedIsbnBooks:    1,
		Total:                 2,
	}, Stats(result))
}

func TestMatch_SubstringAloneDoesNotMatch(t *testing.T) {
	libraryBook := entities.LibraryBook{Title: "The Sample Book Companion"}

	result := Match([]entities.LibraryBook{libraryBook}, []entities.IsbnBook{sampleIsbnBook})

	assert.Equal(t, entities.MatchKindUnmatchedLibrary, result[0].Kind)
}

func TestMatch_ShortFragmentsIgnored(t *testing.T) {
	libraryBook := entities.LibraryBook{Title: "Dune - Part one"}
	isbnBook := entities.IsbnBook{IsbnCode: "1", Title: "Dune: Messiah"}

	result := Match([]entities.LibraryBook{libraryBook}, []entities.IsbnBook{isbnBook})

	assert.Equal(t, entities.MatchKindUnmatchedLibrary, result[0].Kind)
}

func TestMatch_MultipleBooks(t *testing.T) {
	libraryBooks := []entities.LibraryBook{
		{Title: "Book One", Authors: []string{"Author A"}},
		{Title: "Book Two: Extended", Authors: []string{"Author B"}},
		{Title: "Book Three", Authors: []string{"Author C"}},
	}
	isbnBooks := []entities.IsbnBook{
		{IsbnCode: "1", Title: "Book One", Authors: []string{"Author A"}},
		{IsbnCode: "2", Title: "Book Two", Authors: []string{"Author B"}},
		{IsbnCode: "3", Title: "Book Four", Authors: []string{"Author D"}},
	}

	result := Match(libraryBooks, isbnBooks)

	require.Len(t, result, 4)
	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
	assert.Equal(t, "1", result[0].MatchedIsbnBook.IsbnCode)
	assert.Equal(t, entities.MatchKindMatched, result[1].Kind)
	assert.Equal(t, "2", result[1].MatchedIsbnBook.IsbnCode)
	assert.Equal(t, entities.MatchKindUnmatchedLibrary, result[2].Kind)
	assert.Equal(t, "Book Three", result[2].LibraryBook.Title)
	assert.Equal(t, entities.MatchKindUnmatchedIsbn, result[3].Kind)
	assert.Equal(t, "3", result[3].IsbnBook.IsbnCode)

	assert.Equal(t, entities.MatchResultStats{
		MatchedBooks:          2,
		UnmatchedLibraryBooks: 1,
		UnmatchedIsbnBooks:    1,
		Total:                 4,
	}, Stats(result))
}

func TestMatch_CaseAndAccentInsensitive(t *testing.T) {
	result := Match(
		[]entities.LibraryBook{{Title: "  mystere ET boule  "}},
		[]entities.IsbnBook{{IsbnCode: "1", Title: "Mystère et boule"}},
	)

	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
}

func TestMatch_EmptyLists(t *testing.T) {
	result := Match(nil, nil)

	assert.Empty(t, result)
	assert.Equal(t, entities.MatchResultStats{}, Stats(result))
}

func TestMatch_OnlyIsbnBooks(t *testing.T) {
	result := Match(nil, []entities.IsbnBook{sampleIsbnBook})

	require.Len(t, result, 1)
	assert.Equal(t, entities.MatchKindUnmatchedIsbn, result[0].Kind)
	assert.Equal(t, sampleIsbnBook, *result[0].IsbnBook)
}

func TestMatch_IsbnBookConsumedOnce(t *testing.T) {
	libraryBooks := []entities.LibraryBook{{Title: "Sample Book"}, {Title: "Sample Book"}}

	result := Match(libraryBooks, []entities.IsbnBook{sampleIsbnBook})

	require.Len(t, result, 2)
	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
	assert.Equal(t, entities.MatchKindUnmatchedLibrary, result[1].Kind)
}

func TestMatch_DuplicateIsbnBooksSurfaceAsUnmatched(t *testing.T) {
	result := Match([]entities.LibraryBook{sampleLibraryBook}, []entities.IsbnBook{sampleIsbnBook, sampleIsbnBook})

	require.Len(t, result, 2)
	assert.Equal(t, entities.MatchKindMatched, result[0].Kind)
	assert.Equal(t, entities.MatchKindUnmatchedIsbn, result[1].Kind)
}

func TestMatch_FirstCandidateWins(t *testing.T) {
	isbnBooks := []entities.IsbnBook{
		{IsbnCode: "a", Title: "Sample Book"},
		{IsbnCode: "b", Title: "sample book"},
	}

	result := Match([]entities.LibraryBook{sampleLibraryBook}, isbnBooks)

	assert.Equal(t, "a", result[0].MatchedIsbnBook.IsbnCode)
	assert.Equal(t, "b", result[1].IsbnBook.IsbnCode)
}

func TestMatch_Partition(t *testing.T) {
	var libraryBooks []entities.LibraryBook
	var isbnBooks []entities.IsbnBook
	for i := 0; i < 20; i++ {
		libraryBooks = append(libraryBooks, entities.LibraryBook{Title: fmt.Sprintf("Series %d - Volume %d", i%4, i)})
	}
	for i := 0; i < 15; i++ {
		isbnBooks = append(isbnBooks, entities.IsbnBook{IsbnCode: fmt.Sprint(i), Title: fmt.Sprintf("series %d (%d)", i%5, i)})
	}

	result := Match(libraryBooks, isbnBooks)
	stats := Stats(result)

	assert.Equal(t, stats.Total, stats.MatchedBooks+stats.UnmatchedLibraryBooks+stats.UnmatchedIsbnBooks)
	assert.Equal(t, len(libraryBooks)+len(isbnBooks)-stats.MatchedBooks, stats.Total)

	seenIsbn := make(map[string]int)
	libraryCount := 0
	for _, item := range result {
		switch item.Kind {
		case entities.MatchKindMatched:
			libraryCount++
			seenIsbn[item.MatchedIsbnBook.IsbnCode]++
		case entities.MatchKindUnmatchedLibrary:
			libraryCount++
		case entities.MatchKindUnmatchedIsbn:
			seenIsbn[item.IsbnBook.IsbnCode]++
		}
	}
	assert.Equal(t, len(libraryBooks), libraryCount)
	assert.Len(t, seenIsbn, len(isbnBooks))
	for code, n := range seenIsbn {
		assert.Equal(t, 1, n, code)
	}
}

func TestMatch_PermutationKeepsClassification(t *testing.T) {
	libraryBooks := []entities.LibraryBook{
		{Title: "Dune"},
		{Title: "Lightfall (2) : L'ombre de l'oiseau"},
		{Title: "Unknown title"},
	}
	reversed := []entities.LibraryBook{libraryBooks[2], libraryBooks[1], libraryBooks[0]}
	isbnBooks := []entities.IsbnBook{
		{IsbnCode: "1", Title: "Lightfall", Subtitle: "L'ombre de l'oiseau"},
		{IsbnCode: "2", Title: "DUNE"},
		{IsbnCode: "3", Title: "Other"},
	}

	classify := func(items []entities.MatchResultItem) map[string]entities.MatchKind {
		out := make(map[string]entities.MatchKind)
		for _, item := range items {
			if item.LibraryBook != nil {
				out[item.LibraryBook.Title] = item.Kind
			} else {
				out["isbn:"+item.IsbnBook.IsbnCode] = item.Kind
			}
		}
		return out
	}

	assert.Equal(t, classify(Match(libraryBooks, isbnBooks)), classify(Match(reversed, isbnBooks)))
}

func TestMatcher_CustomOptions(t *testing.T) {
	m := New(Options{MinFragmentLength: 4, FragmentDelimiters: "-:/"})
	libraryBook := entities.LibraryBook{Title: "Dune / Part one"}
	isbnBook := entities.IsbnBook{IsbnCode: "1", Title: "Dune: Messiah"}

	assert.True(t, m.IsMatching(libraryBook, isbnBook))
	assert.False(t, IsMatching(libraryBook, isbnBook))
}

func TestFragments(t *testing.T) {
	assert.Equal(t, []string{"a song of ice and fire"}, Fragments("a song of ice and fire - (6)", "-:", 6))
	assert.Equal(t, []string{"a song of ice and fire"}, Fragments("a song of ice and fire (6)", "-:", 6))
	assert.Equal(t, []string{"lightfall"}, Fragments("lightfall-(2)", "-:", 6))
	assert.Equal(t, []string{"sorceline", "mystere et boule"}, Fragments("sorceline (6) : mystere et boule", "-:", 6))
	assert.Equal(t, []string{"word(1)"}, Fragments("word(1)", "-:", 6))
	assert.Equal(t, []string{}, Fragments("vol - tome", "-:", 6))
	assert.Equal(t, []string{"éléphant"}, Fragments("éléphant", "-:", 8))
}
