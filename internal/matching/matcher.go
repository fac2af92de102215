// Package matching pairs library loan entries with the books identified by
// their scanned ISBN.
package matching

import (
	"regexp"
	"strings"

	"github.com/mrlokans/shelfcheck/internal/entities"
	"github.com/mrlokans/shelfcheck/internal/normalize"
)

const (
	// DefaultMinFragmentLength drops short title fragments such as "vol" or
	// a single word, which match too many titles.
	DefaultMinFragmentLength = 6
	// DefaultFragmentDelimiters split a title into its series and volume parts.
	DefaultFragmentDelimiters = "-:"
)

// Options tunes the title heuristics.
type Options struct {
	MinFragmentLength  int
	FragmentDelimiters string
}

func DefaultOptions() Options {
	return Options{
		MinFragmentLength:  DefaultMinFragmentLength,
		FragmentDelimiters: DefaultFragmentDelimiters,
	}
}

// Matcher runs a greedy one-to-one matching between library books and ISBN books.
type Matcher struct {
	opts Options
}

func New(opts Options) *Matcher {
	if opts.MinFragmentLength <= 0 {
		opts.MinFragmentLength = DefaultMinFragmentLength
	}
	if opts.FragmentDelimiters == "" {
		opts.FragmentDelimiters = DefaultFragmentDelimiters
	}
	return &Matcher{opts: opts}
}

// Match pairs every library book, in order, with the first still unmatched
// ISBN book it matches. An ISBN book is consumed by its first match. The
// result lists library books in their input order, matched or not, followed
// by the ISBN books nobody matched, in their input order.
func Match(libraryBooks []entities.LibraryBook, isbnBooks []entities.IsbnBook) []entities.MatchResultItem {
	return New(DefaultOptions()).Match(libraryBooks, isbnBooks)
}

func (m *Matcher) Match(libraryBooks []entities.LibraryBook, isbnBooks []entities.IsbnBook) []entities.MatchResultItem {
	items := make([]entities.MatchResultItem, 0, len(libraryBooks)+len(isbnBooks))

	// Normalized once, each ISBN book is compared with every library book.
	candidates := make([]titleKeys, len(isbnBooks))
	for i, b := range isbnBooks {
		candidates[i] = m.isbnKeys(b)
	}
	consumed := make([]bool, len(isbnBooks))

	for _, libraryBook := range libraryBooks {
		keys := m.libraryKeys(libraryBook)

		found := -1
		for i := range isbnBooks {
			if consumed[i] {
				continue
			}
			if keys.matches(candidates[i]) {
				found = i
				break
			}
		}

		if found == -1 {
			items = append(items, entities.NewUnmatchedLibraryItem(libraryBook))
			continue
		}
		consumed[found] = true
		items = append(items, entities.NewMatchedItem(libraryBook, isbnBooks[found]))
	}

	for i, isbnBook := range isbnBooks {
		if !consumed[i] {
			items = append(items, entities.NewUnmatchedIsbnItem(isbnBook))
		}
	}

	return items
}

// IsMatching reports whether a library book and an ISBN book describe the
// same title, using the default options.
func IsMatching(libraryBook entities.LibraryBook, isbnBook entities.IsbnBook) bool {
	return New(DefaultOptions()).IsMatching(libraryBook, isbnBook)
}

// IsMatching is true when the normalized titles are equal, or when a long
// enough fragment of the library title equals a fragment of the ISBN title
// or subtitle.
func (m *Matcher) IsMatching(libraryBook entities.LibraryBook, isbnBook entities.IsbnBook) bool {
	return m.libraryKeys(libraryBook).matches(m.isbnKeys(isbnBook))
}

// volumeToken is the canonical "(N)" volume marker left by normalize.Title.
var volumeToken = regexp.MustCompile(`(^|\s)\(\d+\)`)

// Fragments splits an already normalized title on the delimiters and on its
// "(N)" volume markers, and keeps the trimmed pieces that are at least
// minLength characters long. "saga (2)" and "saga - (3)" both yield "saga".
func Fragments(title string, delimiters string, minLength int) []string {
	pieces := strings.FieldsFunc(title, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})

	fragments := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		for _, p := range volumeToken.Split(piece, -1) {
			p = strings.TrimSpace(p)
			if len([]rune(p)) < minLength {
				continue
			}
			fragments = append(fragments, p)
		}
	}
	return fragments
}

type titleKeys struct {
	title     string
	fragments []string
}

func (k titleKeys) matches(other titleKeys) bool {
	if k.title == other.title {
		return true
	}
	for _, f := range k.fragments {
		for _, o := range other.fragments {
			if f == o {
				return true
			}
		}
	}
	return false
}

func (m *Matcher) libraryKeys(b entities.LibraryBook) titleKeys {
	title := normalize.Title(b.Title)
	return titleKeys{
		title:     title,
		fragments: Fragments(title, m.opts.FragmentDelimiters, m.opts.MinFragmentLength),
	}
}

func (m *Matcher) isbnKeys(b entities.IsbnBook) titleKeys {
	title := normalize.Title(b.Title)
	fragments := Fragments(title, m.opts.FragmentDelimiters, m.opts.MinFragmentLength)
	if b.Subtitle != "" {
		subtitle := normalize.Title(b.Subtitle)
		fragments = append(fragments, Fragments(subtitle, m.opts.FragmentDelimiters, m.opts.MinFragmentLength)...)
	}
	return titleKeys{title: title, fragments: fragments}
}
