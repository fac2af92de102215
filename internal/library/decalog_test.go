package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelfcheck/internal/entities"
)

var decalogHeaders = []string{"État", "Titre du document", "Informations"}

func TestIsDecalogLayout(t *testing.T) {
	assert.True(t, IsDecalogLayout(decalogHeaders))
	assert.False(t, IsDecalogLayout([]string{"Status", "Title", "Info"}))
	assert.False(t, IsDecalogLayout([]string{"État", "Titre du document"}))
	assert.False(t, IsDecalogLayout([]string{"État", "Titre du document", "Informations", "Extra"}))
	assert.False(t, IsDecalogLayout([]string{"état", "Titre du document", "Informations"}))
}

func TestParseDecalog(t *testing.T) {
	// Rows as split by a CSV reader that does not know titles are unescaped.
	rows := [][]string{
		{
			"En cours",
			"Sorceline (6) : Mystère et boule de gnome ! par Sylvia Douyé Publié par Vents d'Ouest",
			"DL 2023",
			"Prêté le 29/10/2025 par Lentilly Retour prévu le 19/11/2025",
		},
		{
			"En cours",
			"Sorceline (5) : Le saigneur de Vorn par Sylvia Douyé Publié par Vents d'Ouest",
			"2022",
			"Prêté le 29/10/2025 par Médiathèque de L'Arbresle Retour prévu le 19/11/2025",
		},
		{
			"En cours",
			"Lightfall (2) : L'ombre de l'oiseau par Tim Probert Publié par Gallimard bande dessinée",
			"DL 2022",
			"Prêté le 29/10/2025 par Lentilly Retour prévu le 19/11/2025",
		},
		{
			"En retard",
			"La Revue dessinée n°46 Hiver 2024/2025 : Accouchement : poussées à bout Publié en 2024",
			"Prêté le 07/10/2025 par Lentilly Retour prévu le 28/10/2025",
		},
		{
			"En retard",
			"Brussailes par Eléonore Devillepoix Publié par Hachette romans",
			"DL 2022",
			"Prêté le 07/10/2025 par Lentilly Retour prévu le 28/10/2025 Ce document est réservé par un autre usager.",
		},
	}

	books, err := ParseDecalog(decalogHeaders, rows)
	require.NoError(t, err)

	assert.Equal(t, []entities.LibraryBook{
		{
			Title:      "Sorceline (6) : Mystère et boule de gnome !",
			Authors:    []string{"Sylvia Douyé"},
			ReturnDate: "2025-11-19",
		},
		{
			Title:      "Sorceline (5) : Le saigneur de Vorn",
			Authors:    []string{"Sylvia Douyé"},
			ReturnDate: "2025-11-19",
		},
		{
			Title:      "Lightfall (2) : L'ombre de l'oiseau",
			Authors:    []string{"Tim Probert"},
			ReturnDate: "2025-11-19",
		},
		{
			Title:      "La Revue dessinée n°46 Hiver 2024/2025 : Accouchement : poussées à bout",
			Authors:    []string{},
			Overdue:    true,
			ReturnDate: "2025-10-28",
		},
		{
			Title:      "Brussailes",
			Authors:    []string{"Eléonore Devillepoix"},
			Overdue:    true,
			ReturnDate: "2025-10-28",
		},
	}, books)
}

func TestParseDecalog_SimpleRow(t *testing.T) {
	rows := [][]string{
		{"En retard", "Title par Author Publié en 2024", "Prêté le 07/10/2025 par X Retour prévu le 28/10/2025"},
	}

	books, err := ParseDecalog(decalogHeaders, rows)
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Equal(t, entities.LibraryBook{
		Title:      "Title",
		Authors:    []string{"Author"},
		Overdue:    true,
		ReturnDate: "2025-10-28",
	}, books[0])
}

func TestParseDecalog_RejectsOtherHeaders(t *testing.T) {
	_, err := ParseDecalog([]string{"Status", "Title", "Info"}, [][]string{{"En cours", "Title", "Info"}})
	assert.ErrorIs(t, err, ErrNotDecalogLayout)
}

func TestParseDecalog_DropsEmptyTitles(t *testing.T) {
	rows := [][]string{
		{"En cours", "", "Info"},
		{"En cours", "   ", "Info"},
		{"En cours", "Valid Title", "Info"},
		{""},
	}

	books, err := ParseDecalog(decalogHeaders, rows)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Valid Title", books[0].Title)
	assert.False(t, books[0].HasReturnDate())
}

func TestParseDecalog_RepairsCommasInTitle(t *testing.T) {
	rows := [][]string{
		{"En cours", "Astérix", " le Gaulois par Goscinny", " Uderzo Publié par Dargaud", "Retour prévu le 01/02/2026"},
	}

	books, err := ParseDecalog(decalogHeaders, rows)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Astérix, le Gaulois", books[0].Title)
	assert.Equal(t, []string{"Goscinny", "Uderzo"}, books[0].Authors)
	assert.Equal(t, "2026-02-01", books[0].ReturnDate)
}

func TestSplitDecalogTitle(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		title   string
		authors []string
	}{
		{"publisher and date", "Dune par Frank Herbert Publié par Laffont, 1970", "Dune", []string{"Frank Herbert"}},
		{"publication year", "Dune par Frank Herbert Publié en 1970", "Dune", []string{"Frank Herbert"}},
		{"several authors", "Blake et Mortimer par Edgar P. Jacobs, Yves Sente", "Blake et Mortimer", []string{"Edgar P. Jacobs", "Yves Sente"}},
		{"no author", "Le Monde Publié en 2025", "Le Monde", []string{}},
		{"marker inside a word", "Le parfum par Patrick Süskind", "Le parfum par Patrick Süskind", []string{}},
		{"publisher wins over year", "Titre par Auteur Publié en poche Publié par Folio", "Titre", []string{"Auteur Publié en poche"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, authors := splitDecalogTitle(tt.cell)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.authors, authors)
		})
	}
}

func TestExtractReturnDate(t *testing.T) {
	assert.Equal(t, "2025-11-19", extractReturnDate("Prêté le 29/10/2025 par Lentilly Retour prévu le 19/11/2025"))
	assert.Equal(t, "", extractReturnDate("Prêté le 29/10/2025 par Lentilly"))
	assert.Equal(t, "", extractReturnDate("Retour prévu le 1/2/2026"))
}
