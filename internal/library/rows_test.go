package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	input := "\xEF\xBB\xBFÉtat,Titre du document,Informations\n" +
		"En cours,Astérix, le Gaulois par Goscinny, Uderzo Publié par Dargaud,Retour prévu le 01/02/2026\n" +
		"\n" +
		",,\n" +
		"En retard,\"Quoted, title\",Info\n"

	rows, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"État", "Titre du document", "Informations"}, rows[0])
	assert.Equal(t, []string{"En cours", "Astérix", " le Gaulois par Goscinny", " Uderzo Publié par Dargaud", "Retour prévu le 01/02/2026"}, rows[1])
	assert.Equal(t, []string{"En retard", "Quoted, title", "Info"}, rows[2])
}

func TestReadRows_LazyQuotes(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("Titre\nLe \"grand\" livre\n"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `Le "grand" livre`, rows[1][0])
}

func TestReadRows_Empty(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
