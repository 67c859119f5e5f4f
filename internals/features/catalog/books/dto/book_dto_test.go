package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGenreIDs(t *testing.T) {
	f := BookForm{
		Title:    " The Name of the Wind ",
		GenreIDs: []string{" abc ", "", "def"},
	}
	f.Normalize()
	assert.Equal(t, "The Name of the Wind", f.Title)
	assert.Equal(t, []string{"abc", "def"}, f.GenreIDs)
}

func TestGenreRefsBuangIDRusak(t *testing.T) {
	valid := uuid.New()
	f := BookForm{GenreIDs: []string{valid.String(), "bukan-uuid"}}
	refs := f.GenreRefs()
	require.Len(t, refs, 1)
	assert.Equal(t, valid, refs[0].GenreID)
}

func TestMetadataJSON(t *testing.T) {
	f := BookForm{Publisher: "Gollancz", Language: "Inggris"}
	m := f.ToModel()
	require.NotEmpty(t, m.BookMetadata)
	assert.JSONEq(t, `{"publisher":"Gollancz","language":"Inggris"}`, string(m.BookMetadata))

	kosong := BookForm{}
	assert.Empty(t, kosong.ToModel().BookMetadata)
}

func TestFromModelRoundtrip(t *testing.T) {
	authorID := uuid.New()
	orig := BookForm{
		Title:     "Bumi Manusia",
		AuthorID:  authorID.String(),
		Summary:   "Minke dan Nyai Ontosoroh.",
		ISBN:      "9789799731234",
		Publisher: "Hasta Mitra",
	}
	m := orig.ToModel()
	got := FromModel(m)
	assert.Equal(t, orig.Title, got.Title)
	assert.Equal(t, orig.AuthorID, got.AuthorID)
	assert.Equal(t, orig.ISBN, got.ISBN)
	assert.Equal(t, orig.Publisher, got.Publisher)
}

func TestHasGenre(t *testing.T) {
	id := uuid.New().String()
	f := BookForm{GenreIDs: []string{id}}
	assert.True(t, f.HasGenre(id))
	assert.False(t, f.HasGenre(uuid.New().String()))
}
