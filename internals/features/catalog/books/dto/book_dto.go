// internals/features/catalog/books/dto/book_dto.go
package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"

	model "pustaka_backend/internals/features/catalog/books/model"
	genreModel "pustaka_backend/internals/features/catalog/genres/model"
)

/* =========================
   REQUEST (form create & update)
   ========================= */

type BookForm struct {
	Title    string `form:"title"   validate:"required,max=255"`
	AuthorID string `form:"author"  validate:"required,uuid"`
	Summary  string `form:"summary" validate:"required"`
	ISBN     string `form:"isbn"    validate:"required,min=10,max=20"`
	// Multi-select: nol, satu, atau banyak genre
	GenreIDs []string `form:"genre" validate:"omitempty,dive,uuid"`
	// Metadata bebas (disimpan sebagai JSON)
	Publisher string `form:"publisher" validate:"omitempty,max=255"`
	Language  string `form:"language"  validate:"omitempty,max=50"`
}

/* =========================
   NORMALIZER
   ========================= */

func (r *BookForm) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.AuthorID = strings.TrimSpace(r.AuthorID)
	r.Summary = strings.TrimSpace(r.Summary)
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Publisher = strings.TrimSpace(r.Publisher)
	r.Language = strings.TrimSpace(r.Language)
	// form select tunggal tetap jadi slice satu elemen
	r.GenreIDs = lo.FilterMap(r.GenreIDs, func(g string, _ int) (string, bool) {
		g = strings.TrimSpace(g)
		return g, g != ""
	})
}

/* =========================
   MAPPER
   ========================= */

func (r *BookForm) ToModel() *model.BookModel {
	m := &model.BookModel{
		BookTitle:    r.Title,
		BookSummary:  r.Summary,
		BookISBN:     r.ISBN,
		BookMetadata: r.metadataJSON(),
	}
	if id, err := uuid.Parse(r.AuthorID); err == nil {
		m.BookAuthorID = id
	}
	m.Genres = r.GenreRefs()
	return m
}

func (r *BookForm) ApplyToModel(m *model.BookModel) {
	m.BookTitle = r.Title
	m.BookSummary = r.Summary
	m.BookISBN = r.ISBN
	m.BookMetadata = r.metadataJSON()
	if id, err := uuid.Parse(r.AuthorID); err == nil {
		m.BookAuthorID = id
	}
}

// GenreRefs mengubah id terpilih menjadi referensi model (hanya PK terisi).
func (r *BookForm) GenreRefs() []genreModel.GenreModel {
	return lo.FilterMap(r.GenreIDs, func(g string, _ int) (genreModel.GenreModel, bool) {
		id, err := uuid.Parse(g)
		if err != nil {
			return genreModel.GenreModel{}, false
		}
		return genreModel.GenreModel{GenreID: id}, true
	})
}

func (r *BookForm) metadataJSON() datatypes.JSON {
	if r.Publisher == "" && r.Language == "" {
		return nil
	}
	meta := map[string]string{}
	if r.Publisher != "" {
		meta["publisher"] = r.Publisher
	}
	if r.Language != "" {
		meta["language"] = r.Language
	}
	b, err := sonic.Marshal(meta)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// FromModel mengisi form untuk halaman update.
func FromModel(m *model.BookModel) BookForm {
	f := BookForm{
		Title:    m.BookTitle,
		AuthorID: m.BookAuthorID.String(),
		Summary:  m.BookSummary,
		ISBN:     m.BookISBN,
		GenreIDs: lo.Map(m.Genres, func(g genreModel.GenreModel, _ int) string {
			return g.GenreID.String()
		}),
	}
	if len(m.BookMetadata) > 0 {
		var meta map[string]string
		if err := sonic.Unmarshal(m.BookMetadata, &meta); err == nil {
			f.Publisher = meta["publisher"]
			f.Language = meta["language"]
		}
	}
	return f
}

// HasGenre dipakai template form untuk menandai checkbox terpilih.
func (r BookForm) HasGenre(id string) bool {
	return lo.Contains(r.GenreIDs, id)
}
