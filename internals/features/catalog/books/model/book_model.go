// internals/features/catalog/books/model/book_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	authorModel "pustaka_backend/internals/features/catalog/authors/model"
	genreModel "pustaka_backend/internals/features/catalog/genres/model"
)

type BookModel struct {
	// PK
	BookID uuid.UUID `json:"book_id" gorm:"column:book_id;type:uuid;primaryKey"`

	// FK penulis (wajib ada)
	BookAuthorID uuid.UUID `json:"book_author_id" gorm:"column:book_author_id;type:uuid;not null;index:idx_books_author"`

	// Data utama
	BookTitle   string `json:"book_title"   gorm:"column:book_title;type:varchar(255);not null;index:idx_books_title"`
	BookSummary string `json:"book_summary" gorm:"column:book_summary;type:text;not null"`
	BookISBN    string `json:"book_isbn"    gorm:"column:book_isbn;type:varchar(20);not null"`

	// Sampul (opsional, diisi endpoint upload)
	BookCoverURL *string `json:"book_cover_url,omitempty" gorm:"column:book_cover_url;type:varchar(255)"`

	// Metadata bebas (penerbit, edisi, bahasa, dll.), kolom JSON fleksibel
	BookMetadata datatypes.JSON `json:"book_metadata,omitempty" gorm:"column:book_metadata"`

	// Relasi
	Author authorModel.AuthorModel `json:"author,omitempty" gorm:"foreignKey:BookAuthorID;references:AuthorID"`
	Genres []genreModel.GenreModel `json:"genres,omitempty" gorm:"many2many:book_genres;foreignKey:BookID;joinForeignKey:BookID;references:GenreID;joinReferences:GenreID"`

	// Timestamps
	BookCreatedAt time.Time      `json:"book_created_at" gorm:"column:book_created_at;not null;autoCreateTime"`
	BookUpdatedAt time.Time      `json:"book_updated_at" gorm:"column:book_updated_at;not null;autoUpdateTime"`
	BookDeletedAt gorm.DeletedAt `json:"book_deleted_at,omitempty" gorm:"column:book_deleted_at;index"`
}

func (BookModel) TableName() string { return "books" }

func (m *BookModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookID == uuid.Nil {
		m.BookID = uuid.New()
	}
	return nil
}

func (m BookModel) URL() string {
	return "/catalog/book/" + m.BookID.String()
}
