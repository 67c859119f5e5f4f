// internals/features/catalog/genres/model/genre_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenreModel struct {
	// PK
	GenreID uuid.UUID `json:"genre_id" gorm:"column:genre_id;type:uuid;primaryKey"`

	// Nama genre, unik saat alive
	GenreName string `json:"genre_name" gorm:"column:genre_name;type:varchar(100);not null;index:idx_genres_name"`

	// Timestamps
	GenreCreatedAt time.Time      `json:"genre_created_at" gorm:"column:genre_created_at;not null;autoCreateTime"`
	GenreUpdatedAt time.Time      `json:"genre_updated_at" gorm:"column:genre_updated_at;not null;autoUpdateTime"`
	GenreDeletedAt gorm.DeletedAt `json:"genre_deleted_at,omitempty" gorm:"column:genre_deleted_at;index"`
}

func (GenreModel) TableName() string { return "genres" }

func (m *GenreModel) BeforeCreate(tx *gorm.DB) error {
	if m.GenreID == uuid.Nil {
		m.GenreID = uuid.New()
	}
	return nil
}

func (m GenreModel) URL() string {
	return "/catalog/genre/" + m.GenreID.String()
}
