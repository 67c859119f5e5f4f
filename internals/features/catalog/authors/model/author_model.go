// internals/features/catalog/authors/model/author_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AuthorModel struct {
	// PK
	AuthorID uuid.UUID `json:"author_id" gorm:"column:author_id;type:uuid;primaryKey"`

	// Nama
	AuthorFirstName  string `json:"author_first_name"  gorm:"column:author_first_name;type:varchar(100);not null"`
	AuthorFamilyName string `json:"author_family_name" gorm:"column:author_family_name;type:varchar(100);not null;index:idx_authors_family_name"`

	// Nama alias/pena (array Postgres)
	AuthorAltNames pq.StringArray `json:"author_alt_names,omitempty" gorm:"column:author_alt_names;type:text[]"`

	// Tanggal lahir & wafat (opsional)
	AuthorDateOfBirth *time.Time `json:"author_date_of_birth,omitempty" gorm:"column:author_date_of_birth"`
	AuthorDateOfDeath *time.Time `json:"author_date_of_death,omitempty" gorm:"column:author_date_of_death"`

	// Timestamps
	AuthorCreatedAt time.Time      `json:"author_created_at" gorm:"column:author_created_at;not null;autoCreateTime"`
	AuthorUpdatedAt time.Time      `json:"author_updated_at" gorm:"column:author_updated_at;not null;autoUpdateTime"`
	AuthorDeletedAt gorm.DeletedAt `json:"author_deleted_at,omitempty" gorm:"column:author_deleted_at;index"`
}

func (AuthorModel) TableName() string { return "authors" }

func (m *AuthorModel) BeforeCreate(tx *gorm.DB) error {
	if m.AuthorID == uuid.Nil {
		m.AuthorID = uuid.New()
	}
	return nil
}

/* =========================
   Computed (dipakai template)
   ========================= */

// FullName: "Keluarga, Depan". Kosong kalau dua-duanya kosong.
func (m AuthorModel) FullName() string {
	family := strings.TrimSpace(m.AuthorFamilyName)
	first := strings.TrimSpace(m.AuthorFirstName)
	if family == "" && first == "" {
		return ""
	}
	if family == "" {
		return first
	}
	if first == "" {
		return family
	}
	return family + ", " + first
}

// Lifespan: "1920 - 2012"; sisi yang tidak diketahui dibiarkan kosong.
// Kosong total kalau dua tanggal tidak ada.
func (m AuthorModel) Lifespan() string {
	if m.AuthorDateOfBirth == nil && m.AuthorDateOfDeath == nil {
		return ""
	}
	birth, death := "", ""
	if m.AuthorDateOfBirth != nil {
		birth = m.AuthorDateOfBirth.Format("2006")
	}
	if m.AuthorDateOfDeath != nil {
		death = m.AuthorDateOfDeath.Format("2006")
	}
	return birth + " - " + death
}

// URL kanonis untuk halaman detail.
func (m AuthorModel) URL() string {
	return "/catalog/author/" + m.AuthorID.String()
}
