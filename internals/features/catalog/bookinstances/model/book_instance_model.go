// internals/features/catalog/bookinstances/model/book_instance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "pustaka_backend/internals/features/catalog/books/model"
)

// Status eksemplar
const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"
)

// AllStatuses dipakai form select & validasi
var AllStatuses = []string{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

type BookInstanceModel struct {
	// PK
	BookInstanceID uuid.UUID `json:"book_instance_id" gorm:"column:book_instance_id;type:uuid;primaryKey"`

	// FK buku (wajib ada)
	BookInstanceBookID uuid.UUID `json:"book_instance_book_id" gorm:"column:book_instance_book_id;type:uuid;not null;index:idx_book_instances_book"`

	// Cetakan/penerbit eksemplar
	BookInstanceImprint string `json:"book_instance_imprint" gorm:"column:book_instance_imprint;type:varchar(255);not null"`

	// Status peminjaman
	BookInstanceStatus string `json:"book_instance_status" gorm:"column:book_instance_status;type:varchar(20);not null;default:'Maintenance'"`

	// Jatuh tempo kembali (opsional)
	BookInstanceDueBack *time.Time `json:"book_instance_due_back,omitempty" gorm:"column:book_instance_due_back"`

	// Relasi
	Book bookModel.BookModel `json:"book,omitempty" gorm:"foreignKey:BookInstanceBookID;references:BookID"`

	// Timestamps
	BookInstanceCreatedAt time.Time      `json:"book_instance_created_at" gorm:"column:book_instance_created_at;not null;autoCreateTime"`
	BookInstanceUpdatedAt time.Time      `json:"book_instance_updated_at" gorm:"column:book_instance_updated_at;not null;autoUpdateTime"`
	BookInstanceDeletedAt gorm.DeletedAt `json:"book_instance_deleted_at,omitempty" gorm:"column:book_instance_deleted_at;index"`
}

func (BookInstanceModel) TableName() string { return "book_instances" }

func (m *BookInstanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookInstanceID == uuid.Nil {
		m.BookInstanceID = uuid.New()
	}
	if m.BookInstanceStatus == "" {
		m.BookInstanceStatus = StatusMaintenance
	}
	if m.BookInstanceDueBack == nil {
		now := time.Now()
		m.BookInstanceDueBack = &now
	}
	return nil
}

func (m BookInstanceModel) URL() string {
	return "/catalog/bookinstance/" + m.BookInstanceID.String()
}

func (m BookInstanceModel) IsAvailable() bool {
	return m.BookInstanceStatus == StatusAvailable
}

// DueBackFormatted: tanggal jatuh tempo untuk tampilan, kosong jika tidak ada.
func (m BookInstanceModel) DueBackFormatted() string {
	if m.BookInstanceDueBack == nil {
		return ""
	}
	return m.BookInstanceDueBack.Format("02 Jan 2006")
}
