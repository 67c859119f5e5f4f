// internals/features/catalog/bookinstances/dto/book_instance_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "pustaka_backend/internals/features/catalog/bookinstances/model"
)

type BookInstanceForm struct {
	BookID  string `form:"book"     validate:"required,uuid"`
	Imprint string `form:"imprint"  validate:"required,max=255"`
	Status  string `form:"status"   validate:"omitempty,oneof=Available Maintenance Loaned Reserved"`
	DueBack string `form:"due_back" validate:"omitempty,datetime=2006-01-02"`
}

func (r *BookInstanceForm) Normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
	r.Imprint = strings.TrimSpace(r.Imprint)
	r.Status = strings.TrimSpace(r.Status)
	r.DueBack = strings.TrimSpace(r.DueBack)
}

func (r *BookInstanceForm) ToModel() *model.BookInstanceModel {
	m := &model.BookInstanceModel{
		BookInstanceImprint: r.Imprint,
		BookInstanceStatus:  r.Status,
		BookInstanceDueBack: parseDate(r.DueBack),
	}
	if id, err := uuid.Parse(r.BookID); err == nil {
		m.BookInstanceBookID = id
	}
	return m
}

func (r *BookInstanceForm) ApplyToModel(m *model.BookInstanceModel) {
	m.BookInstanceImprint = r.Imprint
	if r.Status != "" {
		m.BookInstanceStatus = r.Status
	}
	m.BookInstanceDueBack = parseDate(r.DueBack)
	if id, err := uuid.Parse(r.BookID); err == nil {
		m.BookInstanceBookID = id
	}
}

func FromModel(m *model.BookInstanceModel) BookInstanceForm {
	f := BookInstanceForm{
		BookID:  m.BookInstanceBookID.String(),
		Imprint: m.BookInstanceImprint,
		Status:  m.BookInstanceStatus,
	}
	if m.BookInstanceDueBack != nil {
		f.DueBack = m.BookInstanceDueBack.Format("2006-01-02")
	}
	return f
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
