// internals/features/catalog/authors/dto/author_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/samber/lo"

	model "pustaka_backend/internals/features/catalog/authors/model"
)

/* =========================
   REQUEST (form create & update)
   ========================= */

type AuthorForm struct {
	FirstName   string `form:"first_name"    validate:"required,max=100,alphanumname"`
	FamilyName  string `form:"family_name"   validate:"required,max=100,alphanumname"`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	DateOfDeath string `form:"date_of_death" validate:"omitempty,datetime=2006-01-02"`
	// Nama alias dipisah koma (opsional)
	AltNames string `form:"alt_names" validate:"omitempty,max=500"`
}

/* =========================
   NORMALIZER
   ========================= */

func (r *AuthorForm) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.FamilyName = strings.TrimSpace(r.FamilyName)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.DateOfDeath = strings.TrimSpace(r.DateOfDeath)
	r.AltNames = strings.TrimSpace(r.AltNames)
}

/* =========================
   MAPPER
   ========================= */

func (r *AuthorForm) ToModel() *model.AuthorModel {
	return &model.AuthorModel{
		AuthorFirstName:   r.FirstName,
		AuthorFamilyName:  r.FamilyName,
		AuthorDateOfBirth: parseDate(r.DateOfBirth),
		AuthorDateOfDeath: parseDate(r.DateOfDeath),
		AuthorAltNames:    splitAltNames(r.AltNames),
	}
}

func (r *AuthorForm) ApplyToModel(m *model.AuthorModel) {
	m.AuthorFirstName = r.FirstName
	m.AuthorFamilyName = r.FamilyName
	m.AuthorDateOfBirth = parseDate(r.DateOfBirth)
	m.AuthorDateOfDeath = parseDate(r.DateOfDeath)
	m.AuthorAltNames = splitAltNames(r.AltNames)
}

// FromModel mengisi form untuk halaman update.
func FromModel(m *model.AuthorModel) AuthorForm {
	return AuthorForm{
		FirstName:   m.AuthorFirstName,
		FamilyName:  m.AuthorFamilyName,
		DateOfBirth: formatDate(m.AuthorDateOfBirth),
		DateOfDeath: formatDate(m.AuthorDateOfDeath),
		AltNames:    strings.Join(m.AuthorAltNames, ", "),
	}
}

/* =========================
   Internal
   ========================= */

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

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func splitAltNames(s string) pq.StringArray {
	if s == "" {
		return nil
	}
	parts := lo.FilterMap(strings.Split(s, ","), func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
	if len(parts) == 0 {
		return nil
	}
	return pq.StringArray(parts)
}
