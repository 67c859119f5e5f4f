// internals/features/catalog/genres/dto/genre_dto.go
package dto

import (
	"strings"

	model "pustaka_backend/internals/features/catalog/genres/model"
)

type GenreForm struct {
	Name string `form:"name" validate:"required,min=3,max=100,alphanumname"`
}

func (r *GenreForm) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *GenreForm) ToModel() *model.GenreModel {
	return &model.GenreModel{GenreName: r.Name}
}

func (r *GenreForm) ApplyToModel(m *model.GenreModel) {
	m.GenreName = r.Name
}

func FromModel(m *model.GenreModel) GenreForm {
	return GenreForm{Name: m.GenreName}
}
