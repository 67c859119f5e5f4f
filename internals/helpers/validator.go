// file: internals/helpers/validator.go
package helper

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Nama orang/genre: huruf & angka unicode, boleh spasi, titik, apostrof,
// dan tanda hubung di tengah. Simbol lain ditolak.
var nameRe = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .'-]*$`)

// NewValidator membuat validator dengan tag tambahan untuk form katalog.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("alphanumname", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	return v
}
