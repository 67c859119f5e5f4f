package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlphanumnameTag(t *testing.T) {
	v := NewValidator()
	type form struct {
		Name string `validate:"required,alphanumname"`
	}

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"nama biasa", "Andrea Hirata", true},
		{"nama dengan tanda hubung", "Sapardi Djoko-Damono", true},
		{"apostrof dan titik", "Patrick O'Brien Jr.", true},
		{"huruf non-latin", "Пушкин", true},
		{"angka ikut", "Area 51", true},
		{"simbol saja", "!!!***", false},
		{"markup", "<script>alert(1)</script>", false},
		{"diawali simbol", "-Andrea", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(form{Name: tt.input})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
