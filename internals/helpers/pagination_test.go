package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	first := BuildPaginationFromPage(45, 1, 20)
	assert.False(t, first.HasPrev)

	kosong := BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, kosong.TotalPages)
	assert.False(t, kosong.HasNext)
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendString("ok")
	})

	tests := []struct {
		name    string
		query   string
		page    int
		perPage int
		offset  int
	}{
		{"default", "", 1, 20, 0},
		{"halaman 3", "?page=3", 3, 20, 40},
		{"per_page dibatasi", "?per_page=500", 1, 100, 0},
		{"alias limit", "?limit=5&page=2", 2, 5, 5},
		{"nilai rusak", "?page=abc&per_page=-1", 1, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, tt.perPage, got.PerPage)
			assert.Equal(t, tt.offset, got.Offset)
		})
	}
}
