// internals/features/catalog/genres/controller/genre_controller.go
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	bookModel "pustaka_backend/internals/features/catalog/books/model"
	dto "pustaka_backend/internals/features/catalog/genres/dto"
	model "pustaka_backend/internals/features/catalog/genres/model"
	helper "pustaka_backend/internals/helpers"
)

type GenresController struct {
	DB *gorm.DB
}

var validate = helper.NewValidator()

// =========================================================
// LIST - GET /catalog/genres
// =========================================================
func (h *GenresController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.GenreModel{}).Count(&total).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var genres []model.GenreModel
	if err := h.DB.
		Order("genre_name asc").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&genres).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "genres/list", "Daftar Genre", fiber.Map{
		"Genres":     genres,
		"Pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// =========================================================
// DETAIL - GET /catalog/genre/:id
// Genre + buku-buku dalam genre itu (fetch paralel)
// =========================================================
func (h *GenresController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.RenderNotFound(c, "Genre tidak ditemukan")
	}

	var (
		genre model.GenreModel
		books []bookModel.BookModel
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		return h.DB.WithContext(ctx).First(&genre, "genre_id = ?", id).Error
	})
	g.Go(func() error {
		var err error
		books, err = h.booksInGenre(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.RenderNotFound(c, "Genre tidak ditemukan")
		}
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "genres/detail", genre.GenreName, fiber.Map{
		"Genre": genre,
		"Books": books,
	})
}

// =========================================================
// CREATE - GET /catalog/genre/create
// =========================================================
func (h *GenresController) CreateForm(c *fiber.Ctx) error {
	return helper.Render(c, "genres/form", "Tambah Genre", fiber.Map{
		"Form": dto.GenreForm{},
	})
}

// =========================================================
// CREATE - POST /catalog/genre/create
// Genre dengan nama sama (case-insensitive) tidak dibuat dua kali
// =========================================================
func (h *GenresController) Create(c *fiber.Ctx) error {
	var req dto.GenreForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(&req); err != nil {
		return helper.RenderWithCode(c, fiber.StatusBadRequest, "genres/form", "Tambah Genre", fiber.Map{
			"Form":   req,
			"Errors": helper.ValidationMessages(err),
		})
	}

	// kalau sudah ada, arahkan ke genre yang lama (idempotent, gaya katalog)
	var existing model.GenreModel
	err := h.DB.Where("lower(genre_name) = lower(?)", req.Name).First(&existing).Error
	if err == nil {
		return helper.RedirectTo(c, existing.URL())
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal cek duplikasi genre")
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal membuat data")
	}
	return helper.RedirectTo(c, m.URL())
}

// =========================================================
// UPDATE - GET /catalog/genre/:id/update
// =========================================================
func (h *GenresController) UpdateForm(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	return helper.Render(c, "genres/form", "Ubah Genre", fiber.Map{
		"Form":     dto.FromModel(m),
		"IsUpdate": true,
	})
}

// =========================================================
// UPDATE - POST /catalog/genre/:id/update
// =========================================================
func (h *GenresController) Update(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}

	var req dto.GenreForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(&req); err != nil {
		return helper.RenderWithCode(c, fiber.StatusBadRequest, "genres/form", "Ubah Genre", fiber.Map{
			"Form":     req,
			"Errors":   helper.ValidationMessages(err),
			"IsUpdate": true,
		})
	}

	req.ApplyToModel(m)
	if err := h.DB.Save(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal memperbarui data")
	}
	return helper.RedirectTo(c, m.URL())
}

// =========================================================
// DELETE - GET /catalog/genre/:id/delete
// =========================================================
func (h *GenresController) DeleteForm(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	books, err := h.booksInGenre(c.UserContext(), m.GenreID)
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.Render(c, "genres/delete", "Hapus Genre", fiber.Map{
		"Genre": m,
		"Books": books,
	})
}

// =========================================================
// DELETE - POST /catalog/genre/:id/delete
// Ditolak selama masih ada buku dalam genre ini
// =========================================================
func (h *GenresController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	books, err := h.booksInGenre(c.UserContext(), m.GenreID)
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	if len(books) > 0 {
		return helper.Render(c, "genres/delete", "Hapus Genre", fiber.Map{
			"Genre": m,
			"Books": books,
		})
	}

	if err := h.DB.Delete(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal menghapus data")
	}
	return helper.RedirectTo(c, "/catalog/genres")
}

/* =========================
   Internal
   ========================= */

func (h *GenresController) findByID(c *fiber.Ctx) (*model.GenreModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var m model.GenreModel
	if err := h.DB.First(&m, "genre_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *GenresController) renderFetchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.RenderNotFound(c, "Genre tidak ditemukan")
	}
	return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
}

func (h *GenresController) booksInGenre(ctx context.Context, genreID uuid.UUID) ([]bookModel.BookModel, error) {
	var books []bookModel.BookModel
	err := h.DB.WithContext(ctx).
		Joins("JOIN book_genres bg ON bg.book_id = books.book_id").
		Where("bg.genre_id = ?", genreID).
		Order("book_title asc").
		Preload("Author").
		Find(&books).Error
	return books, err
}
