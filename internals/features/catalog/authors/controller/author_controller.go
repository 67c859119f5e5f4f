// internals/features/catalog/authors/controller/author_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	dto "pustaka_backend/internals/features/catalog/authors/dto"
	model "pustaka_backend/internals/features/catalog/authors/model"
	bookModel "pustaka_backend/internals/features/catalog/books/model"
	helper "pustaka_backend/internals/helpers"
)

type AuthorsController struct {
	DB *gorm.DB
}

var validate = helper.NewValidator()

// =========================================================
// LIST - GET /catalog/authors
// =========================================================
func (h *AuthorsController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.AuthorModel{}).Count(&total).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var authors []model.AuthorModel
	if err := h.DB.
		Order("author_family_name asc, author_first_name asc").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&authors).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "authors/list", "Daftar Penulis", fiber.Map{
		"Authors":    authors,
		"Pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// =========================================================
// DETAIL - GET /catalog/author/:id
// Penulis + semua bukunya (fetch paralel)
// =========================================================
func (h *AuthorsController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.RenderNotFound(c, "Penulis tidak ditemukan")
	}

	var (
		author model.AuthorModel
		books  []bookModel.BookModel
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		return h.DB.WithContext(ctx).First(&author, "author_id = ?", id).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).
			Where("book_author_id = ?", id).
			Order("book_title asc").
			Find(&books).Error
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.RenderNotFound(c, "Penulis tidak ditemukan")
		}
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "authors/detail", author.FullName(), fiber.Map{
		"Author": author,
		"Books":  books,
	})
}

// =========================================================
// CREATE - GET /catalog/author/create
// =========================================================
func (h *AuthorsController) CreateForm(c *fiber.Ctx) error {
	return helper.Render(c, "authors/form", "Tambah Penulis", fiber.Map{
		"Form": dto.AuthorForm{},
	})
}

// =========================================================
// CREATE - POST /catalog/author/create
// =========================================================
func (h *AuthorsController) Create(c *fiber.Ctx) error {
	var req dto.AuthorForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(&req); err != nil {
		return helper.RenderWithCode(c, fiber.StatusBadRequest, "authors/form", "Tambah Penulis", fiber.Map{
			"Form":   req,
			"Errors": helper.ValidationMessages(err),
		})
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal membuat data")
	}
	return helper.RedirectTo(c, m.URL())
}

// =========================================================
// UPDATE - GET /catalog/author/:id/update
// =========================================================
func (h *AuthorsController) UpdateForm(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	return helper.Render(c, "authors/form", "Ubah Penulis", fiber.Map{
		"Form":     dto.FromModel(m),
		"IsUpdate": true,
	})
}

// =========================================================
// UPDATE - POST /catalog/author/:id/update
// =========================================================
func (h *AuthorsController) Update(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}

	var req dto.AuthorForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(&req); err != nil {
		return helper.RenderWithCode(c, fiber.StatusBadRequest, "authors/form", "Ubah Penulis", fiber.Map{
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
// DELETE - GET /catalog/author/:id/delete
// Halaman konfirmasi + daftar buku yang masih menempel
// =========================================================
func (h *AuthorsController) DeleteForm(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	books, err := h.dependentBooks(m.AuthorID)
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.Render(c, "authors/delete", "Hapus Penulis", fiber.Map{
		"Author": m,
		"Books":  books,
	})
}

// =========================================================
// DELETE - POST /catalog/author/:id/delete
// Ditolak selama masih ada buku milik penulis ini
// =========================================================
func (h *AuthorsController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	books, err := h.dependentBooks(m.AuthorID)
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	if len(books) > 0 {
		// masih ada buku → tampilkan lagi halaman konfirmasi
		return helper.Render(c, "authors/delete", "Hapus Penulis", fiber.Map{
			"Author": m,
			"Books":  books,
		})
	}

	if err := h.DB.Delete(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal menghapus data")
	}
	return helper.RedirectTo(c, "/catalog/authors")
}

/* =========================
   Internal
   ========================= */

func (h *AuthorsController) findByID(c *fiber.Ctx) (*model.AuthorModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var m model.AuthorModel
	if err := h.DB.First(&m, "author_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *AuthorsController) renderFetchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.RenderNotFound(c, "Penulis tidak ditemukan")
	}
	return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
}

func (h *AuthorsController) dependentBooks(authorID uuid.UUID) ([]bookModel.BookModel, error) {
	var books []bookModel.BookModel
	err := h.DB.Where("book_author_id = ?", authorID).Order("book_title asc").Find(&books).Error
	return books, err
}
