// internals/features/catalog/books/controller/book_controller.go
package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	authorModel "pustaka_backend/internals/features/catalog/authors/model"
	instanceModel "pustaka_backend/internals/features/catalog/bookinstances/model"
	dto "pustaka_backend/internals/features/catalog/books/dto"
	model "pustaka_backend/internals/features/catalog/books/model"
	genreModel "pustaka_backend/internals/features/catalog/genres/model"
	helper "pustaka_backend/internals/helpers"
)

type BooksController struct {
	DB *gorm.DB
}

var validate = helper.NewValidator()

// =========================================================
// INDEX - GET /catalog
// Beranda: hitung semua koleksi secara paralel
// =========================================================
func (h *BooksController) Index(c *fiber.Ctx) error {
	var (
		nBooks, nInstances, nAvailable, nAuthors, nGenres int64
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		return h.DB.WithContext(ctx).Model(&model.BookModel{}).Count(&nBooks).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).Model(&instanceModel.BookInstanceModel{}).Count(&nInstances).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).Model(&instanceModel.BookInstanceModel{}).
			Where("book_instance_status = ?", instanceModel.StatusAvailable).
			Count(&nAvailable).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).Model(&authorModel.AuthorModel{}).Count(&nAuthors).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).Model(&genreModel.GenreModel{}).Count(&nGenres).Error
	})
	if err := g.Wait(); err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "index", "Beranda Pustaka", fiber.Map{
		"BookCount":          nBooks,
		"BookInstanceCount":  nInstances,
		"AvailableCount":     nAvailable,
		"AuthorCount":        nAuthors,
		"GenreCount":         nGenres,
	})
}

// =========================================================
// LIST - GET /catalog/books
// =========================================================
func (h *BooksController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.BookModel{}).Count(&total).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var books []model.BookModel
	if err := h.DB.
		Preload("Author").
		Order("book_title asc").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&books).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "books/list", "Daftar Buku", fiber.Map{
		"Books":      books,
		"Pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// =========================================================
// DETAIL - GET /catalog/book/:id
// Buku (author + genre) + eksemplarnya (fetch paralel)
// =========================================================
func (h *BooksController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.RenderNotFound(c, "Buku tidak ditemukan")
	}

	var (
		book      model.BookModel
		instances []instanceModel.BookInstanceModel
	)
	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		return h.DB.WithContext(ctx).
			Preload("Author").Preload("Genres").
			First(&book, "book_id = ?", id).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(ctx).
			Where("book_instance_book_id = ?", id).
			Order("book_instance_imprint asc").
			Find(&instances).Error
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.RenderNotFound(c, "Buku tidak ditemukan")
		}
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "books/detail", book.BookTitle, fiber.Map{
		"Book":      book,
		"Instances": instances,
	})
}

// =========================================================
// CREATE - GET /catalog/book/create
// Form butuh daftar penulis & genre (fetch paralel)
// =========================================================
func (h *BooksController) CreateForm(c *fiber.Ctx) error {
	authors, genres, err := h.formChoices(c.UserContext())
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.Render(c, "books/form", "Tambah Buku", fiber.Map{
		"Form":    dto.BookForm{},
		"Authors": authors,
		"Genres":  genres,
	})
}

// =========================================================
// CREATE - POST /catalog/book/create
// =========================================================
func (h *BooksController) Create(c *fiber.Ctx) error {
	var req dto.BookForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	fieldErrs := map[string]string{}
	if err := validate.Struct(&req); err != nil {
		fieldErrs = helper.ValidationMessages(err)
	}
	if _, ok := fieldErrs["AuthorID"]; !ok {
		if ok2, err := h.authorExists(req.AuthorID); err != nil {
			return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal cek penulis")
		} else if !ok2 {
			fieldErrs["AuthorID"] = "Penulis tidak ditemukan"
		}
	}
	if len(fieldErrs) > 0 {
		return h.rerenderForm(c, "Tambah Buku", req, fieldErrs, false)
	}

	m := req.ToModel()
	// Omit("Genres.*"): isi tabel join saja, jangan upsert baris genre
	if err := h.DB.Omit("Genres.*").Create(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal membuat data")
	}
	return helper.RedirectTo(c, m.URL())
}

// =========================================================
// UPDATE - GET /catalog/book/:id/update
// =========================================================
func (h *BooksController) UpdateForm(c *fiber.Ctx) error {
	m, err := h.findByID(c, true)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	authors, genres, err := h.formChoices(c.UserContext())
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.Render(c, "books/form", "Ubah Buku", fiber.Map{
		"Form":     dto.FromModel(m),
		"Authors":  authors,
		"Genres":   genres,
		"IsUpdate": true,
	})
}

// =========================================================
// UPDATE - POST /catalog/book/:id/update
// =========================================================
func (h *BooksController) Update(c *fiber.Ctx) error {
	m, err := h.findByID(c, false)
	if err != nil {
		return h.renderFetchError(c, err)
	}

	var req dto.BookForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	fieldErrs := map[string]string{}
	if err := validate.Struct(&req); err != nil {
		fieldErrs = helper.ValidationMessages(err)
	}
	if _, ok := fieldErrs["AuthorID"]; !ok {
		if ok2, err := h.authorExists(req.AuthorID); err != nil {
			return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal cek penulis")
		} else if !ok2 {
			fieldErrs["AuthorID"] = "Penulis tidak ditemukan"
		}
	}
	if len(fieldErrs) > 0 {
		return h.rerenderForm(c, "Ubah Buku", req, fieldErrs, true)
	}

	req.ApplyToModel(m)
	if err := h.DB.Save(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal memperbarui data")
	}

	genres := req.GenreRefs()
	if err := h.DB.Model(m).Omit("Genres.*").Association("Genres").Replace(&genres); err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal memperbarui genre")
	}
	return helper.RedirectTo(c, m.URL())
}

// =========================================================
// DELETE - GET /catalog/book/:id/delete
// =========================================================
func (h *BooksController) DeleteForm(c *fiber.Ctx) error {
	m, err := h.findByID(c, false)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	instances, err := h.dependentInstances(m.BookID)
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.Render(c, "books/delete", "Hapus Buku", fiber.Map{
		"Book":      m,
		"Instances": instances,
	})
}

// =========================================================
// DELETE - POST /catalog/book/:id/delete
// Ditolak selama masih ada eksemplar buku ini
// =========================================================
func (h *BooksController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c, false)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	instances, err := h.dependentInstances(m.BookID)
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	if len(instances) > 0 {
		return helper.Render(c, "books/delete", "Hapus Buku", fiber.Map{
			"Book":      m,
			"Instances": instances,
		})
	}

	if err := h.DB.Delete(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal menghapus data")
	}
	return helper.RedirectTo(c, "/catalog/books")
}

// =========================================================
// UPLOAD COVER - POST /catalog/book/:id/cover
// Multipart "cover" → WebP di ./uploads/covers
// =========================================================
func (h *BooksController) UploadCover(c *fiber.Ctx) error {
	m, err := h.findByID(c, false)
	if err != nil {
		return h.renderFetchError(c, err)
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "File sampul tidak ditemukan di form")
	}

	url, err := helper.SaveCoverAsWebP(fileHeader)
	if err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.Model(m).Update("book_cover_url", url).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal menyimpan sampul")
	}
	return helper.RedirectTo(c, m.URL())
}

/* =========================
   Internal
   ========================= */

func (h *BooksController) findByID(c *fiber.Ctx, withRelations bool) (*model.BookModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	q := h.DB
	if withRelations {
		q = q.Preload("Author").Preload("Genres")
	}
	var m model.BookModel
	if err := q.First(&m, "book_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *BooksController) renderFetchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.RenderNotFound(c, "Buku tidak ditemukan")
	}
	return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
}

func (h *BooksController) rerenderForm(c *fiber.Ctx, title string, req dto.BookForm, fieldErrs map[string]string, isUpdate bool) error {
	authors, genres, err := h.formChoices(c.UserContext())
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.RenderWithCode(c, fiber.StatusBadRequest, "books/form", title, fiber.Map{
		"Form":     req,
		"Errors":   fieldErrs,
		"Authors":  authors,
		"Genres":   genres,
		"IsUpdate": isUpdate,
	})
}

// formChoices mengambil pilihan penulis & genre untuk form secara paralel.
func (h *BooksController) formChoices(ctx context.Context) ([]authorModel.AuthorModel, []genreModel.GenreModel, error) {
	var (
		authors []authorModel.AuthorModel
		genres  []genreModel.GenreModel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.DB.WithContext(gctx).
			Order("author_family_name asc, author_first_name asc").
			Find(&authors).Error
	})
	g.Go(func() error {
		return h.DB.WithContext(gctx).Order("genre_name asc").Find(&genres).Error
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

func (h *BooksController) authorExists(idStr string) (bool, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return false, nil
	}
	var cnt int64
	if err := h.DB.Model(&authorModel.AuthorModel{}).Where("author_id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (h *BooksController) dependentInstances(bookID uuid.UUID) ([]instanceModel.BookInstanceModel, error) {
	var instances []instanceModel.BookInstanceModel
	err := h.DB.Where("book_instance_book_id = ?", bookID).
		Order("book_instance_imprint asc").
		Find(&instances).Error
	return instances, err
}
