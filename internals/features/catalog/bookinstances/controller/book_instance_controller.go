// internals/features/catalog/bookinstances/controller/book_instance_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "pustaka_backend/internals/features/catalog/bookinstances/dto"
	model "pustaka_backend/internals/features/catalog/bookinstances/model"
	bookModel "pustaka_backend/internals/features/catalog/books/model"
	helper "pustaka_backend/internals/helpers"
)

type BookInstancesController struct {
	DB *gorm.DB
}

var validate = helper.NewValidator()

// =========================================================
// LIST - GET /catalog/bookinstances
// Diurutkan per judul buku
// =========================================================
func (h *BookInstancesController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := h.DB.Model(&model.BookInstanceModel{}).Count(&total).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var instances []model.BookInstanceModel
	if err := h.DB.
		Joins("JOIN books ON books.book_id = book_instances.book_instance_book_id").
		Order("books.book_title asc, book_instance_imprint asc").
		Preload("Book").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&instances).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.Render(c, "bookinstances/list", "Daftar Eksemplar", fiber.Map{
		"Instances":  instances,
		"Pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// =========================================================
// DETAIL - GET /catalog/bookinstance/:id
// =========================================================
func (h *BookInstancesController) Detail(c *fiber.Ctx) error {
	m, err := h.findByID(c, true)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	return helper.Render(c, "bookinstances/detail", "Eksemplar: "+m.Book.BookTitle, fiber.Map{
		"Instance": m,
	})
}

// =========================================================
// CREATE - GET /catalog/bookinstance/create
// =========================================================
func (h *BookInstancesController) CreateForm(c *fiber.Ctx) error {
	books, err := h.bookChoices()
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.Render(c, "bookinstances/form", "Tambah Eksemplar", fiber.Map{
		"Form":     dto.BookInstanceForm{},
		"Books":    books,
		"Statuses": model.AllStatuses,
	})
}

// =========================================================
// CREATE - POST /catalog/bookinstance/create
// =========================================================
func (h *BookInstancesController) Create(c *fiber.Ctx) error {
	var req dto.BookInstanceForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	fieldErrs := map[string]string{}
	if err := validate.Struct(&req); err != nil {
		fieldErrs = helper.ValidationMessages(err)
	}
	if _, ok := fieldErrs["BookID"]; !ok {
		if ok2, err := h.bookExists(req.BookID); err != nil {
			return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal cek buku")
		} else if !ok2 {
			fieldErrs["BookID"] = "Buku tidak ditemukan"
		}
	}
	if len(fieldErrs) > 0 {
		return h.rerenderForm(c, "Tambah Eksemplar", req, fieldErrs, false)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal membuat data")
	}
	return helper.RedirectTo(c, m.URL())
}

// =========================================================
// UPDATE - GET /catalog/bookinstance/:id/update
// =========================================================
func (h *BookInstancesController) UpdateForm(c *fiber.Ctx) error {
	m, err := h.findByID(c, false)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	books, err := h.bookChoices()
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.Render(c, "bookinstances/form", "Ubah Eksemplar", fiber.Map{
		"Form":     dto.FromModel(m),
		"Books":    books,
		"Statuses": model.AllStatuses,
		"IsUpdate": true,
	})
}

// =========================================================
// UPDATE - POST /catalog/bookinstance/:id/update
// =========================================================
func (h *BookInstancesController) Update(c *fiber.Ctx) error {
	m, err := h.findByID(c, false)
	if err != nil {
		return h.renderFetchError(c, err)
	}

	var req dto.BookInstanceForm
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	fieldErrs := map[string]string{}
	if err := validate.Struct(&req); err != nil {
		fieldErrs = helper.ValidationMessages(err)
	}
	if _, ok := fieldErrs["BookID"]; !ok {
		if ok2, err := h.bookExists(req.BookID); err != nil {
			return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal cek buku")
		} else if !ok2 {
			fieldErrs["BookID"] = "Buku tidak ditemukan"
		}
	}
	if len(fieldErrs) > 0 {
		return h.rerenderForm(c, "Ubah Eksemplar", req, fieldErrs, true)
	}

	req.ApplyToModel(m)
	if err := h.DB.Save(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal memperbarui data")
	}
	return helper.RedirectTo(c, m.URL())
}

// =========================================================
// DELETE - GET /catalog/bookinstance/:id/delete
// =========================================================
func (h *BookInstancesController) DeleteForm(c *fiber.Ctx) error {
	m, err := h.findByID(c, true)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	return helper.Render(c, "bookinstances/delete", "Hapus Eksemplar", fiber.Map{
		"Instance": m,
	})
}

// =========================================================
// DELETE - POST /catalog/bookinstance/:id/delete
// Eksemplar tidak punya dependen → langsung hapus
// =========================================================
func (h *BookInstancesController) Delete(c *fiber.Ctx) error {
	m, err := h.findByID(c, false)
	if err != nil {
		return h.renderFetchError(c, err)
	}
	if err := h.DB.Delete(m).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal menghapus data")
	}
	return helper.RedirectTo(c, "/catalog/bookinstances")
}

/* =========================
   Internal
   ========================= */

func (h *BookInstancesController) findByID(c *fiber.Ctx, withBook bool) (*model.BookInstanceModel, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	q := h.DB
	if withBook {
		q = q.Preload("Book").Preload("Book.Author")
	}
	var m model.BookInstanceModel
	if err := q.First(&m, "book_instance_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *BookInstancesController) renderFetchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.RenderNotFound(c, "Eksemplar tidak ditemukan")
	}
	return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
}

func (h *BookInstancesController) rerenderForm(c *fiber.Ctx, title string, req dto.BookInstanceForm, fieldErrs map[string]string, isUpdate bool) error {
	books, err := h.bookChoices()
	if err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.RenderWithCode(c, fiber.StatusBadRequest, "bookinstances/form", title, fiber.Map{
		"Form":     req,
		"Errors":   fieldErrs,
		"Books":    books,
		"Statuses": model.AllStatuses,
		"IsUpdate": isUpdate,
	})
}

func (h *BookInstancesController) bookChoices() ([]bookModel.BookModel, error) {
	var books []bookModel.BookModel
	err := h.DB.Order("book_title asc").Find(&books).Error
	return books, err
}

func (h *BookInstancesController) bookExists(idStr string) (bool, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return false, nil
	}
	var cnt int64
	if err := h.DB.Model(&bookModel.BookModel{}).Where("book_id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
