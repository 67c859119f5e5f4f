// internals/features/catalog/books/route/book_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookController "pustaka_backend/internals/features/catalog/books/controller"
	authMw "pustaka_backend/internals/middlewares/auth"
)

func BookRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &bookController.BooksController{DB: db}
	librarian := authMw.RequireLibrarian()

	// beranda katalog
	r.Get("/", ctrl.Index)

	r.Get("/books", ctrl.List)

	r.Get("/book/create", librarian, ctrl.CreateForm)
	r.Post("/book/create", librarian, ctrl.Create)

	r.Get("/book/:id/update", librarian, ctrl.UpdateForm)
	r.Post("/book/:id/update", librarian, ctrl.Update)
	r.Get("/book/:id/delete", librarian, ctrl.DeleteForm)
	r.Post("/book/:id/delete", librarian, ctrl.Delete)
	r.Post("/book/:id/cover", librarian, ctrl.UploadCover)
	r.Get("/book/:id", ctrl.Detail)
}
