// internals/features/catalog/authors/route/author_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authorController "pustaka_backend/internals/features/catalog/authors/controller"
	authMw "pustaka_backend/internals/middlewares/auth"
)

// AuthorRoutes memasang route penulis di bawah group katalog.
// Route tulis dilindungi login pustakawan.
func AuthorRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &authorController.AuthorsController{DB: db}
	librarian := authMw.RequireLibrarian()

	r.Get("/authors", ctrl.List)

	// "create" harus terdaftar sebelum ":id"
	r.Get("/author/create", librarian, ctrl.CreateForm)
	r.Post("/author/create", librarian, ctrl.Create)

	r.Get("/author/:id/update", librarian, ctrl.UpdateForm)
	r.Post("/author/:id/update", librarian, ctrl.Update)
	r.Get("/author/:id/delete", librarian, ctrl.DeleteForm)
	r.Post("/author/:id/delete", librarian, ctrl.Delete)
	r.Get("/author/:id", ctrl.Detail)
}
