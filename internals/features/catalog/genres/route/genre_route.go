// internals/features/catalog/genres/route/genre_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	genreController "pustaka_backend/internals/features/catalog/genres/controller"
	authMw "pustaka_backend/internals/middlewares/auth"
)

func GenreRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &genreController.GenresController{DB: db}
	librarian := authMw.RequireLibrarian()

	r.Get("/genres", ctrl.List)

	r.Get("/genre/create", librarian, ctrl.CreateForm)
	r.Post("/genre/create", librarian, ctrl.Create)

	r.Get("/genre/:id/update", librarian, ctrl.UpdateForm)
	r.Post("/genre/:id/update", librarian, ctrl.Update)
	r.Get("/genre/:id/delete", librarian, ctrl.DeleteForm)
	r.Post("/genre/:id/delete", librarian, ctrl.Delete)
	r.Get("/genre/:id", ctrl.Detail)
}
