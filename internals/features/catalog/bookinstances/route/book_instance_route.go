// internals/features/catalog/bookinstances/route/book_instance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	instanceController "pustaka_backend/internals/features/catalog/bookinstances/controller"
	authMw "pustaka_backend/internals/middlewares/auth"
)

func BookInstanceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := &instanceController.BookInstancesController{DB: db}
	librarian := authMw.RequireLibrarian()

	r.Get("/bookinstances", ctrl.List)

	r.Get("/bookinstance/create", librarian, ctrl.CreateForm)
	r.Post("/bookinstance/create", librarian, ctrl.Create)

	r.Get("/bookinstance/:id/update", librarian, ctrl.UpdateForm)
	r.Post("/bookinstance/:id/update", librarian, ctrl.Update)
	r.Get("/bookinstance/:id/delete", librarian, ctrl.DeleteForm)
	r.Post("/bookinstance/:id/delete", librarian, ctrl.Delete)
	r.Get("/bookinstance/:id", ctrl.Detail)
}
