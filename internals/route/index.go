// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authorRoute "pustaka_backend/internals/features/catalog/authors/route"
	instanceRoute "pustaka_backend/internals/features/catalog/bookinstances/route"
	bookRoute "pustaka_backend/internals/features/catalog/books/route"
	genreRoute "pustaka_backend/internals/features/catalog/genres/route"
	authRoute "pustaka_backend/internals/features/users/auth/route"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== CATALOG =====================
	log.Println("[INFO] Setting up catalog group...")
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/catalog", fiber.StatusFound)
	})

	catalog := app.Group("/catalog")
	bookRoute.BookRoutes(catalog, db)
	authorRoute.AuthorRoutes(catalog, db)
	genreRoute.GenreRoutes(catalog, db)
	instanceRoute.BookInstanceRoutes(catalog, db)
}
