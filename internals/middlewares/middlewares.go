// file: internals/middlewares/middlewares.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"pustaka_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar untuk seluruh app
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
