// internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "pustaka_backend/internals/features/users/auth/controller"
	"pustaka_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := &authController.AuthController{DB: db}

	auth := app.Group("/auth")
	auth.Get("/register", ctrl.RegisterForm)
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Get("/login", ctrl.LoginForm)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
}
