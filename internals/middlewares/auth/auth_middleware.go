// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "pustaka_backend/internals/helpers"
)

// LoadUser membaca token dari cookie/header kalau ada, lalu simpan info user
// ke Locals. Tidak pernah menolak request; dipakai global supaya semua
// halaman tahu status login.
func LoadUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return c.Next()
		}
		userID, userName, err := helper.ParseUserToken(tokenString)
		if err != nil {
			// token rusak/kedaluwarsa → anggap belum login
			log.Printf("[WARN] token tidak valid: %v", err)
			return c.Next()
		}
		c.Locals("user_id", userID.String())
		c.Locals("user_name", userName)
		return c.Next()
	}
}

// RequireLibrarian menolak request tanpa login yang valid.
// Dipasang di semua route tulis katalog (create/update/delete/upload).
func RequireLibrarian() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v, ok := c.Locals("user_id").(string); ok && v != "" {
			return c.Next()
		}
		// browser → arahkan ke halaman login
		if c.Accepts("html", "json") == "html" {
			return helper.RedirectTo(c, "/auth/login")
		}
		return fiber.NewError(fiber.StatusUnauthorized, "Silakan login terlebih dahulu")
	}
}
