// file: internals/helpers/response.go
package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Render halaman dengan data umum (judul + user login) otomatis terisi
func Render(c *fiber.Ctx, view string, title string, data fiber.Map) error {
	return RenderWithCode(c, fiber.StatusOK, view, title, data)
}

func RenderWithCode(c *fiber.Ctx, code int, view string, title string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Title"] = title
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}
	if name, ok := c.Locals("user_name").(string); ok && name != "" {
		data["UserName"] = name
		data["IsLoggedIn"] = true
	}
	return c.Status(code).Render(view, data, "layouts/main")
}

// ✅ Halaman error bersama (404, 500, dst.)
func RenderError(c *fiber.Ctx, code int, message string) error {
	return RenderWithCode(c, code, "error", "Terjadi Kesalahan", fiber.Map{
		"Code":    code,
		"Message": message,
	})
}

func RenderNotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Data tidak ditemukan"
	}
	return RenderError(c, fiber.StatusNotFound, message)
}

// ✅ Redirect setelah POST sukses (create/update/delete)
func RedirectTo(c *fiber.Ctx, location string) error {
	return c.Redirect(location, fiber.StatusSeeOther)
}

// ✅ Khusus error validasi (validator.v10) → map field → pesan untuk form HTML
func ValidationMessages(err error) map[string]string {
	out := make(map[string]string)
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_form"] = "Input tidak valid"
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = messageForTag(fe)
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Wajib diisi"
	case "min":
		return "Terlalu pendek (minimal " + fe.Param() + " karakter)"
	case "max":
		return "Terlalu panjang (maksimal " + fe.Param() + " karakter)"
	case "email":
		return "Format email tidak valid"
	case "datetime":
		return "Format tanggal tidak valid (YYYY-MM-DD)"
	case "uuid":
		return "ID tidak valid"
	case "oneof":
		return "Nilai tidak dikenali"
	case "eqfield":
		return "Konfirmasi tidak sama"
	case "alphanumname":
		return "Hanya boleh huruf, angka, spasi, titik, apostrof, dan tanda hubung"
	default:
		return "Tidak valid (" + fe.Tag() + ")"
	}
}
