// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "pustaka_backend/internals/features/users/auth/dto"
	model "pustaka_backend/internals/features/users/auth/model"
	helper "pustaka_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = helper.NewValidator()

// =========================================================
// REGISTER - GET /auth/register
// =========================================================
func (h *AuthController) RegisterForm(c *fiber.Ctx) error {
	return helper.Render(c, "auth/register", "Daftar Pustakawan", fiber.Map{
		"Form": dto.RegisterRequest{},
	})
}

// =========================================================
// REGISTER - POST /auth/register
// =========================================================
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(&req); err != nil {
		return helper.RenderWithCode(c, fiber.StatusBadRequest, "auth/register", "Daftar Pustakawan", fiber.Map{
			"Form":   req,
			"Errors": helper.ValidationMessages(err),
		})
	}

	// email harus unik
	var cnt int64
	if err := h.DB.Model(&model.UserModel{}).Where("email = ?", req.Email).Count(&cnt).Error; err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal cek email")
	}
	if cnt > 0 {
		return helper.RenderWithCode(c, fiber.StatusBadRequest, "auth/register", "Daftar Pustakawan", fiber.Map{
			"Form":   req,
			"Errors": map[string]string{"Email": "Email sudah terdaftar"},
		})
	}

	user := model.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}
	if err := h.DB.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return helper.RenderWithCode(c, fiber.StatusBadRequest, "auth/register", "Daftar Pustakawan", fiber.Map{
				"Form":   req,
				"Errors": map[string]string{"Email": "Email sudah terdaftar"},
			})
		}
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	log.Printf("[INFO] pustakawan baru terdaftar: %s", user.Email)
	return h.issueAndRedirect(c, &user)
}

// =========================================================
// LOGIN - GET /auth/login
// =========================================================
func (h *AuthController) LoginForm(c *fiber.Ctx) error {
	return helper.Render(c, "auth/login", "Login Pustakawan", fiber.Map{
		"Form": dto.LoginRequest{},
	})
}

// =========================================================
// LOGIN - POST /auth/login
// =========================================================
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.RenderError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validate.Struct(&req); err != nil {
		return helper.RenderWithCode(c, fiber.StatusBadRequest, "auth/login", "Login Pustakawan", fiber.Map{
			"Form":   req,
			"Errors": helper.ValidationMessages(err),
		})
	}

	var user model.UserModel
	if err := h.DB.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return h.rejectLogin(c, req)
		}
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	if err := user.CheckPassword(req.Password); err != nil {
		return h.rejectLogin(c, req)
	}

	return h.issueAndRedirect(c, &user)
}

// =========================================================
// LOGOUT - POST /auth/logout
// =========================================================
func (h *AuthController) Logout(c *fiber.Ctx) error {
	helper.ClearAuthCookie(c)
	return helper.RedirectTo(c, "/catalog")
}

/* =========================
   Internal
   ========================= */

func (h *AuthController) issueAndRedirect(c *fiber.Ctx, user *model.UserModel) error {
	token, err := helper.CreateUserToken(user.ID, user.UserName)
	if err != nil {
		log.Printf("[ERROR] gagal membuat token: %v", err)
		return helper.RenderError(c, fiber.StatusInternalServerError, "Gagal membuat sesi login")
	}
	helper.SetAuthCookie(c, token)
	return helper.RedirectTo(c, "/catalog")
}

func (h *AuthController) rejectLogin(c *fiber.Ctx, req dto.LoginRequest) error {
	// pesan sengaja tidak membedakan email salah vs password salah
	return helper.RenderWithCode(c, fiber.StatusUnauthorized, "auth/login", "Login Pustakawan", fiber.Map{
		"Form":   req,
		"Errors": map[string]string{"_form": "Email atau password salah"},
	})
}
