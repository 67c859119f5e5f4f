// file: internals/helpers/token.go
package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"pustaka_backend/internals/configs"
)

const tokenTTL = 24 * time.Hour

// CreateUserToken membuat JWT untuk pustakawan yang berhasil login.
func CreateUserToken(userID uuid.UUID, userName string) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}
	claims := jwt.MapClaims{
		"user_id":   userID.String(),
		"user_name": userName,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// ParseUserToken memverifikasi JWT dan mengembalikan user_id + user_name.
func ParseUserToken(tokenString string) (uuid.UUID, string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("metode signing tidak dikenali")
		}
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return uuid.Nil, "", err
	}

	idStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", errors.New("user_id tidak valid di token")
	}
	name, _ := claims["user_name"].(string)
	return userID, name, nil
}

// GetRawAccessToken mengembalikan access token dari:
// 1) cookie auth
// 2) Authorization header "Bearer <token>"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies(configs.CookieName)); v != "" {
		return v
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// SetAuthCookie menyimpan token di cookie HttpOnly.
func SetAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     configs.CookieName,
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     configs.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
