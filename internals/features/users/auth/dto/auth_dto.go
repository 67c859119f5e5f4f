// internals/features/users/auth/dto/auth_dto.go
package dto

import "strings"

type RegisterRequest struct {
	UserName        string `form:"user_name"        validate:"required,min=3,max=50"`
	Email           string `form:"email"            validate:"required,email"`
	Password        string `form:"password"         validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func (r *RegisterRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
