// internals/features/users/auth/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserModel merepresentasikan pustakawan yang boleh mengubah katalog
type UserModel struct {
	ID       uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	UserName string    `json:"user_name" gorm:"column:user_name;size:50;not null"`
	Email    string    `json:"email" gorm:"column:email;size:255;unique;not null"`
	Password string    `json:"-" gorm:"column:password;not null"`
	IsActive bool      `json:"is_active" gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetPassword menyimpan hash bcrypt, bukan plaintext
func (u *UserModel) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *UserModel) CheckPassword(plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain))
}
