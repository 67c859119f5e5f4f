// file: internals/databases/migrate.go
package database

import (
	"log"

	"gorm.io/gorm"

	authorModel "pustaka_backend/internals/features/catalog/authors/model"
	instanceModel "pustaka_backend/internals/features/catalog/bookinstances/model"
	bookModel "pustaka_backend/internals/features/catalog/books/model"
	genreModel "pustaka_backend/internals/features/catalog/genres/model"
	userModel "pustaka_backend/internals/features/users/auth/model"
)

// Migrate membuat/menyesuaikan semua tabel katalog + users.
func Migrate(db *gorm.DB) error {
	log.Println("📦 Menjalankan migrasi tabel...")
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&authorModel.AuthorModel{},
		&genreModel.GenreModel{},
		&bookModel.BookModel{},
		&instanceModel.BookInstanceModel{},
	); err != nil {
		return err
	}
	log.Println("✅ Migrasi selesai.")
	return nil
}
