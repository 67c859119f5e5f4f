// internals/seeds/catalog/seed_catalog.go
package catalog

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	authorModel "pustaka_backend/internals/features/catalog/authors/model"
	instanceModel "pustaka_backend/internals/features/catalog/bookinstances/model"
	bookModel "pustaka_backend/internals/features/catalog/books/model"
	genreModel "pustaka_backend/internals/features/catalog/genres/model"
)

// Struktur file JSON seed
type CatalogSeed struct {
	Genres  []string     `json:"genres"`
	Authors []AuthorSeed `json:"authors"`
	Books   []BookSeed   `json:"books"`
}

type AuthorSeed struct {
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	DateOfBirth string `json:"date_of_birth"`
	DateOfDeath string `json:"date_of_death"`
}

type BookSeed struct {
	Title        string   `json:"title"`
	AuthorFamily string   `json:"author_family"`
	Summary      string   `json:"summary"`
	ISBN         string   `json:"isbn"`
	Genres       []string `json:"genres"`
	Imprints     []string `json:"imprints"`
}

func SeedCatalogFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var seed CatalogSeed
	if err := json.Unmarshal(file, &seed); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	genresByName := map[string]genreModel.GenreModel{}
	for _, name := range seed.Genres {
		var existing genreModel.GenreModel
		if err := db.Where("lower(genre_name) = lower(?)", name).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Genre %s sudah ada, lewati...", name)
			genresByName[name] = existing
			continue
		}
		g := genreModel.GenreModel{GenreName: name}
		if err := db.Create(&g).Error; err != nil {
			log.Fatalf("❌ Gagal seed genre %s: %v", name, err)
		}
		genresByName[name] = g
	}

	authorsByFamily := map[string]authorModel.AuthorModel{}
	for _, a := range seed.Authors {
		var existing authorModel.AuthorModel
		if err := db.Where("author_family_name = ? AND author_first_name = ?", a.FamilyName, a.FirstName).
			First(&existing).Error; err == nil {
			log.Printf("ℹ️ Penulis %s sudah ada, lewati...", a.FamilyName)
			authorsByFamily[a.FamilyName] = existing
			continue
		}
		m := authorModel.AuthorModel{
			AuthorFirstName:   a.FirstName,
			AuthorFamilyName:  a.FamilyName,
			AuthorDateOfBirth: parseDate(a.DateOfBirth),
			AuthorDateOfDeath: parseDate(a.DateOfDeath),
		}
		if err := db.Create(&m).Error; err != nil {
			log.Fatalf("❌ Gagal seed penulis %s: %v", a.FamilyName, err)
		}
		authorsByFamily[a.FamilyName] = m
	}

	for _, b := range seed.Books {
		author, ok := authorsByFamily[b.AuthorFamily]
		if !ok {
			log.Printf("⚠️ Penulis %s tidak ada di seed, buku %s dilewati", b.AuthorFamily, b.Title)
			continue
		}

		var existing bookModel.BookModel
		if err := db.Where("book_isbn = ?", b.ISBN).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Buku %s sudah ada, lewati...", b.Title)
			continue
		}

		m := bookModel.BookModel{
			BookAuthorID: author.AuthorID,
			BookTitle:    b.Title,
			BookSummary:  b.Summary,
			BookISBN:     b.ISBN,
		}
		for _, gname := range b.Genres {
			if g, ok := genresByName[gname]; ok {
				m.Genres = append(m.Genres, g)
			}
		}
		if err := db.Omit("Genres.*").Create(&m).Error; err != nil {
			log.Fatalf("❌ Gagal seed buku %s: %v", b.Title, err)
		}

		for _, imprint := range b.Imprints {
			inst := instanceModel.BookInstanceModel{
				BookInstanceBookID:  m.BookID,
				BookInstanceImprint: imprint,
				BookInstanceStatus:  instanceModel.StatusAvailable,
			}
			if err := db.Create(&inst).Error; err != nil {
				log.Fatalf("❌ Gagal seed eksemplar %s: %v", imprint, err)
			}
		}
	}

	log.Println("✅ Seed katalog selesai.")
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
