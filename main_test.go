package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"pustaka_backend/internals/configs"
	database "pustaka_backend/internals/databases"
	authorModel "pustaka_backend/internals/features/catalog/authors/model"
	instanceModel "pustaka_backend/internals/features/catalog/bookinstances/model"
	bookModel "pustaka_backend/internals/features/catalog/books/model"
	genreModel "pustaka_backend/internals/features/catalog/genres/model"
)

/* ===============================
   Test harness
=================================*/

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	configs.JWTSecret = "rahasia-test"
	configs.CookieName = "pustaka_token"
	configs.UploadDir = t.TempDir()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// :memory: hidup per koneksi, jadi pool wajib satu koneksi
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	return newApp(db), db
}

func doGet(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Accept", "text/html")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, app *fiber.App, path string, form url.Values, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}

// loginAsLibrarian daftarkan pustakawan baru dan kembalikan header Cookie siap pakai.
func loginAsLibrarian(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doForm(t, app, "/auth/register", url.Values{
		"user_name":        {"petugas"},
		"email":            {"petugas@pustaka.test"},
		"password":         {"rahasia-123"},
		"password_confirm": {"rahasia-123"},
	}, "")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/catalog", resp.Header.Get("Location"))

	for _, ck := range resp.Cookies() {
		if ck.Name == configs.CookieName && ck.Value != "" {
			return ck.Name + "=" + ck.Value
		}
	}
	t.Fatal("cookie login tidak diset")
	return ""
}

/* ===============================
   Beranda & health
=================================*/

func TestHomePage(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&authorModel.AuthorModel{
		AuthorFirstName: "Pramoedya", AuthorFamilyName: "Toer",
	}).Error)

	resp := doGet(t, app, "/", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/catalog", resp.Header.Get("Location"))

	resp = doGet(t, app, "/catalog", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Selamat datang")

	// health nge-ping DB lewat koneksi yang dipasang middleware
	resp = doGet(t, app, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))
}

/* ===============================
   Auth
=================================*/

func TestRegisterAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	cookie := loginAsLibrarian(t, app)
	assert.NotEmpty(t, cookie)

	// password salah → pesan generik, tidak bocorkan email terdaftar atau tidak
	resp := doForm(t, app, "/auth/login", url.Values{
		"email":    {"petugas@pustaka.test"},
		"password": {"salah-semua"},
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Email atau password salah")

	resp = doForm(t, app, "/auth/login", url.Values{
		"email":    {"petugas@pustaka.test"},
		"password": {"rahasia-123"},
	}, "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/catalog", resp.Header.Get("Location"))
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doForm(t, app, "/auth/register", url.Values{
		"user_name":        {"petugas"},
		"email":            {"petugas@pustaka.test"},
		"password":         {"rahasia-123"},
		"password_confirm": {"beda-sendiri"},
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWriteRoutesRequireLogin(t *testing.T) {
	app, _ := newTestApp(t)

	paths := []string{
		"/catalog/author/create",
		"/catalog/book/create",
		"/catalog/genre/create",
		"/catalog/bookinstance/create",
	}
	for _, p := range paths {
		resp := doGet(t, app, p, "")
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, p)
		assert.Equal(t, "/auth/login", resp.Header.Get("Location"), p)
	}
}

/* ===============================
   Penulis (author)
=================================*/

func TestAuthorCRUD(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	// create valid → redirect ke halaman detail
	resp := doForm(t, app, "/catalog/author/create", url.Values{
		"first_name":    {"Andrea"},
		"family_name":   {"Hirata"},
		"date_of_birth": {"1967-10-24"},
		"alt_names":     {"Aqil Barraq Badruddin"},
	}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/catalog/author/"), loc)

	id := strings.TrimPrefix(loc, "/catalog/author/")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	var m authorModel.AuthorModel
	require.NoError(t, db.First(&m, "author_id = ?", id).Error)
	assert.Equal(t, "Hirata, Andrea", m.FullName())
	assert.Equal(t, pqContains(m.AuthorAltNames, "Aqil Barraq Badruddin"), true)

	// halaman detail
	resp = doGet(t, app, loc, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Hirata, Andrea")

	// update
	resp = doForm(t, app, loc+"/update", url.Values{
		"first_name":  {"Andrea"},
		"family_name": {"Hirata"},
		"alt_names":   {""},
	}, cookie)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	var afterUpdate authorModel.AuthorModel
	require.NoError(t, db.First(&afterUpdate, "author_id = ?", id).Error)
	assert.Empty(t, afterUpdate.AuthorAltNames)
	assert.Nil(t, afterUpdate.AuthorDateOfBirth)

	// delete tanpa buku → berhasil, kembali ke daftar
	resp = doForm(t, app, loc+"/delete", nil, cookie)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/catalog/authors", resp.Header.Get("Location"))
	err = db.First(&m, "author_id = ?", id).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthorCreateInvalid(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	// family_name wajib; tanggal harus YYYY-MM-DD
	resp := doForm(t, app, "/catalog/author/create", url.Values{
		"first_name":    {"Tanpa"},
		"date_of_birth": {"24-10-1967"},
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := readBody(t, resp)
	// form dirender ulang dengan input yang sudah diketik
	assert.Contains(t, body, "Tanpa")

	var cnt int64
	require.NoError(t, db.Model(&authorModel.AuthorModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
}

func TestAuthorCreateRejectsSymbolNames(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	// nama harus alfanumerik, simbol/markup ditolak
	resp := doForm(t, app, "/catalog/author/create", url.Values{
		"first_name":  {"!!!***<script>"},
		"family_name": {"@@@###$$$"},
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Hanya boleh huruf")

	var cnt int64
	require.NoError(t, db.Model(&authorModel.AuthorModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
}

func TestGenreCreateRejectsSymbolNames(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	resp := doForm(t, app, "/catalog/genre/create", url.Values{"name": {"???!!!"}}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var cnt int64
	require.NoError(t, db.Model(&genreModel.GenreModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
}

func TestAuthorNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doGet(t, app, "/catalog/author/"+uuid.NewString(), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// id bukan uuid → tetap 404, bukan 500
	resp = doGet(t, app, "/catalog/author/bukan-uuid", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAuthorDeleteRefusedWhileHasBooks(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	author := authorModel.AuthorModel{AuthorFirstName: "Eka", AuthorFamilyName: "Kurniawan"}
	require.NoError(t, db.Create(&author).Error)
	book := bookModel.BookModel{
		BookAuthorID: author.AuthorID,
		BookTitle:    "Cantik Itu Luka",
		BookSummary:  "Sejarah keluarga Dewi Ayu.",
		BookISBN:     "9789792204414",
	}
	require.NoError(t, db.Create(&book).Error)

	// masih ada buku → hapus ditolak, halaman delete dirender lagi
	resp := doForm(t, app, author.URL()+"/delete", nil, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Cantik Itu Luka")

	var m authorModel.AuthorModel
	require.NoError(t, db.First(&m, "author_id = ?", author.AuthorID).Error)

	// setelah bukunya dihapus, penulis boleh dihapus
	require.NoError(t, db.Delete(&book).Error)
	resp = doForm(t, app, author.URL()+"/delete", nil, cookie)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

/* ===============================
   Genre
=================================*/

func TestGenreCreateIdempotent(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	resp := doForm(t, app, "/catalog/genre/create", url.Values{"name": {"Fantasi"}}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	first := resp.Header.Get("Location")

	// nama sama beda kapital → diarahkan ke genre lama, tidak bikin baris baru
	resp = doForm(t, app, "/catalog/genre/create", url.Values{"name": {"fantasi"}}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, first, resp.Header.Get("Location"))

	var cnt int64
	require.NoError(t, db.Model(&genreModel.GenreModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 1, cnt)
}

func TestGenreDeleteGuard(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	author := authorModel.AuthorModel{AuthorFirstName: "Dee", AuthorFamilyName: "Lestari"}
	require.NoError(t, db.Create(&author).Error)
	genre := genreModel.GenreModel{GenreName: "Fiksi Ilmiah"}
	require.NoError(t, db.Create(&genre).Error)
	book := bookModel.BookModel{
		BookAuthorID: author.AuthorID,
		BookTitle:    "Supernova",
		BookSummary:  "Kesatria, putri, dan bintang jatuh.",
		BookISBN:     "9786022913796",
		Genres:       []genreModel.GenreModel{{GenreID: genre.GenreID}},
	}
	require.NoError(t, db.Omit("Genres.*").Create(&book).Error)

	resp := doForm(t, app, genre.URL()+"/delete", nil, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var m genreModel.GenreModel
	require.NoError(t, db.First(&m, "genre_id = ?", genre.GenreID).Error)
}

/* ===============================
   Buku
=================================*/

func TestBookCreateWithGenres(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	author := authorModel.AuthorModel{AuthorFirstName: "Andrea", AuthorFamilyName: "Hirata"}
	require.NoError(t, db.Create(&author).Error)
	g1 := genreModel.GenreModel{GenreName: "Fiksi"}
	g2 := genreModel.GenreModel{GenreName: "Biografi"}
	require.NoError(t, db.Create(&g1).Error)
	require.NoError(t, db.Create(&g2).Error)

	resp := doForm(t, app, "/catalog/book/create", url.Values{
		"title":     {"Laskar Pelangi"},
		"author":    {author.AuthorID.String()},
		"summary":   {"Sepuluh anak Belitung memperjuangkan sekolahnya."},
		"isbn":      {"9789793062792"},
		"genre":     {g1.GenreID.String(), g2.GenreID.String()},
		"publisher": {"Bentang Pustaka"},
		"language":  {"Indonesia"},
	}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/catalog/book/"), loc)

	var m bookModel.BookModel
	id := strings.TrimPrefix(loc, "/catalog/book/")
	require.NoError(t, db.Preload("Genres").First(&m, "book_id = ?", id).Error)
	assert.Len(t, m.Genres, 2)
	assert.Contains(t, string(m.BookMetadata), "Bentang Pustaka")

	// detail menampilkan judul + nama penulis
	resp = doGet(t, app, loc, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Laskar Pelangi")
	assert.Contains(t, body, "Hirata, Andrea")

	// update: ganti genre jadi satu saja
	resp = doForm(t, app, loc+"/update", url.Values{
		"title":   {"Laskar Pelangi"},
		"author":  {author.AuthorID.String()},
		"summary": {"Sepuluh anak Belitung memperjuangkan sekolahnya."},
		"isbn":    {"9789793062792"},
		"genre":   {g2.GenreID.String()},
	}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.NoError(t, db.Preload("Genres").First(&m, "book_id = ?", id).Error)
	require.Len(t, m.Genres, 1)
	assert.Equal(t, g2.GenreID, m.Genres[0].GenreID)
}

func TestBookCreateUnknownAuthor(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	resp := doForm(t, app, "/catalog/book/create", url.Values{
		"title":   {"Buku Yatim"},
		"author":  {uuid.NewString()},
		"summary": {"Penulisnya tidak terdaftar."},
		"isbn":    {"1234567890"},
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Penulis tidak ditemukan")

	var cnt int64
	require.NoError(t, db.Model(&bookModel.BookModel{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)
}

func TestBookDeleteGuardedByInstances(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	author := authorModel.AuthorModel{AuthorFirstName: "Eka", AuthorFamilyName: "Kurniawan"}
	require.NoError(t, db.Create(&author).Error)
	book := bookModel.BookModel{
		BookAuthorID: author.AuthorID,
		BookTitle:    "Lelaki Harimau",
		BookSummary:  "Margio dan harimau putih di dalam dirinya.",
		BookISBN:     "9789792230574",
	}
	require.NoError(t, db.Create(&book).Error)
	inst := instanceModel.BookInstanceModel{
		BookInstanceBookID:  book.BookID,
		BookInstanceImprint: "Gramedia, cetakan kedua",
		BookInstanceStatus:  instanceModel.StatusLoaned,
	}
	require.NoError(t, db.Create(&inst).Error)

	// eksemplar masih ada → tolak
	resp := doForm(t, app, book.URL()+"/delete", nil, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Gramedia, cetakan kedua")

	var m bookModel.BookModel
	require.NoError(t, db.First(&m, "book_id = ?", book.BookID).Error)

	// hapus eksemplar dulu, baru buku boleh dihapus
	resp = doForm(t, app, inst.URL()+"/delete", nil, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp = doForm(t, app, book.URL()+"/delete", nil, cookie)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/catalog/books", resp.Header.Get("Location"))
	assert.ErrorIs(t, db.First(&m, "book_id = ?", book.BookID).Error, gorm.ErrRecordNotFound)
}

/* ===============================
   Eksemplar (book instance)
=================================*/

func TestBookInstanceFlow(t *testing.T) {
	app, db := newTestApp(t)
	cookie := loginAsLibrarian(t, app)

	author := authorModel.AuthorModel{AuthorFirstName: "Tere", AuthorFamilyName: "Liye"}
	require.NoError(t, db.Create(&author).Error)
	book := bookModel.BookModel{
		BookAuthorID: author.AuthorID,
		BookTitle:    "Bumi",
		BookSummary:  "Raib bisa menghilang.",
		BookISBN:     "9786020314112",
	}
	require.NoError(t, db.Create(&book).Error)

	// buku tidak terdaftar → form dirender ulang
	resp := doForm(t, app, "/catalog/bookinstance/create", url.Values{
		"book":    {uuid.NewString()},
		"imprint": {"Entah"},
	}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// create valid
	resp = doForm(t, app, "/catalog/bookinstance/create", url.Values{
		"book":     {book.BookID.String()},
		"imprint":  {"Gramedia, cetakan pertama"},
		"status":   {instanceModel.StatusLoaned},
		"due_back": {"2026-09-15"},
	}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/catalog/bookinstance/"), loc)

	var m instanceModel.BookInstanceModel
	id := strings.TrimPrefix(loc, "/catalog/bookinstance/")
	require.NoError(t, db.First(&m, "book_instance_id = ?", id).Error)
	assert.Equal(t, instanceModel.StatusLoaned, m.BookInstanceStatus)
	assert.Equal(t, "15 Sep 2026", m.DueBackFormatted())

	// detail menampilkan judul buku & jatuh tempo
	resp = doGet(t, app, loc, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Bumi")
	assert.Contains(t, body, "15 Sep 2026")

	// create tanpa due_back → jatuh tempo default hari ini
	resp = doForm(t, app, "/catalog/bookinstance/create", url.Values{
		"book":    {book.BookID.String()},
		"imprint": {"Gramedia, cetakan ketiga"},
	}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	id2 := strings.TrimPrefix(resp.Header.Get("Location"), "/catalog/bookinstance/")
	var m2 instanceModel.BookInstanceModel
	require.NoError(t, db.First(&m2, "book_instance_id = ?", id2).Error)
	require.NotNil(t, m2.BookInstanceDueBack)
	assert.WithinDuration(t, time.Now(), *m2.BookInstanceDueBack, time.Minute)

	// kembalikan ke rak: status Available, due_back dikosongkan
	resp = doForm(t, app, loc+"/update", url.Values{
		"book":    {book.BookID.String()},
		"imprint": {"Gramedia, cetakan pertama"},
		"status":  {instanceModel.StatusAvailable},
	}, cookie)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	var afterUpdate instanceModel.BookInstanceModel
	require.NoError(t, db.First(&afterUpdate, "book_instance_id = ?", id).Error)
	assert.True(t, afterUpdate.IsAvailable())
	assert.Nil(t, afterUpdate.BookInstanceDueBack)
}

/* ===============================
   Util
=================================*/

func pqContains(arr []string, want string) bool {
	for _, v := range arr {
		if v == want {
			return true
		}
	}
	return false
}
