// file: internals/helpers/convert_image.go
package helper

import (
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"pustaka_backend/internals/configs"
)

const (
	coverMaxWidth  = 600
	coverMaxHeight = 900
	coverQuality   = 80
	maxCoverBytes  = 5 << 20 // 5MB
)

// SaveCoverAsWebP membaca file gambar dari form, resize, konversi ke WebP,
// lalu simpan di disk. Mengembalikan URL publik untuk disimpan di model.
func SaveCoverAsWebP(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > maxCoverBytes {
		return "", fmt.Errorf("ukuran gambar melebihi 5MB (%d bytes)", fileHeader.Size)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("file bukan gambar yang valid: %w", err)
	}

	// Resize proporsional, jangan upscale
	img = imaging.Fit(img, coverMaxWidth, coverMaxHeight, imaging.Lanczos)

	dir := filepath.Join(configs.UploadDir, "covers")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder upload: %w", err)
	}

	filename := uuid.New().String() + ".webp"
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("gagal membuat file: %w", err)
	}
	defer dst.Close()

	if err := webp.Encode(dst, img, &webp.Options{Quality: coverQuality}); err != nil {
		return "", fmt.Errorf("konversi WebP gagal: %w", err)
	}

	return "/uploads/covers/" + filename, nil
}
