package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	maxImageBytes = 10 << 20  // 10MB
	maxVideoBytes = 100 << 20 // 100MB
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mpeg": true, ".mov": true, ".avi": true, ".wmv": true, ".webm": true,
}

// MediaStorage persists uploaded gallery files under Root/<category>/.
type MediaStorage struct {
	Root string
}

func NewMediaStorage(root string) *MediaStorage {
	if root == "" {
		root = filepath.Join("uploads", "gallery")
	}
	return &MediaStorage{Root: root}
}

// mediaTypeFor classifies a filename by extension, returning
// image/video or an error for anything outside the allowlists.
func mediaTypeFor(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case imageExtensions[ext]:
		return "image", nil
	case videoExtensions[ext]:
		return "video", nil
	default:
		return "", validationf("file type %q is not allowed; only image and video files are accepted", ext)
	}
}

// Save writes the uploaded file into the category subdirectory with a
// randomized name and returns the relative path, media type and size.
func (m *MediaStorage) Save(file *multipart.FileHeader, category string) (relPath, mediaType string, size int64, err error) {
	if file == nil {
		return "", "", 0, validationf("no file provided")
	}

	mediaType, err = mediaTypeFor(file.Filename)
	if err != nil {
		return "", "", 0, err
	}

	limit := int64(maxImageBytes)
	if mediaType == "video" {
		limit = maxVideoBytes
	}
	if file.Size > limit {
		return "", "", 0, validationf("%s file too large; maximum size is %dMB", mediaType, limit>>20)
	}

	dir := filepath.Join(m.Root, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", 0, &StorageError{Op: "mkdir upload dir", Err: err}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := uuid.NewString() + ext
	fullpath := filepath.Join(dir, filename)

	src, err := file.Open()
	if err != nil {
		return "", "", 0, &StorageError{Op: "open upload", Err: err}
	}
	defer src.Close()

	dst, err := os.Create(fullpath)
	if err != nil {
		return "", "", 0, &StorageError{Op: "create file", Err: err}
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(fullpath)
		return "", "", 0, &StorageError{Op: "write file", Err: err}
	}

	// stored in DB as "pool-deck/xxx.jpg"
	return filepath.ToSlash(filepath.Join(category, filename)), mediaType, written, nil
}

// Remove deletes a previously saved file. A missing file is not an
// error: the asset row is the source of truth.
func (m *MediaStorage) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	fullpath := filepath.Join(m.Root, filepath.FromSlash(relPath))
	if err := os.Remove(fullpath); err != nil && !os.IsNotExist(err) {
		return &StorageError{Op: fmt.Sprintf("delete %s", relPath), Err: err}
	}
	return nil
}

// PublicURL maps a stored relative path onto the static route mounted
// by the router.
func (m *MediaStorage) PublicURL(relPath string) string {
	return "/uploads/gallery/" + relPath
}
