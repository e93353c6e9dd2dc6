package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/khoshimi/Pupupu/config"
	"github.com/khoshimi/Pupupu/logger"

	"github.com/google/uuid"
)

// UploadKind selects the size ceiling applied to an upload.
type UploadKind string

const (
	UploadWork   UploadKind = "work"
	UploadAvatar UploadKind = "avatar"
)

const (
	maxWorkImageSize = 10 << 20
	maxAvatarSize    = 5 << 20
)

// StorageService persists uploaded images on local disk and exposes them
// under the public /uploads/ path.
type StorageService struct{}

func (s *StorageService) maxSize(kind UploadKind) int64 {
	if kind == UploadAvatar {
		return maxAvatarSize
	}
	return maxWorkImageSize
}

// Save validates and writes an uploaded file, returning its relative public
// path ("/uploads/<name>"). Only declared image/* content is accepted, and
// the size ceiling depends on the upload kind. The generated filename is
// collision-resistant: upload time in milliseconds, a random suffix, and the
// original extension.
func (s *StorageService) Save(file *multipart.FileHeader, kind UploadKind) (string, error) {
	if file == nil {
		return "", newValidationError("image file is required")
	}

	declared := file.Header.Get("Content-Type")
	if !strings.HasPrefix(declared, "image/") {
		return "", newValidationError("only images are allowed")
	}
	if file.Size > s.maxSize(kind) {
		return "", newValidationError(fmt.Sprintf("file exceeds the %d MB limit", s.maxSize(kind)>>20))
	}

	dir := config.GetUploadFolder()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s%s",
		time.Now().UnixMilli(),
		uuid.NewString(),
		strings.ToLower(filepath.Ext(file.Filename)),
	)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o640)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}

	return "/uploads/" + name, nil
}

// Replace stores the new file, then removes the superseded one best-effort.
func (s *StorageService) Replace(oldPath string, file *multipart.FileHeader, kind UploadKind) (string, error) {
	newPath, err := s.Save(file, kind)
	if err != nil {
		return "", err
	}
	if oldPath != "" {
		s.Remove(oldPath)
	}
	return newPath, nil
}

// Remove deletes a stored upload by its relative public path. Failures are
// logged, never propagated: cleanup must not block the database operation it
// accompanies.
func (s *StorageService) Remove(relPath string) {
	name := filepath.Base(relPath)
	if name == "." || name == "/" {
		return
	}
	full := filepath.Join(config.GetUploadFolder(), name)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		logger.Warningf("failed to remove upload %s: %v", full, err)
	}
}
