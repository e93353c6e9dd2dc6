package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uploadDirEntries(t *testing.T) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(os.Getenv("PUPUPU_UPLOAD_FOLDER"))
	if os.IsNotExist(err) {
		return nil
	}
	assert.NoError(t, err)
	return entries
}

func TestStorageServiceSave(t *testing.T) {
	setup(t)
	storage := StorageService{}

	relPath, err := storage.Save(makeFileHeader(t, "Photo.PNG", "image/png", 128), UploadWork)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "/uploads/"))
	// extension is kept but lowercased, the rest of the name is generated
	assert.True(t, strings.HasSuffix(relPath, ".png"))
	assert.NotContains(t, relPath, "Photo")
	assert.FileExists(t, uploadedFilePath(relPath))

	data, err := os.ReadFile(uploadedFilePath(relPath))
	assert.NoError(t, err)
	assert.Len(t, data, 128)
}

func TestStorageServiceSaveUniqueNames(t *testing.T) {
	setup(t)
	storage := StorageService{}

	first, err := storage.Save(makeFileHeader(t, "a.png", "image/png", 16), UploadWork)
	assert.NoError(t, err)
	second, err := storage.Save(makeFileHeader(t, "a.png", "image/png", 16), UploadWork)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestStorageServiceSaveRejectsNonImage(t *testing.T) {
	setup(t)
	storage := StorageService{}

	_, err := storage.Save(makeFileHeader(t, "notes.txt", "text/plain", 32), UploadWork)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, uploadDirEntries(t))
}

func TestStorageServiceSaveRejectsMissingFile(t *testing.T) {
	setup(t)
	storage := StorageService{}

	_, err := storage.Save(nil, UploadWork)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStorageServiceSaveEnforcesSizeCeiling(t *testing.T) {
	setup(t)
	storage := StorageService{}

	// the avatar ceiling is 5 MiB, one byte over must be rejected
	_, err := storage.Save(makeFileHeader(t, "big.png", "image/png", 5<<20+1), UploadAvatar)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, uploadDirEntries(t))

	_, err = storage.Save(makeFileHeader(t, "ok.png", "image/png", 5<<20), UploadAvatar)
	assert.NoError(t, err)
}

func TestStorageServiceReplace(t *testing.T) {
	setup(t)
	storage := StorageService{}

	oldPath, err := storage.Save(makeFileHeader(t, "old.png", "image/png", 16), UploadAvatar)
	assert.NoError(t, err)

	newPath, err := storage.Replace(oldPath, makeFileHeader(t, "new.png", "image/png", 16), UploadAvatar)
	assert.NoError(t, err)
	assert.NotEqual(t, oldPath, newPath)
	assert.NoFileExists(t, uploadedFilePath(oldPath))
	assert.FileExists(t, uploadedFilePath(newPath))
}

func TestStorageServiceReplaceKeepsOldOnFailure(t *testing.T) {
	setup(t)
	storage := StorageService{}

	oldPath, err := storage.Save(makeFileHeader(t, "old.png", "image/png", 16), UploadAvatar)
	assert.NoError(t, err)

	_, err = storage.Replace(oldPath, makeFileHeader(t, "bad.txt", "text/plain", 16), UploadAvatar)
	assert.ErrorIs(t, err, ErrValidation)
	assert.FileExists(t, uploadedFilePath(oldPath))
}

func TestStorageServiceRemoveIgnoresTraversal(t *testing.T) {
	setup(t)
	storage := StorageService{}

	outside := filepath.Join(t.TempDir(), "precious.txt")
	assert.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))

	storage.Remove("/uploads/../" + outside)
	assert.FileExists(t, outside)
}
