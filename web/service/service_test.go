package service

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/khoshimi/Pupupu/caching"
	"github.com/khoshimi/Pupupu/config"
	"github.com/khoshimi/Pupupu/database"
	"github.com/khoshimi/Pupupu/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("PUPUPU_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func setup(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	os.Setenv("PUPUPU_UPLOAD_FOLDER", filepath.Join(dir, "uploads"))
	caching.Flush()
	if err := database.InitDB(filepath.Join(dir, "test.db")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
	})
}

// uploadedFilePath resolves a relative public path ("/uploads/<name>") to
// the on-disk location of the stored file.
func uploadedFilePath(relPath string) string {
	return filepath.Join(config.GetUploadFolder(), filepath.Base(relPath))
}

// makeFileHeader builds a multipart file header the way gin hands it to the
// storage service.
func makeFileHeader(t *testing.T, name, contentType string, size int) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	assert.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	r := multipart.NewReader(body, w.Boundary())
	form, err := r.ReadForm(32 << 20)
	assert.NoError(t, err)
	return form.File["file"][0]
}
