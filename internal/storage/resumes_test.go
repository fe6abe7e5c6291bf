package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("resume", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["resume"][0]
}

func TestSaveResumeWritesFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.SaveResume(uploadedFile(t, "My Resume.pdf", []byte("%PDF-1.4 test")))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^My_Resume_\d+\.pdf$`), name)

	data, err := os.ReadFile(filepath.Join(store.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)
}

func TestSaveResumeRejectsDisallowedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveResume(uploadedFile(t, "malware.exe", []byte("MZ")))
	assert.ErrorIs(t, err, ErrFileType)

	// Nothing may be written on rejection.
	entries, readErr := os.ReadDir(store.Dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSaveResumeRejectsOversizedFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	// The size check runs before any read, so a bare header is enough.
	big := &multipart.FileHeader{Filename: "big.pdf", Size: MaxResumeSize + 1}
	_, err = store.SaveResume(big)
	assert.ErrorIs(t, err, ErrFileSize)

	entries, readErr := os.ReadDir(store.Dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestGenerateFilenameSanitizes(t *testing.T) {
	name := GenerateFilename("résumé (final) v2!.PDF")
	assert.Regexp(t, regexp.MustCompile(`^r_sum_final_v2_\d+\.pdf$`), name)
}

func TestGenerateFilenameFallsBackWhenBaseEmpty(t *testing.T) {
	name := GenerateFilename("....pdf")
	// Sanitizing leaves nothing usable, so a random base steps in.
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f-]{36}_\d+\.pdf$`), name)
}

func TestResolveRefusesPathEscapes(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Resolve("../../etc/passwd")
	assert.Error(t, err)
	_, err = store.Resolve("")
	assert.Error(t, err)

	abs, err := store.Resolve("cv_123.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir, "cv_123.pdf"), abs)
}
