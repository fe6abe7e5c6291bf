package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxResumeSize is the upload cap: 10 MiB.
const MaxResumeSize = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".rtf":  true,
}

var (
	ErrFileType = errors.New("invalid file type: allowed are .pdf, .doc, .docx, .rtf")
	ErrFileSize = fmt.Errorf("file too large: limit is %d bytes", MaxResumeSize)
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Store writes accepted resumes to a local directory.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

// SaveResume validates and writes a single uploaded file, returning the
// generated filename (not the full path). Rejections happen before any
// byte is written.
func (s *Store) SaveResume(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrFileType
	}
	if fh.Size > MaxResumeSize {
		return "", ErrFileSize
	}

	name := GenerateFilename(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return name, nil
}

// GenerateFilename builds "<sanitized_base>_<ms>.<ext>" from the
// client's original filename. The millisecond suffix makes collisions
// between different uploads vanishingly unlikely without a lock or a
// database lookup, and the base keeps the name human-traceable.
func GenerateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._-")
	if base == "" {
		base = uuid.NewString()
	}
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixMilli(), ext)
}

// Resolve returns the absolute path of a stored resume, refusing names
// that would escape the upload directory.
func (s *Store) Resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", fmt.Errorf("invalid resume filename %q", filename)
	}
	abs, err := filepath.Abs(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", err
	}
	return abs, nil
}
