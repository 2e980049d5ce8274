package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidBucket = errors.New("invalid bucket name")
	ErrEmptyFileName = errors.New("file name is required")
)

var bucketNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// LocalStore persists uploaded blobs under root/<bucket>/ and serves
// them at baseURL/uploads/<bucket>/<name>.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root returns the directory the store writes under.
func (s *LocalStore) Root() string { return s.root }

// Upload writes the blob under a collision-resistant name (millisecond
// timestamp + sanitized original name) and returns its public URL.
// Failures are surfaced once; there is no retry.
func (s *LocalStore) Upload(bucket, fileName string, r io.Reader) (string, error) {
	if !bucketNameRe.MatchString(bucket) {
		return "", ErrInvalidBucket
	}
	sanitized := sanitizeFileName(fileName)
	if sanitized == "" {
		return "", ErrEmptyFileName
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitized)
	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create bucket directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + "/uploads/" + bucket + "/" + name, nil
}

// sanitizeFileName keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with underscores.
func sanitizeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
