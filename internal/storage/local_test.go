package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadWritesAndReturnsURL(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost:8080/")

	url, err := store.Upload("properties", "front view.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/properties/") {
		t.Fatalf("unexpected URL: %q", url)
	}
	if strings.Contains(url, " ") {
		t.Fatalf("URL must not contain spaces: %q", url)
	}
	if !strings.HasSuffix(url, "front_view.jpg") {
		t.Fatalf("sanitized name should keep its extension: %q", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(root, "properties", name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("stored content = %q", data)
	}
}

func TestUploadRejectsBadBucket(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080")

	for _, bucket := range []string{"", "UPPER", "../escape", "sp ace", "-leading"} {
		_, err := store.Upload(bucket, "file.jpg", strings.NewReader("x"))
		if !errors.Is(err, ErrInvalidBucket) {
			t.Fatalf("Upload(bucket=%q) error = %v, want ErrInvalidBucket", bucket, err)
		}
	}
}

func TestUploadRejectsEmptyName(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080")

	if _, err := store.Upload("properties", "   ", strings.NewReader("x")); !errors.Is(err, ErrEmptyFileName) {
		t.Fatalf("Upload() error = %v, want ErrEmptyFileName", err)
	}
}

func TestUploadSanitizesTraversal(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStore(root, "http://localhost:8080")

	url, err := store.Upload("properties", "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}
	// Only the base name survives; the stored file stays inside the
	// bucket directory.
	if strings.Contains(url, "..") {
		t.Fatalf("URL leaks traversal: %q", url)
	}
	entries, err := os.ReadDir(filepath.Join(root, "properties"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected exactly one stored file, err=%v", err)
	}
}
