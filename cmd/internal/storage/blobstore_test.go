package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func uploadedFile(t *testing.T, name, contentType, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="image"; filename="` + name + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestLocalStore_Save(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := store.Save("12345678Z", uploadedFile(t, "xray.png", "image/png", "png-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/files/12345678Z/") || !strings.HasSuffix(url, "_xray.png") {
		t.Fatalf("unexpected url %q", url)
	}

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(url, "/files/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content = %q", data)
	}
}

func TestLocalStore_RejectsContentType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.Save("12345678Z", uploadedFile(t, "notes.pdf", "application/pdf", "%PDF"))
	if err != ErrInvalidContentType {
		t.Fatalf("expected ErrInvalidContentType, got %v", err)
	}
}

func TestLocalStore_SanitizesTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := store.Save("../evil", uploadedFile(t, "../../escape.png", "image/png", "x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Fatalf("url must not contain traversal segments: %q", url)
	}
}
