package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"dreamhome/internal/http/handlers"
)

func TestServeUploads(t *testing.T) {
	env := newTestEnv(t, handlers.AppOptions{})
	if err := os.MkdirAll(filepath.Join(env.uploadDir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(env.uploadDir, "images", "a.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := env.app.Test(httptest.NewRequest("GET", "/uploads/images/a.jpg", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(b) != "jpeg" {
		t.Fatalf("served %d %q", resp.StatusCode, b)
	}
	if got := resp.Header.Get("Cross-Origin-Resource-Policy"); got != "cross-origin" {
		t.Fatalf("CORP = %q", got)
	}

	for _, p := range []string{"/uploads/../secret", "/uploads/%2e%2e/secret", "/uploads/images/..%2f..%2fetc"} {
		resp, err := env.app.Test(httptest.NewRequest("GET", p, nil), -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode == http.StatusOK {
			t.Errorf("%s served", p)
		}
	}
}
