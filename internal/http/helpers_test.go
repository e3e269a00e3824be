package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"dreamhome/internal/auth"
	"dreamhome/internal/http/handlers"
	applog "dreamhome/internal/log"
	"dreamhome/internal/repos"
	"dreamhome/internal/storage"
)

type testEnv struct {
	app       *fiber.App
	uploadDir string
	stores    handlers.Stores
}

func newTestEnv(t *testing.T, opts handlers.AppOptions) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	media, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	st := handlers.Stores{
		Users:      repos.NewUserRepo(db),
		Properties: repos.NewPropertyRepo(db),
		Inquiries:  repos.NewInquiryRepo(db),
	}
	if opts.UploadDir == "" {
		opts.UploadDir = dir
	}
	app := handlers.NewApp(handlers.NewDeps(st, media, nil, tokens), opts)
	return &testEnv{app: app, uploadDir: dir, stores: st}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

func (e *testEnv) list(t *testing.T, path string) []map[string]any {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest("GET", path, nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	var out []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return out
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// registerAndLogin returns a bearer token for a fresh account.
func (e *testEnv) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	resp, body := e.do(t, "POST", "/api/register", map[string]string{"name": "Owner", "email": email, "password": "Passw0rd!"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: %d %v", resp.StatusCode, body)
	}
	resp, body = e.do(t, "POST", "/api/login", map[string]string{"email": email, "password": "Passw0rd!"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %v", resp.StatusCode, body)
	}
	tok, _ := body["access_token"].(string)
	if tok == "" || body["token_type"] != "bearer" {
		t.Fatalf("login body = %v", body)
	}
	return tok
}

type filePart struct {
	field, name, body string
}

func multipartBody(t *testing.T, formData string, files ...filePart) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if formData != "" {
		if err := w.WriteField("formData", formData); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(fw, f.body)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	ReqID  string         `json:"req_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// captureLogs routes the application logger into a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	applog.Setup(applog.Options{Writer: w})
	defer applog.Setup(applog.Options{})

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}
