package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestHealth(t *testing.T) {
	for _, key := range []string{"", "key"} {
		h, _ := newTestRouter(testConfig(key), "http://127.0.0.1:1")

		req := httptest.NewRequest(http.MethodGet, "/api/health?ignored=1", strings.NewReader("ignored"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var body struct {
			Status    string `json:"status"`
			Message   string `json:"message"`
			HasAPIKey bool   `json:"hasApiKey"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if body.Status != "ok" || body.Message != "LockIn List server is running!" {
			t.Errorf("body = %+v", body)
		}
		if body.HasAPIKey != (key != "") {
			t.Errorf("hasApiKey = %v with key %q", body.HasAPIKey, key)
		}
	}
}

func TestHealthHead(t *testing.T) {
	h, _ := newTestRouter(testConfig("key"), "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("HEAD /api/health = %d, want 200", rec.Code)
	}
}

func TestUnmatchedRoutesAccessLogged(t *testing.T) {
	hook := captureLogs(t)
	h, _ := newTestRouter(testConfig("key"), "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT /api/health = %d, want 405", rec.Code)
	}
	assertLogged(t, hook, logrus.InfoLevel, "-- PUT -- /api/health -- 405")

	if rec = get(h, "/missing.js"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /missing.js = %d, want 404", rec.Code)
	}
	assertLogged(t, hook, logrus.InfoLevel, "-- GET -- /missing.js -- 404")
}

func staticConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lockin-list.html"), []byte("<html>lockin</html>"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "assets"), 0o700); err != nil {
		t.Fatal(err)
	}
	return dir
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStaticFiles(t *testing.T) {
	cfg := testConfig("key")
	cfg.StaticDir = staticConfigDir(t)
	h, _ := newTestRouter(cfg, "http://127.0.0.1:1")

	rec := get(h, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "lockin") {
		t.Errorf("GET / = %d %q", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("GET / Content-Type = %q", ct)
	}

	rec = get(h, "/app.css")
	if rec.Code != http.StatusOK || rec.Body.String() != "body{}" {
		t.Errorf("GET /app.css = %d %q", rec.Code, rec.Body)
	}

	if rec = get(h, "/missing.js"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /missing.js = %d, want 404", rec.Code)
	}
	if rec = get(h, "/assets/"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /assets/ = %d, want 404", rec.Code)
	}
}

func TestShippedIndexPage(t *testing.T) {
	h, _ := newTestRouter(testConfig("key"), "http://127.0.0.1:1")
	rec := get(h, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/api/process-text") {
		t.Errorf("GET / = %d", rec.Code)
	}
}

func TestMissingIndex(t *testing.T) {
	cfg := testConfig("key")
	cfg.StaticDir = t.TempDir()
	h, _ := newTestRouter(cfg, "http://127.0.0.1:1")
	if rec := get(h, "/"); rec.Code != http.StatusNotFound {
		t.Errorf("GET / = %d, want 404", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	h, _ := newTestRouter(testConfig("key"), "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodOptions, "/api/process-text", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
