package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garnizeh/trivia/api"
	dbfs "github.com/garnizeh/trivia/db"
	"github.com/garnizeh/trivia/internal/config"
	dbpkg "github.com/garnizeh/trivia/internal/db"
	"github.com/garnizeh/trivia/internal/repository/sqlite"
	"github.com/garnizeh/trivia/internal/seed"
)

func testConfig() *config.Config {
	return &config.Config{
		Addr:     ":0",
		LogLevel: "info",
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

// newSeededRepo returns a repository over a fresh in-memory database holding
// the bundled trivia data set.
func newSeededRepo(t *testing.T) *sqlite.SQLiteRepo {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	d, err := dbpkg.New(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := sqlite.New(d, logger)
	if _, err := seed.Load(ctx, dbfs.SeedFiles, repo, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func newTestHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	repo := newSeededRepo(t)
	return api.SetupRoutes(cfg, "test", "now", repo, repo)
}

func newRequest(method, target, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// do sends one request through h and returns the recorded response.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(h, newRequest(method, target, body))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

type question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

type envelope struct {
	Success         bool              `json:"success"`
	Error           int               `json:"error"`
	Message         string            `json:"message"`
	Categories      map[string]string `json:"categories"`
	Questions       []question        `json:"questions"`
	Question        *question         `json:"question"`
	TotalQuestions  int64             `json:"total_questions"`
	CurrentCategory *int64            `json:"current_category"`
	Created         int64             `json:"created"`
	Deleted         int64             `json:"deleted"`
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("expected status %d, got %d: %s", code, w.Code, w.Body.String())
	}
	env := decode[envelope](t, w)
	if env.Success || env.Error != code || env.Message != message {
		t.Fatalf("unexpected error envelope: %+v", env)
	}
}
