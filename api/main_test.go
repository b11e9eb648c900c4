package api_test

import (
	"log/slog"
	"testing"

	"github.com/garnizeh/trivia/api"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	api.SetLogger(slog.New(slog.DiscardHandler))
	goleak.VerifyTestMain(m)
}
