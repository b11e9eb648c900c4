package api

import (
	"net/http"

	"github.com/garnizeh/trivia/internal/config"
	"github.com/garnizeh/trivia/pkg/repository"
	"github.com/gorilla/mux"
)

// SetupRoutes builds the full HTTP handler. Logging, CORS and panic recovery
// wrap the router itself so unmatched paths get them too.
func SetupRoutes(cfg *config.Config, version, buildTime string, qr repository.QuestionRepo, cr repository.CategoryRepo) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = NotFoundHandler()
	r.MethodNotAllowedHandler = MethodNotAllowedHandler()

	if cfg.Metrics.Enabled {
		m := NewMetrics()
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}

	// Writes are open unless a signing secret is configured.
	protect := func(h http.HandlerFunc) http.Handler {
		if cfg.Auth.JWTSecret == "" {
			return h
		}
		return JWTAuthMiddlewareWithSecret(cfg.Auth.JWTSecret)(h)
	}

	// Create handlers
	systemHandler := NewSystemHandler(cr)
	categoriesHandler := NewCategoriesHandler(qr, cr)
	questionsHandler := NewQuestionsHandler(qr, cr)
	quizzesHandler := NewQuizzesHandler(qr, nil)

	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	r.HandleFunc("/categories", categoriesHandler.ListCategories).Methods("GET")
	r.HandleFunc("/categories/{id:[0-9]+}/questions", categoriesHandler.ListCategoryQuestions).Methods("GET")

	r.HandleFunc("/questions", questionsHandler.ListQuestions).Methods("GET")
	r.Handle("/questions", protect(questionsHandler.CreateQuestion)).Methods("POST")
	r.Handle("/questions/{id:[0-9]+}", protect(questionsHandler.DeleteQuestion)).Methods("DELETE")
	r.HandleFunc("/search", questionsHandler.SearchQuestions).Methods("POST")

	r.HandleFunc("/quizzes", quizzesHandler.NextQuestion).Methods("POST")

	return Chain(r, LoggingMiddleware, CORSMiddleware, RecoveryMiddleware)
}
