package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
	"github.com/gorilla/mux"
)

// categoryMap renders categories as a JSON object from id to type, keeping
// the store's id order in the output.
type categoryMap []models.Category

func (m categoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.FormatInt(c.ID, 10)))
		buf.WriteByte(':')
		b, err := json.Marshal(c.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type categoriesResponse struct {
	Success    bool        `json:"success"`
	Categories categoryMap `json:"categories"`
}

type categoryQuestionsResponse struct {
	Success         bool              `json:"success"`
	CurrentCategory int64             `json:"current_category"`
	Questions       []models.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
}

type CategoriesHandler struct {
	questionRepo repository.QuestionRepo
	categoryRepo repository.CategoryRepo
}

func NewCategoriesHandler(qr repository.QuestionRepo, cr repository.CategoryRepo) *CategoriesHandler {
	return &CategoriesHandler{questionRepo: qr, categoryRepo: cr}
}

// ListCategories handles GET /categories.
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categoryRepo.ListCategories(r.Context())
	if err != nil {
		requestLogger(r.Context()).Error("list categories", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(cats) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	writeJSON(w, categoriesResponse{Success: true, Categories: categoryMap(cats)}, http.StatusOK)
}

// ListCategoryQuestions handles GET /categories/{id}/questions. An id no
// question refers to yields an empty page, not an error.
func (h *CategoriesHandler) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound)
		return
	}

	qs, err := h.questionRepo.ListByCategory(r.Context(), strconv.FormatInt(id, 10))
	if err != nil {
		requestLogger(r.Context()).Error("list questions by category", slog.Int64("category", id), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, categoryQuestionsResponse{
		Success:         true,
		CurrentCategory: id,
		Questions:       paginate(r, qs),
		TotalQuestions:  len(qs),
	}, http.StatusOK)
}
