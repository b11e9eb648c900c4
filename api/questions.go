package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

type questionsResponse struct {
	Success        bool              `json:"success"`
	Questions      []models.Question `json:"questions"`
	TotalQuestions int64             `json:"total_questions"`
	Categories     categoryMap       `json:"categories"`
}

type createQuestionResponse struct {
	Success        bool              `json:"success"`
	Created        int64             `json:"created"`
	Questions      []models.Question `json:"questions"`
	TotalQuestions int64             `json:"total_questions"`
}

type deleteQuestionResponse struct {
	Success        bool              `json:"success"`
	Deleted        int64             `json:"deleted"`
	Questions      []models.Question `json:"questions"`
	TotalQuestions int64             `json:"total_questions"`
}

type searchResponse struct {
	Success         bool              `json:"success"`
	Questions       []models.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory *int64            `json:"current_category"`
}

type QuestionsHandler struct {
	questionRepo repository.QuestionRepo
	categoryRepo repository.CategoryRepo
}

func NewQuestionsHandler(qr repository.QuestionRepo, cr repository.CategoryRepo) *QuestionsHandler {
	return &QuestionsHandler{questionRepo: qr, categoryRepo: cr}
}

// ListQuestions handles GET /questions?page=N.
func (h *QuestionsHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	qs, err := h.questionRepo.ListQuestions(ctx)
	if err != nil {
		requestLogger(ctx).Error("list questions", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if len(qs) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	cats, err := h.categoryRepo.ListCategories(ctx)
	if err != nil {
		requestLogger(ctx).Error("list categories", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	page := paginate(r, qs)
	if len(page) == 0 {
		writeError(w, http.StatusNotFound)
		return
	}

	total, err := h.questionRepo.CountQuestions(ctx)
	if err != nil {
		requestLogger(ctx).Error("count questions", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, questionsResponse{
		Success:        true,
		Questions:      page,
		TotalQuestions: total,
		Categories:     categoryMap(cats),
	}, http.StatusOK)
}

// CreateQuestion handles POST /questions. Any failure after routing,
// including a rejected body, is reported as 422.
func (h *QuestionsHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := decodeObject(r)
	if err != nil {
		requestLogger(ctx).Warn("invalid question body", slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	for _, field := range []string{"question", "answer", "difficulty", "category"} {
		if !truthy(body[field]) {
			writeError(w, http.StatusUnprocessableEntity)
			return
		}
	}

	text, okText := asText(body["question"])
	answer, okAnswer := asText(body["answer"])
	category, okCategory := asText(body["category"])
	difficulty, okDifficulty := asInt(body["difficulty"])
	if !okText || !okAnswer || !okCategory || !okDifficulty {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	q := models.Question{
		Question:   text,
		Answer:     answer,
		Category:   category,
		Difficulty: int(difficulty),
	}
	if err := validate.Struct(q); err != nil {
		requestLogger(ctx).Warn("question rejected", slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	id, err := h.questionRepo.CreateQuestion(ctx, &q)
	if err != nil {
		requestLogger(ctx).Error("create question", slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	qs, err := h.questionRepo.ListQuestions(ctx)
	if err != nil {
		requestLogger(ctx).Error("list questions", slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}
	total, err := h.questionRepo.CountQuestions(ctx)
	if err != nil {
		requestLogger(ctx).Error("count questions", slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	requestLogger(ctx).Info("question created", slog.Int64("id", id), slog.String("subject", subject(ctx)))

	writeJSON(w, createQuestionResponse{
		Success:        true,
		Created:        id,
		Questions:      paginate(r, qs),
		TotalQuestions: total,
	}, http.StatusOK)
}

// DeleteQuestion handles DELETE /questions/{id}. An id with no question is
// unprocessable rather than not found.
func (h *QuestionsHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	q, err := h.questionRepo.GetQuestion(ctx, id)
	if err != nil {
		requestLogger(ctx).Error("get question", slog.Int64("id", id), slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}
	if q == nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	if err := h.questionRepo.DeleteQuestion(ctx, id); err != nil {
		requestLogger(ctx).Error("delete question", slog.Int64("id", id), slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	qs, err := h.questionRepo.ListQuestions(ctx)
	if err != nil {
		requestLogger(ctx).Error("list questions", slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}
	total, err := h.questionRepo.CountQuestions(ctx)
	if err != nil {
		requestLogger(ctx).Error("count questions", slog.Any("err", err))
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	requestLogger(ctx).Info("question deleted", slog.Int64("id", id), slog.String("subject", subject(ctx)))

	writeJSON(w, deleteQuestionResponse{
		Success:        true,
		Deleted:        id,
		Questions:      paginate(r, qs),
		TotalQuestions: total,
	}, http.StatusOK)
}

// SearchQuestions handles POST /search.
func (h *QuestionsHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	term, ok := asText(body["searchTerm"])
	if !ok {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	qs, err := h.questionRepo.SearchQuestions(r.Context(), term)
	if err != nil {
		requestLogger(r.Context()).Error("search questions", slog.String("term", term), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	writeJSON(w, searchResponse{
		Success:        true,
		Questions:      paginate(r, qs),
		TotalQuestions: len(qs),
	}, http.StatusOK)
}
