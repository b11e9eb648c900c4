package api

import (
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
)

type quizResponse struct {
	Success  bool             `json:"success"`
	Question *models.Question `json:"question"`
}

type QuizzesHandler struct {
	questionRepo repository.QuestionRepo
	pick         func(n int) int
}

// NewQuizzesHandler returns a quiz handler choosing among candidates with
// pick, which must return a value in [0, n). A nil pick selects uniformly at
// random.
func NewQuizzesHandler(qr repository.QuestionRepo, pick func(n int) int) *QuizzesHandler {
	if pick == nil {
		pick = rand.IntN
	}
	return &QuizzesHandler{questionRepo: qr, pick: pick}
}

// NextQuestion handles POST /quizzes: it returns a question of the chosen
// category (id 0 means any) that is not among previous_questions, or null
// once the pool is exhausted.
func (h *QuizzesHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	quizCategory := body["quiz_category"]
	previous := body["previous_questions"]
	if !truthy(quizCategory) || previous == nil {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	cat, ok := quizCategory.(map[string]any)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}
	catID, ok := asInt(cat["id"])
	if !ok {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}

	prevList, ok := previous.([]any)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity)
		return
	}
	exclude := make([]int64, 0, len(prevList))
	for _, v := range prevList {
		id, ok := asInt(v)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity)
			return
		}
		exclude = append(exclude, id)
	}

	category := ""
	if catID != 0 {
		category = strconv.FormatInt(catID, 10)
	}

	pool, err := h.questionRepo.ListQuizCandidates(r.Context(), category, exclude)
	if err != nil {
		requestLogger(r.Context()).Error("list quiz candidates", slog.String("category", category), slog.Any("err", err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	resp := quizResponse{Success: true}
	if len(pool) > 0 {
		resp.Question = &pool[h.pick(len(pool))]
	}
	writeJSON(w, resp, http.StatusOK)
}
