package api

import (
	"net/http"
	"strconv"

	"github.com/garnizeh/trivia/pkg/models"
)

const QuestionsPerPage = 10

// pageNumber reads the 1-based "page" query parameter, defaulting to 1 when
// it is absent or not an integer.
func pageNumber(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return p
}

func paginate(r *http.Request, questions []models.Question) []models.Question {
	return pageOf(questions, pageNumber(r))
}

// pageOf returns the page-th window of QuestionsPerPage questions. Pages
// before the first or past the last are empty, never nil.
func pageOf(questions []models.Question, page int) []models.Question {
	out := []models.Question{}
	pages := (len(questions) + QuestionsPerPage - 1) / QuestionsPerPage
	if page < 1 || page > pages {
		return out
	}

	start := (page - 1) * QuestionsPerPage
	end := min(start+QuestionsPerPage, len(questions))
	return append(out, questions[start:end]...)
}
