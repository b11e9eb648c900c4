package repository

import (
	"context"

	"github.com/garnizeh/trivia/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// QuestionRepo reads and writes trivia questions. List methods return
// questions ordered by id. Get returns nil, nil when the question is absent.
type QuestionRepo interface {
	ListQuestions(ctx context.Context) ([]models.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	CreateQuestion(ctx context.Context, q *models.Question) (int64, error)
	DeleteQuestion(ctx context.Context, id int64) error
	SearchQuestions(ctx context.Context, term string) ([]models.Question, error)
	ListByCategory(ctx context.Context, category string) ([]models.Question, error)
	// ListQuizCandidates returns questions whose id is not in exclude.
	// An empty category matches every category.
	ListQuizCandidates(ctx context.Context, category string, exclude []int64) ([]models.Question, error)
}

// CategoryRepo reads categories. CreateCategory exists for seeding only and
// keeps a non-zero ID as given.
type CategoryRepo interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CountCategories(ctx context.Context) (int64, error)
	CreateCategory(ctx context.Context, c *models.Category) (int64, error)
}

// Store is a backend serving both repositories that can group writes
// atomically.
type Store interface {
	QuestionRepo
	CategoryRepo
	// InTx runs fn against a view of the store bound to one transaction. The
	// writes made through it are committed when fn returns nil and discarded
	// otherwise.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
