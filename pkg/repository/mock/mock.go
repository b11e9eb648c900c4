package mock

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	QuestionRepo *mockQuestionRepo
	CategoryRepo *mockCategoryRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		QuestionRepo: &mockQuestionRepo{nextID: 1},
		CategoryRepo: &mockCategoryRepo{},
	}
}

// Store returns both fakes behind repository.Store. InTx restores their
// contents when fn fails.
func (m *Mocks) Store() repository.Store {
	return &mockStore{mockQuestionRepo: m.QuestionRepo, mockCategoryRepo: m.CategoryRepo}
}

type mockStore struct {
	*mockQuestionRepo
	*mockCategoryRepo
}

func (s *mockStore) InTx(ctx context.Context, fn func(tx repository.Store) error) error {
	questions := slices.Clone(s.mockQuestionRepo.Stored)
	nextID := s.mockQuestionRepo.nextID
	categories := slices.Clone(s.mockCategoryRepo.Stored)

	if err := fn(s); err != nil {
		s.mockQuestionRepo.Stored = questions
		s.mockQuestionRepo.nextID = nextID
		s.mockCategoryRepo.Stored = categories
		return err
	}
	return nil
}

type mockQuestionRepo struct {
	Stored    []models.Question
	ListErr   error
	GetErr    error
	CreateErr error
	DeleteErr error
	nextID    int64
}

// Add stores questions as given, assigning ids to those without one.
func (m *mockQuestionRepo) Add(qs ...models.Question) {
	for _, q := range qs {
		if q.ID == 0 {
			q.ID = m.nextID
		}
		if q.ID >= m.nextID {
			m.nextID = q.ID + 1
		}
		m.Stored = append(m.Stored, q)
	}
	slices.SortFunc(m.Stored, func(a, b models.Question) int { return cmp.Compare(a.ID, b.ID) })
}

func (m *mockQuestionRepo) filter(keep func(models.Question) bool) ([]models.Question, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.Question
	for _, q := range m.Stored {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *mockQuestionRepo) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return m.filter(func(models.Question) bool { return true })
}

func (m *mockQuestionRepo) CountQuestions(ctx context.Context) (int64, error) {
	if m.ListErr != nil {
		return 0, m.ListErr
	}
	return int64(len(m.Stored)), nil
}

func (m *mockQuestionRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, q := range m.Stored {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, nil
}

func (m *mockQuestionRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	stored := *q
	if stored.ID == 0 {
		stored.ID = m.nextID
	}
	m.Add(stored)
	return stored.ID, nil
}

func (m *mockQuestionRepo) DeleteQuestion(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.Stored = slices.DeleteFunc(m.Stored, func(q models.Question) bool { return q.ID == id })
	return nil
}

func (m *mockQuestionRepo) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	term = strings.ToLower(term)
	return m.filter(func(q models.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), term)
	})
}

func (m *mockQuestionRepo) ListByCategory(ctx context.Context, category string) ([]models.Question, error) {
	return m.filter(func(q models.Question) bool { return q.Category == category })
}

func (m *mockQuestionRepo) ListQuizCandidates(ctx context.Context, category string, exclude []int64) ([]models.Question, error) {
	return m.filter(func(q models.Question) bool {
		if category != "" && q.Category != category {
			return false
		}
		return !slices.Contains(exclude, q.ID)
	})
}

type mockCategoryRepo struct {
	Stored  []models.Category
	ListErr error
}

func (m *mockCategoryRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.Stored), nil
}

func (m *mockCategoryRepo) CountCategories(ctx context.Context) (int64, error) {
	if m.ListErr != nil {
		return 0, m.ListErr
	}
	return int64(len(m.Stored)), nil
}

func (m *mockCategoryRepo) CreateCategory(ctx context.Context, c *models.Category) (int64, error) {
	stored := *c
	if stored.ID == 0 {
		stored.ID = int64(len(m.Stored) + 1)
	}
	m.Stored = append(m.Stored, stored)
	return stored.ID, nil
}
