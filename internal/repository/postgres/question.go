package postgres

import (
	"context"
	"fmt"

	"github.com/garnizeh/trivia/internal/textmatch"
	"github.com/garnizeh/trivia/pkg/models"
)

func (r *GormRepo) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var out []models.Question
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *GormRepo) CountQuestions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Question{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	var found []models.Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// CreateQuestion inserts q and returns its id. A non-zero q.ID is kept.
func (r *GormRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("question is nil")
	}

	explicit := q.ID != 0
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return 0, err
	}
	if explicit {
		if err := r.syncSequence(ctx, "questions"); err != nil {
			return 0, fmt.Errorf("sync questions sequence: %w", err)
		}
	}
	return q.ID, nil
}

func (r *GormRepo) DeleteQuestion(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Question{}, id).Error
}

// SearchQuestions matches term anywhere in the question text, ignoring case
// for every script. '%' and '_' inside term act as LIKE wildcards. Dialects
// without a Unicode-aware ILIKE are matched in Go over the ordered list.
func (r *GormRepo) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	if r.isPostgres() {
		var out []models.Question
		err := r.db.WithContext(ctx).
			Where("question ILIKE ?", "%"+term+"%").
			Order("id").
			Find(&out).Error
		return out, err
	}

	all, err := r.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Question
	for _, q := range all {
		if textmatch.Contains(q.Question, term) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *GormRepo) ListByCategory(ctx context.Context, category string) ([]models.Question, error) {
	var out []models.Question
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("id").Find(&out).Error
	return out, err
}

func (r *GormRepo) ListQuizCandidates(ctx context.Context, category string, exclude []int64) ([]models.Question, error) {
	tx := r.db.WithContext(ctx).Model(&models.Question{})
	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	// gorm renders an empty NOT IN list as NOT IN (NULL), which matches nothing
	if len(exclude) > 0 {
		tx = tx.Where("id NOT IN ?", exclude)
	}

	var out []models.Question
	err := tx.Order("id").Find(&out).Error
	return out, err
}
