package postgres

import (
	"context"
	"fmt"

	"github.com/garnizeh/trivia/pkg/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *GormRepo) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("category is nil")
	}

	explicit := c.ID != 0
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return 0, err
	}
	if explicit {
		if err := r.syncSequence(ctx, "categories"); err != nil {
			return 0, fmt.Errorf("sync categories sequence: %w", err)
		}
	}
	return c.ID, nil
}
