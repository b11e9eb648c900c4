package sqlite

import (
	"context"
	"fmt"

	"github.com/garnizeh/trivia/pkg/models"
)

func (r *SQLiteRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountCategories(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM categories`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) CreateCategory(ctx context.Context, c *models.Category) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("category is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO categories (id, type) VALUES (?, ?)`, nullID(c.ID), c.Type)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}
