package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/garnizeh/trivia/internal/db"
	"github.com/garnizeh/trivia/pkg/models"
)

const questionColumns = `id, question, answer, category, difficulty`

func (r *SQLiteRepo) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return r.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
}

func (r *SQLiteRepo) CountQuestions(ctx context.Context) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM questions`)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	var q models.Question
	if err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &q, nil
}

// CreateQuestion inserts q and returns its id. A non-zero q.ID is kept.
func (r *SQLiteRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("question is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO questions (id, question, answer, category, difficulty) VALUES (?, ?, ?, ?, ?)`,
		nullID(q.ID), q.Question, q.Answer, q.Category, q.Difficulty)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.logger.Debug("question created", slog.Int64("id", id))
	return id, nil
}

func (r *SQLiteRepo) DeleteQuestion(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM questions WHERE id = ?`, id)
	return err
}

// SearchQuestions matches term anywhere in the question text, ignoring case
// for every script. '%' and '_' inside term act as LIKE wildcards.
func (r *SQLiteRepo) SearchQuestions(ctx context.Context, term string) ([]models.Question, error) {
	return r.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions WHERE `+db.ContainsFold+`(question, ?) ORDER BY id`, term)
}

func (r *SQLiteRepo) ListByCategory(ctx context.Context, category string) ([]models.Question, error) {
	return r.queryQuestions(ctx, `SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`, category)
}

func (r *SQLiteRepo) ListQuizCandidates(ctx context.Context, category string, exclude []int64) ([]models.Question, error) {
	var (
		where []string
		args  []any
	)
	if category != "" {
		where = append(where, `category = ?`)
		args = append(args, category)
	}
	if len(exclude) > 0 {
		where = append(where, `id NOT IN (?`+strings.Repeat(`, ?`, len(exclude)-1)+`)`)
		for _, id := range exclude {
			args = append(args, id)
		}
	}

	query := `SELECT ` + questionColumns + ` FROM questions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	return r.queryQuestions(ctx, query+` ORDER BY id`, args...)
}

func (r *SQLiteRepo) queryQuestions(ctx context.Context, query string, args ...any) ([]models.Question, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, err
		}

		out = append(out, q)
	}

	return out, rows.Err()
}
