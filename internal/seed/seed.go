// Package seed loads the bundled trivia data set into an empty store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
	"github.com/qri-io/jsonschema"
)

const (
	dataPath   = "seed/trivia.json"
	schemaPath = "seed/trivia.schema.json"
)

type document struct {
	Categories []models.Category `json:"categories"`
	Questions  []models.Question `json:"questions"`
}

// Load validates seed/trivia.json in seedFS against seed/trivia.schema.json
// and writes its categories and questions into store in one transaction, so a
// failed load leaves nothing behind and the next call starts over. It does
// nothing when at least one category already exists. It reports whether data
// was written.
func Load(ctx context.Context, seedFS fs.FS, store repository.Store, logger *slog.Logger) (bool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	n, err := store.CountCategories(ctx)
	if err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	if n > 0 {
		logger.Info("seed skipped, categories present", slog.Int64("categories", n))
		return false, nil
	}

	doc, err := read(ctx, seedFS)
	if err != nil {
		return false, err
	}

	err = store.InTx(ctx, func(tx repository.Store) error {
		for i := range doc.Categories {
			if _, err := tx.CreateCategory(ctx, &doc.Categories[i]); err != nil {
				return fmt.Errorf("seed category %d: %w", doc.Categories[i].ID, err)
			}
		}
		for i := range doc.Questions {
			if _, err := tx.CreateQuestion(ctx, &doc.Questions[i]); err != nil {
				return fmt.Errorf("seed question %d: %w", doc.Questions[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Info("seed applied",
		slog.Int("categories", len(doc.Categories)),
		slog.Int("questions", len(doc.Questions)),
	)
	return true, nil
}

func read(ctx context.Context, seedFS fs.FS) (*document, error) {
	schemaJSON, err := fs.ReadFile(seedFS, schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read seed schema: %w", err)
	}
	data, err := fs.ReadFile(seedFS, dataPath)
	if err != nil {
		return nil, fmt.Errorf("read seed data: %w", err)
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaJSON, rs); err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	verrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("validate seed data: %w", err)
	}
	if len(verrs) > 0 {
		var sb strings.Builder
		for _, v := range verrs {
			sb.WriteString(v.PropertyPath)
			sb.WriteString(": ")
			sb.WriteString(v.Message)
			sb.WriteString("; ")
		}
		return nil, fmt.Errorf("seed data does not match schema: %s", sb.String())
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return &doc, nil
}
