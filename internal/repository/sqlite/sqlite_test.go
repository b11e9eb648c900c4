package sqlite_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	dbfs "github.com/garnizeh/trivia/db"
	dbpkg "github.com/garnizeh/trivia/internal/db"
	sqlite "github.com/garnizeh/trivia/internal/repository/sqlite"
	"github.com/garnizeh/trivia/internal/seed"
	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/repository"
)

func setupRepo(t *testing.T) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

func mustCreate(t *testing.T, repo *sqlite.SQLiteRepo, qs ...models.Question) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(qs))
	for i := range qs {
		id, err := repo.CreateQuestion(context.Background(), &qs[i])
		if err != nil {
			t.Fatalf("CreateQuestion error: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestQuestionCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateQuestion(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil question")
	}

	// Non-existing ID should return nil, nil
	got, err := repo.GetQuestion(ctx, 9999)
	if err != nil {
		t.Fatalf("expected no error when getting non-existing ID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil when getting non-existing ID got: %#v", got)
	}

	q := models.Question{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: "3", Difficulty: 2}
	ids := mustCreate(t, repo, q)
	if ids[0] == 0 {
		t.Fatalf("expected non-zero id")
	}

	got, err = repo.GetQuestion(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetQuestion error: %v", err)
	}
	if got == nil || got.Answer != q.Answer || got.Category != "3" || got.Difficulty != 2 {
		t.Fatalf("GetQuestion wrong result: %#v", got)
	}

	cnt, err := repo.CountQuestions(ctx)
	if err != nil || cnt != 1 {
		t.Fatalf("CountQuestions: got %d, %v", cnt, err)
	}

	if err := repo.DeleteQuestion(ctx, ids[0]); err != nil {
		t.Fatalf("DeleteQuestion error: %v", err)
	}
	after, err := repo.GetQuestion(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetQuestion after delete error: %v", err)
	}
	if after != nil {
		t.Fatalf("expected nil after delete got: %#v", after)
	}
}

func TestCreateQuestion_KeepsExplicitID(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()

	ids := mustCreate(t, repo,
		models.Question{ID: 10, Question: "q10", Answer: "a", Category: "6", Difficulty: 3},
		models.Question{Question: "next", Answer: "a", Category: "6", Difficulty: 3},
	)
	if ids[0] != 10 {
		t.Fatalf("expected explicit id 10, got %d", ids[0])
	}
	if ids[1] != 11 {
		t.Fatalf("expected next id 11, got %d", ids[1])
	}
}

func TestListQuestions_OrderedByID(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	mustCreate(t, repo,
		models.Question{ID: 7, Question: "seven", Answer: "a", Category: "1", Difficulty: 1},
		models.Question{ID: 3, Question: "three", Answer: "a", Category: "1", Difficulty: 1},
		models.Question{ID: 5, Question: "five", Answer: "a", Category: "2", Difficulty: 1},
	)

	qs, err := repo.ListQuestions(ctx)
	if err != nil {
		t.Fatalf("ListQuestions error: %v", err)
	}
	want := []int64{3, 5, 7}
	if len(qs) != len(want) {
		t.Fatalf("expected %d questions got %d", len(want), len(qs))
	}
	for i, id := range want {
		if qs[i].ID != id {
			t.Fatalf("position %d: want id %d got %d", i, id, qs[i].ID)
		}
	}
}

func TestSearchQuestions(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	mustCreate(t, repo,
		models.Question{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: "4", Difficulty: 2},
		models.Question{Question: "What was the TITLE of the 1990 fantasy?", Answer: "Edward Scissorhands", Category: "5", Difficulty: 3},
		models.Question{Question: "Who invented Peanut Butter?", Answer: "title", Category: "4", Difficulty: 2},
	)

	cases := []struct {
		term string
		want int
	}{
		{term: "title", want: 2},
		{term: "TiTlE", want: 2},
		{term: "peanut", want: 1},
		{term: "aaaaaaaaaaaaaaaaa", want: 0},
		{term: "", want: 3},
	}
	for _, c := range cases {
		t.Run(c.term, func(t *testing.T) {
			qs, err := repo.SearchQuestions(ctx, c.term)
			if err != nil {
				t.Fatalf("SearchQuestions error: %v", err)
			}
			if len(qs) != c.want {
				t.Fatalf("term %q: want %d got %d", c.term, c.want, len(qs))
			}
		})
	}
}

func TestSearchQuestions_Unicode(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	ids := mustCreate(t, repo,
		models.Question{Question: "Which painter led the ÉCOLE de Paris style?", Answer: "Chagall", Category: "2", Difficulty: 3},
		models.Question{Question: "Who wrote ΟΔΥΣΣΕΙΑ?", Answer: "Homer", Category: "4", Difficulty: 2},
		models.Question{Question: "What is 50% of 10?", Answer: "5", Category: "1", Difficulty: 1},
	)

	cases := []struct {
		term string
		want []int64
	}{
		{term: "école", want: []int64{ids[0]}},
		{term: "ÉCOLE", want: []int64{ids[0]}},
		{term: "οδυσσεια", want: []int64{ids[1]}},
		{term: "painter%paris", want: []int64{ids[0]}},
		{term: "50_", want: []int64{ids[2]}},
		{term: "w%o", want: []int64{ids[0], ids[1], ids[2]}},
	}
	for _, c := range cases {
		t.Run(c.term, func(t *testing.T) {
			qs, err := repo.SearchQuestions(ctx, c.term)
			if err != nil {
				t.Fatalf("SearchQuestions error: %v", err)
			}
			if len(qs) != len(c.want) {
				t.Fatalf("term %q: want %v got %d questions", c.term, c.want, len(qs))
			}
			for i, id := range c.want {
				if qs[i].ID != id {
					t.Fatalf("term %q position %d: want id %d got %d", c.term, i, id, qs[i].ID)
				}
			}
		})
	}
}

func TestInTx(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.CreateCategory(ctx, &models.Category{ID: 1, Type: "Science"}); err != nil {
			return err
		}
		if _, err := tx.CreateQuestion(ctx, &models.Question{Question: "q", Answer: "a", Category: "1", Difficulty: 1}); err != nil {
			return err
		}
		// nested calls share the transaction
		return tx.InTx(ctx, func(inner repository.Store) error {
			n, err := inner.CountCategories(ctx)
			if err != nil {
				return err
			}
			if n != 1 {
				t.Errorf("expected the uncommitted category to be visible, got %d", n)
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	cats, _ := repo.CountCategories(ctx)
	qs, _ := repo.CountQuestions(ctx)
	if cats != 0 || qs != 0 {
		t.Fatalf("expected rollback, got %d categories and %d questions", cats, qs)
	}

	err = repo.InTx(ctx, func(tx repository.Store) error {
		_, err := tx.CreateCategory(ctx, &models.Category{ID: 1, Type: "Science"})
		return err
	})
	if err != nil {
		t.Fatalf("InTx error: %v", err)
	}
	if cats, _ := repo.CountCategories(ctx); cats != 1 {
		t.Fatalf("expected committed category, got %d", cats)
	}
}

func TestListByCategory(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	mustCreate(t, repo,
		models.Question{Question: "a", Answer: "a", Category: "3", Difficulty: 1},
		models.Question{Question: "b", Answer: "b", Category: "3", Difficulty: 1},
		models.Question{Question: "c", Answer: "c", Category: "4", Difficulty: 1},
	)

	qs, err := repo.ListByCategory(ctx, "3")
	if err != nil {
		t.Fatalf("ListByCategory error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions in category 3 got %d", len(qs))
	}

	none, err := repo.ListByCategory(ctx, "100000000")
	if err != nil {
		t.Fatalf("ListByCategory error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no questions got %d", len(none))
	}
}

func TestListQuizCandidates(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	mustCreate(t, repo,
		models.Question{ID: 10, Question: "a", Answer: "a", Category: "6", Difficulty: 1},
		models.Question{ID: 11, Question: "b", Answer: "b", Category: "6", Difficulty: 1},
		models.Question{ID: 12, Question: "c", Answer: "c", Category: "4", Difficulty: 1},
	)

	cases := []struct {
		name     string
		category string
		exclude  []int64
		want     []int64
	}{
		{name: "AllNoExclude", category: "", exclude: nil, want: []int64{10, 11, 12}},
		{name: "AllExclude", category: "", exclude: []int64{10, 12}, want: []int64{11}},
		{name: "CategoryExclude", category: "6", exclude: []int64{10}, want: []int64{11}},
		{name: "CategoryExhausted", category: "6", exclude: []int64{10, 11}, want: nil},
		{name: "UnknownCategory", category: "9", exclude: nil, want: nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			qs, err := repo.ListQuizCandidates(ctx, c.category, c.exclude)
			if err != nil {
				t.Fatalf("ListQuizCandidates error: %v", err)
			}
			if len(qs) != len(c.want) {
				t.Fatalf("want %v got %d questions", c.want, len(qs))
			}
			for i, id := range c.want {
				if qs[i].ID != id {
					t.Fatalf("position %d: want id %d got %d", i, id, qs[i].ID)
				}
			}
		})
	}
}

func TestCategories(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := repo.CreateCategory(ctx, nil); err == nil {
		t.Fatalf("expected error when creating nil category")
	}

	cnt, err := repo.CountCategories(ctx)
	if err != nil || cnt != 0 {
		t.Fatalf("CountCategories on empty table: got %d, %v", cnt, err)
	}

	for _, c := range []models.Category{{ID: 2, Type: "Art"}, {ID: 1, Type: "Science"}} {
		if _, err := repo.CreateCategory(ctx, &c); err != nil {
			t.Fatalf("CreateCategory error: %v", err)
		}
	}

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories error: %v", err)
	}
	if len(cats) != 2 || cats[0].ID != 1 || cats[0].Type != "Science" || cats[1].Type != "Art" {
		t.Fatalf("unexpected categories: %#v", cats)
	}

	cnt, err = repo.CountCategories(ctx)
	if err != nil || cnt != 2 {
		t.Fatalf("CountCategories: got %d, %v", cnt, err)
	}
}

func TestSeedLoad_RollsBackOnConflict(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	// an existing row with a seeded id makes the question inserts fail
	mustCreate(t, repo, models.Question{ID: 23, Question: "q", Answer: "a", Category: "1", Difficulty: 1})

	if _, err := seed.Load(ctx, dbfs.SeedFiles, repo, logger); err == nil {
		t.Fatalf("expected seed to fail on the duplicate id")
	}
	if cats, _ := repo.CountCategories(ctx); cats != 0 {
		t.Fatalf("expected categories rolled back, got %d", cats)
	}
	if qs, _ := repo.CountQuestions(ctx); qs != 1 {
		t.Fatalf("expected only the pre-existing question, got %d", qs)
	}

	if err := repo.DeleteQuestion(ctx, 23); err != nil {
		t.Fatalf("DeleteQuestion error: %v", err)
	}
	applied, err := seed.Load(ctx, dbfs.SeedFiles, repo, logger)
	if err != nil || !applied {
		t.Fatalf("expected retry to seed, applied=%v err=%v", applied, err)
	}
	if qs, _ := repo.CountQuestions(ctx); qs != 19 {
		t.Fatalf("expected 19 questions after retry, got %d", qs)
	}
}
