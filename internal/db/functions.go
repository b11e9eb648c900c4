package db

import (
	"database/sql/driver"

	"modernc.org/sqlite"

	"github.com/garnizeh/trivia/internal/textmatch"
)

// ContainsFold is the SQL function contains_fold(text, term): 1 when term
// occurs in text under LIKE wildcards, ignoring case across Unicode. SQLite's
// own LOWER and LIKE fold ASCII only. NULL in either argument yields NULL.
const ContainsFold = "contains_fold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(ContainsFold, 2, containsFold); err != nil {
		panic(err)
	}
}

func containsFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	s, ok := text(args[0])
	if !ok {
		return nil, nil
	}
	term, ok := text(args[1])
	if !ok {
		return nil, nil
	}
	if textmatch.Contains(s, term) {
		return int64(1), nil
	}
	return int64(0), nil
}

func text(v driver.Value) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	}
	return "", false
}
