package db

import (
	"errors"
	"strings"
)

var ErrNoFile = errors.New("dsn does not name a database file")

// FilePath extracts the database file from a SQLite DSN such as
// "trivia.db" or "file:trivia.db?_pragma=busy_timeout(5000)".
func FilePath(dsn string) (string, error) {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return "", ErrNoFile
	}
	return path, nil
}
