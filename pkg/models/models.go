package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Question is a single trivia question. Category holds the referenced
// category id as text; it is not checked against the categories table.
type Question struct {
	ID         int64  `json:"id" db:"id" gorm:"primaryKey"`
	Question   string `json:"question" db:"question" validate:"required"`
	Answer     string `json:"answer" db:"answer" validate:"required"`
	Category   string `json:"category" db:"category" validate:"required"`
	Difficulty int    `json:"difficulty" db:"difficulty" validate:"required"`
}

type Category struct {
	ID   int64  `json:"id" db:"id" gorm:"primaryKey"`
	Type string `json:"type" db:"type" validate:"required"`
}
