package models

import (
	"database/sql"
	"time"
)

// User is the users table row in the primary backend.
type User struct {
	StudentID    string    `db:"student_id"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	Language     string    `db:"language"`
	CreatedAt    time.Time `db:"created_at"`
}

// Word is the words table row. The primary backend assigns ids on insert;
// they are independent of the fallback file's sequential ids.
type Word struct {
	ID           int64        `db:"id"`
	UserID       string       `db:"user_id"`
	Lesson       int          `db:"lesson"`
	Word         string       `db:"word"`
	Pinyin       string       `db:"pinyin"`
	Meaning      string       `db:"meaning"`
	CorrectCount int          `db:"correct_count"`
	MissCount    int          `db:"miss_count"`
	LastReviewed sql.NullTime `db:"last_reviewed"`
}

// Grammar is the grammar table row. The example columns keep the original
// data file names (source-language / target-language example sentence).
type Grammar struct {
	ID          int64  `db:"id"`
	UserID      string `db:"user_id"`
	Lesson      int    `db:"lesson"`
	Title       string `db:"title"`
	Description string `db:"description"`
	ExampleCN   string `db:"example_cn"`
	ExampleJP   string `db:"example_jp"`
}
