package dto

import "time"

// WordResponse is one vocabulary entry as served to the client.
type WordResponse struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"user_id"`
	Lesson       int        `json:"lesson"`
	Word         string     `json:"word"`
	Pinyin       string     `json:"pinyin"`
	Meaning      string     `json:"meaning"`
	CorrectCount int        `json:"correct_count"`
	MissCount    int        `json:"miss_count"`
	LastReviewed *time.Time `json:"last_reviewed"`
}

// GrammarResponse is one grammar entry as served to the client.
// The example field names are kept from the original data files.
type GrammarResponse struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	Lesson      int    `json:"lesson"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ExampleCN   string `json:"example_cn"`
	ExampleJP   string `json:"example_jp"`
}

// UploadResponse is returned by POST /api/admin/upload-textbook.
type UploadResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Lesson  int         `json:"lesson"`
	Type    string      `json:"type"`
}
