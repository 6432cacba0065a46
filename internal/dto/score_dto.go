package dto

// SortingSubmission is the body for POST /api/score/sorting.
type SortingSubmission struct {
	Words         []string `json:"words" validate:"required"`
	QuestionID    string   `json:"question_id" validate:"required"`
	ExpectedOrder []string `json:"expected_order" validate:"required"`
}

// SortingResult is the synchronous sorting score.
type SortingResult struct {
	QuestionID    string   `json:"question_id"`
	IsCorrect     bool     `json:"is_correct"`
	UserOrder     []string `json:"user_order"`
	ExpectedOrder []string `json:"expected_order"`
	Feedback      string   `json:"feedback"`
}

// HandwritingSubmission is the body for POST /api/score/handwriting.
// ImageData is base64, optionally with a data-URL prefix.
type HandwritingSubmission struct {
	ImageData      string `json:"image_data" validate:"required"`
	QuestionID     string `json:"question_id" validate:"required"`
	ExpectedAnswer string `json:"expected_answer" validate:"required"`
}

// WritingSubmission is the body for POST /api/score/writing.
type WritingSubmission struct {
	Text           string `json:"text" validate:"required"`
	QuestionID     string `json:"question_id" validate:"required"`
	ExpectedAnswer string `json:"expected_answer"`
}

// AsyncAccepted acknowledges an accepted scoring job.
type AsyncAccepted struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}
