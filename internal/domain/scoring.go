package domain

import "context"

// JobStatus is the lifecycle state of an async scoring job.
// The only legal transition is processing -> completed or processing -> error;
// terminal states are immutable.
type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobError      JobStatus = "error"
)

// Scoring job kinds. The kind prefixes the task id.
const (
	JobKindHandwriting = "handwriting"
	JobKindWriting     = "writing"
)

// ScoringJob is one unit of asynchronous grading work. The payload fields
// mirror what the grading work produced: RecognizedText for handwriting,
// Result for writing, Error for a failed run.
type ScoringJob struct {
	TaskID         string      `json:"task_id"`
	QuestionID     string      `json:"question_id"`
	Status         JobStatus   `json:"status"`
	RecognizedText string      `json:"recognized_text,omitempty"`
	Result         interface{} `json:"result,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// ModelGateway is the external generative model the scoring and ingestion
// paths call into. Implementations return the raw text response.
type ModelGateway interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateFromImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}
