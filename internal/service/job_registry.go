package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// JobResult is what a scoring work function produces on success.
type JobResult struct {
	RecognizedText string
	Result         interface{}
}

// JobRegistry owns all ScoringJob records for the life of the process.
// Each job's terminal state is written exactly once by exactly one
// background goroutine; polls read concurrently. A weighted semaphore caps
// in-flight external model calls so fan-out stays bounded.
type JobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]domain.ScoringJob

	sem     *semaphore.Weighted
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewJobRegistry creates a registry allowing maxConcurrent background
// model calls, each bounded by timeout.
func NewJobRegistry(maxConcurrent int64, timeout time.Duration, logger *zap.Logger) *JobRegistry {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &JobRegistry{
		jobs:    make(map[string]domain.ScoringJob),
		sem:     semaphore.NewWeighted(maxConcurrent),
		timeout: timeout,
		logger:  logger,
	}
}

// Submit registers a processing job and schedules work to run without
// blocking the caller. The returned task id is unique among registered
// jobs. Failures inside work land in the job's terminal error state; they
// are never propagated anywhere else.
func (r *JobRegistry) Submit(kind, questionID string, work func(ctx context.Context) (JobResult, error)) string {
	taskID := fmt.Sprintf("%s_%s_%s", kind, questionID, util.NewULID())

	r.mu.Lock()
	r.jobs[taskID] = domain.ScoringJob{
		TaskID:     taskID,
		QuestionID: questionID,
		Status:     domain.JobProcessing,
	}
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.sem.Acquire(context.Background(), 1); err != nil {
			r.complete(taskID, JobResult{}, err)
			return
		}
		defer r.sem.Release(1)

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		res, err := work(ctx)
		r.complete(taskID, res, err)
	}()

	return taskID
}

// Poll returns a copy of the job, or false for an unknown id.
func (r *JobRegistry) Poll(taskID string) (domain.ScoringJob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[taskID]
	return job, ok
}

// Wait blocks until all submitted work has reached a terminal state.
func (r *JobRegistry) Wait() {
	r.wg.Wait()
}

// complete writes the terminal record. Terminal states are immutable: a
// second write for the same id is dropped.
func (r *JobRegistry) complete(taskID string, res JobResult, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[taskID]
	if !ok || job.Status != domain.JobProcessing {
		return
	}
	if err != nil {
		job.Status = domain.JobError
		job.Error = err.Error()
		r.logger.Warn("scoring job failed",
			zap.String("task_id", taskID),
			zap.Error(err))
	} else {
		job.Status = domain.JobCompleted
		job.RecognizedText = res.RecognizedText
		job.Result = res.Result
	}
	r.jobs[taskID] = job
}
