package queue

import (
	"errors"
	"time"
)

// ErrNoJob is returned by Next when no job is pending.
var ErrNoJob = errors.New("no pending job")

// ErrNotFound is returned when a job id is unknown.
var ErrNotFound = errors.New("job not found")

// Status of a resize job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is one queued resize of a single uploaded image.
type Job struct {
	ID           string    `json:"id"`
	Path         string    `json:"path"`
	Status       Status    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Attempts     int       `json:"attempts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Stats holds job counts per status.
type Stats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}
