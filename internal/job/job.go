package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusConfigured Status = "configured"
	StatusSubmitted  Status = "submitted"
	StatusRunning    Status = "running"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no further status change is expected.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type Type string

const (
	TypeLocal Type = "local"
	TypeBatch Type = "batch"
)

type Job struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Tags      []string  `json:"tags,omitempty"`
	Status    Status    `json:"status"`
	ExitCode  int       `json:"exit_code"`
	CreatedAt time.Time `json:"created_at"`
}

func New(name string, typ Type, tags ...string) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      typ,
		Tags:      tags,
		Status:    StatusConfigured,
		CreatedAt: time.Now().UTC(),
	}
}

func (j *Job) HasTag(tag string) bool {
	for _, t := range j.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
