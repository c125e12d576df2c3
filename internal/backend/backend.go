package backend

import (
	"context"

	"github.com/gridbatch/tracker/internal/job"
)

// Backend is the capability set a scheduler kind implements. One instance
// is bound to one job for its whole lifecycle.
type Backend interface {
	Options() *Options
	Submit(ctx context.Context) (int, error)
	Cancel(ctx context.Context) error
	Status(ctx context.Context) job.Status
	Exitcode(ctx context.Context) (int, error)
}

// Stub implements every capability with a neutral return. Concrete kinds
// embed it and override what they actually support.
type Stub struct {
	opts Options
}

func (s *Stub) Options() *Options { return &s.opts }

func (s *Stub) Submit(ctx context.Context) (int, error) { return 0, nil }

func (s *Stub) Cancel(ctx context.Context) error { return nil }

func (s *Stub) Status(ctx context.Context) job.Status { return "" }

func (s *Stub) Exitcode(ctx context.Context) (int, error) { return 0, nil }
