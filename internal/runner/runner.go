package runner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gridbatch/tracker/internal/backend"
	"github.com/gridbatch/tracker/internal/config"
	"github.com/gridbatch/tracker/internal/job"
	"github.com/gridbatch/tracker/internal/progress"
)

type Options struct {
	Interval time.Duration
	Mode     config.Mode
	// Decide is consulted when a required command is missing; nil declines.
	Decide backend.Decider
}

// Runner owns the synchronous submit-and-poll loop: prepare every script,
// check tooling, submit, then sleep-and-update until all jobs are terminal.
type Runner struct {
	jobs     *job.Collection
	backends map[string]backend.Backend
	reporter *progress.Reporter
	opts     Options
}

func New(jobs *job.Collection, reporter *progress.Reporter, opts Options) *Runner {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeRun
	}
	return &Runner{
		jobs:     jobs,
		backends: make(map[string]backend.Backend),
		reporter: reporter,
		opts:     opts,
	}
}

// Add registers a job together with the backend that will run it.
func (r *Runner) Add(j *job.Job, b backend.Backend) error {
	if err := r.jobs.Add(j); err != nil {
		return err
	}
	r.backends[j.Name] = b
	return nil
}

// Run drives every registered job to a terminal status. scriptDir receives
// the prepared scripts; containerImage, when non-empty, gets the isolation
// guard injected into each of them.
//
// A backend whose Status stays at the neutral empty value (the Stub
// capability set, outside test mode) never reaches a terminal status on its
// own; the caller bounds such runs through ctx, and cancellation marks the
// remaining jobs cancelled.
func (r *Runner) Run(ctx context.Context, scriptDir, containerImage string) error {
	for _, name := range r.jobs.Names() {
		b := r.backends[name]
		if err := b.Options().PrepareScript(scriptDir, containerImage); err != nil {
			return fmt.Errorf("prepare %s: %w", name, err)
		}
		mode, err := b.Options().CheckCommands(r.opts.Mode, r.opts.Decide)
		if err != nil {
			return err
		}
		r.opts.Mode = mode
	}

	for _, name := range r.jobs.Names() {
		if r.opts.Mode.Test() {
			// Submission disabled: complete the job without running it.
			r.jobs.SetStatus(name, job.StatusSuccess)
			continue
		}
		if _, err := r.backends[name].Submit(ctx); err != nil {
			log.Printf("submit %s: %v", name, err)
			r.jobs.SetStatus(name, job.StatusFailed)
			continue
		}
		r.jobs.SetStatus(name, job.StatusRunning)
	}

	r.reporter.Start()
	for !r.done() {
		select {
		case <-ctx.Done():
			r.cancel()
			r.reporter.Stop()
			return ctx.Err()
		case <-time.After(r.opts.Interval):
		}
		r.poll(ctx)
		r.reporter.Update()
	}
	r.reporter.Stop()
	return nil
}

// Mode returns the execution mode, which the command check may have
// downgraded to test mode during Run.
func (r *Runner) Mode() config.Mode {
	return r.opts.Mode
}

func (r *Runner) poll(ctx context.Context) {
	for _, name := range r.jobs.Names() {
		j, ok := r.jobs.Get(name)
		if !ok || j.Status.Terminal() {
			continue
		}
		b := r.backends[name]
		status := b.Status(ctx)
		if status == "" || status == j.Status {
			continue
		}
		r.jobs.SetStatus(name, status)
		if status.Terminal() {
			if code, err := b.Exitcode(ctx); err == nil {
				r.jobs.SetExitCode(name, code)
			}
		}
	}
}

func (r *Runner) cancel() {
	for _, name := range r.jobs.Names() {
		j, ok := r.jobs.Get(name)
		if !ok || j.Status.Terminal() {
			continue
		}
		if err := r.backends[name].Cancel(context.Background()); err != nil {
			log.Printf("cancel %s: %v", name, err)
		}
		r.jobs.SetStatus(name, job.StatusCancelled)
	}
}

func (r *Runner) done() bool {
	for _, j := range r.jobs.Jobs() {
		if !j.Status.Terminal() {
			return false
		}
	}
	return true
}
