package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gridbatch/tracker/internal/job"
)

// Local runs the prepared script as a child process on the current host.
// Status never blocks: a reaper goroutine waits for the process and closes
// done once the exit code is recorded.
type Local struct {
	opts Options
	cmd  *exec.Cmd
	done chan struct{}
	exit int
}

func NewLocal(opts Options) *Local {
	opts.Kind = KindLocal
	return &Local{opts: opts}
}

func (l *Local) Options() *Options { return &l.opts }

func (l *Local) Submit(ctx context.Context) (int, error) {
	if !l.opts.Prepared() {
		return 0, fmt.Errorf("(%s) run script not prepared", l.opts.Name)
	}
	var args []string
	if l.opts.RunArgs != "" {
		args = strings.Fields(l.opts.RunArgs)
	}
	cmd := exec.CommandContext(ctx, l.opts.RunScript, args...)

	logFile, err := os.Create(l.opts.RunScript + ".log")
	if err != nil {
		return 0, fmt.Errorf("create job log: %w", err)
	}
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return 0, fmt.Errorf("start %s: %w", l.opts.Name, err)
	}
	l.cmd = cmd
	l.done = make(chan struct{})
	go func() {
		defer logFile.Close()
		cmd.Wait()
		l.exit = cmd.ProcessState.ExitCode()
		close(l.done)
	}()
	return cmd.Process.Pid, nil
}

func (l *Local) Cancel(ctx context.Context) error {
	if l.cmd == nil || l.cmd.Process == nil {
		return nil
	}
	select {
	case <-l.done:
		return nil
	default:
		return l.cmd.Process.Kill()
	}
}

func (l *Local) Status(ctx context.Context) job.Status {
	if l.cmd == nil {
		return ""
	}
	select {
	case <-l.done:
		if l.exit == 0 {
			return job.StatusSuccess
		}
		return job.StatusFailed
	default:
		return job.StatusRunning
	}
}

func (l *Local) Exitcode(ctx context.Context) (int, error) {
	if l.cmd == nil {
		return 0, fmt.Errorf("(%s) not submitted", l.opts.Name)
	}
	select {
	case <-l.done:
		return l.exit, nil
	default:
		return 0, fmt.Errorf("(%s) still running", l.opts.Name)
	}
}
