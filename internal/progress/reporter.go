package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/gridbatch/tracker/internal/job"
)

// Style selects the rendering strategy once, at construction.
type Style string

const (
	// StyleLine rewrites a single status line in place.
	StyleLine Style = "line"
	// StyleBars shows one live bar per tracked tag plus an aggregate.
	StyleBars Style = "bars"
)

// aggregate is the bucket covering the whole collection; tag buckets sit
// next to it.
const aggregate = "all"

type Options struct {
	Style     Style
	Verbosity int
	// Manual appends an interactive hint to the line-mode output.
	Manual bool
	// Out defaults to stdout.
	Out io.Writer
}

// Reporter aggregates per-status, per-tag job counts into live indicators
// and a final summary. It is driven by the caller: Start once, Update per
// poll, Stop at the end. Not safe for use from multiple goroutines.
type Reporter struct {
	jobs *job.Collection
	opts Options

	buckets []string
	bars    map[string]*progressbar.ProgressBar
	shown   map[string]int

	started time.Time
	elapsed time.Duration
}

func New(jobs *job.Collection, opts Options) *Reporter {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Style == "" {
		opts.Style = StyleLine
	}
	return &Reporter{
		jobs:  jobs,
		opts:  opts,
		shown: make(map[string]int),
	}
}

// Start records the start time and renders the initial state. In bar mode
// the indicators are fast-forwarded to the jobs that already finished, so a
// resumed run does not start from zero.
func (r *Reporter) Start() {
	r.started = time.Now()
	if r.opts.Style != StyleBars {
		r.printLine()
		return
	}
	r.setupBars()
	r.advance(aggregate, r.jobs.CountStatus(job.StatusSuccess))
	for _, tag := range r.buckets[1:] {
		r.advance(tag, len(r.jobs.Match(job.Filter{
			Tags:   map[string]struct{}{tag: {}},
			States: map[job.Status]struct{}{job.StatusSuccess: {}},
		})))
	}
}

// Update re-renders from the current collection state.
func (r *Reporter) Update() {
	if r.opts.Style == StyleBars {
		r.updateBars()
		return
	}
	r.printLine()
}

// Stop performs a final update, freezes the elapsed time, closes the bars
// and prints the summary.
func (r *Reporter) Stop() {
	r.Update()
	r.elapsed = time.Since(r.started)
	if r.opts.Style == StyleBars {
		for _, bar := range r.bars {
			bar.Close()
		}
	}
	fmt.Fprintln(r.opts.Out)
	fmt.Fprint(r.opts.Out, r.Summary())
}

func (r *Reporter) setupBars() {
	r.buckets = append([]string{aggregate}, r.jobs.Tags()...)
	r.bars = make(map[string]*progressbar.ProgressBar)
	r.bars[aggregate] = r.newBar(r.jobs.Len(), aggregate)
	for _, tag := range r.buckets[1:] {
		r.bars[tag] = r.newBar(r.jobs.CountTag(tag), tag)
	}
}

func (r *Reporter) newBar(total int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.opts.Out),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
	)
}

func (r *Reporter) updateBars() {
	for _, bucket := range r.buckets {
		success, failed := r.bucketCounts(bucket)
		r.advance(bucket, success+failed)
		r.bars[bucket].Describe(fmt.Sprintf("%s [success: %d, failed: %d]", bucket, success, failed))
	}
}

// advance moves a bucket's indicator to target. Indicators never move
// backwards: a requeued job can shrink the underlying count between polls,
// and the displayed count deliberately stays put.
func (r *Reporter) advance(bucket string, target int) {
	if delta := target - r.shown[bucket]; delta > 0 {
		if bar, ok := r.bars[bucket]; ok {
			bar.Add(delta)
		}
		r.shown[bucket] = target
	}
}

func (r *Reporter) bucketCounts(bucket string) (success, failed int) {
	if bucket == aggregate {
		return r.jobs.CountStatus(job.StatusSuccess), r.jobs.CountStatus(job.StatusFailed)
	}
	tags := map[string]struct{}{bucket: {}}
	success = len(r.jobs.Match(job.Filter{Tags: tags, States: map[job.Status]struct{}{job.StatusSuccess: {}}}))
	failed = len(r.jobs.Match(job.Filter{Tags: tags, States: map[job.Status]struct{}{job.StatusFailed: {}}}))
	return success, failed
}

func (r *Reporter) printLine() {
	line := r.statusLine()
	if r.opts.Manual {
		line += " - press enter to update status"
	}
	fmt.Fprint(r.opts.Out, "\r"+line)
}

func (r *Reporter) statusLine() string {
	var b strings.Builder
	b.WriteString("Jobs ")
	if r.opts.Verbosity > 1 {
		running := 0
		local := 0
		for _, j := range r.jobs.Jobs() {
			if j.Status != job.StatusRunning {
				continue
			}
			running++
			if j.Type == job.TypeLocal {
				local++
			}
		}
		fmt.Fprintf(&b, "running (batch/local/all): (%d/%d/%d); ", running-local, local, running)
	}
	fmt.Fprintf(&b, "(success/fail/all): (%d/%d/%d)",
		r.jobs.CountStatus(job.StatusSuccess),
		r.jobs.CountStatus(job.StatusFailed),
		r.jobs.Len())
	return b.String()
}

// Summary renders the final multi-line block: totals split into batch vs.
// local execution, the failed-job names at higher verbosity, and the
// elapsed wall time.
func (r *Reporter) Summary() string {
	var successLocal, successBatch, failLocal, failBatch int
	var failedNames []string
	for _, j := range r.jobs.Jobs() {
		switch j.Status {
		case job.StatusSuccess:
			if j.Type == job.TypeLocal {
				successLocal++
			} else {
				successBatch++
			}
		case job.StatusFailed, job.StatusCancelled:
			failedNames = append(failedNames, j.Name)
			if j.Type == job.TypeLocal {
				failLocal++
			} else {
				failBatch++
			}
		}
	}
	local := r.jobs.CountType(job.TypeLocal)
	total := r.jobs.Len()

	var b strings.Builder
	fmt.Fprintf(&b, "Jobs processed (batch/local/all): (%d/%d/%d)\n", total-local, local, total)
	fmt.Fprintf(&b, "     successful (batch/local/all): (%d/%d/%d)\n", successBatch, successLocal, successBatch+successLocal)
	if len(failedNames) > 0 {
		fmt.Fprintf(&b, "     failed (batch/local/all): (%d/%d/%d)\n", failBatch, failLocal, failBatch+failLocal)
		if r.opts.Verbosity > 1 {
			fmt.Fprintf(&b, "Failed jobs: %s\n", strings.Join(failedNames, " "))
		}
	}
	fmt.Fprintf(&b, "Time spent: %.1f s\n", r.elapsed.Seconds())
	return b.String()
}
