package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/gridbatch/tracker/internal/api"
	"github.com/gridbatch/tracker/internal/backend"
	"github.com/gridbatch/tracker/internal/config"
	"github.com/gridbatch/tracker/internal/job"
	"github.com/gridbatch/tracker/internal/progress"
	"github.com/gridbatch/tracker/internal/runner"
)

func main() {
	kind := flag.String("backend", "local", "Backend kind: local or slurm")
	image := flag.String("image", "", "Container image to wrap each job in")
	defaultsPath := flag.String("defaults", "", "YAML backend defaults synced into every job")
	tag := flag.String("tag", "", "Tag applied to every job")
	bars := flag.Bool("bars", false, "Show per-tag progress bars instead of a status line")
	manual := flag.Bool("manual", false, "Append the interactive update hint to the status line")
	serve := flag.Bool("serve", false, "Serve the status API while jobs run")
	flag.Parse()

	scripts := flag.Args()
	if len(scripts) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tracker [flags] script...")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := os.MkdirAll(cfg.ScriptDir, 0o755); err != nil {
		log.Fatalf("create script dir: %v", err)
	}

	var defaults *backend.Options
	if *defaultsPath != "" {
		var err error
		defaults, err = backend.LoadDefaults(*defaultsPath)
		if err != nil {
			log.Fatalf("load defaults: %v", err)
		}
	}

	jobs := job.NewCollection()
	style := progress.StyleLine
	if *bars {
		style = progress.StyleBars
	}
	reporter := progress.New(jobs, progress.Options{
		Style:     style,
		Verbosity: cfg.Verbosity,
		Manual:    *manual,
	})

	run := runner.New(jobs, reporter, runner.Options{
		Interval: cfg.PollInterval,
		Mode:     cfg.Mode,
		Decide:   promptDecision,
	})

	for _, path := range scripts {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		opts := backend.Options{Name: name, RunScript: path}

		var b backend.Backend
		var typ job.Type
		switch *kind {
		case "slurm":
			b = backend.NewSlurm(opts)
			typ = job.TypeBatch
		case "local":
			b = backend.NewLocal(opts)
			typ = job.TypeLocal
		default:
			log.Fatalf("unknown backend kind: %s", *kind)
		}
		if defaults != nil {
			if err := b.Options().Sync(defaults); err != nil {
				log.Fatalf("sync defaults for %s: %v", name, err)
			}
		}

		var tags []string
		if *tag != "" {
			tags = append(tags, *tag)
		}
		if err := run.Add(job.New(name, typ, tags...), b); err != nil {
			log.Fatalf("add job: %v", err)
		}
	}

	if *serve {
		server := &http.Server{
			Addr:         cfg.Addr(),
			Handler:      api.NewRouter(cfg, jobs),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			log.Printf("Status API listening on %s", cfg.Addr())
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Status API error: %v", err)
			}
		}()
		defer server.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run.Run(ctx, cfg.ScriptDir, *image); err != nil {
		log.Fatalf("run: %v", err)
	}
}

// promptDecision asks a yes/no question on the console.
func promptDecision(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	fmt.Printf("%s [y/n]: ", question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
