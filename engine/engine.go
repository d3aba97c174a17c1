package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/thisisjab/exprzilla/interp"
)

type Config struct {
	WorkersCount uint
	// BufferSize is the capacity of the pending jobs channel.
	BufferSize uint
}

func (c Config) validate() error {
	if c.WorkersCount == 0 {
		return errors.New("workers count cannot be zero")
	}

	return nil
}

// Evaluator is the contract the engine needs from the interpreter.
type Evaluator interface {
	Run(ctx context.Context, src string) (interp.Result, error)
}

// Job is one independent source text.
type Job struct {
	ID     int
	Line   int
	Source string
}

type Result struct {
	Job   Job
	Value int32
	Err   error
}

// Engine evaluates many independent sources with a fixed pool of workers.
// Runs share no state, so results do not depend on the scheduling order.
type Engine struct {
	cfg       Config
	logger    *slog.Logger
	evaluator Evaluator
}

func New(cfg Config, evaluator Evaluator, logger *slog.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if evaluator == nil {
		return nil, errors.New("no evaluator is configured")
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		cfg:       cfg,
		logger:    logger,
		evaluator: evaluator,
	}, nil
}

// Run evaluates every job and returns the results in the order of jobs.
// Per-job failures are reported in Result.Err; the returned error is only set
// when ctx is cancelled before all jobs finished.
func (e *Engine) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	pending := e.feed(ctx, jobs)

	var wg sync.WaitGroup

	spawnWorker := func(workerId int) {
		for {
			select {
			case <-ctx.Done():
				return
			case idx, ok := <-pending:
				if !ok {
					// The jobs channel is closed and empty. No more work.
					return
				}

				job := jobs[idx]
				res, err := e.evaluator.Run(ctx, job.Source)
				results[idx] = Result{Job: job, Value: res.Value, Err: err}

				e.logger.Debug("evaluated job.", "worker_id", workerId, "job_id", job.ID, "line", job.Line, "error", err)
			}
		}
	}

	workers := int(e.cfg.WorkersCount)
	if workers > len(jobs) {
		workers = len(jobs)
	}

	for i := 0; i < workers; i++ {
		wg.Go(func() {
			spawnWorker(i)
		})
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}

// feed pushes job indexes so each worker writes only its own result slot.
func (e *Engine) feed(ctx context.Context, jobs []Job) <-chan int {
	pending := make(chan int, e.cfg.BufferSize)
	e.logger.Debug("created pending jobs channel.", "size", e.cfg.BufferSize, "jobs", len(jobs))

	go func() {
		defer close(pending)

		for i := range jobs {
			select {
			case pending <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	return pending
}

// JobsFromLines turns every non-blank line of text into a job. Line numbers
// are 1-based and refer to text.
func JobsFromLines(text string) ([]Job, error) {
	var jobs []Job

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++

		src := scanner.Text()
		if strings.TrimSpace(src) == "" {
			continue
		}

		jobs = append(jobs, Job{ID: len(jobs), Line: line, Source: src})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot split lines: %w", err)
	}

	return jobs, nil
}
