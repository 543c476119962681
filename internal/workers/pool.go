package workers

import (
	"context"
	"time"

	"github.com/alimgiray/coursetrack/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Task is one unit of upstream work, usually a single Bitbucket API call chain
type Task func(ctx context.Context) error

// Pool runs tasks with a fixed upper bound on concurrency so the Bitbucket API never sees
// an unbounded burst of requests. A failing task does not cancel its siblings.
type Pool struct {
	name  string
	limit int
}

// NewPool creates a pool. limit below 1 is treated as 1, i.e. sequential execution.
func NewPool(name string, limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{name: name, limit: limit}
}

// Limit returns the maximum number of tasks running at once
func (p *Pool) Limit() int {
	return p.limit
}

// Run executes all tasks and returns their errors by task index. Tasks that had not started
// when ctx was cancelled report ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(p.limit)

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = task(ctx)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	logger.WithField("pool", p.name).
		WithField("tasks", len(tasks)).
		WithField("failed", failed).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		Debug("Pool run finished")

	return errs
}

// Map applies fn to every item through the pool, keeping results aligned with items
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	tasks := make([]Task, len(items))
	for i, item := range items {
		i, item := i, item
		tasks[i] = func(ctx context.Context) error {
			result, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		}
	}
	return results, p.Run(ctx, tasks)
}
