package graph

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Executor runs a validated TaskGraph, either strictly in topological order
// or wave-parallel with a bounded worker pool. Each Executor owns its own
// pool sizing; there is no process-wide shared pool, so multiple graphs can
// run concurrently without interference.
type Executor struct {
	// maxWorkers bounds concurrent actions within a wave.
	maxWorkers int
	// parallel selects wave-parallel execution over sequential.
	parallel bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithMaxWorkers sets the worker pool size. Values below 1 keep the default
// of the available hardware parallelism.
func WithMaxWorkers(n int) ExecutorOption {
	return func(e *Executor) {
		if n >= 1 {
			e.maxWorkers = n
		}
	}
}

// WithParallel selects wave-parallel (true) or sequential (false) execution.
func WithParallel(parallel bool) ExecutorOption {
	return func(e *Executor) {
		e.parallel = parallel
	}
}

// NewExecutor creates an Executor. Defaults: parallel execution with
// runtime.NumCPU() workers.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		maxWorkers: runtime.NumCPU(),
		parallel:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxWorkers returns the configured worker pool size.
func (e *Executor) MaxWorkers() int { return e.maxWorkers }

// Parallel returns whether wave-parallel execution is enabled.
func (e *Executor) Parallel() bool { return e.parallel }

// TaskFailure pairs a failed task with the error its action returned.
type TaskFailure struct {
	// ID is the failed task's ID.
	ID int
	// Name is the failed task's display name.
	Name string
	// Err is the error returned (or panicked) by the task's action.
	Err error
}

// Summary reports the outcome of a run.
type Summary struct {
	// Succeeded is the number of tasks whose action returned a result.
	Succeeded int
	// Failed is the number of tasks whose action returned an error.
	Failed int
	// Skipped is the number of tasks not run because a dependency failed.
	Skipped int
	// Failures lists each failed task with its recorded error, in ID order.
	Failures []TaskFailure
}

// Execute runs the graph and returns a summary of per-task outcomes.
//
// Structural errors (a cycle found during linearization) and context
// cancellation between dispatches are the only conditions that return a
// non-nil error; task-level failures are recorded on the task, propagated to
// dependents as skips, and aggregated into the summary. A started action is
// never interrupted: cancellation takes effect at the next dispatch point,
// and a hung action blocks its wave barrier indefinitely.
func (e *Executor) Execute(ctx context.Context, g *TaskGraph) (*Summary, error) {
	order, err := g.Linearize()
	if err != nil {
		return nil, err
	}

	if e.parallel {
		err = e.runWaves(ctx, g)
	} else {
		err = e.runSequential(ctx, g, order)
	}
	if err != nil {
		return nil, err
	}

	return summarize(g), nil
}

// runSequential runs the execution order strictly in sequence. Dependency
// results are always available because predecessors ran earlier in the same
// order.
func (e *Executor) runSequential(ctx context.Context, g *TaskGraph, order []int) error {
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := g.tasks[id-1]
		if dep, blocked := failedDependency(g, t); blocked {
			skip(t, dep)
			continue
		}
		run(t)
	}
	return nil
}

// runWaves processes levels in ascending order, dispatching each wave's
// runnable tasks to an errgroup bounded at maxWorkers and waiting for the
// whole wave before releasing the next. Tasks are submitted in ascending ID
// order, so a wave wider than the pool queues FIFO by ID.
func (e *Executor) runWaves(ctx context.Context, g *TaskGraph) error {
	waves, err := g.Waves()
	if err != nil {
		return err
	}

	for _, wave := range waves {
		if err := ctx.Err(); err != nil {
			return err
		}

		var eg errgroup.Group
		eg.SetLimit(e.maxWorkers)
		for _, id := range wave {
			t := g.tasks[id-1]
			// Dependencies finished in earlier waves, so the skip decision
			// is safe to take on the coordinator before dispatch.
			if dep, blocked := failedDependency(g, t); blocked {
				skip(t, dep)
				continue
			}
			eg.Go(func() error {
				run(t)
				return nil
			})
		}
		// Wave barrier: every dispatched action has returned before the
		// next wave starts.
		if err := eg.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// failedDependency reports whether any direct dependency of t did not
// succeed, returning the first such dependency ID. Transitive propagation
// falls out naturally: a skipped dependency blocks its dependents too.
func failedDependency(g *TaskGraph, t *Task) (int, bool) {
	for _, dep := range t.deps {
		switch g.tasks[dep-1].status {
		case StatusFailed, StatusSkipped:
			return dep, true
		}
	}
	return 0, false
}

// run invokes the task's action exactly once and records the outcome. A
// panicking action is recorded as a failure rather than tearing down the
// worker pool.
func run(t *Task) {
	result, err := invoke(t.action)
	if err != nil {
		t.status = StatusFailed
		t.err = err
		return
	}
	t.status = StatusSucceeded
	t.result = result
}

// skip marks a task as not run due to a failed or skipped dependency.
func skip(t *Task, dep int) {
	t.status = StatusSkipped
	t.err = &DependencyFailedError{TaskID: t.ID, DependencyID: dep}
}

// invoke calls the action, converting a panic into an error. A nil action is
// a no-op placeholder.
func invoke(action Action) (result any, err error) {
	if action == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task action panicked: %v", r)
		}
	}()
	return action()
}

// summarize aggregates per-task outcomes in ID order.
func summarize(g *TaskGraph) *Summary {
	s := &Summary{}
	for _, t := range g.tasks {
		switch t.status {
		case StatusSucceeded:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
			s.Failures = append(s.Failures, TaskFailure{ID: t.ID, Name: t.Name, Err: t.err})
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}
