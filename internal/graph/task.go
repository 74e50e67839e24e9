package graph

// Action is the body of a task: a zero-argument callable producing a result
// or an error. Actions are supplied by the caller and invoked at most once
// per run; the executor makes no assumptions about what they do beyond that.
type Action func() (any, error)

// Status represents the lifecycle state of a task within a run.
type Status int

const (
	// StatusPending indicates the task has not run yet.
	StatusPending Status = iota
	// StatusSucceeded indicates the action ran and returned a result.
	StatusSucceeded
	// StatusFailed indicates the action ran and returned an error.
	StatusFailed
	// StatusSkipped indicates the task was not run because a direct or
	// transitive dependency failed.
	StatusSkipped
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Task is a single unit of work in a TaskGraph.
//
// ID and Name are immutable after creation. The dependency set may only grow
// before execution starts; status, result, and error are written exactly once
// per run by the worker that ran the task and are safe to read after the
// task's wave barrier has passed.
type Task struct {
	// ID is the unique handle for this task, assigned at creation,
	// monotonically increasing from 1.
	ID int
	// Name is the display name for this task.
	Name string

	action Action
	deps   []int // ascending, no duplicates

	status Status
	result any
	err    error
}

// Status returns the task's current lifecycle state.
func (t *Task) Status() Status { return t.status }

// Completed reports whether the task has finished for this run, either by
// running its action (successfully or not) or by being skipped.
func (t *Task) Completed() bool { return t.status != StatusPending }

// Result returns the value produced by the action. It is nil unless the task
// succeeded.
func (t *Task) Result() any { return t.result }

// Err returns the error recorded for the task: the action's error for failed
// tasks, or a DependencyFailedError for skipped tasks. Nil otherwise.
func (t *Task) Err() error { return t.err }

// Dependencies returns a copy of the task's predecessor IDs in ascending
// order.
func (t *Task) Dependencies() []int {
	out := make([]int, len(t.deps))
	copy(out, t.deps)
	return out
}

// dependsOn reports whether id is already in the dependency set.
func (t *Task) dependsOn(id int) bool {
	for _, d := range t.deps {
		if d == id {
			return true
		}
	}
	return false
}

// reset returns the task to its pre-run state. Structure is untouched.
func (t *Task) reset() {
	t.status = StatusPending
	t.result = nil
	t.err = nil
}
