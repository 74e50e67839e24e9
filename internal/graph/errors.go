package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownTaskError represents a dependency referencing a task ID that does
// not exist in the graph.
type UnknownTaskError struct {
	// ID is the nonexistent task ID that was referenced.
	ID int
}

// Error implements the error interface.
func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task reference: no task with id %d", e.ID)
}

// SelfDependencyError represents a task declared dependent on itself.
type SelfDependencyError struct {
	// ID is the task that referenced itself.
	ID int
}

// Error implements the error interface.
func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("task %d cannot depend on itself", e.ID)
}

// CycleError represents a cycle detected in task dependencies during
// linearization.
type CycleError struct {
	// Path is the list of task IDs forming the cycle, first ID repeated at
	// the end.
	Path []int
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return "cycle detected in task dependencies"
	}
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("cycle detected in task dependencies: %s", strings.Join(parts, " -> "))
}

// DependencyFailedError is recorded on a skipped task, identifying the failed
// or skipped predecessor that prevented it from running.
type DependencyFailedError struct {
	// TaskID is the task that was skipped.
	TaskID int
	// DependencyID is the predecessor whose failure caused the skip.
	DependencyID int
}

// Error implements the error interface.
func (e *DependencyFailedError) Error() string {
	return fmt.Sprintf("task %d skipped: dependency %d did not complete successfully", e.TaskID, e.DependencyID)
}
