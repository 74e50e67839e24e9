// Package tree converts between a rooted-tree level sequence and a task
// graph.
//
// A level sequence is a pre-order traversal encoding of a rooted tree: an
// ordered sequence of positive integers where entry i is the depth of node i,
// the root has depth 1, and the parent of node i is the nearest preceding
// node one level shallower. Every valid level sequence round-trips to exactly
// one rooted tree and back.
package tree

import (
	"fmt"

	"github.com/ariel-frischer/treeflow/internal/graph"
)

// MalformedLevelSequenceError represents a level sequence that does not
// encode a rooted tree.
type MalformedLevelSequenceError struct {
	// Index is the 1-based position of the offending entry (0 when the
	// sequence as a whole is invalid, e.g. empty).
	Index int
	// Level is the offending entry's value.
	Level int
	// Reason describes why the entry is invalid.
	Reason string
}

// Error implements the error interface.
func (e *MalformedLevelSequenceError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("malformed level sequence: %s", e.Reason)
	}
	return fmt.Sprintf("malformed level sequence at position %d (level %d): %s", e.Index, e.Level, e.Reason)
}

// NonTreeGraphError represents a graph that is not tree-shaped and therefore
// has no level sequence encoding.
type NonTreeGraphError struct {
	// ID is the task violating the tree shape (0 when the graph as a whole
	// is invalid, e.g. empty or rootless).
	ID int
	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *NonTreeGraphError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("graph is not tree-shaped: %s", e.Reason)
	}
	return fmt.Sprintf("graph is not tree-shaped: task %d %s", e.ID, e.Reason)
}

// ActionProvider supplies the action for the node at the given 1-based
// position in the level sequence.
type ActionProvider func(index int) graph.Action

// Decode builds a TaskGraph from a level sequence. Each tree node becomes a
// task and each parent-child relationship a dependency edge parent -> child.
// The parent of node i is found by scanning j from i-1 down to 1 for the
// first entry with levels[j] == levels[i]-1.
//
// A nil provider leaves every task with a no-op placeholder action. The
// returned graph owns freshly created tasks; it does not alias the input.
func Decode(levels []int, provider ActionProvider) (*graph.TaskGraph, error) {
	if len(levels) == 0 {
		return nil, &MalformedLevelSequenceError{Reason: "sequence is empty"}
	}
	if levels[0] != 1 {
		return nil, &MalformedLevelSequenceError{Index: 1, Level: levels[0], Reason: "root must have level 1"}
	}

	g := graph.New()
	for i, level := range levels {
		pos := i + 1
		if level < 1 {
			return nil, &MalformedLevelSequenceError{Index: pos, Level: level, Reason: "levels must be positive"}
		}
		if pos > 1 && level < 2 {
			return nil, &MalformedLevelSequenceError{Index: pos, Level: level, Reason: "only the root may have level 1"}
		}

		var action graph.Action
		if provider != nil {
			action = provider(pos)
		}
		id := g.CreateTask(fmt.Sprintf("node-%d", pos), action)

		if pos == 1 {
			continue
		}
		parent := 0
		for j := i - 1; j >= 0; j-- {
			if levels[j] == level-1 {
				parent = j + 1
				break
			}
		}
		if parent == 0 {
			return nil, &MalformedLevelSequenceError{Index: pos, Level: level, Reason: "no preceding node one level shallower"}
		}
		if err := g.AddDependency(parent, id); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Encode produces the level sequence for a tree-shaped graph: exactly one
// task with no dependencies (the root) and every other task with exactly one.
// Tasks are visited in linearization order, which respects parent before
// child; each task's depth is 1 + its parent's depth, root depth 1.
//
// Encode(Decode(L)) == L for every valid level sequence L.
func Encode(g *graph.TaskGraph) ([]int, error) {
	if g.Len() == 0 {
		return nil, &NonTreeGraphError{Reason: "graph is empty"}
	}

	roots := 0
	for _, t := range g.Tasks() {
		switch deps := t.Dependencies(); len(deps) {
		case 0:
			roots++
		case 1:
			// tree edge
		default:
			return nil, &NonTreeGraphError{ID: t.ID, Reason: fmt.Sprintf("has %d dependencies, want exactly 1", len(deps))}
		}
	}
	if roots != 1 {
		return nil, &NonTreeGraphError{Reason: fmt.Sprintf("found %d root tasks, want exactly 1", roots)}
	}

	// One root plus exactly one dependency everywhere else still admits a
	// cycle in a detached component; linearization is what rules it out.
	order, err := g.Linearize()
	if err != nil {
		return nil, &NonTreeGraphError{Reason: "contains a dependency cycle"}
	}

	depth := make(map[int]int, g.Len())
	levels := make([]int, 0, g.Len())
	for _, id := range order {
		t, _ := g.Task(id)
		deps := t.Dependencies()
		d := 1
		if len(deps) == 1 {
			d = depth[deps[0]] + 1
		}
		depth[id] = d
		levels = append(levels, d)
	}
	return levels, nil
}
