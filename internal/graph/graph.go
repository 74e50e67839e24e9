package graph

// TaskGraph is an owned collection of tasks and their dependency edges.
//
// Tasks are stored in a dense arena indexed by id-1, so the hot scan over the
// execution order never chases a hash map. A TaskGraph is single-writer
// during construction and read-only (apart from per-task run state) during
// execution. It is not safe for concurrent structural mutation.
type TaskGraph struct {
	tasks []*Task

	// Cached linearization, valid only while linearized is true. Any
	// structural mutation invalidates it.
	order      []int
	levels     []int
	waves      [][]int
	linearized bool
}

// New creates an empty TaskGraph.
func New() *TaskGraph {
	return &TaskGraph{}
}

// CreateTask allocates a new task with no dependencies and returns its ID.
// IDs increase monotonically from 1. A nil action is treated as a no-op.
func (g *TaskGraph) CreateTask(name string, action Action) int {
	id := len(g.tasks) + 1
	g.tasks = append(g.tasks, &Task{
		ID:     id,
		Name:   name,
		action: action,
	})
	g.invalidate()
	return id
}

// Task returns the task with the given ID, or false if no such task exists.
func (g *TaskGraph) Task(id int) (*Task, bool) {
	if id < 1 || id > len(g.tasks) {
		return nil, false
	}
	return g.tasks[id-1], true
}

// Len returns the number of tasks in the graph.
func (g *TaskGraph) Len() int { return len(g.tasks) }

// Tasks returns the tasks in insertion (ID) order. The returned slice is a
// copy; the tasks themselves are shared.
func (g *TaskGraph) Tasks() []*Task {
	out := make([]*Task, len(g.tasks))
	copy(out, g.tasks)
	return out
}

// AddDependency records that the task `to` depends on the task `from`, i.e.
// adds the edge from -> to. It returns an UnknownTaskError if either ID does
// not exist and a SelfDependencyError if both are the same. Multi-edge cycles
// are not detected here; detection is batched into linearization.
func (g *TaskGraph) AddDependency(from, to int) error {
	if from == to {
		return &SelfDependencyError{ID: from}
	}
	if _, ok := g.Task(from); !ok {
		return &UnknownTaskError{ID: from}
	}
	target, ok := g.Task(to)
	if !ok {
		return &UnknownTaskError{ID: to}
	}
	if target.dependsOn(from) {
		return nil
	}

	// Keep the dependency set ascending so scans are deterministic.
	i := 0
	for i < len(target.deps) && target.deps[i] < from {
		i++
	}
	target.deps = append(target.deps, 0)
	copy(target.deps[i+1:], target.deps[i:])
	target.deps[i] = from

	g.invalidate()
	return nil
}

// ResetForRerun returns every task to its pre-run state so the same
// structural graph can be executed again. Dependency structure and the
// cached linearization are unchanged.
func (g *TaskGraph) ResetForRerun() {
	for _, t := range g.tasks {
		t.reset()
	}
}

// invalidate drops the cached linearization after a structural mutation.
func (g *TaskGraph) invalidate() {
	g.order = nil
	g.levels = nil
	g.waves = nil
	g.linearized = false
}

// dependents builds the reverse adjacency: for every task, the ascending list
// of task IDs that depend on it.
func (g *TaskGraph) dependents() [][]int {
	out := make([][]int, len(g.tasks))
	for _, t := range g.tasks {
		for _, dep := range t.deps {
			out[dep-1] = append(out[dep-1], t.ID)
		}
	}
	return out
}
