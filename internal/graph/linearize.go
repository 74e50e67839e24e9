package graph

import "sort"

// Linearize computes (and caches) a topological execution order using Kahn's
// algorithm over in-degree counts. The ready set is kept sorted and the
// smallest ID is always popped first, so the order is deterministic and, for
// graphs decoded from a level sequence, reproduces the pre-order the
// sequence was written in. It returns a CycleError if the edge set is not
// acyclic; no partial order is exposed in that case.
//
// The cache survives ResetForRerun and is dropped by any structural mutation.
func (g *TaskGraph) Linearize() ([]int, error) {
	if g.linearized {
		return g.order, nil
	}

	n := len(g.tasks)
	indeg := make([]int, n)
	for _, t := range g.tasks {
		indeg[t.ID-1] = len(t.deps)
	}
	dependents := g.dependents()

	ready := make([]int, 0, n)
	for _, t := range g.tasks {
		if indeg[t.ID-1] == 0 {
			ready = append(ready, t.ID)
		}
	}

	order := make([]int, 0, n)
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)
		for _, dep := range dependents[id-1] {
			indeg[dep-1]--
			if indeg[dep-1] == 0 {
				ready = insertSorted(ready, dep)
			}
		}
	}

	if len(order) < n {
		return nil, &CycleError{Path: g.findCycle(indeg)}
	}

	g.order = order
	g.levels = g.computeLevels(order)
	g.waves = g.computeWaves()
	g.linearized = true
	return g.order, nil
}

// insertSorted inserts id into the ascending ready set.
func insertSorted(ready []int, id int) []int {
	i := sort.SearchInts(ready, id)
	ready = append(ready, 0)
	copy(ready[i+1:], ready[i:])
	ready[i] = id
	return ready
}

// findCycle walks backward through dependencies among the tasks Kahn's
// algorithm could not place until an ID repeats, yielding one concrete cycle
// for the error message. Every unplaced task either sits on a cycle or
// depends on one, so the walk always terminates.
func (g *TaskGraph) findCycle(indeg []int) []int {
	start := 0
	for id := 1; id <= len(g.tasks); id++ {
		if indeg[id-1] > 0 {
			start = id
			break
		}
	}
	if start == 0 {
		return nil
	}

	seen := make(map[int]int) // id -> position in walk
	var walk []int
	cur := start
	for {
		if pos, ok := seen[cur]; ok {
			cycle := append([]int{}, walk[pos:]...)
			return append(cycle, cur)
		}
		seen[cur] = len(walk)
		walk = append(walk, cur)

		next := 0
		for _, dep := range g.tasks[cur-1].deps {
			if indeg[dep-1] > 0 {
				next = dep
				break
			}
		}
		if next == 0 {
			// Should not happen: an unplaced task always has an unplaced
			// dependency. Bail out with what we have.
			return walk
		}
		cur = next
	}
}

// computeLevels assigns each task its earliest safe execution wave: 0 for
// tasks with no dependencies, otherwise 1 + the maximum level among its
// dependencies. Processing in topological order guarantees every
// dependency's level is already known.
func (g *TaskGraph) computeLevels(order []int) []int {
	levels := make([]int, len(g.tasks))
	for _, id := range order {
		level := 0
		for _, dep := range g.tasks[id-1].deps {
			if l := levels[dep-1] + 1; l > level {
				level = l
			}
		}
		levels[id-1] = level
	}
	return levels
}

// computeWaves groups task IDs by level, ascending IDs within each wave.
// Tasks sharing a wave have no path between them and may run concurrently.
func (g *TaskGraph) computeWaves() [][]int {
	max := -1
	for _, l := range g.levels {
		if l > max {
			max = l
		}
	}
	waves := make([][]int, max+1)
	for _, t := range g.tasks {
		l := g.levels[t.ID-1]
		waves[l] = append(waves[l], t.ID)
	}
	return waves
}

// Level returns the execution wave assigned to the given task. The graph
// must have been linearized.
func (g *TaskGraph) Level(id int) (int, bool) {
	if !g.linearized || id < 1 || id > len(g.tasks) {
		return 0, false
	}
	return g.levels[id-1], true
}

// Waves returns the parallel execution plan: task IDs grouped by level, in
// ascending level order, linearizing first if needed.
func (g *TaskGraph) Waves() ([][]int, error) {
	if _, err := g.Linearize(); err != nil {
		return nil, err
	}
	out := make([][]int, len(g.waves))
	for i, w := range g.waves {
		out[i] = append([]int{}, w...)
	}
	return out, nil
}
