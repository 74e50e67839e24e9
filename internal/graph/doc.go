// Package graph implements the dependency-graph task executor: named tasks
// with declared dependency edges, validation that the edge set forms a DAG,
// deterministic linearization into parallel execution waves, and a
// wave-synchronous executor with bounded concurrency.
//
// A caller builds a TaskGraph with CreateTask and AddDependency (or decodes
// one from a level sequence via the tree package), then hands it to an
// Executor. Structural problems (unknown references, self-loops, cycles)
// surface before any task body runs; task-level failures are recorded per
// task and propagate to dependents as skips, never as errors from Execute.
package graph
