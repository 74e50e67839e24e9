package graph

import "sync"

// Registry owns a set of TaskGraphs keyed by monotonically increasing
// handles, for callers that drive several graphs through a single object
// (successive generations in an evolutionary loop, host-runtime bridges).
// It is safe for concurrent use; the graphs it hands out are not.
type Registry struct {
	mu     sync.Mutex
	graphs map[int]*TaskGraph
	nextID int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		graphs: make(map[int]*TaskGraph),
		nextID: 1,
	}
}

// Create allocates a fresh empty graph and returns its handle.
func (r *Registry) Create() (int, *TaskGraph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	g := New()
	r.graphs[id] = g
	return id, g
}

// Get returns the graph for the given handle.
func (r *Registry) Get(id int) (*TaskGraph, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.graphs[id]
	return g, ok
}

// Delete removes the graph for the given handle. Removing an unknown handle
// is a no-op.
func (r *Registry) Delete(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.graphs, id)
}

// Len returns the number of graphs currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.graphs)
}
