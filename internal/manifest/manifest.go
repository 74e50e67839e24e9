// Package manifest loads YAML task-graph manifests and builds executable
// task graphs from them.
//
// A manifest declares either a list of named tasks with shell commands and
// depends_on references, or a bare level sequence describing a rooted tree:
//
//	schema_version: "1.0"
//	graph:
//	  name: demo
//	tasks:
//	  - name: build
//	    run: "go build ./..."
//	  - name: test
//	    run: "go test ./..."
//	    depends_on: [build]
package manifest

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/treeflow/internal/graph"
	"github.com/ariel-frischer/treeflow/internal/tree"
	"gopkg.in/yaml.v3"
)

// Manifest is the root structure of a task-graph manifest file.
type Manifest struct {
	// SchemaVersion is the manifest schema format version (e.g., "1.0").
	SchemaVersion string `yaml:"schema_version"`
	// Graph contains metadata about the graph.
	Graph Metadata `yaml:"graph"`
	// Tasks is the list of task definitions. Mutually exclusive with Tree.
	Tasks []TaskDef `yaml:"tasks,omitempty"`
	// Tree is a rooted-tree level sequence describing a shape-only graph
	// with no-op actions. Mutually exclusive with Tasks.
	Tree []int `yaml:"tree,omitempty"`
}

// Metadata contains metadata about the graph.
type Metadata struct {
	// Name is the human-readable name for the graph.
	Name string `yaml:"name"`
}

// TaskDef defines a single task in a manifest.
type TaskDef struct {
	// Name is the unique task name.
	Name string `yaml:"name"`
	// Run is the shell command executed as the task's action. Empty means a
	// no-op task that only orders its dependents.
	Run string `yaml:"run,omitempty"`
	// DependsOn lists task names that must complete before this task runs.
	DependsOn []string `yaml:"depends_on,omitempty"`
}

// Error represents a manifest validation error with field context.
type Error struct {
	// Field locates the offending entry (e.g., "tasks[2].depends_on").
	Field string
	// Message describes what is wrong.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if errs := Validate(&m); len(errs) > 0 {
		return nil, &LoadError{Path: path, Errs: errs}
	}
	return &m, nil
}

// LoadError aggregates the validation errors found in a manifest file.
type LoadError struct {
	// Path is the manifest file path.
	Path string
	// Errs is the list of validation errors.
	Errs []error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid manifest %s:\n  %s", e.Path, strings.Join(msgs, "\n  "))
}

// Validate checks a manifest for structural correctness: required fields,
// unique task names, and known depends_on references. Cycle detection is not
// done here; it is batched into graph linearization.
// Returns a slice of errors, empty if valid.
func Validate(m *Manifest) []error {
	var errs []error

	if m.SchemaVersion == "" {
		errs = append(errs, &Error{Field: "schema_version", Message: "required field is missing"})
	}
	if m.Graph.Name == "" {
		errs = append(errs, &Error{Field: "graph.name", Message: "required field is missing"})
	}

	switch {
	case len(m.Tasks) == 0 && len(m.Tree) == 0:
		errs = append(errs, &Error{Message: "manifest must declare tasks or a tree"})
	case len(m.Tasks) > 0 && len(m.Tree) > 0:
		errs = append(errs, &Error{Message: "tasks and tree are mutually exclusive"})
	}

	errs = append(errs, validateTasks(m.Tasks)...)
	return errs
}

// validateTasks checks task names and dependency references.
func validateTasks(tasks []TaskDef) []error {
	var errs []error

	names := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		field := fmt.Sprintf("tasks[%d]", i)
		if t.Name == "" {
			errs = append(errs, &Error{Field: field, Message: "task name is required"})
			continue
		}
		if names[t.Name] {
			errs = append(errs, &Error{Field: field, Message: fmt.Sprintf("duplicate task name %q", t.Name)})
		}
		names[t.Name] = true
	}

	for i, t := range tasks {
		for _, dep := range t.DependsOn {
			if !names[dep] {
				errs = append(errs, &Error{
					Field:   fmt.Sprintf("tasks[%d].depends_on", i),
					Message: fmt.Sprintf("task %q depends on unknown task %q", t.Name, dep),
				})
			}
			if dep == t.Name {
				errs = append(errs, &Error{
					Field:   fmt.Sprintf("tasks[%d].depends_on", i),
					Message: fmt.Sprintf("task %q cannot depend on itself", t.Name),
				})
			}
		}
	}

	return errs
}

// Build produces an executable TaskGraph from a validated manifest. Task
// manifests get shell-command actions; tree manifests decode through the
// level-sequence codec with no-op actions.
func Build(m *Manifest) (*graph.TaskGraph, error) {
	if len(m.Tree) > 0 {
		return tree.Decode(m.Tree, nil)
	}

	g := graph.New()
	ids := make(map[string]int, len(m.Tasks))
	for _, t := range m.Tasks {
		ids[t.Name] = g.CreateTask(t.Name, commandAction(t.Run))
	}
	for _, t := range m.Tasks {
		for _, dep := range t.DependsOn {
			if err := g.AddDependency(ids[dep], ids[t.Name]); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// commandAction wraps a shell command as a task action. The combined output
// is the task's result; a failing command surfaces its output in the error.
func commandAction(run string) graph.Action {
	if run == "" {
		return nil
	}
	return func() (any, error) {
		out, err := exec.Command("sh", "-c", run).CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("command %q: %w\n%s", run, err, strings.TrimSpace(string(out)))
		}
		return string(out), nil
	}
}
