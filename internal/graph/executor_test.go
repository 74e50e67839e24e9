package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewExecutor_Defaults(t *testing.T) {
	tests := map[string]struct {
		opts         []ExecutorOption
		wantParallel bool
		wantWorkers  int // 0 = expect the NumCPU default (any value >= 1)
	}{
		"default values": {
			opts:         nil,
			wantParallel: true,
		},
		"sequential": {
			opts:         []ExecutorOption{WithParallel(false)},
			wantParallel: false,
		},
		"custom workers": {
			opts:         []ExecutorOption{WithMaxWorkers(8)},
			wantParallel: true,
			wantWorkers:  8,
		},
		"zero workers keeps default": {
			opts:         []ExecutorOption{WithMaxWorkers(0)},
			wantParallel: true,
		},
		"negative workers keeps default": {
			opts:         []ExecutorOption{WithMaxWorkers(-3)},
			wantParallel: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := NewExecutor(tt.opts...)
			if e.Parallel() != tt.wantParallel {
				t.Errorf("Parallel() = %v, want %v", e.Parallel(), tt.wantParallel)
			}
			if tt.wantWorkers > 0 {
				if e.MaxWorkers() != tt.wantWorkers {
					t.Errorf("MaxWorkers() = %d, want %d", e.MaxWorkers(), tt.wantWorkers)
				}
			} else if e.MaxWorkers() < 1 {
				t.Errorf("MaxWorkers() = %d, want >= 1", e.MaxWorkers())
			}
		})
	}
}

func TestExecute_SequentialAndParallelProduceIdenticalResults(t *testing.T) {
	build := func() *TaskGraph {
		g := New()
		for i := 1; i <= 6; i++ {
			i := i
			g.CreateTask(fmt.Sprintf("t%d", i), func() (any, error) {
				return i * i, nil
			})
		}
		for _, e := range [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}, {4, 5}, {1, 6}} {
			if err := g.AddDependency(e[0], e[1]); err != nil {
				t.Fatalf("AddDependency() error = %v", err)
			}
		}
		return g
	}

	seq := build()
	if _, err := NewExecutor(WithParallel(false)).Execute(context.Background(), seq); err != nil {
		t.Fatalf("sequential Execute() error = %v", err)
	}

	par := build()
	if _, err := NewExecutor(WithMaxWorkers(4)).Execute(context.Background(), par); err != nil {
		t.Fatalf("parallel Execute() error = %v", err)
	}

	for id := 1; id <= 6; id++ {
		st, _ := seq.Task(id)
		pt, _ := par.Task(id)
		if st.Result() != pt.Result() {
			t.Errorf("task %d: sequential result %v != parallel result %v", id, st.Result(), pt.Result())
		}
		if st.Status() != StatusSucceeded || pt.Status() != StatusSucceeded {
			t.Errorf("task %d: status seq=%v par=%v, want succeeded", id, st.Status(), pt.Status())
		}
	}
}

func TestExecute_FailurePropagation(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		t.Run(fmt.Sprintf("parallel=%v", parallel), func(t *testing.T) {
			g := New()
			a := g.CreateTask("a", func() (any, error) { return "ok", nil })
			b := g.CreateTask("b", func() (any, error) { return nil, errors.New("boom") })
			ran := false
			c := g.CreateTask("c", func() (any, error) { ran = true; return "never", nil })
			for _, e := range [][2]int{{a, b}, {b, c}} {
				if err := g.AddDependency(e[0], e[1]); err != nil {
					t.Fatalf("AddDependency() error = %v", err)
				}
			}

			summary, err := NewExecutor(WithParallel(parallel)).Execute(context.Background(), g)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if summary.Succeeded != 1 || summary.Failed != 1 || summary.Skipped != 1 {
				t.Errorf("summary = %d/%d/%d (succeeded/failed/skipped), want 1/1/1",
					summary.Succeeded, summary.Failed, summary.Skipped)
			}
			if len(summary.Failures) != 1 || summary.Failures[0].ID != b {
				t.Errorf("Failures = %+v, want one entry for task %d", summary.Failures, b)
			}

			if ran {
				t.Error("skipped task's action was invoked")
			}
			ct, _ := g.Task(c)
			if ct.Status() != StatusSkipped {
				t.Errorf("task c Status() = %v, want skipped", ct.Status())
			}
			var depErr *DependencyFailedError
			if !errors.As(ct.Err(), &depErr) {
				t.Errorf("task c Err() = %v, want DependencyFailedError", ct.Err())
			} else if depErr.DependencyID != b {
				t.Errorf("DependencyFailedError.DependencyID = %d, want %d", depErr.DependencyID, b)
			}
		})
	}
}

func TestExecute_SkipPropagatesTransitively(t *testing.T) {
	// 1 fails; 2, 3, 4 hang off it across several waves and must all skip.
	g := New()
	g.CreateTask("fail", func() (any, error) { return nil, errors.New("boom") })
	for i := 2; i <= 4; i++ {
		g.CreateTask("dep", func() (any, error) { return nil, nil })
	}
	for _, e := range [][2]int{{1, 2}, {2, 3}, {3, 4}} {
		if err := g.AddDependency(e[0], e[1]); err != nil {
			t.Fatalf("AddDependency() error = %v", err)
		}
	}

	summary, err := NewExecutor().Execute(context.Background(), g)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if summary.Failed != 1 || summary.Skipped != 3 {
		t.Errorf("summary = failed %d skipped %d, want 1 failed, 3 skipped", summary.Failed, summary.Skipped)
	}
}

func TestExecute_DependencyCompletesBeforeDependentStarts(t *testing.T) {
	// Record completion flags; every task asserts its dependencies' flags
	// are set before its own action runs.
	const n = 12
	g := New()
	var mu sync.Mutex
	done := make(map[int]bool, n)

	edges := [][2]int{
		{1, 3}, {2, 3}, {3, 4}, {3, 5}, {4, 6}, {5, 6},
		{1, 7}, {7, 8}, {8, 9}, {6, 10}, {9, 10}, {2, 11}, {10, 12},
	}
	depsOf := make(map[int][]int)
	for _, e := range edges {
		depsOf[e[1]] = append(depsOf[e[1]], e[0])
	}

	for i := 1; i <= n; i++ {
		i := i
		g.CreateTask(fmt.Sprintf("t%d", i), func() (any, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, dep := range depsOf[i] {
				if !done[dep] {
					return nil, fmt.Errorf("task %d started before dependency %d completed", i, dep)
				}
			}
			done[i] = true
			return nil, nil
		})
	}
	for _, e := range edges {
		if err := g.AddDependency(e[0], e[1]); err != nil {
			t.Fatalf("AddDependency() error = %v", err)
		}
	}

	summary, err := NewExecutor(WithMaxWorkers(4)).Execute(context.Background(), g)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("summary = %+v, want all %d tasks succeeded", summary, n)
	}
}

func TestExecute_WaveWiderThanPoolQueuesFIFO(t *testing.T) {
	// A 5-task wave on a single worker runs one at a time in ascending id
	// order.
	g := New()
	var mu sync.Mutex
	var started []int

	root := g.CreateTask("root", nil)
	for i := 2; i <= 6; i++ {
		i := i
		g.CreateTask("leaf", func() (any, error) {
			mu.Lock()
			started = append(started, i)
			mu.Unlock()
			return nil, nil
		})
		if err := g.AddDependency(root, i); err != nil {
			t.Fatalf("AddDependency() error = %v", err)
		}
	}

	if _, err := NewExecutor(WithMaxWorkers(1)).Execute(context.Background(), g); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []int{2, 3, 4, 5, 6}
	if len(started) != len(want) {
		t.Fatalf("started = %v, want %v", started, want)
	}
	for i := range want {
		if started[i] != want[i] {
			t.Errorf("started = %v, want FIFO by id %v", started, want)
			break
		}
	}
}

func TestExecute_PanickingActionRecordedAsFailure(t *testing.T) {
	g := New()
	g.CreateTask("panics", func() (any, error) { panic("kaboom") })

	summary, err := NewExecutor().Execute(context.Background(), g)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if summary.Failed != 1 {
		t.Fatalf("summary.Failed = %d, want 1", summary.Failed)
	}
	task, _ := g.Task(1)
	if task.Err() == nil {
		t.Fatal("panicking task has no recorded error")
	}
}

func TestExecute_CycleFailsBeforeAnyTaskRuns(t *testing.T) {
	g := New()
	ran := false
	for i := 0; i < 3; i++ {
		g.CreateTask("t", func() (any, error) { ran = true; return nil, nil })
	}
	for _, e := range [][2]int{{1, 2}, {2, 3}, {3, 1}} {
		if err := g.AddDependency(e[0], e[1]); err != nil {
			t.Fatalf("AddDependency() error = %v", err)
		}
	}

	summary, err := NewExecutor().Execute(context.Background(), g)
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("Execute() error = %v, want CycleError", err)
	}
	if summary != nil {
		t.Error("Execute() returned a summary despite structural error")
	}
	if ran {
		t.Error("task action ran despite structural error")
	}
}

func TestExecute_ContextCancelledBetweenDispatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New()
	g.CreateTask("t", func() (any, error) { return nil, nil })

	if _, err := NewExecutor().Execute(ctx, g); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestExecute_RerunAfterReset(t *testing.T) {
	g := New()
	calls := 0
	g.CreateTask("counter", func() (any, error) {
		calls++
		return calls, nil
	})

	e := NewExecutor(WithParallel(false))
	for want := 1; want <= 3; want++ {
		summary, err := e.Execute(context.Background(), g)
		if err != nil {
			t.Fatalf("Execute() run %d error = %v", want, err)
		}
		if summary.Succeeded != 1 {
			t.Fatalf("run %d summary.Succeeded = %d, want 1", want, summary.Succeeded)
		}
		task, _ := g.Task(1)
		if task.Result() != want {
			t.Errorf("run %d Result() = %v, want %d", want, task.Result(), want)
		}
		g.ResetForRerun()
	}
}

func TestExecute_HungActionBlocksOnlyItsWave(t *testing.T) {
	// Independent tasks in the same wave still finish while one is slow;
	// the next wave does not start until the slow one returns.
	g := New()
	release := make(chan struct{})
	slowDone := false

	slow := g.CreateTask("slow", func() (any, error) {
		<-release
		slowDone = true
		return nil, nil
	})
	g.CreateTask("fast", func() (any, error) { return nil, nil })
	next := g.CreateTask("next", func() (any, error) {
		if !slowDone {
			return nil, errors.New("next wave started before barrier")
		}
		return nil, nil
	})
	if err := g.AddDependency(slow, next); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	summary, err := NewExecutor(WithMaxWorkers(2)).Execute(context.Background(), g)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if summary.Failed != 0 {
		t.Errorf("summary = %+v, want no failures", summary)
	}
}
