package parallel

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task represents a function to be executed in parallel
type Task func(ctx context.Context) (any, error)

// Result holds the result and error from a parallel task execution
type Result struct {
	Value any
	Error error
}

// Results holds the map of results from parallel execution
type Results map[string]Result

// Failed returns how many results carry an error.
func (r Results) Failed() int {
	failed := 0
	for _, result := range r {
		if result.Error != nil {
			failed++
		}
	}
	return failed
}

// Builder manages parallel task execution with type-safe retrieval
type Builder struct {
	tasks map[string]Task
	limit int
}

// NewBuilder creates a new parallel builder
func NewBuilder() *Builder {
	return &Builder{
		tasks: make(map[string]Task),
	}
}

// Add adds a keyed task to be executed in parallel. A task added under an
// existing key replaces it.
func (b *Builder) Add(key string, task Task) *Builder {
	b.tasks[key] = task
	return b
}

// WithLimit bounds how many tasks run at once. Zero or negative means no bound.
func (b *Builder) WithLimit(n int) *Builder {
	b.limit = n
	return b
}

// Len returns the number of tasks queued.
func (b *Builder) Len() int {
	return len(b.tasks)
}

// Run executes all tasks in parallel and returns results keyed by their original keys.
// A failing task does not stop the others; its error is kept in its Result.
func (b *Builder) Run(ctx context.Context) Results {
	if len(b.tasks) == 0 {
		return Results{}
	}

	results := make(Results, len(b.tasks))
	var mu sync.Mutex

	var g errgroup.Group
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}

	for key, task := range b.tasks {
		g.Go(func() error {
			value, err := task(ctx)

			mu.Lock()
			results[key] = Result{Value: value, Error: err}
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Value retrieves the result stored under key as a T.
func Value[T any](results Results, key string) (T, error) {
	var zero T

	result, exists := results[key]
	if !exists {
		return zero, fmt.Errorf("no result found for key: %s", key)
	}

	if result.Error != nil {
		return zero, result.Error
	}

	value, ok := result.Value.(T)
	if !ok {
		return zero, fmt.Errorf("type assertion failed for key %s: expected %T, got %T", key, zero, result.Value)
	}

	return value, nil
}
