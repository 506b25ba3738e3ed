package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Runner resolves and processes one compound name
type Runner[T any] interface {
	Run(ctx context.Context, name string) (T, error)
}

// CompoundJob runs one compound name through a Runner
type CompoundJob[T any] struct {
	Name   string
	Runner Runner[T]
}

// Execute executes the job
func (j *CompoundJob[T]) Execute(ctx context.Context) Result {
	value, err := j.Runner.Run(ctx, j.Name)
	return &CompoundResult[T]{
		Name:  j.Name,
		Value: value,
		Error: err,
	}
}

// CompoundResult is the outcome of one CompoundJob
type CompoundResult[T any] struct {
	Name  string
	Value T
	Error error
}

// GetError returns the error from the run
func (r *CompoundResult[T]) GetError() error {
	return r.Error
}

// BatchProcessor runs many compound names through a worker pool
type BatchProcessor[T any] struct {
	runner      Runner[T]
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given worker count
func NewBatchProcessor[T any](runner Runner[T], concurrency int) *BatchProcessor[T] {
	return &BatchProcessor[T]{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ErrNotRun marks a name the batch never started because its context ended
var ErrNotRun = errors.New("not run: batch stopped")

// ProcessNames runs every name and returns exactly one result per name, in input order.
// Names skipped after the context ended carry ErrNotRun wrapping the context error.
func (b *BatchProcessor[T]) ProcessNames(ctx context.Context, names []string) []*CompoundResult[T] {
	if len(names) == 0 {
		return []*CompoundResult[T]{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, name := range names {
		pool.Submit(&CompoundJob[T]{
			Name:   name,
			Runner: b.runner,
		})
	}

	results := pool.Wait()

	out := make([]*CompoundResult[T], len(names))
	for i, result := range results {
		if result == nil {
			out[i] = &CompoundResult[T]{Name: names[i], Error: fmt.Errorf("%w: %w", ErrNotRun, context.Cause(ctx))}
			continue
		}
		out[i] = result.(*CompoundResult[T])
	}
	return out
}

// ProcessFile reads names from a file and runs them
func (b *BatchProcessor[T]) ProcessFile(ctx context.Context, filePath string) ([]*CompoundResult[T], error) {
	names, err := ReadNamesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}

	return b.ProcessNames(ctx, names), nil
}

// ReadNamesFromFile reads compound names, one per line.
// Blank lines and # comments are skipped; repeated names (ignoring case) are kept once.
func ReadNamesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key := strings.ToLower(line)
		if !seen[key] {
			seen[key] = true
			names = append(names, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return names, nil
}
