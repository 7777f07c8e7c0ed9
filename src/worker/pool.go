package worker

import "sync"

// Task is an independent unit of work carrying its own correlation key.
type Task[K comparable, V any] struct {
	Key K
	Run func() (V, error)
}

// Result pairs a task's key with its outcome.
type Result[K comparable, V any] struct {
	Key   K
	Value V
	Err   error
}

// Run executes tasks with at most width running concurrently and collects
// results keyed by each task's correlation key. Completion order carries no
// meaning; callers index into the returned map instead of relying on
// submission order.
func Run[K comparable, V any](width int, tasks []Task[K, V]) map[K]Result[K, V] {
	if width < 1 {
		width = 1
	}

	sem := make(chan struct{}, width)
	results := make(chan Result[K, V], len(tasks))

	var wg sync.WaitGroup

	for _, task := range tasks {
		wg.Add(1)

		go func(t Task[K, V]) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			value, err := t.Run()
			results <- Result[K, V]{Key: t.Key, Value: value, Err: err}
		}(task)
	}

	wg.Wait()
	close(results)

	out := make(map[K]Result[K, V], len(tasks))
	for res := range results {
		out[res.Key] = res
	}

	return out
}
