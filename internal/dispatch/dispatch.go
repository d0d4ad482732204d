// Package dispatch fans tasks out to a bounded pool of workers.
package dispatch

import "sync"

// Each runs fn over every task using the given number of workers and
// returns a channel yielding one result per task, in completion order.
// The channel is closed after the last result.
//
// A panicking task does not take its worker down; the recovered
// callback turns the panic value into that task's result. Fewer than
// one worker is clamped to one.
func Each[T, R any](tasks []T, workers int, fn func(T) R, recovered func(T, any) R) <-chan R {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan T, workers*2)
	results := make(chan R, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				results <- protect(t, fn, recovered)
			}
		}()
	}

	go func() {
		for _, t := range tasks {
			jobs <- t
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	return results
}

func protect[T, R any](t T, fn func(T) R, recovered func(T, any) R) (r R) {
	defer func() {
		if v := recover(); v != nil {
			r = recovered(t, v)
		}
	}()
	return fn(t)
}
