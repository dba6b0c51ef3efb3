package shapes

import "time"

// GeneratorBuilderOption is a functional option for configuring a Generator.
type GeneratorBuilderOption func(g *generator)

// WithWorkers sets the number of worker goroutines.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithWorkers(n int) GeneratorBuilderOption {
	return func(g *generator) {
		if n < 1 {
			n = 1
		}
		g.workers = n
	}
}

// WithQueueSize sets how many tasks may wait for a worker.
//
// Parameters:
//   - n: the queue capacity (minimum 1)
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithQueueSize(n int) GeneratorBuilderOption {
	return func(g *generator) {
		if n < 1 {
			n = 1
		}
		g.queueSize = n
	}
}

// WithIdleTimeout sets how long an idle worker waits before exiting.
//
// Parameters:
//   - d: the idle timeout
//
// Returns:
//   - GeneratorBuilderOption: option function to apply
func WithIdleTimeout(d time.Duration) GeneratorBuilderOption {
	return func(g *generator) {
		g.idle = d
	}
}
