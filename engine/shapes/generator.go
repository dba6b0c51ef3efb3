package shapes

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Generator builds batches of shapes on a pool of worker goroutines. The pool's workers are
// reused across calls and exit on their own after sitting idle.
type Generator interface {
	// NGons builds the fans for every spec, in spec order.
	//
	// Parameters:
	//   - specs: the polygons to generate
	//
	// Returns:
	//   - []Fan: one fan per spec
	//   - error: every spec that failed, joined
	NGons(specs []NGonSpec) ([]Fan, error)

	// Workers returns the configured worker count.
	Workers() int
}

type generator struct {
	workers   int
	queueSize int
	idle      time.Duration
	pool      worker.DynamicWorkerPool
}

var _ Generator = &generator{}

// NewGenerator creates a Generator. The worker count defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - options: functional options to configure the generator
//
// Returns:
//   - Generator: the new generator
func NewGenerator(options ...GeneratorBuilderOption) Generator {
	g := &generator{
		workers:   max(runtime.NumCPU()-1, 1),
		queueSize: 256,
		idle:      1 * time.Second,
	}
	for _, opt := range options {
		opt(g)
	}
	g.pool = worker.NewDynamicWorkerPool(g.workers, g.queueSize, g.idle)
	return g
}

func (g *generator) Workers() int {
	return g.workers
}

// NGons submits one task per spec and waits on a WaitGroup barrier; results land in their
// own slot so no locking is needed.
func (g *generator) NGons(specs []NGonSpec) ([]Fan, error) {
	fans := make([]Fan, len(specs))
	errs := make([]error, len(specs))

	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		idx, s := i, spec
		g.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				fan, err := NGon(s)
				if err != nil {
					// Failures are reported through errs, not the pool.
					errs[idx] = fmt.Errorf("n-gon %d: %w", idx, err)
					return nil, nil
				}
				fans[idx] = fan
				return nil, nil
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return fans, nil
}
