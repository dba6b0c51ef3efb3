package device

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
)

// maxDrainedErrors bounds how many queued errors Check pulls in one call. A lost context
// keeps reporting errors forever.
const maxDrainedErrors = 16

// Check drains the device error queue, logging each error at Warn with the label.
// It never panics and never stops the caller; the first error is returned for diagnostics.
//
// Parameters:
//   - dev: the device to poll
//   - label: a short description of the operation being checked
//
// Returns:
//   - error: the first pending error, or nil
func Check(dev Device, label string) error {
	var first error
	for i := 0; i < maxDrainedErrors; i++ {
		err := dev.Error()
		if err == nil {
			break
		}
		if first == nil {
			first = err
		}
		common.Logger().Warn("device error", "op", label, "err", err)
	}
	return first
}

// errorQueue is a FIFO of device errors that were read out of order.
type errorQueue struct {
	pending []error
}

func (q *errorQueue) push(err error) {
	q.pending = append(q.pending, err)
}

// pop returns the oldest queued error, or nil when the queue is empty.
func (q *errorQueue) pop() error {
	if len(q.pending) == 0 {
		return nil
	}
	err := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return err
}

// lineWidthRange converts the driver's aliased line width range into usable limits.
// Forward-compatible contexts reject widths above 1.
func lineWidthRange(aliased [2]float32, forwardCompatible bool) Range {
	r := Range{Min: aliased[0], Max: aliased[1]}
	if forwardCompatible {
		r.Min, r.Max = min(r.Min, 1), 1
	}
	return r
}
