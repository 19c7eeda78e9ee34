package timer

import (
	"reflect"
	"time"

	"github.com/TomCrypto/equinox/log"
)

// The minimum number of in-flight queries before the oldest one is polled.
// A query is never read back in the same call that submitted it.
const DefaultPipelineDepth = 2

var logger = log.New("timer")

// ElapsedTimer measures the GPU cost of operations without ever blocking on
// a result. Query handles cycle between a pool of idle handles and a FIFO of
// submitted ones; a measurement returned by TimeElapsed belongs to the
// oldest submitted operation rather than the one just issued.
type ElapsedTimer struct {
	dev   Device
	depth int

	// Idle handles ready for reuse.
	pending []Query

	// Submitted handles, oldest first.
	running []Query
}

// Create a new timer for the given device. A nil device, including a nil
// pointer wrapped in the interface, yields a timer that never produces
// measurements.
func NewElapsedTimer(dev Device, depth int) (*ElapsedTimer, error) {
	if depth < 2 {
		return nil, ErrInvalidDepth
	}

	t := &ElapsedTimer{depth: depth}
	t.attach(dev)
	return t, nil
}

// TimeElapsed runs op exactly once and returns the duration of the oldest
// in-flight measurement if its result is ready. The second return value is
// false when no measurement is available for this call.
func (t *ElapsedTimer) TimeElapsed(op func()) (time.Duration, bool) {
	if t.dev == nil || t.dev.ContextLost() {
		op()
		return 0, false
	}

	query, ok := t.acquire()
	if !ok {
		op()
		return 0, false
	}

	t.dev.BeginQuery(query)
	t.run(query, op)
	t.dev.EndQuery()
	t.running = append(t.running, query)

	if len(t.running) < t.depth {
		return 0, false
	}

	oldest := t.running[0]
	if !t.dev.ResultAvailable(oldest) {
		return 0, false
	}

	// A disjoint event leaves the query in flight; it is polled again on
	// the next call.
	if t.dev.Disjoint() {
		logger.Debug("discarding timer results due to disjoint GPU event")
		return 0, false
	}

	elapsed := time.Duration(t.dev.Result(oldest))
	t.running = t.running[1:]
	t.pending = append(t.pending, oldest)

	return elapsed, true
}

// Clear releases all pooled and in-flight queries and detaches the device.
// Until Restore is called the timer behaves as if no device was supplied.
func (t *ElapsedTimer) Clear() {
	if t.dev != nil {
		for _, query := range t.pending {
			t.dev.DeleteQuery(query)
		}
		for _, query := range t.running {
			t.dev.DeleteQuery(query)
		}
	}

	t.pending = t.pending[:0]
	t.running = t.running[:0]
	t.dev = nil
}

// Restore drops any queries created before a context loss and attaches the
// restored device.
func (t *ElapsedTimer) Restore(dev Device) {
	t.Clear()
	t.attach(dev)
}

// The number of idle queries.
func (t *ElapsedTimer) Pooled() int {
	return len(t.pending)
}

// The number of submitted queries waiting for a result.
func (t *ElapsedTimer) InFlight() int {
	return len(t.running)
}

// Enabled reports whether the timer currently has a usable device.
func (t *ElapsedTimer) Enabled() bool {
	return t.dev != nil && !t.dev.ContextLost()
}

func (t *ElapsedTimer) attach(dev Device) {
	if isNil(dev) {
		t.dev = nil
		return
	}
	if !dev.Supported() {
		logger.Notice("device does not support elapsed time queries; GPU timings disabled")
		t.dev = nil
		return
	}
	t.dev = dev
}

// Run op inside an active query. If op panics the query is closed and
// returned to the idle pool before the panic propagates.
func (t *ElapsedTimer) run(query Query, op func()) {
	completed := false
	defer func() {
		if !completed {
			t.dev.EndQuery()
			t.pending = append(t.pending, query)
		}
	}()

	op()
	completed = true
}

func (t *ElapsedTimer) acquire() (Query, bool) {
	if len(t.pending) != 0 {
		query := t.pending[0]
		t.pending = t.pending[1:]
		return query, true
	}

	query, ok := t.dev.CreateQuery()
	if !ok {
		logger.Warning("could not allocate timer query")
	}
	return query, ok
}

// Report whether dev is nil or an interface holding a nil pointer.
func isNil(dev Device) bool {
	if dev == nil {
		return true
	}
	v := reflect.ValueOf(dev)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
