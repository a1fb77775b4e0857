package reducer

import (
	"sync/atomic"

	"github.com/vic/goski/pkg/combinator"
)

type TraceEvent struct {
	Step       uint64
	Combinator string
	Depth      int
	Args       int
	Size       int // atoms in the term after the step
}

// TraceFunc observes the rendering of the current term: once with step 0
// before reduction starts and once after every step.
type TraceFunc func(step int, term string)

// EnableTrace records the first capacity contractions.
func (m *Machine) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	m.traceBuf = make([]TraceEvent, capacity)
	m.traceCap = uint64(capacity)
	atomic.StoreUint64(&m.traceIdx, 0)
	atomic.StoreUint32(&m.traceOn, 1)
}

func (m *Machine) DisableTrace() {
	atomic.StoreUint32(&m.traceOn, 0)
}

func (m *Machine) TraceSnapshot() []TraceEvent {
	if atomic.LoadUint32(&m.traceOn) == 0 {
		return nil
	}
	count := atomic.LoadUint64(&m.traceIdx)
	if count > m.traceCap {
		count = m.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, m.traceBuf[:count])
	return res
}

func (m *Machine) recordTrace(c Contraction, t combinator.Term) {
	if atomic.LoadUint32(&m.traceOn) == 0 || m.traceCap == 0 {
		return
	}
	idx := atomic.AddUint64(&m.traceIdx, 1) - 1
	if idx >= m.traceCap {
		return
	}
	m.traceBuf[idx] = TraceEvent{
		Step:       idx + 1,
		Combinator: c.Combinator,
		Depth:      c.Depth,
		Args:       c.Args,
		Size:       combinator.Size(t),
	}
}
