package reducer

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
)

// Machine drives weak reduction of terms against a registry.
//
// A Machine is meant to be used by one goroutine at a time; Stats and
// TraceSnapshot may be read from others.
type Machine struct {
	registry *Registry
	maxSteps int
	timeout  time.Duration
	onStep   TraceFunc
	logger   *slog.Logger

	// Stats
	ops    uint64
	counts []uint64 // per combinator, in registry order
	index  map[string]int

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  uint32
}

// Stats holds reduction statistics.
type Stats struct {
	TotalReductions uint64
	ByCombinator    map[string]uint64
}

type Option func(*Machine)

// WithMaxSteps bounds Normalize to n contractions. Zero means no bound.
func WithMaxSteps(n int) Option {
	return func(m *Machine) { m.maxSteps = n }
}

// WithTimeout bounds the wall-clock time of Normalize. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(m *Machine) { m.timeout = d }
}

// WithTrace installs an observer for every intermediate term.
func WithTrace(fn TraceFunc) Option {
	return func(m *Machine) { m.onStep = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// NewMachine returns a machine reducing against reg, or against SKI() if
// reg is nil. reg is frozen.
func NewMachine(reg *Registry, opts ...Option) *Machine {
	if reg == nil {
		reg = SKI()
	}
	reg.Freeze()
	m := &Machine{
		registry: reg,
		logger:   slog.Default(),
		counts:   make([]uint64, reg.Len()),
		index:    make(map[string]int, reg.Len()),
	}
	for i, name := range reg.order {
		m.index[name] = i
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Registry() *Registry { return m.registry }

func (m *Machine) HasWeakRedex(t combinator.Term) bool {
	return HasWeakRedex(m.registry, t)
}

// Step performs one contraction and records it in the stats.
func (m *Machine) Step(t combinator.Term) (combinator.Term, error) {
	r := locate(m.registry, t)
	if r == nil {
		return t, errors.Wrapf(ErrNoRedex, "%s", combinator.Print(t))
	}
	return m.apply(r), nil
}

func (m *Machine) apply(r *redex) combinator.Term {
	next := contract(r)
	c := r.info()
	atomic.AddUint64(&m.ops, 1)
	atomic.AddUint64(&m.counts[m.index[c.Combinator]], 1)
	m.recordTrace(c, next)
	return next
}

// Normalize reduces t until it has no weak redex.
//
// The calculus admits terms without a normal form, so the configured step
// and time bounds, and ctx, are checked before every step. When one of
// them stops the run the last term reached is returned together with a
// *BudgetError.
func (m *Machine) Normalize(ctx context.Context, t combinator.Term) (combinator.Term, error) {
	if t == nil || combinator.IsEmpty(t) {
		return nil, combinator.ErrEmptyTerm
	}
	debug := m.logger.Enabled(ctx, slog.LevelDebug)
	start := time.Now()
	m.emit(0, t)

	for steps := 0; ; steps++ {
		r := locate(m.registry, t)
		if r == nil {
			if debug {
				m.logger.Debug("normal form", "steps", steps, "elapsed", time.Since(start))
			}
			return t, nil
		}
		if m.maxSteps > 0 && steps >= m.maxSteps {
			return t, &BudgetError{Steps: steps, Term: t, Reason: "step limit reached"}
		}
		if m.timeout > 0 && time.Since(start) >= m.timeout {
			return t, &BudgetError{Steps: steps, Term: t, Reason: "time limit reached"}
		}
		if err := ctx.Err(); err != nil {
			return t, &BudgetError{Steps: steps, Term: t, Reason: "cancelled", Cause: err}
		}

		t = m.apply(r)
		if debug {
			m.logger.Debug("contract", "step", steps+1, "combinator", r.comb.Name, "depth", r.at.depth)
		}
		m.emit(steps+1, t)
	}
}

func (m *Machine) emit(step int, t combinator.Term) {
	if m.onStep != nil {
		m.onStep(step, t.String())
	}
}

func (m *Machine) GetStats() Stats {
	s := Stats{
		TotalReductions: atomic.LoadUint64(&m.ops),
		ByCombinator:    make(map[string]uint64, len(m.counts)),
	}
	for name, i := range m.index {
		if n := atomic.LoadUint64(&m.counts[i]); n > 0 {
			s.ByCombinator[name] = n
		}
	}
	return s
}

func (m *Machine) ResetStats() {
	atomic.StoreUint64(&m.ops, 0)
	for i := range m.counts {
		atomic.StoreUint64(&m.counts[i], 0)
	}
}
