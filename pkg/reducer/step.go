package reducer

import (
	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
)

// Contraction describes one reduction step.
type Contraction struct {
	Combinator string
	Depth      int // number of argument positions above the redex
	Args       int // arguments available at the redex, excess included
}

// Step performs exactly one leftmost-outermost weak contraction of t. It
// returns ErrNoRedex if t is already in normal form.
func Step(reg *Registry, t combinator.Term) (combinator.Term, Contraction, error) {
	r := locate(reg, t)
	if r == nil {
		return t, Contraction{}, errors.Wrapf(ErrNoRedex, "%s", combinator.Print(t))
	}
	return contract(r), r.info(), nil
}

func (r *redex) info() Contraction {
	return Contraction{Combinator: r.comb.Name, Depth: r.at.depth, Args: len(r.at.args)}
}

// contract rewrites the redex and rebuilds every enclosing spine, keeping
// their heads and other arguments. Nothing is mutated: each level gets a
// new argument slice.
func contract(r *redex) combinator.Term {
	f := r.at
	c := r.comb
	body := Instantiate(c.Template, f.args[:c.Arity])
	result := combinator.Apply(body, f.args[c.Arity:]...)

	for ; f.parent != nil; f = f.parent {
		p := f.parent
		args := make([]combinator.Term, len(p.args))
		copy(args, p.args)
		args[f.index] = result
		result = combinator.Apply(p.head, args...)
	}
	return result
}
