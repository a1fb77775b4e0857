package reducer

import "github.com/vic/goski/pkg/combinator"

// frame is a flattened spine visited while looking for a redex. parent and
// index locate it inside the enclosing spine's arguments.
type frame struct {
	head   combinator.Term
	args   []combinator.Term
	parent *frame
	index  int
	depth  int
}

type redex struct {
	at   *frame
	comb Combinator
}

// locate returns the leftmost-outermost weak redex of t, or nil.
//
// A spine whose head is a registered combinator with enough arguments is a
// redex. Otherwise its arguments are searched in order, each as a term of
// its own. The search uses an explicit stack.
func locate(reg *Registry, t combinator.Term) *redex {
	if _, ok := t.(combinator.App); !ok {
		return nil
	}
	head, args := combinator.Spine(t)
	stack := []*frame{{head: head, args: args}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if a, ok := f.head.(combinator.Atom); ok {
			if c, ok := reg.lookup(a.Name); ok && len(f.args) >= c.Arity {
				return &redex{at: f, comb: c}
			}
		}
		for i := len(f.args) - 1; i >= 0; i-- {
			arg, ok := f.args[i].(combinator.App)
			if !ok || arg.Len() == 0 {
				continue
			}
			h, a := combinator.Spine(arg)
			stack = append(stack, &frame{head: h, args: a, parent: f, index: i, depth: f.depth + 1})
		}
	}
	return nil
}

// HasWeakRedex reports whether t can take a reduction step under reg.
// Atoms and the empty term never can.
func HasWeakRedex(reg *Registry, t combinator.Term) bool {
	return locate(reg, t) != nil
}
