package lambda

import (
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
	"github.com/vic/goski/pkg/reducer"
)

var (
	// ErrFreeVariable is returned when a free variable cannot be written
	// in combinator notation: it is longer than one character, or it is
	// the name of a registered combinator.
	ErrFreeVariable = errors.New("free variable not representable")
	// ErrMissingBasis is returned when the registry lacks a standard S, K
	// or I.
	ErrMissingBasis = errors.New("registry lacks the S, K, I basis")
)

var basis = map[string]string{"S": "02(12)", "K": "0", "I": "0"}

// ToCombinator translates t into a combinator term by bracket abstraction
// over the S, K and I of reg:
//
//	[x]x     = I
//	[x]M     = K M          x not free in M
//	[x](M x) = M            x not free in M
//	[x](M N) = S [x]M [x]N
func ToCombinator(t Term, reg *reducer.Registry) (combinator.Term, error) {
	for name, tmpl := range basis {
		c, ok := reg.Lookup(name)
		if !ok || c.Template.String() != tmpl {
			return nil, errors.Wrapf(ErrMissingBasis, "%s", name)
		}
	}
	tr := &translator{reg: reg, bound: make(map[string]string)}
	return tr.compile(t)
}

type translator struct {
	reg   *reducer.Registry
	bound map[string]string // source name -> private atom name
	fresh int
}

var (
	atomS = combinator.NewAtom("S")
	atomK = combinator.NewAtom("K")
	atomI = combinator.NewAtom("I")
)

func (tr *translator) compile(t Term) (combinator.Term, error) {
	switch v := t.(type) {
	case Var:
		if name, ok := tr.bound[v.Name]; ok {
			return combinator.NewAtom(name), nil
		}
		if utf8.RuneCountInString(v.Name) != 1 {
			return nil, errors.Wrapf(ErrFreeVariable, "%q is not a single character", v.Name)
		}
		if _, ok := tr.reg.Lookup(v.Name); ok {
			return nil, errors.Wrapf(ErrFreeVariable, "%q names a combinator", v.Name)
		}
		return combinator.NewAtom(v.Name), nil

	case App:
		fun, err := tr.compile(v.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := tr.compile(v.Arg)
		if err != nil {
			return nil, err
		}
		return combinator.Apply(fun, arg), nil

	case Abs:
		// Binders get private names so they can never be confused with
		// the S, K and I atoms produced along the way.
		name := "\x00" + strconv.Itoa(tr.fresh)
		tr.fresh++
		old, had := tr.bound[v.Arg]
		tr.bound[v.Arg] = name
		body, err := tr.compile(v.Body)
		if had {
			tr.bound[v.Arg] = old
		} else {
			delete(tr.bound, v.Arg)
		}
		if err != nil {
			return nil, err
		}
		return abstract(name, body), nil
	}
	return nil, errors.Errorf("unexpected lambda term %T", t)
}

func abstract(x string, m combinator.Term) combinator.Term {
	if !occurs(x, m) {
		return combinator.Apply(atomK, m)
	}
	app, ok := m.(combinator.App)
	if !ok {
		// m is the atom x itself.
		return atomI
	}
	items := app.Items()
	last := items[len(items)-1]
	prefix := combinator.MustApp(items[:len(items)-1]...)
	if a, ok := last.(combinator.Atom); ok && a.Name == x && !occurs(x, prefix) {
		return prefix
	}
	return combinator.Apply(atomS, abstract(x, prefix), abstract(x, last))
}

func occurs(x string, m combinator.Term) bool {
	stack := []combinator.Term{m}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := cur.(type) {
		case combinator.Atom:
			if v.Name == x {
				return true
			}
		case combinator.App:
			stack = append(stack, v.Items()...)
		}
	}
	return false
}
