package combinator

// Term represents a combinatory logic term: either an Atom or an App.
type Term interface {
	String() string
	isTerm()
}

// Atom is a combinator name or a free variable.
type Atom struct {
	Name string
}

func NewAtom(name string) Atom { return Atom{Name: name} }

func (Atom) isTerm() {}

func (a Atom) String() string {
	return a.Name
}

// App is a left-associative application. The first item is in function
// position, the remaining items are its arguments in order.
//
// The items are not exposed, so an App can never change once built. The
// zero App is the empty application, which only exists transiently.
type App struct {
	items []Term
}

func (App) isTerm() {}

// Len returns the number of items, function position included.
func (a App) Len() int { return len(a.items) }

// At returns the i-th item.
func (a App) At(i int) Term { return a.items[i] }

// Items returns a copy of the items.
func (a App) Items() []Term {
	return append([]Term(nil), a.items...)
}

// NewApp builds an application from its items. A single item collapses to
// itself; no item, a nil item or an empty application item is an error.
func NewApp(items ...Term) (Term, error) {
	if len(items) == 0 {
		return nil, ErrEmptyTerm
	}
	for _, it := range items {
		if it == nil || IsEmpty(it) {
			return nil, ErrEmptyTerm
		}
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return App{items: append([]Term(nil), items...)}, nil
}

// MustApp is like NewApp but panics on error. Meant for literals in tests
// and tables.
func MustApp(items ...Term) Term {
	t, err := NewApp(items...)
	if err != nil {
		panic(err)
	}
	return t
}

// Apply applies fn to args. If fn is itself an application its items are
// spliced into head position, so the result stays a flat spine.
func Apply(fn Term, args ...Term) Term {
	if len(args) == 0 {
		return fn
	}
	var items []Term
	if app, ok := fn.(App); ok {
		items = make([]Term, 0, len(app.items)+len(args))
		items = append(items, app.items...)
	} else {
		items = make([]Term, 0, 1+len(args))
		items = append(items, fn)
	}
	items = append(items, args...)
	return App{items: items}
}

// IsAtom reports whether t is an Atom.
func IsAtom(t Term) bool {
	_, ok := t.(Atom)
	return ok
}

// IsEmpty reports whether t is the empty application.
func IsEmpty(t Term) bool {
	app, ok := t.(App)
	return ok && len(app.items) == 0
}

// Spine flattens the leftmost spine of t: ((f a) b) c gives f and [a b c].
// The returned slice is fresh and may be modified by the caller.
func Spine(t Term) (Term, []Term) {
	app, ok := t.(App)
	if !ok || len(app.items) == 0 {
		return t, nil
	}
	// Collect nested heads first so args can be allocated once.
	chain := []App{app}
	n := len(app.items) - 1
	for {
		inner, ok := chain[len(chain)-1].items[0].(App)
		if !ok || len(inner.items) == 0 {
			break
		}
		chain = append(chain, inner)
		n += len(inner.items) - 1
	}
	head := chain[len(chain)-1].items[0]
	args := make([]Term, 0, n)
	for i := len(chain) - 1; i >= 0; i-- {
		args = append(args, chain[i].items[1:]...)
	}
	return head, args
}

// Equal reports structural equality.
func Equal(a, b Term) bool {
	type pair struct{ a, b Term }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch x := p.a.(type) {
		case Atom:
			y, ok := p.b.(Atom)
			if !ok || x.Name != y.Name {
				return false
			}
		case App:
			y, ok := p.b.(App)
			if !ok || len(x.items) != len(y.items) {
				return false
			}
			for i := range x.items {
				stack = append(stack, pair{x.items[i], y.items[i]})
			}
		default:
			if p.a != nil || p.b != nil {
				return false
			}
		}
	}
	return true
}

// Size counts the atoms in t.
func Size(t Term) int {
	n := 0
	stack := []Term{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := cur.(type) {
		case Atom:
			n++
		case App:
			stack = append(stack, v.items...)
		}
	}
	return n
}
