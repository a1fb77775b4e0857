package reducer

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
)

// Combinator is a named rewrite rule: applied to at least Arity arguments,
// the application is replaced by Template instantiated with them.
type Combinator struct {
	Name     string
	Arity    int
	Template Template
}

// Rule renders the combinator as a rewrite rule, e.g. "Sabc → ac(bc)".
func (c Combinator) Rule() string {
	args := make([]combinator.Term, c.Arity)
	for i := range args {
		args[i] = combinator.NewAtom(placeholder(i))
	}
	lhs := combinator.Apply(combinator.NewAtom(c.Name), args...)
	return fmt.Sprintf("%s → %s", lhs, Instantiate(c.Template, args))
}

func (c Combinator) String() string {
	return fmt.Sprintf("%s/%d %s", c.Name, c.Arity, c.Template)
}

func placeholder(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return fmt.Sprintf("x%d", i)
}

// Registry maps combinator names to their rules.
//
// Registration is not safe for concurrent use. Once frozen (NewMachine
// freezes the registry it is given) a Registry is read-only and may be
// shared between goroutines.
type Registry struct {
	combinators map[string]Combinator
	order       []string
	frozen      atomic.Bool
}

func NewRegistry() *Registry {
	return &Registry{combinators: make(map[string]Combinator)}
}

// SKI returns a fresh registry with I, K and S.
func SKI() *Registry {
	r := NewRegistry()
	r.mustRegister("I", 1, Arg(0))
	r.mustRegister("K", 2, Arg(0))
	r.mustRegister("S", 3, Arg(0), Arg(2), Group(Arg(1), Arg(2)))
	return r
}

// Extended returns a fresh registry with I, K, S plus B, C and W.
func Extended() *Registry {
	r := SKI()
	r.mustRegister("B", 3, Arg(0), Group(Arg(1), Arg(2)))
	r.mustRegister("C", 3, Arg(0), Arg(2), Arg(1))
	r.mustRegister("W", 2, Arg(0), Arg(1), Arg(1))
	return r
}

func (r *Registry) mustRegister(name string, arity int, template ...Slot) {
	if err := r.Register(name, arity, template...); err != nil {
		panic(err)
	}
}

// Register adds a combinator. It fails with ErrInvalidTemplate if the
// template references an argument index outside [0, arity) or is
// malformed, and with ErrDuplicateCombinator if the name is taken. On
// failure the registry is left unchanged.
func (r *Registry) Register(name string, arity int, template ...Slot) error {
	if r.frozen.Load() {
		return errors.Wrapf(ErrRegistryFrozen, "register %q", name)
	}
	if err := validName(name); err != nil {
		return err
	}
	if _, ok := r.combinators[name]; ok {
		return errors.Wrapf(ErrDuplicateCombinator, "%q", name)
	}
	tmpl := Template(cloneSlots(template))
	if err := validate(arity, tmpl); err != nil {
		return errors.Wrapf(err, "combinator %q", name)
	}
	r.combinators[name] = Combinator{Name: name, Arity: arity, Template: tmpl}
	r.order = append(r.order, name)
	return nil
}

func validName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidTemplate, "empty combinator name")
	}
	if strings.ContainsAny(name, "()") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errors.Wrapf(ErrInvalidTemplate, "combinator name %q contains parentheses or spaces", name)
	}
	return nil
}

// Lookup returns the combinator registered under name.
func (r *Registry) Lookup(name string) (Combinator, bool) {
	c, ok := r.combinators[name]
	if !ok {
		return Combinator{}, false
	}
	c.Template = Template(cloneSlots(c.Template))
	return c, true
}

// lookup is Lookup without the defensive copy, for the reduction loop.
func (r *Registry) lookup(name string) (Combinator, bool) {
	c, ok := r.combinators[name]
	return c, ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// Freeze makes the registry read-only.
func (r *Registry) Freeze() { r.frozen.Store(true) }

func (r *Registry) Frozen() bool { return r.frozen.Load() }

// Clone returns an unfrozen copy, useful to extend a built-in set.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for _, name := range r.order {
		comb := r.combinators[name]
		comb.Template = Template(cloneSlots(comb.Template))
		c.combinators[name] = comb
		c.order = append(c.order, name)
	}
	return c
}
