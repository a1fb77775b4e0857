package reducer

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
)

// Slot is one element of a combinator template: either the index of an
// argument or a nested group standing for a sub-application.
type Slot struct {
	index  int
	group  []Slot
	nested bool
}

// Arg is the slot filled by the i-th argument (0-based).
func Arg(i int) Slot { return Slot{index: i} }

// Group is a sub-application made of the given slots.
func Group(slots ...Slot) Slot {
	return Slot{group: cloneSlots(slots), nested: true}
}

func (s Slot) IsGroup() bool { return s.nested }

// Index returns the argument index of a non-group slot.
func (s Slot) Index() int { return s.index }

// Slots returns a copy of the slots of a group.
func (s Slot) Slots() []Slot { return cloneSlots(s.group) }

// Template is a combinator body, e.g. [0 2 [1 2]] for S.
type Template []Slot

// String renders the template in term notation with digits for indices,
// e.g. "02(12)".
func (t Template) String() string {
	var sb strings.Builder
	writeSlots(&sb, t)
	return sb.String()
}

func writeSlots(sb *strings.Builder, slots []Slot) {
	for _, s := range slots {
		if s.nested {
			sb.WriteByte('(')
			writeSlots(sb, s.group)
			sb.WriteByte(')')
			continue
		}
		sb.WriteString(strconv.Itoa(s.index))
	}
}

// ParseTemplate reads a template written in term notation where every atom
// is a single digit naming an argument, e.g. "02(12)" for S.
func ParseTemplate(src string) (Template, error) {
	term, err := combinator.Parse(src)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidTemplate, "%q: %v", src, err)
	}
	if app, ok := term.(combinator.App); ok {
		return slotsOf(app)
	}
	s, err := slotOf(term)
	if err != nil {
		return nil, err
	}
	return Template{s}, nil
}

func slotsOf(app combinator.App) ([]Slot, error) {
	slots := make([]Slot, 0, app.Len())
	for _, item := range app.Items() {
		s, err := slotOf(item)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func slotOf(t combinator.Term) (Slot, error) {
	switch v := t.(type) {
	case combinator.Atom:
		i, err := strconv.Atoi(v.Name)
		if err != nil {
			return Slot{}, errors.Wrapf(ErrInvalidTemplate, "slot %q is not an argument index", v.Name)
		}
		return Arg(i), nil
	case combinator.App:
		group, err := slotsOf(v)
		if err != nil {
			return Slot{}, err
		}
		return Slot{group: group, nested: true}, nil
	}
	return Slot{}, errors.Wrapf(ErrInvalidTemplate, "unexpected term %T", t)
}

// validate checks that the template is non-empty, that no group is empty
// and that every index is within arity.
func validate(arity int, tmpl Template) error {
	if arity < 0 {
		return errors.Wrapf(ErrInvalidTemplate, "negative arity %d", arity)
	}
	if len(tmpl) == 0 {
		return errors.Wrap(ErrInvalidTemplate, "empty template")
	}
	stack := [][]Slot{tmpl}
	for len(stack) > 0 {
		slots := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range slots {
			if s.nested {
				if len(s.group) == 0 {
					return errors.Wrap(ErrInvalidTemplate, "empty group")
				}
				stack = append(stack, s.group)
				continue
			}
			if s.index < 0 || s.index >= arity {
				return errors.Wrapf(ErrInvalidTemplate, "index %d out of range for arity %d", s.index, arity)
			}
		}
	}
	return nil
}

func cloneSlots(slots []Slot) []Slot {
	if slots == nil {
		return nil
	}
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{index: s.index, nested: s.nested, group: cloneSlots(s.group)}
	}
	return out
}
