package combinator

import "strings"

// String renders the application in minimal left-associative form: items
// are concatenated and exactly the items that are applications get
// parentheses. The outermost application is never wrapped.
func (a App) String() string {
	var sb strings.Builder
	writeApp(&sb, a)
	return sb.String()
}

// Print renders t, or the empty string for nil.
func Print(t Term) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func writeApp(sb *strings.Builder, root App) {
	type item struct {
		term  Term
		close bool
	}
	stack := make([]item, 0, len(root.items))
	push := func(items []Term) {
		for i := len(items) - 1; i >= 0; i-- {
			stack = append(stack, item{term: items[i]})
		}
	}
	push(root.items)
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.close {
			sb.WriteByte(')')
			continue
		}
		switch t := it.term.(type) {
		case Atom:
			sb.WriteString(t.Name)
		case App:
			sb.WriteByte('(')
			stack = append(stack, item{close: true})
			push(t.items)
		}
	}
}
