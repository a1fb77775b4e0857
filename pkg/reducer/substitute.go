package reducer

import "github.com/vic/goski/pkg/combinator"

// Instantiate fills tmpl with args. Index slots take the matching argument
// and groups become sub-applications. Whenever the first element of a
// sequence is itself an application its items are spliced into head
// position, so every produced spine is flat. A one-element sequence is the
// element itself.
//
// args must hold at least as many terms as the template's arity.
func Instantiate(tmpl Template, args []combinator.Term) combinator.Term {
	items := make([]combinator.Term, len(tmpl))
	for i, s := range tmpl {
		if s.nested {
			// Template depth is fixed at registration, so recursion here
			// does not grow with the term.
			items[i] = Instantiate(s.group, args)
		} else {
			items[i] = args[s.index]
		}
	}
	return combinator.Apply(items[0], items[1:]...)
}
