package lambda

import "fmt"

// Term represents a lambda calculus term.
type Term interface {
	String() string
}

// Var represents a variable usage.
type Var struct {
	Name string
}

func (v Var) String() string {
	return v.Name
}

// Abs represents an abstraction, written "x: body".
type Abs struct {
	Arg  string
	Body Term
}

func (a Abs) String() string {
	return fmt.Sprintf("(%s: %s)", a.Arg, a.Body)
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (a App) String() string {
	return fmt.Sprintf("(%s %s)", a.Fun, a.Arg)
}

// FreeVars returns the names occurring free in t.
func FreeVars(t Term) map[string]bool {
	free := make(map[string]bool)
	bound := make(map[string]int)
	var walk func(Term)
	walk = func(t Term) {
		switch v := t.(type) {
		case Var:
			if bound[v.Name] == 0 {
				free[v.Name] = true
			}
		case Abs:
			bound[v.Arg]++
			walk(v.Body)
			bound[v.Arg]--
		case App:
			walk(v.Fun)
			walk(v.Arg)
		}
	}
	walk(t)
	return free
}
