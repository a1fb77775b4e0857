package compiler

import (
	"bytes"
	"text/template"

	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
	"github.com/vic/goski/pkg/reducer"
)

// CodeGenerator renders a Go main package that embeds a term and the
// registry it is reduced under.
type CodeGenerator struct {
	SourceFile string
	Registry   *reducer.Registry
	MaxSteps   int
}

type genCombinator struct {
	Name     string
	Arity    int
	Template string
}

type genData struct {
	SourceFile  string
	Term        string
	MaxSteps    int
	Combinators []genCombinator
}

var mainTemplate = template.Must(template.New("main").Parse(`// Code generated by ski compile from {{printf "%q" .SourceFile}}. DO NOT EDIT.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vic/goski/pkg/combinator"
	"github.com/vic/goski/pkg/reducer"
)

const source = {{printf "%q" .Term}}

func main() {
	reg := reducer.NewRegistry()
{{- range .Combinators}}
	register(reg, {{printf "%q" .Name}}, {{.Arity}}, {{printf "%q" .Template}})
{{- end}}

	term, err := combinator.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := reducer.NewMachine(reg{{if .MaxSteps}}, reducer.WithMaxSteps({{.MaxSteps}}){{end}})
	nf, err := m.Normalize(context.Background(), term)
	fmt.Println(nf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func register(reg *reducer.Registry, name string, arity int, template string) {
	tmpl, err := reducer.ParseTemplate(template)
	if err == nil {
		err = reg.Register(name, arity, tmpl...)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
`))

// Generate returns the source of the Go program for t.
func (g *CodeGenerator) Generate(t combinator.Term) (string, error) {
	reg := g.Registry
	if reg == nil {
		reg = reducer.SKI()
	}
	data := genData{
		SourceFile: g.SourceFile,
		Term:       combinator.Print(t),
		MaxSteps:   g.MaxSteps,
	}
	for _, name := range reg.Names() {
		c, _ := reg.Lookup(name)
		data.Combinators = append(data.Combinators, genCombinator{
			Name:     c.Name,
			Arity:    c.Arity,
			Template: c.Template.String(),
		})
	}

	var buf bytes.Buffer
	if err := mainTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "render program")
	}
	return buf.String(), nil
}
