package parse

import (
	"errors"

	"github.com/syssam/essence/compiler/ast"
)

// errMalformed is returned by an apply func whose captured value turns
// out unusable; the line is then treated like a failed capture.
var errMalformed = errors.New("parse: malformed directive")

// Result holds the outcome of a successful build.
type Result struct {
	AST      *ast.AST
	Warnings []Warning
}

// Parse is shorthand for Build(Lines(src)).
func Parse(src string) (*Result, error) {
	return Build(Lines(src))
}

// Build folds lines into an AST starting from ast.New(). A fatal
// directive error aborts the build and no AST is returned.
func Build(lines []Line) (*Result, error) {
	res := &Result{AST: ast.New()}
	for _, l := range lines {
		next, w, err := Step(res.AST, l)
		if err != nil {
			return nil, err
		}
		if w != nil {
			res.Warnings = append(res.Warnings, *w)
		}
		res.AST = next
	}
	return res, nil
}

// Step applies a single line to a. It never modifies a: when the line
// has an effect the returned AST is a modified copy, otherwise a is
// returned unchanged together with a warning.
func Step(a *ast.AST, l Line) (*ast.AST, *Warning, error) {
	d := lookup(l.Text)
	if d == nil {
		return a, &Warning{Line: l, Kind: Unrecognized}, nil
	}
	var m []string
	if d.pattern != nil {
		if m = d.pattern.FindStringSubmatch(l.Text); m == nil {
			return a, &Warning{Line: l, Kind: Malformed, Directive: d.name}, nil
		}
	}
	next := a.Clone()
	switch err := d.apply(next, l, m); {
	case errors.Is(err, errMalformed):
		return a, &Warning{Line: l, Kind: Malformed, Directive: d.name}, nil
	case err != nil:
		return nil, nil, err
	}
	return next, nil, nil
}

func lookup(text string) *directive {
	for _, d := range directives {
		if d.claims(text) {
			return d
		}
	}
	return nil
}
