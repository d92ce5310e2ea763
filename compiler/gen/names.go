package gen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"

	"github.com/syssam/essence/compiler/ast"
)

var (
	rules    = inflect.NewDefaultRuleset()
	acronyms = map[string]bool{"ID": true, "URL": true, "API": true, "JSON": true, "HTTP": true}
)

// reserved holds identifiers the routes package declares itself.
var reserved = map[string]bool{
	"Mount":        true,
	"RegisterAuth": true,
	"authRegister": true,
	"authLogin":    true,
	"credentials":  true,
	"passwordCost": true,
}

// Group is a route group with the identifiers and file name its routes
// file is generated under.
type Group struct {
	ast.RouteGroup
	// Register is the exported function mounting the group's routes.
	Register string
	// File is the file name inside the routes package.
	File string
	// Handlers holds one handler name per route, in route order.
	Handlers []string
}

// pascal joins the alphanumeric words of s in PascalCase.
func pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		if u := strings.ToUpper(w); acronyms[u] {
			b.WriteString(u)
			continue
		}
		b.WriteString(rules.Camelize(w))
	}
	return b.String()
}

// handlerName derives the base handler name of a route from its action
// and collection: listItems, getItem, createItem.
func handlerName(r ast.RouteDef) string {
	coll := pascal(r.Collection)
	if coll == "" {
		coll = "Root"
	}
	switch r.Action {
	case ast.ListAll:
		return "list" + coll
	case ast.GetByID:
		return "get" + pascal(rules.Singularize(r.Collection))
	case ast.Insert:
		return "create" + pascal(rules.Singularize(r.Collection))
	default:
		return "handle" + coll
	}
}

// registerName derives the group's register function name.
func registerName(prefix string) string {
	if p := pascal(prefix); p != "" {
		return "Register" + p
	}
	return "RegisterRoot"
}

// fileName derives the routes file of a group. Prefixes that collide with
// the fixed files of the package, or that contain separators that could
// read as build constraints, get a "_group" suffix.
func fileName(prefix string) string {
	if prefix == "" {
		return "root.go"
	}
	name := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return '_'
		}
		return r
	}, prefix)
	if name == "auth" || name == "index" || name == "root" || strings.Contains(name, "_") {
		name += "_group"
	}
	return name + ".go"
}

// uniquer hands out names not seen before, appending a numeric suffix
// on collision.
type uniquer struct {
	seen  map[string]bool
	fold  bool
	split func(string) (string, string)
}

func newUniquer(fold bool, split func(string) (string, string), taken map[string]bool) *uniquer {
	u := &uniquer{seen: make(map[string]bool), fold: fold, split: split}
	for k := range taken {
		u.seen[u.key(k)] = true
	}
	return u
}

func (u *uniquer) key(s string) string {
	if u.fold {
		return strings.ToLower(s)
	}
	return s
}

func (u *uniquer) next(name string) string {
	base, ext := u.split(name)
	for i := 1; ; i++ {
		c := name
		if i > 1 {
			c = base + strconv.Itoa(i) + ext
		}
		if !u.seen[u.key(c)] {
			u.seen[u.key(c)] = true
			return c
		}
	}
}

func identSplit(s string) (string, string) { return s, "" }

func fileSplit(s string) (string, string) {
	return strings.TrimSuffix(s, ".go"), ".go"
}

// NameGroups names the groups of a routes package. Identifiers are unique
// across the whole package and file names are unique ignoring case.
func NameGroups(groups []ast.RouteGroup) []*Group {
	var (
		idents = newUniquer(false, identSplit, reserved)
		files  = newUniquer(true, fileSplit, map[string]bool{"index.go": true, "auth.go": true})
		out    = make([]*Group, 0, len(groups))
	)
	for _, g := range groups {
		ng := &Group{
			RouteGroup: g,
			Register:   idents.next(registerName(g.Prefix)),
			File:       files.next(fileName(g.Prefix)),
		}
		for _, r := range g.Routes {
			ng.Handlers = append(ng.Handlers, idents.next(handlerName(r)))
		}
		out = append(out, ng)
	}
	return out
}
