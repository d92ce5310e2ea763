package parse

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/essence"
	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/dialect"
)

// directive is one entry of the ordered directive table. A line is
// claimed by the first directive whose prefix (and optional contains
// marker) matches. If pattern is set it must also match, otherwise the
// line is malformed and dropped.
type directive struct {
	name     string
	prefix   string
	contains string
	pattern  *regexp.Regexp
	apply    func(a *ast.AST, l Line, m []string) error
}

func (d *directive) claims(text string) bool {
	return strings.HasPrefix(text, d.prefix) && strings.Contains(text, d.contains)
}

// routePath matches an absolute route path such as /items/:id or the
// root path /.
const routePath = `(/[\w/:]*)`

// directives lists every statement of the language in match order.
var directives = []*directive{
	{
		name:   "essence",
		prefix: "essence: express",
		apply:  func(*ast.AST, Line, []string) error { return nil },
	},
	{
		name:    "port",
		prefix:  "speak at port ",
		pattern: regexp.MustCompile(`^speak at port (\d+)`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			port, err := strconv.Atoi(m[1])
			if err != nil {
				return errMalformed
			}
			a.Server.Port = port
			return nil
		},
	},
	{
		name:   "json",
		prefix: "whisper: parse incoming as json",
		apply:  middleware(ast.JSON),
	},
	{
		name:    "environment",
		prefix:  "whisper: load environment from ",
		pattern: regexp.MustCompile(`whisper:\s*load environment from '([^']+)'`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.EnvFile = m[1]
			return nil
		},
	},
	{
		name:   "cors",
		prefix: "whisper: enable cors",
		apply:  middleware(ast.CORS),
	},
	{
		name:    "db type",
		prefix:  "whisper: db type ",
		pattern: regexp.MustCompile(`whisper:\s*db type (\w+)`),
		apply: func(a *ast.AST, l Line, m []string) error {
			v := strings.ToLower(m[1])
			if !slices.Contains(dialect.Names, v) {
				return essence.NewDirectiveError(l.Num, "db type", v, dialect.Names...)
			}
			a.DB.Dialect = v
			return nil
		},
	},
	{
		name:    "connect",
		prefix:  "whisper: connect to '",
		pattern: regexp.MustCompile(`connect to '([^']+)'`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.DB.URL = m[1]
			return nil
		},
	},
	{
		name:    "collection",
		prefix:  "whisper: use collection '",
		pattern: regexp.MustCompile(`use collection '(\w+)'`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.DB.Collections = appendUnique(a.DB.Collections, m[1])
			return nil
		},
	},
	{
		name:   "logger",
		prefix: "whisper: log requests",
		apply:  middleware(ast.Logger),
	},
	{
		name:    "static",
		prefix:  "whisper: serve static from ",
		pattern: regexp.MustCompile(`whisper:\s*serve static from '([^']+)'`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.Middlewares = append(a.Middlewares, ast.Middleware{Kind: ast.Static, Arg: m[1]})
			return nil
		},
	},
	{
		name:   "auth enable",
		prefix: "whisper: auth enable",
		apply: func(a *ast.AST, _ Line, _ []string) error {
			a.Auth.Enabled = true
			return nil
		},
	},
	{
		name:    "auth strategy",
		prefix:  "whisper: auth strategy ",
		pattern: regexp.MustCompile(`whisper:\s*auth strategy (\w+)`),
		apply: func(a *ast.AST, l Line, m []string) error {
			v := strings.ToLower(m[1])
			if v != ast.StrategyJWT {
				return essence.NewDirectiveError(l.Num, "auth strategy", v, ast.StrategyJWT)
			}
			a.Auth.Strategy = v
			return nil
		},
	},
	{
		name:    "auth route",
		prefix:  "whisper: auth route ",
		pattern: regexp.MustCompile(`whisper:\s*auth route ` + routePath + ` requires login`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.Auth.ProtectedRoutes = appendUnique(a.Auth.ProtectedRoutes, m[1])
			return nil
		},
	},
	{
		name:    "frontend framework",
		prefix:  "whisper: frontend framework ",
		pattern: regexp.MustCompile(`whisper:\s*frontend framework (\w+)`),
		apply: func(a *ast.AST, l Line, m []string) error {
			v := strings.ToLower(m[1])
			if v != ast.FrameworkReact {
				return essence.NewDirectiveError(l.Num, "frontend framework", v, ast.FrameworkReact)
			}
			if a.Frontend == nil {
				a.Frontend = &ast.FrontendConfig{}
			}
			a.Frontend.Framework = v
			return nil
		},
	},
	{
		name:    "npm install",
		prefix:  "whisper: npm install ",
		pattern: regexp.MustCompile(`whisper:\s*npm install (\S+)`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			if a.Frontend == nil {
				a.Frontend = &ast.FrontendConfig{}
			}
			a.Frontend.Packages = append(a.Frontend.Packages, m[1])
			return nil
		},
	},
	{
		name:     "list route",
		prefix:   "when asked for ",
		contains: "offer all items from",
		pattern:  regexp.MustCompile(`when asked for ` + routePath + `, offer all items from '(\w+)'`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.Routes = append(a.Routes, ast.RouteDef{Method: ast.MethodGet, Path: m[1], Action: ast.ListAll, Collection: m[2]})
			return nil
		},
	},
	{
		name:     "get route",
		prefix:   "when asked for ",
		contains: "retrieve item by id from",
		pattern:  regexp.MustCompile(`when asked for ` + routePath + `, retrieve item by id from '(\w+)'`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.Routes = append(a.Routes, ast.RouteDef{Method: ast.MethodGet, Path: m[1], Action: ast.GetByID, Collection: m[2]})
			return nil
		},
	},
	{
		name:     "insert route",
		prefix:   "when posted to ",
		contains: "insert into",
		pattern:  regexp.MustCompile(`when posted to ` + routePath + ` with body \{([\w\s,]+)\}, insert into '(\w+)', return inserted document`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.Routes = append(a.Routes, ast.RouteDef{
				Method:     ast.MethodPost,
				Path:       m[1],
				Action:     ast.Insert,
				Collection: m[3],
				BodyFields: SplitBody(m[2]),
			})
			return nil
		},
	},
	{
		name:    "migration",
		prefix:  "whisper: db migration ",
		pattern: regexp.MustCompile(`whisper:\s*db migration '([^']+)' with fields \{([^}]+)\}`),
		apply: func(a *ast.AST, _ Line, m []string) error {
			a.Migrations = append(a.Migrations, ast.Migration{
				Table:  NormalizeTableName(m[1]),
				Fields: ParseFields(m[2]),
			})
			return nil
		},
	},
}

func middleware(kind ast.MiddlewareKind) func(*ast.AST, Line, []string) error {
	return func(a *ast.AST, _ Line, _ []string) error {
		a.Middlewares = append(a.Middlewares, ast.Middleware{Kind: kind})
		return nil
	}
}

func appendUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
