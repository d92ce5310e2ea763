package gen

import (
	"bytes"
	"sort"
	"text/template"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/dialect"
)

// Module versions required by the generated service.
var requireVersions = map[string]string{
	"github.com/gin-gonic/gin":        "v1.10.1",
	"github.com/gin-contrib/cors":     "v1.7.5",
	"github.com/gin-contrib/static":   "v1.1.5",
	"github.com/joho/godotenv":        "v1.5.1",
	"github.com/golang-jwt/jwt/v5":    "v5.3.0",
	"golang.org/x/crypto":             "v0.46.0",
	"github.com/go-sql-driver/mysql":  "v1.9.3",
	"github.com/microsoft/go-mssqldb": "v1.8.0",
}

// Require is one require line of the generated go.mod.
type Require struct {
	Path    string
	Version string
}

var goModTemplate = template.Must(template.New("go.mod").Parse(`module {{ .Module }}

go {{ .GoVersion }}

require (
{{- range .Requires }}
	{{ .Path }} {{ .Version }}
{{- end }}
)
`))

// Requires returns the modules the generated service imports directly,
// in import path order. Indirect requirements are left to go mod tidy.
func Requires(a *ast.AST) []Require {
	paths := []string{"github.com/gin-gonic/gin"}
	if a.HasMiddleware(ast.CORS) {
		paths = append(paths, "github.com/gin-contrib/cors")
	}
	if a.HasMiddleware(ast.Static) {
		paths = append(paths, "github.com/gin-contrib/static")
	}
	if a.EnvFile != "" {
		paths = append(paths, "github.com/joho/godotenv")
	}
	if a.JWTAuth() {
		paths = append(paths, "github.com/golang-jwt/jwt/v5", "golang.org/x/crypto")
	}
	switch a.DB.Dialect {
	case dialect.MySQL:
		paths = append(paths, "github.com/go-sql-driver/mysql")
	case dialect.MSSQL:
		paths = append(paths, "github.com/microsoft/go-mssqldb")
	}
	sort.Strings(paths)
	reqs := make([]Require, 0, len(paths))
	for _, p := range paths {
		reqs = append(reqs, Require{Path: p, Version: requireVersions[p]})
	}
	return reqs
}

// goMod renders the go.mod of the generated service.
func (g *JenniferGenerator) goMod() ([]byte, error) {
	var buf bytes.Buffer
	err := goModTemplate.Execute(&buf, struct {
		Module    string
		GoVersion string
		Requires  []Require
	}{
		Module:    g.cfg.Module,
		GoVersion: g.cfg.GoVersion,
		Requires:  Requires(g.ast),
	})
	if err != nil {
		return nil, NewGenerationError("go.mod", "template", "", err)
	}
	return buf.Bytes(), nil
}
