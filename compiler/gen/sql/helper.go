package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/essence/compiler/gen"
	"github.com/syssam/essence/dialect"
)

// Import paths referenced by the generated service.
const (
	ginPkg      = "github.com/gin-gonic/gin"
	corsPkg     = "github.com/gin-contrib/cors"
	staticPkg   = "github.com/gin-contrib/static"
	godotenvPkg = "github.com/joho/godotenv"
	jwtPkg      = "github.com/golang-jwt/jwt/v5"
	bcryptPkg   = "golang.org/x/crypto/bcrypt"
	httpPkg     = "net/http"
	slogPkg     = "log/slog"
	sqlPkg      = "database/sql"
	contextPkg  = "context"
)

// servicePkgs are the packages of the generated service itself.
var servicePkgs = []string{"auth", "db", "routes"}

// newFile creates a file of package pkg with the import names of the
// generated service pinned, so versioned paths such as jwt/v5 are not
// aliased by their last segment.
func newFile(h gen.GeneratorHelper, pkg string) *jen.File {
	f := h.NewFile(pkg)
	f.ImportNames(map[string]string{
		ginPkg:      "gin",
		corsPkg:     "cors",
		staticPkg:   "static",
		godotenvPkg: "godotenv",
		jwtPkg:      "jwt",
		bcryptPkg:   "bcrypt",
	})
	for _, p := range servicePkgs {
		f.ImportName(h.PkgPath(p), p)
	}
	return f
}

// ginContext is the *gin.Context parameter of a handler.
func ginContext() jen.Code {
	return jen.Id("c").Op("*").Qual(ginPkg, "Context")
}

// ginH returns a gin.H literal.
func ginH(dict jen.Dict) *jen.Statement {
	return jen.Qual(ginPkg, "H").Values(dict)
}

// status returns the net/http status constant.
func status(name string) *jen.Statement {
	return jen.Qual(httpPkg, name)
}

// respond emits c.JSON(status, body).
func respond(code string, body jen.Code) jen.Code {
	return jen.Id("c").Dot("JSON").Call(status(code), body)
}

// respondError emits c.JSON(status, gin.H{"error": msg}) followed by return.
func respondError(code, msg string) []jen.Code {
	return []jen.Code{
		respond(code, ginH(jen.Dict{jen.Lit("error"): jen.Lit(msg)})),
		jen.Return(),
	}
}

// failOnErr hands err to the error handler and returns from the handler.
func failOnErr() jen.Code {
	return jen.If(jen.Err().Op("!=").Nil()).Block(
		jen.Id("c").Dot("Error").Call(jen.Err()),
		jen.Return(),
	)
}

// requestCtx is c.Request.Context().
func requestCtx() *jen.Statement {
	return jen.Id("c").Dot("Request").Dot("Context").Call()
}

// dbGet is db.Get() of the generated db package.
func dbGet(dbPkg string) *jen.Statement {
	return jen.Qual(dbPkg, "Get").Call()
}

// arg binds value to the statement parameter name in the dialect's style.
func arg(d dialect.Dialect, name string, value jen.Code) jen.Code {
	if d.Binding() == dialect.Named {
		return jen.Qual(sqlPkg, "Named").Call(jen.Lit(name), value)
	}
	return value
}

// query emits
//
//	rows, err := db.Get().QueryContext(ctx, stmt, args...)
//	if err != nil { ... }
//	result, err := db.Rows(rows)
//	if err != nil { ... }
func query(dbPkg, stmt string, args ...jen.Code) []jen.Code {
	params := append([]jen.Code{jen.Id("ctx"), jen.Lit(stmt)}, args...)
	return []jen.Code{
		jen.List(jen.Id("rows"), jen.Err()).Op(":=").Add(dbGet(dbPkg)).Dot("QueryContext").Call(params...),
		failOnErr(),
		jen.List(jen.Id("result"), jen.Err()).Op(":=").Qual(dbPkg, "Rows").Call(jen.Id("rows")),
		failOnErr(),
	}
}
