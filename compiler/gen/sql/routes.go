package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/compiler/gen"
	"github.com/syssam/essence/dialect"
)

// genIndex generates the route index (routes/index.go).
func genIndex(h gen.GeneratorHelper) *jen.File {
	f := newFile(h, "routes")

	var body []jen.Code
	if h.SQL() != nil {
		body = append(body,
			jen.If(
				jen.Err().Op(":=").Qual(h.PkgPath("db"), "Wait").Call(jen.Id("ctx")),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Err())),
		)
	}
	if h.AST().JWTAuth() {
		body = append(body, jen.Id("RegisterAuth").Call(group("/auth")))
	}
	for _, g := range h.Groups() {
		body = append(body, jen.Id(g.Register).Call(group(g.MountPath())))
	}
	body = append(body, jen.Return(jen.Nil()))

	f.Comment("Mount registers every route below r. With a database it first")
	f.Comment("waits for the connection and migrations to be ready.")
	f.Func().Id("Mount").Params(
		jen.Id("ctx").Qual(contextPkg, "Context"),
		jen.Id("r").Qual(ginPkg, "IRouter"),
	).Error().Block(body...)
	return f
}

// group emits r.Group(path).
func group(path string) jen.Code {
	return jen.Id("r").Dot("Group").Call(jen.Lit(path))
}

// genGroup generates the routes file of one group (routes/{file}).
// Without a database the register function mounts nothing.
func genGroup(h gen.GeneratorHelper, g *gen.Group) *jen.File {
	f := newFile(h, "routes")
	d := h.SQL()
	a := h.AST()

	var (
		registers []jen.Code
		mounted   = registered(g)
	)
	if d != nil {
		for i, r := range g.Routes {
			if !mounted[i] {
				continue
			}
			handlers := []jen.Code{jen.Lit(routePath(r))}
			if a.Protected(r.Path) {
				handlers = append(handlers, jen.Qual(h.PkgPath("auth"), "Authenticate"))
			}
			handlers = append(handlers, jen.Id(g.Handlers[i]))
			registers = append(registers, jen.Id("r").Dot(r.Method).Call(handlers...))
		}
	}
	f.Commentf("%s mounts the %s routes.", g.Register, g.MountPath())
	f.Func().Id(g.Register).Params(jen.Id("r").Qual(ginPkg, "IRouter")).Block(registers...)

	if d == nil {
		return f
	}
	dbPkg := h.PkgPath("db")
	for i, r := range g.Routes {
		if !mounted[i] {
			continue
		}
		var body []jen.Code
		switch r.Action {
		case ast.ListAll:
			body = listAll(d, dbPkg, r)
		case ast.GetByID:
			body = getByID(d, dbPkg, r)
		case ast.Insert:
			body = insert(d, dbPkg, r)
		default:
			continue
		}
		f.Commentf("%s handles %s %s.", g.Handlers[i], r.Method, r.Path)
		f.Func().Id(g.Handlers[i]).Params(ginContext()).Block(body...)
	}
	return f
}

// registered reports which routes of g are mounted. A route repeating the
// method and path of an earlier one is dropped, the first one wins.
func registered(g *gen.Group) []bool {
	var (
		mounted = make([]bool, len(g.Routes))
		seen    = make(map[string]bool)
	)
	for i, r := range g.Routes {
		key := r.Method + " " + routePath(r)
		if !seen[key] {
			seen[key] = true
			mounted[i] = true
		}
	}
	return mounted
}

// routePath returns the path a route is registered at inside its group.
// A getById route without a parameter segment gets "/:id" appended.
func routePath(r ast.RouteDef) string {
	p := ast.RelativePath(r.Path)
	if r.Action == ast.GetByID && len(ast.Params(r.Path)) == 0 {
		p += "/:id"
	}
	return p
}

// idParam returns the path parameter a getById route reads the id from.
func idParam(r ast.RouteDef) string {
	if params := ast.Params(r.Path); len(params) > 0 {
		return params[len(params)-1]
	}
	return "id"
}

func listAll(d dialect.Dialect, dbPkg string, r ast.RouteDef) []jen.Code {
	body := []jen.Code{jen.Id("ctx").Op(":=").Add(requestCtx())}
	body = append(body, query(dbPkg, d.SelectAll(r.Collection))...)
	return append(body, respond("StatusOK", jen.Id("result")))
}

func getByID(d dialect.Dialect, dbPkg string, r ast.RouteDef) []jen.Code {
	id := jen.Id("c").Dot("Param").Call(jen.Lit(idParam(r)))
	body := []jen.Code{jen.Id("ctx").Op(":=").Add(requestCtx())}
	body = append(body, query(dbPkg, d.SelectByID(r.Collection), arg(d, "id", id))...)
	return append(body,
		jen.If(jen.Len(jen.Id("result")).Op("==").Lit(0)).Block(
			respondError("StatusNotFound", "Not found")...,
		),
		respond("StatusOK", jen.Id("result").Index(jen.Lit(0))),
	)
}

// bodyFields returns the declared body fields without repeats.
func bodyFields(r ast.RouteDef) []string {
	var (
		fields []string
		seen   = make(map[string]bool)
	)
	for _, f := range r.BodyFields {
		if !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}

func insert(d dialect.Dialect, dbPkg string, r ast.RouteDef) []jen.Code {
	fields := bodyFields(r)
	doc := jen.Dict{}
	args := []jen.Code{jen.Id("ctx"), jen.Lit(d.Insert(r.Collection, fields))}
	for _, field := range fields {
		doc[jen.Lit(field)] = jen.Id("body").Index(jen.Lit(field))
		args = append(args, arg(d, field, jen.Id("doc").Index(jen.Lit(field))))
	}
	body := []jen.Code{
		jen.Var().Id("body").Map(jen.String()).Any(),
		jen.If(
			jen.Err().Op(":=").Id("c").Dot("ShouldBindJSON").Call(jen.Op("&").Id("body")),
			jen.Err().Op("!=").Nil(),
		).Block(
			respond("StatusBadRequest", ginH(jen.Dict{jen.Lit("error"): jen.Err().Dot("Error").Call()})),
			jen.Return(),
		),
		jen.Id("doc").Op(":=").Add(ginH(doc)),
		jen.Id("ctx").Op(":=").Add(requestCtx()),
	}
	exec := dbGet(dbPkg).Dot("ExecContext").Call(args...)
	if !d.ReportsInsertID() {
		return append(body,
			jen.If(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Add(exec),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Id("c").Dot("Error").Call(jen.Err()),
				jen.Return(),
			),
			respond("StatusOK", jen.Id("doc")),
		)
	}
	return append(body,
		jen.List(jen.Id("res"), jen.Err()).Op(":=").Add(exec),
		failOnErr(),
		jen.List(jen.Id("id"), jen.Err()).Op(":=").Id("res").Dot("LastInsertId").Call(),
		failOnErr(),
		jen.Comment("Submitted fields win over the generated id."),
		jen.Id("out").Op(":=").Add(ginH(jen.Dict{jen.Lit("id"): jen.Id("id")})),
		jen.For(jen.List(jen.Id("k"), jen.Id("v")).Op(":=").Range().Id("doc")).Block(
			jen.Id("out").Index(jen.Id("k")).Op("=").Id("v"),
		),
		respond("StatusOK", jen.Id("out")),
	)
}
