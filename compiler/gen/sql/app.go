package sql

import (
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/compiler/gen"
)

// genApp generates the program entry point (app.go).
func genApp(h gen.GeneratorHelper) *jen.File {
	a := h.AST()
	f := newFile(h, "main")

	var body []jen.Code
	if a.EnvFile != "" {
		body = append(body,
			jen.If(
				jen.Err().Op(":=").Qual(godotenvPkg, "Load").Call(jen.Lit(a.EnvFile)),
				jen.Err().Op("!=").Nil(),
			).Block(
				jen.Qual(slogPkg, "Warn").Call(jen.Lit("load environment"), jen.Lit("file"), jen.Lit(a.EnvFile), jen.Lit("error"), jen.Err()),
			),
		)
	}
	body = append(body, jen.Id("ctx").Op(":=").Qual(contextPkg, "Background").Call())
	if h.SQL() != nil {
		body = append(body, jen.Qual(h.PkgPath("db"), "Init").Call(jen.Id("ctx")))
	}
	body = append(body, jen.Line(), jen.Id("router").Op(":=").Qual(ginPkg, "New").Call())

	var parseJSON bool
	for _, m := range a.Middlewares {
		switch m.Kind {
		case ast.JSON:
			parseJSON = true
			body = append(body, use(jen.Id("parseJSON")))
		case ast.CORS:
			body = append(body, use(jen.Qual(corsPkg, "Default").Call()))
		case ast.Logger:
			body = append(body, use(jen.Qual(ginPkg, "Logger").Call()))
		case ast.Static:
			body = append(body, use(jen.Qual(staticPkg, "Serve").Call(
				jen.Lit("/"),
				jen.Qual(staticPkg, "LocalFile").Call(jen.Lit(m.Arg), jen.False()),
			)))
		}
	}

	addr := ":" + strconv.Itoa(a.ListenPort())
	body = append(body,
		jen.Line(),
		jen.If(
			jen.Err().Op(":=").Qual(h.PkgPath("routes"), "Mount").Call(
				jen.Id("ctx"),
				jen.Id("router").Dot("Group").Call(jen.Lit("/"), jen.Id("handleErrors")),
			),
			jen.Err().Op("!=").Nil(),
		).Block(fatal("mount routes")...),
		jen.Line(),
		jen.Qual(slogPkg, "Info").Call(jen.Lit("server listening"), jen.Lit("addr"), jen.Lit(addr)),
		jen.If(
			jen.Err().Op(":=").Id("router").Dot("Run").Call(jen.Lit(addr)),
			jen.Err().Op("!=").Nil(),
		).Block(fatal("server stopped")...),
	)
	f.Func().Id("main").Params().Block(body...)

	if parseJSON {
		genParseJSON(f)
	}
	genHandleErrors(f)
	return f
}

// use emits router.Use(handler).
func use(handler jen.Code) jen.Code {
	return jen.Id("router").Dot("Use").Call(handler)
}

// fatal logs err and exits.
func fatal(msg string) []jen.Code {
	return []jen.Code{
		jen.Qual(slogPkg, "Error").Call(jen.Lit(msg), jen.Lit("error"), jen.Err()),
		jen.Qual("os", "Exit").Call(jen.Lit(1)),
	}
}

// genParseJSON emits the content-type guard rejecting malformed JSON bodies.
func genParseJSON(f *jen.File) {
	f.Comment("parseJSON rejects JSON requests whose body does not parse.")
	f.Func().Id("parseJSON").Params(ginContext()).Block(
		jen.If(
			jen.Id("c").Dot("ContentType").Call().Op("==").Qual(ginPkg, "MIMEJSON").
				Op("&&").Id("c").Dot("Request").Dot("Body").Op("!=").Nil(),
		).Block(
			jen.List(jen.Id("body"), jen.Err()).Op(":=").Qual("io", "ReadAll").Call(jen.Id("c").Dot("Request").Dot("Body")),
			jen.If(
				jen.Err().Op("!=").Nil().Op("||").
					Parens(jen.Len(jen.Id("body")).Op(">").Lit(0).Op("&&").Op("!").Qual("encoding/json", "Valid").Call(jen.Id("body"))),
			).Block(
				jen.Id("c").Dot("AbortWithStatusJSON").Call(status("StatusBadRequest"), ginH(jen.Dict{
					jen.Lit("error"): jen.Lit("invalid JSON body"),
				})),
				jen.Return(),
			),
			jen.Id("c").Dot("Request").Dot("Body").Op("=").Qual("io", "NopCloser").Call(
				jen.Qual("bytes", "NewReader").Call(jen.Id("body")),
			),
		),
		jen.Id("c").Dot("Next").Call(),
	)
}

// genHandleErrors emits the fallback error handler of the route tree.
func genHandleErrors(f *jen.File) {
	f.Comment("handleErrors answers 500 with the last handler error when the")
	f.Comment("handler did not write a response itself.")
	f.Func().Id("handleErrors").Params(ginContext()).Block(
		jen.Id("c").Dot("Next").Call(),
		jen.If(
			jen.Err().Op(":=").Id("c").Dot("Errors").Dot("Last").Call(),
			jen.Err().Op("!=").Nil().Op("&&").Op("!").Id("c").Dot("Writer").Dot("Written").Call(),
		).Block(
			jen.Qual(slogPkg, "Error").Call(
				jen.Lit("request failed"),
				jen.Lit("path"), jen.Id("c").Dot("Request").Dot("URL").Dot("Path"),
				jen.Lit("error"), jen.Err().Dot("Err"),
			),
			respond("StatusInternalServerError", ginH(jen.Dict{jen.Lit("error"): jen.Err().Dot("Error").Call()})),
		),
	)
}
