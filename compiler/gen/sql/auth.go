package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/essence/compiler/gen"
)

// usersTable is the table the auth routes read and write.
const usersTable = "users"

// genAuth generates the token middleware (auth/auth.go).
// Returns nil unless jwt authentication is enabled.
func genAuth(h gen.GeneratorHelper) *jen.File {
	if !h.AST().JWTAuth() {
		return nil
	}
	f := newFile(h, "auth")

	f.Comment("Secret returns the token signing key, JWT_SECRET when set.")
	f.Func().Id("Secret").Params().Index().Byte().Block(
		jen.If(jen.Id("s").Op(":=").Qual("os", "Getenv").Call(jen.Lit("JWT_SECRET")), jen.Id("s").Op("!=").Lit("")).Block(
			jen.Return(jen.Index().Byte().Parens(jen.Id("s"))),
		),
		jen.Return(jen.Index().Byte().Parens(jen.Lit("secret"))),
	)

	f.Comment("Sign issues an HS256 token naming username.")
	f.Func().Id("Sign").Params(jen.Id("username").String()).Params(jen.String(), jen.Error()).Block(
		jen.Id("token").Op(":=").Qual(jwtPkg, "NewWithClaims").Call(
			jen.Qual(jwtPkg, "SigningMethodHS256"),
			jen.Qual(jwtPkg, "MapClaims").Values(jen.Dict{jen.Lit("name"): jen.Id("username")}),
		),
		jen.Return(jen.Id("token").Dot("SignedString").Call(jen.Id("Secret").Call())),
	)

	f.Comment("Authenticate requires a valid bearer token. A missing token is")
	f.Comment("answered with 401 and an invalid one with 403. The claims of a")
	f.Comment("valid token are stored under \"user\".")
	f.Func().Id("Authenticate").Params(ginContext()).Block(
		jen.List(jen.Id("raw"), jen.Id("ok")).Op(":=").Qual("strings", "CutPrefix").Call(
			jen.Id("c").Dot("GetHeader").Call(jen.Lit("Authorization")),
			jen.Lit("Bearer "),
		),
		jen.If(jen.Op("!").Id("ok").Op("||").Id("raw").Op("==").Lit("")).Block(
			jen.Id("c").Dot("AbortWithStatus").Call(status("StatusUnauthorized")),
			jen.Return(),
		),
		jen.Id("claims").Op(":=").Qual(jwtPkg, "MapClaims").Values(),
		jen.List(jen.Id("_"), jen.Err()).Op(":=").Qual(jwtPkg, "ParseWithClaims").Call(
			jen.Id("raw"),
			jen.Id("claims"),
			jen.Func().Params(jen.Op("*").Qual(jwtPkg, "Token")).Params(jen.Any(), jen.Error()).Block(
				jen.Return(jen.Id("Secret").Call(), jen.Nil()),
			),
			jen.Qual(jwtPkg, "WithValidMethods").Call(
				jen.Index().String().Values(jen.Qual(jwtPkg, "SigningMethodHS256").Dot("Alg").Call()),
			),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Id("c").Dot("AbortWithStatus").Call(status("StatusForbidden")),
			jen.Return(),
		),
		jen.Id("c").Dot("Set").Call(jen.Lit("user"), jen.Id("claims")),
		jen.Id("c").Dot("Next").Call(),
	)
	return f
}

// genAuthRoutes generates the register and login routes (routes/auth.go).
// Returns nil unless jwt authentication is enabled.
func genAuthRoutes(h gen.GeneratorHelper) *jen.File {
	if !h.AST().JWTAuth() {
		return nil
	}
	f := newFile(h, "routes")

	f.Comment("RegisterAuth mounts the register and login routes.")
	f.Func().Id("RegisterAuth").Params(jen.Id("r").Qual(ginPkg, "IRouter")).Block(
		jen.Id("r").Dot("POST").Call(jen.Lit("/register"), jen.Id("authRegister")),
		jen.Id("r").Dot("POST").Call(jen.Lit("/login"), jen.Id("authLogin")),
	)

	d := h.SQL()
	if d == nil {
		for _, name := range []string{"authRegister", "authLogin"} {
			f.Func().Id(name).Params(ginContext()).Block(
				respondError("StatusNotImplemented", "no database configured")...,
			)
		}
		return f
	}
	dbPkg := h.PkgPath("db")
	lookup := d.SelectOneBy(usersTable, "username")
	username := jen.Id("body").Dot("Username")

	f.Comment("passwordCost is the bcrypt cost of stored password hashes.")
	f.Const().Id("passwordCost").Op("=").Lit(h.Config().BcryptCost)

	f.Type().Id("credentials").Struct(
		jen.Id("Username").String().Tag(map[string]string{"json": "username"}),
		jen.Id("Password").String().Tag(map[string]string{"json": "password"}),
	)

	bind := []jen.Code{
		jen.Var().Id("body").Id("credentials"),
		jen.If(
			jen.Err().Op(":=").Id("c").Dot("ShouldBindJSON").Call(jen.Op("&").Id("body")),
			jen.Err().Op("!=").Nil().Op("||").Id("body").Dot("Username").Op("==").Lit("").Op("||").Id("body").Dot("Password").Op("==").Lit(""),
		).Block(respondError("StatusBadRequest", "Username and password required")...),
		jen.Id("ctx").Op(":=").Add(requestCtx()),
	}

	register := append([]jen.Code{}, bind...)
	register = append(register, query(dbPkg, lookup, arg(d, "username", username))...)
	register = append(register,
		jen.If(jen.Len(jen.Id("result")).Op(">").Lit(0)).Block(
			respondError("StatusConflict", "User already exists")...,
		),
		jen.List(jen.Id("hash"), jen.Err()).Op(":=").Qual(bcryptPkg, "GenerateFromPassword").Call(
			jen.Index().Byte().Parens(jen.Id("body").Dot("Password")),
			jen.Id("passwordCost"),
		),
		failOnErr(),
		jen.If(
			jen.List(jen.Id("_"), jen.Err()).Op(":=").Add(dbGet(dbPkg)).Dot("ExecContext").Call(
				jen.Id("ctx"),
				jen.Lit(d.Insert(usersTable, []string{"username", "password"})),
				arg(d, "username", username),
				arg(d, "password", jen.String().Parens(jen.Id("hash"))),
			),
			jen.Err().Op("!=").Nil(),
		).Block(
			jen.Id("c").Dot("Error").Call(jen.Err()),
			jen.Return(),
		),
		respond("StatusOK", ginH(jen.Dict{jen.Lit("message"): jen.Lit("User registered successfully")})),
	)
	f.Func().Id("authRegister").Params(ginContext()).Block(register...)

	login := append([]jen.Code{}, bind...)
	login = append(login, query(dbPkg, lookup, arg(d, "username", username))...)
	login = append(login,
		jen.If(jen.Len(jen.Id("result")).Op("==").Lit(0)).Block(
			respondError("StatusUnauthorized", "Invalid credentials")...,
		),
		jen.Var().Id("hash").Index().Byte(),
		jen.Switch(jen.Id("v").Op(":=").Id("result").Index(jen.Lit(0)).Index(jen.Lit("password")).Assert(jen.Type())).Block(
			jen.Case(jen.String()).Block(jen.Id("hash").Op("=").Index().Byte().Parens(jen.Id("v"))),
			jen.Case(jen.Index().Byte()).Block(jen.Id("hash").Op("=").Id("v")),
		),
		jen.If(
			jen.Qual(bcryptPkg, "CompareHashAndPassword").Call(jen.Id("hash"), jen.Index().Byte().Parens(jen.Id("body").Dot("Password"))).Op("!=").Nil(),
		).Block(respondError("StatusUnauthorized", "Invalid credentials")...),
		jen.List(jen.Id("token"), jen.Err()).Op(":=").Qual(h.PkgPath("auth"), "Sign").Call(jen.Id("body").Dot("Username")),
		failOnErr(),
		respond("StatusOK", ginH(jen.Dict{jen.Lit("accessToken"): jen.Id("token")})),
	)
	f.Func().Id("authLogin").Params(ginContext()).Block(login...)
	return f
}
