// Package ast defines the configuration tree built from an essence source
// file. An AST is built once per compile and is read-only afterwards.
package ast

import "slices"

// DefaultPort is the listen port used when no port directive is present.
const DefaultPort = 3000

// MiddlewareKind enumerates the middleware a source file can request.
type MiddlewareKind string

// Middleware kinds.
const (
	JSON   MiddlewareKind = "json"
	CORS   MiddlewareKind = "cors"
	Logger MiddlewareKind = "logger"
	Static MiddlewareKind = "static"
)

// Action is what a route does with its collection.
type Action string

// Route actions.
const (
	ListAll Action = "listAll"
	GetByID Action = "getById"
	Insert  Action = "insert"
)

// HTTP methods used by routes.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Auth strategies and frontend frameworks accepted by the builder.
const (
	StrategyJWT    = "jwt"
	FrameworkReact = "react"
)

type (
	// AST is the aggregate configuration of one source file.
	AST struct {
		Server      ServerConfig    `json:"server" yaml:"server"`
		Middlewares []Middleware    `json:"middlewares,omitempty" yaml:"middlewares,omitempty"`
		EnvFile     string          `json:"envFile,omitempty" yaml:"envFile,omitempty"`
		DB          DBConfig        `json:"db" yaml:"db"`
		Migrations  []Migration     `json:"migrations,omitempty" yaml:"migrations,omitempty"`
		Auth        AuthConfig      `json:"auth" yaml:"auth"`
		Routes      []RouteDef      `json:"routes,omitempty" yaml:"routes,omitempty"`
		Frontend    *FrontendConfig `json:"frontend,omitempty" yaml:"frontend,omitempty"`
	}

	// ServerConfig holds the listen port.
	ServerConfig struct {
		Port int `json:"port" yaml:"port"`
	}

	// Middleware is one entry of the ordered middleware chain. Arg is the
	// directory for Static and empty otherwise.
	Middleware struct {
		Kind MiddlewareKind `json:"kind" yaml:"kind"`
		Arg  string         `json:"arg,omitempty" yaml:"arg,omitempty"`
	}

	// DBConfig selects the database. Dialect is empty when no db type
	// directive was seen. Collections is bookkeeping only.
	DBConfig struct {
		Dialect     string   `json:"dialect,omitempty" yaml:"dialect,omitempty"`
		URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
		Collections []string `json:"collections,omitempty" yaml:"collections,omitempty"`
	}

	// Migration creates one table.
	Migration struct {
		Table  string     `json:"table" yaml:"table"`
		Fields []FieldDef `json:"fields" yaml:"fields"`
	}

	// FieldDef is one column of a migration.
	FieldDef struct {
		Name       string `json:"name" yaml:"name"`
		Type       string `json:"type" yaml:"type"`
		PrimaryKey bool   `json:"primaryKey,omitempty" yaml:"primaryKey,omitempty"`
		Identity   bool   `json:"identity,omitempty" yaml:"identity,omitempty"`
	}

	// AuthConfig controls token authentication. ProtectedRoutes holds raw
	// path strings; membership is an exact string comparison.
	AuthConfig struct {
		Enabled         bool     `json:"enabled" yaml:"enabled"`
		Strategy        string   `json:"strategy,omitempty" yaml:"strategy,omitempty"`
		ProtectedRoutes []string `json:"protectedRoutes,omitempty" yaml:"protectedRoutes,omitempty"`
	}

	// RouteDef is one CRUD endpoint. BodyFields is set for Insert only.
	RouteDef struct {
		Method     string   `json:"method" yaml:"method"`
		Path       string   `json:"path" yaml:"path"`
		Action     Action   `json:"action" yaml:"action"`
		Collection string   `json:"collection" yaml:"collection"`
		BodyFields []string `json:"bodyFields,omitempty" yaml:"bodyFields,omitempty"`
	}

	// FrontendConfig requests a client project scaffold.
	FrontendConfig struct {
		Framework string   `json:"framework,omitempty" yaml:"framework,omitempty"`
		Packages  []string `json:"packages,omitempty" yaml:"packages,omitempty"`
	}
)

// New returns an AST holding the builder defaults.
func New() *AST {
	return &AST{Server: ServerConfig{Port: DefaultPort}}
}

// Clone returns a deep copy of a. Slices of the copy never alias a.
func (a *AST) Clone() *AST {
	c := *a
	c.Middlewares = slices.Clone(a.Middlewares)
	c.DB.Collections = slices.Clone(a.DB.Collections)
	c.Migrations = make([]Migration, len(a.Migrations))
	for i, m := range a.Migrations {
		c.Migrations[i] = Migration{Table: m.Table, Fields: slices.Clone(m.Fields)}
	}
	if a.Migrations == nil {
		c.Migrations = nil
	}
	c.Auth.ProtectedRoutes = slices.Clone(a.Auth.ProtectedRoutes)
	c.Routes = make([]RouteDef, len(a.Routes))
	for i, r := range a.Routes {
		r.BodyFields = slices.Clone(r.BodyFields)
		c.Routes[i] = r
	}
	if a.Routes == nil {
		c.Routes = nil
	}
	if a.Frontend != nil {
		c.Frontend = &FrontendConfig{
			Framework: a.Frontend.Framework,
			Packages:  slices.Clone(a.Frontend.Packages),
		}
	}
	return &c
}

// ListenPort returns the configured port, or DefaultPort when unset.
func (a *AST) ListenPort() int {
	if a.Server.Port <= 0 {
		return DefaultPort
	}
	return a.Server.Port
}

// HasDB reports whether a database dialect was selected.
func (a *AST) HasDB() bool {
	return a.DB.Dialect != ""
}

// JWTAuth reports whether token authentication is enabled.
func (a *AST) JWTAuth() bool {
	return a.Auth.Enabled && a.Auth.Strategy == StrategyJWT
}

// Protected reports whether the route with the given raw path requires a
// token. "/items/:id" does not protect "/items/:itemId".
func (a *AST) Protected(path string) bool {
	return a.JWTAuth() && slices.Contains(a.Auth.ProtectedRoutes, path)
}

// HasMiddleware reports whether the chain contains kind.
func (a *AST) HasMiddleware(kind MiddlewareKind) bool {
	return slices.ContainsFunc(a.Middlewares, func(m Middleware) bool {
		return m.Kind == kind
	})
}
