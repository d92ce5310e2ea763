package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New()
	assert.Equal(t, DefaultPort, a.Server.Port)
	assert.False(t, a.Auth.Enabled)
	assert.False(t, a.HasDB())
	assert.Nil(t, a.Frontend)
	assert.Empty(t, a.Routes)
}

func TestListenPort(t *testing.T) {
	tests := []struct {
		port int
		want int
	}{
		{4000, 4000},
		{0, DefaultPort},
		{-1, DefaultPort},
	}
	for _, tt := range tests {
		a := &AST{Server: ServerConfig{Port: tt.port}}
		assert.Equal(t, tt.want, a.ListenPort())
	}
}

func TestClone(t *testing.T) {
	a := New()
	a.Middlewares = []Middleware{{Kind: JSON}}
	a.Migrations = []Migration{{Table: "users", Fields: []FieldDef{{Name: "id", Type: "INT"}}}}
	a.Routes = []RouteDef{{Method: MethodPost, Path: "/items", Action: Insert, BodyFields: []string{"name"}}}
	a.Auth.ProtectedRoutes = []string{"/items"}
	a.Frontend = &FrontendConfig{Framework: FrameworkReact, Packages: []string{"axios"}}

	c := a.Clone()
	require.Equal(t, a, c)

	c.Middlewares[0].Kind = CORS
	c.Migrations[0].Fields[0].Name = "uid"
	c.Routes[0].BodyFields[0] = "title"
	c.Auth.ProtectedRoutes[0] = "/other"
	c.Frontend.Packages[0] = "lodash"

	assert.Equal(t, JSON, a.Middlewares[0].Kind)
	assert.Equal(t, "id", a.Migrations[0].Fields[0].Name)
	assert.Equal(t, "name", a.Routes[0].BodyFields[0])
	assert.Equal(t, "/items", a.Auth.ProtectedRoutes[0])
	assert.Equal(t, "axios", a.Frontend.Packages[0])
}

func TestProtected(t *testing.T) {
	a := New()
	a.Auth.ProtectedRoutes = []string{"/items/:id"}

	t.Run("auth disabled", func(t *testing.T) {
		assert.False(t, a.Protected("/items/:id"))
	})

	a.Auth.Enabled = true
	a.Auth.Strategy = StrategyJWT

	t.Run("exact match", func(t *testing.T) {
		assert.True(t, a.Protected("/items/:id"))
	})

	t.Run("equivalent path does not match", func(t *testing.T) {
		assert.False(t, a.Protected("/items/:itemId"))
		assert.False(t, a.Protected("/items/:id/"))
	})
}

func TestHasMiddleware(t *testing.T) {
	a := &AST{Middlewares: []Middleware{{Kind: Logger}, {Kind: Static, Arg: "public"}}}
	assert.True(t, a.HasMiddleware(Static))
	assert.False(t, a.HasMiddleware(CORS))
}
