package gen

import (
	"context"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/dialect"
)

func TestRequires(t *testing.T) {
	paths := func(reqs []Require) []string {
		var out []string
		for _, r := range reqs {
			out = append(out, r.Path)
			assert.NotEmpty(t, r.Version, r.Path)
		}
		return out
	}

	t.Run("bare service", func(t *testing.T) {
		assert.Equal(t, []string{"github.com/gin-gonic/gin"}, paths(Requires(ast.New())))
	})

	t.Run("everything", func(t *testing.T) {
		a := ast.New()
		a.EnvFile = ".env"
		a.Middlewares = []ast.Middleware{{Kind: ast.CORS}, {Kind: ast.Static, Arg: "public"}, {Kind: ast.Logger}}
		a.Auth = ast.AuthConfig{Enabled: true, Strategy: ast.StrategyJWT}
		a.DB.Dialect = dialect.MSSQL

		assert.Equal(t, []string{
			"github.com/gin-contrib/cors",
			"github.com/gin-contrib/static",
			"github.com/gin-gonic/gin",
			"github.com/golang-jwt/jwt/v5",
			"github.com/joho/godotenv",
			"github.com/microsoft/go-mssqldb",
			"golang.org/x/crypto",
		}, paths(Requires(a)))
	})

	t.Run("mysql", func(t *testing.T) {
		a := ast.New()
		a.DB.Dialect = dialect.MySQL
		assert.Contains(t, paths(Requires(a)), "github.com/go-sql-driver/mysql")
	})

	t.Run("auth without jwt", func(t *testing.T) {
		a := ast.New()
		a.Auth.Enabled = true
		assert.NotContains(t, paths(Requires(a)), "github.com/golang-jwt/jwt/v5")
	})
}

func TestGoMod(t *testing.T) {
	a := ast.New()
	a.DB.Dialect = dialect.MySQL
	g := NewJenniferGenerator(a, mustConfig(t, WithModule("example.com/shop"), WithGoVersion("1.23")))

	data, err := g.goMod()
	require.NoError(t, err)
	want := dedent.Dedent(`
		module example.com/shop

		go 1.23

		require (
			github.com/gin-gonic/gin v1.10.1
			github.com/go-sql-driver/mysql v1.9.3
		)
	`)
	assert.Equal(t, want[1:], string(data))

	_, err = NewJenniferGenerator(a, nil).WithDialect(&mockDialectGenerator{}).Artifacts(context.Background())
	assert.Error(t, err, "database without dialect")
}
