package sql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/essence/compiler/gen"
)

func TestGenApp(t *testing.T) {
	t.Run("reference service", func(t *testing.T) {
		g := newTestGenerator(t, itemsSource)
		code := render(t, genApp(g))

		assert.Contains(t, code, "package main")
		assert.Contains(t, code, "// Code generated by essence. DO NOT EDIT.")
		assert.Contains(t, code, `"app/db"`)
		assert.Contains(t, code, `"app/routes"`)
		assert.Contains(t, code, "db.Init(ctx)")
		assert.Contains(t, code, "router := gin.New()")
		assert.Contains(t, code, "router.Use(parseJSON)")
		assert.Contains(t, code, "router.Use(cors.Default())")
		assert.Contains(t, code, `routes.Mount(ctx, router.Group("/", handleErrors))`)
		assert.Contains(t, code, `router.Run(":4000")`)
		assert.Contains(t, code, "func parseJSON(c *gin.Context)")
		assert.Contains(t, code, "func handleErrors(c *gin.Context)")
		assert.NotContains(t, code, "godotenv")
	})

	t.Run("statement order", func(t *testing.T) {
		g := newTestGenerator(t, `
whisper: log requests
whisper: load environment from '.env'
whisper: db type mssql
whisper: serve static from 'public'
whisper: parse incoming as json
`)
		code := render(t, genApp(g))

		order := []string{
			`godotenv.Load(".env")`,
			"db.Init(ctx)",
			"gin.New()",
			"router.Use(gin.Logger())",
			`router.Use(static.Serve("/", static.LocalFile("public", false)))`,
			"router.Use(parseJSON)",
			"routes.Mount(",
			"router.Run(",
		}
		last := -1
		for _, s := range order {
			i := strings.Index(code, s)
			if assert.GreaterOrEqual(t, i, 0, "missing %q", s) {
				assert.Greater(t, i, last, "%q out of order", s)
				last = i
			}
		}
	})

	t.Run("defaults without directives", func(t *testing.T) {
		g := newTestGenerator(t, "essence: express")
		code := render(t, genApp(g))

		assert.Contains(t, code, `router.Run(":3000")`)
		assert.NotContains(t, code, "db.Init")
		assert.NotContains(t, code, "router.Use")
		assert.NotContains(t, code, "func parseJSON")
		assert.Contains(t, code, "func handleErrors")
	})

	t.Run("custom module", func(t *testing.T) {
		g := newTestGenerator(t, itemsSource, gen.WithModule("example.com/shop"))
		code := render(t, genApp(g))
		assert.Contains(t, code, `"example.com/shop/routes"`)
		assert.Contains(t, code, `"example.com/shop/db"`)
	})
}
