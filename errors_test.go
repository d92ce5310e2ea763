package essence_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/essence"
)

func TestDirectiveError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := essence.NewDirectiveError(3, "db type", "postgres", "mysql", "mssql")
		assert.Equal(t, `essence: line 3: unsupported db type "postgres" (allowed: mysql, mssql)`, err.Error())
	})

	t.Run("Error without line", func(t *testing.T) {
		err := &essence.DirectiveError{Directive: "auth strategy", Value: "oauth", Allowed: []string{"jwt"}}
		assert.Equal(t, `essence: unsupported auth strategy "oauth" (allowed: jwt)`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := essence.NewDirectiveError(1, "frontend framework", "vue", "react")
		assert.True(t, errors.Is(err, essence.ErrUnsupportedValue))
	})

	t.Run("IsDirectiveError", func(t *testing.T) {
		err := essence.NewDirectiveError(1, "db type", "oracle", "mysql", "mssql")
		assert.True(t, essence.IsDirectiveError(err))

		// Wrapped error
		wrapped := fmt.Errorf("compile: %w", err)
		assert.True(t, essence.IsDirectiveError(wrapped))
		assert.True(t, errors.Is(wrapped, essence.ErrUnsupportedValue))

		// Non-matching error
		assert.False(t, essence.IsDirectiveError(errors.New("other error")))
		assert.False(t, essence.IsDirectiveError(nil))
	})
}
