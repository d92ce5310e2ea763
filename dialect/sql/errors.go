package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Error numbers reported when CREATE TABLE hits an existing table.
const (
	mysqlTableExists = 1050
	mssqlTableExists = 2714
)

// sqlErrorNumberer is implemented by go-mssqldb errors.
type sqlErrorNumberer interface {
	SQLErrorNumber() int32
}

// IsTableExistsError reports whether err resulted from creating a table
// that already exists. On MSSQL this happens when another process creates
// the table between the catalog check and the CREATE TABLE.
func IsTableExistsError(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlTableExists {
		return true
	}
	if e, ok := asError[sqlErrorNumberer](err); ok && e.SQLErrorNumber() == mssqlTableExists {
		return true
	}
	// Fallback for wrapped or stringified driver errors.
	return containsAny(err.Error(),
		"Error 1050",
		"There is already an object named",
	)
}

// asError extracts an error implementing T from the chain of err.
func asError[T any](err error) (T, bool) {
	var target T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return target, false
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
