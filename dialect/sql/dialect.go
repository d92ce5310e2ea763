package sql

import (
	"strings"

	"github.com/syssam/essence"
	"github.com/syssam/essence/dialect"
)

// For returns the dialect registered under name.
func For(name string) (dialect.Dialect, error) {
	switch name {
	case dialect.MySQL:
		return MySQL{}, nil
	case dialect.MSSQL:
		return MSSQL{}, nil
	default:
		return nil, essence.NewDirectiveError(0, "db type", name, dialect.Names...)
	}
}

// escapeStringValue escapes a string for use inside a single-quoted SQL
// literal by doubling quotes.
func escapeStringValue(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	return strings.ReplaceAll(s, "'", "''")
}

// columnDef joins the non-empty parts of a column definition.
func columnDef(name, typ string, c dialect.Column, pk, identity string) string {
	parts := []string{name}
	if typ != "" {
		parts = append(parts, typ)
	}
	if c.PrimaryKey {
		parts = append(parts, pk)
	}
	if c.Identity {
		parts = append(parts, identity)
	}
	return strings.Join(parts, " ")
}

func columnDefs(d dialect.Dialect, cols []dialect.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.ColumnDef(c)
	}
	return strings.Join(defs, ", ")
}

func insert(d dialect.Dialect, table string, cols []string) string {
	markers := make([]string, len(cols))
	for i, c := range cols {
		markers[i] = d.Placeholder(c)
	}
	return "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(markers, ", ") + ")"
}
