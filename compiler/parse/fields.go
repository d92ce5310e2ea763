package parse

import (
	"strings"

	"github.com/syssam/essence/compiler/ast"
)

// SplitFields splits a migration field list on commas outside
// parentheses, so "amount: DECIMAL(10,2), name: TEXT" yields two fields.
// Each token is trimmed; a trailing empty token is dropped. Unbalanced
// closing parentheses never push the depth below zero.
func SplitFields(s string) []string {
	var (
		fields []string
		depth  int
		start  int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				fields = append(fields, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" {
		fields = append(fields, last)
	}
	return fields
}

// Field flags recognized after the column type.
const (
	flagPK       = "pk"
	flagIdentity = "identity"
)

// ParseField parses one "name: TYPE [pk] [identity]" token. The name ends
// at the first colon (or the first space when there is none); the flags
// may appear in any order after it and every other word forms the type.
// It returns false for an empty token or name.
func ParseField(token string) (ast.FieldDef, bool) {
	token = strings.TrimSpace(token)
	name, rest, ok := strings.Cut(token, ":")
	if !ok {
		name, rest, _ = strings.Cut(token, " ")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ast.FieldDef{}, false
	}
	f := ast.FieldDef{Name: name}
	var typ []string
	for _, w := range strings.Fields(rest) {
		switch w {
		case flagPK:
			f.PrimaryKey = true
		case flagIdentity:
			f.Identity = true
		default:
			typ = append(typ, w)
		}
	}
	f.Type = strings.Join(typ, " ")
	return f, true
}

// ParseFields splits and parses a migration field list. Empty tokens
// are skipped.
func ParseFields(s string) []ast.FieldDef {
	var defs []ast.FieldDef
	for _, token := range SplitFields(s) {
		if f, ok := ParseField(token); ok {
			defs = append(defs, f)
		}
	}
	return defs
}

const (
	tablePrefix = "create_"
	tableSuffix = "_table"
)

// NormalizeTableName rewrites "create_<X>_table" to "<X>" when X is not
// empty and returns every other name unchanged. It is idempotent for
// names that do not themselves look like "create_<X>_table".
func NormalizeTableName(name string) string {
	if len(name) <= len(tablePrefix)+len(tableSuffix) {
		return name
	}
	if !strings.HasPrefix(name, tablePrefix) || !strings.HasSuffix(name, tableSuffix) {
		return name
	}
	return name[len(tablePrefix) : len(name)-len(tableSuffix)]
}

// SplitBody splits an insert body list on commas, dropping empty names.
func SplitBody(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
