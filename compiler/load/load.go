// Package load reads essence source files and serializes the resulting
// AST. A serialized AST can be loaded back in place of a source file.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/essence"
	"github.com/syssam/essence/compiler/ast"
	"github.com/syssam/essence/compiler/parse"
	"github.com/syssam/essence/dialect"
)

// Output formats accepted by Marshal.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatYAML, FormatJSON}

// Source is an essence file read from disk.
type Source struct {
	Path string
	Text string
}

// Read reads the source file at path.
func Read(path string) (*Source, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read source: %w", err)
	}
	return &Source{Path: path, Text: string(buf)}, nil
}

// Parse builds the AST of the source.
func (s *Source) Parse() (*parse.Result, error) {
	res, err := parse.Parse(s.Text)
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", s.Path, err)
	}
	return res, nil
}

// Serialized reports whether path names an AST encoded by Marshal,
// judged by its .yaml, .yml or .json extension.
func Serialized(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Decode decodes the source as a serialized AST. The result carries no
// warnings.
func (s *Source) Decode() (*parse.Result, error) {
	a, err := Unmarshal([]byte(s.Text))
	if err != nil {
		return nil, fmt.Errorf("load: %s: %w", s.Path, err)
	}
	return &parse.Result{AST: a}, nil
}

// File reads the file at path and builds its AST, decoding serialized
// files and parsing everything else as essence source.
func File(path string) (*parse.Result, error) {
	s, err := Read(path)
	if err != nil {
		return nil, err
	}
	if Serialized(path) {
		return s.Decode()
	}
	return s.Parse()
}

// Marshal encodes a in the given format.
func Marshal(a *ast.AST, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("load: marshal json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return nil, fmt.Errorf("load: marshal yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("load: marshal yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("load: unknown format %q", format)
	}
}

// Unmarshal decodes an AST previously encoded by Marshal. YAML is a
// superset of JSON, so both formats are accepted. Values outside the
// enumerations the directives enforce fail with a *essence.DirectiveError.
func Unmarshal(buf []byte) (*ast.AST, error) {
	a := ast.New()
	if err := yaml.Unmarshal(buf, a); err != nil {
		return nil, fmt.Errorf("unmarshal ast: %w", err)
	}
	if err := check(a); err != nil {
		return nil, err
	}
	return a, nil
}

func check(a *ast.AST) error {
	if v := a.DB.Dialect; v != "" && !slices.Contains(dialect.Names, v) {
		return essence.NewDirectiveError(0, "db type", v, dialect.Names...)
	}
	if v := a.Auth.Strategy; v != "" && v != ast.StrategyJWT {
		return essence.NewDirectiveError(0, "auth strategy", v, ast.StrategyJWT)
	}
	if fe := a.Frontend; fe != nil && fe.Framework != "" && fe.Framework != ast.FrameworkReact {
		return essence.NewDirectiveError(0, "frontend framework", fe.Framework, ast.FrameworkReact)
	}
	return nil
}
