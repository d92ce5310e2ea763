package parse

import "fmt"

// WarningKind classifies a dropped line.
type WarningKind int

const (
	// Unrecognized lines match no directive.
	Unrecognized WarningKind = iota
	// Malformed lines match a directive prefix but not its arguments.
	Malformed
)

// String returns the kind name.
func (k WarningKind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning describes a line that had no effect on the AST.
type Warning struct {
	Line      Line
	Kind      WarningKind
	Directive string // set for Malformed.
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Kind == Malformed {
		return fmt.Sprintf("line %d: malformed %s directive ignored: %s", w.Line.Num, w.Directive, w.Line.Text)
	}
	return fmt.Sprintf("line %d: unrecognized line ignored: %s", w.Line.Num, w.Line.Text)
}
