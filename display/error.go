package display

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/tscr/crystal"
	"github.com/teranos/tscr/errors"
)

// ErrorKind categorizes CLI errors for programmatic handling.
type ErrorKind string

const (
	ErrorKindUnsupported ErrorKind = "unsupported_syntax"
	ErrorKindTypeMapping ErrorKind = "type_mapping"
	ErrorKindParse       ErrorKind = "parse"
	ErrorKindInvalidTree ErrorKind = "invalid_tree"
	ErrorKindUnknown     ErrorKind = "unknown"
)

// ErrorReport is the JSON form of a failed command.
type ErrorReport struct {
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	Position string    `json:"position,omitempty"`
	Node     string    `json:"node,omitempty"`
	Hints    []string  `json:"hints,omitempty"`
}

// Classify builds an ErrorReport from any error returned by tscr packages.
func Classify(err error) ErrorReport {
	report := ErrorReport{
		Kind:    ErrorKindUnknown,
		Message: err.Error(),
		Hints:   errors.GetAllHints(err),
	}

	var syntaxErr *crystal.UnsupportedSyntaxError
	var typeErr *crystal.TypeMappingError
	switch {
	case errors.As(err, &syntaxErr):
		report.Kind = ErrorKindUnsupported
		report.Node = syntaxErr.Kind.String()
		if syntaxErr.Pos.IsValid() {
			report.Position = syntaxErr.Pos.String()
		}
	case errors.As(err, &typeErr):
		report.Kind = ErrorKindTypeMapping
		if typeErr.Pos.IsValid() {
			report.Position = typeErr.Pos.String()
		}
	case errors.IsTypeMappingError(err):
		report.Kind = ErrorKindTypeMapping
	case errors.IsParseError(err):
		report.Kind = ErrorKindParse
	case errors.Is(err, errors.ErrInvalidTree):
		report.Kind = ErrorKindInvalidTree
	}
	return report
}

// FormatError renders err for a terminal, coloured by kind, followed by any
// hints attached with errors.WithHint.
func FormatError(err error) string {
	report := Classify(err)

	var b strings.Builder
	switch report.Kind {
	case ErrorKindUnsupported, ErrorKindTypeMapping:
		b.WriteString(pterm.Yellow(report.Message))
	default:
		b.WriteString(pterm.Red(report.Message))
	}

	if report.Position != "" || report.Node != "" {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.LightCyan("Context:")))
		if report.Node != "" {
			b.WriteString(fmt.Sprintf("\n  %s %s", pterm.Yellow("Node:"), report.Node))
		}
		if report.Position != "" {
			b.WriteString(fmt.Sprintf("\n  %s %s", pterm.Yellow("Position:"), report.Position))
		}
	}

	if len(report.Hints) > 0 {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.Green("Hints:")))
		for _, hint := range report.Hints {
			b.WriteString("\n  - " + hint)
		}
	}
	return b.String()
}
