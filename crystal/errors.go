package crystal

import (
	"fmt"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/errors"
)

// UnsupportedSyntaxError reports a node kind, modifier combination or operator
// that has no Crystal rendering rule. It matches errors.ErrUnsupportedSyntax.
type UnsupportedSyntaxError struct {
	Kind   ast.Kind
	Pos    ast.Pos
	Detail string
}

func (e *UnsupportedSyntaxError) Error() string {
	msg := "unsupported syntax: " + e.Kind.String()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Pos.IsValid() {
		msg += " at " + e.Pos.String()
	}
	return msg
}

// Is makes errors.Is(err, errors.ErrUnsupportedSyntax) hold.
func (e *UnsupportedSyntaxError) Is(target error) bool {
	return target == errors.ErrUnsupportedSyntax
}

// TypeMappingError reports a type annotation that cannot be rendered at all,
// such as an array annotation without an element type. It matches errors.ErrTypeMapping.
type TypeMappingError struct {
	Pos        ast.Pos
	Annotation string
	Detail     string
}

func (e *TypeMappingError) Error() string {
	msg := fmt.Sprintf("cannot map type %q: %s", e.Annotation, e.Detail)
	if e.Pos.IsValid() {
		msg += " at " + e.Pos.String()
	}
	return msg
}

// Is makes errors.Is(err, errors.ErrTypeMapping) hold.
func (e *TypeMappingError) Is(target error) bool {
	return target == errors.ErrTypeMapping
}

func unsupported(n *ast.Node, format string, args ...interface{}) error {
	return &UnsupportedSyntaxError{
		Kind:   n.Kind,
		Pos:    n.Pos,
		Detail: fmt.Sprintf(format, args...),
	}
}

func missing(n *ast.Node, what string) error {
	return errors.NewInvalidTreeError("%s at %s has no %s", n.Kind, n.Pos, what)
}
