// Package ast defines the TypeScript syntax tree consumed by the Crystal generator.
//
// The tree is produced outside the generator: by the tree-sitter front end in
// package tsparse, or by any other parser that serializes to the YAML/JSON form
// understood by DecodeYAML and DecodeJSON. The generator only borrows a tree for
// the duration of one render pass and never mutates it.
//
// Every Node carries the same fields; which of them are meaningful depends on
// its Kind:
//
//	SourceFile               Children = statements
//	VariableStatement        Text = const|let|var, Name, Type, Children[0] = initializer
//	FunctionDeclaration      Name, TypeParams, Params, Type = return type, Children = body
//	ClassDeclaration         Name, TypeParams, Type = base class, Children = members
//	Constructor              Params, Children = body
//	MethodDeclaration        Name, TypeParams, Params, Type, Children = body
//	PropertyDeclaration      Name, Type, Children[0] = initializer
//	Parameter                Name, Type, Children[0] = default value
//	CallExpression           Children[0] = callee, Children[1:] = arguments
//	NewExpression            Name, Type, Children = arguments
//	PropertyAccessExpression Name = property, Children[0] = object
//	BinaryExpression         Text = operator, Children = [left, right]
//	PropertyAssignment       Name = unquoted key, Children[0] = value
package ast

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/teranos/tscr/errors"
)

// Pos is a 1-based source position.
type Pos struct {
	Line   int `yaml:"line" json:"line"`
	Column int `yaml:"column" json:"column"`
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was recorded.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Node is one TypeScript syntax tree node.
type Node struct {
	Kind       Kind     `yaml:"kind" json:"kind"`
	Pos        Pos      `yaml:"pos,omitempty" json:"pos"`
	Text       string   `yaml:"text,omitempty" json:"text,omitempty"`
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	Type       *TypeRef `yaml:"type,omitempty" json:"type,omitempty"`
	Modifiers  Modifier `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	TypeParams []string `yaml:"type_params,omitempty" json:"type_params,omitempty"`
	Params     []*Node  `yaml:"params,omitempty" json:"params,omitempty"`
	Children   []*Node  `yaml:"children,omitempty" json:"children,omitempty"`
}

// Child returns the i-th child or nil when absent.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Is reports whether n is non-nil and of kind k.
func (n *Node) Is(k Kind) bool {
	return n != nil && n.Kind == k
}

// Walk calls fn for n and every descendant in depth-first pre-order,
// including parameters. Returning false from fn skips the node's subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, p := range n.Params {
		Walk(p, fn)
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// TypeKind distinguishes the shapes of a type annotation.
type TypeKind int

const (
	// TypeName is a bare name: a primitive, a generic parameter or a user type.
	TypeName TypeKind = iota
	// TypeArray is T[] or Array<T>; Elem holds T.
	TypeArray
	// TypeReference is a generic reference Name<Args...>.
	TypeReference
	// TypeUnion is A | B | ...; Args holds the members.
	TypeUnion
)

var typeKindNames = map[TypeKind]string{
	TypeName:      "name",
	TypeArray:     "array",
	TypeReference: "reference",
	TypeUnion:     "union",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *TypeKind) UnmarshalText(text []byte) error {
	for kind, name := range typeKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return errors.NewInvalidTreeError("unknown type kind %q", string(text))
}

// MarshalYAML implements yaml.Marshaler
func (k TypeKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (k *TypeKind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return errors.Wrapf(err, "type kind at line %d", value.Line)
	}
	return k.UnmarshalText([]byte(name))
}

// TypeRef is a type annotation.
type TypeRef struct {
	Kind TypeKind   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Name string     `yaml:"name,omitempty" json:"name,omitempty"`
	Elem *TypeRef   `yaml:"elem,omitempty" json:"elem,omitempty"`
	Args []*TypeRef `yaml:"args,omitempty" json:"args,omitempty"`
}

// String renders the annotation in TypeScript syntax, for diagnostics.
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeArray:
		return t.Elem.String() + "[]"
	case TypeReference:
		s := t.Name + "<"
		for i, a := range t.Args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		return s + ">"
	case TypeUnion:
		s := ""
		for i, a := range t.Args {
			if i > 0 {
				s += " | "
			}
			s += a.String()
		}
		return s
	default:
		return t.Name
	}
}
