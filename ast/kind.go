package ast

import (
	"gopkg.in/yaml.v3"

	"github.com/teranos/tscr/errors"
)

// Kind tags a Node with the TypeScript construct it represents.
// The set is closed: renderers switch over it and treat anything they do not
// list as unsupported syntax.
type Kind int

const (
	KindUnknown Kind = iota

	// Declarations and statements
	KindSourceFile
	KindVariableStatement
	KindFunctionDeclaration
	KindClassDeclaration
	KindConstructor
	KindMethodDeclaration
	KindPropertyDeclaration
	KindParameter
	KindExpressionStatement
	KindReturnStatement
	KindThrowStatement
	KindIfStatement
	KindWhileStatement
	KindBlock

	// Literals and primaries
	KindNumericLiteral
	KindStringLiteral
	KindIdentifier
	KindTrueKeyword
	KindFalseKeyword
	KindNullKeyword
	KindUndefinedKeyword
	KindThisKeyword
	KindSuperKeyword

	// Expressions
	KindArrayLiteral
	KindObjectLiteral
	KindPropertyAssignment
	KindShorthandPropertyAssignment
	KindCallExpression
	KindNewExpression
	KindPropertyAccessExpression
	KindBinaryExpression
	KindPrefixUnaryExpression
	KindParenthesizedExpression
	KindSpreadElement
	KindAwaitExpression

	kindCount
)

var kindNames = [...]string{
	KindUnknown:                     "Unknown",
	KindSourceFile:                  "SourceFile",
	KindVariableStatement:           "VariableStatement",
	KindFunctionDeclaration:         "FunctionDeclaration",
	KindClassDeclaration:            "ClassDeclaration",
	KindConstructor:                 "Constructor",
	KindMethodDeclaration:           "MethodDeclaration",
	KindPropertyDeclaration:         "PropertyDeclaration",
	KindParameter:                   "Parameter",
	KindExpressionStatement:         "ExpressionStatement",
	KindReturnStatement:             "ReturnStatement",
	KindThrowStatement:              "ThrowStatement",
	KindIfStatement:                 "IfStatement",
	KindWhileStatement:              "WhileStatement",
	KindBlock:                       "Block",
	KindNumericLiteral:              "NumericLiteral",
	KindStringLiteral:               "StringLiteral",
	KindIdentifier:                  "Identifier",
	KindTrueKeyword:                 "TrueKeyword",
	KindFalseKeyword:                "FalseKeyword",
	KindNullKeyword:                 "NullKeyword",
	KindUndefinedKeyword:            "UndefinedKeyword",
	KindThisKeyword:                 "ThisKeyword",
	KindSuperKeyword:                "SuperKeyword",
	KindArrayLiteral:                "ArrayLiteral",
	KindObjectLiteral:               "ObjectLiteral",
	KindPropertyAssignment:          "PropertyAssignment",
	KindShorthandPropertyAssignment: "ShorthandPropertyAssignment",
	KindCallExpression:              "CallExpression",
	KindNewExpression:               "NewExpression",
	KindPropertyAccessExpression:    "PropertyAccessExpression",
	KindBinaryExpression:            "BinaryExpression",
	KindPrefixUnaryExpression:       "PrefixUnaryExpression",
	KindParenthesizedExpression:     "ParenthesizedExpression",
	KindSpreadElement:               "SpreadElement",
	KindAwaitExpression:             "AwaitExpression",
}

// Kinds returns every defined kind except KindUnknown, in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, int(kindCount)-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k := KindUnknown; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return KindUnknown, errors.NewInvalidTreeError("unknown node kind %q", name)
}

// IsTerminal reports whether a statement of this kind ends control flow in a body.
func (k Kind) IsTerminal() bool {
	return k == KindReturnStatement || k == KindThrowStatement
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return errors.Wrapf(err, "node kind at line %d", value.Line)
	}
	return k.UnmarshalText([]byte(name))
}
