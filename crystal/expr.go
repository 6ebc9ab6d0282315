package crystal

import (
	"math"
	"strconv"
	"strings"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/errors"
)

// binaryOperators maps TypeScript binary operators to Crystal.
// Operators missing from the table have no Crystal counterpart.
var binaryOperators = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%", "**": "**",
	"==": "==", "!=": "!=", "===": "==", "!==": "!=",
	"<": "<", ">": ">", "<=": "<=", ">=": ">=",
	"&&": "&&", "||": "||",
	"&": "&", "|": "|", "^": "^", "<<": "<<", ">>": ">>",
	"=": "=", "+=": "+=", "-=": "-=", "*=": "*=", "/=": "/=", "%=": "%=",
}

var prefixOperators = map[string]string{
	"!": "!", "-": "-", "+": "+", "~": "~",
}

// builtinCalls maps well-known TypeScript callees to Crystal.
var builtinCalls = map[string]string{
	"console.log":   "puts",
	"console.info":  "puts",
	"console.error": "STDERR.puts",
	"console.warn":  "STDERR.puts",
}

// literalElementTypes names the annotation inferred for an untyped array whose
// elements are all literals of one kind.
var literalElementTypes = map[ast.Kind]string{
	ast.KindNumericLiteral: "number",
	ast.KindStringLiteral:  "string",
	ast.KindTrueKeyword:    "boolean",
	ast.KindFalseKeyword:   "boolean",
}

// expr renders an expression. depth is the nesting level of the line the
// expression starts on; multi-line literals indent relative to it.
func (p *pass) expr(n *ast.Node, depth int) (string, error) {
	if n == nil {
		return "", errors.NewInvalidTreeError("missing expression")
	}

	switch n.Kind {
	case ast.KindNumericLiteral:
		return renderNumber(n)
	case ast.KindStringLiteral:
		if n.Text == "" {
			return "", missing(n, "text")
		}
		return n.Text, nil
	case ast.KindIdentifier:
		if n.Text == "" {
			return "", missing(n, "name")
		}
		return n.Text, nil
	case ast.KindTrueKeyword:
		return "true", nil
	case ast.KindFalseKeyword:
		return "false", nil
	case ast.KindNullKeyword, ast.KindUndefinedKeyword:
		return "nil", nil
	case ast.KindThisKeyword:
		return "self", nil
	case ast.KindSuperKeyword:
		return "super", nil
	case ast.KindArrayLiteral:
		return p.array(n, nil, depth)
	case ast.KindObjectLiteral:
		return p.object(n, depth)
	case ast.KindCallExpression:
		return p.call(n, depth)
	case ast.KindNewExpression:
		return p.newExpr(n, depth)
	case ast.KindPropertyAccessExpression:
		return p.member(n, depth)
	case ast.KindBinaryExpression:
		return p.binary(n, depth)
	case ast.KindPrefixUnaryExpression:
		op, ok := prefixOperators[n.Text]
		if !ok {
			return "", unsupported(n, "operator %q", n.Text)
		}
		operand, err := p.expr(n.Child(0), depth)
		if err != nil {
			return "", err
		}
		return op + operand, nil
	case ast.KindParenthesizedExpression:
		inner, err := p.expr(n.Child(0), depth)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case ast.KindAwaitExpression:
		return p.await(n, depth)
	case ast.KindSpreadElement:
		return "", unsupported(n, "spread outside call arguments")
	default:
		if n.Text != "" {
			return "", unsupported(n, "%s", n.Text)
		}
		return "", unsupported(n, "not an expression")
	}
}

// renderNumber normalizes a numeric literal to its minimal decimal form.
func renderNumber(n *ast.Node) (string, error) {
	if i, err := strconv.ParseInt(n.Text, 0, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(n.Text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", unsupported(n, "numeric literal %q", n.Text)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func (p *pass) binary(n *ast.Node, depth int) (string, error) {
	op, ok := binaryOperators[n.Text]
	if !ok {
		return "", unsupported(n, "operator %q", n.Text)
	}
	if len(n.Children) != 2 {
		return "", missing(n, "operand pair")
	}
	left, err := p.expr(n.Children[0], depth)
	if err != nil {
		return "", err
	}
	right, err := p.expr(n.Children[1], depth)
	if err != nil {
		return "", err
	}
	return left + " " + op + " " + right, nil
}

func (p *pass) member(n *ast.Node, depth int) (string, error) {
	if n.Name == "" {
		return "", missing(n, "property name")
	}
	object := n.Child(0)
	if object == nil {
		return "", missing(n, "object")
	}
	if object.Is(ast.KindThisKeyword) {
		return "@" + n.Name, nil
	}
	if path, ok := builtinPath(n); ok {
		if mapped, ok := builtinCalls[path]; ok {
			return mapped, nil
		}
	}
	target, err := p.expr(object, depth)
	if err != nil {
		return "", err
	}
	return target + "." + n.Name, nil
}

// builtinPath returns "object.property" for a member access on a bare identifier.
func builtinPath(n *ast.Node) (string, bool) {
	if !n.Is(ast.KindPropertyAccessExpression) {
		return "", false
	}
	object := n.Child(0)
	if object == nil || !object.Is(ast.KindIdentifier) {
		return "", false
	}
	return object.Text + "." + n.Name, true
}

func (p *pass) callee(n *ast.Node, depth int) (string, error) {
	if n == nil {
		return "", errors.NewInvalidTreeError("call without callee")
	}
	// this.m() calls a method, this.x reads an instance variable
	if n.Is(ast.KindPropertyAccessExpression) && n.Child(0).Is(ast.KindThisKeyword) && n.Name != "" {
		return "self." + n.Name, nil
	}
	return p.expr(n, depth)
}

func (p *pass) call(n *ast.Node, depth int) (string, error) {
	callee, err := p.callee(n.Child(0), depth)
	if err != nil {
		return "", err
	}
	args, err := p.arguments(n.Children[1:], depth)
	if err != nil {
		return "", err
	}
	return callee + "(" + args + ")", nil
}

func (p *pass) arguments(args []*ast.Node, depth int) (string, error) {
	rendered := make([]string, 0, len(args))
	for _, arg := range args {
		if arg.Is(ast.KindSpreadElement) {
			inner, err := p.expr(arg.Child(0), depth)
			if err != nil {
				return "", err
			}
			rendered = append(rendered, "*"+inner)
			continue
		}
		s, err := p.expr(arg, depth)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, s)
	}
	return strings.Join(rendered, ", "), nil
}

func (p *pass) newExpr(n *ast.Node, depth int) (string, error) {
	ref := n.Type
	if ref == nil {
		if n.Name == "" {
			return "", missing(n, "class name")
		}
		ref = ast.Named(n.Name)
	}
	class, err := mapTypeAt(ref, n.Pos)
	if err != nil {
		return "", err
	}
	args, err := p.arguments(n.Children, depth)
	if err != nil {
		return "", err
	}
	return class + ".new(" + args + ")", nil
}

// array renders an array literal. elem is the declared element annotation, or nil.
func (p *pass) array(n *ast.Node, elem *ast.TypeRef, depth int) (string, error) {
	elems, err := p.elements(n.Children, depth)
	if err != nil {
		return "", err
	}

	if elem == nil {
		elem = inferElementType(n.Children)
	}
	if elem == nil {
		if len(n.Children) == 0 {
			return "", unsupported(n, "empty array literal needs an element type annotation")
		}
		return ArrayType + ".new([" + elems + "])", nil
	}

	typ, err := mapTypeAt(elem, n.Pos)
	if err != nil {
		return "", err
	}
	return ArrayType + ".new([" + elems + "] of " + typ + ")", nil
}

func (p *pass) elements(nodes []*ast.Node, depth int) (string, error) {
	rendered := make([]string, len(nodes))
	for i, e := range nodes {
		s, err := p.expr(e, depth)
		if err != nil {
			return "", err
		}
		rendered[i] = s
	}
	return strings.Join(rendered, ", "), nil
}

func inferElementType(elems []*ast.Node) *ast.TypeRef {
	if len(elems) == 0 {
		return nil
	}
	var name string
	for _, e := range elems {
		if e == nil {
			return nil
		}
		kind, ok := literalElementTypes[e.Kind]
		if !ok || (name != "" && kind != name) {
			return nil
		}
		name = kind
	}
	return ast.Named(name)
}

// object renders an object literal as a Crystal hash, one entry per line.
func (p *pass) object(n *ast.Node, depth int) (string, error) {
	if len(n.Children) == 0 {
		return "", unsupported(n, "empty object literal has no Crystal hash type")
	}

	var b strings.Builder
	b.WriteString("{")
	indent := p.out.IndentAt(depth + 1)
	for i, prop := range n.Children {
		entry, err := p.entry(prop, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString("\n" + indent + entry)
		if i < len(n.Children)-1 {
			b.WriteString(",")
		}
	}
	b.WriteString("\n" + p.out.IndentAt(depth) + "}")
	return b.String(), nil
}

func (p *pass) entry(prop *ast.Node, depth int) (string, error) {
	if prop == nil {
		return "", errors.NewInvalidTreeError("missing object property")
	}
	switch prop.Kind {
	case ast.KindPropertyAssignment:
		if prop.Name == "" {
			return "", missing(prop, "key")
		}
		value, err := p.expr(prop.Child(0), depth)
		if err != nil {
			return "", err
		}
		return quoteKey(prop.Name) + " => " + value, nil
	case ast.KindShorthandPropertyAssignment:
		if prop.Name == "" {
			return "", missing(prop, "key")
		}
		return quoteKey(prop.Name) + " => " + prop.Name, nil
	default:
		return "", unsupported(prop, "object member")
	}
}

// quoteKey renders an object key as a Crystal string literal. `#{` is
// escaped so the key is never read as interpolation.
func quoteKey(key string) string {
	return strings.ReplaceAll(strconv.Quote(key), "#{", `\#{`)
}

// initializer renders the value of a declaration, using the declared
// annotation to type array literals.
func (p *pass) initializer(value *ast.Node, declared *ast.TypeRef, depth int) (string, error) {
	if value.Is(ast.KindArrayLiteral) {
		if elem := elementType(declared); elem != nil {
			return p.array(value, elem, depth)
		}
	}
	return p.expr(value, depth)
}
