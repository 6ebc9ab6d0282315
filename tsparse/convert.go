package tsparse

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/crystal"
	"github.com/teranos/tscr/errors"
	"github.com/teranos/tscr/logger"
)

// converter walks one tree-sitter tree. The first annotation it cannot
// represent is kept in err and stops the parse.
type converter struct {
	src      []byte
	filename string
	logger   *zap.SugaredLogger
	err      error
}

var keywordKinds = map[string]ast.Kind{
	"true":      ast.KindTrueKeyword,
	"false":     ast.KindFalseKeyword,
	"null":      ast.KindNullKeyword,
	"undefined": ast.KindUndefinedKeyword,
	"this":      ast.KindThisKeyword,
	"super":     ast.KindSuperKeyword,
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.src)
}

func (c *converter) node(kind ast.Kind, n *sitter.Node) *ast.Node {
	return &ast.Node{Kind: kind, Pos: position(n)}
}

// unknown records a construct without an ast.Kind. The generator rejects it
// with the raw node type in the message.
func (c *converter) unknown(n *sitter.Node) *ast.Node {
	pos := position(n)
	c.logger.Debugw("no tree mapping for node",
		logger.FieldFile, c.filename,
		logger.FieldNodeType, n.Type(),
		logger.FieldLine, pos.Line,
		logger.FieldColumn, pos.Column)
	return &ast.Node{Kind: ast.KindUnknown, Pos: pos, Text: n.Type()}
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// firstNamed returns the first non-comment named child of n, or nil.
func firstNamed(n *sitter.Node) *sitter.Node {
	children := namedChildren(n)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// hasToken reports whether n has a direct child of the given type.
func hasToken(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil && child.Type() == typ {
			return true
		}
	}
	return false
}

// modifiers collects the keyword modifiers written directly on a declaration.
func (c *converter) modifiers(n *sitter.Node) ast.Modifier {
	var mods ast.Modifier
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "accessibility_modifier":
			switch c.text(child) {
			case "public":
				mods |= ast.ModPublic
			case "private":
				mods |= ast.ModPrivate
			case "protected":
				mods |= ast.ModProtected
			}
		case "readonly":
			mods |= ast.ModReadonly
		case "static":
			mods |= ast.ModStatic
		case "async":
			mods |= ast.ModAsync
		}
	}
	return mods
}

func (c *converter) program(root *sitter.Node) *ast.Node {
	file := c.node(ast.KindSourceFile, root)
	for _, child := range namedChildren(root) {
		file.Children = append(file.Children, c.statement(child)...)
	}
	return file
}

// statement converts one statement. Declarations with several declarators
// expand to several statements; empty statements vanish.
func (c *converter) statement(n *sitter.Node) []*ast.Node {
	switch n.Type() {
	case "expression_statement":
		stmt := c.node(ast.KindExpressionStatement, n)
		stmt.Children = []*ast.Node{c.expr(firstNamed(n))}
		return []*ast.Node{stmt}

	case "lexical_declaration", "variable_declaration":
		return c.variables(n)

	case "function_declaration":
		return []*ast.Node{c.function(n)}

	case "class_declaration":
		return []*ast.Node{c.class(n)}

	case "export_statement":
		decl := n.ChildByFieldName("declaration")
		if decl == nil {
			return []*ast.Node{c.unknown(n)}
		}
		stmts := c.statement(decl)
		for _, s := range stmts {
			if s.Is(ast.KindFunctionDeclaration) || s.Is(ast.KindClassDeclaration) {
				s.Modifiers |= ast.ModExport
			}
		}
		return stmts

	case "return_statement":
		ret := c.node(ast.KindReturnStatement, n)
		if value := firstNamed(n); value != nil {
			ret.Children = []*ast.Node{c.expr(value)}
		}
		return []*ast.Node{ret}

	case "throw_statement":
		throw := c.node(ast.KindThrowStatement, n)
		throw.Children = []*ast.Node{c.expr(firstNamed(n))}
		return []*ast.Node{throw}

	case "if_statement":
		stmt := c.node(ast.KindIfStatement, n)
		stmt.Children = []*ast.Node{
			c.expr(n.ChildByFieldName("condition")),
			c.single(n.ChildByFieldName("consequence")),
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			body := alt
			if alt.Type() == "else_clause" {
				body = firstNamed(alt)
			}
			stmt.Children = append(stmt.Children, c.single(body))
		}
		return []*ast.Node{stmt}

	case "while_statement":
		stmt := c.node(ast.KindWhileStatement, n)
		stmt.Children = []*ast.Node{
			c.expr(n.ChildByFieldName("condition")),
			c.single(n.ChildByFieldName("body")),
		}
		return []*ast.Node{stmt}

	case "statement_block":
		return []*ast.Node{c.block(n)}

	case "empty_statement", "comment":
		return nil

	default:
		return []*ast.Node{c.unknown(n)}
	}
}

// single converts a statement that must be exactly one node.
func (c *converter) single(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	stmts := c.statement(n)
	if len(stmts) == 1 {
		return stmts[0]
	}
	block := c.node(ast.KindBlock, n)
	block.Children = stmts
	return block
}

func (c *converter) block(n *sitter.Node) *ast.Node {
	block := c.node(ast.KindBlock, n)
	block.Children = c.body(n)
	return block
}

// body converts the statements of a statement_block.
func (c *converter) body(n *sitter.Node) []*ast.Node {
	var stmts []*ast.Node
	for _, child := range namedChildren(n) {
		stmts = append(stmts, c.statement(child)...)
	}
	return stmts
}

func (c *converter) variables(n *sitter.Node) []*ast.Node {
	keyword := "var"
	if kind := n.ChildByFieldName("kind"); kind != nil {
		keyword = c.text(kind)
	} else if n.ChildCount() > 0 {
		keyword = n.Child(0).Type()
	}

	var stmts []*ast.Node
	for _, decl := range namedChildren(n) {
		if decl.Type() != "variable_declarator" {
			continue
		}
		name := decl.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			// Destructuring patterns
			stmts = append(stmts, c.unknown(firstOr(name, decl)))
			continue
		}
		stmt := c.node(ast.KindVariableStatement, decl)
		stmt.Text = keyword
		stmt.Name = c.text(name)
		stmt.Type = c.annotation(decl.ChildByFieldName("type"))
		if value := decl.ChildByFieldName("value"); value != nil {
			stmt.Children = []*ast.Node{c.expr(value)}
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func firstOr(n, fallback *sitter.Node) *sitter.Node {
	if n != nil {
		return n
	}
	return fallback
}

func (c *converter) function(n *sitter.Node) *ast.Node {
	fn := c.node(ast.KindFunctionDeclaration, n)
	fn.Name = c.text(n.ChildByFieldName("name"))
	fn.Modifiers = c.modifiers(n)
	fn.TypeParams = c.typeParams(n.ChildByFieldName("type_parameters"))
	fn.Params = c.params(n.ChildByFieldName("parameters"))
	fn.Type = c.annotation(n.ChildByFieldName("return_type"))
	fn.Children = c.body(n.ChildByFieldName("body"))
	return fn
}

func (c *converter) class(n *sitter.Node) *ast.Node {
	class := c.node(ast.KindClassDeclaration, n)
	class.Name = c.text(n.ChildByFieldName("name"))
	class.TypeParams = c.typeParams(n.ChildByFieldName("type_parameters"))

	for i := 0; i < int(n.ChildCount()); i++ {
		heritage := n.Child(i)
		if heritage == nil || heritage.Type() != "class_heritage" {
			continue
		}
		// implements clauses are type-only and have no runtime counterpart
		for _, clause := range namedChildren(heritage) {
			if clause.Type() == "extends_clause" {
				class.Type = c.extends(clause)
			}
		}
	}

	for _, member := range namedChildren(n.ChildByFieldName("body")) {
		class.Children = append(class.Children, c.member(member))
	}
	return class
}

func (c *converter) extends(clause *sitter.Node) *ast.TypeRef {
	value := clause.ChildByFieldName("value")
	if value == nil {
		value = firstNamed(clause)
	}
	if value == nil {
		return nil
	}
	ref := &ast.TypeRef{Kind: ast.TypeName, Name: c.text(value)}
	if args := clause.ChildByFieldName("type_arguments"); args != nil {
		ref.Kind = ast.TypeReference
		ref.Args = c.typeArgs(args)
	}
	return ref
}

func (c *converter) member(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "method_definition":
		if hasToken(n, "get") || hasToken(n, "set") || hasToken(n, "*") {
			return c.unknown(n)
		}
		name := c.text(n.ChildByFieldName("name"))
		kind := ast.KindMethodDeclaration
		if name == "constructor" {
			kind = ast.KindConstructor
		}
		m := c.node(kind, n)
		if kind == ast.KindMethodDeclaration {
			m.Name = name
			m.TypeParams = c.typeParams(n.ChildByFieldName("type_parameters"))
			m.Type = c.annotation(n.ChildByFieldName("return_type"))
		}
		m.Modifiers = c.modifiers(n)
		m.Params = c.params(n.ChildByFieldName("parameters"))
		m.Children = c.body(n.ChildByFieldName("body"))
		return m

	case "public_field_definition":
		field := c.node(ast.KindPropertyDeclaration, n)
		field.Name = c.text(n.ChildByFieldName("name"))
		field.Modifiers = c.modifiers(n)
		field.Type = c.annotation(n.ChildByFieldName("type"))
		if value := n.ChildByFieldName("value"); value != nil {
			field.Children = []*ast.Node{c.expr(value)}
		}
		return field

	default:
		return c.unknown(n)
	}
}

func (c *converter) params(n *sitter.Node) []*ast.Node {
	var params []*ast.Node
	for _, p := range namedChildren(n) {
		params = append(params, c.param(p))
	}
	return params
}

func (c *converter) param(n *sitter.Node) *ast.Node {
	if n.Type() != "required_parameter" && n.Type() != "optional_parameter" {
		return c.unknown(n)
	}

	pattern := n.ChildByFieldName("pattern")
	if pattern == nil {
		return c.unknown(n)
	}

	param := c.node(ast.KindParameter, n)
	param.Modifiers = c.modifiers(n)
	if n.Type() == "optional_parameter" {
		param.Modifiers |= ast.ModOptional
	}

	switch pattern.Type() {
	case "identifier":
		param.Name = c.text(pattern)
	case "rest_pattern":
		inner := firstNamed(pattern)
		if inner == nil || inner.Type() != "identifier" {
			return c.unknown(pattern)
		}
		param.Name = c.text(inner)
		param.Modifiers |= ast.ModRest
	default:
		return c.unknown(pattern)
	}

	param.Type = c.annotation(n.ChildByFieldName("type"))
	if value := n.ChildByFieldName("value"); value != nil {
		param.Children = []*ast.Node{c.expr(value)}
	}
	return param
}

func (c *converter) typeParams(n *sitter.Node) []string {
	var names []string
	for _, tp := range namedChildren(n) {
		if tp.Type() != "type_parameter" {
			continue
		}
		name := tp.ChildByFieldName("name")
		if name == nil {
			name = firstNamed(tp)
		}
		names = append(names, c.text(name))
	}
	return names
}

func (c *converter) expr(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}

	if kind, ok := keywordKinds[n.Type()]; ok {
		return c.node(kind, n)
	}

	switch n.Type() {
	case "number":
		x := c.node(ast.KindNumericLiteral, n)
		x.Text = c.text(n)
		return x

	case "string":
		x := c.node(ast.KindStringLiteral, n)
		x.Text = c.text(n)
		return x

	case "identifier":
		if c.text(n) == "undefined" {
			return c.node(ast.KindUndefinedKeyword, n)
		}
		x := c.node(ast.KindIdentifier, n)
		x.Text = c.text(n)
		return x

	case "binary_expression", "augmented_assignment_expression", "assignment_expression":
		x := c.node(ast.KindBinaryExpression, n)
		x.Text = "="
		if op := n.ChildByFieldName("operator"); op != nil {
			x.Text = op.Type()
		}
		x.Children = []*ast.Node{
			c.expr(n.ChildByFieldName("left")),
			c.expr(n.ChildByFieldName("right")),
		}
		return x

	case "unary_expression":
		x := c.node(ast.KindPrefixUnaryExpression, n)
		if op := n.ChildByFieldName("operator"); op != nil {
			x.Text = op.Type()
		}
		x.Children = []*ast.Node{c.expr(n.ChildByFieldName("argument"))}
		return x

	case "parenthesized_expression":
		x := c.node(ast.KindParenthesizedExpression, n)
		x.Children = []*ast.Node{c.expr(firstNamed(n))}
		return x

	case "call_expression":
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if fn == nil || args == nil || args.Type() != "arguments" {
			// Tagged templates and optional calls
			return c.unknown(n)
		}
		x := c.node(ast.KindCallExpression, n)
		x.Children = append([]*ast.Node{c.expr(fn)}, c.exprs(args)...)
		return x

	case "new_expression":
		ctor := n.ChildByFieldName("constructor")
		if ctor == nil || ctor.Type() != "identifier" {
			return c.unknown(n)
		}
		x := c.node(ast.KindNewExpression, n)
		x.Name = c.text(ctor)
		if targs := n.ChildByFieldName("type_arguments"); targs != nil {
			x.Type = &ast.TypeRef{Kind: ast.TypeReference, Name: x.Name, Args: c.typeArgs(targs)}
		}
		x.Children = c.exprs(n.ChildByFieldName("arguments"))
		return x

	case "member_expression":
		prop := n.ChildByFieldName("property")
		if prop == nil || prop.Type() != "property_identifier" || hasToken(n, "?.") || hasToken(n, "optional_chain") {
			return c.unknown(n)
		}
		x := c.node(ast.KindPropertyAccessExpression, n)
		x.Name = c.text(prop)
		x.Children = []*ast.Node{c.expr(n.ChildByFieldName("object"))}
		return x

	case "spread_element":
		x := c.node(ast.KindSpreadElement, n)
		x.Children = []*ast.Node{c.expr(firstNamed(n))}
		return x

	case "array":
		x := c.node(ast.KindArrayLiteral, n)
		x.Children = c.exprs(n)
		return x

	case "object":
		return c.object(n)

	case "await_expression":
		x := c.node(ast.KindAwaitExpression, n)
		x.Children = []*ast.Node{c.expr(firstNamed(n))}
		return x

	default:
		return c.unknown(n)
	}
}

// exprs converts the named children of an argument list or array literal.
func (c *converter) exprs(n *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for _, child := range namedChildren(n) {
		out = append(out, c.expr(child))
	}
	return out
}

func (c *converter) object(n *sitter.Node) *ast.Node {
	obj := c.node(ast.KindObjectLiteral, n)
	for _, member := range namedChildren(n) {
		switch member.Type() {
		case "pair":
			key, ok := c.propertyKey(member.ChildByFieldName("key"))
			if !ok {
				obj.Children = append(obj.Children, c.unknown(member))
				continue
			}
			prop := c.node(ast.KindPropertyAssignment, member)
			prop.Name = key
			prop.Children = []*ast.Node{c.expr(member.ChildByFieldName("value"))}
			obj.Children = append(obj.Children, prop)

		case "shorthand_property_identifier":
			prop := c.node(ast.KindShorthandPropertyAssignment, member)
			prop.Name = c.text(member)
			obj.Children = append(obj.Children, prop)

		case "spread_element":
			obj.Children = append(obj.Children, c.expr(member))

		default:
			obj.Children = append(obj.Children, c.unknown(member))
		}
	}
	return obj
}

// propertyKey returns the unquoted key text of an object literal pair.
func (c *converter) propertyKey(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "property_identifier", "number":
		return c.text(n), true
	case "string":
		text := c.text(n)
		if unquoted, err := strconv.Unquote(text); err == nil {
			return unquoted, true
		}
		if len(text) >= 2 {
			return text[1 : len(text)-1], true
		}
	}
	return "", false
}

// annotation converts a type_annotation node (": T") to a TypeRef.
func (c *converter) annotation(n *sitter.Node) *ast.TypeRef {
	if n == nil {
		return nil
	}
	if n.Type() == "type_annotation" {
		n = firstNamed(n)
	}
	if n == nil {
		return nil
	}
	return c.typeRef(n)
}

func (c *converter) typeRef(n *sitter.Node) *ast.TypeRef {
	switch n.Type() {
	case "predefined_type", "type_identifier", "nested_type_identifier":
		return ast.Named(c.text(n))

	case "literal_type":
		inner := firstNamed(n)
		if inner != nil && (inner.Type() == "null" || inner.Type() == "undefined") {
			return ast.Named(inner.Type())
		}

	case "array_type":
		if elem := firstNamed(n); elem != nil {
			return ast.ArrayOf(c.typeRef(elem))
		}

	case "generic_type":
		name := n.ChildByFieldName("name")
		args := n.ChildByFieldName("type_arguments")
		if name != nil && args != nil {
			return &ast.TypeRef{Kind: ast.TypeReference, Name: c.text(name), Args: c.typeArgs(args)}
		}

	case "union_type":
		ref := &ast.TypeRef{Kind: ast.TypeUnion}
		for _, member := range namedChildren(n) {
			sub := c.typeRef(member)
			if sub != nil && sub.Kind == ast.TypeUnion {
				ref.Args = append(ref.Args, sub.Args...)
				continue
			}
			ref.Args = append(ref.Args, sub)
		}
		return ref

	case "parenthesized_type":
		if inner := firstNamed(n); inner != nil {
			return c.typeRef(inner)
		}
	}

	c.fail(n)
	return ast.Named(n.Type())
}

func (c *converter) typeArgs(n *sitter.Node) []*ast.TypeRef {
	var args []*ast.TypeRef
	for _, arg := range namedChildren(n) {
		args = append(args, c.typeRef(arg))
	}
	return args
}

// fail records the first annotation the tree cannot represent.
func (c *converter) fail(n *sitter.Node) {
	if c.err != nil {
		return
	}
	c.err = errors.Wrap(&crystal.TypeMappingError{
		Pos:        position(n),
		Annotation: c.text(n),
		Detail:     "no Crystal equivalent for " + n.Type(),
	}, c.filename)
}
