package ast

// Constructors for hand-built trees. The tree-sitter front end and tests use
// these instead of filling Node literals field by field.

func File(stmts ...*Node) *Node {
	return &Node{Kind: KindSourceFile, Children: stmts}
}

func ExprStmt(x *Node) *Node {
	return &Node{Kind: KindExpressionStatement, Children: []*Node{x}}
}

func Ident(name string) *Node {
	return &Node{Kind: KindIdentifier, Text: name}
}

func Num(text string) *Node {
	return &Node{Kind: KindNumericLiteral, Text: text}
}

// Str builds a string literal; text includes its quote characters.
func Str(text string) *Node {
	return &Node{Kind: KindStringLiteral, Text: text}
}

func Bool(v bool) *Node {
	if v {
		return &Node{Kind: KindTrueKeyword}
	}
	return &Node{Kind: KindFalseKeyword}
}

func Binary(op string, left, right *Node) *Node {
	return &Node{Kind: KindBinaryExpression, Text: op, Children: []*Node{left, right}}
}

func Call(callee *Node, args ...*Node) *Node {
	return &Node{Kind: KindCallExpression, Children: append([]*Node{callee}, args...)}
}

func Member(object *Node, property string) *Node {
	return &Node{Kind: KindPropertyAccessExpression, Name: property, Children: []*Node{object}}
}

func This() *Node {
	return &Node{Kind: KindThisKeyword}
}

func Spread(x *Node) *Node {
	return &Node{Kind: KindSpreadElement, Children: []*Node{x}}
}

func Array(elems ...*Node) *Node {
	return &Node{Kind: KindArrayLiteral, Children: elems}
}

func Object(props ...*Node) *Node {
	return &Node{Kind: KindObjectLiteral, Children: props}
}

func Prop(key string, value *Node) *Node {
	return &Node{Kind: KindPropertyAssignment, Name: key, Children: []*Node{value}}
}

func Return(value *Node) *Node {
	n := &Node{Kind: KindReturnStatement}
	if value != nil {
		n.Children = []*Node{value}
	}
	return n
}

// Const builds a const declaration; typ and init may be nil.
func Const(name string, typ *TypeRef, init *Node) *Node {
	n := &Node{Kind: KindVariableStatement, Text: "const", Name: name, Type: typ}
	if init != nil {
		n.Children = []*Node{init}
	}
	return n
}

func Param(name string, typ *TypeRef, mods Modifier) *Node {
	return &Node{Kind: KindParameter, Name: name, Type: typ, Modifiers: mods}
}

func Func(name string, params []*Node, ret *TypeRef, body ...*Node) *Node {
	return &Node{Kind: KindFunctionDeclaration, Name: name, Params: params, Type: ret, Children: body}
}

func Class(name string, members ...*Node) *Node {
	return &Node{Kind: KindClassDeclaration, Name: name, Children: members}
}

func Ctor(params []*Node, body ...*Node) *Node {
	return &Node{Kind: KindConstructor, Params: params, Children: body}
}

func Method(name string, params []*Node, ret *TypeRef, body ...*Node) *Node {
	return &Node{Kind: KindMethodDeclaration, Name: name, Params: params, Type: ret, Children: body}
}

// Named builds a bare type name annotation.
func Named(name string) *TypeRef {
	return &TypeRef{Kind: TypeName, Name: name}
}

// ArrayOf builds an array annotation.
func ArrayOf(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: TypeArray, Elem: elem}
}
