package crystal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/errors"
)

func block(stmts ...*ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.KindBlock, Children: stmts}
}

func paren(x *ast.Node) *ast.Node {
	return &ast.Node{Kind: ast.KindParenthesizedExpression, Children: []*ast.Node{x}}
}

func call(name string, args ...*ast.Node) *ast.Node {
	return ast.ExprStmt(ast.Call(ast.Ident(name), args...))
}

func TestIfStatement(t *testing.T) {
	stmt := &ast.Node{Kind: ast.KindIfStatement, Children: []*ast.Node{
		paren(ast.Binary(">", ast.Ident("x"), ast.Num("1"))),
		block(call("a")),
		{Kind: ast.KindIfStatement, Children: []*ast.Node{
			paren(ast.Binary("<", ast.Ident("x"), ast.Num("0"))),
			block(call("b")),
			block(call("c"), call("d")),
		}},
	}}

	assert.Equal(t, lines(
		`if x > 1`,
		`  a()`,
		`elsif x < 0`,
		`  b()`,
		`else`,
		`  c()`,
		`  d()`,
		`end`,
	), render(t, stmt))
}

func TestIfStatement_SingleStatementBranch(t *testing.T) {
	stmt := &ast.Node{Kind: ast.KindIfStatement, Children: []*ast.Node{
		ast.Ident("ok"),
		ast.Return(nil),
	}}
	fn := ast.Func("check", nil, nil, stmt)

	assert.Equal(t, lines(
		`private def check`,
		`  if ok`,
		`    return`,
		`  end`,
		`  return`,
		`end`,
	), render(t, fn))
}

func TestWhileStatement(t *testing.T) {
	stmt := &ast.Node{Kind: ast.KindWhileStatement, Children: []*ast.Node{
		paren(ast.Binary("<", ast.Ident("i"), ast.Num("10"))),
		block(ast.ExprStmt(ast.Binary("+=", ast.Ident("i"), ast.Num("1")))),
	}}

	assert.Equal(t, lines(
		`while i < 10`,
		`  i += 1`,
		`end`,
	), render(t, stmt))
}

func TestBlockStatement(t *testing.T) {
	assert.Equal(t, lines(
		`begin`,
		`  a()`,
		`end`,
	), render(t, block(call("a"))))
}

func TestVariableStatements(t *testing.T) {
	got := render(t,
		&ast.Node{Kind: ast.KindVariableStatement, Text: "let", Name: "x"},
		&ast.Node{Kind: ast.KindVariableStatement, Text: "let", Name: "y", Type: ast.Named("number")},
		&ast.Node{Kind: ast.KindVariableStatement, Text: "var", Name: "z", Type: ast.Named("string"),
			Children: []*ast.Node{ast.Str(`"z"`)}},
	)
	assert.Equal(t, lines(
		`x = nil`,
		`y : Num`,
		`z : String = "z"`,
	), got)
}

func TestSyntheticReturn(t *testing.T) {
	throw := &ast.Node{Kind: ast.KindThrowStatement, Children: []*ast.Node{
		{Kind: ast.KindNewExpression, Name: "Error", Children: []*ast.Node{ast.Str(`"boom"`)}},
	}}

	tests := []struct {
		name string
		fn   *ast.Node
		want string
	}{
		{
			name: "empty body",
			fn:   ast.Func("noop", nil, nil),
			want: lines(`private def noop`, `  return`, `end`),
		},
		{
			name: "explicit return",
			fn:   ast.Func("one", nil, ast.Named("number"), ast.Return(ast.Num("1"))),
			want: lines(`private def one : Num`, `  return 1`, `end`),
		},
		{
			name: "throw",
			fn:   ast.Func("fail", nil, ast.Named("never"), throw),
			want: lines(`private def fail : NoReturn`, `  raise Exception.new("boom")`, `end`),
		},
		{
			name: "return before other statements",
			fn:   ast.Func("early", nil, nil, ast.Return(nil), call("unreachable")),
			want: lines(`private def early`, `  return`, `  unreachable()`, `  return`, `end`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.fn))
		})
	}
}

func TestParameters(t *testing.T) {
	withDefault := ast.Param("times", ast.Named("number"), 0)
	withDefault.Children = []*ast.Node{ast.Num("1")}
	untypedDefault := ast.Param("sep", nil, 0)
	untypedDefault.Children = []*ast.Node{ast.Str(`","`)}

	fn := ast.Func("greet", []*ast.Node{
		ast.Param("name", ast.Named("string"), ast.ModOptional),
		withDefault,
		ast.Param("tag", union(ast.Named("string"), ast.Named("number")), ast.ModOptional),
		ast.Param("extra", nil, ast.ModOptional),
		untypedDefault,
		ast.Param("rest", nil, ast.ModRest),
	}, nil)
	fn.Modifiers = ast.ModExport

	assert.Equal(t, lines(
		`def greet(name : String? = nil, times : Num = 1, tag : (String | Num)? = nil, extra = nil, sep = ",", *rest)`,
		`  return`,
		`end`,
	), render(t, fn))
}

func TestAsyncCalls(t *testing.T) {
	fetch := asyncFunc(ast.Func("fetch", []*ast.Node{ast.Param("id", ast.Named("number"), 0)}, nil))

	got := render(t,
		call("later"),
		fetch,
		call("fetch", ast.Num("1")),
		ast.ExprStmt(&ast.Node{Kind: ast.KindAwaitExpression, Children: []*ast.Node{ast.Call(ast.Ident("later"))}}),
		call("sync"),
		asyncFunc(ast.Func("later", nil, nil)),
	)

	assert.Equal(t, lines(
		`await later`,
		`private def fetch(id : Num)`,
		`  async! do`,
		`    return`,
		`  end`,
		`end`,
		`await fetch(1)`,
		`await later`,
		`sync()`,
		`private def later`,
		`  async! do`,
		`    return`,
		`  end`,
		`end`,
	), got)
}

func TestCollectAsync(t *testing.T) {
	root := ast.File(
		asyncFunc(ast.Func("a", nil, nil)),
		ast.Func("b", nil, nil),
		asyncFunc(ast.Func("", nil, nil)),
	)
	assert.Equal(t, map[string]bool{"a": true}, collectAsync(root))
}

func TestNestedFunction(t *testing.T) {
	_, err := Generate(ast.File(ast.Func("outer", nil, nil, ast.Func("inner", nil, nil))), true, 2)
	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedSyntaxError(err))
}

// Every kind either renders or fails with a structured error, in both
// statement and expression position.
func TestDispatch_EveryKind(t *testing.T) {
	kinds := append([]ast.Kind{ast.KindUnknown}, ast.Kinds()...)

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			for _, tree := range []*ast.Node{
				ast.File(&ast.Node{Kind: k}),
				ast.File(ast.ExprStmt(&ast.Node{Kind: k})),
				ast.File(ast.Func("f", nil, nil, &ast.Node{Kind: k})),
			} {
				var err error
				require.NotPanics(t, func() {
					_, err = Generate(tree, true, 2)
				})
				if err != nil {
					assert.True(t, errors.IsAny(err, errors.ErrUnsupportedSyntax, errors.ErrInvalidTree, errors.ErrTypeMapping),
						"unexpected error for %s: %v", k, err)
				}
			}
		})
	}
}

func TestDispatch_UnknownCarriesRawType(t *testing.T) {
	_, err := Generate(ast.File(&ast.Node{Kind: ast.KindUnknown, Text: "for_in_statement",
		Pos: ast.Pos{Line: 2, Column: 1}}), true, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "for_in_statement")
	assert.Contains(t, err.Error(), "2:1")
}

func TestDispatch_UnknownExpressionCarriesRawType(t *testing.T) {
	unknown := func(raw string) *ast.Node {
		return &ast.Node{Kind: ast.KindUnknown, Text: raw, Pos: ast.Pos{Line: 1, Column: 11}}
	}

	tests := []struct {
		name string
		tree *ast.Node
		raw  string
	}{
		{"initializer", ast.File(ast.Const("f", nil, unknown("arrow_function"))), "arrow_function"},
		{"call argument", ast.File(call("g", unknown("template_string"))), "template_string"},
		{"operand", ast.File(ast.ExprStmt(ast.Binary("+", ast.Num("1"), unknown("ternary_expression")))), "ternary_expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.tree, true, 2)
			require.Error(t, err)

			var syntaxErr *UnsupportedSyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, ast.KindUnknown, syntaxErr.Kind)
			assert.Equal(t, tt.raw, syntaxErr.Detail)
			assert.Contains(t, err.Error(), "1:11")
		})
	}
}
