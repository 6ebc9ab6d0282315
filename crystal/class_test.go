package crystal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/errors"
)

func field(name string, typ *ast.TypeRef, mods ast.Modifier, init *ast.Node) *ast.Node {
	n := &ast.Node{Kind: ast.KindPropertyDeclaration, Name: name, Type: typ, Modifiers: mods}
	if init != nil {
		n.Children = []*ast.Node{init}
	}
	return n
}

func withModifiers(n *ast.Node, mods ast.Modifier) *ast.Node {
	n.Modifiers |= mods
	return n
}

func TestClass_Members(t *testing.T) {
	class := ast.Class("Square",
		field("label", ast.Named("string"), ast.ModReadonly, ast.Str(`"sq"`)),
		field("count", ast.Named("number"), ast.ModPrivate|ast.ModStatic, ast.Num("0")),
		field("tags", ast.ArrayOf(ast.Named("string")), 0, ast.Array()),
		field("secret", ast.Named("string"), ast.ModPrivate, nil),
		field("ratio", nil, 0, ast.Num("1.50")),
		ast.Ctor([]*ast.Node{
			ast.Param("side", ast.Named("number"), ast.ModPublic|ast.ModReadonly),
			ast.Param("scale", ast.Named("number"), 0),
		},
			ast.ExprStmt(ast.Call(&ast.Node{Kind: ast.KindSuperKeyword}, ast.Ident("side"), ast.Ident("side"))),
		),
		withModifiers(ast.Method("describe", nil, ast.Named("string"),
			ast.Return(ast.Member(ast.This(), "label"))), ast.ModPrivate),
		withModifiers(ast.Method("create", []*ast.Node{ast.Param("n", ast.Named("number"), 0)}, ast.Named("Square"),
			ast.Return(&ast.Node{Kind: ast.KindNewExpression, Name: "Square", Children: []*ast.Node{ast.Ident("n"), ast.Num("1")}})),
			ast.ModStatic),
		withModifiers(ast.Method("refresh", nil, nil,
			ast.ExprStmt(ast.Call(ast.Member(ast.This(), "describe")))), ast.ModAsync),
		withModifiers(ast.Method("touch", nil, nil), ast.ModProtected),
	)
	class.Type = ast.Named("Rect")
	class.Modifiers = ast.ModExport

	assert.Equal(t, lines(
		`class Square < Rect`,
		`  getter label : String = "sq"`,
		`  @@count : Num = 0`,
		`  property tags : TsArray(String) = TsArray.new([] of String)`,
		`  @secret : String`,
		`  property ratio = 1.5`,
		`  def initialize(@side : Num, scale : Num)`,
		`    super(side, side)`,
		`    return`,
		`  end`,
		`  private def describe : String`,
		`    return @label`,
		`  end`,
		`  def self.create(n : Num) : Square`,
		`    return Square.new(n, 1)`,
		`  end`,
		`  def refresh`,
		`    async! do`,
		`      self.describe()`,
		`      return`,
		`    end`,
		`  end`,
		`  protected def touch`,
		`    return`,
		`  end`,
		`  property side : Num`,
		`end`,
	), render(t, class))
}

func TestClass_WithoutConstructor(t *testing.T) {
	assert.Equal(t, lines(
		`private class Empty`,
		`end`,
	), render(t, ast.Class("Empty")))
}

func TestClass_GenericBase(t *testing.T) {
	class := ast.Class("Stack")
	class.TypeParams = []string{"T", "U"}
	class.Type = generic("Base", ast.Named("T"))

	assert.Equal(t, lines(
		`private class Stack(T, U) < Base(T)`,
		`end`,
	), render(t, class))
}

func TestPromote_Order(t *testing.T) {
	ctor := ast.Ctor([]*ast.Node{
		ast.Param("b", ast.Named("string"), ast.ModPublic|ast.ModReadonly),
		ast.Param("plain", ast.Named("number"), 0),
		ast.Param("a", ast.ArrayOf(ast.Named("u8")), ast.ModPublic|ast.ModReadonly),
	})

	props, err := promote(ctor)
	require.NoError(t, err)
	assert.Equal(t, []PropertyDescriptor{
		{Name: "b", Type: "String"},
		{Name: "a", Type: "TsArray(UInt8)"},
	}, props)

	props, err = promote(nil)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestPromote_Rejected(t *testing.T) {
	withDefault := ast.Param("w", ast.Named("number"), ast.ModPublic|ast.ModReadonly)
	withDefault.Children = []*ast.Node{ast.Num("1")}

	tests := []struct {
		name  string
		param *ast.Node
	}{
		{"private readonly", ast.Param("w", ast.Named("number"), ast.ModPrivate|ast.ModReadonly)},
		{"readonly only", ast.Param("w", ast.Named("number"), ast.ModReadonly)},
		{"public only", ast.Param("w", ast.Named("number"), ast.ModPublic)},
		{"protected", ast.Param("w", ast.Named("number"), ast.ModProtected)},
		{"default value", withDefault},
		{"optional", ast.Param("w", ast.Named("number"), ast.ModPublic|ast.ModReadonly|ast.ModOptional)},
		{"untyped", ast.Param("w", nil, ast.ModPublic|ast.ModReadonly)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class := ast.Class("C", ast.Ctor([]*ast.Node{tt.param}))
			_, err := Generate(ast.File(class), true, 2)
			require.Error(t, err)

			var syntaxErr *UnsupportedSyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, ast.KindParameter, syntaxErr.Kind)
		})
	}
}

func TestClass_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		class *ast.Node
	}{
		{"two constructors", ast.Class("C", ast.Ctor(nil), ast.Ctor(nil))},
		{"statement member", ast.Class("C", ast.ExprStmt(ast.Num("1")))},
		{"untyped field without initializer", ast.Class("C", field("x", nil, 0, nil))},
		{"async constructor", ast.Class("C", withModifiers(ast.Ctor(nil), ast.ModAsync))},
		{"parameter property on a method", ast.Class("C",
			ast.Method("m", []*ast.Node{ast.Param("x", ast.Named("number"), ast.ModPublic)}, nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(ast.File(tt.class), true, 2)
			require.Error(t, err)
			assert.True(t, errors.IsUnsupportedSyntaxError(err))
		})
	}
}

func TestClass_Nested(t *testing.T) {
	fn := ast.Func("outer", nil, nil, ast.Class("Inner"))
	_, err := Generate(ast.File(fn), true, 2)
	require.Error(t, err)

	var syntaxErr *UnsupportedSyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, ast.KindClassDeclaration, syntaxErr.Kind)
}
