package crystal

import (
	"strings"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/errors"
)

// pass is the state of one render: the output buffer, the async set collected
// up front, and how many declaration bodies enclose the current statement.
type pass struct {
	out      *Emitter
	asyncSet map[string]bool
	nesting  int
}

func newPass(root *ast.Node, indentWidth int) *pass {
	return &pass{
		out:      NewEmitter(indentWidth),
		asyncSet: collectAsync(root),
	}
}

// statements renders a statement sequence at the current depth.
func (p *pass) statements(stmts []*ast.Node) error {
	for _, s := range stmts {
		if err := p.statement(s); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) statement(n *ast.Node) error {
	if n == nil {
		return errors.NewInvalidTreeError("missing statement")
	}

	switch n.Kind {
	case ast.KindExpressionStatement:
		return p.expressionStatement(n)
	case ast.KindVariableStatement:
		return p.variable(n)
	case ast.KindFunctionDeclaration:
		return p.function(n)
	case ast.KindClassDeclaration:
		return p.class(n)
	case ast.KindReturnStatement:
		if len(n.Children) == 0 {
			p.out.WriteLine("return")
			return nil
		}
		value, err := p.expr(n.Children[0], p.out.Depth())
		if err != nil {
			return err
		}
		p.out.WriteLine("return " + value)
		return nil
	case ast.KindThrowStatement:
		value, err := p.expr(n.Child(0), p.out.Depth())
		if err != nil {
			return err
		}
		p.out.WriteLine("raise " + value)
		return nil
	case ast.KindIfStatement:
		return p.ifStatement(n)
	case ast.KindWhileStatement:
		return p.whileStatement(n)
	case ast.KindBlock:
		p.out.OpenBlock("begin")
		if err := p.statements(n.Children); err != nil {
			return err
		}
		p.out.CloseBlock()
		return nil

	case ast.KindSourceFile:
		return unsupported(n, "nested source file")
	case ast.KindConstructor, ast.KindMethodDeclaration, ast.KindPropertyDeclaration:
		return unsupported(n, "class member outside a class")
	case ast.KindParameter:
		return unsupported(n, "parameter outside a signature")
	case ast.KindPropertyAssignment, ast.KindShorthandPropertyAssignment:
		return unsupported(n, "object member outside an object literal")
	case ast.KindNumericLiteral, ast.KindStringLiteral, ast.KindIdentifier,
		ast.KindTrueKeyword, ast.KindFalseKeyword, ast.KindNullKeyword,
		ast.KindUndefinedKeyword, ast.KindThisKeyword, ast.KindSuperKeyword,
		ast.KindArrayLiteral, ast.KindObjectLiteral, ast.KindCallExpression,
		ast.KindNewExpression, ast.KindPropertyAccessExpression,
		ast.KindBinaryExpression, ast.KindPrefixUnaryExpression,
		ast.KindParenthesizedExpression, ast.KindSpreadElement,
		ast.KindAwaitExpression:
		return unsupported(n, "expression without an enclosing statement")
	default:
		if n.Text != "" {
			return unsupported(n, "%s", n.Text)
		}
		return unsupported(n, "no rendering rule")
	}
}

func (p *pass) expressionStatement(n *ast.Node) error {
	x := n.Child(0)
	if x == nil {
		return missing(n, "expression")
	}
	if _, ok := p.asyncCallee(x); ok {
		s, err := p.awaitCall(x, p.out.Depth())
		if err != nil {
			return err
		}
		p.out.WriteLine(s)
		return nil
	}
	s, err := p.expr(x, p.out.Depth())
	if err != nil {
		return err
	}
	p.out.WriteLine(s)
	return nil
}

func (p *pass) variable(n *ast.Node) error {
	if n.Name == "" {
		return missing(n, "name")
	}
	line := n.Name
	if n.Type != nil {
		typ, err := mapTypeAt(n.Type, n.Pos)
		if err != nil {
			return err
		}
		line += " : " + typ
	}

	switch init := n.Child(0); {
	case init != nil:
		value, err := p.initializer(init, n.Type, p.out.Depth())
		if err != nil {
			return err
		}
		line += " = " + value
	case n.Type == nil:
		line += " = nil"
	}
	p.out.WriteLine(line)
	return nil
}

// condition renders a test expression without its redundant outer parentheses.
func (p *pass) condition(n *ast.Node, cond *ast.Node) (string, error) {
	if cond == nil {
		return "", missing(n, "condition")
	}
	if cond.Is(ast.KindParenthesizedExpression) && cond.Child(0) != nil {
		cond = cond.Child(0)
	}
	return p.expr(cond, p.out.Depth())
}

// branch renders the statements of a then/else/loop body one level deeper.
func (p *pass) branch(body *ast.Node) error {
	p.out.Push()
	defer p.out.Pop()
	if body.Is(ast.KindBlock) {
		return p.statements(body.Children)
	}
	return p.statement(body)
}

func (p *pass) ifStatement(n *ast.Node) error {
	keyword := "if "
	for {
		cond, err := p.condition(n, n.Child(0))
		if err != nil {
			return err
		}
		then := n.Child(1)
		if then == nil {
			return missing(n, "consequence")
		}
		p.out.WriteLine(keyword + cond)
		if err := p.branch(then); err != nil {
			return err
		}

		alt := n.Child(2)
		if alt == nil {
			break
		}
		if alt.Is(ast.KindIfStatement) {
			keyword = "elsif "
			n = alt
			continue
		}
		p.out.WriteLine("else")
		if err := p.branch(alt); err != nil {
			return err
		}
		break
	}
	p.out.WriteLine("end")
	return nil
}

func (p *pass) whileStatement(n *ast.Node) error {
	cond, err := p.condition(n, n.Child(0))
	if err != nil {
		return err
	}
	body := n.Child(1)
	if body == nil {
		return missing(n, "body")
	}
	p.out.WriteLine("while " + cond)
	if err := p.branch(body); err != nil {
		return err
	}
	p.out.WriteLine("end")
	return nil
}

// body renders a function, method or initializer body. A synthetic return
// closes it unless the last statement already leaves the body.
func (p *pass) body(stmts []*ast.Node, async bool) error {
	p.nesting++
	defer func() { p.nesting-- }()

	if async {
		p.out.OpenBlock(asyncBlock)
	}
	if err := p.statements(stmts); err != nil {
		return err
	}
	if len(stmts) == 0 || stmts[len(stmts)-1] == nil || !stmts[len(stmts)-1].Kind.IsTerminal() {
		p.out.WriteLine("return")
	}
	if async {
		p.out.CloseBlock()
	}
	return nil
}

func (p *pass) function(n *ast.Node) error {
	if p.nesting > 0 {
		return unsupported(n, "nested function declaration")
	}
	if n.Name == "" {
		return missing(n, "name")
	}
	sig, err := p.signature(n.Name, n)
	if err != nil {
		return err
	}
	if !n.Modifiers.Has(ast.ModExport) {
		sig = "private " + sig
	}

	p.out.OpenBlock(sig)
	if err := p.body(n.Children, n.Modifiers.Has(ast.ModAsync)); err != nil {
		return err
	}
	p.out.CloseBlock()
	return nil
}

// signature renders `def name(params) : Ret forall T, U` for a function or method.
func (p *pass) signature(name string, n *ast.Node) (string, error) {
	var b strings.Builder
	b.WriteString("def " + name)

	if len(n.Params) > 0 {
		params := make([]string, len(n.Params))
		for i, param := range n.Params {
			s, err := p.param(param)
			if err != nil {
				return "", err
			}
			params[i] = s
		}
		b.WriteString("(" + strings.Join(params, ", ") + ")")
	}

	if n.Type != nil {
		ret, err := mapTypeAt(n.Type, n.Pos)
		if err != nil {
			return "", err
		}
		b.WriteString(" : " + ret)
	}

	if len(n.TypeParams) > 0 {
		b.WriteString(" forall " + strings.Join(n.TypeParams, ", "))
	}
	return b.String(), nil
}

// param renders one ordinary parameter.
func (p *pass) param(n *ast.Node) (string, error) {
	if n == nil {
		return "", errors.NewInvalidTreeError("missing parameter")
	}
	if !n.Is(ast.KindParameter) {
		return "", unsupported(n, "expected a parameter")
	}
	if n.Name == "" {
		return "", missing(n, "name")
	}
	if n.Modifiers.Accessibility() != 0 || n.Modifiers.Has(ast.ModReadonly) {
		return "", unsupported(n, "parameter property %q outside a constructor", n.Modifiers.String())
	}

	if n.Modifiers.Has(ast.ModRest) {
		s := "*" + n.Name
		if n.Type != nil {
			ref := n.Type
			if elem := elementType(ref); elem != nil {
				ref = elem
			}
			typ, err := mapTypeAt(ref, n.Pos)
			if err != nil {
				return "", err
			}
			s += " : " + typ
		}
		return s, nil
	}

	return p.typedParam(n.Name, n)
}

// typedParam renders `name : T`, `name : T? = nil` or `name : T = default`.
func (p *pass) typedParam(name string, n *ast.Node) (string, error) {
	s := name
	typ := ""
	if n.Type != nil {
		t, err := mapTypeAt(n.Type, n.Pos)
		if err != nil {
			return "", err
		}
		typ = t
	}

	if def := n.Child(0); def != nil {
		value, err := p.initializer(def, n.Type, p.out.Depth())
		if err != nil {
			return "", err
		}
		if typ != "" {
			s += " : " + typ
		}
		return s + " = " + value, nil
	}

	if n.Modifiers.Has(ast.ModOptional) {
		if typ == "" {
			return s + " = nil", nil
		}
		if strings.Contains(typ, " | ") {
			typ = "(" + typ + ")"
		}
		return s + " : " + typ + "? = nil", nil
	}

	if typ != "" {
		s += " : " + typ
	}
	return s, nil
}
