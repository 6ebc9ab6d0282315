package crystal

import (
	"github.com/teranos/tscr/ast"
)

// asyncBlock opens the block that runs an async function body.
const asyncBlock = "async! do"

// collectAsync returns the names of every async function declared in the unit.
// It runs before rendering so calls may precede the declaration they target.
func collectAsync(root *ast.Node) map[string]bool {
	set := make(map[string]bool)
	ast.Walk(root, func(n *ast.Node) bool {
		if n.Is(ast.KindFunctionDeclaration) && n.Modifiers.Has(ast.ModAsync) && n.Name != "" {
			set[n.Name] = true
		}
		return true
	})
	return set
}

// asyncCallee returns the callee name when call targets a known async function.
func (p *pass) asyncCallee(call *ast.Node) (string, bool) {
	if !call.Is(ast.KindCallExpression) {
		return "", false
	}
	callee := call.Child(0)
	if !callee.Is(ast.KindIdentifier) || !p.asyncSet[callee.Text] {
		return "", false
	}
	return callee.Text, true
}

// awaitCall renders `await name` or `await name(args)`.
func (p *pass) awaitCall(call *ast.Node, depth int) (string, error) {
	callee, err := p.callee(call.Child(0), depth)
	if err != nil {
		return "", err
	}
	args, err := p.arguments(call.Children[1:], depth)
	if err != nil {
		return "", err
	}
	if args == "" {
		return "await " + callee, nil
	}
	return "await " + callee + "(" + args + ")", nil
}

func (p *pass) await(n *ast.Node, depth int) (string, error) {
	target := n.Child(0)
	if target == nil {
		return "", missing(n, "operand")
	}
	if target.Is(ast.KindCallExpression) {
		return p.awaitCall(target, depth)
	}
	s, err := p.expr(target, depth)
	if err != nil {
		return "", err
	}
	return "await " + s, nil
}
