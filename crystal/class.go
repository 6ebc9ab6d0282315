package crystal

import (
	"strings"

	"github.com/teranos/tscr/ast"
)

// PropertyDescriptor is a constructor parameter promoted to a public
// instance field.
type PropertyDescriptor struct {
	Name string
	Type string
}

// promote scans constructor parameters for `public readonly` properties.
// The returned descriptors keep declaration order.
func promote(ctor *ast.Node) ([]PropertyDescriptor, error) {
	if ctor == nil {
		return nil, nil
	}
	var props []PropertyDescriptor
	for _, param := range ctor.Params {
		if param == nil || !isParameterProperty(param) {
			continue
		}
		if !param.Modifiers.Has(ast.ModPublic|ast.ModReadonly) || param.Modifiers.Accessibility() != ast.ModPublic {
			return nil, unsupported(param, "parameter property %q", accessModifiers(param))
		}
		if param.Modifiers.Has(ast.ModRest) || param.Modifiers.Has(ast.ModOptional) || len(param.Children) > 0 {
			return nil, unsupported(param, "promoted parameter %q with a default", param.Name)
		}
		if param.Name == "" {
			return nil, missing(param, "name")
		}
		if param.Type == nil {
			return nil, unsupported(param, "promoted parameter %q needs a type annotation", param.Name)
		}
		typ, err := mapTypeAt(param.Type, param.Pos)
		if err != nil {
			return nil, err
		}
		props = append(props, PropertyDescriptor{Name: param.Name, Type: typ})
	}
	return props, nil
}

func isParameterProperty(param *ast.Node) bool {
	return param.Modifiers.Accessibility() != 0 || param.Modifiers.Has(ast.ModReadonly)
}

func accessModifiers(param *ast.Node) string {
	return (param.Modifiers & (ast.ModPublic | ast.ModPrivate | ast.ModProtected | ast.ModReadonly)).String()
}

func (p *pass) class(n *ast.Node) error {
	if p.nesting > 0 {
		return unsupported(n, "nested class declaration")
	}
	if n.Name == "" {
		return missing(n, "name")
	}

	header := "private class " + n.Name
	if n.Modifiers.Has(ast.ModExport) {
		header = "class " + n.Name
	}
	if len(n.TypeParams) > 0 {
		header += "(" + strings.Join(n.TypeParams, ", ") + ")"
	}
	if n.Type != nil {
		base, err := mapTypeAt(n.Type, n.Pos)
		if err != nil {
			return err
		}
		header += " < " + base
	}

	var fields, methods []*ast.Node
	var ctor *ast.Node
	for _, m := range n.Children {
		switch {
		case m.Is(ast.KindPropertyDeclaration):
			fields = append(fields, m)
		case m.Is(ast.KindConstructor):
			if ctor != nil {
				return unsupported(m, "constructor overloads")
			}
			ctor = m
		case m.Is(ast.KindMethodDeclaration):
			methods = append(methods, m)
		case m == nil:
			return missing(n, "member")
		default:
			return unsupported(m, "class member")
		}
	}

	props, err := promote(ctor)
	if err != nil {
		return err
	}

	p.out.OpenBlock(header)
	for _, f := range fields {
		if err := p.field(f); err != nil {
			return err
		}
	}
	if ctor != nil {
		if err := p.initialize(ctor); err != nil {
			return err
		}
	}
	for _, m := range methods {
		if err := p.method(m); err != nil {
			return err
		}
	}
	for _, prop := range props {
		p.out.WriteLine(propertyDeclaration(prop))
	}
	p.out.CloseBlock()
	return nil
}

func propertyDeclaration(prop PropertyDescriptor) string {
	return "property " + prop.Name + " : " + prop.Type
}

// field renders a class field declaration.
func (p *pass) field(n *ast.Node) error {
	if n.Name == "" {
		return missing(n, "name")
	}

	var line string
	switch {
	case n.Modifiers.Has(ast.ModStatic):
		line = "@@" + n.Name
	case n.Modifiers.Has(ast.ModPrivate), n.Modifiers.Has(ast.ModProtected):
		line = "@" + n.Name
	case n.Modifiers.Has(ast.ModReadonly):
		line = "getter " + n.Name
	default:
		line = "property " + n.Name
	}

	init := n.Child(0)
	if n.Type == nil && init == nil {
		return unsupported(n, "field %q needs a type annotation or an initializer", n.Name)
	}
	if n.Type != nil {
		typ, err := mapTypeAt(n.Type, n.Pos)
		if err != nil {
			return err
		}
		line += " : " + typ
	}
	if init != nil {
		value, err := p.initializer(init, n.Type, p.out.Depth())
		if err != nil {
			return err
		}
		line += " = " + value
	}
	p.out.WriteLine(line)
	return nil
}

func (p *pass) initialize(ctor *ast.Node) error {
	if ctor.Modifiers.Has(ast.ModAsync) {
		return unsupported(ctor, "async constructor")
	}

	header := "def initialize"
	if len(ctor.Params) > 0 {
		params := make([]string, len(ctor.Params))
		for i, param := range ctor.Params {
			if param == nil {
				return missing(ctor, "parameter")
			}
			var (
				s   string
				err error
			)
			if isParameterProperty(param) {
				// promote already validated the modifiers and the type
				s, err = p.typedParam("@"+param.Name, param)
			} else {
				s, err = p.param(param)
			}
			if err != nil {
				return err
			}
			params[i] = s
		}
		header += "(" + strings.Join(params, ", ") + ")"
	}

	p.out.OpenBlock(header)
	if err := p.body(ctor.Children, false); err != nil {
		return err
	}
	p.out.CloseBlock()
	return nil
}

func (p *pass) method(n *ast.Node) error {
	if n.Name == "" {
		return missing(n, "name")
	}
	name := n.Name
	if n.Modifiers.Has(ast.ModStatic) {
		name = "self." + name
	}
	sig, err := p.signature(name, n)
	if err != nil {
		return err
	}
	switch n.Modifiers.Accessibility() {
	case ast.ModPrivate:
		sig = "private " + sig
	case ast.ModProtected:
		sig = "protected " + sig
	}

	p.out.OpenBlock(sig)
	if err := p.body(n.Children, n.Modifiers.Has(ast.ModAsync)); err != nil {
		return err
	}
	p.out.CloseBlock()
	return nil
}
