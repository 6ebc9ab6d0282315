// Package crystal renders a TypeScript syntax tree as Crystal source.
package crystal

import (
	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/errors"
)

// Header lines emitted in unit mode, before a blank line and the statements.
const (
	HeaderComment = "# Code generated by tscr from TypeScript source. DO NOT EDIT."
	RuntimeImport = `require "tscr/runtime"`
)

// DefaultIndentWidth is the number of spaces per nesting level.
const DefaultIndentWidth = 2

// Options configures a Generator.
type Options struct {
	// Fragment emits only the rendered statements, with no header and no trailing newline
	Fragment bool

	// IndentWidth is the number of spaces per nesting level (>= 1)
	IndentWidth int

	// Source names the input file in error messages
	Source string
}

// Generator renders trees with fixed options. It holds no per-render state and
// is safe for concurrent use.
type Generator struct {
	opts Options
}

// NewGenerator creates a Crystal generator. A zero IndentWidth selects the default.
func NewGenerator(opts Options) *Generator {
	if opts.IndentWidth == 0 {
		opts.IndentWidth = DefaultIndentWidth
	}
	return &Generator{opts: opts}
}

// Language returns the target language name
func (g *Generator) Language() string {
	return "crystal"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return "cr"
}

// Generate renders root with the generator's options.
func (g *Generator) Generate(root *ast.Node) (string, error) {
	out, err := Generate(root, g.opts.Fragment, g.opts.IndentWidth)
	if err != nil && g.opts.Source != "" {
		return "", errors.Wrapf(err, "%s", g.opts.Source)
	}
	return out, err
}

// Generate renders a SourceFile tree as Crystal. On error no output is returned.
func Generate(root *ast.Node, fragment bool, indentWidth int) (string, error) {
	if root == nil {
		return "", errors.NewInvalidTreeError("tree is nil")
	}
	if !root.Is(ast.KindSourceFile) {
		return "", errors.NewInvalidTreeError("root is %s, want SourceFile", root.Kind)
	}
	if indentWidth < 1 {
		return "", errors.NewInvalidTreeError("indent width %d is less than 1", indentWidth)
	}

	p := newPass(root, indentWidth)
	if !fragment {
		p.out.WriteLine(HeaderComment)
		p.out.WriteLine(RuntimeImport)
		p.out.Blank()
	}
	if err := p.statements(root.Children); err != nil {
		return "", err
	}

	if fragment {
		return p.out.String(), nil
	}
	return p.out.String() + "\n", nil
}
