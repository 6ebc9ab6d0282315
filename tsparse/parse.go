// Package tsparse builds the syntax tree consumed by the Crystal generator
// from TypeScript source, using the tree-sitter TypeScript grammar.
package tsparse

import (
	"context"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"go.uber.org/zap"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/errors"
	"github.com/teranos/tscr/logger"
)

// Parser converts TypeScript source into an ast.Node tree.
type Parser struct {
	logger *zap.SugaredLogger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used to report syntax the tree cannot represent.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: logger.ComponentLogger("tsparse")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is New().Parse.
func Parse(ctx context.Context, src []byte, filename string) (*ast.Node, error) {
	return New().Parse(ctx, src, filename)
}

// Parse converts src to a SourceFile tree. Syntax errors yield an error
// matching errors.ErrParse; constructs without an ast.Kind become KindUnknown
// nodes that carry the raw tree-sitter node type in Text.
func (p *Parser) Parse(ctx context.Context, src []byte, filename string) (*ast.Node, error) {
	start := time.Now()

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to parse %s", filename), errors.ErrParse)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstError(root)
		pos := position(bad)
		return nil, errors.WithHint(
			errors.NewParseError("%s:%s: syntax error near %q", filename, pos, snippet(bad, src)),
			"tscr only accepts TypeScript that compiles; fix the syntax error first",
		)
	}

	c := &converter{src: src, filename: filename, logger: p.logger}
	file := c.program(root)
	if c.err != nil {
		return nil, c.err
	}

	p.logger.Debugw("parsed source",
		logger.FieldFile, filename,
		logger.FieldBytes, len(src),
		logger.FieldNodeCount, countNodes(file),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return file, nil
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return n
}

func snippet(n *sitter.Node, src []byte) string {
	const max = 24
	text := n.Content(src)
	if len(text) > max {
		text = text[:max] + "..."
	}
	if text == "" {
		text = n.Type()
	}
	return text
}

func position(n *sitter.Node) ast.Pos {
	pt := n.StartPoint()
	return ast.Pos{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
}

func countNodes(root *ast.Node) int {
	count := 0
	ast.Walk(root, func(*ast.Node) bool {
		count++
		return true
	})
	return count
}
