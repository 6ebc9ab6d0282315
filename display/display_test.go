package display

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/crystal"
	"github.com/teranos/tscr/errors"
)

func TestClassify(t *testing.T) {
	unsupported := &crystal.UnsupportedSyntaxError{
		Kind: ast.KindBinaryExpression, Pos: ast.Pos{Line: 3, Column: 7}, Detail: "operator instanceof",
	}

	tests := []struct {
		name string
		err  error
		kind ErrorKind
		pos  string
	}{
		{"unsupported", errors.Wrap(unsupported, "main.ts"), ErrorKindUnsupported, "3:7"},
		{"type mapping", &crystal.TypeMappingError{Pos: ast.Pos{Line: 1, Column: 2}, Annotation: "() => void"}, ErrorKindTypeMapping, "1:2"},
		{"parse", errors.NewParseError("bad"), ErrorKindParse, ""},
		{"invalid tree", errors.NewInvalidTreeError("nil tree"), ErrorKindInvalidTree, ""},
		{"other", errors.New("disk full"), ErrorKindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Classify(tt.err)
			assert.Equal(t, tt.kind, report.Kind)
			assert.Equal(t, tt.pos, report.Position)
			assert.Equal(t, tt.err.Error(), report.Message)
		})
	}
}

func TestFormatError(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	err := errors.WithHint(&crystal.UnsupportedSyntaxError{
		Kind: ast.KindObjectLiteral, Pos: ast.Pos{Line: 2, Column: 1}, Detail: "empty object literal",
	}, "declare the value with a type")

	out := FormatError(err)
	assert.Contains(t, out, "Node: ObjectLiteral")
	assert.Contains(t, out, "Position: 2:1")
	assert.Contains(t, out, "Hints:")
	assert.Contains(t, out, "- declare the value with a type")
}

func TestShouldOutputJSON(t *testing.T) {
	root := &cobra.Command{Use: "tscr"}
	root.PersistentFlags().Bool("json", false, "")
	sub := &cobra.Command{Use: "tree"}
	sub.Flags().Bool("json", false, "")
	root.AddCommand(sub)

	t.Setenv("TSCR_OUTPUT", "")
	assert.False(t, ShouldOutputJSON(sub))

	require.NoError(t, sub.Flags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(sub))

	t.Setenv("TSCR_OUTPUT", "json")
	assert.True(t, ShouldOutputJSON(nil))
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
