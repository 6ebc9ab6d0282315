package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/display"
)

// TreeCmd dumps the syntax tree the generator receives.
var TreeCmd = &cobra.Command{
	Use:   "tree [file.ts]",
	Short: "Print the parsed syntax tree as YAML or JSON",
	Long: `Parse a TypeScript file and print the tree handed to the Crystal generator.

Nodes without a rendering rule appear with kind Unknown and the raw
tree-sitter node type as their text.

Examples:
  tscr tree main.ts            # YAML
  tscr tree main.ts --json     # JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}


func runTree(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	root, err := parse(cmd.Context(), src, name)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), root)
	}

	data, err := ast.EncodeYAML(root)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
