package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/tscr/display"
	"github.com/teranos/tscr/errors"
	"github.com/teranos/tscr/gencheck"
)

// CheckCmd fails when a generated Crystal file is out of date.
var CheckCmd = &cobra.Command{
	Use:   "check <file.ts> [file.cr]",
	Short: "Check that a generated Crystal file is up to date",
	Long: `Regenerate a TypeScript file and compare the result with an existing
Crystal file, ignoring the generated-file header comment.

When the Crystal file is omitted it is derived from output.dir and
generate.extension in tscr.toml, or placed next to the source.

Exit codes:
  0 - up to date
  1 - out of date or error

Examples:
  tscr check main.ts main.cr
  tscr check main.ts --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().IntP("indent", "i", 0, "Spaces per nesting level (default from config: 2)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := generateOptions(cmd, cfg)
	src, name, err := readSource(cmd, args[:1])
	if err != nil {
		return err
	}
	generated, err := translate(cmd.Context(), src, name, opts)
	if err != nil {
		return err
	}

	target := checkTarget(args)
	result, err := gencheck.CompareFile(generated, target)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else if result.UpToDate {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is up to date\n", target)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "✗ %s is out of date (line %d)\n", target, result.FirstDiff)
		fmt.Fprintf(cmd.OutOrStdout(), "  want: %s\n  got:  %s\n", result.Want, result.Got)
	}

	if !result.UpToDate {
		return errors.WithHint(
			errors.Newf("%s is out of date", target),
			fmt.Sprintf("run 'tscr %s -o %s' to regenerate it", args[0], target),
		)
	}
	return nil
}

func checkTarget(args []string) string {
	if len(args) == 2 {
		return args[1]
	}
	if path := outputPath(args[0], cfg); path != "" {
		return path
	}
	return replaceExt(args[0], cfg.Generate.Extension)
}
