package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/tscr/ast"
	"github.com/teranos/tscr/config"
	"github.com/teranos/tscr/crystal"
	"github.com/teranos/tscr/errors"
	"github.com/teranos/tscr/logger"
	"github.com/teranos/tscr/tsparse"
)

const stdinName = "<stdin>"

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := generateOptions(cmd, cfg)
	src, name, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	out, err := translate(cmd.Context(), src, name, opts)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" && len(args) == 1 {
		output = outputPath(args[0], cfg)
	}
	if output == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), ensureNewline(out))
		return err
	}
	return writeOutput(output, out)
}

// generateOptions merges command flags over the loaded configuration.
func generateOptions(cmd *cobra.Command, c *config.Config) crystal.Options {
	opts := crystal.Options{
		Fragment:    c.Generate.Fragment,
		IndentWidth: c.Generate.IndentWidth,
	}
	if f := cmd.Flags().Lookup("fragment"); f != nil && f.Changed {
		opts.Fragment, _ = cmd.Flags().GetBool("fragment")
	}
	if f := cmd.Flags().Lookup("indent"); f != nil && f.Changed {
		opts.IndentWidth, _ = cmd.Flags().GetInt("indent")
	}
	return opts
}

// readSource reads the file argument, or stdin when there is none.
func readSource(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to read stdin")
		}
		return src, stdinName, nil
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to read %s", args[0])
	}
	return src, args[0], nil
}

// parse runs the TypeScript front end on src.
func parse(ctx context.Context, src []byte, name string) (*ast.Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return tsparse.New().Parse(ctx, src, name)
}

// translate parses src and renders it as Crystal.
func translate(ctx context.Context, src []byte, name string, opts crystal.Options) (string, error) {
	start := time.Now()

	root, err := parse(ctx, src, name)
	if err != nil {
		return "", err
	}

	opts.Source = name
	out, err := crystal.NewGenerator(opts).Generate(root)
	if err != nil {
		return "", err
	}

	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		logger.Infow("generated",
			logger.FieldFile, name,
			logger.FieldBytes, len(out),
			logger.FieldFragment, opts.Fragment,
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}
	return out, nil
}

// outputPath derives the output file for src from output.dir, or "" when
// output.dir is unset.
func outputPath(src string, c *config.Config) string {
	if c.Output.Dir == "" {
		return ""
	}
	return filepath.Join(c.Output.Dir, replaceExt(filepath.Base(src), c.Generate.Extension))
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + ext
}

func writeOutput(path, out string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(ensureNewline(out)), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	logger.Infow("wrote output", logger.FieldOutput, path, logger.FieldBytes, len(out))
	return nil
}

// ensureNewline terminates fragment output for files and terminals.
func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
