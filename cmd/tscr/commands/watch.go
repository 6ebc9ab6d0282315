package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/tscr/logger"
	"github.com/teranos/tscr/watch"
)

// WatchCmd regenerates a Crystal file on every change to its source.
var WatchCmd = &cobra.Command{
	Use:   "watch <file.ts>",
	Short: "Regenerate Crystal output whenever the source changes",
	Long: `Watch a TypeScript file and rewrite its Crystal output after each save.
Rebuilds are debounced by watch.debounce_ms from tscr.toml (default 300).
Translation errors are logged and watching continues.

Examples:
  tscr watch main.ts -o main.cr
  tscr watch main.ts -v        # log every rebuild`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().StringP("output", "o", "", "Output file (default: derived from the source name)")
	WatchCmd.Flags().BoolP("fragment", "f", false, "Emit only the statements, without the generated-file header")
	WatchCmd.Flags().IntP("indent", "i", 0, "Spaces per nesting level (default from config: 2)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	source := args[0]
	opts := generateOptions(cmd, cfg)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = checkTarget(args[:1])
	}

	var w *watch.SourceWatcher
	rebuild := func(path string) error {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, err := translate(context.Background(), src, source, opts)
		if err != nil {
			return err
		}
		if w != nil {
			w.MarkOwnWrite(output)
		}
		return writeOutput(output, out)
	}

	// Build once up front so the output exists before the first save.
	if err := rebuild(source); err != nil {
		logger.Errorw("initial build failed", logger.FieldFile, source, logger.FieldError, err)
	}

	w, err := watch.New(source, rebuild,
		watch.WithDebounce(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
