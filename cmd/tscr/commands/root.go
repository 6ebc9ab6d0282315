package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/tscr/config"
	"github.com/teranos/tscr/errors"
	"github.com/teranos/tscr/logger"
)

var (
	configPath string
	verbosity  int

	// cfg is loaded once per invocation in PersistentPreRunE.
	cfg *config.Config
)

// RootCmd translates one TypeScript file to Crystal.
var RootCmd = &cobra.Command{
	Use:   "tscr [file.ts]",
	Short: "Translate TypeScript to Crystal",
	Long: `tscr translates a TypeScript source file into Crystal source.

The input is read from the file argument, or from stdin when it is omitted.
Output goes to stdout unless --output or output.dir in tscr.toml is set.

Settings are read from ~/.config/tscr/tscr.toml, the nearest tscr.toml above
the working directory and TSCR_* environment variables, in increasing
precedence. Flags override all of them.

Examples:
  tscr main.ts                 # Print Crystal to stdout
  tscr main.ts -o main.cr      # Write to a file
  echo '69.420;' | tscr -f     # Fragment: no header
  tscr tree main.ts --json     # Dump the parsed tree
  tscr check main.ts main.cr   # Fail if main.cr is stale
  tscr watch main.ts           # Regenerate on every save`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: nearest tscr.toml)")
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().Bool("json", false, "Machine-readable output and JSON logs")

	RootCmd.Flags().BoolP("fragment", "f", false, "Emit only the statements, without the generated-file header")
	RootCmd.Flags().IntP("indent", "i", 0, "Spaces per nesting level (default from config: 2)")
	RootCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	RootCmd.AddCommand(TreeCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(VersionCmd)
}

// setup loads configuration and initializes the global logger before any
// command runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	cfg = loaded

	jsonLogs, _ := cmd.Root().PersistentFlags().GetBool("json")
	if err := logger.InitializeWithVerbosity(jsonLogs || cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	if cfg.Log.Theme != "" {
		logger.SetTheme(cfg.Log.Theme)
	}

	if logger.ShouldOutput(verbosity, logger.OutputConfig) {
		logger.Debugw("configuration loaded",
			logger.FieldIndentWidth, cfg.Generate.IndentWidth,
			logger.FieldFragment, cfg.Generate.Fragment,
			"config", configSource())
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func configSource() string {
	if configPath != "" {
		return configPath
	}
	if path := config.ProjectConfigPath(); path != "" {
		return path
	}
	return "defaults"
}
