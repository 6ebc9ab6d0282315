package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/tscr/config"
	"github.com/teranos/tscr/errors"
)

// ConfigCmd groups configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tscr.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a tscr.toml with default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		path := filepath.Join(dir, config.ProjectConfigName)
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to render configuration")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", configSource())
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing tscr.toml")
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

