// Package display renders CLI results and errors for terminals and scripts.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/tscr/errors"
)

// ShouldOutputJSON reports whether a command should print JSON: an explicit
// --json flag wins, then the root --json flag, then TSCR_OUTPUT=json.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return jsonFromEnv()
	}

	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	if globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json"); globalFlag {
		return true
	}

	return jsonFromEnv()
}

func jsonFromEnv() bool {
	return os.Getenv("TSCR_OUTPUT") == "json"
}

// OutputJSON marshals v with MarshalJSON and prints it to w.
func OutputJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
