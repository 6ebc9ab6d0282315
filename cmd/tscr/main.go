package main

import (
	"fmt"
	"os"

	"github.com/teranos/tscr/cmd/tscr/commands"
	"github.com/teranos/tscr/display"
	"github.com/teranos/tscr/logger"
)

func main() {
	defer logger.Cleanup()

	if err := commands.RootCmd.Execute(); err != nil {
		if display.ShouldOutputJSON(nil) {
			_ = display.OutputJSON(os.Stderr, display.Classify(err))
		} else {
			fmt.Fprintln(os.Stderr, display.FormatError(err))
		}
		os.Exit(1)
	}
}
