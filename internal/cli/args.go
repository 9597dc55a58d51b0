package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireFiles validates that at least one file or glob argument is provided.
// Returns a helpful error message with usage and examples if missing.
func RequireFiles(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`requires at least 1 arg: <file|glob>

Usage: %s

Example:
  %s 'docs/**/*.puml'`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
