// Package commands wires the CLI: extract captures into artifacts, push a
// snapshot to the remote backend, or serve the pipeline over HTTP.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starascendin/lifeos-finance/internal/buildinfo"
	"github.com/starascendin/lifeos-finance/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "lifeos-finance",
		Short:   "Reconstruct a ledger from captured dashboard text",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// loadConfig reads the config file when given, otherwise defaults plus
// environment fallbacks.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
