package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/spigell/profile-matcher/internal/store"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the record store schema it migrates to",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (schema %d, %s)\n", app, version, store.SchemaVersion(), runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
