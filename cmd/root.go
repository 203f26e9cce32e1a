package cmd

import (
	"fmt"
	"os"

	"github.com/mediacuts/cli/pkg"
	"github.com/spf13/cobra"
)

var ctrl *pkg.ClICtrl

// AssignedVersion is set at build time via -ldflags.
var AssignedVersion = "0.0.0-dev"

var rootCmd = &cobra.Command{
	Use:   "mediacuts",
	Short: "CLI client for Media Cuts Studio",
	Long: `Manage your Media Cuts Studio projects from the command line:
upload documents, browse and preview the catalog, and keep a folder
in sync with a project.`,
	SilenceUsage: true,
}

// Execute wires the controller into the command tree and runs it.
func Execute(c *pkg.ClICtrl) {
	ctrl = c
	rootCmd.Version = AssignedVersion
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
