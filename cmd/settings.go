package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mediacuts/cli/internal/api"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change account settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the account settings",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := ctrl.Settings(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(settings) == 0 {
			fmt.Println("No settings stored")
			return
		}
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s = %v\n", k, settings[k])
		}
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key>=<value> [key=value...]",
	Short: "Set one or more settings",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		values := api.Settings{}
		for _, arg := range args {
			key, value, found := strings.Cut(arg, "=")
			if !found || key == "" {
				fmt.Printf("Invalid setting '%s', expected key=value\n", arg)
				os.Exit(1)
			}
			values[key] = value
		}
		if err := ctrl.SaveSettings(cmd.Context(), values); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %d setting(s)\n", len(values))
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
