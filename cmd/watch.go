package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mediacuts/cli/pkg/model"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Watch a folder and automatically upload new files",
	Long: `Watch a folder and upload every new or changed file to one project.

Features:
  - Recursive watching (subdirectories are picked up automatically)
  - Duplicate detection (files are not re-uploaded)
  - Debouncing (waits for file writes to complete)
  - State persistence (recovers on restart)
  - Graceful shutdown (Ctrl+C)

Examples:
  mediacuts watch ~/Recordings --project=raw-footage
  mediacuts watch ~/Exports --project=deliverables --initial-scan
  mediacuts watch ~/Drop --project=inbox --debounce=3000`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("project", "p", "", "Destination project key (defaults to the last watched one)")
	watchCmd.Flags().String("project-name", "", "Destination project display name (defaults to the key)")
	watchCmd.Flags().Int("debounce", 5000, "File write debounce in milliseconds")
	watchCmd.Flags().Bool("initial-scan", false, "Process existing files on startup")
}

func runWatch(cmd *cobra.Command, args []string) {
	projectKey, _ := cmd.Flags().GetString("project")
	projectName, _ := cmd.Flags().GetString("project-name")
	debounceMs, _ := cmd.Flags().GetInt("debounce")
	initialScan, _ := cmd.Flags().GetBool("initial-scan")
	if projectName == "" {
		projectName = projectKey
	}

	watchPath := args[0]
	absPath, err := filepath.Abs(watchPath)
	if err != nil {
		fmt.Printf("Error: invalid path '%s': %v\n", watchPath, err)
		os.Exit(1)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		fmt.Printf("Error: path '%s' does not exist: %v\n", absPath, err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Printf("Error: path '%s' is not a directory\n", absPath)
		os.Exit(1)
	}

	state := &model.WatchState{
		WatchPath:     absPath,
		ProjectKey:    projectKey,
		ProjectName:   projectName,
		DebounceMs:    debounceMs,
		StartedAt:     time.Now().Unix(),
		LastProcessed: time.Now().Unix(),
	}

	_, w, err := ctrl.NewWatcher(cmd.Context(), state, colorNotifier{})
	if err != nil {
		fmt.Printf("Error: failed to create watcher: %v\n", err)
		os.Exit(1)
	}

	if initialScan {
		if err := w.PerformInitialScan(); err != nil {
			fmt.Printf("Error: initial scan failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := w.Start(); err != nil {
		fmt.Printf("Error: failed to start watcher: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := w.Shutdown(); err != nil {
		fmt.Printf("Warning: shutdown error: %v\n", err)
	}
	fmt.Println("Watch stopped")
}
