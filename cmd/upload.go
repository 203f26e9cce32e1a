package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediacuts/cli/pkg/model"
	"github.com/mediacuts/cli/pkg/queue"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload documents to a project",
	Long: `Upload one or more files to a project. Files already uploaded once are
skipped unless --force is given.

Examples:
  mediacuts upload report.pdf --project=quarterly
  mediacuts upload *.mp4 --project=promo-clips
  mediacuts upload docs/ -r --project=archive --force`,
	Args: cobra.MinimumNArgs(1),
	Run:  runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringP("project", "p", "", "Destination project key (defaults to the last one used)")
	uploadCmd.Flags().String("project-name", "", "Destination project display name (defaults to the key)")
	uploadCmd.Flags().BoolP("recursive", "r", false, "Recursively upload directories")
	uploadCmd.Flags().Bool("force", false, "Upload even if a duplicate was already sent")
}

func runUpload(cmd *cobra.Command, args []string) {
	projectKey, _ := cmd.Flags().GetString("project")
	projectName, _ := cmd.Flags().GetString("project-name")
	recursive, _ := cmd.Flags().GetBool("recursive")
	force, _ := cmd.Flags().GetBool("force")

	files, err := discoverFiles(args, recursive)
	if err != nil {
		fmt.Printf("Error discovering files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("No files found to upload")
		os.Exit(1)
	}
	fmt.Printf("Found %d file(s) to upload\n", len(files))

	config := model.UploadConfig{
		ProjectKey:  projectKey,
		ProjectName: projectName,
		Force:       force,
	}

	summary, err := ctrl.Upload(cmd.Context(), files, config, colorNotifier{})
	if err != nil {
		fmt.Printf("Upload failed: %v\n", err)
		os.Exit(1)
	}

	if summary.FailedFiles > 0 {
		printUploadErrors(summary)
		os.Exit(1)
	}
}

// discoverFiles expands glob patterns and directories into a flat file list.
func discoverFiles(paths []string, recursive bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, path := range paths {
		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern '%s': %w", path, err)
		}
		if len(matches) == 0 {
			matches = []string{path}
		}
		for _, match := range matches {
			if err := collectFiles(match, recursive, &files, seen); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

func collectFiles(path string, recursive bool, files *[]string, seen map[string]bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path '%s': %w", path, err)
	}
	if seen[absPath] {
		return nil
	}
	seen[absPath] = true

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("failed to stat '%s': %w", path, err)
	}

	if !info.IsDir() {
		*files = append(*files, absPath)
		return nil
	}
	if !recursive {
		return fmt.Errorf("'%s' is a directory (use -r for recursive upload)", path)
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return fmt.Errorf("failed to read directory '%s': %w", path, err)
	}
	for _, entry := range entries {
		entryPath := filepath.Join(absPath, entry.Name())
		if err := collectFiles(entryPath, recursive, files, seen); err != nil {
			// Skip entries we can't access
			continue
		}
	}
	return nil
}

func printUploadErrors(summary queue.Summary) {
	if len(summary.Errors) == 0 {
		return
	}
	fmt.Println("\nErrors:")
	for _, uploadErr := range summary.Errors {
		fmt.Printf("  - %s: %s\n", uploadErr.FileName, uploadErr.Message)
	}
}
