package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mediacuts/cli/pkg/filetype"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with file counts and sizes",
	Run: func(cmd *cobra.Command, args []string) {
		if brief, _ := cmd.Flags().GetBool("brief"); brief {
			refs, err := ctrl.ProjectRefs(cmd.Context())
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			for _, ref := range refs {
				fmt.Printf("%s (%d files)\n", ref.Name, ref.FileCount)
			}
			return
		}
		projects, err := ctrl.ListProjects(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if len(projects) == 0 {
			fmt.Println("No projects")
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tKIND\tFILES\tSIZE\tLAST MODIFIED")
		for _, p := range projects {
			modified := "-"
			if !p.LastModified.IsZero() {
				modified = p.LastModified.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				p.Key, p.Name, p.Kind, p.FileCount, filetype.FormatBytes(p.TotalSize), modified)
		}
		w.Flush()
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind, _ := cmd.Flags().GetString("kind")
		key, err := ctrl.CreateProject(cmd.Context(), args[0], kind)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created project %s (key: %s)\n", args[0], key)
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a project and everything in it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Delete project '%s' and all its documents?", args[0])) {
			fmt.Println("Aborted")
			return
		}
		if err := ctrl.DeleteProject(cmd.Context(), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted project %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)

	projectsListCmd.Flags().Bool("brief", false, "Names and counts only (compact listing)")
	projectsCreateCmd.Flags().String("kind", "files", "Project kind (files, video, document)")
	projectsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
