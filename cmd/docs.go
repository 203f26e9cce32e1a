package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mediacuts/cli/pkg/catalog"
	"github.com/mediacuts/cli/pkg/filetype"
	"github.com/mediacuts/cli/pkg/model"
	"github.com/mediacuts/cli/pkg/preview"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse and manage uploaded documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents across all projects, most recent first",
	Long: `List documents across all projects, most recent first.

Examples:
  mediacuts docs list
  mediacuts docs list --search report
  mediacuts docs list --project=quarterly --status=ready`,
	Run: runDocsList,
}

var docsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recently uploaded documents",
	Run:   runDocsRecent,
}

var docsPreviewCmd = &cobra.Command{
	Use:   "preview <document-id>",
	Short: "Preview a document's content",
	Args:  cobra.ExactArgs(1),
	Run:   runDocsPreview,
}

var docsDownloadCmd = &cobra.Command{
	Use:   "download <document-id>",
	Short: "Download a document",
	Args:  cobra.ExactArgs(1),
	Run:   runDocsDownload,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <document-id>",
	Short: "Delete a document from its project",
	Args:  cobra.ExactArgs(1),
	Run:   runDocsDelete,
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsRecentCmd)
	docsCmd.AddCommand(docsPreviewCmd)
	docsCmd.AddCommand(docsDownloadCmd)
	docsCmd.AddCommand(docsDeleteCmd)

	docsListCmd.Flags().StringP("search", "s", "", "Match against document and project names")
	docsListCmd.Flags().StringP("project", "p", "", "Only documents from this project")
	docsListCmd.Flags().String("status", "", "Only documents with this status")

	docsRecentCmd.Flags().IntP("limit", "n", 10, "Number of documents to show")

	docsPreviewCmd.Flags().String("save", "", "Write the previewed content to this path")

	docsDownloadCmd.Flags().StringP("dest", "d", ".", "Destination directory")

	docsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}

func runDocsList(cmd *cobra.Command, args []string) {
	search, _ := cmd.Flags().GetString("search")
	project, _ := cmd.Flags().GetString("project")
	status, _ := cmd.Flags().GetString("status")

	docs, err := ctrl.ListDocuments(cmd.Context(), catalog.Query{
		Search:  search,
		Project: project,
		Status:  model.DocumentStatus(status),
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		fmt.Println("No documents")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPROJECT\tSIZE\tSTATUS\tUPLOADED")
	for _, doc := range docs {
		info := filetype.Classify(doc.Extension)
		uploaded := "-"
		if !doc.UploadedAt.IsZero() {
			uploaded = doc.UploadedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.RemoteID, doc.DisplayName, info.Category, doc.ProjectName,
			filetype.FormatBytes(doc.SizeBytes), doc.Status, uploaded)
	}
	w.Flush()
}

func runDocsRecent(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	docs, err := ctrl.ListDocuments(cmd.Context(), catalog.Query{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	if len(docs) == 0 {
		fmt.Println("No documents")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROJECT\tSIZE\tUPLOADED")
	for _, doc := range docs {
		uploaded := "-"
		if !doc.UploadedAt.IsZero() {
			uploaded = doc.UploadedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			doc.DisplayName, doc.ProjectName, filetype.FormatBytes(doc.SizeBytes), uploaded)
	}
	w.Flush()
}

func runDocsPreview(cmd *cobra.Command, args []string) {
	doc, err := findDocument(cmd, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	state, err := ctrl.Preview(cmd.Context(), doc)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer state.Close()

	savePath, _ := cmd.Flags().GetString("save")
	if savePath != "" {
		if err := state.SaveTo(savePath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved preview to %s\n", savePath)
		return
	}

	switch state.Kind {
	case preview.KindText, preview.KindJSON:
		fmt.Printf("--- %s ---\n", state.Title)
		fmt.Println(state.Text)
	case preview.KindBinary:
		fmt.Printf("Binary preview for %s (use --save to keep a copy)\n", state.Title)
	case preview.KindUnavailable:
		fmt.Printf("No preview available for %s\n", state.Title)
	case preview.KindError:
		fmt.Printf("Preview failed: %v\n", state.Err)
		os.Exit(1)
	}
}

func runDocsDownload(cmd *cobra.Command, args []string) {
	doc, err := findDocument(cmd, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	destDir, _ := cmd.Flags().GetString("dest")
	path, err := ctrl.Download(cmd.Context(), doc, destDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Downloaded %s to %s\n", doc.DisplayName, path)
}

func runDocsDelete(cmd *cobra.Command, args []string) {
	doc, err := findDocument(cmd, args[0])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !confirm(fmt.Sprintf("Delete '%s' from project '%s'?", doc.DisplayName, doc.ProjectName)) {
		fmt.Println("Aborted")
		return
	}
	if err := ctrl.DeleteDocument(cmd.Context(), doc); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %s\n", doc.DisplayName)
}

// findDocument resolves a document id (or exact display name) against the
// catalog.
func findDocument(cmd *cobra.Command, ref string) (model.Document, error) {
	docs, err := ctrl.ListDocuments(cmd.Context(), catalog.Query{})
	if err != nil {
		return model.Document{}, err
	}
	for _, doc := range docs {
		if doc.RemoteID == ref {
			return doc, nil
		}
	}
	for _, doc := range docs {
		if doc.DisplayName == ref {
			return doc, nil
		}
	}
	return model.Document{}, fmt.Errorf("document '%s' not found", ref)
}
