package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mediacuts/cli/pkg/filetype"
	"github.com/mediacuts/cli/pkg/model"
)

// colorNotifier prints one colored line per finished transfer.
type colorNotifier struct{}

func (colorNotifier) UploadSucceeded(task model.UploadTask) {
	if task.Skipped {
		fmt.Printf("%s Skipped: %s (duplicate)\n", color.YellowString("○"), task.Name)
		return
	}
	fmt.Printf("%s Uploaded: %s (%s)\n", color.GreenString("✓"), task.Name, filetype.FormatBytes(task.Size))
}

func (colorNotifier) UploadFailed(task model.UploadTask, err error) {
	fmt.Printf("%s Failed: %s - %v\n", color.RedString("✗"), task.Name, err)
}
