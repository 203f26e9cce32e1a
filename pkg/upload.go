package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/mediacuts/cli/pkg/model"
	"github.com/mediacuts/cli/pkg/queue"
)

// defaultProjectKey is the kv config key remembering the last upload target.
const defaultProjectKey = "defaultProject"

// Upload sends the given files to a project on the remote API and returns a
// summary of what happened.
func (c *ClICtrl) Upload(ctx context.Context, files []string, config model.UploadConfig, notify queue.Notifier) (queue.Summary, error) {
	if len(files) == 0 {
		return queue.Summary{}, fmt.Errorf("no files to upload")
	}

	ctx, account, err := c.buildRequestContext(ctx)
	if err != nil {
		return queue.Summary{}, err
	}
	fmt.Printf("Using account: %s\n", account.Email)

	// No explicit project falls back to the last one uploaded to.
	if config.ProjectKey == "" {
		if saved, err := c.GetConfigValue(ctx, defaultProjectKey); err == nil && saved != "" {
			config.ProjectKey = saved
			fmt.Printf("Using project: %s\n", saved)
		}
	}

	transfer := queue.NewAPITransferer(c.Client, c)
	q := queue.New(transfer, notify)
	q.Enqueue(files...)

	done := make(chan error, 1)
	go func() {
		done <- q.StartAll(ctx, config)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			if err != nil {
				return queue.Summary{}, err
			}
			if tracker := q.Progress(); tracker != nil {
				fmt.Printf("\r%s\n", tracker.Render())
				fmt.Println(tracker.SummaryLine())
			}
			if err := c.PutConfigValue(ctx, defaultProjectKey, config.ProjectKey); err != nil {
				fmt.Printf("Warning: failed to remember project: %v\n", err)
			}
			return q.Summary(), nil
		case <-ticker.C:
			if tracker := q.Progress(); tracker != nil {
				fmt.Printf("\r%s", tracker.Render())
			}
		}
	}
}
