package pkg

import (
	"context"
	"fmt"

	"github.com/mediacuts/cli/pkg/model"
	"github.com/mediacuts/cli/pkg/queue"
	"github.com/mediacuts/cli/pkg/watcher"
)

// NewWatcher builds a folder watcher bound to the active account. The state
// is persisted so a later run can resume where this one stopped.
func (c *ClICtrl) NewWatcher(ctx context.Context, state *model.WatchState, notify queue.Notifier) (context.Context, *watcher.Watcher, error) {
	ctx, account, err := c.buildRequestContext(ctx)
	if err != nil {
		return ctx, nil, err
	}
	fmt.Printf("Using account: %s\n", account.Email)

	// No explicit project resumes the previous watch session's target.
	if state.ProjectKey == "" {
		saved, err := c.LoadWatchState(ctx)
		if err != nil {
			return ctx, nil, err
		}
		if saved != nil {
			state.ProjectKey = saved.ProjectKey
			state.ProjectName = saved.ProjectName
			fmt.Printf("Resuming project: %s\n", state.ProjectName)
		}
	}

	transfer := queue.NewAPITransferer(c.Client, c)
	w, err := watcher.NewWatcher(ctx, transfer, notify, c, state)
	if err != nil {
		return ctx, nil, err
	}
	if err := c.SaveWatchState(ctx, state); err != nil {
		return ctx, nil, fmt.Errorf("failed to save watch state: %w", err)
	}
	return ctx, w, nil
}
