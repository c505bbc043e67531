package editor

import (
	"context"
	"time"
)

// AutoSave saves dirty edits every interval until ctx is done. Save errors are
// passed to onError and retried on the next tick.
func AutoSave(ctx context.Context, ed *Editor, interval time.Duration, onError func(error)) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := ed.SaveIfDirty(ctx); err != nil && onError != nil && ctx.Err() == nil {
				onError(err)
			}
		}
	}
}
