package runner

import (
	"context"
	"reshort/internal/logger"
	"reshort/internal/model"

	"go.uber.org/zap"
)

// ShortsLister fetches the listing of the channel's Shorts.
type ShortsLister interface {
	ListShorts(ctx context.Context) ([]model.ShortVideo, error)
}

// RunFetch lists the channel's Shorts on a background goroutine, terminating
// with FETCH_COMPLETE or FETCH_FAILED. The channel is closed afterwards.
func RunFetch(ctx context.Context, lister ShortsLister) <-chan model.BatchEvent {
	events := make(chan model.BatchEvent, 8)

	go func() {
		defer close(events)

		events <- statusEvent("Fetching video list from your channel...")

		shorts, err := lister.ListShorts(ctx)
		if err != nil {
			logger.Log.Error("fetch failed",
				zap.Error(err))
			events <- model.BatchEvent{Type: model.EventFetchFailed, Message: err.Error()}
			return
		}

		events <- model.BatchEvent{Type: model.EventFetchComplete, Items: shorts}
	}()

	return events
}
