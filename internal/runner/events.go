package runner

import (
	"reshort/internal/model"
	"time"
)

// PollInterval is the cadence at which consumers drain the event channel.
const PollInterval = 100 * time.Millisecond

func statusEvent(message string) model.BatchEvent {
	return model.BatchEvent{Type: model.EventStatusUpdate, Message: message}
}

func progressEvent(percent float64) model.BatchEvent {
	return model.BatchEvent{Type: model.EventProgressUpdate, Percent: percent}
}

// Poll drains the event channel on a fixed tick, handing events to handle in
// enqueue order. An empty tick is a no-op. Poll returns once the channel is
// closed and fully drained.
func Poll(events <-chan model.BatchEvent, handle func(model.BatchEvent)) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for range ticker.C {
		drained := false
		for !drained {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				handle(ev)
			default:
				drained = true
			}
		}
	}
}
