package runner

import (
	"context"
	"errors"
	"testing"

	"reshort/internal/model"
)

type fakeLister struct {
	shorts []model.ShortVideo
	err    error
}

func (f *fakeLister) ListShorts(ctx context.Context) ([]model.ShortVideo, error) {
	return f.shorts, f.err
}

func TestRunFetch_Success(t *testing.T) {
	lister := &fakeLister{shorts: []model.ShortVideo{
		{ID: "abc", Title: "one", Duration: 45},
		{ID: "def", Title: "two", Duration: 59},
	}}

	events := drain(RunFetch(context.Background(), lister))

	if events[0].Type != model.EventStatusUpdate {
		t.Errorf("expected leading status update, got %s", events[0].Type)
	}

	last := events[len(events)-1]
	if last.Type != model.EventFetchComplete {
		t.Fatalf("expected FETCH_COMPLETE, got %s", last.Type)
	}
	if len(last.Items) != 2 || last.Items[0].ID != "abc" {
		t.Errorf("expected fetched shorts in the terminal event, got %+v", last.Items)
	}
}

func TestRunFetch_FailureCarriesMessage(t *testing.T) {
	lister := &fakeLister{err: errors.New("token expired")}

	events := drain(RunFetch(context.Background(), lister))

	last := events[len(events)-1]
	if last.Type != model.EventFetchFailed {
		t.Fatalf("expected FETCH_FAILED, got %s", last.Type)
	}
	if last.Message != "token expired" {
		t.Errorf("expected failure message on the event, got %q", last.Message)
	}
}

func TestPoll_DeliversInEnqueueOrderUntilClosed(t *testing.T) {
	events := make(chan model.BatchEvent, 4)
	events <- statusEvent("a")
	events <- progressEvent(50)
	events <- statusEvent("b")
	close(events)

	var got []model.BatchEvent
	Poll(events, func(ev model.BatchEvent) {
		got = append(got, ev)
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Message != "a" || got[1].Percent != 50 || got[2].Message != "b" {
		t.Errorf("events out of order: %+v", got)
	}
}
