package daemon

import (
	"context"
	"testing"
	"time"

	"reshort/internal/config"
	"reshort/internal/model"
)

func testManager() *BatchManager {
	return NewBatchManager(&config.Config{})
}

type fakeBatchClient struct {
	release chan struct{}
	shorts  []model.ShortVideo
	ctxs    []context.Context
}

func (f *fakeBatchClient) ListShorts(ctx context.Context) ([]model.ShortVideo, error) {
	f.ctxs = append(f.ctxs, ctx)
	if f.release != nil {
		<-f.release
	}
	return f.shorts, nil
}

func (f *fakeBatchClient) Upload(ctx context.Context, path string, job model.Job, publishAt time.Time) (string, error) {
	f.ctxs = append(f.ctxs, ctx)
	if f.release != nil {
		<-f.release
	}
	return "remote-1", nil
}

func waitCompleted(t *testing.T, m *BatchManager) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if m.Snapshot().Status == model.BatchCompleted {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("batch did not reach a terminal state")
}

func TestApply_FoldsProgressIntoSnapshot(t *testing.T) {
	m := testManager()
	m.begin(model.BatchUpload, 3, func() {})

	m.apply(model.BatchEvent{Type: model.EventStatusUpdate, Message: "Processing video 1/3: clip"})
	m.apply(model.BatchEvent{Type: model.EventProgressUpdate, Percent: 33.3})

	snap := m.Snapshot()
	if snap.Status != model.BatchRunning {
		t.Errorf("expected running, got %s", snap.Status)
	}
	if snap.Message != "Processing video 1/3: clip" {
		t.Errorf("unexpected message: %q", snap.Message)
	}
	if snap.Percent != 33.3 {
		t.Errorf("unexpected percent: %v", snap.Percent)
	}
}

func TestApply_TerminalEventRearmsManager(t *testing.T) {
	m := testManager()

	_, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.begin(model.BatchUpload, 2, cancel)

	m.apply(model.BatchEvent{Type: model.EventUploadComplete})

	snap := m.Snapshot()
	if snap.Status != model.BatchCompleted {
		t.Errorf("expected completed, got %s", snap.Status)
	}
	if snap.FinishedAt == nil {
		t.Error("expected finished timestamp")
	}
	if m.running {
		t.Error("manager should accept a new batch after the terminal event")
	}
}

func TestApply_FetchCompleteStoresShorts(t *testing.T) {
	m := testManager()
	m.begin(model.BatchFetch, 0, func() {})

	m.apply(model.BatchEvent{
		Type: model.EventFetchComplete,
		Items: []model.ShortVideo{
			{ID: "abc", Title: "one", Duration: 42},
		},
	})

	snap := m.Snapshot()
	if snap.Status != model.BatchCompleted {
		t.Errorf("expected completed, got %s", snap.Status)
	}
	if len(snap.Shorts) != 1 || snap.Shorts[0].ID != "abc" {
		t.Errorf("expected fetched shorts in snapshot, got %+v", snap.Shorts)
	}
}

func TestStart_RejectsSecondBatchWhileRunning(t *testing.T) {
	m := testManager()
	client := &fakeBatchClient{release: make(chan struct{})}
	m.newClient = func(ctx context.Context) (batchClient, error) { return client, nil }

	if err := m.StartFetch(); err != nil {
		t.Fatalf("first batch rejected: %v", err)
	}

	if err := m.StartFetch(); err == nil {
		t.Error("second fetch accepted while a batch is running")
	}
	jobs := []model.Job{{Type: model.JobLocal, SourcePath: "clip.mp4", Title: "clip"}}
	if err := m.StartUpload(jobs, model.SchedulePlan{StartAt: time.Now()}); err == nil {
		t.Error("upload accepted while a batch is running")
	}

	close(client.release)
	waitCompleted(t, m)

	if err := m.StartFetch(); err != nil {
		t.Errorf("batch rejected after the previous one finished: %v", err)
	}
	waitCompleted(t, m)
}

func TestBatchClient_OutlivesBatchCancellation(t *testing.T) {
	m := testManager()
	client := &fakeBatchClient{shorts: []model.ShortVideo{{ID: "abc"}}}
	m.newClient = func(ctx context.Context) (batchClient, error) {
		client.ctxs = append(client.ctxs, ctx)
		return client, nil
	}

	if err := m.StartFetch(); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	}
	waitCompleted(t, m)
	// Give the batch goroutine time to run its deferred cancel.
	time.Sleep(50 * time.Millisecond)

	// The construction context backs the client's token source for the rest
	// of the daemon's life; the first batch finishing must not cancel it.
	if err := client.ctxs[0].Err(); err != nil {
		t.Errorf("client construction context cancelled after batch: %v", err)
	}
}

func TestSnapshot_NotBlockedByClientConstruction(t *testing.T) {
	m := testManager()
	entered := make(chan struct{})
	block := make(chan struct{})
	m.newClient = func(ctx context.Context) (batchClient, error) {
		close(entered)
		<-block
		return &fakeBatchClient{}, nil
	}

	done := make(chan error, 1)
	go func() { done <- m.StartFetch() }()
	<-entered

	got := make(chan model.BatchSnapshot, 1)
	go func() { got <- m.Snapshot() }()

	select {
	case <-got:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Snapshot blocked while the client was being built")
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("fetch rejected: %v", err)
	}
	waitCompleted(t, m)
}

func TestSnapshot_ReturnsIndependentCopy(t *testing.T) {
	m := testManager()
	m.begin(model.BatchFetch, 0, func() {})
	m.apply(model.BatchEvent{
		Type:  model.EventFetchComplete,
		Items: []model.ShortVideo{{ID: "abc"}},
	})

	snap := m.Snapshot()
	snap.Shorts[0].ID = "mutated"

	if m.Snapshot().Shorts[0].ID != "abc" {
		t.Error("snapshot mutation leaked into the manager")
	}
}
