package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reshort/internal/config"
	"reshort/internal/downloader"
	"reshort/internal/logger"
	"reshort/internal/model"
	"reshort/internal/notify"
	"reshort/internal/repository"
	"reshort/internal/runner"
	"reshort/internal/youtube"

	"go.uber.org/zap"
)

// batchClient is the slice of the YouTube client the batches need.
type batchClient interface {
	runner.ShortsLister
	runner.UploadProvider
}

// BatchManager serializes work: at most one batch (fetch or upload) runs at a
// time. It drains the batch's event channel on the poll tick and folds every
// event into a snapshot that the HTTP handlers read.
type BatchManager struct {
	mu        sync.Mutex
	cfg       *config.Config
	notifier  notify.Notifier
	repo      *repository.UploadRepository
	newClient func(ctx context.Context) (batchClient, error)
	client    batchClient
	snapshot  model.BatchSnapshot
	running   bool
	cancel    context.CancelFunc
}

func NewBatchManager(cfg *config.Config) *BatchManager {
	return &BatchManager{
		cfg:      cfg,
		notifier: notify.FromConfig(cfg),
		repo:     repository.NewUploadRepository(),
		newClient: func(ctx context.Context) (batchClient, error) {
			return youtube.NewClient(ctx, cfg)
		},
		snapshot: model.BatchSnapshot{Status: model.BatchIdle},
	}
}

// ensureClient builds the API client on first use so the daemon can start
// before the operator has run auth. Construction does network round-trips, so
// it happens outside the lock, and the client's token source must outlive any
// single batch, so it is built on a daemon-lifetime context rather than a
// batch's cancellable one.
func (m *BatchManager) ensureClient() (batchClient, error) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	if client != nil {
		return client, nil
	}

	client, err := m.newClient(context.Background())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.client == nil {
		m.client = client
	}
	client = m.client
	m.mu.Unlock()

	return client, nil
}

// StartFetch begins a channel listing batch. Returns an error if another
// batch is already running.
func (m *BatchManager) StartFetch() error {
	client, err := m.ensureClient()
	if err != nil {
		return fmt.Errorf("youtube client unavailable: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("a batch is already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.begin(model.BatchFetch, 0, cancel)

	go func() {
		runner.Poll(runner.RunFetch(ctx, client), m.apply)
		cancel()
	}()

	logger.Log.Info("fetch batch started")
	return nil
}

// StartUpload begins an upload batch for the given jobs and schedule plan.
// Returns an error if another batch is already running.
func (m *BatchManager) StartUpload(jobs []model.Job, plan model.SchedulePlan) error {
	client, err := m.ensureClient()
	if err != nil {
		return fmt.Errorf("youtube client unavailable: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("a batch is already running")
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs to run")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.begin(model.BatchUpload, len(jobs), cancel)

	r := runner.New(downloader.New(m.cfg, m.notifier), client, m.notifier, m.countingRecorder())

	go func() {
		runner.Poll(r.Run(ctx, jobs, plan), m.apply)
		cancel()
	}()

	logger.Log.Info("upload batch started",
		zap.Int("jobs", len(jobs)),
		zap.Time("start_at", plan.StartAt))
	return nil
}

// begin resets the snapshot for a new batch. Caller holds the lock.
func (m *BatchManager) begin(kind model.BatchKind, total int, cancel context.CancelFunc) {
	m.running = true
	m.cancel = cancel
	m.snapshot = model.BatchSnapshot{
		Kind:      kind,
		Status:    model.BatchRunning,
		Total:     total,
		StartedAt: time.Now(),
	}
}

func (m *BatchManager) apply(ev model.BatchEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev.Type {
	case model.EventStatusUpdate:
		m.snapshot.Message = ev.Message

	case model.EventProgressUpdate:
		m.snapshot.Percent = ev.Percent

	case model.EventFetchComplete:
		m.snapshot.Shorts = ev.Items
		m.snapshot.Message = fmt.Sprintf("Found %d Shorts", len(ev.Items))
		m.finish()

	case model.EventFetchFailed:
		m.snapshot.Message = ev.Message
		m.finish()

	case model.EventUploadComplete:
		m.snapshot.Percent = 100
		m.snapshot.Message = fmt.Sprintf("Batch finished: %d/%d uploaded",
			m.snapshot.Succeeded, m.snapshot.Total)
		m.finish()
	}
}

// finish marks the batch terminal and re-arms the manager. Caller holds the
// lock.
func (m *BatchManager) finish() {
	now := time.Now()
	m.snapshot.Status = model.BatchCompleted
	m.snapshot.FinishedAt = &now
	m.running = false
	m.cancel = nil
}

// StopBatch cancels the active batch. The batch still finishes with its
// terminal event once the current job completes.
func (m *BatchManager) StopBatch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		logger.Log.Info("batch cancellation requested")
	}
}

func (m *BatchManager) Snapshot() model.BatchSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.snapshot
	snap.Shorts = append([]model.ShortVideo(nil), m.snapshot.Shorts...)
	return snap
}

// countingRecorder wraps the upload repository so the snapshot's success
// count tracks the batch as it runs.
func (m *BatchManager) countingRecorder() runner.OutcomeRecorder {
	return recorderFunc(func(job model.Job, outcome model.JobOutcome, publishAt time.Time) error {
		m.mu.Lock()
		m.snapshot.Succeeded++
		m.mu.Unlock()

		return m.repo.Save(job, outcome, publishAt)
	})
}

type recorderFunc func(model.Job, model.JobOutcome, time.Time) error

func (f recorderFunc) Save(job model.Job, outcome model.JobOutcome, publishAt time.Time) error {
	return f(job, outcome, publishAt)
}
