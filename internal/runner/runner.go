package runner

import (
	"context"
	"fmt"
	"reshort/internal/logger"
	"reshort/internal/model"
	"reshort/internal/notify"
	"reshort/internal/schedule"
	"reshort/internal/util"
	"reshort/internal/youtube"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DownloadProvider resolves a re-upload job's source ID into a local file.
// The provider owns its retry/fallback policy and its own failure alerting;
// the runner only observes success or failure.
type DownloadProvider interface {
	Download(ctx context.Context, sourceID string) (string, error)
}

// UploadProvider publishes a local media file with the job's metadata and a
// publish-at time, returning the remote video ID.
type UploadProvider interface {
	Upload(ctx context.Context, path string, job model.Job, publishAt time.Time) (string, error)
}

// OutcomeRecorder persists a successful upload. Optional.
type OutcomeRecorder interface {
	Save(job model.Job, outcome model.JobOutcome, publishAt time.Time) error
}

// Runner executes an upload batch sequentially on one background goroutine.
// Jobs run in submission order and schedule slot i always belongs to job i.
// One job's failure never aborts the batch.
type Runner struct {
	downloader DownloadProvider
	uploader   UploadProvider
	notifier   notify.Notifier
	recorder   OutcomeRecorder
}

func New(downloader DownloadProvider, uploader UploadProvider, notifier notify.Notifier, recorder OutcomeRecorder) *Runner {
	return &Runner{
		downloader: downloader,
		uploader:   uploader,
		notifier:   notifier,
		recorder:   recorder,
	}
}

// Run starts the batch worker and returns its event channel. The channel is
// closed after the terminal UPLOAD_COMPLETE event, which is emitted even when
// every job failed or the context was cancelled between jobs.
func (r *Runner) Run(ctx context.Context, jobs []model.Job, plan model.SchedulePlan) <-chan model.BatchEvent {
	events := make(chan model.BatchEvent, len(jobs)*4+8)

	go func() {
		defer close(events)
		r.process(ctx, jobs, plan, events)
	}()

	return events
}

func (r *Runner) process(ctx context.Context, jobs []model.Job, plan model.SchedulePlan, events chan<- model.BatchEvent) {
	total := len(jobs)
	events <- statusEvent(fmt.Sprintf("Starting upload of %d videos...", total))
	events <- progressEvent(0)

	var outcomes []model.JobOutcome
	for i, job := range jobs {
		// Cancellation is cooperative and coarse: checked between jobs only.
		if ctx.Err() != nil {
			logger.Log.Warn("batch cancelled",
				zap.Int("processed", i),
				zap.Int("total", total))
			break
		}

		events <- statusEvent(fmt.Sprintf("Processing video %d/%d: %s", i+1, total, job.Title))

		if outcome, ok := r.processJob(ctx, i, total, job, plan, events); ok {
			outcomes = append(outcomes, outcome)
		}

		events <- progressEvent(float64(i+1) / float64(total) * 100)
	}

	if len(outcomes) > 0 {
		_ = r.notifier.Notify("Upload Batch Complete", summarize(outcomes))
	}

	events <- model.BatchEvent{Type: model.EventUploadComplete}
}

// processJob runs one job with full isolation: any panic is recovered here,
// and a downloaded temp file is removed on every exit path. Local files are
// never deleted.
func (r *Runner) processJob(ctx context.Context, index, total int, job model.Job, plan model.SchedulePlan, events chan<- model.BatchEvent) (outcome model.JobOutcome, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Error("unexpected failure while processing job",
				zap.String("title", job.Title),
				zap.Any("panic", rec),
				zap.Stack("stack"))
			ok = false
		}
	}()

	var path string
	switch job.Type {
	case model.JobReUpload:
		events <- statusEvent("Downloading: " + truncate(job.Title, 30))

		downloaded, err := r.downloader.Download(ctx, job.SourceID)
		if err != nil {
			logger.Log.Warn("no source for job, skipping",
				zap.String("title", job.Title),
				zap.Error(err))
			return outcome, false
		}

		path = downloaded
		defer func() {
			if err := util.RemoveIfExists(path); err != nil {
				logger.Log.Warn("failed to clean up downloaded file",
					zap.String("path", path),
					zap.Error(err))
			} else {
				logger.Log.Info("cleaned up downloaded file",
					zap.String("path", path))
			}
		}()

	case model.JobLocal:
		events <- statusEvent("Preparing: " + truncate(job.Title, 30))
		path = job.SourcePath
	}

	if path == "" {
		logger.Log.Warn("job has no media source, skipping",
			zap.String("title", job.Title))
		return outcome, false
	}

	publishAt := schedule.SlotTime(plan, index)
	logger.Log.Info("video scheduled",
		zap.String("title", job.Title),
		zap.Time("publish_at", publishAt))

	events <- statusEvent(fmt.Sprintf("Uploading video %d/%d...", index+1, total))

	remoteID, err := r.uploader.Upload(ctx, path, job, publishAt)
	if err != nil {
		logger.Log.Error("upload failed",
			zap.String("title", job.Title),
			zap.Error(err))
		_ = r.notifier.Notify("Video Upload Failure",
			fmt.Sprintf("Upload failed for '%s'\n\nError: %v", job.Title, err))
		return outcome, false
	}

	if r.recorder != nil {
		if err := r.recorder.Save(job, model.JobOutcome{Title: job.Title, RemoteID: remoteID}, publishAt); err != nil {
			logger.Log.Warn("failed to save upload history",
				zap.Error(err))
		}
	}

	return model.JobOutcome{Title: job.Title, RemoteID: remoteID}, true
}

func summarize(outcomes []model.JobOutcome) string {
	lines := []string{"Successfully scheduled the following videos:", ""}
	for _, o := range outcomes {
		lines = append(lines, fmt.Sprintf("- %s (%s)", o.Title, youtube.WatchURL(o.RemoteID)))
	}

	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
