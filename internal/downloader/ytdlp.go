package downloader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reshort/internal/config"
	"reshort/internal/logger"
	"reshort/internal/notify"
	"reshort/internal/youtube"
	"strings"

	"go.uber.org/zap"
)

// Provider resolves a remote source video ID into a local media file.
type Provider interface {
	Download(ctx context.Context, sourceID string) (string, error)
}

// YTDLP shells out to the yt-dlp binary. The first attempt uses the
// highest-quality format selector and re-encodes to mp4; when that fails the
// more compatible selector is tried before giving up. A total failure is
// reported to the notifier here, so callers only deal with the outcome.
type YTDLP struct {
	tempDir    string
	formatBest string
	formatSafe string
	notifier   notify.Notifier

	run func(ctx context.Context, args []string) error
}

func New(cfg *config.Config, notifier notify.Notifier) *YTDLP {
	return &YTDLP{
		tempDir:    cfg.TempDir,
		formatBest: cfg.FormatBest,
		formatSafe: cfg.FormatSafe,
		notifier:   notifier,
		run:        runYTDLP,
	}
}

// CheckDependency verifies the yt-dlp binary is reachable.
func CheckDependency() error {
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return fmt.Errorf("missing dependency: yt-dlp is not installed or not on PATH")
	}

	return nil
}

func (d *YTDLP) Download(ctx context.Context, sourceID string) (string, error) {
	videoURL := youtube.WatchURL(sourceID)
	outPath := filepath.Join(d.tempDir, sourceID+".mp4")

	logger.Log.Info("downloading video",
		zap.String("id", sourceID),
		zap.String("format", d.formatBest))

	if err := d.run(ctx, bestArgs(d.formatBest, outPath, videoURL)); err != nil {
		logger.Log.Warn("highest quality download failed, trying compatible format",
			zap.String("id", sourceID),
			zap.Error(err))

		if err := d.run(ctx, safeArgs(d.formatSafe, outPath, videoURL)); err != nil {
			_ = d.notifier.Notify("Video Download Failure",
				fmt.Sprintf("Both download attempts failed for %s\n\nError: %v", videoURL, err))

			return "", fmt.Errorf("download failed for %s: %w", sourceID, err)
		}
	}

	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("yt-dlp reported success but %s is missing: %w", outPath, err)
	}

	logger.Log.Info("download complete",
		zap.String("path", outPath))

	return outPath, nil
}

func bestArgs(format, outPath, videoURL string) []string {
	return []string{
		"-f", format,
		"--recode-video", "mp4",
		"-o", outPath,
		videoURL,
	}
}

func safeArgs(format, outPath, videoURL string) []string {
	return []string{
		"-f", format,
		"-o", outPath,
		videoURL,
	}
}

func runYTDLP(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, "yt-dlp", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yt-dlp failed: %w: %s", err, lastLine(stderr.String()))
	}

	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
