package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reshort/internal/daemon"
	"reshort/internal/downloader"
	"reshort/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reshort daemon",
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	if err := downloader.CheckDependency(); err != nil {
		logger.Log.Warn("yt-dlp not found, re-upload batches will fail",
			zap.Error(err))
	}

	manager := daemon.NewBatchManager(cfg)
	srv := daemon.NewServer(manager, cfg)
	srv.Start()

	logger.Log.Info("reshort daemon started",
		zap.Int("port", cfg.DaemonPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Log.Info("shutting down",
			zap.String("signal", sig.String()))
	case <-srv.StopCh():
		logger.Log.Info("stop requested via API")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
