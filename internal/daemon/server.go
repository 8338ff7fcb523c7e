package daemon

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"reshort/internal/config"
	"reshort/internal/logger"
	"reshort/internal/model"
	"reshort/internal/repository"
	"reshort/internal/schedule"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo    *echo.Echo
	manager *BatchManager
	repo    *repository.UploadRepository
	presets *schedule.PresetStore
	port    int
	stopCh  chan struct{}
}

func NewServer(manager *BatchManager, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:    e,
		manager: manager,
		repo:    repository.NewUploadRepository(),
		presets: schedule.NewPresetStore(cfg.PresetsPath),
		port:    cfg.DaemonPort,
		stopCh:  make(chan struct{}, 1),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// For the entire daemon
	s.echo.GET("/status", s.handleStatus)
	s.echo.POST("/stop", s.handleStop)

	// Batches
	s.echo.POST("/fetch", s.handleFetch)
	s.echo.GET("/shorts", s.handleShorts)
	s.echo.POST("/batches", s.handleStartBatch)
	s.echo.POST("/batches/cancel", s.handleCancelBatch)

	// History
	s.echo.GET("/history", s.handleHistory)

	// Presets
	g := s.echo.Group("/presets")
	g.GET("", s.handleListPresets)
	g.POST("", s.handleSavePreset)
	g.DELETE("/:name", s.handleDeletePreset)
}

func (s *Server) Start() {
	go func() {
		addr := ":" + strconv.Itoa(s.port)
		logger.Log.Info("daemon server started",
			zap.String("addr", addr))

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("daemon server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.manager.StopBatch()
	return s.echo.Shutdown(ctx)
}

func (s *Server) StopCh() <-chan struct{} {
	return s.stopCh
}

func (s *Server) handleStatus(c echo.Context) error {
	total, err := s.repo.Count()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"batch":   s.manager.Snapshot(),
		"uploads": total,
	})
}

func (s *Server) handleStop(c echo.Context) error {
	s.stopCh <- struct{}{}
	return c.JSON(http.StatusOK, map[string]string{"status": "stopping"})
}

func (s *Server) handleFetch(c echo.Context) error {
	if err := s.manager.StartFetch(); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusAccepted, map[string]string{"status": "fetching"})
}

func (s *Server) handleShorts(c echo.Context) error {
	snap := s.manager.Snapshot()
	return c.JSON(http.StatusOK, map[string]any{
		"status": snap.Status,
		"shorts": snap.Shorts,
	})
}

type startBatchRequest struct {
	Jobs         []model.Job `json:"jobs"`
	Preset       string      `json:"preset"`
	StartAt      string      `json:"start_at"`
	IntervalDays int         `json:"interval_days"`
}

func (s *Server) handleStartBatch(c echo.Context) error {
	var req startBatchRequest
	if err := c.Bind(&req); err != nil || len(req.Jobs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "jobs required"})
	}

	plan, err := s.resolvePlan(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := s.manager.StartUpload(req.Jobs, plan); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusAccepted, map[string]any{
		"status":   "started",
		"jobs":     len(req.Jobs),
		"start_at": plan.StartAt,
	})
}

func (s *Server) resolvePlan(req startBatchRequest) (model.SchedulePlan, error) {
	if req.Preset != "" {
		preset, ok := s.presets.Get(req.Preset)
		if !ok {
			return model.SchedulePlan{}, errors.New("unknown preset: " + req.Preset)
		}
		return schedule.ResolvePreset(preset, time.Now())
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return model.SchedulePlan{}, errors.New("start_at must be RFC3339 or preset must be set")
	}

	return schedule.ResolveManual(startAt, startAt.Hour(), startAt.Minute(), req.IntervalDays), nil
}

func (s *Server) handleCancelBatch(c echo.Context) error {
	s.manager.StopBatch()
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelling"})
}

func (s *Server) handleHistory(c echo.Context) error {
	n := 20
	if nStr := c.QueryParam("n"); nStr != "" {
		if parsed, err := strconv.Atoi(nStr); err == nil {
			n = parsed
		}
	}

	uploads, err := s.repo.GetRecent(n)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, uploads)
}

func (s *Server) handleListPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, s.presets.Load())
}

type savePresetRequest struct {
	Name string `json:"name"`
	model.Preset
}

func (s *Server) handleSavePreset(c echo.Context) error {
	var req savePresetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid preset"})
	}

	if err := s.presets.AddOrUpdate(req.Name, req.Preset); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "saved"})
}

func (s *Server) handleDeletePreset(c echo.Context) error {
	if err := s.presets.Delete(c.Param("name")); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
