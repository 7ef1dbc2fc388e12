package worker

import (
	"context"
	"errors"
	"time"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	reportAlertInterval = time.Hour
)

// Service 非同期キューサービス
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 非同期キューサービスを生成する
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name サービス名を返す
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start サービスを開始する
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.TrackingService != nil {
		go s.runReportAlertLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop サービスを停止する
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runReportAlertLoop 日次レポートのアラートを定期的に検査してログへ流す
func (s *Service) runReportAlertLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.TrackingService == nil {
		return
	}
	runOnce := func() {
		report, err := s.consumer.TrackingService.GetDailyReport(time.Now())
		if err != nil {
			logger.Warnw("worker_report_alert_check_failed", "error", err)
			return
		}
		for _, alert := range report.Alerts {
			logger.Warnw("tracking_alert_raised",
				"type", alert.Type,
				"message", alert.Message,
			)
		}
	}
	runOnce()

	ticker := time.NewTicker(reportAlertInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
