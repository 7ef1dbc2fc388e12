package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/provider"
	"github.com/scouttrack/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 非同期タスク消費者
type Consumer struct {
	*provider.Container
}

// NewConsumer 消費者を生成する
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register ハンドラを登録する
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLinkClickAudit, c.handleLinkClickAudit)
	mux.HandleFunc(queue.TaskCastEmploymentSync, c.handleCastEmploymentSync)
}

func (c *Consumer) handleLinkClickAudit(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_link_click_audit_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LinkClickAuditPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_link_click_audit_unmarshal_failed", "error", err)
		return err
	}
	if payload.LinkID == 0 {
		logger.Debugw("worker_link_click_audit_skip_invalid_payload", "link_id", payload.LinkID)
		return nil
	}
	link, err := c.LinkRepo.GetByID(payload.LinkID)
	if err != nil {
		logger.Warnw("worker_link_click_audit_fetch_link_failed", "link_id", payload.LinkID, "error", err)
		return err
	}
	if link == nil {
		logger.Debugw("worker_link_click_audit_skip_link_not_found", "link_id", payload.LinkID)
		return nil
	}
	logger.Infow("link_click_audited",
		"link_id", link.ID,
		"click_id", payload.ClickID,
		"code", link.Code,
		"kind", link.Kind,
		"scout_id", link.ScoutID,
		"click_count", link.ClickCount,
		"submission_count", link.SubmissionCount,
	)
	return nil
}

func (c *Consumer) handleCastEmploymentSync(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cast_employment_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CastEmploymentSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cast_employment_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.ConversionID == 0 || payload.CastID == 0 {
		logger.Debugw("worker_cast_employment_sync_skip_invalid_payload",
			"conversion_id", payload.ConversionID,
			"cast_id", payload.CastID,
		)
		return nil
	}
	conversion, err := c.ConversionRepo.GetByID(payload.ConversionID)
	if err != nil {
		logger.Warnw("worker_cast_employment_sync_fetch_conversion_failed", "conversion_id", payload.ConversionID, "error", err)
		return err
	}
	if conversion == nil {
		logger.Debugw("worker_cast_employment_sync_skip_conversion_not_found", "conversion_id", payload.ConversionID)
		return nil
	}
	if conversion.Status != constants.ConversionStatusActive {
		logger.Debugw("worker_cast_employment_sync_skip_not_active",
			"conversion_id", conversion.ID,
			"status", conversion.Status,
		)
		return nil
	}
	cast, err := c.CastRepo.GetByID(payload.CastID)
	if err != nil {
		logger.Warnw("worker_cast_employment_sync_fetch_cast_failed", "cast_id", payload.CastID, "error", err)
		return err
	}
	if cast == nil {
		logger.Debugw("worker_cast_employment_sync_skip_cast_not_found", "cast_id", payload.CastID)
		return nil
	}
	if err := c.CastRepo.UpdateEmployment(cast.ID, constants.CastCategoryActive, conversion.ShopID, time.Now()); err != nil {
		logger.Warnw("worker_cast_employment_sync_update_failed",
			"conversion_id", conversion.ID,
			"cast_id", cast.ID,
			"error", err,
		)
		return err
	}
	logger.Infow("cast_employment_synced",
		"conversion_id", conversion.ID,
		"cast_id", cast.ID,
		"shop_id", conversion.ShopID,
	)
	return nil
}
