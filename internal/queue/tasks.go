package queue

import (
	"encoding/json"

	"github.com/scouttrack/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLinkClickAudit クリック監査タスク
	TaskLinkClickAudit = constants.TaskLinkClickAudit
	// TaskCastEmploymentSync キャスト稼働区分同期タスク
	TaskCastEmploymentSync = constants.TaskCastEmploymentSync
)

// LinkClickAuditPayload クリック監査タスクの載荷
type LinkClickAuditPayload struct {
	LinkID  uint `json:"link_id"`
	ClickID uint `json:"click_id"`
}

// CastEmploymentSyncPayload キャスト稼働区分同期タスクの載荷
type CastEmploymentSyncPayload struct {
	ConversionID uint `json:"conversion_id"`
	CastID       uint `json:"cast_id"`
}

// NewLinkClickAuditTask クリック監査タスクを生成する
func NewLinkClickAuditTask(payload LinkClickAuditPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLinkClickAudit, body), nil
}

// NewCastEmploymentSyncTask キャスト稼働区分同期タスクを生成する
func NewCastEmploymentSyncTask(payload CastEmploymentSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCastEmploymentSync, body), nil
}
