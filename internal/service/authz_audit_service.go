package service

import (
	"strings"
	"time"

	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"
)

// AuthzAuditRecordInput 権限監査記録の入力
type AuthzAuditRecordInput struct {
	OperatorScoutID uint
	OperatorEmail   string
	TargetScoutID   *uint
	TargetEmail     string
	Action          string
	Role            string
	Object          string
	Method          string
	RequestID       string
	Detail          models.JSON
}

// AuthzAuditService 権限監査サービス
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
}

// NewAuthzAuditService 権限監査サービスを生成する
func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo}
}

// Record 権限監査ログを記録する
func (s *AuthzAuditService) Record(input AuthzAuditRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if input.OperatorScoutID == 0 {
		return nil
	}
	if strings.TrimSpace(input.Action) == "" {
		return nil
	}

	item := &models.AuthzAuditLog{
		OperatorScoutID: input.OperatorScoutID,
		OperatorEmail:   strings.TrimSpace(input.OperatorEmail),
		TargetScoutID:   input.TargetScoutID,
		TargetEmail:     strings.TrimSpace(input.TargetEmail),
		Action:          strings.TrimSpace(input.Action),
		Role:            strings.TrimSpace(input.Role),
		Object:          strings.TrimSpace(input.Object),
		Method:          strings.ToUpper(strings.TrimSpace(input.Method)),
		RequestID:       strings.TrimSpace(input.RequestID),
		DetailJSON:      input.Detail,
		CreatedAt:       time.Now(),
	}
	return s.repo.Create(item)
}

// ListForMaster マスター側から権限監査ログを検索する
func (s *AuthzAuditService) ListForMaster(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.repo.ListMaster(filter)
}
