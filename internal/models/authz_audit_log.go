package models

import "time"

// AuthzAuditLog 権限ポリシー監査ログ
// 説明：マスター権限まわりの変更操作を記録し、操作者と期間で検索できるようにする。
type AuthzAuditLog struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	OperatorScoutID uint      `gorm:"index;not null" json:"operator_scout_id"`
	OperatorEmail   string    `gorm:"type:varchar(255);index;not null;default:''" json:"operator_email"`
	TargetScoutID   *uint     `gorm:"index" json:"target_scout_id,omitempty"`
	TargetEmail     string    `gorm:"type:varchar(255);index;not null;default:''" json:"target_email"`
	Action          string    `gorm:"type:varchar(100);index;not null" json:"action"`
	Role            string    `gorm:"type:varchar(120);index;not null;default:''" json:"role"`
	Object          string    `gorm:"type:varchar(255);index;not null;default:''" json:"object"`
	Method          string    `gorm:"type:varchar(20);index;not null;default:''" json:"method"`
	RequestID       string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	DetailJSON      JSON      `gorm:"type:json" json:"detail"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName テーブル名を指定する
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
