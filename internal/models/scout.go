package models

import (
	"time"

	"gorm.io/gorm"
)

// Scout スカウトアカウント表
type Scout struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                         // 主キー
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`            // メールアドレス
	PasswordHash       string         `gorm:"not null" json:"-"`                            // パスワードハッシュ（返却しない）
	DisplayName        string         `gorm:"default:''" json:"display_name"`               // 表示名
	Role               string         `gorm:"type:varchar(20);default:'scout'" json:"role"` // 役割（scout / admin）
	Status             string         `gorm:"default:'active'" json:"status"`               // アカウント状態
	ShareRate          int            `gorm:"not null;default:70" json:"share_rate"`        // スカウト取り分（%）
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // Token バージョン（全端末失効用）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // この時刻以前に発行された Token は無効
	LastLoginAt        *time.Time     `json:"last_login_at"`                                // 最終ログイン時刻
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                      // 作成時刻
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                      // 更新時刻
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                               // 論理削除時刻
}

// TableName テーブル名を指定する
func (Scout) TableName() string {
	return "scouts"
}

// IsAdmin マスター管理権限を持つか
func (s *Scout) IsAdmin() bool {
	return s.Role == "admin"
}
