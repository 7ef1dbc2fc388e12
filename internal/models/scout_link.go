package models

import (
	"time"

	"gorm.io/gorm"
)

// ScoutLink スカウト紹介リンク表
type ScoutLink struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                  // 主キー
	ScoutID             uint           `gorm:"not null;index" json:"scout_id"`                        // 発行スカウトID
	ShopID              *uint          `gorm:"index" json:"shop_id,omitempty"`                        // 紹介先店舗ID（アプリ招待リンクでは空）
	Kind                string         `gorm:"type:varchar(20);not null;index" json:"kind"`           // リンク種別（recruit / app_invite）
	Code                string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`     // 追跡コード
	LPHeadline          string         `gorm:"type:varchar(255)" json:"lp_headline"`                  // LP見出し（空なら既定文言）
	LPDescription       string         `gorm:"type:text" json:"lp_description"`                       // LP説明文（空なら既定文言）
	LPTemplate          string         `gorm:"type:varchar(50);default:'default'" json:"lp_template"` // LPテンプレート名
	IsActive            bool           `gorm:"not null;default:true;index" json:"is_active"`          // 有効フラグ（スカウト操作）
	ForceDisabled       bool           `gorm:"not null;default:false;index" json:"force_disabled"`    // 強制停止フラグ（マスター操作）
	ForceDisabledReason string         `gorm:"type:varchar(255)" json:"force_disabled_reason"`        // 強制停止理由
	ForceDisabledBy     *uint          `json:"force_disabled_by,omitempty"`                           // 強制停止を行ったスカウトID
	ForceDisabledAt     *time.Time     `json:"force_disabled_at,omitempty"`                           // 強制停止時刻
	ClickCount          int64          `gorm:"not null;default:0" json:"click_count"`                 // 累計クリック数
	SubmissionCount     int64          `gorm:"not null;default:0" json:"submission_count"`            // 累計応募数
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                               // 作成時刻
	UpdatedAt           time.Time      `json:"updated_at"`                                            // 更新時刻
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                        // 論理削除時刻

	Scout Scout `gorm:"foreignKey:ScoutID" json:"scout,omitempty"` // 発行スカウト
	Shop  *Shop `gorm:"foreignKey:ShopID" json:"shop,omitempty"`   // 紹介先店舗
}

// TableName テーブル名を指定する
func (ScoutLink) TableName() string {
	return "scout_links"
}

// Usable 訪問者がリンクを利用できる状態か
func (l *ScoutLink) Usable() bool {
	return l.IsActive && !l.ForceDisabled
}
