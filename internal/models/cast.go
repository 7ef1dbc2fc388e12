package models

import (
	"time"

	"gorm.io/gorm"
)

// Cast キャスト表
type Cast struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                      // 主キー
	Name       string         `gorm:"type:varchar(100);not null" json:"name"`                    // 氏名
	ScoutID    *uint          `gorm:"index" json:"scout_id,omitempty"`                           // 担当スカウトID
	ShopID     *uint          `gorm:"index" json:"shop_id,omitempty"`                            // 在籍店舗ID
	Category   string         `gorm:"type:varchar(20);default:'prospect';index" json:"category"` // 区分（prospect / active / retired）
	EmployedAt *time.Time     `json:"employed_at,omitempty"`                                     // 在籍開始時刻
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                   // 作成時刻
	UpdatedAt  time.Time      `json:"updated_at"`                                                // 更新時刻
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                            // 論理削除時刻
}

// TableName テーブル名を指定する
func (Cast) TableName() string {
	return "casts"
}
