package models

import (
	"time"

	"gorm.io/gorm"
)

// Shop 店舗表
type Shop struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                         // 主キー
	Name         string         `gorm:"type:varchar(255);not null;index" json:"name"`                 // 店舗名
	Area         string         `gorm:"type:varchar(100);index" json:"area"`                          // エリア
	SBType       string         `gorm:"type:varchar(30);not null" json:"sb_type"`                     // SB計算方式（sales_percentage / salary_percentage / fixed）
	SBRate       Money          `gorm:"type:decimal(12,2);not null" json:"sb_rate"`                   // 料率（%）または固定額（円）
	PaymentCycle string         `gorm:"type:varchar(20);default:'monthly'" json:"payment_cycle"`      // 支払サイクル（monthly / bimonthly）
	HiringStatus string         `gorm:"type:varchar(20);default:'active';index" json:"hiring_status"` // 採用状況（active / limited / closed）
	Notes        string         `gorm:"type:text" json:"notes"`                                       // 備考
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                      // 作成時刻
	UpdatedAt    time.Time      `json:"updated_at"`                                                   // 更新時刻
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                               // 論理削除時刻
}

// TableName テーブル名を指定する
func (Shop) TableName() string {
	return "shops"
}
