package models

import "time"

// LinkClick リンククリック記録（追記専用）
type LinkClick struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                       // 主キー
	LinkID     uint      `gorm:"not null;index" json:"link_id"`                              // リンクID
	VisitorKey string    `gorm:"type:varchar(128);index" json:"visitor_key"`                 // 訪問者識別子
	Referrer   string    `gorm:"type:varchar(1024)" json:"referrer"`                         // 参照元
	ClientIP   string    `gorm:"type:varchar(64)" json:"client_ip"`                          // クライアントIP
	UserAgent  string    `gorm:"type:varchar(1024)" json:"user_agent"`                       // クライアントUA
	CreatedAt  time.Time `gorm:"index;not null;default:CURRENT_TIMESTAMP" json:"created_at"` // 記録時刻

	Link ScoutLink `gorm:"foreignKey:LinkID" json:"link,omitempty"` // 対象リンク
}

// TableName テーブル名を指定する
func (LinkClick) TableName() string {
	return "link_clicks"
}
