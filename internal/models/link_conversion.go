package models

import "time"

// LinkConversion 応募・成約記録表
// 説明：LP 送信時に submitted で作成され、マスターのステータス更新で
// マイルストーン時刻が刻まれていく。
type LinkConversion struct {
	ID              uint   `gorm:"primarykey" json:"id"`                          // 主キー
	LinkID          uint   `gorm:"not null;index" json:"link_id"`                 // 発生元リンクID
	ScoutID         uint   `gorm:"not null;index" json:"scout_id"`                // 紹介スカウトID
	ShopID          *uint  `gorm:"index" json:"shop_id,omitempty"`                // 紹介先店舗ID
	Kind            string `gorm:"type:varchar(20);not null;index" json:"kind"`   // 種別（recruit_apply / app_register）
	Status          string `gorm:"type:varchar(20);not null;index" json:"status"` // 現在ステータス
	ApplicantName   string `gorm:"type:varchar(100)" json:"applicant_name"`       // 応募者名
	ApplicantLineID string `gorm:"type:varchar(100)" json:"applicant_line_id"`    // 応募者 LINE ID
	ApplicantPhone  string `gorm:"type:varchar(20)" json:"applicant_phone"`       // 応募者電話番号
	ApplicantAge    *int   `json:"applicant_age,omitempty"`                       // 応募者年齢（任意）
	ScoutName       string `gorm:"type:varchar(100)" json:"scout_name"`           // スカウト名スナップショット
	ShopName        string `gorm:"type:varchar(255)" json:"shop_name"`            // 店舗名スナップショット

	// マイルストーン時刻（一度刻まれたら巻き戻さない）
	SubmittedAt   time.Time  `gorm:"not null;index" json:"submitted_at"`   // 応募時刻
	ContactedAt   *time.Time `json:"contacted_at,omitempty"`               // 連絡時刻
	InterviewedAt *time.Time `json:"interviewed_at,omitempty"`             // 面接時刻
	TrialAt       *time.Time `json:"trial_at,omitempty"`                   // 体験入店時刻
	HiredAt       *time.Time `gorm:"index" json:"hired_at,omitempty"`      // 採用時刻
	RegisteredAt  *time.Time `gorm:"index" json:"registered_at,omitempty"` // アプリ登録時刻

	// SB（スカウトバック）関連
	EstimatedMonthlySales *Money     `gorm:"type:decimal(12,2)" json:"estimated_monthly_sales,omitempty"` // 想定月間売上
	SBRate                Money      `gorm:"type:decimal(12,2);default:0" json:"sb_rate"`                 // 適用料率・固定額
	SBAmount              Money      `gorm:"type:decimal(12,2);default:0" json:"sb_amount"`               // SB総額（月額）
	ScoutShareRate        int        `gorm:"not null;default:0" json:"scout_share_rate"`                  // スカウト取り分（%）
	ScoutIncome           Money      `gorm:"type:decimal(12,2);default:0" json:"scout_income"`            // スカウト収入（月額）
	IsSBPaid              bool       `gorm:"not null;default:false;index" json:"is_sb_paid"`              // 支払済フラグ
	SBPaidAt              *time.Time `json:"sb_paid_at,omitempty"`                                        // 支払処理時刻

	CastID    *uint     `gorm:"index" json:"cast_id,omitempty"` // 紐づくキャストID
	Notes     string    `gorm:"type:text" json:"notes"`         // 備考（支払メモ等の追記先）
	CreatedAt time.Time `gorm:"index" json:"created_at"`        // 作成時刻
	UpdatedAt time.Time `json:"updated_at"`                     // 更新時刻

	Link  ScoutLink `gorm:"foreignKey:LinkID" json:"link,omitempty"`   // 発生元リンク
	Scout Scout     `gorm:"foreignKey:ScoutID" json:"scout,omitempty"` // 紹介スカウト
	Shop  *Shop     `gorm:"foreignKey:ShopID" json:"shop,omitempty"`   // 紹介先店舗
	Cast  *Cast     `gorm:"foreignKey:CastID" json:"cast,omitempty"`   // 紐づくキャスト
}

// TableName テーブル名を指定する
func (LinkConversion) TableName() string {
	return "link_conversions"
}
