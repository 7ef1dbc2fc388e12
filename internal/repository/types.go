package repository

import "time"

// ScoutListFilter スカウト一覧の絞り込み条件
type ScoutListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
	Status   string
}

// ShopListFilter 店舗一覧の絞り込み条件
type ShopListFilter struct {
	Page         int
	PageSize     int
	Keyword      string
	Area         string
	SBType       string
	HiringStatus string
}

// LinkListFilter リンク一覧の絞り込み条件
type LinkListFilter struct {
	Page          int
	PageSize      int
	ScoutID       uint
	ShopID        uint
	Kind          string
	Code          string
	ActiveOnly    bool
	ForceDisabled *bool
}

// ConversionListFilter 応募記録一覧の絞り込み条件
type ConversionListFilter struct {
	Page        int
	PageSize    int
	ScoutID     uint
	LinkID      uint
	ShopID      uint
	Kind        string
	Status      string
	UnpaidOnly  bool
	HiredOnly   bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ClickListFilter クリック記録一覧の絞り込み条件
type ClickListFilter struct {
	Page        int
	PageSize    int
	LinkID      uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AuthzAuditLogListFilter 権限監査ログ一覧の絞り込み条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorScoutID uint
	TargetScoutID   uint
	Action          string
	Role            string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
