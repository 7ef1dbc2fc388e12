package repository

import (
	"time"

	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecruitFunnelCounts 紹介リンクの累計ファネル集計
type RecruitFunnelCounts struct {
	Clicks      int64
	Submitted   int64
	Contacted   int64
	Interviewed int64
	Trial       int64
	Hired       int64
	Active      int64
}

// AppFunnelCounts アプリ招待リンクのコホートファネル集計
type AppFunnelCounts struct {
	Clicks     int64
	Submitted  int64
	Registered int64
	Active     int64
	Churned    int64
}

// ScoutStatsAggregate スカウト別の累計集計
type ScoutStatsAggregate struct {
	Clicks      int64
	Submissions int64
	Hired       int64
	SBEarned    decimal.Decimal
}

// ScoutKindAggregate スカウト別・リンク種別ごとの集計
type ScoutKindAggregate struct {
	Links       int64
	Clicks      int64
	Submissions int64
	Hired       int64           // recruit のみ
	SBEarned    decimal.Decimal // recruit のみ
	ActiveUsers int64           // app_invite のみ
}

// LinkTotals リンク種別ごとの全体集計
type LinkTotals struct {
	Links       int64
	ActiveLinks int64
	Clicks      int64
	Submissions int64
}

// DailyActivityCounts 期間内の新規活動量
type DailyActivityCounts struct {
	NewClicks           int64
	NewSubmissions      int64
	NewAppRegistrations int64
}

// TrackingRepository 集計データアクセスインターフェース
type TrackingRepository interface {
	RecruitFunnel() (RecruitFunnelCounts, error)
	AppFunnel() (AppFunnelCounts, error)
	KindLinkTotals(kind string) (LinkTotals, error)
	OrgSBTotals() (total, unpaid decimal.Decimal, err error)
	ScoutSBTotals(scoutID uint) (total, unpaid decimal.Decimal, err error)
	StatusCounts(scoutID uint, convKind string) (map[string]int64, error)
	TopEarner() (uint, decimal.Decimal, error)
	ScoutStatsBatch(scoutIDs []uint) (map[uint]ScoutStatsAggregate, error)
	ScoutKindStatsBatch(scoutIDs []uint, linkKind string) (map[uint]ScoutKindAggregate, error)
	CountHiresBetween(scoutIDs []uint, from, to time.Time) (map[uint]int64, error)
	DailyActivity(from, to time.Time) (DailyActivityCounts, error)
	ListStatusChanged(from, to time.Time) ([]models.LinkConversion, error)
}

// GormTrackingRepository GORM 実装
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository 集計リポジトリを生成する
func NewTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// RecruitFunnel 紹介ファネルの累計値を集計する。
// 各段はマイルストーン時刻の有無で数えるため、後段のステータス変更で減ることはない。
func (r *GormTrackingRepository) RecruitFunnel() (RecruitFunnelCounts, error) {
	var counts RecruitFunnelCounts

	if err := r.db.Model(&models.ScoutLink{}).
		Where("kind = ?", constants.LinkKindRecruit).
		Select("COALESCE(SUM(click_count), 0)").
		Scan(&counts.Clicks).Error; err != nil {
		return counts, err
	}

	base := func() *gorm.DB {
		return r.db.Model(&models.LinkConversion{}).Where("kind = ?", constants.ConversionKindRecruitApply)
	}
	if err := base().Count(&counts.Submitted).Error; err != nil {
		return counts, err
	}
	if err := base().Where("contacted_at IS NOT NULL").Count(&counts.Contacted).Error; err != nil {
		return counts, err
	}
	if err := base().Where("interviewed_at IS NOT NULL").Count(&counts.Interviewed).Error; err != nil {
		return counts, err
	}
	if err := base().Where("trial_at IS NOT NULL").Count(&counts.Trial).Error; err != nil {
		return counts, err
	}
	if err := base().Where("hired_at IS NOT NULL").Count(&counts.Hired).Error; err != nil {
		return counts, err
	}
	if err := base().Where("status = ?", constants.ConversionStatusActive).Count(&counts.Active).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// AppFunnel アプリ招待ファネルの累計値を集計する
func (r *GormTrackingRepository) AppFunnel() (AppFunnelCounts, error) {
	var counts AppFunnelCounts

	if err := r.db.Model(&models.ScoutLink{}).
		Where("kind = ?", constants.LinkKindAppInvite).
		Select("COALESCE(SUM(click_count), 0)").
		Scan(&counts.Clicks).Error; err != nil {
		return counts, err
	}

	base := func() *gorm.DB {
		return r.db.Model(&models.LinkConversion{}).Where("kind = ?", constants.ConversionKindAppRegister)
	}
	if err := base().Count(&counts.Submitted).Error; err != nil {
		return counts, err
	}
	if err := base().Where("registered_at IS NOT NULL").Count(&counts.Registered).Error; err != nil {
		return counts, err
	}
	if err := base().Where("status = ?", constants.ConversionStatusActive).Count(&counts.Active).Error; err != nil {
		return counts, err
	}
	if err := base().Where("status = ?", constants.ConversionStatusChurned).Count(&counts.Churned).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// KindLinkTotals リンク種別ごとの本数・クリック・応募の全体値を集計する
func (r *GormTrackingRepository) KindLinkTotals(kind string) (LinkTotals, error) {
	var totals LinkTotals

	row := struct {
		Links       int64 `gorm:"column:links"`
		Clicks      int64 `gorm:"column:clicks"`
		Submissions int64 `gorm:"column:submissions"`
	}{}
	if err := r.db.Model(&models.ScoutLink{}).
		Where("kind = ?", kind).
		Select("COUNT(*) AS links, COALESCE(SUM(click_count), 0) AS clicks, COALESCE(SUM(submission_count), 0) AS submissions").
		Scan(&row).Error; err != nil {
		return totals, err
	}
	totals.Links = row.Links
	totals.Clicks = row.Clicks
	totals.Submissions = row.Submissions

	if err := r.db.Model(&models.ScoutLink{}).
		Where("kind = ? AND is_active = ? AND force_disabled = ?", kind, true, false).
		Count(&totals.ActiveLinks).Error; err != nil {
		return totals, err
	}
	return totals, nil
}

// OrgSBTotals 紹介成約の SB 総額と未払い総額を全体で集計する
func (r *GormTrackingRepository) OrgSBTotals() (decimal.Decimal, decimal.Decimal, error) {
	return r.sumSB("sb_amount", 0)
}

// ScoutSBTotals スカウト収入の合計と未払い分を集計する
func (r *GormTrackingRepository) ScoutSBTotals(scoutID uint) (decimal.Decimal, decimal.Decimal, error) {
	return r.sumSB("scout_income", scoutID)
}

func (r *GormTrackingRepository) sumSB(column string, scoutID uint) (decimal.Decimal, decimal.Decimal, error) {
	base := func() *gorm.DB {
		query := r.db.Model(&models.LinkConversion{}).
			Where("kind = ?", constants.ConversionKindRecruitApply)
		if scoutID != 0 {
			query = query.Where("scout_id = ?", scoutID)
		}
		return query
	}

	var total decimal.Decimal
	if err := base().Select("COALESCE(SUM(" + column + "), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	var unpaid decimal.Decimal
	if err := base().Where("is_sb_paid = ?", false).
		Select("COALESCE(SUM(" + column + "), 0)").Scan(&unpaid).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return total.Round(2), unpaid.Round(2), nil
}

// StatusCounts スカウトの応募記録を現在ステータス別に数える
func (r *GormTrackingRepository) StatusCounts(scoutID uint, convKind string) (map[string]int64, error) {
	var rows []struct {
		Status string `gorm:"column:status"`
		Total  int64  `gorm:"column:total"`
	}
	if err := r.db.Model(&models.LinkConversion{}).
		Select("status, COUNT(*) AS total").
		Where("scout_id = ? AND kind = ?", scoutID, convKind).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}

// TopEarner スカウト収入の合計が最も大きいスカウトを返す。成約が無ければ 0 を返す。
func (r *GormTrackingRepository) TopEarner() (uint, decimal.Decimal, error) {
	var row struct {
		ScoutID uint            `gorm:"column:scout_id"`
		Total   decimal.Decimal `gorm:"column:total"`
	}
	err := r.db.Model(&models.LinkConversion{}).
		Select("scout_id, COALESCE(SUM(scout_income), 0) AS total").
		Where("kind = ?", constants.ConversionKindRecruitApply).
		Group("scout_id").
		Order("total DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	return row.ScoutID, row.Total.Round(2), nil
}

// ScoutStatsBatch スカウト別の累計統計を一括集計する
func (r *GormTrackingRepository) ScoutStatsBatch(scoutIDs []uint) (map[uint]ScoutStatsAggregate, error) {
	result := make(map[uint]ScoutStatsAggregate, len(scoutIDs))
	if len(scoutIDs) == 0 {
		return result, nil
	}

	for _, id := range scoutIDs {
		if id == 0 {
			continue
		}
		result[id] = ScoutStatsAggregate{SBEarned: decimal.Zero}
	}

	var linkRows []struct {
		ScoutID     uint  `gorm:"column:scout_id"`
		Clicks      int64 `gorm:"column:clicks"`
		Submissions int64 `gorm:"column:submissions"`
	}
	if err := r.db.Model(&models.ScoutLink{}).
		Select("scout_id, COALESCE(SUM(click_count), 0) AS clicks, COALESCE(SUM(submission_count), 0) AS submissions").
		Where("scout_id IN ?", scoutIDs).
		Group("scout_id").
		Scan(&linkRows).Error; err != nil {
		return nil, err
	}
	for _, row := range linkRows {
		item := result[row.ScoutID]
		item.Clicks = row.Clicks
		item.Submissions = row.Submissions
		result[row.ScoutID] = item
	}

	var hiredRows []struct {
		ScoutID uint  `gorm:"column:scout_id"`
		Total   int64 `gorm:"column:total"`
	}
	if err := r.db.Model(&models.LinkConversion{}).
		Select("scout_id, COUNT(*) AS total").
		Where("scout_id IN ? AND hired_at IS NOT NULL", scoutIDs).
		Group("scout_id").
		Scan(&hiredRows).Error; err != nil {
		return nil, err
	}
	for _, row := range hiredRows {
		item := result[row.ScoutID]
		item.Hired = row.Total
		result[row.ScoutID] = item
	}

	var earnedRows []struct {
		ScoutID uint            `gorm:"column:scout_id"`
		Total   decimal.Decimal `gorm:"column:total"`
	}
	if err := r.db.Model(&models.LinkConversion{}).
		Select("scout_id, COALESCE(SUM(scout_income), 0) AS total").
		Where("scout_id IN ? AND hired_at IS NOT NULL", scoutIDs).
		Group("scout_id").
		Scan(&earnedRows).Error; err != nil {
		return nil, err
	}
	for _, row := range earnedRows {
		item := result[row.ScoutID]
		item.SBEarned = row.Total.Round(2)
		result[row.ScoutID] = item
	}

	return result, nil
}

// ScoutKindStatsBatch リンク種別ごとのスカウト別集計を一括取得する
func (r *GormTrackingRepository) ScoutKindStatsBatch(scoutIDs []uint, linkKind string) (map[uint]ScoutKindAggregate, error) {
	result := make(map[uint]ScoutKindAggregate, len(scoutIDs))
	if len(scoutIDs) == 0 {
		return result, nil
	}

	for _, id := range scoutIDs {
		if id == 0 {
			continue
		}
		result[id] = ScoutKindAggregate{SBEarned: decimal.Zero}
	}

	var linkRows []struct {
		ScoutID     uint  `gorm:"column:scout_id"`
		Links       int64 `gorm:"column:links"`
		Clicks      int64 `gorm:"column:clicks"`
		Submissions int64 `gorm:"column:submissions"`
	}
	if err := r.db.Model(&models.ScoutLink{}).
		Select("scout_id, COUNT(*) AS links, COALESCE(SUM(click_count), 0) AS clicks, COALESCE(SUM(submission_count), 0) AS submissions").
		Where("scout_id IN ? AND kind = ?", scoutIDs, linkKind).
		Group("scout_id").
		Scan(&linkRows).Error; err != nil {
		return nil, err
	}
	for _, row := range linkRows {
		item := result[row.ScoutID]
		item.Links = row.Links
		item.Clicks = row.Clicks
		item.Submissions = row.Submissions
		result[row.ScoutID] = item
	}

	if linkKind == constants.LinkKindRecruit {
		var recruitRows []struct {
			ScoutID uint            `gorm:"column:scout_id"`
			Hired   int64           `gorm:"column:hired"`
			Earned  decimal.Decimal `gorm:"column:earned"`
		}
		if err := r.db.Model(&models.LinkConversion{}).
			Select("scout_id, COUNT(CASE WHEN hired_at IS NOT NULL THEN 1 END) AS hired, COALESCE(SUM(scout_income), 0) AS earned").
			Where("scout_id IN ? AND kind = ?", scoutIDs, constants.ConversionKindRecruitApply).
			Group("scout_id").
			Scan(&recruitRows).Error; err != nil {
			return nil, err
		}
		for _, row := range recruitRows {
			item := result[row.ScoutID]
			item.Hired = row.Hired
			item.SBEarned = row.Earned.Round(2)
			result[row.ScoutID] = item
		}
		return result, nil
	}

	var appRows []struct {
		ScoutID uint  `gorm:"column:scout_id"`
		Total   int64 `gorm:"column:total"`
	}
	if err := r.db.Model(&models.LinkConversion{}).
		Select("scout_id, COUNT(*) AS total").
		Where("scout_id IN ? AND kind = ? AND status = ?", scoutIDs, constants.ConversionKindAppRegister, constants.ConversionStatusActive).
		Group("scout_id").
		Scan(&appRows).Error; err != nil {
		return nil, err
	}
	for _, row := range appRows {
		item := result[row.ScoutID]
		item.ActiveUsers = row.Total
		result[row.ScoutID] = item
	}
	return result, nil
}

// DailyActivity 期間内の新規クリック・応募・アプリ登録数を集計する
func (r *GormTrackingRepository) DailyActivity(from, to time.Time) (DailyActivityCounts, error) {
	var counts DailyActivityCounts

	if err := r.db.Model(&models.LinkClick{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&counts.NewClicks).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.LinkConversion{}).
		Where("submitted_at >= ? AND submitted_at < ?", from, to).
		Count(&counts.NewSubmissions).Error; err != nil {
		return counts, err
	}
	if err := r.db.Model(&models.LinkConversion{}).
		Where("kind = ? AND registered_at >= ? AND registered_at < ?", constants.ConversionKindAppRegister, from, to).
		Count(&counts.NewAppRegistrations).Error; err != nil {
		return counts, err
	}
	return counts, nil
}

// ListStatusChanged 期間内にステータスが動いた応募記録を返す（submitted のままの行は除く）
func (r *GormTrackingRepository) ListStatusChanged(from, to time.Time) ([]models.LinkConversion, error) {
	var conversions []models.LinkConversion
	err := r.db.Model(&models.LinkConversion{}).
		Where("updated_at >= ? AND updated_at < ? AND status <> ?", from, to, constants.ConversionStatusSubmitted).
		Order("updated_at DESC").
		Find(&conversions).Error
	if err != nil {
		return nil, err
	}
	return conversions, nil
}

// CountHiresBetween 期間内の採用数をスカウト別に集計する
func (r *GormTrackingRepository) CountHiresBetween(scoutIDs []uint, from, to time.Time) (map[uint]int64, error) {
	result := make(map[uint]int64, len(scoutIDs))
	if len(scoutIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ScoutID uint  `gorm:"column:scout_id"`
		Total   int64 `gorm:"column:total"`
	}
	if err := r.db.Model(&models.LinkConversion{}).
		Select("scout_id, COUNT(*) AS total").
		Where("scout_id IN ? AND hired_at >= ? AND hired_at < ?", scoutIDs, from, to).
		Group("scout_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ScoutID] = row.Total
	}
	return result, nil
}
