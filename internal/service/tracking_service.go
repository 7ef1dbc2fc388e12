package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"
)

// TrackingService 集計・ランキングサービス
type TrackingService struct {
	cfg          *config.Config
	trackingRepo repository.TrackingRepository
	scoutRepo    repository.ScoutRepository
	linkRepo     repository.LinkRepository
	convRepo     repository.ConversionRepository
}

// NewTrackingService 集計サービスを生成する
func NewTrackingService(cfg *config.Config, trackingRepo repository.TrackingRepository, scoutRepo repository.ScoutRepository, linkRepo repository.LinkRepository, convRepo repository.ConversionRepository) *TrackingService {
	return &TrackingService{
		cfg:          cfg,
		trackingRepo: trackingRepo,
		scoutRepo:    scoutRepo,
		linkRepo:     linkRepo,
		convRepo:     convRepo,
	}
}

// FunnelStats ファネル段別の件数
type FunnelStats struct {
	Submitted   int64 `json:"submitted"`
	Contacted   int64 `json:"contacted,omitempty"`
	Interviewed int64 `json:"interviewed,omitempty"`
	Trial       int64 `json:"trial,omitempty"`
	Hired       int64 `json:"hired,omitempty"`
	Active      int64 `json:"active"`
	Registered  int64 `json:"registered,omitempty"`
	Churned     int64 `json:"churned,omitempty"`
}

// KindStats リンク種別ごとの統計
type KindStats struct {
	TotalLinks       int64         `json:"total_links"`
	ActiveLinks      int64         `json:"active_links"`
	TotalClicks      int64         `json:"total_clicks"`
	TotalSubmissions int64         `json:"total_submissions"`
	OverallCVR       float64       `json:"overall_cvr"`
	Funnel           FunnelStats   `json:"funnel"`
	TotalSBEarned    *models.Money `json:"total_sb_earned,omitempty"`
	UnpaidSB         *models.Money `json:"unpaid_sb,omitempty"`
}

// Overview 組織全体の統計サマリー
type Overview struct {
	Period           string    `json:"period"`
	Recruit          KindStats `json:"recruit"`
	AppInvite        KindStats `json:"app_invite"`
	ActiveScouts     int64     `json:"active_scouts"`
	TopPerformerID   uint      `json:"top_performer_scout_id,omitempty"`
	TopPerformerName string    `json:"top_performer_name,omitempty"`
}

// GetOverview 組織全体の統計サマリーを集計する。
// ファネル段はマイルストーン時刻で数えるため、後段への遷移で前段の値は減らない。
func (s *TrackingService) GetOverview(period string) (*Overview, error) {
	if strings.TrimSpace(period) == "" {
		period = time.Now().Format("2006-01")
	}

	recruitTotals, err := s.trackingRepo.KindLinkTotals(constants.LinkKindRecruit)
	if err != nil {
		return nil, err
	}
	recruitFunnel, err := s.trackingRepo.RecruitFunnel()
	if err != nil {
		return nil, err
	}
	totalSB, unpaidSB, err := s.trackingRepo.OrgSBTotals()
	if err != nil {
		return nil, err
	}

	appTotals, err := s.trackingRepo.KindLinkTotals(constants.LinkKindAppInvite)
	if err != nil {
		return nil, err
	}
	appFunnel, err := s.trackingRepo.AppFunnel()
	if err != nil {
		return nil, err
	}

	_, totalScouts, err := s.scoutRepo.List(repository.ScoutListFilter{Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		Period: period,
		Recruit: KindStats{
			TotalLinks:       recruitTotals.Links,
			ActiveLinks:      recruitTotals.ActiveLinks,
			TotalClicks:      recruitTotals.Clicks,
			TotalSubmissions: recruitTotals.Submissions,
			OverallCVR:       ComputeCVR(recruitTotals.Submissions, recruitTotals.Clicks),
			Funnel: FunnelStats{
				Submitted:   recruitFunnel.Submitted,
				Contacted:   recruitFunnel.Contacted,
				Interviewed: recruitFunnel.Interviewed,
				Trial:       recruitFunnel.Trial,
				Hired:       recruitFunnel.Hired,
				Active:      recruitFunnel.Active,
			},
			TotalSBEarned: moneyPtr(models.NewMoneyFromDecimal(totalSB)),
			UnpaidSB:      moneyPtr(models.NewMoneyFromDecimal(unpaidSB)),
		},
		AppInvite: KindStats{
			TotalLinks:       appTotals.Links,
			ActiveLinks:      appTotals.ActiveLinks,
			TotalClicks:      appTotals.Clicks,
			TotalSubmissions: appTotals.Submissions,
			OverallCVR:       ComputeCVR(appTotals.Submissions, appTotals.Clicks),
			Funnel: FunnelStats{
				Submitted:  appFunnel.Submitted,
				Registered: appFunnel.Registered,
				Active:     appFunnel.Active,
				Churned:    appFunnel.Churned,
			},
		},
		ActiveScouts: totalScouts,
	}

	topID, _, err := s.trackingRepo.TopEarner()
	if err != nil {
		return nil, err
	}
	if topID != 0 {
		top, err := s.scoutRepo.GetByID(topID)
		if err != nil {
			return nil, err
		}
		if top != nil {
			overview.TopPerformerID = top.ID
			overview.TopPerformerName = top.DisplayName
		}
	}
	return overview, nil
}

// RecruitPerformance スカウト別の紹介実績
type RecruitPerformance struct {
	Links       int64        `json:"links"`
	Clicks      int64        `json:"clicks"`
	Submissions int64        `json:"submissions"`
	CVR         float64      `json:"cvr"`
	Hired       int64        `json:"hired"`
	SBEarned    models.Money `json:"sb_earned"`
}

// AppPerformance スカウト別のアプリ招待実績
type AppPerformance struct {
	Links       int64   `json:"links"`
	Clicks      int64   `json:"clicks"`
	Submissions int64   `json:"submissions"`
	CVR         float64 `json:"cvr"`
	ActiveUsers int64   `json:"active_users"`
}

// ScoutPerformance ランキングの1行
type ScoutPerformance struct {
	ScoutID   uint               `json:"scout_id"`
	Name      string             `json:"name"`
	Recruit   RecruitPerformance `json:"recruit"`
	AppInvite AppPerformance     `json:"app_invite"`
	Rank      int                `json:"rank"`
}

// Ranking ランキング結果
type Ranking struct {
	Scouts      []ScoutPerformance `json:"scouts"`
	TotalScouts int64              `json:"total_scouts"`
	Metric      string             `json:"metric"`
}

// GetRanking 全スカウトの成績ランキングを返す
func (s *TrackingService) GetRanking(metric string) (*Ranking, error) {
	metric = strings.TrimSpace(metric)
	if metric == "" {
		metric = constants.RankingMetricSBEarned
	}
	switch metric {
	case constants.RankingMetricSBEarned, constants.RankingMetricSubmissions, constants.RankingMetricCVR:
	default:
		return nil, ErrRankingMetricInvalid
	}

	scouts, total, err := s.scoutRepo.List(repository.ScoutListFilter{})
	if err != nil {
		return nil, err
	}
	// 一覧は新しい順で返るため登録順に並べ直す。安定ソートで同値の順位が登録順に揃う。
	sort.Slice(scouts, func(i, j int) bool { return scouts[i].ID < scouts[j].ID })
	scoutIDs := make([]uint, 0, len(scouts))
	for i := range scouts {
		scoutIDs = append(scoutIDs, scouts[i].ID)
	}

	recruitStats, err := s.trackingRepo.ScoutKindStatsBatch(scoutIDs, constants.LinkKindRecruit)
	if err != nil {
		return nil, err
	}
	appStats, err := s.trackingRepo.ScoutKindStatsBatch(scoutIDs, constants.LinkKindAppInvite)
	if err != nil {
		return nil, err
	}

	rows := make([]ScoutPerformance, 0, len(scouts))
	for i := range scouts {
		scout := scouts[i]
		recruit := recruitStats[scout.ID]
		app := appStats[scout.ID]
		rows = append(rows, ScoutPerformance{
			ScoutID: scout.ID,
			Name:    scout.DisplayName,
			Recruit: RecruitPerformance{
				Links:       recruit.Links,
				Clicks:      recruit.Clicks,
				Submissions: recruit.Submissions,
				CVR:         ComputeCVR(recruit.Submissions, recruit.Clicks),
				Hired:       recruit.Hired,
				SBEarned:    models.NewMoneyFromDecimal(recruit.SBEarned),
			},
			AppInvite: AppPerformance{
				Links:       app.Links,
				Clicks:      app.Clicks,
				Submissions: app.Submissions,
				CVR:         ComputeCVR(app.Submissions, app.Clicks),
				ActiveUsers: app.ActiveUsers,
			},
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		switch metric {
		case constants.RankingMetricSubmissions:
			return rows[i].Recruit.Submissions+rows[i].AppInvite.Submissions >
				rows[j].Recruit.Submissions+rows[j].AppInvite.Submissions
		case constants.RankingMetricCVR:
			return rows[i].Recruit.CVR > rows[j].Recruit.CVR
		default:
			return rows[i].Recruit.SBEarned.Decimal.GreaterThan(rows[j].Recruit.SBEarned.Decimal)
		}
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return &Ranking{Scouts: rows, TotalScouts: total, Metric: metric}, nil
}

// ScoutDashboard スカウト個人のダッシュボード統計
type ScoutDashboard struct {
	Recruit   KindStats `json:"recruit"`
	AppInvite KindStats `json:"app_invite"`
}

// GetScoutDashboard スカウト個人のダッシュボード統計を集計する。
// ファネル段は現在ステータスの所属で数えるため、離脱した応募は前段からも外れる。
func (s *TrackingService) GetScoutDashboard(scoutID uint) (*ScoutDashboard, error) {
	scout, err := s.scoutRepo.GetByID(scoutID)
	if err != nil {
		return nil, err
	}
	if scout == nil {
		return nil, ErrScoutNotFound
	}

	recruitAgg, err := s.trackingRepo.ScoutKindStatsBatch([]uint{scoutID}, constants.LinkKindRecruit)
	if err != nil {
		return nil, err
	}
	appAgg, err := s.trackingRepo.ScoutKindStatsBatch([]uint{scoutID}, constants.LinkKindAppInvite)
	if err != nil {
		return nil, err
	}

	recruitCounts, err := s.trackingRepo.StatusCounts(scoutID, constants.ConversionKindRecruitApply)
	if err != nil {
		return nil, err
	}
	appCounts, err := s.trackingRepo.StatusCounts(scoutID, constants.ConversionKindAppRegister)
	if err != nil {
		return nil, err
	}

	totalSB, unpaidSB, err := s.trackingRepo.ScoutSBTotals(scoutID)
	if err != nil {
		return nil, err
	}

	recruit := recruitAgg[scoutID]
	app := appAgg[scoutID]
	sum := func(counts map[string]int64, statuses ...string) int64 {
		var total int64
		for _, status := range statuses {
			total += counts[status]
		}
		return total
	}

	return &ScoutDashboard{
		Recruit: KindStats{
			TotalLinks:       recruit.Links,
			TotalClicks:      recruit.Clicks,
			TotalSubmissions: recruit.Submissions,
			OverallCVR:       ComputeCVR(recruit.Submissions, recruit.Clicks),
			Funnel: FunnelStats{
				Submitted: sum(recruitCounts,
					constants.ConversionStatusSubmitted, constants.ConversionStatusContacted,
					constants.ConversionStatusInterviewed, constants.ConversionStatusTrial,
					constants.ConversionStatusHired, constants.ConversionStatusActive),
				Contacted: sum(recruitCounts,
					constants.ConversionStatusContacted, constants.ConversionStatusInterviewed,
					constants.ConversionStatusTrial, constants.ConversionStatusHired,
					constants.ConversionStatusActive),
				Interviewed: sum(recruitCounts,
					constants.ConversionStatusInterviewed, constants.ConversionStatusTrial,
					constants.ConversionStatusHired, constants.ConversionStatusActive),
				Trial: sum(recruitCounts,
					constants.ConversionStatusTrial, constants.ConversionStatusHired,
					constants.ConversionStatusActive),
				Hired: sum(recruitCounts,
					constants.ConversionStatusHired, constants.ConversionStatusActive),
				Active: recruitCounts[constants.ConversionStatusActive],
			},
			TotalSBEarned: moneyPtr(models.NewMoneyFromDecimal(totalSB)),
			UnpaidSB:      moneyPtr(models.NewMoneyFromDecimal(unpaidSB)),
		},
		AppInvite: KindStats{
			TotalLinks:       app.Links,
			TotalClicks:      app.Clicks,
			TotalSubmissions: app.Submissions,
			OverallCVR:       ComputeCVR(app.Submissions, app.Clicks),
			Funnel: FunnelStats{
				Submitted: sum(appCounts,
					constants.ConversionStatusSubmitted, constants.ConversionStatusRegistered,
					constants.ConversionStatusActive),
				Registered: sum(appCounts,
					constants.ConversionStatusRegistered, constants.ConversionStatusActive),
				Active:  appCounts[constants.ConversionStatusActive],
				Churned: appCounts[constants.ConversionStatusChurned],
			},
		},
	}, nil
}

// StatusChange 当日のステータス変更
type StatusChange struct {
	ApplicantName string `json:"applicant_name"`
	Status        string `json:"status"`
	ScoutName     string `json:"scout_name"`
}

// Alert 運用アラート
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DailyReport 今日のデータ速報
type DailyReport struct {
	Date                string         `json:"date"`
	NewClicks           int64          `json:"new_clicks"`
	NewSubmissions      int64          `json:"new_submissions"`
	StatusChanges       []StatusChange `json:"status_changes"`
	NewAppRegistrations int64          `json:"new_app_registrations"`
	Alerts              []Alert        `json:"alerts"`
}

// GetDailyReport 当日の活動速報とアラートを生成する
func (s *TrackingService) GetDailyReport(now time.Time) (*DailyReport, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	activity, err := s.trackingRepo.DailyActivity(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	changed, err := s.trackingRepo.ListStatusChanged(dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	changes := make([]StatusChange, 0, len(changed))
	for i := range changed {
		changes = append(changes, StatusChange{
			ApplicantName: changed[i].ApplicantName,
			Status:        changed[i].Status,
			ScoutName:     changed[i].ScoutName,
		})
	}

	alerts, err := s.buildAlerts(dayStart)
	if err != nil {
		return nil, err
	}

	return &DailyReport{
		Date:                dayStart.Format("2006-01-02"),
		NewClicks:           activity.NewClicks,
		NewSubmissions:      activity.NewSubmissions,
		StatusChanges:       changes,
		NewAppRegistrations: activity.NewAppRegistrations,
		Alerts:              alerts,
	}, nil
}

// buildAlerts 低CVRスカウトと好成績スカウトを検出する
func (s *TrackingService) buildAlerts(day time.Time) ([]Alert, error) {
	alerts := make([]Alert, 0)

	scouts, _, err := s.scoutRepo.List(repository.ScoutListFilter{})
	if err != nil {
		return nil, err
	}
	scoutIDs := make([]uint, 0, len(scouts))
	names := make(map[uint]string, len(scouts))
	for i := range scouts {
		scoutIDs = append(scoutIDs, scouts[i].ID)
		names[scouts[i].ID] = scouts[i].DisplayName
	}

	minClicks := int64(s.cfg.Tracking.AlertMinClicks)
	lowCVR := float64(s.cfg.Tracking.AlertLowCVRPercent)
	highHires := int64(s.cfg.Tracking.AlertHighHires)

	recruitStats, err := s.trackingRepo.ScoutKindStatsBatch(scoutIDs, constants.LinkKindRecruit)
	if err != nil {
		return nil, err
	}
	for _, id := range scoutIDs {
		stats := recruitStats[id]
		if stats.Clicks <= minClicks {
			continue
		}
		cvr := ComputeCVR(stats.Submissions, stats.Clicks)
		if cvr < lowCVR {
			alerts = append(alerts, Alert{
				Type:    constants.AlertTypeLowCVR,
				Message: fmt.Sprintf("%sのCVRが%.1f%%。リンクの見直しを推奨", names[id], cvr),
			})
		}
	}

	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	hires, err := s.trackingRepo.CountHiresBetween(scoutIDs, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	for _, id := range scoutIDs {
		if hires[id] >= highHires {
			alerts = append(alerts, Alert{
				Type:    constants.AlertTypeHighPerformer,
				Message: fmt.Sprintf("%sが今月%d人採用。過去最高ペース", names[id], hires[id]),
			})
		}
	}
	return alerts, nil
}

// ScoutDetail 特定スカウトの詳細データ
type ScoutDetail struct {
	ScoutID     uint                    `json:"scout_id"`
	Name        string                  `json:"name"`
	Links       []LinkSummary           `json:"links"`
	Conversions []models.LinkConversion `json:"conversions"`
}

// GetScoutDetail 特定スカウトのリンクと応募記録をまとめて返す
func (s *TrackingService) GetScoutDetail(scoutID uint) (*ScoutDetail, error) {
	scout, err := s.scoutRepo.GetByID(scoutID)
	if err != nil {
		return nil, err
	}
	if scout == nil {
		return nil, ErrScoutNotFound
	}

	links, _, err := s.linkRepo.List(repository.LinkListFilter{ScoutID: scoutID})
	if err != nil {
		return nil, err
	}
	summaries := make([]LinkSummary, 0, len(links))
	base := strings.TrimRight(s.cfg.Link.BaseURL, "/")
	for i := range links {
		link := links[i]
		shopName := ""
		if link.Shop != nil {
			shopName = link.Shop.Name
		}
		summaries = append(summaries, LinkSummary{
			ID:              link.ID,
			Kind:            link.Kind,
			Code:            link.Code,
			ShortURL:        base + "/r/" + link.Code,
			ShopName:        shopName,
			ClickCount:      link.ClickCount,
			SubmissionCount: link.SubmissionCount,
			CVR:             ComputeCVR(link.SubmissionCount, link.ClickCount),
			IsActive:        link.IsActive,
			ForceDisabled:   link.ForceDisabled,
			CreatedAt:       link.CreatedAt,
		})
	}

	conversions, _, err := s.convRepo.List(repository.ConversionListFilter{ScoutID: scoutID})
	if err != nil {
		return nil, err
	}

	return &ScoutDetail{
		ScoutID:     scout.ID,
		Name:        scout.DisplayName,
		Links:       summaries,
		Conversions: conversions,
	}, nil
}

func moneyPtr(m models.Money) *models.Money {
	return &m
}
