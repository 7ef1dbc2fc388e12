package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/scouttrack/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupTrackingRepositoryTest(t *testing.T) (*GormTrackingRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:tracking_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Scout{},
		&models.Shop{},
		&models.ScoutLink{},
		&models.LinkConversion{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewTrackingRepository(db), db
}

func TestTrackingRepositoryRecruitFunnelCountsByMilestone(t *testing.T) {
	repo, db := setupTrackingRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	link := models.ScoutLink{ScoutID: 1, Kind: "recruit", Code: "RCT-FNLAAAAA", IsActive: true, ClickCount: 40}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("create link failed: %v", err)
	}

	contacted := now.Add(-time.Hour)
	hired := now.Add(-time.Minute)
	conversions := []models.LinkConversion{
		{LinkID: link.ID, ScoutID: 1, Kind: "recruit_apply", Status: "submitted", SubmittedAt: now},
		{LinkID: link.ID, ScoutID: 1, Kind: "recruit_apply", Status: "contacted", SubmittedAt: now, ContactedAt: &contacted},
		// 面接をスキップして採用に進んだ記録。面接数には数えない。
		{LinkID: link.ID, ScoutID: 1, Kind: "recruit_apply", Status: "hired", SubmittedAt: now, ContactedAt: &contacted, HiredAt: &hired},
		{LinkID: link.ID, ScoutID: 1, Kind: "app_register", Status: "registered", SubmittedAt: now, RegisteredAt: &now},
	}
	for i := range conversions {
		if err := db.Create(&conversions[i]).Error; err != nil {
			t.Fatalf("create conversion failed: %v", err)
		}
	}

	counts, err := repo.RecruitFunnel()
	if err != nil {
		t.Fatalf("recruit funnel failed: %v", err)
	}
	if counts.Clicks != 40 {
		t.Fatalf("unexpected clicks: %d", counts.Clicks)
	}
	if counts.Submitted != 3 {
		t.Fatalf("unexpected submitted: %d", counts.Submitted)
	}
	if counts.Contacted != 2 {
		t.Fatalf("unexpected contacted: %d", counts.Contacted)
	}
	if counts.Interviewed != 0 {
		t.Fatalf("unexpected interviewed: %d", counts.Interviewed)
	}
	if counts.Hired != 1 {
		t.Fatalf("unexpected hired: %d", counts.Hired)
	}
}

func TestTrackingRepositoryScoutStatsBatch(t *testing.T) {
	repo, db := setupTrackingRepositoryTest(t)
	now := time.Now().UTC().Truncate(time.Second)

	links := []models.ScoutLink{
		{ScoutID: 1, Kind: "recruit", Code: "RCT-STSAAAAA", IsActive: true, ClickCount: 30, SubmissionCount: 3},
		{ScoutID: 1, Kind: "recruit", Code: "RCT-STSBBBBB", IsActive: true, ClickCount: 10, SubmissionCount: 1},
		{ScoutID: 2, Kind: "recruit", Code: "RCT-STSCCCCC", IsActive: true, ClickCount: 5},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			t.Fatalf("create link failed: %v", err)
		}
	}

	hired := now.Add(-time.Hour)
	income := models.NewMoneyFromDecimal(decimal.NewFromInt(70000))
	conversion := models.LinkConversion{
		LinkID: links[0].ID, ScoutID: 1, Kind: "recruit_apply", Status: "hired",
		SubmittedAt: now, HiredAt: &hired, ScoutIncome: income,
	}
	if err := db.Create(&conversion).Error; err != nil {
		t.Fatalf("create conversion failed: %v", err)
	}

	stats, err := repo.ScoutStatsBatch([]uint{1, 2, 3})
	if err != nil {
		t.Fatalf("stats batch failed: %v", err)
	}

	if stats[1].Clicks != 40 || stats[1].Submissions != 4 {
		t.Fatalf("unexpected scout1 link stats: %+v", stats[1])
	}
	if stats[1].Hired != 1 {
		t.Fatalf("unexpected scout1 hired: %d", stats[1].Hired)
	}
	if !stats[1].SBEarned.Equal(decimal.NewFromInt(70000)) {
		t.Fatalf("unexpected scout1 sb earned: %s", stats[1].SBEarned)
	}
	if stats[2].Clicks != 5 || stats[2].Hired != 0 {
		t.Fatalf("unexpected scout2 stats: %+v", stats[2])
	}
	if !stats[3].SBEarned.Equal(decimal.Zero) {
		t.Fatalf("scout without data should have zero aggregate")
	}
}

func TestTrackingRepositoryCountHiresBetween(t *testing.T) {
	repo, db := setupTrackingRepositoryTest(t)

	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	inMonth := monthStart.Add(72 * time.Hour)
	before := monthStart.Add(-time.Hour)

	conversions := []models.LinkConversion{
		{LinkID: 1, ScoutID: 1, Kind: "recruit_apply", Status: "hired", SubmittedAt: before, HiredAt: &inMonth},
		{LinkID: 1, ScoutID: 1, Kind: "recruit_apply", Status: "hired", SubmittedAt: before, HiredAt: &before},
	}
	for i := range conversions {
		if err := db.Create(&conversions[i]).Error; err != nil {
			t.Fatalf("create conversion failed: %v", err)
		}
	}

	counts, err := repo.CountHiresBetween([]uint{1}, monthStart, monthEnd)
	if err != nil {
		t.Fatalf("count hires failed: %v", err)
	}
	if counts[1] != 1 {
		t.Fatalf("unexpected hire count: %d", counts[1])
	}
}
