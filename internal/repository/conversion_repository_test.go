package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/scouttrack/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupConversionRepositoryTest(t *testing.T) (*GormConversionRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:conversion_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Scout{},
		&models.Shop{},
		&models.ScoutLink{},
		&models.LinkConversion{},
		&models.Cast{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewConversionRepository(db), db
}

func createTestConversion(t *testing.T, db *gorm.DB) *models.LinkConversion {
	t.Helper()
	conversion := models.LinkConversion{
		LinkID:      1,
		ScoutID:     1,
		Kind:        "recruit_apply",
		Status:      "submitted",
		SubmittedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := db.Create(&conversion).Error; err != nil {
		t.Fatalf("create conversion failed: %v", err)
	}
	return &conversion
}

func TestConversionRepositoryStampMilestoneWriteOnce(t *testing.T) {
	repo, db := setupConversionRepositoryTest(t)
	conversion := createTestConversion(t, db)

	first := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	if err := repo.StampMilestone(conversion.ID, "hired_at", first); err != nil {
		t.Fatalf("stamp milestone failed: %v", err)
	}

	// 二度目の刻印は無視される
	second := first.Add(48 * time.Hour)
	if err := repo.StampMilestone(conversion.ID, "hired_at", second); err != nil {
		t.Fatalf("second stamp failed: %v", err)
	}

	got, err := repo.GetByID(conversion.ID)
	if err != nil {
		t.Fatalf("get conversion failed: %v", err)
	}
	if got.HiredAt == nil {
		t.Fatalf("expected hired_at to be stamped")
	}
	if !got.HiredAt.Equal(first) {
		t.Fatalf("hired_at should keep first stamp: got=%v expected=%v", got.HiredAt, first)
	}
}

func TestConversionRepositoryStampMilestoneRejectsUnknownColumn(t *testing.T) {
	repo, db := setupConversionRepositoryTest(t)
	conversion := createTestConversion(t, db)

	if err := repo.StampMilestone(conversion.ID, "status; DROP TABLE link_conversions", time.Now()); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}

func TestConversionRepositoryMarkPaidIdempotent(t *testing.T) {
	repo, db := setupConversionRepositoryTest(t)
	conversion := createTestConversion(t, db)
	now := time.Now().UTC().Truncate(time.Second)

	changed, err := repo.MarkPaid(conversion.ID, now)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if !changed {
		t.Fatalf("first mark paid should report change")
	}

	changed, err = repo.MarkPaid(conversion.ID, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second mark paid failed: %v", err)
	}
	if changed {
		t.Fatalf("second mark paid should be a no-op")
	}

	got, err := repo.GetByID(conversion.ID)
	if err != nil {
		t.Fatalf("get conversion failed: %v", err)
	}
	if !got.IsSBPaid {
		t.Fatalf("expected is_sb_paid to be set")
	}
	if got.SBPaidAt == nil || !got.SBPaidAt.Equal(now) {
		t.Fatalf("sb_paid_at should keep first payment time: %v", got.SBPaidAt)
	}
}

func TestConversionRepositoryListUnpaidOnly(t *testing.T) {
	repo, db := setupConversionRepositoryTest(t)
	hiredUnpaid := createTestConversion(t, db)
	hiredPaid := createTestConversion(t, db)
	createTestConversion(t, db) // 採用前の記録は対象外

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.StampMilestone(hiredUnpaid.ID, "hired_at", now); err != nil {
		t.Fatalf("stamp failed: %v", err)
	}
	if err := repo.StampMilestone(hiredPaid.ID, "hired_at", now); err != nil {
		t.Fatalf("stamp failed: %v", err)
	}
	if _, err := repo.MarkPaid(hiredPaid.ID, now); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	rows, total, err := repo.List(ConversionListFilter{UnpaidOnly: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("expected single unpaid hired conversion, got total=%d len=%d", total, len(rows))
	}
	if rows[0].ID != hiredUnpaid.ID {
		t.Fatalf("unexpected conversion: %d", rows[0].ID)
	}
}
