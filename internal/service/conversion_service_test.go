package service

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"
)

var conversionServiceTestSeq atomic.Int64

func setupConversionServiceTest(t *testing.T) (*ConversionService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:conversion_service_test_%d?mode=memory&cache=shared", conversionServiceTestSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Scout{}, &models.Shop{}, &models.ScoutLink{}, &models.LinkConversion{}, &models.Cast{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := NewConversionService(
		repository.NewConversionRepository(db),
		repository.NewShopRepository(db),
		repository.NewCastRepository(db),
		NewCommissionService(&config.Config{}),
		nil,
	)
	return svc, db
}

func createConversionTestRow(t *testing.T, db *gorm.DB, kind string, shopID *uint) *models.LinkConversion {
	t.Helper()

	scout := &models.Scout{
		Email:        fmt.Sprintf("conv_%d@example.com", conversionServiceTestSeq.Add(1)),
		PasswordHash: "hash",
		DisplayName:  "記録係",
		Role:         "scout",
		Status:       "active",
		ShareRate:    70,
	}
	if err := db.Create(scout).Error; err != nil {
		t.Fatalf("create scout: %v", err)
	}
	link := &models.ScoutLink{
		ScoutID:  scout.ID,
		Kind:     constants.LinkKindRecruit,
		Code:     fmt.Sprintf("RCT-CONV%04d", scout.ID),
		IsActive: true,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("create link: %v", err)
	}

	conversion := &models.LinkConversion{
		LinkID:         link.ID,
		ScoutID:        scout.ID,
		ShopID:         shopID,
		Kind:           kind,
		Status:         constants.ConversionStatusSubmitted,
		ApplicantName:  "応募者",
		ScoutShareRate: 70,
	}
	if err := db.Create(conversion).Error; err != nil {
		t.Fatalf("create conversion: %v", err)
	}
	return conversion
}

func TestConversionServiceUpdateStatusStampsMilestone(t *testing.T) {
	svc, db := setupConversionServiceTest(t)
	conversion := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, nil)

	updated, err := svc.UpdateStatus(conversion.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusContacted, Notes: "電話済み"})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != constants.ConversionStatusContacted {
		t.Errorf("status: got %q", updated.Status)
	}
	if updated.ContactedAt == nil {
		t.Fatal("contacted_at should be stamped")
	}
	if updated.Notes != "電話済み" {
		t.Errorf("notes: got %q", updated.Notes)
	}
	first := *updated.ContactedAt

	// ステータスを戻してから再度進めても最初の時刻を保持する
	if _, err := svc.UpdateStatus(conversion.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusSubmitted}); err != nil {
		t.Fatalf("UpdateStatus back: %v", err)
	}
	updated, err = svc.UpdateStatus(conversion.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusContacted})
	if err != nil {
		t.Fatalf("UpdateStatus again: %v", err)
	}
	if updated.ContactedAt == nil || !updated.ContactedAt.Equal(first) {
		t.Errorf("contacted_at should keep first stamp: got %v want %v", updated.ContactedAt, first)
	}
}

func TestConversionServiceUpdateStatusOverwritesNotes(t *testing.T) {
	svc, db := setupConversionServiceTest(t)
	conversion := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, nil)

	if _, err := svc.UpdateStatus(conversion.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusContacted, Notes: "古いメモ"}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	// 備考は常に上書きする。空文字の指定で既存の備考を消せる。
	updated, err := svc.UpdateStatus(conversion.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusInterviewed})
	if err != nil {
		t.Fatalf("UpdateStatus clear: %v", err)
	}
	if updated.Notes != "" {
		t.Errorf("notes should be cleared: got %q", updated.Notes)
	}
}

func TestConversionServiceUpdateStatusValidation(t *testing.T) {
	svc, db := setupConversionServiceTest(t)
	recruit := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, nil)
	app := createConversionTestRow(t, db, constants.ConversionKindAppRegister, nil)

	// 種別に存在しないステータスは拒否する
	if _, err := svc.UpdateStatus(recruit.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusRegistered}); !errors.Is(err, ErrConversionStatusInvalid) {
		t.Errorf("registered on recruit: got %v", err)
	}
	if _, err := svc.UpdateStatus(app.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusHired}); !errors.Is(err, ErrConversionStatusInvalid) {
		t.Errorf("hired on app: got %v", err)
	}

	if _, err := svc.UpdateStatus(99999, 0, UpdateStatusInput{Status: constants.ConversionStatusContacted}); !errors.Is(err, ErrConversionNotFound) {
		t.Errorf("missing conversion: got %v", err)
	}

	// 他スカウトの記録は所有チェックで弾く
	if _, err := svc.UpdateStatus(recruit.ID, recruit.ScoutID+100, UpdateStatusInput{Status: constants.ConversionStatusContacted}); !errors.Is(err, ErrConversionNotFound) {
		t.Errorf("foreign conversion: got %v", err)
	}
}

func TestConversionServiceUpdateStatusHiredComputesSB(t *testing.T) {
	svc, db := setupConversionServiceTest(t)

	shop := &models.Shop{
		Name:         "クラブ月夜",
		SBType:       constants.SBTypeSalesPercentage,
		SBRate:       models.NewMoneyFromInt(20),
		PaymentCycle: constants.PaymentCycleMonthly,
		HiringStatus: constants.ShopHiringStatusActive,
	}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}
	conversion := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, &shop.ID)

	sales := int64(500000)
	updated, err := svc.UpdateStatus(conversion.ID, 0, UpdateStatusInput{
		Status:                constants.ConversionStatusHired,
		EstimatedMonthlySales: &sales,
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if updated.HiredAt == nil {
		t.Fatal("hired_at should be stamped")
	}
	if !updated.SBAmount.Decimal.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("sb_amount: got %s want 100000", updated.SBAmount)
	}
	if !updated.ScoutIncome.Decimal.Equal(decimal.NewFromInt(70000)) {
		t.Errorf("scout_income: got %s want 70000", updated.ScoutIncome)
	}
	if updated.ScoutShareRate != 70 {
		t.Errorf("share rate: got %d", updated.ScoutShareRate)
	}
	if updated.EstimatedMonthlySales == nil || !updated.EstimatedMonthlySales.Decimal.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("estimated sales: got %v", updated.EstimatedMonthlySales)
	}
}

func TestConversionServiceUpdateStatusActiveSyncsCast(t *testing.T) {
	svc, db := setupConversionServiceTest(t)
	conversion := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, nil)

	cast := &models.Cast{Name: "同期対象", Category: constants.CastCategoryProspect}
	if err := db.Create(cast).Error; err != nil {
		t.Fatalf("create cast: %v", err)
	}
	if err := db.Model(&models.LinkConversion{}).Where("id = ?", conversion.ID).Update("cast_id", cast.ID).Error; err != nil {
		t.Fatalf("bind cast: %v", err)
	}

	if _, err := svc.UpdateStatus(conversion.ID, 0, UpdateStatusInput{Status: constants.ConversionStatusActive}); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	var reloaded models.Cast
	if err := db.First(&reloaded, cast.ID).Error; err != nil {
		t.Fatalf("reload cast: %v", err)
	}
	if reloaded.Category != constants.CastCategoryActive {
		t.Errorf("cast category: got %q want %q", reloaded.Category, constants.CastCategoryActive)
	}
	if reloaded.EmployedAt == nil {
		t.Error("employed_at should be set")
	}
}

func TestConversionServiceUpdateSB(t *testing.T) {
	svc, db := setupConversionServiceTest(t)
	conversion := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, nil)

	updated, err := svc.UpdateSB(conversion.ID, SBUpdateInput{
		SBAmount:    120000,
		ScoutIncome: 84000,
		IsSBPaid:    true,
		Notes:       "手動調整",
	})
	if err != nil {
		t.Fatalf("UpdateSB: %v", err)
	}
	if !updated.SBAmount.Decimal.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("sb_amount: got %s", updated.SBAmount)
	}
	if !updated.IsSBPaid || updated.SBPaidAt == nil {
		t.Error("paid flag and timestamp should be set")
	}

	if _, err := svc.UpdateSB(conversion.ID, SBUpdateInput{SBAmount: -1}); !errors.Is(err, ErrSBRateInvalid) {
		t.Errorf("negative amount: got %v", err)
	}
}

func TestConversionServiceBulkMarkPaid(t *testing.T) {
	svc, db := setupConversionServiceTest(t)
	first := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, nil)
	second := createConversionTestRow(t, db, constants.ConversionKindRecruitApply, nil)

	if err := db.Model(&models.LinkConversion{}).Where("id = ?", second.ID).
		Updates(map[string]interface{}{"is_sb_paid": true, "notes": "既存メモ"}).Error; err != nil {
		t.Fatalf("seed paid row: %v", err)
	}

	paid, err := svc.BulkMarkPaid([]uint{first.ID, second.ID}, "8月分支払")
	if err != nil {
		t.Fatalf("BulkMarkPaid: %v", err)
	}
	if paid != 1 {
		t.Errorf("paid count: got %d want 1", paid)
	}

	var reloaded models.LinkConversion
	if err := db.First(&reloaded, first.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsSBPaid || reloaded.SBPaidAt == nil {
		t.Error("first row should be paid")
	}
	if reloaded.Notes != "8月分支払" {
		t.Errorf("notes: got %q", reloaded.Notes)
	}

	// 既に支払済みの行は備考も触らない
	var untouched models.LinkConversion
	if err := db.First(&untouched, second.ID).Error; err != nil {
		t.Fatalf("reload second: %v", err)
	}
	if untouched.Notes != "既存メモ" {
		t.Errorf("second notes: got %q", untouched.Notes)
	}
}
