package service

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"
)

var funnelServiceTestSeq atomic.Int64

type captureEnqueuer struct {
	clickAudits int
	castSyncs   int
}

func (e *captureEnqueuer) EnqueueLinkClickAudit(linkID, clickID uint) error {
	e.clickAudits++
	return nil
}

func (e *captureEnqueuer) EnqueueCastEmploymentSync(conversionID, castID uint) error {
	e.castSyncs++
	return nil
}

func setupFunnelServiceTest(t *testing.T) (*FunnelService, *captureEnqueuer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:funnel_service_test_%d?mode=memory&cache=shared", funnelServiceTestSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Scout{}, &models.Shop{}, &models.ScoutLink{}, &models.LinkClick{}, &models.LinkConversion{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	enqueuer := &captureEnqueuer{}
	svc := NewFunnelService(cfg,
		repository.NewLinkRepository(db),
		repository.NewConversionRepository(db),
		enqueuer,
	)
	return svc, enqueuer, db
}

func createFunnelTestLink(t *testing.T, db *gorm.DB, kind, code string) (*models.Scout, *models.ScoutLink) {
	t.Helper()

	scout := &models.Scout{
		Email:        fmt.Sprintf("funnel_%s@example.com", code),
		PasswordHash: "hash",
		DisplayName:  "ファネル太郎",
		Role:         "scout",
		Status:       "active",
		ShareRate:    70,
	}
	if err := db.Create(scout).Error; err != nil {
		t.Fatalf("create scout: %v", err)
	}

	link := &models.ScoutLink{
		ScoutID:  scout.ID,
		Kind:     kind,
		Code:     code,
		IsActive: true,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("create link: %v", err)
	}
	return scout, link
}

func TestFunnelServiceRecordClick(t *testing.T) {
	svc, enqueuer, db := setupFunnelServiceTest(t)
	_, link := createFunnelTestLink(t, db, constants.LinkKindRecruit, "RCT-CLICK001")

	path, err := svc.RecordClick(ClickInput{
		Code:      "RCT-CLICK001",
		Referrer:  "https://example.com/feed",
		ClientIP:  "203.0.113.5",
		UserAgent: "Mozilla/5.0",
	})
	if err != nil {
		t.Fatalf("RecordClick: %v", err)
	}
	if want := constants.RedirectPathRecruit + "RCT-CLICK001"; path != want {
		t.Errorf("redirect path: got %q want %q", path, want)
	}

	var reloaded models.ScoutLink
	if err := db.First(&reloaded, link.ID).Error; err != nil {
		t.Fatalf("reload link: %v", err)
	}
	if reloaded.ClickCount != 1 {
		t.Errorf("click count: got %d want 1", reloaded.ClickCount)
	}

	var clicks int64
	if err := db.Model(&models.LinkClick{}).Where("link_id = ?", link.ID).Count(&clicks).Error; err != nil {
		t.Fatalf("count clicks: %v", err)
	}
	if clicks != 1 {
		t.Errorf("click log rows: got %d want 1", clicks)
	}
	if enqueuer.clickAudits != 1 {
		t.Errorf("click audit enqueued: got %d want 1", enqueuer.clickAudits)
	}
}

func TestFunnelServiceRecordClickDisabledLink(t *testing.T) {
	svc, _, db := setupFunnelServiceTest(t)
	_, link := createFunnelTestLink(t, db, constants.LinkKindAppInvite, "APP-STOP0001")
	if err := db.Model(link).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable link: %v", err)
	}

	path, err := svc.RecordClick(ClickInput{Code: "APP-STOP0001"})
	if err != nil {
		t.Fatalf("RecordClick: %v", err)
	}
	if path != constants.RedirectPathDisabled {
		t.Errorf("redirect path: got %q want %q", path, constants.RedirectPathDisabled)
	}

	// 停止中はクリックを記録しない
	var reloaded models.ScoutLink
	if err := db.First(&reloaded, link.ID).Error; err != nil {
		t.Fatalf("reload link: %v", err)
	}
	if reloaded.ClickCount != 0 {
		t.Errorf("click count: got %d want 0", reloaded.ClickCount)
	}

	if _, err := svc.RecordClick(ClickInput{Code: "RCT-MISSING1"}); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("missing code: got %v", err)
	}
}

func TestFunnelServiceGetLPDataDefaults(t *testing.T) {
	svc, _, db := setupFunnelServiceTest(t)
	createFunnelTestLink(t, db, constants.LinkKindRecruit, "RCT-LP000001")

	data, err := svc.GetLPData("RCT-LP000001")
	if err != nil {
		t.Fatalf("GetLPData: %v", err)
	}
	if data.Headline != defaultRecruitHeadline {
		t.Errorf("headline: got %q", data.Headline)
	}
	if data.Description != defaultRecruitDescription {
		t.Errorf("description: got %q", data.Description)
	}
	if data.ScoutName != "ファネル太郎" {
		t.Errorf("scout name: got %q", data.ScoutName)
	}
	if data.Template != constants.LPTemplateDefault {
		t.Errorf("template: got %q", data.Template)
	}

	// 見出しを設定済みなら既定文言を使わない
	_, link := createFunnelTestLink(t, db, constants.LinkKindAppInvite, "APP-LP000001")
	if err := db.Model(link).Update("lp_headline", "独自の見出し").Error; err != nil {
		t.Fatalf("set headline: %v", err)
	}
	data, err = svc.GetLPData("APP-LP000001")
	if err != nil {
		t.Fatalf("GetLPData: %v", err)
	}
	if data.Headline != "独自の見出し" {
		t.Errorf("custom headline: got %q", data.Headline)
	}
	if data.Description != defaultAppInviteDescription {
		t.Errorf("app description: got %q", data.Description)
	}

	// リンクに保存されたテンプレート名をそのまま返す
	if err := db.Model(link).Update("lp_template", "premium").Error; err != nil {
		t.Fatalf("set template: %v", err)
	}
	data, err = svc.GetLPData("APP-LP000001")
	if err != nil {
		t.Fatalf("GetLPData: %v", err)
	}
	if data.Template != "premium" {
		t.Errorf("stored template: got %q", data.Template)
	}
}

func TestFunnelServiceSubmit(t *testing.T) {
	svc, _, db := setupFunnelServiceTest(t)
	scout, link := createFunnelTestLink(t, db, constants.LinkKindRecruit, "RCT-SUBMIT01")

	age := 23
	conversion, err := svc.Submit(SubmitInput{
		Code:            "RCT-SUBMIT01",
		ApplicantName:   "応募花子",
		ApplicantLineID: "hanako_line",
		ApplicantPhone:  "090-0000-0000",
		ApplicantAge:    &age,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if conversion.ApplicantLineID != "hanako_line" || conversion.ApplicantPhone != "090-0000-0000" {
		t.Errorf("contact fields: got %q / %q", conversion.ApplicantLineID, conversion.ApplicantPhone)
	}
	if conversion.ApplicantAge == nil || *conversion.ApplicantAge != 23 {
		t.Errorf("age: got %v", conversion.ApplicantAge)
	}

	if conversion.Kind != constants.ConversionKindRecruitApply {
		t.Errorf("kind: got %q", conversion.Kind)
	}
	if conversion.Status != constants.ConversionStatusSubmitted {
		t.Errorf("status: got %q", conversion.Status)
	}
	if conversion.ScoutID != scout.ID {
		t.Errorf("scout id: got %d want %d", conversion.ScoutID, scout.ID)
	}
	if conversion.ScoutName != "ファネル太郎" {
		t.Errorf("scout snapshot: got %q", conversion.ScoutName)
	}
	if conversion.ScoutShareRate != 70 {
		t.Errorf("share rate: got %d want 70", conversion.ScoutShareRate)
	}
	if conversion.SubmittedAt.IsZero() {
		t.Error("submitted_at should be set")
	}

	var reloaded models.ScoutLink
	if err := db.First(&reloaded, link.ID).Error; err != nil {
		t.Fatalf("reload link: %v", err)
	}
	if reloaded.SubmissionCount != 1 {
		t.Errorf("submission count: got %d want 1", reloaded.SubmissionCount)
	}
}

func TestFunnelServiceSubmitRejectsDisabledLink(t *testing.T) {
	svc, _, db := setupFunnelServiceTest(t)
	_, link := createFunnelTestLink(t, db, constants.LinkKindAppInvite, "APP-SUBMIT01")

	if err := db.Model(link).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable link: %v", err)
	}
	if _, err := svc.Submit(SubmitInput{Code: "APP-SUBMIT01", ApplicantName: "誰か"}); !errors.Is(err, ErrLinkDisabled) {
		t.Errorf("inactive link: got %v", err)
	}

	if err := db.Model(link).Updates(map[string]interface{}{"is_active": true, "force_disabled": true}).Error; err != nil {
		t.Fatalf("force disable link: %v", err)
	}
	if _, err := svc.Submit(SubmitInput{Code: "APP-SUBMIT01", ApplicantName: "誰か"}); !errors.Is(err, ErrLinkForceDisabled) {
		t.Errorf("forced link: got %v", err)
	}
}
