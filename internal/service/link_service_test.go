package service

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"
)

var linkServiceTestSeq atomic.Int64

func setupLinkServiceTest(t *testing.T) (*LinkService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:link_service_test_%d?mode=memory&cache=shared", linkServiceTestSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Scout{}, &models.Shop{}, &models.ScoutLink{}, &models.LinkClick{}, &models.LinkConversion{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.Link.BaseURL = "https://st.example.com"
	cfg.Link.CodeLength = 8
	cfg.Link.MaxAttempts = 10

	svc := NewLinkService(cfg,
		repository.NewLinkRepository(db),
		repository.NewScoutRepository(db),
		repository.NewShopRepository(db),
	)
	return svc, db
}

func createLinkTestScout(t *testing.T, db *gorm.DB, email string) *models.Scout {
	t.Helper()
	scout := &models.Scout{
		Email:        email,
		PasswordHash: "hash",
		DisplayName:  "テストスカウト",
		Role:         "scout",
		Status:       "active",
		ShareRate:    70,
	}
	if err := db.Create(scout).Error; err != nil {
		t.Fatalf("create scout: %v", err)
	}
	return scout
}

func TestLinkServiceIssueLinkRecruit(t *testing.T) {
	svc, db := setupLinkServiceTest(t)
	scout := createLinkTestScout(t, db, "issue@example.com")

	shop := &models.Shop{Name: "クラブA", Area: "歌舞伎町", SBType: constants.SBTypeSalesPercentage, SBRate: models.NewMoneyFromInt(20), PaymentCycle: constants.PaymentCycleMonthly, HiringStatus: constants.ShopHiringStatusActive}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}

	issued, err := svc.IssueLink(IssueLinkInput{
		ScoutID:    scout.ID,
		Kind:       constants.LinkKindRecruit,
		ShopID:     &shop.ID,
		LPHeadline: "高待遇で働きませんか",
	})
	if err != nil {
		t.Fatalf("IssueLink: %v", err)
	}

	if !strings.HasPrefix(issued.Link.Code, constants.LinkCodePrefixRecruit+"-") {
		t.Errorf("code prefix: got %q", issued.Link.Code)
	}
	random := strings.TrimPrefix(issued.Link.Code, constants.LinkCodePrefixRecruit+"-")
	if len(random) != 8 {
		t.Errorf("random part length: got %d in %q", len(random), issued.Link.Code)
	}
	for _, r := range random {
		if !strings.ContainsRune(linkCodeAlphabet, r) {
			t.Errorf("unexpected character %q in code %q", r, issued.Link.Code)
		}
	}
	if want := "https://st.example.com/r/" + issued.Link.Code; issued.ShortURL != want {
		t.Errorf("short url: got %q want %q", issued.ShortURL, want)
	}
	if issued.ShopName != "クラブA" {
		t.Errorf("shop name: got %q", issued.ShopName)
	}
	if !strings.HasPrefix(issued.QRCodeBase64, "data:image/png;base64,") {
		t.Errorf("qr code data uri: got prefix %q", issued.QRCodeBase64[:min(32, len(issued.QRCodeBase64))])
	}
	if !issued.Link.IsActive {
		t.Error("new link should be active")
	}
	if issued.Link.LPTemplate != constants.LPTemplateDefault {
		t.Errorf("template should default: got %q", issued.Link.LPTemplate)
	}
}

func TestLinkServiceIssueLinkKeepsTemplate(t *testing.T) {
	svc, db := setupLinkServiceTest(t)
	scout := createLinkTestScout(t, db, "template@example.com")

	issued, err := svc.IssueLink(IssueLinkInput{
		ScoutID:    scout.ID,
		Kind:       constants.LinkKindAppInvite,
		LPTemplate: "premium",
	})
	if err != nil {
		t.Fatalf("IssueLink: %v", err)
	}
	if issued.Link.LPTemplate != "premium" {
		t.Errorf("template: got %q want premium", issued.Link.LPTemplate)
	}
}

func TestLinkServiceIssueLinkValidation(t *testing.T) {
	svc, db := setupLinkServiceTest(t)
	scout := createLinkTestScout(t, db, "validate@example.com")

	if _, err := svc.IssueLink(IssueLinkInput{ScoutID: scout.ID, Kind: "unknown"}); !errors.Is(err, ErrLinkKindInvalid) {
		t.Errorf("invalid kind: got %v", err)
	}
	if _, err := svc.IssueLink(IssueLinkInput{ScoutID: 9999, Kind: constants.LinkKindAppInvite}); !errors.Is(err, ErrScoutNotFound) {
		t.Errorf("missing scout: got %v", err)
	}

	missing := uint(9999)
	if _, err := svc.IssueLink(IssueLinkInput{ScoutID: scout.ID, Kind: constants.LinkKindRecruit, ShopID: &missing}); !errors.Is(err, ErrShopNotFound) {
		t.Errorf("missing shop: got %v", err)
	}
}

func TestLinkServiceToggleFlipsActive(t *testing.T) {
	svc, db := setupLinkServiceTest(t)
	scout := createLinkTestScout(t, db, "toggle@example.com")
	other := createLinkTestScout(t, db, "other@example.com")

	issued, err := svc.IssueLink(IssueLinkInput{ScoutID: scout.ID, Kind: constants.LinkKindAppInvite})
	if err != nil {
		t.Fatalf("IssueLink: %v", err)
	}
	linkID := issued.Link.ID

	active, err := svc.Toggle(scout.ID, linkID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if active {
		t.Error("first toggle should disable the link")
	}
	active, err = svc.Toggle(scout.ID, linkID)
	if err != nil {
		t.Fatalf("Toggle again: %v", err)
	}
	if !active {
		t.Error("second toggle should re-enable the link")
	}

	// 他人のリンクは存在しない扱い
	if _, err := svc.Toggle(other.ID, linkID); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("foreign link toggle: got %v", err)
	}
}

func TestLinkServiceToggleRejectsForceDisabled(t *testing.T) {
	svc, db := setupLinkServiceTest(t)
	scout := createLinkTestScout(t, db, "forced@example.com")
	master := createLinkTestScout(t, db, "master@example.com")

	issued, err := svc.IssueLink(IssueLinkInput{ScoutID: scout.ID, Kind: constants.LinkKindAppInvite})
	if err != nil {
		t.Fatalf("IssueLink: %v", err)
	}

	forced, err := svc.ForceToggle(master.ID, issued.Link.ID, true, "規約違反の疑い")
	if err != nil {
		t.Fatalf("ForceToggle: %v", err)
	}
	if !forced.ForceDisabled {
		t.Fatal("link should be force disabled")
	}
	if forced.ForceDisabledReason != "規約違反の疑い" {
		t.Errorf("reason: got %q", forced.ForceDisabledReason)
	}
	if forced.ForceDisabledBy == nil || *forced.ForceDisabledBy != master.ID {
		t.Errorf("operator: got %v", forced.ForceDisabledBy)
	}

	if _, err := svc.Toggle(scout.ID, issued.Link.ID); !errors.Is(err, ErrLinkForceDisabled) {
		t.Errorf("toggle on forced link: got %v", err)
	}

	restored, err := svc.ForceToggle(master.ID, issued.Link.ID, false, "")
	if err != nil {
		t.Fatalf("ForceToggle release: %v", err)
	}
	if restored.ForceDisabled || restored.ForceDisabledReason != "" || restored.ForceDisabledBy != nil {
		t.Errorf("release should clear force fields: %+v", restored)
	}
}

func TestLinkServiceMyLinksComputesCVR(t *testing.T) {
	svc, db := setupLinkServiceTest(t)
	scout := createLinkTestScout(t, db, "cvr@example.com")

	issued, err := svc.IssueLink(IssueLinkInput{ScoutID: scout.ID, Kind: constants.LinkKindAppInvite})
	if err != nil {
		t.Fatalf("IssueLink: %v", err)
	}
	if err := db.Model(&models.ScoutLink{}).Where("id = ?", issued.Link.ID).
		Updates(map[string]interface{}{"click_count": 3, "submission_count": 1}).Error; err != nil {
		t.Fatalf("seed counters: %v", err)
	}

	links, err := svc.MyLinks(scout.ID, "")
	if err != nil {
		t.Fatalf("MyLinks: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].CVR != 33.3 {
		t.Errorf("cvr: got %v want 33.3", links[0].CVR)
	}
}

func TestComputeCVR(t *testing.T) {
	cases := []struct {
		submissions, clicks int64
		want                float64
	}{
		{0, 0, 0.0},
		{5, 0, 0.0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{10, 10, 100.0},
	}
	for _, c := range cases {
		if got := ComputeCVR(c.submissions, c.clicks); got != c.want {
			t.Errorf("ComputeCVR(%d, %d) = %v, want %v", c.submissions, c.clicks, got, c.want)
		}
	}
}
