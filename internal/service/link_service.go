package service

import (
	"crypto/rand"
	"encoding/base64"
	"math"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"

	qrcode "github.com/skip2/go-qrcode"
)

const linkCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// LinkService スカウトリンクサービス
type LinkService struct {
	cfg       *config.Config
	linkRepo  repository.LinkRepository
	scoutRepo repository.ScoutRepository
	shopRepo  repository.ShopRepository
}

// NewLinkService リンクサービスを生成する
func NewLinkService(cfg *config.Config, linkRepo repository.LinkRepository, scoutRepo repository.ScoutRepository, shopRepo repository.ShopRepository) *LinkService {
	return &LinkService{
		cfg:       cfg,
		linkRepo:  linkRepo,
		scoutRepo: scoutRepo,
		shopRepo:  shopRepo,
	}
}

// IssueLinkInput リンク発行の入力
type IssueLinkInput struct {
	ScoutID       uint
	Kind          string
	ShopID        *uint
	LPHeadline    string
	LPDescription string
	LPTemplate    string
}

// IssuedLink 発行されたリンク
type IssuedLink struct {
	Link         *models.ScoutLink `json:"link"`
	ShortURL     string            `json:"short_url"`
	QRCodeBase64 string            `json:"qr_code_base64"`
	ShopName     string            `json:"shop_name,omitempty"`
	ScoutName    string            `json:"scout_name"`
}

// IssueLink スカウト紹介リンクを発行する
func (s *LinkService) IssueLink(input IssueLinkInput) (*IssuedLink, error) {
	kind := strings.TrimSpace(input.Kind)
	if kind != constants.LinkKindRecruit && kind != constants.LinkKindAppInvite {
		return nil, ErrLinkKindInvalid
	}

	scout, err := s.scoutRepo.GetByID(input.ScoutID)
	if err != nil {
		return nil, err
	}
	if scout == nil {
		return nil, ErrScoutNotFound
	}

	shopName := ""
	if kind == constants.LinkKindRecruit && input.ShopID != nil {
		shop, err := s.shopRepo.GetByID(*input.ShopID)
		if err != nil {
			return nil, err
		}
		if shop == nil {
			return nil, ErrShopNotFound
		}
		shopName = shop.Name
	}

	code, err := s.generateCode(kind)
	if err != nil {
		return nil, err
	}

	template := strings.TrimSpace(input.LPTemplate)
	if template == "" {
		template = constants.LPTemplateDefault
	}

	link := &models.ScoutLink{
		ScoutID:       input.ScoutID,
		ShopID:        input.ShopID,
		Kind:          kind,
		Code:          code,
		LPHeadline:    strings.TrimSpace(input.LPHeadline),
		LPDescription: strings.TrimSpace(input.LPDescription),
		LPTemplate:    template,
		IsActive:      true,
	}
	if err := s.linkRepo.Create(link); err != nil {
		return nil, err
	}

	shortURL := s.ShortURL(code)
	return &IssuedLink{
		Link:         link,
		ShortURL:     shortURL,
		QRCodeBase64: buildQRCodeDataURI(shortURL),
		ShopName:     shopName,
		ScoutName:    scout.DisplayName,
	}, nil
}

// ShortURL 追跡コードから短縮URLを組み立てる
func (s *LinkService) ShortURL(code string) string {
	base := strings.TrimRight(s.cfg.Link.BaseURL, "/")
	return base + "/r/" + code
}

// generateCode 種別プリフィックス付きの追跡コードを生成する。重複時は再試行する。
func (s *LinkService) generateCode(kind string) (string, error) {
	prefix := constants.LinkCodePrefixRecruit
	if kind == constants.LinkKindAppInvite {
		prefix = constants.LinkCodePrefixAppInvite
	}

	length := s.cfg.Link.CodeLength
	if length <= 0 {
		length = 8
	}
	maxAttempts := s.cfg.Link.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10
	}

	alphabetSize := big.NewInt(int64(len(linkCodeAlphabet)))
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var b strings.Builder
		b.Grow(length)
		for i := 0; i < length; i++ {
			n, err := rand.Int(rand.Reader, alphabetSize)
			if err != nil {
				return "", err
			}
			b.WriteByte(linkCodeAlphabet[n.Int64()])
		}
		code := prefix + "-" + b.String()

		exists, err := s.linkRepo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrLinkCodeExhausted
}

// LinkSummary リンク一覧の1件
type LinkSummary struct {
	ID              uint      `json:"id"`
	Kind            string    `json:"kind"`
	Code            string    `json:"code"`
	ShortURL        string    `json:"short_url"`
	ShopName        string    `json:"shop_name,omitempty"`
	ClickCount      int64     `json:"click_count"`
	SubmissionCount int64     `json:"submission_count"`
	CVR             float64   `json:"cvr"`
	IsActive        bool      `json:"is_active"`
	ForceDisabled   bool      `json:"force_disabled"`
	CreatedAt       time.Time `json:"created_at"`
}

// MyLinks スカウト自身が発行したリンク一覧を返す
func (s *LinkService) MyLinks(scoutID uint, kind string) ([]LinkSummary, error) {
	links, _, err := s.linkRepo.List(repository.LinkListFilter{
		ScoutID: scoutID,
		Kind:    strings.TrimSpace(kind),
	})
	if err != nil {
		return nil, err
	}

	result := make([]LinkSummary, 0, len(links))
	for i := range links {
		link := links[i]
		shopName := ""
		if link.Shop != nil {
			shopName = link.Shop.Name
		}
		result = append(result, LinkSummary{
			ID:              link.ID,
			Kind:            link.Kind,
			Code:            link.Code,
			ShortURL:        s.ShortURL(link.Code),
			ShopName:        shopName,
			ClickCount:      link.ClickCount,
			SubmissionCount: link.SubmissionCount,
			CVR:             ComputeCVR(link.SubmissionCount, link.ClickCount),
			IsActive:        link.IsActive,
			ForceDisabled:   link.ForceDisabled,
			CreatedAt:       link.CreatedAt,
		})
	}
	return result, nil
}

// AdminLinkSummary マスター向けリンク一覧の1件
type AdminLinkSummary struct {
	LinkSummary
	ScoutID   uint   `json:"scout_id"`
	ScoutName string `json:"scout_name"`
}

// ListAll 全スカウトのリンクを横断的に一覧する（マスター用）。
// sort は newest / clicks / cvr。
func (s *LinkService) ListAll(filter repository.LinkListFilter, sortBy string) ([]AdminLinkSummary, int64, error) {
	links, total, err := s.linkRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]AdminLinkSummary, 0, len(links))
	for i := range links {
		link := links[i]
		shopName := ""
		if link.Shop != nil {
			shopName = link.Shop.Name
		}
		result = append(result, AdminLinkSummary{
			LinkSummary: LinkSummary{
				ID:              link.ID,
				Kind:            link.Kind,
				Code:            link.Code,
				ShortURL:        s.ShortURL(link.Code),
				ShopName:        shopName,
				ClickCount:      link.ClickCount,
				SubmissionCount: link.SubmissionCount,
				CVR:             ComputeCVR(link.SubmissionCount, link.ClickCount),
				IsActive:        link.IsActive,
				ForceDisabled:   link.ForceDisabled,
				CreatedAt:       link.CreatedAt,
			},
			ScoutID:   link.ScoutID,
			ScoutName: link.Scout.DisplayName,
		})
	}

	switch sortBy {
	case "clicks":
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].ClickCount > result[j].ClickCount
		})
	case "cvr":
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CVR > result[j].CVR
		})
	default:
		// リポジトリの新着順をそのまま使う
	}
	return result, total, nil
}

// Toggle リンクの有効/無効を反転する。強制停止されたリンクは操作できない。
func (s *LinkService) Toggle(scoutID, linkID uint) (bool, error) {
	link, err := s.linkRepo.GetByID(linkID)
	if err != nil {
		return false, err
	}
	if link == nil || link.ScoutID != scoutID {
		return false, ErrLinkNotFound
	}
	if link.ForceDisabled {
		return false, ErrLinkForceDisabled
	}

	next := !link.IsActive
	if err := s.linkRepo.SetActive(link.ID, next, time.Now()); err != nil {
		return false, err
	}
	return next, nil
}

// ForceToggle マスターによる強制停止/解除。操作者・時刻・理由を記録する。
func (s *LinkService) ForceToggle(operatorID, linkID uint, disabled bool, reason string) (*models.ScoutLink, error) {
	link, err := s.linkRepo.GetByID(linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}

	now := time.Now()
	if err := s.linkRepo.SetForceDisabled(link.ID, disabled, reason, operatorID, now); err != nil {
		return nil, err
	}
	logger.Infow("link_force_toggled",
		"link_id", link.ID,
		"disabled", disabled,
		"operator_id", operatorID,
		"reason", reason,
	)
	return s.linkRepo.GetByID(link.ID)
}

// ComputeCVR 応募数とクリック数から CVR（%）を小数1桁で計算する
func ComputeCVR(submissions, clicks int64) float64 {
	if clicks <= 0 {
		return 0.0
	}
	return math.Round(float64(submissions)/float64(clicks)*1000) / 10
}

// buildQRCodeDataURI 短縮URLの QR コードを data URI で返す。失敗しても発行自体は止めない。
func buildQRCodeDataURI(url string) string {
	png, err := qrcode.Encode(url, qrcode.Low, 256)
	if err != nil {
		logger.Warnw("qr_code_generate_failed", "error", err, "url", url)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
