package service

import (
	"time"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/logger"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"

	"gorm.io/gorm"
)

// TaskEnqueuer 非同期タスク投入インターフェース
type TaskEnqueuer interface {
	EnqueueLinkClickAudit(linkID, clickID uint) error
	EnqueueCastEmploymentSync(conversionID, castID uint) error
}

// LP既定文言
const (
	defaultRecruitHeadline      = "ナイトワーク始めませんか？"
	defaultRecruitDescription   = "月収30万円〜も可能。未経験OK。完全サポートでナイトワークデビュー。"
	defaultAppInviteHeadline    = "指名が増える。売上が見える。"
	defaultAppInviteDescription = "キャストアプリで効率的に働く。売上管理・シフト管理・指名分析。"
)

// FunnelService 訪問者側ファネルサービス（クリック→LP→応募）
type FunnelService struct {
	cfg      *config.Config
	linkRepo repository.LinkRepository
	convRepo repository.ConversionRepository
	enqueuer TaskEnqueuer
}

// NewFunnelService ファネルサービスを生成する
func NewFunnelService(cfg *config.Config, linkRepo repository.LinkRepository, convRepo repository.ConversionRepository, enqueuer TaskEnqueuer) *FunnelService {
	return &FunnelService{
		cfg:      cfg,
		linkRepo: linkRepo,
		convRepo: convRepo,
		enqueuer: enqueuer,
	}
}

// ClickInput クリック記録の入力
type ClickInput struct {
	Code       string
	VisitorKey string
	Referrer   string
	ClientIP   string
	UserAgent  string
}

// RecordClick 短縮URLアクセスを記録し、リダイレクト先パスを返す。
// 停止中のリンクは記録せず案内ページへ回す。
func (s *FunnelService) RecordClick(input ClickInput) (string, error) {
	link, err := s.linkRepo.GetByCode(input.Code)
	if err != nil {
		return "", err
	}
	if link == nil {
		return "", ErrLinkNotFound
	}
	if !link.Usable() {
		return constants.RedirectPathDisabled, nil
	}

	click := &models.LinkClick{
		LinkID:     link.ID,
		VisitorKey: input.VisitorKey,
		Referrer:   input.Referrer,
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
	}
	err = s.linkRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.linkRepo.WithTx(tx)
		if err := repo.IncrementClickCount(link.ID); err != nil {
			return err
		}
		return repo.CreateClick(click)
	})
	if err != nil {
		return "", err
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueLinkClickAudit(link.ID, click.ID); err != nil {
			logger.Warnw("link_click_audit_enqueue_failed", "error", err, "link_id", link.ID)
		}
	}

	switch link.Kind {
	case constants.LinkKindRecruit:
		return constants.RedirectPathRecruit + link.Code, nil
	case constants.LinkKindAppInvite:
		return constants.RedirectPathAppInvite + link.Code, nil
	default:
		return constants.RedirectPathDisabled, nil
	}
}

// LPData ミニLP表示データ
type LPData struct {
	Kind        string `json:"kind"`
	Code        string `json:"code"`
	ScoutName   string `json:"scout_name"`
	ShopName    string `json:"shop_name,omitempty"`
	Headline    string `json:"headline"`
	Description string `json:"description"`
	Template    string `json:"template"`
}

// GetLPData ミニLPに表示するデータを返す。見出し・説明が未設定なら既定文言を使う。
func (s *FunnelService) GetLPData(code string) (*LPData, error) {
	link, err := s.linkRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}

	scoutName := link.Scout.DisplayName
	if scoutName == "" {
		scoutName = "スカウト"
	}
	shopName := ""
	if link.Shop != nil {
		shopName = link.Shop.Name
	}

	headline := link.LPHeadline
	description := link.LPDescription
	if link.Kind == constants.LinkKindRecruit {
		if headline == "" {
			headline = defaultRecruitHeadline
		}
		if description == "" {
			description = defaultRecruitDescription
		}
	} else {
		if headline == "" {
			headline = defaultAppInviteHeadline
		}
		if description == "" {
			description = defaultAppInviteDescription
		}
	}

	template := link.LPTemplate
	if template == "" {
		template = constants.LPTemplateDefault
	}

	return &LPData{
		Kind:        link.Kind,
		Code:        link.Code,
		ScoutName:   scoutName,
		ShopName:    shopName,
		Headline:    headline,
		Description: description,
		Template:    template,
	}, nil
}

// SubmitInput LP応募フォームの入力。名前以外は任意。
type SubmitInput struct {
	Code            string
	ApplicantName   string
	ApplicantLineID string
	ApplicantPhone  string
	ApplicantAge    *int
}

// Submit LPからの応募/登録を受け付け、submitted 状態の応募記録を作成する。
// 停止中のリンクからの送信はエラーにする。
func (s *FunnelService) Submit(input SubmitInput) (*models.LinkConversion, error) {
	link, err := s.linkRepo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}
	if link.ForceDisabled {
		return nil, ErrLinkForceDisabled
	}
	if !link.IsActive {
		return nil, ErrLinkDisabled
	}

	kind := constants.ConversionKindRecruitApply
	if link.Kind == constants.LinkKindAppInvite {
		kind = constants.ConversionKindAppRegister
	}

	shopName := ""
	if link.Shop != nil {
		shopName = link.Shop.Name
	}
	shareRate := link.Scout.ShareRate
	if shareRate <= 0 {
		shareRate = 70
	}

	conversion := &models.LinkConversion{
		LinkID:          link.ID,
		ScoutID:         link.ScoutID,
		ShopID:          link.ShopID,
		Kind:            kind,
		Status:          constants.ConversionStatusSubmitted,
		ApplicantName:   input.ApplicantName,
		ApplicantLineID: input.ApplicantLineID,
		ApplicantPhone:  input.ApplicantPhone,
		ApplicantAge:    input.ApplicantAge,
		ScoutName:       link.Scout.DisplayName,
		ShopName:        shopName,
		SubmittedAt:     time.Now(),
		ScoutShareRate:  shareRate,
	}

	err = s.convRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.linkRepo.WithTx(tx).IncrementSubmissionCount(link.ID); err != nil {
			return err
		}
		return s.convRepo.WithTx(tx).Create(conversion)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("lp_submission_recorded",
		"link_id", link.ID,
		"conversion_id", conversion.ID,
		"kind", kind,
	)
	return conversion, nil
}
