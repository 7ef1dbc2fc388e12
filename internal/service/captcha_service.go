package service

import (
	"strings"
	"sync"
	"time"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"

	"github.com/mojocn/base64Captcha"
)

// CaptchaVerifyPayload 認証コード検証の入力
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 画像認証コードチャレンジ
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 認証コードサービス
// シーンごとの有効化判定・チャレンジ生成・検証を一手に引き受ける。
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu                  sync.Mutex
	imageStore          base64Captcha.Store
	imageStoreMaxStore  int
	imageStoreExpireSec int
}

// NewCaptchaService 認証コードサービスを生成する
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

// normalizeCaptchaConfig 設定の欠損値を既定値で埋める
func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != constants.CaptchaProviderImage {
		provider = constants.CaptchaProviderNone
	}
	cfg.Provider = provider

	if cfg.Image.Length <= 0 || cfg.Image.Length > 10 {
		cfg.Image.Length = 4
	}
	if cfg.Image.Width <= 0 {
		cfg.Image.Width = 240
	}
	if cfg.Image.Height <= 0 {
		cfg.Image.Height = 80
	}
	if cfg.Image.NoiseCount < 0 {
		cfg.Image.NoiseCount = 0
	}
	if cfg.Image.ShowLine <= 0 {
		cfg.Image.ShowLine = base64Captcha.OptionShowHollowLine
	}
	if cfg.Image.ExpireSeconds <= 0 {
		cfg.Image.ExpireSeconds = 300
	}
	if cfg.Image.MaxStore <= 0 {
		cfg.Image.MaxStore = 10240
	}
	return cfg
}

// IsSceneEnabled シーンで認証コードが必要か
func (s *CaptchaService) IsSceneEnabled(scene string) bool {
	if s == nil || s.cfg.Provider == constants.CaptchaProviderNone {
		return false
	}
	switch strings.TrimSpace(scene) {
	case constants.CaptchaSceneLogin:
		return s.cfg.Scenes.Login
	default:
		return false
	}
}

// PublicSetting クライアントへ公開する設定
func (s *CaptchaService) PublicSetting() map[string]interface{} {
	return map[string]interface{}{
		"provider": s.cfg.Provider,
		"scenes": map[string]bool{
			constants.CaptchaSceneLogin: s.cfg.Scenes.Login,
		},
	}
}

// GenerateImageChallenge 画像認証コードを生成する
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s.cfg.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}

	store := s.ensureImageStore()
	driver := base64Captcha.NewDriverString(
		s.cfg.Image.Height,
		s.cfg.Image.Width,
		s.cfg.Image.NoiseCount,
		s.cfg.Image.ShowLine,
		s.cfg.Image.Length,
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify シーンに応じて認証コードを検証する
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.IsSceneEnabled(scene) {
		return nil
	}

	switch s.cfg.Provider {
	case constants.CaptchaProviderImage:
		captchaID := strings.TrimSpace(payload.CaptchaID)
		captchaCode := strings.TrimSpace(payload.CaptchaCode)
		if captchaID == "" || captchaCode == "" {
			return ErrCaptchaRequired
		}
		if !s.ensureImageStore().Verify(captchaID, captchaCode, true) {
			return ErrCaptchaInvalid
		}
		return nil
	default:
		return ErrCaptchaConfigInvalid
	}
}

func (s *CaptchaService) ensureImageStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imageStore != nil && s.imageStoreMaxStore == s.cfg.Image.MaxStore && s.imageStoreExpireSec == s.cfg.Image.ExpireSeconds {
		return s.imageStore
	}
	s.imageStore = base64Captcha.NewMemoryStore(s.cfg.Image.MaxStore, time.Duration(s.cfg.Image.ExpireSeconds)*time.Second)
	s.imageStoreMaxStore = s.cfg.Image.MaxStore
	s.imageStoreExpireSec = s.cfg.Image.ExpireSeconds
	return s.imageStore
}
