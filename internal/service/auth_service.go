package service

import (
	"context"
	"errors"
	"time"

	"github.com/scouttrack/internal/cache"
	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 認証サービス
type AuthService struct {
	cfg       *config.Config
	scoutRepo repository.ScoutRepository
}

// NewAuthService 認証サービスを生成する
func NewAuthService(cfg *config.Config, scoutRepo repository.ScoutRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		scoutRepo: scoutRepo,
	}
}

// HashPassword bcrypt でパスワードをハッシュ化する
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword パスワードを検証する
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword パスワードポリシーを検証する
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT クレーム
type JWTClaims struct {
	ScoutID      uint   `json:"scout_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT JWT トークンを発行する
func (s *AuthService) GenerateJWT(scout *models.Scout) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		ScoutID:      scout.ID,
		Email:        scout.Email,
		Role:         scout.Role,
		TokenVersion: scout.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT JWT トークンを解析する
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("無効なトークンです")
}

// Login スカウトログイン
func (s *AuthService) Login(email, password string) (*models.Scout, string, time.Time, error) {
	scout, err := s.scoutRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if scout == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(scout.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if scout.Status != constants.ScoutStatusActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	token, expiresAt, err := s.GenerateJWT(scout)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	scout.LastLoginAt = &now
	if err := s.scoutRepo.Update(scout); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetScoutAuthState(context.Background(), cache.BuildScoutAuthState(scout))

	return scout, token, expiresAt, nil
}

// ChangePassword パスワードを変更し、発行済みトークンを全て失効させる
func (s *AuthService) ChangePassword(scoutID uint, oldPassword, newPassword string) error {
	scout, err := s.scoutRepo.GetByID(scoutID)
	if err != nil {
		return err
	}
	if scout == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(scout.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	scout.PasswordHash = hashedPassword
	now := time.Now()
	scout.TokenVersion++
	scout.TokenInvalidBefore = &now
	if err := s.scoutRepo.Update(scout); err != nil {
		return err
	}
	_ = cache.SetScoutAuthState(context.Background(), cache.BuildScoutAuthState(scout))
	return nil
}
