package models

import (
	"github.com/scouttrack/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultMaster 既定のマスターアカウントを初期化する
func InitDefaultMaster(email, password string) error {
	var count int64
	DB.Model(&Scout{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "master@example.com"
	}
	if password == "" {
		password = "master123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	master := Scout{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "マスター",
		Role:         "admin",
	}

	if err := DB.Create(&master).Error; err != nil {
		return err
	}

	if password == "master123" {
		logger.Warnw("default_master_created_with_default_password", "email", email)
		logger.Warnw("default_master_password_change_required", "email", email)
	} else {
		logger.Warnw("default_master_created", "email", email, "password_hidden", true)
	}

	return nil
}
