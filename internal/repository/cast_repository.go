package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/scouttrack/internal/models"

	"gorm.io/gorm"
)

// CastRepository キャストデータアクセスインターフェース
type CastRepository interface {
	GetByID(id uint) (*models.Cast, error)
	Create(cast *models.Cast) error
	Update(cast *models.Cast) error
	UpdateEmployment(id uint, category string, shopID *uint, employedAt time.Time) error
}

// GormCastRepository GORM 実装
type GormCastRepository struct {
	db *gorm.DB
}

// NewCastRepository キャストリポジトリを生成する
func NewCastRepository(db *gorm.DB) *GormCastRepository {
	return &GormCastRepository{db: db}
}

// GetByID ID でキャストを取得する
func (r *GormCastRepository) GetByID(id uint) (*models.Cast, error) {
	if id == 0 {
		return nil, nil
	}
	var cast models.Cast
	if err := r.db.First(&cast, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cast, nil
}

// Create キャストを作成する
func (r *GormCastRepository) Create(cast *models.Cast) error {
	return r.db.Create(cast).Error
}

// Update キャストを更新する
func (r *GormCastRepository) Update(cast *models.Cast) error {
	return r.db.Save(cast).Error
}

// UpdateEmployment 在籍状態を更新する
func (r *GormCastRepository) UpdateEmployment(id uint, category string, shopID *uint, employedAt time.Time) error {
	if id == 0 {
		return nil
	}
	updates := map[string]interface{}{
		"category":    strings.TrimSpace(category),
		"employed_at": employedAt,
		"updated_at":  employedAt,
	}
	if shopID != nil {
		updates["shop_id"] = *shopID
	}
	return r.db.Model(&models.Cast{}).Where("id = ?", id).Updates(updates).Error
}
