package repository

import (
	"errors"
	"strings"

	"github.com/scouttrack/internal/models"

	"gorm.io/gorm"
)

// ScoutRepository スカウトデータアクセスインターフェース
type ScoutRepository interface {
	GetByEmail(email string) (*models.Scout, error)
	GetByID(id uint) (*models.Scout, error)
	ListByIDs(ids []uint) ([]models.Scout, error)
	Create(scout *models.Scout) error
	Update(scout *models.Scout) error
	List(filter ScoutListFilter) ([]models.Scout, int64, error)
}

// GormScoutRepository GORM 実装
type GormScoutRepository struct {
	db *gorm.DB
}

// NewScoutRepository スカウトリポジトリを生成する
func NewScoutRepository(db *gorm.DB) *GormScoutRepository {
	return &GormScoutRepository{db: db}
}

// GetByEmail メールアドレスでスカウトを取得する
func (r *GormScoutRepository) GetByEmail(email string) (*models.Scout, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, nil
	}
	var scout models.Scout
	if err := r.db.Where("email = ?", normalized).First(&scout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scout, nil
}

// GetByID ID でスカウトを取得する
func (r *GormScoutRepository) GetByID(id uint) (*models.Scout, error) {
	if id == 0 {
		return nil, nil
	}
	var scout models.Scout
	if err := r.db.First(&scout, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scout, nil
}

// ListByIDs スカウトを一括取得する
func (r *GormScoutRepository) ListByIDs(ids []uint) ([]models.Scout, error) {
	if len(ids) == 0 {
		return []models.Scout{}, nil
	}
	var scouts []models.Scout
	if err := r.db.Where("id IN ?", ids).Find(&scouts).Error; err != nil {
		return nil, err
	}
	return scouts, nil
}

// Create スカウトを作成する
func (r *GormScoutRepository) Create(scout *models.Scout) error {
	return r.db.Create(scout).Error
}

// Update スカウトを更新する
func (r *GormScoutRepository) Update(scout *models.Scout) error {
	return r.db.Save(scout).Error
}

// List スカウト一覧を取得する
func (r *GormScoutRepository) List(filter ScoutListFilter) ([]models.Scout, int64, error) {
	query := r.db.Model(&models.Scout{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("email LIKE ? OR display_name LIKE ?", like, like)
	}
	if role := strings.TrimSpace(filter.Role); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var scouts []models.Scout
	if err := query.Order("id DESC").Find(&scouts).Error; err != nil {
		return nil, 0, err
	}
	return scouts, total, nil
}
