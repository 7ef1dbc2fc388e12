package repository

import (
	"errors"
	"strings"

	"github.com/scouttrack/internal/models"

	"gorm.io/gorm"
)

// ShopRepository 店舗データアクセスインターフェース
type ShopRepository interface {
	GetByID(id uint) (*models.Shop, error)
	ListByIDs(ids []uint) ([]models.Shop, error)
	Create(shop *models.Shop) error
	Update(shop *models.Shop) error
	Delete(id uint) error
	List(filter ShopListFilter) ([]models.Shop, int64, error)
}

// GormShopRepository GORM 実装
type GormShopRepository struct {
	db *gorm.DB
}

// NewShopRepository 店舗リポジトリを生成する
func NewShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// GetByID ID で店舗を取得する
func (r *GormShopRepository) GetByID(id uint) (*models.Shop, error) {
	if id == 0 {
		return nil, nil
	}
	var shop models.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shop, nil
}

// ListByIDs 店舗を一括取得する
func (r *GormShopRepository) ListByIDs(ids []uint) ([]models.Shop, error) {
	if len(ids) == 0 {
		return []models.Shop{}, nil
	}
	var shops []models.Shop
	if err := r.db.Where("id IN ?", ids).Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Create 店舗を作成する
func (r *GormShopRepository) Create(shop *models.Shop) error {
	return r.db.Create(shop).Error
}

// Update 店舗を更新する
func (r *GormShopRepository) Update(shop *models.Shop) error {
	return r.db.Save(shop).Error
}

// Delete 店舗を論理削除する
func (r *GormShopRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Shop{}, id).Error
}

// List 店舗一覧を取得する
func (r *GormShopRepository) List(filter ShopListFilter) ([]models.Shop, int64, error) {
	query := r.db.Model(&models.Shop{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR area LIKE ?", like, like)
	}
	if area := strings.TrimSpace(filter.Area); area != "" {
		query = query.Where("area = ?", area)
	}
	if sbType := strings.TrimSpace(filter.SBType); sbType != "" {
		query = query.Where("sb_type = ?", sbType)
	}
	if status := strings.TrimSpace(filter.HiringStatus); status != "" {
		query = query.Where("hiring_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var shops []models.Shop
	if err := query.Order("id DESC").Find(&shops).Error; err != nil {
		return nil, 0, err
	}
	return shops, total, nil
}
