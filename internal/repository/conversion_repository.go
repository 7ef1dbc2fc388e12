package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scouttrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 刻印可能なマイルストーン列
var milestoneColumns = map[string]bool{
	"contacted_at":   true,
	"interviewed_at": true,
	"trial_at":       true,
	"hired_at":       true,
	"registered_at":  true,
}

// ConversionRepository 応募記録データアクセスインターフェース
type ConversionRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ConversionRepository

	Create(conversion *models.LinkConversion) error
	GetByID(id uint) (*models.LinkConversion, error)
	GetByIDForUpdate(id uint) (*models.LinkConversion, error)
	Update(conversion *models.LinkConversion) error
	Updates(id uint, updates map[string]interface{}) error
	List(filter ConversionListFilter) ([]models.LinkConversion, int64, error)

	UpdateStatus(id uint, status string, updatedAt time.Time) error
	StampMilestone(id uint, column string, at time.Time) error
	MarkPaid(id uint, at time.Time) (bool, error)
}

// GormConversionRepository GORM 実装
type GormConversionRepository struct {
	db *gorm.DB
}

// NewConversionRepository 応募記録リポジトリを生成する
func NewConversionRepository(db *gorm.DB) *GormConversionRepository {
	return &GormConversionRepository{db: db}
}

// WithTx トランザクションを束縛する
func (r *GormConversionRepository) WithTx(tx *gorm.DB) ConversionRepository {
	if tx == nil {
		return r
	}
	return &GormConversionRepository{db: tx}
}

// Transaction トランザクションを実行する
func (r *GormConversionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 応募記録を作成する
func (r *GormConversionRepository) Create(conversion *models.LinkConversion) error {
	return r.db.Create(conversion).Error
}

// GetByID ID で応募記録を取得する
func (r *GormConversionRepository) GetByID(id uint) (*models.LinkConversion, error) {
	if id == 0 {
		return nil, nil
	}
	var conversion models.LinkConversion
	if err := r.db.Preload("Link").Preload("Scout").Preload("Shop").First(&conversion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversion, nil
}

// GetByIDForUpdate ID で応募記録をロック付き取得する
func (r *GormConversionRepository) GetByIDForUpdate(id uint) (*models.LinkConversion, error) {
	if id == 0 {
		return nil, nil
	}
	var conversion models.LinkConversion
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&conversion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversion, nil
}

// Update 応募記録を更新する
func (r *GormConversionRepository) Update(conversion *models.LinkConversion) error {
	return r.db.Save(conversion).Error
}

// Updates 指定フィールドのみ更新する
func (r *GormConversionRepository) Updates(id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.LinkConversion{}).Where("id = ?", id).Updates(updates).Error
}

// List 応募記録一覧を取得する
func (r *GormConversionRepository) List(filter ConversionListFilter) ([]models.LinkConversion, int64, error) {
	query := r.db.Model(&models.LinkConversion{}).Preload("Link").Preload("Shop")

	if filter.ScoutID != 0 {
		query = query.Where("scout_id = ?", filter.ScoutID)
	}
	if filter.LinkID != 0 {
		query = query.Where("link_id = ?", filter.LinkID)
	}
	if filter.ShopID != 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if kind := strings.TrimSpace(filter.Kind); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.UnpaidOnly {
		query = query.Where("is_sb_paid = ? AND hired_at IS NOT NULL", false)
	}
	if filter.HiredOnly {
		query = query.Where("hired_at IS NOT NULL")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var conversions []models.LinkConversion
	if err := query.Order("id DESC").Find(&conversions).Error; err != nil {
		return nil, 0, err
	}
	return conversions, total, nil
}

// UpdateStatus 現在ステータスを更新する
func (r *GormConversionRepository) UpdateStatus(id uint, status string, updatedAt time.Time) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.LinkConversion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     strings.TrimSpace(status),
			"updated_at": updatedAt,
		}).Error
}

// StampMilestone マイルストーン時刻を刻む。既に刻まれている場合は何もしない。
func (r *GormConversionRepository) StampMilestone(id uint, column string, at time.Time) error {
	if id == 0 {
		return nil
	}
	if !milestoneColumns[column] {
		return fmt.Errorf("unknown milestone column: %s", column)
	}
	return r.db.Model(&models.LinkConversion{}).
		Where("id = ? AND "+column+" IS NULL", id).
		UpdateColumn(column, at).Error
}

// MarkPaid 支払済みにする。未払いの行だけを対象とし、処理有無を返す。
func (r *GormConversionRepository) MarkPaid(id uint, at time.Time) (bool, error) {
	if id == 0 {
		return false, nil
	}
	result := r.db.Model(&models.LinkConversion{}).
		Where("id = ? AND is_sb_paid = ?", id, false).
		Updates(map[string]interface{}{
			"is_sb_paid": true,
			"sb_paid_at": at,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
