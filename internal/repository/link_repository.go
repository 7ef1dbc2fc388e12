package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/scouttrack/internal/models"

	"gorm.io/gorm"
)

// LinkRepository スカウトリンクデータアクセスインターフェース
type LinkRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) LinkRepository

	GetByID(id uint) (*models.ScoutLink, error)
	GetByCode(code string) (*models.ScoutLink, error)
	CodeExists(code string) (bool, error)
	Create(link *models.ScoutLink) error
	Update(link *models.ScoutLink) error
	List(filter LinkListFilter) ([]models.ScoutLink, int64, error)

	SetActive(id uint, active bool, updatedAt time.Time) error
	SetForceDisabled(id uint, disabled bool, reason string, operatorID uint, at time.Time) error
	IncrementClickCount(id uint) error
	IncrementSubmissionCount(id uint) error

	CreateClick(click *models.LinkClick) error
	ListClicks(filter ClickListFilter) ([]models.LinkClick, int64, error)
}

// GormLinkRepository GORM 実装
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository リンクリポジトリを生成する
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// WithTx トランザクションを束縛する
func (r *GormLinkRepository) WithTx(tx *gorm.DB) LinkRepository {
	if tx == nil {
		return r
	}
	return &GormLinkRepository{db: tx}
}

// Transaction トランザクションを実行する
func (r *GormLinkRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID ID でリンクを取得する
func (r *GormLinkRepository) GetByID(id uint) (*models.ScoutLink, error) {
	if id == 0 {
		return nil, nil
	}
	var link models.ScoutLink
	if err := r.db.Preload("Shop").First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// GetByCode 追跡コードでリンクを取得する
func (r *GormLinkRepository) GetByCode(code string) (*models.ScoutLink, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	var link models.ScoutLink
	if err := r.db.Preload("Shop").Preload("Scout").Where("code = ?", normalized).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// CodeExists 追跡コードの使用有無を確認する
func (r *GormLinkRepository) CodeExists(code string) (bool, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return false, nil
	}
	var total int64
	if err := r.db.Model(&models.ScoutLink{}).Where("code = ?", normalized).Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// Create リンクを作成する
func (r *GormLinkRepository) Create(link *models.ScoutLink) error {
	return r.db.Create(link).Error
}

// Update リンクを更新する
func (r *GormLinkRepository) Update(link *models.ScoutLink) error {
	return r.db.Save(link).Error
}

// List リンク一覧を取得する
func (r *GormLinkRepository) List(filter LinkListFilter) ([]models.ScoutLink, int64, error) {
	query := r.db.Model(&models.ScoutLink{}).Preload("Shop").Preload("Scout")

	if filter.ScoutID != 0 {
		query = query.Where("scout_id = ?", filter.ScoutID)
	}
	if filter.ShopID != 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if kind := strings.TrimSpace(filter.Kind); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if code := strings.TrimSpace(filter.Code); code != "" {
		query = query.Where("code = ?", strings.ToUpper(code))
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ? AND force_disabled = ?", true, false)
	}
	if filter.ForceDisabled != nil {
		query = query.Where("force_disabled = ?", *filter.ForceDisabled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var links []models.ScoutLink
	if err := query.Order("id DESC").Find(&links).Error; err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// SetActive 有効フラグを更新する
func (r *GormLinkRepository) SetActive(id uint, active bool, updatedAt time.Time) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.ScoutLink{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": updatedAt,
		}).Error
}

// SetForceDisabled 強制停止状態を更新する
func (r *GormLinkRepository) SetForceDisabled(id uint, disabled bool, reason string, operatorID uint, at time.Time) error {
	if id == 0 {
		return nil
	}
	updates := map[string]interface{}{
		"force_disabled": disabled,
		"updated_at":     at,
	}
	if disabled {
		updates["force_disabled_reason"] = strings.TrimSpace(reason)
		updates["force_disabled_by"] = operatorID
		updates["force_disabled_at"] = at
	} else {
		updates["force_disabled_reason"] = ""
		updates["force_disabled_by"] = nil
		updates["force_disabled_at"] = nil
	}
	return r.db.Model(&models.ScoutLink{}).Where("id = ?", id).Updates(updates).Error
}

// IncrementClickCount クリック数を加算する（単一行の原子的更新）
func (r *GormLinkRepository) IncrementClickCount(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.ScoutLink{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

// IncrementSubmissionCount 応募数を加算する（単一行の原子的更新）
func (r *GormLinkRepository) IncrementSubmissionCount(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.ScoutLink{}).
		Where("id = ?", id).
		UpdateColumn("submission_count", gorm.Expr("submission_count + 1")).Error
}

// CreateClick クリック記録を作成する
func (r *GormLinkRepository) CreateClick(click *models.LinkClick) error {
	return r.db.Create(click).Error
}

// ListClicks クリック記録一覧を取得する
func (r *GormLinkRepository) ListClicks(filter ClickListFilter) ([]models.LinkClick, int64, error) {
	query := r.db.Model(&models.LinkClick{})

	if filter.LinkID != 0 {
		query = query.Where("link_id = ?", filter.LinkID)
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

	var clicks []models.LinkClick
	if err := query.Order("id DESC").Find(&clicks).Error; err != nil {
		return nil, 0, err
	}
	return clicks, total, nil
}
