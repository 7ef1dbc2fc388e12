package service

import (
	"strings"

	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"
	"github.com/scouttrack/internal/repository"

	"github.com/shopspring/decimal"
)

// ShopService 店舗管理サービス
type ShopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService 店舗サービスを生成する
func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

// ShopInput 店舗の作成・更新入力
type ShopInput struct {
	Name         string
	Area         string
	SBType       string
	SBRate       decimal.Decimal
	PaymentCycle string
	HiringStatus string
	Notes        string
}

// ShopRate スカウト向けの店舗料率ビュー
type ShopRate struct {
	ShopID       uint            `json:"shop_id"`
	ShopName     string          `json:"shop_name"`
	Area         string          `json:"area"`
	SBType       string          `json:"sb_type"`
	SBRate       decimal.Decimal `json:"sb_rate"`
	PaymentCycle string          `json:"payment_cycle"`
	HiringStatus string          `json:"hiring_status"`
}

// List 店舗一覧を取得する
func (s *ShopService) List(filter repository.ShopListFilter) ([]models.Shop, int64, error) {
	return s.shopRepo.List(filter)
}

// Get ID で店舗を取得する
func (s *ShopService) Get(id uint) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// Create 店舗を登録する
func (s *ShopService) Create(input ShopInput) (*models.Shop, error) {
	shop := &models.Shop{}
	if err := applyShopInput(shop, input); err != nil {
		return nil, err
	}
	if err := s.shopRepo.Create(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// Update 店舗を更新する
func (s *ShopService) Update(id uint, input ShopInput) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	if err := applyShopInput(shop, input); err != nil {
		return nil, err
	}
	if err := s.shopRepo.Update(shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// Delete 店舗を論理削除する
func (s *ShopService) Delete(id uint) error {
	shop, err := s.shopRepo.GetByID(id)
	if err != nil {
		return err
	}
	if shop == nil {
		return ErrShopNotFound
	}
	return s.shopRepo.Delete(id)
}

// ShopRates 採用中店舗の料率一覧を返す。スカウトが紹介先を比較するための閲覧用。
func (s *ShopService) ShopRates() ([]ShopRate, error) {
	shops, _, err := s.shopRepo.List(repository.ShopListFilter{})
	if err != nil {
		return nil, err
	}
	rates := make([]ShopRate, 0, len(shops))
	for _, shop := range shops {
		if shop.HiringStatus == constants.ShopHiringStatusClosed {
			continue
		}
		rates = append(rates, ShopRate{
			ShopID:       shop.ID,
			ShopName:     shop.Name,
			Area:         shop.Area,
			SBType:       shop.SBType,
			SBRate:       shop.SBRate.Decimal,
			PaymentCycle: shop.PaymentCycle,
			HiringStatus: shop.HiringStatus,
		})
	}
	return rates, nil
}

func applyShopInput(shop *models.Shop, input ShopInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrShopNameRequired
	}
	switch input.SBType {
	case constants.SBTypeSalesPercentage, constants.SBTypeSalaryPercentage, constants.SBTypeFixed:
	default:
		return ErrSBTypeInvalid
	}
	if input.SBRate.IsNegative() {
		return ErrSBRateInvalid
	}
	cycle := input.PaymentCycle
	if cycle == "" {
		cycle = constants.PaymentCycleMonthly
	}
	switch cycle {
	case constants.PaymentCycleMonthly, constants.PaymentCycleBimonthly:
	default:
		return ErrPaymentCycleInvalid
	}
	status := input.HiringStatus
	if status == "" {
		status = constants.ShopHiringStatusActive
	}
	switch status {
	case constants.ShopHiringStatusActive, constants.ShopHiringStatusLimited, constants.ShopHiringStatusClosed:
	default:
		return ErrShopHiringStatusInvalid
	}

	shop.Name = name
	shop.Area = strings.TrimSpace(input.Area)
	shop.SBType = input.SBType
	shop.SBRate = models.NewMoneyFromDecimal(input.SBRate)
	shop.PaymentCycle = cycle
	shop.HiringStatus = status
	shop.Notes = strings.TrimSpace(input.Notes)
	return nil
}
