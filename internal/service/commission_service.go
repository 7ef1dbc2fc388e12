package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/constants"
	"github.com/scouttrack/internal/models"

	"github.com/shopspring/decimal"
)

// CommissionService SB（スカウトバック）計算サービス
type CommissionService struct {
	cfg *config.Config
}

// NewCommissionService SB計算サービスを生成する
func NewCommissionService(cfg *config.Config) *CommissionService {
	return &CommissionService{cfg: cfg}
}

// CommissionInput SB計算の入力
type CommissionInput struct {
	EstimatedMonthlySales int64           `json:"estimated_monthly_sales"` // 想定月間売上（円）
	SBType                string          `json:"sb_type"`                 // 計算方式
	SBRate                decimal.Decimal `json:"sb_rate"`                 // 料率（%）または固定額（円）
	ScoutShareRate        int             `json:"scout_share_rate"`        // スカウト取り分（%）
	PaymentCycle          string          `json:"payment_cycle"`           // 支払サイクル
}

// RateComparison 参考料率での比較値
type RateComparison struct {
	Rate           int          `json:"rate"`
	ScoutIncome    models.Money `json:"scout_income"`
	AnnualEstimate models.Money `json:"annual_estimate"`
}

// CommissionResult SB計算の結果
type CommissionResult struct {
	SBTotal         models.Money     `json:"sb_total"`         // SB総額（月額）
	ScoutIncome     models.Money     `json:"scout_income"`     // スカウト収入（月額）
	OrgIncome       models.Money     `json:"org_income"`       // 組織取り分（月額）
	PerPayment      models.Money     `json:"per_payment"`      // 1回あたりの支払額
	AnnualEstimate  models.Money     `json:"annual_estimate"`  // スカウト収入（年換算）
	Formula         string           `json:"formula"`          // 計算式の説明
	RateComparisons []RateComparison `json:"rate_comparisons"` // 参考料率比較（売上方式のみ）
}

// Calculate SB を計算する。金額は円単位に丸める。
func (s *CommissionService) Calculate(input CommissionInput) (*CommissionResult, error) {
	result, err := s.calculate(input)
	if err != nil {
		return nil, err
	}

	// 参考料率の比較は売上方式のみ
	if strings.TrimSpace(input.SBType) == constants.SBTypeSalesPercentage {
		for _, rate := range constants.SBReferenceRates {
			comp, err := s.calculate(CommissionInput{
				EstimatedMonthlySales: input.EstimatedMonthlySales,
				SBType:                constants.SBTypeSalesPercentage,
				SBRate:                decimal.NewFromInt(int64(rate)),
				ScoutShareRate:        input.ScoutShareRate,
				PaymentCycle:          input.PaymentCycle,
			})
			if err != nil {
				return nil, err
			}
			result.RateComparisons = append(result.RateComparisons, RateComparison{
				Rate:           rate,
				ScoutIncome:    comp.ScoutIncome,
				AnnualEstimate: comp.AnnualEstimate,
			})
		}
	}

	return result, nil
}

func (s *CommissionService) calculate(input CommissionInput) (*CommissionResult, error) {
	if input.EstimatedMonthlySales < 0 {
		return nil, ErrSalesInvalid
	}
	if input.SBRate.IsNegative() {
		return nil, ErrSBRateInvalid
	}
	if input.ScoutShareRate < 0 || input.ScoutShareRate > 100 {
		return nil, ErrShareRateInvalid
	}
	cycle := strings.TrimSpace(input.PaymentCycle)
	if cycle == "" {
		cycle = constants.PaymentCycleMonthly
	}
	if cycle != constants.PaymentCycleMonthly && cycle != constants.PaymentCycleBimonthly {
		return nil, ErrPaymentCycleInvalid
	}

	hundred := decimal.NewFromInt(100)
	sales := decimal.NewFromInt(input.EstimatedMonthlySales)

	var sbTotal decimal.Decimal
	var formulaBase string
	switch strings.TrimSpace(input.SBType) {
	case constants.SBTypeSalesPercentage:
		sbTotal = sales.Mul(input.SBRate).Div(hundred).Round(0)
		formulaBase = fmt.Sprintf("¥%s × %s%%", formatYen(sales), input.SBRate.String())
	case constants.SBTypeSalaryPercentage:
		// 給与は売上の50%とみなす
		salary := sales.Div(decimal.NewFromInt(2)).Round(0)
		sbTotal = salary.Mul(input.SBRate).Div(hundred).Round(0)
		formulaBase = fmt.Sprintf("¥%s（給与） × %s%%", formatYen(salary), input.SBRate.String())
	case constants.SBTypeFixed:
		sbTotal = input.SBRate.Round(0)
		formulaBase = fmt.Sprintf("固定 ¥%s", formatYen(sbTotal))
	default:
		return nil, ErrSBTypeInvalid
	}

	share := decimal.NewFromInt(int64(input.ScoutShareRate))
	scoutIncome := sbTotal.Mul(share).Div(hundred).Round(0)
	orgIncome := sbTotal.Sub(scoutIncome)

	perPayment := scoutIncome
	if cycle == constants.PaymentCycleBimonthly {
		perPayment = scoutIncome.Div(decimal.NewFromInt(2)).Round(0)
	}
	annual := scoutIncome.Mul(decimal.NewFromInt(12))

	var formula string
	if input.ScoutShareRate == 100 {
		formula = fmt.Sprintf("%s = ¥%s/月", formulaBase, formatYen(scoutIncome))
	} else {
		formula = fmt.Sprintf("%s × %d%% = ¥%s/月", formulaBase, input.ScoutShareRate, formatYen(scoutIncome))
	}

	return &CommissionResult{
		SBTotal:        models.NewMoneyFromDecimal(sbTotal),
		ScoutIncome:    models.NewMoneyFromDecimal(scoutIncome),
		OrgIncome:      models.NewMoneyFromDecimal(orgIncome),
		PerPayment:     models.NewMoneyFromDecimal(perPayment),
		AnnualEstimate: models.NewMoneyFromDecimal(annual),
		Formula:        formula,
	}, nil
}

// ShopSimulation 店舗別シミュレーション結果
type ShopSimulation struct {
	ShopID         uint         `json:"shop_id"`
	ShopName       string       `json:"shop_name"`
	SBType         string       `json:"sb_type"`
	SBRate         models.Money `json:"sb_rate"`
	ScoutIncome    models.Money `json:"scout_income"`
	AnnualEstimate models.Money `json:"annual_estimate"`
	Formula        string       `json:"formula"`
}

// SimulationResult 複数店舗の比較シミュレーション結果
type SimulationResult struct {
	Results    []ShopSimulation `json:"results"`
	BestShop   *ShopSimulation  `json:"best_shop,omitempty"`
	WorstShop  *ShopSimulation  `json:"worst_shop,omitempty"`
	Difference models.Money     `json:"difference"` // 最高と最低のスカウト収入差（月額）
}

// Simulate 複数店舗で同一の売上条件を比較する。
// 支払サイクルの違いは比較に影響させず、月額で揃える。
func (s *CommissionService) Simulate(sales int64, shareRate int, shops []models.Shop) (*SimulationResult, error) {
	if len(shops) == 0 {
		return nil, ErrShopNotFound
	}

	result := &SimulationResult{}
	for i := range shops {
		shop := shops[i]
		calc, err := s.calculate(CommissionInput{
			EstimatedMonthlySales: sales,
			SBType:                shop.SBType,
			SBRate:                shop.SBRate.Decimal,
			ScoutShareRate:        shareRate,
			PaymentCycle:          constants.PaymentCycleMonthly,
		})
		if err != nil {
			return nil, err
		}
		result.Results = append(result.Results, ShopSimulation{
			ShopID:         shop.ID,
			ShopName:       shop.Name,
			SBType:         shop.SBType,
			SBRate:         shop.SBRate,
			ScoutIncome:    calc.ScoutIncome,
			AnnualEstimate: calc.AnnualEstimate,
			Formula:        calc.Formula,
		})
	}

	// スカウト収入の降順に並べる
	sort.SliceStable(result.Results, func(i, j int) bool {
		return result.Results[i].ScoutIncome.GreaterThan(result.Results[j].ScoutIncome.Decimal)
	})

	result.BestShop = &result.Results[0]
	result.WorstShop = &result.Results[len(result.Results)-1]
	diff := result.BestShop.ScoutIncome.Sub(result.WorstShop.ScoutIncome.Decimal)
	result.Difference = models.NewMoneyFromDecimal(diff)

	return result, nil
}

// formatYen 3桁区切りの金額文字列を返す
func formatYen(amount decimal.Decimal) string {
	raw := amount.Round(0).StringFixed(0)
	negative := strings.HasPrefix(raw, "-")
	digits := strings.TrimPrefix(raw, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
