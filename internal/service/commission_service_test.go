package service

import (
	"errors"
	"testing"

	"github.com/scouttrack/internal/config"
	"github.com/scouttrack/internal/models"

	"github.com/shopspring/decimal"
)

func newCommissionServiceForTest() *CommissionService {
	return NewCommissionService(&config.Config{})
}

func assertMoneyEquals(t *testing.T, name string, got models.Money, expected int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(expected)) {
		t.Fatalf("unexpected %s: got=%s expected=%d", name, got, expected)
	}
}

func TestCalculateSalesPercentage(t *testing.T) {
	svc := newCommissionServiceForTest()

	result, err := svc.Calculate(CommissionInput{
		EstimatedMonthlySales: 500000,
		SBType:                "sales_percentage",
		SBRate:                decimal.NewFromInt(20),
		ScoutShareRate:        70,
		PaymentCycle:          "monthly",
	})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	assertMoneyEquals(t, "sb_total", result.SBTotal, 100000)
	assertMoneyEquals(t, "scout_income", result.ScoutIncome, 70000)
	assertMoneyEquals(t, "org_income", result.OrgIncome, 30000)
	assertMoneyEquals(t, "per_payment", result.PerPayment, 70000)
	assertMoneyEquals(t, "annual_estimate", result.AnnualEstimate, 840000)

	if result.Formula != "¥500,000 × 20% × 70% = ¥70,000/月" {
		t.Fatalf("unexpected formula: %s", result.Formula)
	}

	if len(result.RateComparisons) != 4 {
		t.Fatalf("expected 4 rate comparisons, got %d", len(result.RateComparisons))
	}
	first := result.RateComparisons[0]
	if first.Rate != 10 {
		t.Fatalf("unexpected first comparison rate: %d", first.Rate)
	}
	assertMoneyEquals(t, "comparison scout_income", first.ScoutIncome, 35000)
	assertMoneyEquals(t, "comparison annual_estimate", first.AnnualEstimate, 420000)
}

func TestCalculateFixedBimonthly(t *testing.T) {
	svc := newCommissionServiceForTest()

	result, err := svc.Calculate(CommissionInput{
		EstimatedMonthlySales: 500000,
		SBType:                "fixed",
		SBRate:                decimal.NewFromInt(80000),
		ScoutShareRate:        100,
		PaymentCycle:          "bimonthly",
	})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	assertMoneyEquals(t, "sb_total", result.SBTotal, 80000)
	assertMoneyEquals(t, "scout_income", result.ScoutIncome, 80000)
	assertMoneyEquals(t, "org_income", result.OrgIncome, 0)
	assertMoneyEquals(t, "per_payment", result.PerPayment, 40000)
	assertMoneyEquals(t, "annual_estimate", result.AnnualEstimate, 960000)

	// 取り分100%のときは分配率を式に含めない
	if result.Formula != "固定 ¥80,000 = ¥80,000/月" {
		t.Fatalf("unexpected formula: %s", result.Formula)
	}

	// 固定方式に料率比較はない
	if len(result.RateComparisons) != 0 {
		t.Fatalf("fixed type should not have rate comparisons")
	}
}

func TestCalculateSalaryPercentageHalvesSales(t *testing.T) {
	svc := newCommissionServiceForTest()

	result, err := svc.Calculate(CommissionInput{
		EstimatedMonthlySales: 500000,
		SBType:                "salary_percentage",
		SBRate:                decimal.NewFromInt(20),
		ScoutShareRate:        70,
	})
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	// 給与 = 売上の50% = 250,000円、SB総額 = 50,000円
	assertMoneyEquals(t, "sb_total", result.SBTotal, 50000)
	assertMoneyEquals(t, "scout_income", result.ScoutIncome, 35000)
	if len(result.RateComparisons) != 0 {
		t.Fatalf("salary type should not have rate comparisons")
	}
}

func TestCalculateZeroSalesAllowed(t *testing.T) {
	svc := newCommissionServiceForTest()

	result, err := svc.Calculate(CommissionInput{
		EstimatedMonthlySales: 0,
		SBType:                "sales_percentage",
		SBRate:                decimal.NewFromInt(20),
		ScoutShareRate:        70,
	})
	if err != nil {
		t.Fatalf("zero sales should be allowed: %v", err)
	}
	assertMoneyEquals(t, "sb_total", result.SBTotal, 0)
	assertMoneyEquals(t, "scout_income", result.ScoutIncome, 0)
}

func TestCalculateValidation(t *testing.T) {
	svc := newCommissionServiceForTest()

	cases := []struct {
		name     string
		input    CommissionInput
		expected error
	}{
		{
			name: "unknown sb type",
			input: CommissionInput{
				EstimatedMonthlySales: 500000,
				SBType:                "hourly",
				SBRate:                decimal.NewFromInt(20),
				ScoutShareRate:        70,
			},
			expected: ErrSBTypeInvalid,
		},
		{
			name: "negative sales",
			input: CommissionInput{
				EstimatedMonthlySales: -1,
				SBType:                "sales_percentage",
				SBRate:                decimal.NewFromInt(20),
				ScoutShareRate:        70,
			},
			expected: ErrSalesInvalid,
		},
		{
			name: "share over 100",
			input: CommissionInput{
				EstimatedMonthlySales: 500000,
				SBType:                "sales_percentage",
				SBRate:                decimal.NewFromInt(20),
				ScoutShareRate:        101,
			},
			expected: ErrShareRateInvalid,
		},
		{
			name: "negative rate",
			input: CommissionInput{
				EstimatedMonthlySales: 500000,
				SBType:                "sales_percentage",
				SBRate:                decimal.NewFromInt(-5),
				ScoutShareRate:        70,
			},
			expected: ErrSBRateInvalid,
		},
		{
			name: "unknown cycle",
			input: CommissionInput{
				EstimatedMonthlySales: 500000,
				SBType:                "sales_percentage",
				SBRate:                decimal.NewFromInt(20),
				ScoutShareRate:        70,
				PaymentCycle:          "weekly",
			},
			expected: ErrPaymentCycleInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Calculate(tc.input); !errors.Is(err, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestSimulateRanksShopsByScoutIncome(t *testing.T) {
	svc := newCommissionServiceForTest()

	shops := []models.Shop{
		{ID: 1, Name: "クラブA", SBType: "sales_percentage", SBRate: models.NewMoneyFromInt(20), PaymentCycle: "monthly"},
		{ID: 2, Name: "クラブB", SBType: "fixed", SBRate: models.NewMoneyFromInt(30000), PaymentCycle: "bimonthly"},
		{ID: 3, Name: "クラブC", SBType: "salary_percentage", SBRate: models.NewMoneyFromInt(40), PaymentCycle: "monthly"},
	}

	result, err := svc.Simulate(500000, 70, shops)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if len(result.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(result.Results))
	}
	// A: 100,000×70%=70,000 / C: 100,000×70%=70,000 / B: 30,000×70%=21,000
	if result.BestShop == nil || result.BestShop.ShopID != 1 {
		t.Fatalf("unexpected best shop: %+v", result.BestShop)
	}
	if result.WorstShop == nil || result.WorstShop.ShopID != 2 {
		t.Fatalf("unexpected worst shop: %+v", result.WorstShop)
	}
	assertMoneyEquals(t, "difference", result.Difference, 49000)

	// 同額の店舗は入力順が保たれる
	if result.Results[0].ShopID != 1 || result.Results[1].ShopID != 3 {
		t.Fatalf("unexpected ordering: %+v", result.Results)
	}
}

func TestSimulateRequiresShops(t *testing.T) {
	svc := newCommissionServiceForTest()
	if _, err := svc.Simulate(500000, 70, nil); !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
}
