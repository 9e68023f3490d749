package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
)

const defaultBracketTable = "3000:0.03,12000:0.10,25000:0.20,35000:0.25,55000:0.30,80000:0.35,:0.45"

func testRates() Rates {
	return Rates{
		SocialInsurance:  decimal.RequireFromString("0.08"),
		MedicalInsurance: decimal.RequireFromString("0.02"),
		HousingFund:      decimal.RequireFromString("0.07"),
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amountPtrStr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func boolPtr(b bool) *bool {
	return &b
}

func configItem(itemID, amt string, benefit, deduction, taxable bool) payroll.SalaryConfigItem {
	return payroll.SalaryConfigItem{
		ItemID:      itemID,
		Amount:      amount(amt),
		IsBenefit:   boolPtr(benefit),
		IsDeduction: boolPtr(deduction),
		IsTaxable:   boolPtr(taxable),
	}
}

func TestParseTaxBrackets(t *testing.T) {
	t.Run("full table", func(t *testing.T) {
		brackets, err := ParseTaxBrackets(defaultBracketTable)
		require.NoError(t, err)
		require.Len(t, brackets, 7)
		assert.Nil(t, brackets[6].UpTo)
		assert.True(t, brackets[0].UpTo.Equal(amount("3000")))
		assert.True(t, brackets[6].Rate.Equal(amount("0.45")))
	})

	t.Run("single unbounded bracket", func(t *testing.T) {
		brackets, err := ParseTaxBrackets(":0.10")
		require.NoError(t, err)
		require.Len(t, brackets, 1)
		assert.Nil(t, brackets[0].UpTo)
	})

	invalid := []struct {
		name  string
		table string
	}{
		{"empty table", ""},
		{"last bracket bounded", "3000:0.03,12000:0.10"},
		{"unbounded bracket not last", ":0.45,3000:0.03"},
		{"bounds not ascending", "12000:0.10,3000:0.03,:0.45"},
		{"negative rate", "3000:-0.03,:0.45"},
		{"missing rate separator", "3000,:0.45"},
		{"garbage bound", "abc:0.03,:0.45"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaxBrackets(tt.table)
			require.ErrorIs(t, err, payroll.ErrTaxTableInvalid)
		})
	}
}

func TestProgressiveTax(t *testing.T) {
	brackets, err := ParseTaxBrackets(defaultBracketTable)
	require.NoError(t, err)

	tests := []struct {
		name     string
		taxable  string
		expected string
	}{
		{"zero taxable", "0", "0"},
		{"negative taxable", "-500", "0"},
		{"inside first bracket", "2000", "60"},
		{"exactly first bound", "3000", "90"},
		{"second bracket marginal", "5000", "290"},
		{"third bracket marginal", "18300", "2250"},
		{"top bracket", "100000", "29840"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressiveTax(amount(tt.taxable), brackets)
			assert.True(t, got.Equal(amount(tt.expected)),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

func TestCompose(t *testing.T) {
	brackets, err := ParseTaxBrackets(defaultBracketTable)
	require.NoError(t, err)
	rates := testRates()
	exemption := amount("5000")
	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	baseConfig := func() payroll.SalaryConfig {
		return payroll.SalaryConfig{
			EmployeeID:        "emp-1",
			BasicSalary:       amount("20000"),
			PositionSalary:    amount("3000"),
			PerformanceSalary: amount("2000"),
			Bonus:             amount("1000"),
			Items: []payroll.SalaryConfigItem{
				configItem("item-transport", "500", true, false, true),
				configItem("item-meal", "300", true, false, false),
				configItem("item-referral", "200", false, false, true),
				configItem("item-union", "100", false, true, true),
			},
		}
	}

	t.Run("full snapshot", func(t *testing.T) {
		payment, err := Compose("emp-1", month, baseConfig(), rates, brackets, exemption)
		require.NoError(t, err)

		assert.Equal(t, "emp-1", payment.EmployeeID)
		assert.Equal(t, payroll.PaymentCalculated, payment.Status)
		assert.True(t, payment.GrossSalary.Equal(amount("27000")), "gross %s", payment.GrossSalary)
		assert.True(t, payment.AllowanceTotal.Equal(amount("800")))
		assert.True(t, payment.OtherIncomeTotal.Equal(amount("200")))
		assert.True(t, payment.SocialInsuranceDeduction.Equal(amount("1600")))
		assert.True(t, payment.MedicalInsuranceDeduction.Equal(amount("400")))
		assert.True(t, payment.HousingFundDeduction.Equal(amount("1400")))
		assert.True(t, payment.TaxDeduction.Equal(amount("2250")), "tax %s", payment.TaxDeduction)
		assert.True(t, payment.OtherDeductionTotal.Equal(amount("100")))
		assert.True(t, payment.NetSalary.Equal(amount("21250")), "net %s", payment.NetSalary)
		assert.Len(t, payment.Details, 4)
	})

	t.Run("net identity holds", func(t *testing.T) {
		payment, err := Compose("emp-1", month, baseConfig(), rates, brackets, exemption)
		require.NoError(t, err)

		insurances := payment.SocialInsuranceDeduction.
			Add(payment.MedicalInsuranceDeduction).
			Add(payment.HousingFundDeduction)
		expected := payment.GrossSalary.
			Sub(insurances).
			Sub(payment.TaxDeduction).
			Sub(payment.OtherDeductionTotal)
		assert.True(t, payment.NetSalary.Equal(expected))
	})

	t.Run("deterministic for equal inputs", func(t *testing.T) {
		first, err := Compose("emp-1", month, baseConfig(), rates, brackets, exemption)
		require.NoError(t, err)
		second, err := Compose("emp-1", month, baseConfig(), rates, brackets, exemption)
		require.NoError(t, err)
		assert.True(t, first.NetSalary.Equal(second.NetSalary))
		assert.True(t, first.TaxDeduction.Equal(second.TaxDeduction))
	})

	t.Run("insurance base override", func(t *testing.T) {
		cfg := baseConfig()
		cfg.SocialInsuranceBase = amountPtrStr("10000")

		payment, err := Compose("emp-1", month, cfg, rates, brackets, exemption)
		require.NoError(t, err)
		assert.True(t, payment.SocialInsuranceDeduction.Equal(amount("800")))
	})

	t.Run("config exemption overrides the default", func(t *testing.T) {
		cfg := baseConfig()
		cfg.TaxExemption = amount("27000")

		payment, err := Compose("emp-1", month, cfg, rates, brackets, exemption)
		require.NoError(t, err)
		assert.True(t, payment.TaxDeduction.IsZero(), "tax %s", payment.TaxDeduction)
	})

	t.Run("basic salary must be positive", func(t *testing.T) {
		cfg := baseConfig()
		cfg.BasicSalary = decimal.Zero

		_, err := Compose("emp-1", month, cfg, rates, brackets, exemption)
		require.ErrorIs(t, err, payroll.ErrBasicSalaryInvalid)
	})

	t.Run("config item missing type flags", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Items[0].IsBenefit = nil

		_, err := Compose("emp-1", month, cfg, rates, brackets, exemption)
		require.ErrorIs(t, err, payroll.ErrItemNotFound)
	})

	t.Run("no items at all", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Items = nil

		payment, err := Compose("emp-1", month, cfg, rates, brackets, exemption)
		require.NoError(t, err)
		assert.True(t, payment.GrossSalary.Equal(amount("26000")))
		assert.True(t, payment.AllowanceTotal.IsZero())
		assert.Empty(t, payment.Details)
	})
}

func TestScaleByScore(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		score    string
		expected string
	}{
		{"partial score prorates", "2000", "80", "1600.00"},
		{"full score pays in full", "2000", "100", "2000.00"},
		{"zero score pays nothing", "2000", "0", "0.00"},
		{"fractional score rounds to cents", "1000", "66.667", "666.67"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleByScore(amount(tt.amount), amount(tt.score))
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}
