package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
)

// Rates are the statutory contribution rates applied to the insurance bases.
type Rates struct {
	SocialInsurance  decimal.Decimal
	MedicalInsurance decimal.Decimal
	HousingFund      decimal.Decimal
}

// TaxBracket is one slice of the progressive monthly income tax table.
// UpTo is the inclusive upper bound of the slice; nil means unbounded.
type TaxBracket struct {
	UpTo *decimal.Decimal
	Rate decimal.Decimal
}

// ParseTaxBrackets parses a bracket table of the form
// "3000:0.03,12000:0.10,...,:0.45". Bounds must be strictly ascending and
// only the last bracket may omit its bound.
func ParseTaxBrackets(table string) ([]TaxBracket, error) {
	parts := strings.Split(table, ",")
	if len(parts) == 0 || table == "" {
		return nil, fmt.Errorf("%w: empty table", payroll.ErrTaxTableInvalid)
	}

	brackets := make([]TaxBracket, 0, len(parts))
	var prev *decimal.Decimal

	for i, part := range parts {
		bound, rateStr, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found {
			return nil, fmt.Errorf("%w: bracket %q has no rate", payroll.ErrTaxTableInvalid, part)
		}

		rate, err := decimal.NewFromString(rateStr)
		if err != nil || rate.IsNegative() {
			return nil, fmt.Errorf("%w: bracket %q has invalid rate", payroll.ErrTaxTableInvalid, part)
		}

		bracket := TaxBracket{Rate: rate}
		if bound != "" {
			upTo, err := decimal.NewFromString(bound)
			if err != nil || !upTo.IsPositive() {
				return nil, fmt.Errorf("%w: bracket %q has invalid bound", payroll.ErrTaxTableInvalid, part)
			}
			if prev != nil && upTo.LessThanOrEqual(*prev) {
				return nil, fmt.Errorf("%w: bounds must be strictly ascending", payroll.ErrTaxTableInvalid)
			}
			bracket.UpTo = &upTo
			prev = &upTo
		} else if i != len(parts)-1 {
			return nil, fmt.Errorf("%w: only the last bracket may be unbounded", payroll.ErrTaxTableInvalid)
		}

		brackets = append(brackets, bracket)
	}

	if brackets[len(brackets)-1].UpTo != nil {
		return nil, fmt.Errorf("%w: last bracket must be unbounded", payroll.ErrTaxTableInvalid)
	}

	return brackets, nil
}

// ProgressiveTax applies the bracket table marginally: each slice of taxable
// income is taxed at its own rate. Negative input yields zero.
func ProgressiveTax(taxable decimal.Decimal, brackets []TaxBracket) decimal.Decimal {
	if !taxable.IsPositive() {
		return decimal.Zero
	}

	tax := decimal.Zero
	lower := decimal.Zero

	for _, b := range brackets {
		upper := taxable
		if b.UpTo != nil && b.UpTo.LessThan(taxable) {
			upper = *b.UpTo
		}
		if upper.LessThanOrEqual(lower) {
			break
		}

		tax = tax.Add(upper.Sub(lower).Mul(b.Rate))
		lower = upper

		if lower.GreaterThanOrEqual(taxable) {
			break
		}
	}

	return tax.Round(2)
}

// Compose builds the payment snapshot for one employee and month from a
// consistent salary config snapshot. Pure and deterministic: the same inputs
// always produce the same payment.
//
// gross = basic + position + performance + bonus + allowances + other income.
// Each insurance deduction is its base (basic salary when unset) times its
// rate. Taxable income is gross minus non-taxable income items, the
// exemption and the insurance deductions; tax is progressive over that.
// net = gross - insurances - tax - other deductions.
func Compose(
	employeeID string,
	paymentMonth time.Time,
	cfg payroll.SalaryConfig,
	rates Rates,
	brackets []TaxBracket,
	defaultExemption decimal.Decimal,
) (payroll.Payment, error) {
	if !cfg.BasicSalary.IsPositive() {
		return payroll.Payment{}, fmt.Errorf("%w: employee %s", payroll.ErrBasicSalaryInvalid, employeeID)
	}

	var (
		allowanceTotal      = decimal.Zero
		otherIncomeTotal    = decimal.Zero
		otherDeductionTotal = decimal.Zero
		nonTaxableIncome    = decimal.Zero
		details             = make([]payroll.PaymentDetail, 0, len(cfg.Items))
	)

	for _, item := range cfg.Items {
		if item.IsBenefit == nil || item.IsDeduction == nil {
			return payroll.Payment{}, fmt.Errorf("%w: config item %s", payroll.ErrItemNotFound, item.ItemID)
		}

		amount := item.Amount.Round(2)

		switch {
		case *item.IsDeduction:
			otherDeductionTotal = otherDeductionTotal.Add(amount)
		case *item.IsBenefit:
			allowanceTotal = allowanceTotal.Add(amount)
		default:
			otherIncomeTotal = otherIncomeTotal.Add(amount)
		}

		if !*item.IsDeduction && item.IsTaxable != nil && !*item.IsTaxable {
			nonTaxableIncome = nonTaxableIncome.Add(amount)
		}

		details = append(details, payroll.PaymentDetail{
			ItemID:   item.ItemID,
			Amount:   amount,
			ItemName: item.ItemName,
			ItemCode: item.ItemCode,
		})
	}

	gross := cfg.BasicSalary.
		Add(cfg.PositionSalary).
		Add(cfg.PerformanceSalary).
		Add(cfg.Bonus).
		Add(allowanceTotal).
		Add(otherIncomeTotal).
		Round(2)

	socialBase := baseOr(cfg.SocialInsuranceBase, cfg.BasicSalary)
	medicalBase := baseOr(cfg.MedicalInsuranceBase, cfg.BasicSalary)
	housingBase := baseOr(cfg.HousingFundBase, cfg.BasicSalary)

	social := socialBase.Mul(rates.SocialInsurance).Round(2)
	medical := medicalBase.Mul(rates.MedicalInsurance).Round(2)
	housing := housingBase.Mul(rates.HousingFund).Round(2)
	insurances := social.Add(medical).Add(housing)

	exemption := cfg.TaxExemption
	if !exemption.IsPositive() {
		exemption = defaultExemption
	}

	taxable := gross.Sub(nonTaxableIncome).Sub(exemption).Sub(insurances)
	tax := ProgressiveTax(taxable, brackets)

	net := gross.Sub(insurances).Sub(tax).Sub(otherDeductionTotal).Round(2)

	return payroll.Payment{
		EmployeeID:                employeeID,
		PaymentMonth:              paymentMonth,
		BasicSalary:               cfg.BasicSalary.Round(2),
		PositionSalary:            cfg.PositionSalary.Round(2),
		PerformanceSalary:         cfg.PerformanceSalary.Round(2),
		Bonus:                     cfg.Bonus.Round(2),
		AllowanceTotal:            allowanceTotal,
		OtherIncomeTotal:          otherIncomeTotal,
		GrossSalary:               gross,
		SocialInsuranceDeduction:  social,
		MedicalInsuranceDeduction: medical,
		HousingFundDeduction:      housing,
		TaxDeduction:              tax,
		OtherDeductionTotal:       otherDeductionTotal,
		NetSalary:                 net,
		Status:                    payroll.PaymentCalculated,
		Details:                   details,
	}, nil
}

// ScaleByScore prorates an amount by a 0-100 score, so a completed
// appraisal scoring 80 pays out 80% of the configured performance salary.
func ScaleByScore(amount, score decimal.Decimal) decimal.Decimal {
	return amount.Mul(score).Div(decimal.NewFromInt(100)).Round(2)
}

func baseOr(base *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if base != nil && base.IsPositive() {
		return *base
	}
	return fallback
}
