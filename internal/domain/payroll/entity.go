package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryItemType classifies salary items. The three flags drive how the
// composer buckets an item: is_deduction wins, then is_benefit marks an
// allowance, anything else counts as other income.
type SalaryItemType struct {
	ID          string
	Name        string
	Code        string
	IsTaxable   bool
	IsBenefit   bool
	IsDeduction bool
	Description *string
}

type SalaryItem struct {
	ID            string
	Name          string
	Code          string
	ItemTypeID    string
	DefaultAmount decimal.Decimal
	IsActive      bool
	Description   *string

	// Joined fields
	TypeCode    *string
	IsBenefit   *bool
	IsDeduction *bool
	IsTaxable   *bool
}

// SalaryStructure is a reusable ordered template of salary items used as the
// default when configuring a new employee.
type SalaryStructure struct {
	ID          string
	Name        string
	Description *string
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Details []SalaryStructureDetail
}

type SalaryStructureDetail struct {
	ID          string
	StructureID string
	ItemID      string
	Amount      decimal.Decimal
	SortOrder   int
	Formula     *string
	IsFixed     bool

	// Joined fields
	ItemName    *string
	ItemCode    *string
	IsBenefit   *bool
	IsDeduction *bool
}

// SalaryConfig is the one-to-one salary configuration of an employee.
type SalaryConfig struct {
	ID                   string
	EmployeeID           string
	StructureID          *string
	BasicSalary          decimal.Decimal
	PositionSalary       decimal.Decimal
	PerformanceSalary    decimal.Decimal
	Bonus                decimal.Decimal
	SocialInsuranceBase  *decimal.Decimal
	MedicalInsuranceBase *decimal.Decimal
	HousingFundBase      *decimal.Decimal
	TaxExemption         decimal.Decimal
	EffectiveDate        time.Time
	Note                 *string

	Items []SalaryConfigItem
}

// SalaryConfigItem overrides a structure item's amount for one employee.
type SalaryConfigItem struct {
	ID            string
	ConfigID      string
	ItemID        string
	Amount        decimal.Decimal
	IsFixed       bool
	EffectiveDate time.Time

	// Joined fields
	ItemName    *string
	ItemCode    *string
	IsBenefit   *bool
	IsDeduction *bool
	IsTaxable   *bool
}

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentDraft      PaymentStatus = "draft"
	PaymentCalculated PaymentStatus = "calculated"
	PaymentConfirmed  PaymentStatus = "confirmed"
	PaymentPaid       PaymentStatus = "paid"
	PaymentCanceled   PaymentStatus = "canceled"
)

// Final reports whether a payment may no longer be recomputed or edited.
func (s PaymentStatus) Final() bool {
	return s == PaymentConfirmed || s == PaymentPaid
}

// Payment is the snapshot produced by the composer, unique per
// (employee, payment_month). Immutable once paid.
type Payment struct {
	ID                        string
	EmployeeID                string
	PaymentMonth              time.Time
	PaymentDate               *time.Time
	BasicSalary               decimal.Decimal
	PositionSalary            decimal.Decimal
	PerformanceSalary         decimal.Decimal
	Bonus                     decimal.Decimal
	AllowanceTotal            decimal.Decimal
	OtherIncomeTotal          decimal.Decimal
	GrossSalary               decimal.Decimal
	SocialInsuranceDeduction  decimal.Decimal
	MedicalInsuranceDeduction decimal.Decimal
	HousingFundDeduction      decimal.Decimal
	TaxDeduction              decimal.Decimal
	OtherDeductionTotal       decimal.Decimal
	NetSalary                 decimal.Decimal
	Status                    PaymentStatus
	CalculatorID              *string
	ConfirmTime               *time.Time
	Note                      *string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time

	Details []PaymentDetail

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

type PaymentDetail struct {
	ID        string
	PaymentID string
	ItemID    string
	Amount    decimal.Decimal
	Note      *string

	// Joined fields
	ItemName *string
	ItemCode *string
}
