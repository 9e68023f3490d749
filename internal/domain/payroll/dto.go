package payroll

import (
	"strconv"

	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// SALARY ITEM DTOs
// ========================================

type CreateSalaryItemTypeRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	IsTaxable   bool    `json:"is_taxable"`
	IsBenefit   bool    `json:"is_benefit"`
	IsDeduction bool    `json:"is_deduction"`
	Description *string `json:"description"`
}

func (r *CreateSalaryItemTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SalaryItemTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	IsTaxable   bool    `json:"is_taxable"`
	IsBenefit   bool    `json:"is_benefit"`
	IsDeduction bool    `json:"is_deduction"`
	Description *string `json:"description,omitempty"`
}

type CreateSalaryItemRequest struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	ItemTypeID    string  `json:"item_type_id"`
	DefaultAmount string  `json:"default_amount"`
	Description   *string `json:"description"`
}

func (r *CreateSalaryItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if validator.IsEmpty(r.ItemTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "item_type_id",
			Message: "item_type_id is required",
		})
	}

	if r.DefaultAmount != "" {
		if _, ok := validator.IsValidAmount(r.DefaultAmount); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "default_amount",
				Message: "default_amount must be a non-negative number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateSalaryItemRequest struct {
	ID            string  `json:"-"`
	Name          *string `json:"name"`
	DefaultAmount *string `json:"default_amount"`
	IsActive      *bool   `json:"is_active"`
	Description   *string `json:"description"`
}

type SalaryItemResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	ItemTypeID    string  `json:"item_type_id"`
	TypeCode      *string `json:"type_code,omitempty"`
	DefaultAmount string  `json:"default_amount"`
	IsActive      bool    `json:"is_active"`
	Description   *string `json:"description,omitempty"`
}

// ========================================
// SALARY STRUCTURE DTOs
// ========================================

type StructureDetailInput struct {
	ItemID    string  `json:"item_id"`
	Amount    string  `json:"amount"`
	SortOrder int     `json:"sort_order"`
	Formula   *string `json:"formula"`
	IsFixed   bool    `json:"is_fixed"`
}

type CreateSalaryStructureRequest struct {
	Name        string                 `json:"name"`
	Description *string                `json:"description"`
	IsDefault   bool                   `json:"is_default"`
	Details     []StructureDetailInput `json:"details"`
}

func (r *CreateSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	for i, d := range r.Details {
		if validator.IsEmpty(d.ItemID) {
			errs = append(errs, validator.ValidationError{
				Field:   "details",
				Message: "item_id is required on every detail",
			})
			break
		}
		if d.Amount != "" {
			if _, ok := validator.IsValidAmount(d.Amount); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "details",
					Message: "amount must be a non-negative number (detail " + strconv.Itoa(i) + ")",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StructureDetailResponse struct {
	ItemID    string  `json:"item_id"`
	ItemName  *string `json:"item_name,omitempty"`
	ItemCode  *string `json:"item_code,omitempty"`
	Amount    string  `json:"amount"`
	SortOrder int     `json:"sort_order"`
	Formula   *string `json:"formula,omitempty"`
	IsFixed   bool    `json:"is_fixed"`
}

type SalaryStructureResponse struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description *string                   `json:"description,omitempty"`
	IsDefault   bool                      `json:"is_default"`
	Details     []StructureDetailResponse `json:"details,omitempty"`
}

// ========================================
// EMPLOYEE SALARY CONFIG DTOs
// ========================================

type ConfigItemInput struct {
	ItemID  string `json:"item_id"`
	Amount  string `json:"amount"`
	IsFixed bool   `json:"is_fixed"`
}

type UpsertSalaryConfigRequest struct {
	EmployeeID           string            `json:"employee_id"`
	StructureID          *string           `json:"structure_id"`
	BasicSalary          string            `json:"basic_salary"`
	PositionSalary       string            `json:"position_salary"`
	PerformanceSalary    string            `json:"performance_salary"`
	Bonus                string            `json:"bonus"`
	SocialInsuranceBase  *string           `json:"social_insurance_base"`
	MedicalInsuranceBase *string           `json:"medical_insurance_base"`
	HousingFundBase      *string           `json:"housing_fund_base"`
	TaxExemption         *string           `json:"tax_exemption"`
	EffectiveDate        string            `json:"effective_date"`
	Note                 *string           `json:"note"`
	Items                []ConfigItemInput `json:"items"`
}

func (r *UpsertSalaryConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if b, ok := validator.IsValidAmount(r.BasicSalary); !ok || b.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must be a positive number",
		})
	}

	for _, field := range []struct {
		name  string
		value *string
	}{
		{"social_insurance_base", r.SocialInsuranceBase},
		{"medical_insurance_base", r.MedicalInsuranceBase},
		{"housing_fund_base", r.HousingFundBase},
		{"tax_exemption", r.TaxExemption},
	} {
		if field.value != nil {
			if _, ok := validator.IsValidAmount(*field.value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field.name,
					Message: field.name + " must be a non-negative number",
				})
			}
		}
	}

	for _, optional := range []struct {
		name  string
		value string
	}{
		{"position_salary", r.PositionSalary},
		{"performance_salary", r.PerformanceSalary},
		{"bonus", r.Bonus},
	} {
		if optional.value != "" {
			if _, ok := validator.IsValidAmount(optional.value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   optional.name,
					Message: optional.name + " must be a non-negative number",
				})
			}
		}
	}

	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date must be a valid date (YYYY-MM-DD)",
		})
	}

	for _, item := range r.Items {
		if validator.IsEmpty(item.ItemID) {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "item_id is required on every item",
			})
			break
		}
		if _, ok := validator.IsValidAmount(item.Amount); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "items",
				Message: "amount must be a non-negative number on every item",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ConfigItemResponse struct {
	ItemID   string  `json:"item_id"`
	ItemName *string `json:"item_name,omitempty"`
	Amount   string  `json:"amount"`
	IsFixed  bool    `json:"is_fixed"`
}

type SalaryConfigResponse struct {
	ID                   string               `json:"id"`
	EmployeeID           string               `json:"employee_id"`
	StructureID          *string              `json:"structure_id,omitempty"`
	BasicSalary          string               `json:"basic_salary"`
	PositionSalary       string               `json:"position_salary"`
	PerformanceSalary    string               `json:"performance_salary"`
	Bonus                string               `json:"bonus"`
	SocialInsuranceBase  *string              `json:"social_insurance_base,omitempty"`
	MedicalInsuranceBase *string              `json:"medical_insurance_base,omitempty"`
	HousingFundBase      *string              `json:"housing_fund_base,omitempty"`
	TaxExemption         string               `json:"tax_exemption"`
	EffectiveDate        string               `json:"effective_date"`
	Items                []ConfigItemResponse `json:"items,omitempty"`
}

// ========================================
// PAYMENT DTOs
// ========================================

type GeneratePaymentsRequest struct {
	PaymentMonth string   `json:"payment_month"`
	EmployeeIDs  []string `json:"employee_ids"`
	CalculatorID *string  `json:"calculator_id"`
}

func (r *GeneratePaymentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.PaymentMonth); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_month",
			Message: "payment_month must be a valid month (YYYY-MM)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PaymentFilter struct {
	EmployeeID *string
	Month      *string
	Status     *string
	Page       int
	Limit      int
}

type PaymentDetailResponse struct {
	ItemID   string  `json:"item_id"`
	ItemName *string `json:"item_name,omitempty"`
	ItemCode *string `json:"item_code,omitempty"`
	Amount   string  `json:"amount"`
}

type PaymentResponse struct {
	ID                        string                  `json:"id"`
	EmployeeID                string                  `json:"employee_id"`
	EmployeeName              *string                 `json:"employee_name,omitempty"`
	EmployeeCode              *string                 `json:"employee_code,omitempty"`
	PaymentMonth              string                  `json:"payment_month"`
	PaymentDate               *string                 `json:"payment_date,omitempty"`
	BasicSalary               string                  `json:"basic_salary"`
	PositionSalary            string                  `json:"position_salary"`
	PerformanceSalary         string                  `json:"performance_salary"`
	Bonus                     string                  `json:"bonus"`
	AllowanceTotal            string                  `json:"allowance_total"`
	OtherIncomeTotal          string                  `json:"other_income_total"`
	GrossSalary               string                  `json:"gross_salary"`
	SocialInsuranceDeduction  string                  `json:"social_insurance_deduction"`
	MedicalInsuranceDeduction string                  `json:"medical_insurance_deduction"`
	HousingFundDeduction      string                  `json:"housing_fund_deduction"`
	TaxDeduction              string                  `json:"tax_deduction"`
	OtherDeductionTotal       string                  `json:"other_deduction_total"`
	NetSalary                 string                  `json:"net_salary"`
	Status                    string                  `json:"status"`
	ConfirmTime               *string                 `json:"confirm_time,omitempty"`
	Details                   []PaymentDetailResponse `json:"details,omitempty"`
}

type ListPaymentResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payments   []PaymentResponse `json:"payments"`
}

type UpdatePaymentStatusRequest struct {
	ID          string  `json:"-"`
	PaymentDate *string `json:"payment_date"`
}
