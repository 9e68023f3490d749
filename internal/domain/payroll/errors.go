package payroll

import "errors"

var (
	ErrItemTypeNotFound   = errors.New("salary item type not found")
	ErrItemTypeCodeExists = errors.New("salary item type code already exists")
	ErrItemNotFound       = errors.New("salary item not found")
	ErrItemCodeExists     = errors.New("salary item code already exists")
	ErrItemInactive       = errors.New("salary item is inactive")
	ErrStructureNotFound  = errors.New("salary structure not found")
	ErrConfigNotFound     = errors.New("employee salary config not found")
	ErrPaymentNotFound    = errors.New("salary payment not found")
	ErrPaymentFinalized   = errors.New("salary payment is confirmed or paid and cannot be recomputed")
	ErrBasicSalaryInvalid = errors.New("basic salary is unset or not positive")
	ErrTaxTableInvalid    = errors.New("tax bracket table is invalid")
)
