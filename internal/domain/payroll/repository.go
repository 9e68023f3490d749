package payroll

import (
	"context"
	"time"
)

type ItemRepository interface {
	CreateItemType(ctx context.Context, it SalaryItemType) (SalaryItemType, error)
	ListItemTypes(ctx context.Context) ([]SalaryItemType, error)

	CreateItem(ctx context.Context, item SalaryItem) (SalaryItem, error)
	GetItemByID(ctx context.Context, id string) (SalaryItem, error)
	ListItems(ctx context.Context, activeOnly bool) ([]SalaryItem, error)
	UpdateItem(ctx context.Context, req UpdateSalaryItemRequest) error
	DeleteItem(ctx context.Context, id string) error
}

type StructureRepository interface {
	Create(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)

	// GetByID loads the structure together with its ordered details.
	GetByID(ctx context.Context, id string) (SalaryStructure, error)

	GetDefault(ctx context.Context) (SalaryStructure, error)
	List(ctx context.Context) ([]SalaryStructure, error)
	Delete(ctx context.Context, id string) error
}

type ConfigRepository interface {
	// Upsert writes the one-to-one config for an employee, replacing its item
	// overrides in the same transaction.
	Upsert(ctx context.Context, config SalaryConfig) (SalaryConfig, error)

	// GetByEmployeeID loads the config together with its item overrides in a
	// single consistent read.
	GetByEmployeeID(ctx context.Context, employeeID string) (SalaryConfig, error)
}

type PaymentRepository interface {
	// Upsert atomically writes the payment snapshot and its details keyed on
	// (employee_id, payment_month). The whole snapshot is computed in memory
	// first, so two concurrent runs for the same key cannot tear a row.
	Upsert(ctx context.Context, payment Payment) (Payment, error)

	GetByID(ctx context.Context, id string) (Payment, error)
	GetByEmployeeMonth(ctx context.Context, employeeID string, month time.Time) (Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]Payment, int64, error)

	// UpdateStatus transitions payment status; the fromStatuses guard makes
	// confirm/pay/cancel idempotent-safe.
	UpdateStatus(ctx context.Context, id string, status PaymentStatus, fromStatuses []PaymentStatus, at time.Time) error
}
