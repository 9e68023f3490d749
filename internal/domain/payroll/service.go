package payroll

import "context"

// ItemService manages salary item types and salary items.
type ItemService interface {
	CreateItemType(ctx context.Context, req *CreateSalaryItemTypeRequest) (*SalaryItemTypeResponse, error)
	ListItemTypes(ctx context.Context) ([]SalaryItemTypeResponse, error)
	CreateItem(ctx context.Context, req *CreateSalaryItemRequest) (*SalaryItemResponse, error)
	UpdateItem(ctx context.Context, req *UpdateSalaryItemRequest) (*SalaryItemResponse, error)
	ListItems(ctx context.Context, activeOnly bool) ([]SalaryItemResponse, error)
	DeactivateItem(ctx context.Context, id string) error
}

// StructureService manages reusable salary structures.
type StructureService interface {
	CreateStructure(ctx context.Context, req *CreateSalaryStructureRequest) (*SalaryStructureResponse, error)
	GetStructure(ctx context.Context, id string) (*SalaryStructureResponse, error)
	ListStructures(ctx context.Context) ([]SalaryStructureResponse, error)
	DeleteStructure(ctx context.Context, id string) error
}

// ConfigService manages per-employee salary configuration.
type ConfigService interface {
	UpsertConfig(ctx context.Context, req *UpsertSalaryConfigRequest) (*SalaryConfigResponse, error)
	GetConfigByEmployee(ctx context.Context, employeeID string) (*SalaryConfigResponse, error)
}

// PaymentService computes and manages monthly salary payments.
//
// GeneratePayments recomputes drafts for the given month. Payments in a
// final status (confirmed or paid) are never overwritten; they are
// reported back as skipped.
type PaymentService interface {
	GeneratePayments(ctx context.Context, req *GeneratePaymentsRequest) (*GeneratePaymentsResult, error)
	GetPayment(ctx context.Context, id string) (*PaymentResponse, error)
	ListPayments(ctx context.Context, filter *PaymentFilter) (*ListPaymentResponse, error)
	ConfirmPayment(ctx context.Context, id string) (*PaymentResponse, error)
	MarkPaid(ctx context.Context, req *UpdatePaymentStatusRequest) (*PaymentResponse, error)
	CancelPayment(ctx context.Context, id string) (*PaymentResponse, error)
}

// GeneratePaymentsResult reports the outcome of a batch run.
type GeneratePaymentsResult struct {
	PaymentMonth string   `json:"payment_month"`
	Generated    int      `json:"generated"`
	Skipped      []string `json:"skipped,omitempty"`
	Failed       []string `json:"failed,omitempty"`
}
