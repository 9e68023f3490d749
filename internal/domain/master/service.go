package master

import "context"

// MasterService exposes organizational reference data. List reads go through
// the reference cache; writes invalidate it eagerly.
type MasterService interface {
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req UpdateDepartmentRequest) error
	DeleteDepartment(ctx context.Context, id string) error

	CreatePosition(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	GetPosition(ctx context.Context, id string) (PositionResponse, error)
	ListPositions(ctx context.Context) ([]PositionResponse, error)
	UpdatePosition(ctx context.Context, req UpdatePositionRequest) error
	DeletePosition(ctx context.Context, id string) error
}
