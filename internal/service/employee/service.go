package employee

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/domain/master"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	master.DepartmentRepository
	master.PositionRepository
}

func NewEmployeeService(
	employeeRepository employee.EmployeeRepository,
	departmentRepository master.DepartmentRepository,
	positionRepository master.PositionRepository,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		EmployeeRepository:   employeeRepository,
		DepartmentRepository: departmentRepository,
		PositionRepository:   positionRepository,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.DepartmentID != nil {
		if _, err := s.DepartmentRepository.GetByID(ctx, *req.DepartmentID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if req.PositionID != nil {
		if _, err := s.PositionRepository.GetByID(ctx, *req.PositionID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if req.ManagerID != nil {
		if _, err := s.EmployeeRepository.GetByID(ctx, *req.ManagerID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	status := employee.StatusProbation
	if req.Status != "" {
		status = employee.EmploymentStatus(req.Status)
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)

	emp := employee.Employee{
		ID:           uuid.NewString(),
		Code:         req.Code,
		Name:         req.Name,
		Gender:       req.Gender,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		ManagerID:    req.ManagerID,
		Status:       status,
		HireDate:     hireDate,
	}

	stored, err := s.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(stored), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// GetByCode implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByCode(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByCode(ctx, code)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, count, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListEmployeeResponse{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(count) / float64(filter.Limit))),
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(emp))
	}

	return resp, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.DepartmentID != nil {
		if _, err := s.DepartmentRepository.GetByID(ctx, *req.DepartmentID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}
	if req.PositionID != nil {
		if _, err := s.PositionRepository.GetByID(ctx, *req.PositionID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	if err := s.EmployeeRepository.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(updated), nil
}

// Delete implements employee.EmployeeService. Deleting marks the employee
// resigned as of today; rows are never removed so payroll history stays
// intact.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.EmployeeRepository.GetByID(ctx, id); err != nil {
		return err
	}

	status := string(employee.StatusResigned)
	today := time.Now().UTC().Format("2006-01-02")

	return s.EmployeeRepository.Update(ctx, employee.UpdateEmployeeRequest{
		ID:              id,
		Status:          &status,
		TerminationDate: &today,
	})
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             emp.ID,
		Code:           emp.Code,
		Name:           emp.Name,
		Gender:         emp.Gender,
		Email:          emp.Email,
		Phone:          emp.Phone,
		DepartmentID:   emp.DepartmentID,
		DepartmentName: emp.DepartmentName,
		PositionID:     emp.PositionID,
		PositionName:   emp.PositionName,
		ManagerID:      emp.ManagerID,
		Status:         string(emp.Status),
		HireDate:       emp.HireDate.Format("2006-01-02"),
	}
	if emp.TerminationDate != nil {
		d := emp.TerminationDate.Format("2006-01-02")
		resp.TerminationDate = &d
	}
	return resp
}
