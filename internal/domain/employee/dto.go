package employee

import (
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Gender       *string `json:"gender"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	DepartmentID *string `json:"department_id"`
	PositionID   *string `json:"position_id"`
	ManagerID    *string `json:"manager_id"`
	Status       string  `json:"status"`
	HireDate     string  `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must match the form AB1234",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not valid",
		})
	}

	if r.Status != "" && !EmploymentStatus(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of probation, regular, resigned",
		})
	}

	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID              string  `json:"-"`
	Name            *string `json:"name"`
	Gender          *string `json:"gender"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	DepartmentID    *string `json:"department_id"`
	PositionID      *string `json:"position_id"`
	ManagerID       *string `json:"manager_id"`
	Status          *string `json:"status"`
	TerminationDate *string `json:"termination_date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not valid",
		})
	}

	if r.Status != nil && !EmploymentStatus(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of probation, regular, resigned",
		})
	}

	if r.TerminationDate != nil {
		if _, ok := validator.IsValidDate(*r.TerminationDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "termination_date",
				Message: "termination_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	DepartmentID *string
	Status       *string
	Search       *string
	Page         int
	Limit        int
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Gender          *string `json:"gender,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	DepartmentID    *string `json:"department_id,omitempty"`
	DepartmentName  *string `json:"department_name,omitempty"`
	PositionID      *string `json:"position_id,omitempty"`
	PositionName    *string `json:"position_name,omitempty"`
	ManagerID       *string `json:"manager_id,omitempty"`
	Status          string  `json:"status"`
	HireDate        string  `json:"hire_date"`
	TerminationDate *string `json:"termination_date,omitempty"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
