package employee

import "time"

// EmploymentStatus enum
type EmploymentStatus string

const (
	StatusProbation EmploymentStatus = "probation"
	StatusRegular   EmploymentStatus = "regular"
	StatusResigned  EmploymentStatus = "resigned"
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case StatusProbation, StatusRegular, StatusResigned:
		return true
	}
	return false
}

type Employee struct {
	ID              string
	Code            string
	Name            string
	Gender          *string
	Email           *string
	Phone           *string
	DepartmentID    *string
	PositionID      *string
	ManagerID       *string
	Status          EmploymentStatus
	HireDate        time.Time
	TerminationDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	DepartmentName *string
	PositionName   *string
}
