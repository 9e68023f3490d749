package master

import "time"

// Department is organizational reference data. Employee references use a
// nullify-on-delete policy so removing a department never cascades into
// employee rows.
type Department struct {
	ID          string
	Name        string
	Description *string
	ManagerID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	ManagerName *string
	Headcount   *int
}

type Position struct {
	ID          string
	Name        string
	Level       int
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
