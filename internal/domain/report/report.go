package report

import (
	"context"

	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

// MonthlyReport aggregates attendance and payroll figures for one month.
type MonthlyReport struct {
	Month             string             `json:"month"`
	HeadcountActive   int                `json:"headcount_active"`
	AttendanceTotals  AttendanceTotals   `json:"attendance_totals"`
	PayrollTotals     PayrollTotals      `json:"payroll_totals"`
	DepartmentFigures []DepartmentFigure `json:"department_figures,omitempty"`
	Summary           *string            `json:"summary,omitempty"`
}

type AttendanceTotals struct {
	WorkDays      int    `json:"work_days"`
	LateDays      int    `json:"late_days"`
	AbsentDays    int    `json:"absent_days"`
	LeaveDays     string `json:"leave_days"`
	OvertimeHours string `json:"overtime_hours"`
}

type PayrollTotals struct {
	GrossTotal     string `json:"gross_total"`
	NetTotal       string `json:"net_total"`
	TaxTotal       string `json:"tax_total"`
	DeductionTotal string `json:"deduction_total"`
	PaymentCount   int    `json:"payment_count"`
}

type DepartmentFigure struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Headcount      int    `json:"headcount"`
	NetTotal       string `json:"net_total"`
}

type MonthlyReportRequest struct {
	Month       string `json:"month"`
	WithSummary bool   `json:"with_summary"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be a valid month (YYYY-MM)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReportService builds monthly reports. The narrative summary is best
// effort; when the summarizer is unavailable the report is returned
// without one.
type ReportService interface {
	MonthlyReport(ctx context.Context, req *MonthlyReportRequest) (*MonthlyReport, error)
}
