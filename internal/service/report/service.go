package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/domain/master"
	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workline-hq/hrms-backend-go/internal/domain/report"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/summarizer"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	attendance.SummaryRepository
	payroll.PaymentRepository
	employee.EmployeeRepository
	master.DepartmentRepository
	summarizer *summarizer.Client
	logger     *slog.Logger
}

func NewReportService(
	summaryRepository attendance.SummaryRepository,
	paymentRepository payroll.PaymentRepository,
	employeeRepository employee.EmployeeRepository,
	departmentRepository master.DepartmentRepository,
	client *summarizer.Client,
	logger *slog.Logger,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		SummaryRepository:    summaryRepository,
		PaymentRepository:    paymentRepository,
		EmployeeRepository:   employeeRepository,
		DepartmentRepository: departmentRepository,
		summarizer:           client,
		logger:               logger,
	}
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req *report.MonthlyReportRequest) (*report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	month, _ := validator.IsValidMonth(req.Month)
	year, monthNum := month.Year(), int(month.Month())

	active, err := s.EmployeeRepository.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	summaries, err := s.SummaryRepository.ListByMonth(ctx, year, monthNum)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}

	payments, _, err := s.PaymentRepository.List(ctx, payroll.PaymentFilter{
		Month: &req.Month,
		Page:  1,
		Limit: 10000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	result := &report.MonthlyReport{
		Month:            req.Month,
		HeadcountActive:  len(active),
		AttendanceTotals: foldAttendance(summaries),
		PayrollTotals:    foldPayroll(payments),
	}

	if figures, err := s.departmentFigures(ctx, active, payments); err != nil {
		s.logger.Warn("department breakdown unavailable", slog.String("error", err.Error()))
	} else {
		result.DepartmentFigures = figures
	}

	if req.WithSummary {
		s.attachSummary(ctx, result)
	}

	return result, nil
}

// attachSummary asks the configured model for a short narrative. Failures
// only log: the report is complete without it.
func (s *ReportServiceImpl) attachSummary(ctx context.Context, r *report.MonthlyReport) {
	text, err := s.summarizer.Summarize(ctx, "Monthly HR report for "+r.Month, r)
	if err != nil {
		if !errors.Is(err, summarizer.ErrNotConfigured) {
			s.logger.Warn("report summary generation failed", slog.String("error", err.Error()))
		}
		return
	}
	r.Summary = &text
}

func foldAttendance(summaries []attendance.Summary) report.AttendanceTotals {
	var totals report.AttendanceTotals
	leaveDays := decimal.Zero
	overtimeHours := decimal.Zero

	for _, sum := range summaries {
		totals.WorkDays += sum.NormalDays + sum.WorkFromHomeDays
		totals.LateDays += sum.LateCount
		totals.AbsentDays += sum.AbsentDays
		leaveDays = leaveDays.Add(sum.LeaveDays)
		overtimeHours = overtimeHours.Add(sum.OvertimeHours)
	}

	totals.LeaveDays = leaveDays.StringFixed(1)
	totals.OvertimeHours = overtimeHours.StringFixed(1)
	return totals
}

func foldPayroll(payments []payroll.Payment) report.PayrollTotals {
	gross := decimal.Zero
	net := decimal.Zero
	tax := decimal.Zero
	deductions := decimal.Zero
	count := 0

	for _, p := range payments {
		if p.Status == payroll.PaymentCanceled {
			continue
		}
		count++
		gross = gross.Add(p.GrossSalary)
		net = net.Add(p.NetSalary)
		tax = tax.Add(p.TaxDeduction)
		deductions = deductions.
			Add(p.SocialInsuranceDeduction).
			Add(p.MedicalInsuranceDeduction).
			Add(p.HousingFundDeduction).
			Add(p.TaxDeduction).
			Add(p.OtherDeductionTotal)
	}

	return report.PayrollTotals{
		GrossTotal:     gross.StringFixed(2),
		NetTotal:       net.StringFixed(2),
		TaxTotal:       tax.StringFixed(2),
		DeductionTotal: deductions.StringFixed(2),
		PaymentCount:   count,
	}
}

func (s *ReportServiceImpl) departmentFigures(ctx context.Context, active []employee.Employee, payments []payroll.Payment) ([]report.DepartmentFigure, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]decimal.Decimal, len(payments))
	for _, p := range payments {
		if p.Status != payroll.PaymentCanceled {
			byEmployee[p.EmployeeID] = p.NetSalary
		}
	}

	type bucket struct {
		headcount int
		net       decimal.Decimal
	}
	buckets := make(map[string]*bucket, len(departments))
	for _, emp := range active {
		if emp.DepartmentID == nil {
			continue
		}
		b, ok := buckets[*emp.DepartmentID]
		if !ok {
			b = &bucket{net: decimal.Zero}
			buckets[*emp.DepartmentID] = b
		}
		b.headcount++
		if net, ok := byEmployee[emp.ID]; ok {
			b.net = b.net.Add(net)
		}
	}

	figures := make([]report.DepartmentFigure, 0, len(departments))
	for _, d := range departments {
		b, ok := buckets[d.ID]
		if !ok {
			continue
		}
		figures = append(figures, report.DepartmentFigure{
			DepartmentID:   d.ID,
			DepartmentName: d.Name,
			Headcount:      b.headcount,
			NetTotal:       b.net.StringFixed(2),
		})
	}

	return figures, nil
}
