package response

import (
	"errors"
	"net/http"

	"github.com/workline-hq/hrms-backend-go/internal/domain/attendance"
	"github.com/workline-hq/hrms-backend-go/internal/domain/employee"
	"github.com/workline-hq/hrms-backend-go/internal/domain/master"
	"github.com/workline-hq/hrms-backend-go/internal/domain/payroll"
	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Master data errors
	case errors.Is(err, master.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, master.ErrDepartmentNameExists):
		Conflict(w, "Department with this name already exists")
	case errors.Is(err, master.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, master.ErrPositionNameExists):
		Conflict(w, "Position with this name already exists")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeResigned):
		Conflict(w, "Employee has resigned")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrMissingCheckIn):
		BadRequest(w, "Check-in time is required when check-out is present", nil)
	case errors.Is(err, attendance.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, attendance.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type with this name already exists")
	case errors.Is(err, attendance.ErrOvertimeTypeNotFound):
		NotFound(w, "Overtime type not found")
	case errors.Is(err, attendance.ErrOvertimeTypeNameExists):
		Conflict(w, "Overtime type with this name already exists")
	case errors.Is(err, attendance.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, attendance.ErrOvertimeRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, attendance.ErrRequestAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Attendance summary not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrItemTypeNotFound):
		NotFound(w, "Salary item type not found")
	case errors.Is(err, payroll.ErrItemTypeCodeExists):
		Conflict(w, "Salary item type code already exists")
	case errors.Is(err, payroll.ErrItemNotFound):
		NotFound(w, "Salary item not found")
	case errors.Is(err, payroll.ErrItemCodeExists):
		Conflict(w, "Salary item code already exists")
	case errors.Is(err, payroll.ErrItemInactive):
		BadRequest(w, "Salary item is inactive", nil)
	case errors.Is(err, payroll.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, payroll.ErrConfigNotFound):
		NotFound(w, "Salary config not found")
	case errors.Is(err, payroll.ErrPaymentNotFound):
		NotFound(w, "Salary payment not found")
	case errors.Is(err, payroll.ErrPaymentFinalized):
		Conflict(w, "Salary payment is confirmed or paid and cannot be changed")
	case errors.Is(err, payroll.ErrBasicSalaryInvalid):
		BadRequest(w, "Basic salary is unset or not positive", nil)
	case errors.Is(err, payroll.ErrTaxTableInvalid):
		BadRequest(w, "Tax bracket table is invalid", nil)

	// Performance domain errors
	case errors.Is(err, performance.ErrIndicatorNotFound):
		NotFound(w, "Performance indicator not found")
	case errors.Is(err, performance.ErrIndicatorCodeExists):
		Conflict(w, "Performance indicator code already exists")
	case errors.Is(err, performance.ErrNoActiveIndicators):
		BadRequest(w, "No active performance indicators to appraise against", nil)
	case errors.Is(err, performance.ErrAppraisalNotFound):
		NotFound(w, "Appraisal not found")
	case errors.Is(err, performance.ErrAppraisalExists):
		Conflict(w, "Appraisal for this employee and period already exists")
	case errors.Is(err, performance.ErrAppraisalWrongStage):
		Conflict(w, "Appraisal is not in the required stage for this action")
	case errors.Is(err, performance.ErrScoreUnknownIndicator):
		BadRequest(w, "Score references an indicator outside this appraisal", nil)
	case errors.Is(err, performance.ErrGradeBandsInvalid):
		BadRequest(w, "Grade band table is invalid", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
