package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workline-hq/hrms-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string {
	return &s
}

func TestUpsertRecordRequestValidate(t *testing.T) {
	valid := func() UpsertRecordRequest {
		return UpsertRecordRequest{
			EmployeeID: "emp-1",
			WorkDate:   "2026-03-02",
			CheckIn:    strPtr("2026-03-02 08:55:00"),
			CheckOut:   strPtr("2026-03-02 18:05:00"),
		}
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("no punches is still valid", func(t *testing.T) {
		req := valid()
		req.CheckIn = nil
		req.CheckOut = nil
		assert.NoError(t, req.Validate())
	})

	t.Run("missing employee", func(t *testing.T) {
		req := valid()
		req.EmployeeID = ""

		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "employee_id")
	})

	t.Run("bad work date", func(t *testing.T) {
		req := valid()
		req.WorkDate = "03/02/2026"

		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "work_date")
	})

	t.Run("check-out alone is valid", func(t *testing.T) {
		req := valid()
		req.CheckIn = nil
		assert.NoError(t, req.Validate())
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		req := valid()
		req.CheckIn = strPtr("yesterday")

		assert.Error(t, req.Validate())
	})
}

func TestCreateLeaveRequestRequestValidate(t *testing.T) {
	valid := func() CreateLeaveRequestRequest {
		return CreateLeaveRequestRequest{
			EmployeeID:  "emp-1",
			LeaveTypeID: "lt-1",
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-04",
			Days:        "3",
			Reason:      "family matters",
		}
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid()
		assert.NoError(t, req.Validate())
	})

	t.Run("half day", func(t *testing.T) {
		req := valid()
		req.EndDate = req.StartDate
		req.Days = "0.5"
		assert.NoError(t, req.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		req := valid()
		req.EndDate = "2026-03-01"

		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "end_date")
	})

	t.Run("zero days", func(t *testing.T) {
		req := valid()
		req.Days = "0"
		assert.Error(t, req.Validate())
	})

	t.Run("negative days", func(t *testing.T) {
		req := valid()
		req.Days = "-1"
		assert.Error(t, req.Validate())
	})

	t.Run("missing reason", func(t *testing.T) {
		req := valid()
		req.Reason = "  "
		assert.Error(t, req.Validate())
	})
}
