package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-03-02")
	assert.True(t, ok)

	_, ok = IsValidDate("2026-02-30")
	assert.False(t, ok)

	_, ok = IsValidDate("02/03/2026")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	month, ok := IsValidMonth("2026-03")
	assert.True(t, ok)
	assert.Equal(t, 1, month.Day())

	_, ok = IsValidMonth("2026-13")
	assert.False(t, ok)

	_, ok = IsValidMonth("2026-03-02")
	assert.False(t, ok)
}

func TestIsValidTimeOfDay(t *testing.T) {
	clock, ok := IsValidTimeOfDay("09:30")
	assert.True(t, ok)
	assert.Equal(t, 9, clock.Hour())
	assert.Equal(t, 30, clock.Minute())

	clock, ok = IsValidTimeOfDay("23:59:59")
	assert.True(t, ok)
	assert.Equal(t, 59, clock.Second())

	_, ok = IsValidTimeOfDay("25:00")
	assert.False(t, ok)

	_, ok = IsValidTimeOfDay("9am")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2026-03-02T09:00:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-03-02 09:00:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-03-02")
	assert.False(t, ok)
}

func TestIsValidYearMonth(t *testing.T) {
	assert.True(t, IsValidYearMonth(2026, 3))
	assert.True(t, IsValidYearMonth(1900, 1))
	assert.False(t, IsValidYearMonth(2026, 0))
	assert.False(t, IsValidYearMonth(2026, 13))
	assert.False(t, IsValidYearMonth(1899, 6))
}

func TestIsValidAmount(t *testing.T) {
	d, ok := IsValidAmount("5000.00")
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("5000")))

	_, ok = IsValidAmount("0")
	assert.True(t, ok)

	_, ok = IsValidAmount("-1")
	assert.False(t, ok)

	_, ok = IsValidAmount("abc")
	assert.False(t, ok)
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("EM0001"))
	assert.True(t, IsValidEmployeeCode("HR20260001"))
	assert.False(t, IsValidEmployeeCode("em0001"))
	assert.False(t, IsValidEmployeeCode("E0001"))
	assert.False(t, IsValidEmployeeCode("EM001"))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "amount", Message: "amount must be non-negative"},
	}

	assert.Equal(t, "name: name is required; amount: amount must be non-negative", errs.Error())

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "name is required", m["name"])
}
