package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2024-02-15")
	assert.True(t, ok)
	assert.Equal(t, 2024, date.Year())

	_, ok = IsValidDate("15-02-2024")
	assert.False(t, ok)

	_, ok = IsValidDate("2024-02-30")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2024-01-15T10:30:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15T10:30:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2024-01-15 10:30:00")
	assert.False(t, ok)
}

func TestIsValidClock(t *testing.T) {
	clock, ok := IsValidClock("09:00")
	assert.True(t, ok)
	assert.Equal(t, 9, clock.Hour())

	_, ok = IsValidClock("24:00")
	assert.False(t, ok)

	_, ok = IsValidClock("9am")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("b", []string{"a", "b", "c"}))
	assert.False(t, IsInSlice("d", []string{"a", "b", "c"}))
	assert.False(t, IsInSlice("a", nil))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "start_date is required"},
		{Field: "reason", Message: "reason is required"},
	}

	assert.Equal(t, "start_date: start_date is required; reason: reason is required", errs.Error())
	assert.Equal(t, map[string]string{
		"start_date": "start_date is required",
		"reason":     "reason is required",
	}, errs.ToMap())
}
