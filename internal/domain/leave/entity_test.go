package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 3, DaysInclusive(date(2024, 2, 15), date(2024, 2, 17)))
	assert.Equal(t, 1, DaysInclusive(date(2024, 2, 15), date(2024, 2, 15)))
	assert.Equal(t, 0, DaysInclusive(date(2024, 2, 17), date(2024, 2, 15)))
}

func TestDaysInclusive_AcrossMonthBoundary(t *testing.T) {
	assert.Equal(t, 4, DaysInclusive(date(2024, 2, 28), date(2024, 3, 2)))
}

func TestDaysInclusive_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 2, 15, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 2, 17, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysInclusive(start, end))
}

func TestDatesCovered(t *testing.T) {
	request := LeaveRequest{
		StartDate: date(2024, 2, 15),
		EndDate:   date(2024, 2, 17),
	}

	covered := request.DatesCovered()
	assert.Equal(t, []time.Time{
		date(2024, 2, 15),
		date(2024, 2, 16),
		date(2024, 2, 17),
	}, covered)
}

func TestDatesCovered_SingleDay(t *testing.T) {
	request := LeaveRequest{
		StartDate: date(2024, 2, 15),
		EndDate:   date(2024, 2, 15),
	}

	assert.Equal(t, []time.Time{date(2024, 2, 15)}, request.DatesCovered())
}
