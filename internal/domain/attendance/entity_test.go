package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestWorkedHours(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 8.0, WorkedHours(in, in.Add(8*time.Hour)))
	assert.Equal(t, 8.5, WorkedHours(in, in.Add(8*time.Hour+30*time.Minute)))
	assert.Equal(t, 0.25, WorkedHours(in, in.Add(15*time.Minute)))
	assert.Equal(t, 0.0, WorkedHours(in, in))
}

func TestWorkedHours_RoundsToTwoDecimals(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	// 7h47m = 7.7833... hours
	assert.Equal(t, 7.78, WorkedHours(in, in.Add(7*time.Hour+47*time.Minute)))
}

func TestWorkedHours_NegativeClampsToZero(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, WorkedHours(in, in.Add(-time.Hour)))
}

func TestDeriveStatus_PresentWithinGrace(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	shiftStart, _ := time.Parse("15:04", "09:00")

	rec := Attendance{
		Date:    date,
		ClockIn: timePtr(time.Date(2024, 3, 4, 9, 10, 0, 0, time.UTC)),
	}

	assert.Equal(t, StatusPresent, DeriveStatus(rec, shiftStart, 15))
}

func TestDeriveStatus_LateAfterGrace(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	shiftStart, _ := time.Parse("15:04", "09:00")

	rec := Attendance{
		Date:    date,
		ClockIn: timePtr(time.Date(2024, 3, 4, 9, 20, 0, 0, time.UTC)),
	}

	assert.Equal(t, StatusLate, DeriveStatus(rec, shiftStart, 15))
}

func TestDeriveStatus_ExactlyAtGraceBoundaryIsPresent(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	shiftStart, _ := time.Parse("15:04", "09:00")

	rec := Attendance{
		Date:    date,
		ClockIn: timePtr(time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)),
	}

	assert.Equal(t, StatusPresent, DeriveStatus(rec, shiftStart, 15))
}

func TestDeriveStatus_NoClockInIsAbsent(t *testing.T) {
	shiftStart, _ := time.Parse("15:04", "09:00")

	rec := Attendance{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, StatusAbsent, DeriveStatus(rec, shiftStart, 15))
}

func TestDeriveStatus_BothClocksIsCompleted(t *testing.T) {
	shiftStart, _ := time.Parse("15:04", "09:00")

	rec := Attendance{
		Date:     time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		ClockIn:  timePtr(time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)),
		ClockOut: timePtr(time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)),
	}

	assert.Equal(t, StatusCompleted, DeriveStatus(rec, shiftStart, 15))
}

func TestDeriveStatus_OnLeaveOverridesClockData(t *testing.T) {
	shiftStart, _ := time.Parse("15:04", "09:00")

	rec := Attendance{
		Date:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		ClockIn: timePtr(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)),
		Status:  StatusOnLeave,
	}

	assert.Equal(t, StatusOnLeave, DeriveStatus(rec, shiftStart, 15))
}

func TestIsOpen(t *testing.T) {
	in := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)

	assert.True(t, Attendance{ClockIn: &in}.IsOpen())
	assert.False(t, Attendance{ClockIn: &in, ClockOut: &out}.IsOpen())
	assert.False(t, Attendance{}.IsOpen())
}
