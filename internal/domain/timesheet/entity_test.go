package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHours(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		threshold    float64
		wantRegular  float64
		wantOvertime float64
	}{
		{"under threshold", 38, 40, 38, 0},
		{"exactly at threshold", 40, 40, 40, 0},
		{"over threshold", 45, 40, 40, 5},
		{"zero hours", 0, 40, 0, 0},
		{"fractional overtime", 40.5, 40, 40, 0.5},
		{"custom threshold", 45, 35, 35, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regular, overtime := SplitHours(tt.total, tt.threshold)
			assert.InDelta(t, tt.wantRegular, regular, 0.001)
			assert.InDelta(t, tt.wantOvertime, overtime, 0.001)
			assert.InDelta(t, tt.total, regular+overtime, 0.001)
		})
	}
}

func TestStatusIsFinal(t *testing.T) {
	assert.False(t, StatusSubmitted.IsFinal())
	assert.False(t, StatusPendingReview.IsFinal())
	assert.True(t, StatusApproved.IsFinal())
	assert.True(t, StatusRejected.IsFinal())
}
