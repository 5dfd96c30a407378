package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithinRefundWindow(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, withinRefundWindow(now.Add(-time.Hour), now))
	assert.True(t, withinRefundWindow(now.Add(-6*24*time.Hour), now))
	assert.True(t, withinRefundWindow(now.Add(-RefundWindow), now))
	assert.False(t, withinRefundWindow(now.Add(-RefundWindow-time.Minute), now))
	assert.False(t, withinRefundWindow(now.Add(-30*24*time.Hour), now))
}

func TestProgressAllowsRefund(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		total     int64
		want      bool
	}{
		{"nothing watched", 0, 20, true},
		{"exactly at ceiling", 2, 20, true},
		{"just over ceiling", 3, 20, false},
		{"everything watched", 20, 20, false},
		{"course without videos", 0, 0, true},
		{"one of one watched", 1, 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, progressAllowsRefund(tc.completed, tc.total))
		})
	}
}
