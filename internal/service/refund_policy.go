package service

import (
	"time"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

const (
	// RefundWindow is how long after completion a purchase stays refundable.
	RefundWindow = 7 * 24 * time.Hour
	// MaxRefundableProgressPercent is the most of a course a customer can
	// have consumed and still qualify for a refund.
	MaxRefundableProgressPercent = 10.0
)

// withinRefundWindow reports whether the purchase is still inside the
// refund period at the given instant.
func withinRefundWindow(completedAt, now time.Time) bool {
	return now.Sub(completedAt) <= RefundWindow
}

// progressPercent converts watched-video counts to a percentage. A course
// with no videos counts as zero progress.
func progressPercent(completedVideos, totalVideos int64) float64 {
	if totalVideos <= 0 {
		return 0
	}
	return float64(completedVideos) / float64(totalVideos) * 100
}

// progressAllowsRefund applies the consumption ceiling.
func progressAllowsRefund(completedVideos, totalVideos int64) bool {
	return progressPercent(completedVideos, totalVideos) <= MaxRefundableProgressPercent
}
