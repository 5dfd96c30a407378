package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int            { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestCalculateDiscount(t *testing.T) {
	cases := []struct {
		name   string
		coupon Coupon
		price  int
		want   int
	}{
		{
			name:   "fixed amount below price",
			coupon: Coupon{DiscountType: DiscountTypeFixedAmount, DiscountValue: 20000},
			price:  100000,
			want:   20000,
		},
		{
			name:   "fixed amount capped at price",
			coupon: Coupon{DiscountType: DiscountTypeFixedAmount, DiscountValue: 150000},
			price:  100000,
			want:   100000,
		},
		{
			name:   "percentage without cap",
			coupon: Coupon{DiscountType: DiscountTypePercentage, DiscountValue: 30},
			price:  100000,
			want:   30000,
		},
		{
			name:   "percentage hits max discount cap",
			coupon: Coupon{DiscountType: DiscountTypePercentage, DiscountValue: 30, MaxDiscountAmount: intPtr(25000)},
			price:  100000,
			want:   25000,
		},
		{
			name:   "percentage floors fractional result",
			coupon: Coupon{DiscountType: DiscountTypePercentage, DiscountValue: 33},
			price:  99999,
			want:   32999,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.coupon.CalculateDiscount(tc.price))
		})
	}
}

func TestValidateOrderOfChecks(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	courseId := uuid.New()
	otherCourseId := uuid.New()

	base := func() *Coupon {
		return &Coupon{
			DiscountType:  DiscountTypeFixedAmount,
			DiscountValue: 5000,
			ValidFrom:     now.Add(-24 * time.Hour),
			IsActive:      true,
		}
	}

	t.Run("valid coupon passes", func(t *testing.T) {
		assert.NoError(t, base().Validate(now, courseId, 0, 50000))
	})

	t.Run("inactive", func(t *testing.T) {
		c := base()
		c.IsActive = false
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponInactive)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := base()
		c.ValidFrom = now.Add(time.Hour)
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponNotYetValid)
	})

	t.Run("expired", func(t *testing.T) {
		c := base()
		c.ValidUntil = timePtr(now.Add(-time.Hour))
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponExpired)
	})

	t.Run("global usage limit reached", func(t *testing.T) {
		c := base()
		c.UsageLimit = intPtr(10)
		c.UsageCount = 10
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponUsageLimit)
	})

	t.Run("per user limit reached", func(t *testing.T) {
		c := base()
		c.UsageLimitPerUser = intPtr(1)
		assert.ErrorIs(t, c.Validate(now, courseId, 1, 50000), ErrCouponAlreadyUsed)
	})

	t.Run("not applicable to course", func(t *testing.T) {
		c := base()
		c.ApplicableCourseIds = []uuid.UUID{otherCourseId}
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponNotApplicable)
	})

	t.Run("applicable list containing course passes", func(t *testing.T) {
		c := base()
		c.ApplicableCourseIds = []uuid.UUID{otherCourseId, courseId}
		assert.NoError(t, c.Validate(now, courseId, 0, 50000))
	})

	t.Run("below minimum purchase", func(t *testing.T) {
		c := base()
		c.MinPurchaseAmount = intPtr(100000)
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponMinPurchase)
	})

	t.Run("inactive wins over expiry", func(t *testing.T) {
		c := base()
		c.IsActive = false
		c.ValidUntil = timePtr(now.Add(-time.Hour))
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponInactive)
	})

	t.Run("expiry wins over usage limit", func(t *testing.T) {
		c := base()
		c.ValidUntil = timePtr(now.Add(-time.Hour))
		c.UsageLimit = intPtr(1)
		c.UsageCount = 1
		assert.ErrorIs(t, c.Validate(now, courseId, 0, 50000), ErrCouponExpired)
	})
}
