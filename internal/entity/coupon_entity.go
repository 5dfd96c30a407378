package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

// Coupon validation failures, ordered the way Validate checks them.
var (
	ErrCouponNotFound        = errors.New("coupon code does not exist")
	ErrCouponInactive        = errors.New("coupon is not active")
	ErrCouponNotYetValid     = errors.New("coupon is not valid yet")
	ErrCouponExpired         = errors.New("coupon has expired")
	ErrCouponUsageLimit      = errors.New("coupon usage limit exceeded")
	ErrCouponAlreadyUsed     = errors.New("coupon already used by this user")
	ErrCouponNotApplicable   = errors.New("coupon is not applicable to this course")
	ErrCouponMinPurchase     = errors.New("purchase amount below coupon minimum")
)

type Coupon struct {
	Id                uuid.UUID
	Code              string
	Description       string
	DiscountType      DiscountType
	DiscountValue     int
	MinPurchaseAmount *int
	MaxDiscountAmount *int // applies to PERCENTAGE only
	ValidFrom         time.Time
	ValidUntil        *time.Time
	UsageLimit        *int
	UsageLimitPerUser *int
	UsageCount        int
	IsActive          bool
	// Empty means the coupon applies to every course.
	ApplicableCourseIds []uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CouponUsage is the per-redemption record. Its creation is what increments
// Coupon.UsageCount, always inside the completion transaction.
type CouponUsage struct {
	Id             uuid.UUID
	CouponId       uuid.UUID
	PurchaseId     uuid.UUID
	UserId         uuid.UUID
	DiscountAmount int
	UsedAt         time.Time
}

// Validate checks redemption rules in order; the first failure wins.
// userUsageCount is the caller's prior redemption count for this coupon.
func (c *Coupon) Validate(now time.Time, courseId uuid.UUID, userUsageCount int, coursePrice int) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.Before(c.ValidFrom) {
		return ErrCouponNotYetValid
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return ErrCouponExpired
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return ErrCouponUsageLimit
	}
	if c.UsageLimitPerUser != nil && userUsageCount >= *c.UsageLimitPerUser {
		return ErrCouponAlreadyUsed
	}
	if len(c.ApplicableCourseIds) > 0 {
		applicable := false
		for _, id := range c.ApplicableCourseIds {
			if id == courseId {
				applicable = true
				break
			}
		}
		if !applicable {
			return ErrCouponNotApplicable
		}
	}
	if c.MinPurchaseAmount != nil && coursePrice < *c.MinPurchaseAmount {
		return fmt.Errorf("%w: minimum is %d", ErrCouponMinPurchase, *c.MinPurchaseAmount)
	}
	return nil
}

// CalculateDiscount returns the discount for the given price.
// PERCENTAGE discounts are floored and capped at MaxDiscountAmount;
// FIXED_AMOUNT discounts never exceed the price itself.
func (c *Coupon) CalculateDiscount(coursePrice int) int {
	if c.DiscountType == DiscountTypePercentage {
		discount := coursePrice * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && discount > *c.MaxDiscountAmount {
			discount = *c.MaxDiscountAmount
		}
		return discount
	}
	if c.DiscountValue > coursePrice {
		return coursePrice
	}
	return c.DiscountValue
}
