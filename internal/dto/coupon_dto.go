package dto

import (
	"time"

	"github.com/google/uuid"
)

type ValidateCouponRequest struct {
	Code     string    `json:"code" validate:"required,min=1,max=50"`
	CourseId uuid.UUID `json:"course_id" validate:"required"`
}

type ValidateCouponResponse struct {
	CouponId       uuid.UUID `json:"coupon_id"`
	Code           string    `json:"code"`
	DiscountType   string    `json:"discount_type"`
	DiscountValue  int       `json:"discount_value"`
	DiscountAmount int       `json:"discount_amount"`
	OriginalAmount int       `json:"original_amount"`
	FinalAmount    int       `json:"final_amount"`
}

type CouponResponse struct {
	Id                  uuid.UUID   `json:"id"`
	Code                string      `json:"code"`
	Description         string      `json:"description"`
	DiscountType        string      `json:"discount_type"`
	DiscountValue       int         `json:"discount_value"`
	MinPurchaseAmount   *int        `json:"min_purchase_amount,omitempty"`
	MaxDiscountAmount   *int        `json:"max_discount_amount,omitempty"`
	ValidFrom           time.Time   `json:"valid_from"`
	ValidUntil          *time.Time  `json:"valid_until,omitempty"`
	UsageLimit          *int        `json:"usage_limit,omitempty"`
	UsageLimitPerUser   *int        `json:"usage_limit_per_user,omitempty"`
	UsageCount          int         `json:"usage_count"`
	IsActive            bool        `json:"is_active"`
	ApplicableCourseIds []uuid.UUID `json:"applicable_course_ids,omitempty"`
}
