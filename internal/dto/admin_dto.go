package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminRejectRefundRequest struct {
	RejectReason string `json:"reject_reason" validate:"required,min=1,max=1000"`
}

type AdminCreateCouponRequest struct {
	Code                string      `json:"code"`
	Description         string      `json:"description"`
	DiscountType        string      `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue       int         `json:"discount_value" validate:"required,gt=0"`
	MinPurchaseAmount   *int        `json:"min_purchase_amount"`
	MaxDiscountAmount   *int        `json:"max_discount_amount"`
	ValidFrom           time.Time   `json:"valid_from" validate:"required"`
	ValidUntil          *time.Time  `json:"valid_until"`
	UsageLimit          *int        `json:"usage_limit"`
	UsageLimitPerUser   *int        `json:"usage_limit_per_user"`
	ApplicableCourseIds []uuid.UUID `json:"applicable_course_ids"`
}

type AdminUpdateCouponRequest struct {
	Description         *string     `json:"description"`
	DiscountValue       *int        `json:"discount_value"`
	MinPurchaseAmount   *int        `json:"min_purchase_amount"`
	MaxDiscountAmount   *int        `json:"max_discount_amount"`
	ValidUntil          *time.Time  `json:"valid_until"`
	UsageLimit          *int        `json:"usage_limit"`
	UsageLimitPerUser   *int        `json:"usage_limit_per_user"`
	IsActive            *bool       `json:"is_active"`
	ApplicableCourseIds []uuid.UUID `json:"applicable_course_ids"`
}

type AdminBankTransferResponse struct {
	Id                  uuid.UUID  `json:"id"`
	PaymentId           uuid.UUID  `json:"payment_id"`
	DepositorName       string     `json:"depositor_name"`
	ExpectedDepositDate time.Time  `json:"expected_deposit_date"`
	Status              string     `json:"status"`
	ApprovedAt          *time.Time `json:"approved_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type AdminTaxInvoiceResponse struct {
	Id             uuid.UUID  `json:"id"`
	PurchaseId     uuid.UUID  `json:"purchase_id"`
	BusinessName   string     `json:"business_name"`
	BusinessNumber string     `json:"business_number"`
	Status         string     `json:"status"`
	RequestedAt    time.Time  `json:"requested_at"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
}
