package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRefundRequest struct {
	PurchaseId uuid.UUID `json:"purchase_id" validate:"required"`
	Reason     string    `json:"reason" validate:"required,min=1,max=1000"`

	// Required when the purchase was paid by bank transfer.
	AccountBank   string `json:"account_bank"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
}

type RefundResponse struct {
	Id           uuid.UUID  `json:"id"`
	PurchaseId   uuid.UUID  `json:"purchase_id"`
	Reason       string     `json:"reason"`
	RefundAmount int        `json:"refund_amount"`
	Status       string     `json:"status"`
	RejectReason *string    `json:"reject_reason,omitempty"`
	RequestedAt  time.Time  `json:"requested_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
}
