package entity

import (
	"time"

	"github.com/google/uuid"
)

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusCompleted RefundStatus = "COMPLETED"
	RefundStatusRejected  RefundStatus = "REJECTED"
)

// RefundAccount holds the payout account for bank-transfer refunds. There is
// no gateway to push money back to, so the customer must provide one.
type RefundAccount struct {
	Bank   string
	Number string
	Holder string
}

// Refund is a request, and later a decision, to reverse a completed purchase.
// COMPLETED and REJECTED are terminal.
type Refund struct {
	Id           uuid.UUID
	PurchaseId   uuid.UUID
	Reason       string
	RefundAmount int
	Account      *RefundAccount
	Status       RefundStatus
	RejectReason *string
	RequestedAt  time.Time
	ProcessedAt  *time.Time
}

// IsTerminal reports whether the refund has already been decided.
func (r *Refund) IsTerminal() bool {
	return r.Status == RefundStatusCompleted || r.Status == RefundStatusRejected
}
