package entity

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
	PurchaseStatusCanceled  PurchaseStatus = "CANCELED"
	PurchaseStatusRefunded  PurchaseStatus = "REFUNDED"
)

// Discount records a coupon applied to a purchase. Either the whole struct is
// present or no discount applied; the pairing of original amount and discount
// amount is enforced by the type, not by two independent nullable columns.
type Discount struct {
	CouponId       uuid.UUID
	OriginalAmount int
	Amount         int
}

// Purchase is a priced intent to acquire one course by one user.
// Amount is the final, post-discount price. Buyer fields are a snapshot of
// the contact details entered at checkout; the user record can change later.
type Purchase struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	CourseId   uuid.UUID
	Amount     int
	Discount   *Discount
	BuyerName  string
	BuyerEmail string
	BuyerPhone string
	Status     PurchaseStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Populated by the detailed finders only.
	Course  *Course
	Payment *Payment
	Receipt *Receipt
	Refund  *Refund
}
