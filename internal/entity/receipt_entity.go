package entity

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is the immutable proof of payment, issued once per purchase.
type Receipt struct {
	Id            uuid.UUID
	PurchaseId    uuid.UUID
	ReceiptNumber string
	Amount        int
	IssuedAt      time.Time
}
