package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusCanceled  PaymentStatus = "CANCELED"
)

// Payment is the settlement record tied 1:1 to a Purchase. OrderId is the
// externally visible correlation id handed to the gateway; PaymentKey is
// assigned by the gateway and stays nil until the payment is confirmed.
type Payment struct {
	Id             uuid.UUID
	PurchaseId     uuid.UUID
	OrderId        string
	Method         PaymentMethod
	Status         PaymentStatus
	PaymentKey     *string
	PaidAt         *time.Time
	GatewayPayload json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
