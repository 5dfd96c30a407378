package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaxInvoiceStatus string

const (
	TaxInvoiceStatusRequested TaxInvoiceStatus = "REQUESTED"
	TaxInvoiceStatusIssued    TaxInvoiceStatus = "ISSUED"
)

// TaxInvoice records requested/issued status only. Actual tax document
// generation is handled out of band.
type TaxInvoice struct {
	Id             uuid.UUID
	PurchaseId     uuid.UUID
	BusinessName   string
	BusinessNumber string
	Status         TaxInvoiceStatus
	RequestedAt    time.Time
	IssuedAt       *time.Time
}
