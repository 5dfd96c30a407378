package entity

import (
	"time"

	"github.com/google/uuid"
)

type BankTransferStatus string

const (
	BankTransferStatusPending  BankTransferStatus = "PENDING"
	BankTransferStatusApproved BankTransferStatus = "APPROVED"
	BankTransferStatusRejected BankTransferStatus = "REJECTED"
)

// BankTransfer is the manual-confirmation leg of a BANK_TRANSFER payment.
// APPROVED and REJECTED are terminal.
type BankTransfer struct {
	Id                  uuid.UUID
	PaymentId           uuid.UUID
	DepositorName       string
	ExpectedDepositDate time.Time
	Status              BankTransferStatus
	ApprovedAt          *time.Time
	ApprovedBy          *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsTerminal reports whether the transfer has already been decided.
func (b *BankTransfer) IsTerminal() bool {
	return b.Status == BankTransferStatusApproved || b.Status == BankTransferStatusRejected
}
