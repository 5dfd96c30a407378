package model

import (
	"time"

	"github.com/google/uuid"
)

type BankTransfer struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentId           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	DepositorName       string    `gorm:"type:varchar(100);not null"`
	ExpectedDepositDate time.Time `gorm:"not null"`
	Status              string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApprovedAt          *time.Time
	ApprovedBy          *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time  `gorm:"autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime"`

	Payment Payment `gorm:"foreignKey:PaymentId"`
}

func (BankTransfer) TableName() string {
	return "bank_transfers"
}
