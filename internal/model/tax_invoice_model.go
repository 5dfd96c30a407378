package model

import (
	"time"

	"github.com/google/uuid"
)

type TaxInvoice struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName   string    `gorm:"type:varchar(255);not null"`
	BusinessNumber string    `gorm:"type:varchar(30);not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'REQUESTED'"`
	RequestedAt    time.Time `gorm:"autoCreateTime"`
	IssuedAt       *time.Time

	Purchase Purchase `gorm:"foreignKey:PurchaseId"`
}

func (TaxInvoice) TableName() string {
	return "tax_invoices"
}
