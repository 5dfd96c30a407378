package model

import (
	"time"

	"github.com/google/uuid"
)

type Receipt struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ReceiptNumber string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Amount        int       `gorm:"not null"`
	IssuedAt      time.Time `gorm:"autoCreateTime"`
}

func (Receipt) TableName() string {
	return "receipts"
}
