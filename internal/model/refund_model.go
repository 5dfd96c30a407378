package model

import (
	"time"

	"github.com/google/uuid"
)

type Refund struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Reason        string    `gorm:"type:text;not null"`
	RefundAmount  int       `gorm:"not null"`
	AccountBank   *string   `gorm:"type:varchar(50)"`
	AccountNumber *string   `gorm:"type:varchar(50)"`
	AccountHolder *string   `gorm:"type:varchar(100)"`
	Status        string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RejectReason  *string   `gorm:"type:text"`
	RequestedAt   time.Time `gorm:"autoCreateTime"`
	ProcessedAt   *time.Time

	Purchase Purchase `gorm:"foreignKey:PurchaseId"`
}

func (Refund) TableName() string {
	return "refunds"
}
