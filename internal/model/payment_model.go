package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Payment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OrderId    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Method     string    `gorm:"type:varchar(20);not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentKey *string   `gorm:"type:varchar(255)"`
	PaidAt     *time.Time
	// Raw confirm response from the gateway, kept for dispute handling.
	GatewayPayload datatypes.JSON
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`

	Purchase Purchase `gorm:"foreignKey:PurchaseId"`
}

func (Payment) TableName() string {
	return "payments"
}
