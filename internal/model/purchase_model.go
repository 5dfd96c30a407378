package model

import (
	"time"

	"github.com/google/uuid"
)

type Purchase struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID  `gorm:"type:uuid;not null;index:idx_purchases_user_course"`
	CourseId       uuid.UUID  `gorm:"type:uuid;not null;index:idx_purchases_user_course"`
	Amount         int        `gorm:"not null"`
	OriginalAmount *int       // set only when a discount applied
	DiscountAmount *int       // paired with OriginalAmount
	CouponId       *uuid.UUID `gorm:"type:uuid;index"`
	BuyerName      string     `gorm:"type:varchar(100);not null"`
	BuyerEmail     string     `gorm:"type:varchar(255);not null"`
	BuyerPhone     string     `gorm:"type:varchar(20);not null"`
	Status         string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	Course  Course   `gorm:"foreignKey:CourseId"`
	User    User     `gorm:"foreignKey:UserId"`
	Payment *Payment `gorm:"foreignKey:PurchaseId"`
	Receipt *Receipt `gorm:"foreignKey:PurchaseId"`
	Refund  *Refund  `gorm:"foreignKey:PurchaseId"`
}

func (Purchase) TableName() string {
	return "purchases"
}
