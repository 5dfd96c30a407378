package model

import (
	"time"

	"github.com/google/uuid"
)

type Coupon struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code              string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description       string    `gorm:"type:text"`
	DiscountType      string    `gorm:"type:varchar(20);not null"`
	DiscountValue     int       `gorm:"not null"`
	MinPurchaseAmount *int
	MaxDiscountAmount *int
	ValidFrom         time.Time `gorm:"not null"`
	ValidUntil        *time.Time
	UsageLimit        *int
	UsageLimitPerUser *int
	UsageCount        int       `gorm:"not null;default:0"`
	IsActive          bool      `gorm:"default:true;index"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`

	ApplicableCourses []CouponCourse `gorm:"foreignKey:CouponId"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// CouponCourse restricts a coupon to a set of courses. No rows = no restriction.
type CouponCourse struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CouponId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_courses_pair"`
	CourseId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_coupon_courses_pair"`
}

func (CouponCourse) TableName() string {
	return "coupon_courses"
}

type CouponUsage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CouponId       uuid.UUID `gorm:"type:uuid;not null;index"`
	PurchaseId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	DiscountAmount int       `gorm:"not null"`
	UsedAt         time.Time `gorm:"autoCreateTime"`

	Coupon Coupon `gorm:"foreignKey:CouponId"`
}

func (CouponUsage) TableName() string {
	return "coupon_usages"
}
