package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	Update(ctx context.Context, coupon *entity.Coupon) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error)
	// FindByCode matches case-insensitively.
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Coupon, error)
	// ReplaceCourses rewrites the applicable-course restriction set.
	ReplaceCourses(ctx context.Context, couponId uuid.UUID, courseIds []uuid.UUID) error

	CountUsagesByUser(ctx context.Context, couponId, userId uuid.UUID) (int64, error)
	FindUsageByPurchase(ctx context.Context, purchaseId uuid.UUID) (*entity.CouponUsage, error)
	// CreateUsage records the redemption unless one already exists for the
	// purchase; returns false when the unique index swallowed the insert.
	CreateUsage(ctx context.Context, usage *entity.CouponUsage) (bool, error)
	// IncrementUsage bumps usage_count atomically in SQL, never
	// read-modify-write.
	IncrementUsage(ctx context.Context, couponId uuid.UUID) error
}
