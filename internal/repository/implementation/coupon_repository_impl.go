package implementation

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type couponRepositoryImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) contract.CouponRepository {
	return &couponRepositoryImpl{db: db}
}

func (r *couponRepositoryImpl) Create(ctx context.Context, coupon *entity.Coupon) error {
	return r.db.WithContext(ctx).Create(mapCouponToModel(coupon)).Error
}

func (r *couponRepositoryImpl) Update(ctx context.Context, coupon *entity.Coupon) error {
	mc := mapCouponToModel(coupon)
	return r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ?", coupon.Id).
		Updates(map[string]interface{}{
			"description":          mc.Description,
			"discount_type":        mc.DiscountType,
			"discount_value":       mc.DiscountValue,
			"min_purchase_amount":  mc.MinPurchaseAmount,
			"max_discount_amount":  mc.MaxDiscountAmount,
			"valid_from":           mc.ValidFrom,
			"valid_until":          mc.ValidUntil,
			"usage_limit":          mc.UsageLimit,
			"usage_limit_per_user": mc.UsageLimitPerUser,
			"is_active":            mc.IsActive,
		}).Error
}

func (r *couponRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Coupon, error) {
	var mc model.Coupon
	query := r.db.WithContext(ctx).Preload("ApplicableCourses")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapCouponToEntity(&mc), nil
}

func (r *couponRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	var mc model.Coupon
	err := r.db.WithContext(ctx).
		Preload("ApplicableCourses").
		Where("LOWER(code) = LOWER(?)", code).
		First(&mc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapCouponToEntity(&mc), nil
}

func (r *couponRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Coupon, error) {
	var mcs []*model.Coupon
	query := r.db.WithContext(ctx).Preload("ApplicableCourses")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mcs).Error; err != nil {
		return nil, err
	}
	coupons := make([]*entity.Coupon, 0, len(mcs))
	for _, mc := range mcs {
		coupons = append(coupons, mapCouponToEntity(mc))
	}
	return coupons, nil
}

func (r *couponRepositoryImpl) ReplaceCourses(ctx context.Context, couponId uuid.UUID, courseIds []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("coupon_id = ?", couponId).
		Delete(&model.CouponCourse{}).Error; err != nil {
		return err
	}
	if len(courseIds) == 0 {
		return nil
	}
	rows := make([]model.CouponCourse, 0, len(courseIds))
	for _, courseId := range courseIds {
		rows = append(rows, model.CouponCourse{
			Id:       uuid.New(),
			CouponId: couponId,
			CourseId: courseId,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *couponRepositoryImpl) CountUsagesByUser(ctx context.Context, couponId, userId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", couponId, userId).
		Count(&count).Error
	return count, err
}

func (r *couponRepositoryImpl) FindUsageByPurchase(ctx context.Context, purchaseId uuid.UUID) (*entity.CouponUsage, error) {
	var mu model.CouponUsage
	if err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).First(&mu).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity.CouponUsage{
		Id:             mu.Id,
		CouponId:       mu.CouponId,
		PurchaseId:     mu.PurchaseId,
		UserId:         mu.UserId,
		DiscountAmount: mu.DiscountAmount,
		UsedAt:         mu.UsedAt,
	}, nil
}

func (r *couponRepositoryImpl) CreateUsage(ctx context.Context, usage *entity.CouponUsage) (bool, error) {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.CouponUsage{
			Id:             usage.Id,
			CouponId:       usage.CouponId,
			PurchaseId:     usage.PurchaseId,
			UserId:         usage.UserId,
			DiscountAmount: usage.DiscountAmount,
		})
	return tx.RowsAffected > 0, tx.Error
}

func (r *couponRepositoryImpl) IncrementUsage(ctx context.Context, couponId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ?", couponId).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error
}

func mapCouponToModel(coupon *entity.Coupon) *model.Coupon {
	return &model.Coupon{
		Id:                coupon.Id,
		Code:              coupon.Code,
		Description:       coupon.Description,
		DiscountType:      string(coupon.DiscountType),
		DiscountValue:     coupon.DiscountValue,
		MinPurchaseAmount: coupon.MinPurchaseAmount,
		MaxDiscountAmount: coupon.MaxDiscountAmount,
		ValidFrom:         coupon.ValidFrom,
		ValidUntil:        coupon.ValidUntil,
		UsageLimit:        coupon.UsageLimit,
		UsageLimitPerUser: coupon.UsageLimitPerUser,
		UsageCount:        coupon.UsageCount,
		IsActive:          coupon.IsActive,
	}
}

func mapCouponToEntity(mc *model.Coupon) *entity.Coupon {
	coupon := &entity.Coupon{
		Id:                mc.Id,
		Code:              mc.Code,
		Description:       mc.Description,
		DiscountType:      entity.DiscountType(mc.DiscountType),
		DiscountValue:     mc.DiscountValue,
		MinPurchaseAmount: mc.MinPurchaseAmount,
		MaxDiscountAmount: mc.MaxDiscountAmount,
		ValidFrom:         mc.ValidFrom,
		ValidUntil:        mc.ValidUntil,
		UsageLimit:        mc.UsageLimit,
		UsageLimitPerUser: mc.UsageLimitPerUser,
		UsageCount:        mc.UsageCount,
		IsActive:          mc.IsActive,
		CreatedAt:         mc.CreatedAt,
		UpdatedAt:         mc.UpdatedAt,
	}
	for _, cc := range mc.ApplicableCourses {
		coupon.ApplicableCourseIds = append(coupon.ApplicableCourseIds, cc.CourseId)
	}
	return coupon
}
