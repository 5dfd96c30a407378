package implementation

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type purchaseRepositoryImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) contract.PurchaseRepository {
	return &purchaseRepositoryImpl{db: db}
}

func (r *purchaseRepositoryImpl) Create(ctx context.Context, purchase *entity.Purchase) error {
	mp := &model.Purchase{
		Id:         purchase.Id,
		UserId:     purchase.UserId,
		CourseId:   purchase.CourseId,
		Amount:     purchase.Amount,
		BuyerName:  purchase.BuyerName,
		BuyerEmail: purchase.BuyerEmail,
		BuyerPhone: purchase.BuyerPhone,
		Status:     string(purchase.Status),
	}
	if purchase.Discount != nil {
		mp.OriginalAmount = &purchase.Discount.OriginalAmount
		mp.DiscountAmount = &purchase.Discount.Amount
		mp.CouponId = &purchase.Discount.CouponId
	}
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *purchaseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Purchase, error) {
	var mp model.Purchase
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapPurchaseToEntity(&mp), nil
}

func (r *purchaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	var mps []*model.Purchase
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mps).Error; err != nil {
		return nil, err
	}
	purchases := make([]*entity.Purchase, 0, len(mps))
	for _, mp := range mps {
		purchases = append(purchases, mapPurchaseToEntity(mp))
	}
	return purchases, nil
}

func (r *purchaseRepositoryImpl) FindAllDetailed(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	var mps []*model.Purchase
	query := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Payment").
		Preload("Receipt").
		Preload("Refund")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mps).Error; err != nil {
		return nil, err
	}
	purchases := make([]*entity.Purchase, 0, len(mps))
	for _, mp := range mps {
		p := mapPurchaseToEntity(mp)
		p.Course = mapCourseToEntity(&mp.Course)
		if mp.Payment != nil {
			p.Payment = mapPaymentToEntity(mp.Payment)
		}
		if mp.Receipt != nil {
			p.Receipt = mapReceiptToEntity(mp.Receipt)
		}
		if mp.Refund != nil {
			p.Refund = mapRefundToEntity(mp.Refund)
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (r *purchaseRepositoryImpl) DeletePending(ctx context.Context, userId, courseId uuid.UUID) error {
	db := r.db.WithContext(ctx)

	pendingIds := db.Model(&model.Purchase{}).
		Select("id").
		Where("user_id = ? AND course_id = ? AND status = ?", userId, courseId, string(entity.PurchaseStatusPending))
	pendingPaymentIds := db.Model(&model.Payment{}).
		Select("id").
		Where("purchase_id IN (?)", pendingIds)

	// Dependents go first; payments and bank_transfers reference the
	// purchase row through non-cascading foreign keys.
	if err := db.Where("payment_id IN (?)", pendingPaymentIds).Delete(&model.BankTransfer{}).Error; err != nil {
		return err
	}
	if err := db.Where("purchase_id IN (?)", pendingIds).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	return db.
		Where("user_id = ? AND course_id = ? AND status = ?", userId, courseId, string(entity.PurchaseStatusPending)).
		Delete(&model.Purchase{}).Error
}

func (r *purchaseRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PurchaseStatus) error {
	return r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func mapPurchaseToEntity(mp *model.Purchase) *entity.Purchase {
	p := &entity.Purchase{
		Id:         mp.Id,
		UserId:     mp.UserId,
		CourseId:   mp.CourseId,
		Amount:     mp.Amount,
		BuyerName:  mp.BuyerName,
		BuyerEmail: mp.BuyerEmail,
		BuyerPhone: mp.BuyerPhone,
		Status:     entity.PurchaseStatus(mp.Status),
		CreatedAt:  mp.CreatedAt,
		UpdatedAt:  mp.UpdatedAt,
	}
	// Discount bookkeeping columns travel together or not at all.
	if mp.CouponId != nil && mp.OriginalAmount != nil && mp.DiscountAmount != nil {
		p.Discount = &entity.Discount{
			CouponId:       *mp.CouponId,
			OriginalAmount: *mp.OriginalAmount,
			Amount:         *mp.DiscountAmount,
		}
	}
	return p
}
