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

type refundRepositoryImpl struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) contract.RefundRepository {
	return &refundRepositoryImpl{db: db}
}

func (r *refundRepositoryImpl) Create(ctx context.Context, refund *entity.Refund) error {
	mr := &model.Refund{
		Id:           refund.Id,
		PurchaseId:   refund.PurchaseId,
		Reason:       refund.Reason,
		RefundAmount: refund.RefundAmount,
		Status:       string(refund.Status),
	}
	if refund.Account != nil {
		mr.AccountBank = &refund.Account.Bank
		mr.AccountNumber = &refund.Account.Number
		mr.AccountHolder = &refund.Account.Holder
	}
	return r.db.WithContext(ctx).Create(mr).Error
}

func (r *refundRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Refund, error) {
	var mr model.Refund
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapRefundToEntity(&mr), nil
}

func (r *refundRepositoryImpl) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Refund, error) {
	var mr model.Refund
	if err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapRefundToEntity(&mr), nil
}

func (r *refundRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Refund, error) {
	var mrs []*model.Refund
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mrs).Error; err != nil {
		return nil, err
	}
	refunds := make([]*entity.Refund, 0, len(mrs))
	for _, mr := range mrs {
		refunds = append(refunds, mapRefundToEntity(mr))
	}
	return refunds, nil
}

func (r *refundRepositoryImpl) UpdateIfStatus(ctx context.Context, refund *entity.Refund, expected entity.RefundStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.Refund{}).
		Where("id = ? AND status = ?", refund.Id, string(expected)).
		Updates(map[string]interface{}{
			"status":        string(refund.Status),
			"reject_reason": refund.RejectReason,
			"processed_at":  refund.ProcessedAt,
		})
	return tx.RowsAffected > 0, tx.Error
}

func mapRefundToEntity(mr *model.Refund) *entity.Refund {
	refund := &entity.Refund{
		Id:           mr.Id,
		PurchaseId:   mr.PurchaseId,
		Reason:       mr.Reason,
		RefundAmount: mr.RefundAmount,
		Status:       entity.RefundStatus(mr.Status),
		RejectReason: mr.RejectReason,
		RequestedAt:  mr.RequestedAt,
		ProcessedAt:  mr.ProcessedAt,
	}
	if mr.AccountBank != nil && mr.AccountNumber != nil && mr.AccountHolder != nil {
		refund.Account = &entity.RefundAccount{
			Bank:   *mr.AccountBank,
			Number: *mr.AccountNumber,
			Holder: *mr.AccountHolder,
		}
	}
	return refund
}
