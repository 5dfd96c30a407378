package implementation

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepositoryImpl struct {
	db *gorm.DB
}

func NewReceiptRepository(db *gorm.DB) contract.ReceiptRepository {
	return &receiptRepositoryImpl{db: db}
}

func (r *receiptRepositoryImpl) Create(ctx context.Context, receipt *entity.Receipt) (bool, error) {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Receipt{
			Id:            receipt.Id,
			PurchaseId:    receipt.PurchaseId,
			ReceiptNumber: receipt.ReceiptNumber,
			Amount:        receipt.Amount,
		})
	return tx.RowsAffected > 0, tx.Error
}

func (r *receiptRepositoryImpl) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Receipt, error) {
	var mr model.Receipt
	if err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapReceiptToEntity(&mr), nil
}

func mapReceiptToEntity(mr *model.Receipt) *entity.Receipt {
	return &entity.Receipt{
		Id:            mr.Id,
		PurchaseId:    mr.PurchaseId,
		ReceiptNumber: mr.ReceiptNumber,
		Amount:        mr.Amount,
		IssuedAt:      mr.IssuedAt,
	}
}
