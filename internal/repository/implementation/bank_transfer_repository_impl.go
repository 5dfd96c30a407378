package implementation

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"

	"gorm.io/gorm"
)

type bankTransferRepositoryImpl struct {
	db *gorm.DB
}

func NewBankTransferRepository(db *gorm.DB) contract.BankTransferRepository {
	return &bankTransferRepositoryImpl{db: db}
}

func (r *bankTransferRepositoryImpl) Create(ctx context.Context, transfer *entity.BankTransfer) error {
	return r.db.WithContext(ctx).Create(&model.BankTransfer{
		Id:                  transfer.Id,
		PaymentId:           transfer.PaymentId,
		DepositorName:       transfer.DepositorName,
		ExpectedDepositDate: transfer.ExpectedDepositDate,
		Status:              string(transfer.Status),
	}).Error
}

func (r *bankTransferRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BankTransfer, error) {
	var mt model.BankTransfer
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapBankTransferToEntity(&mt), nil
}

func (r *bankTransferRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BankTransfer, error) {
	var mts []*model.BankTransfer
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mts).Error; err != nil {
		return nil, err
	}
	transfers := make([]*entity.BankTransfer, 0, len(mts))
	for _, mt := range mts {
		transfers = append(transfers, mapBankTransferToEntity(mt))
	}
	return transfers, nil
}

func (r *bankTransferRepositoryImpl) UpdateIfStatus(ctx context.Context, transfer *entity.BankTransfer, expected entity.BankTransferStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.BankTransfer{}).
		Where("id = ? AND status = ?", transfer.Id, string(expected)).
		Updates(map[string]interface{}{
			"status":      string(transfer.Status),
			"approved_at": transfer.ApprovedAt,
			"approved_by": transfer.ApprovedBy,
		})
	return tx.RowsAffected > 0, tx.Error
}

func mapBankTransferToEntity(mt *model.BankTransfer) *entity.BankTransfer {
	return &entity.BankTransfer{
		Id:                  mt.Id,
		PaymentId:           mt.PaymentId,
		DepositorName:       mt.DepositorName,
		ExpectedDepositDate: mt.ExpectedDepositDate,
		Status:              entity.BankTransferStatus(mt.Status),
		ApprovedAt:          mt.ApprovedAt,
		ApprovedBy:          mt.ApprovedBy,
		CreatedAt:           mt.CreatedAt,
		UpdatedAt:           mt.UpdatedAt,
	}
}
