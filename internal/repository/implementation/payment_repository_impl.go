package implementation

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/model"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type paymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	mp := &model.Payment{
		Id:         payment.Id,
		PurchaseId: payment.PurchaseId,
		OrderId:    payment.OrderId,
		Method:     string(payment.Method),
		Status:     string(payment.Status),
		PaymentKey: payment.PaymentKey,
		PaidAt:     payment.PaidAt,
	}
	if payment.GatewayPayload != nil {
		mp.GatewayPayload = datatypes.JSON(payment.GatewayPayload)
	}
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *paymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var mp model.Payment
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
	return mapPaymentToEntity(&mp), nil
}

func (r *paymentRepositoryImpl) FindByOrderId(ctx context.Context, orderId string) (*entity.Payment, error) {
	var mp model.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderId).First(&mp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapPaymentToEntity(&mp), nil
}

func (r *paymentRepositoryImpl) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Payment, error) {
	var mp model.Payment
	if err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).First(&mp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapPaymentToEntity(&mp), nil
}

func (r *paymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	updates := map[string]interface{}{
		"status":      string(payment.Status),
		"payment_key": payment.PaymentKey,
		"paid_at":     payment.PaidAt,
	}
	if payment.GatewayPayload != nil {
		updates["gateway_payload"] = datatypes.JSON(payment.GatewayPayload)
	}
	return r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", payment.Id).
		Updates(updates).Error
}

func mapPaymentToEntity(mp *model.Payment) *entity.Payment {
	return &entity.Payment{
		Id:             mp.Id,
		PurchaseId:     mp.PurchaseId,
		OrderId:        mp.OrderId,
		Method:         entity.PaymentMethod(mp.Method),
		Status:         entity.PaymentStatus(mp.Status),
		PaymentKey:     mp.PaymentKey,
		PaidAt:         mp.PaidAt,
		GatewayPayload: []byte(mp.GatewayPayload),
		CreatedAt:      mp.CreatedAt,
		UpdatedAt:      mp.UpdatedAt,
	}
}
