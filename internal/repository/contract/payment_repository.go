package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindByOrderId(ctx context.Context, orderId string) (*entity.Payment, error)
	FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Payment, error)
	// Update persists status, payment key, paid-at and gateway payload.
	Update(ctx context.Context, payment *entity.Payment) error
}
