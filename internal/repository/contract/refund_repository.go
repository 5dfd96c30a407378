package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RefundRepository interface {
	Create(ctx context.Context, refund *entity.Refund) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Refund, error)
	FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Refund, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Refund, error)
	// UpdateIfStatus writes the refund's status, reject reason and
	// processed-at timestamp only while the stored row still carries the
	// expected status. Returns false when another transition won the race.
	UpdateIfStatus(ctx context.Context, refund *entity.Refund, expected entity.RefundStatus) (bool, error)
}
