package contract

import (
	"context"

	"course-platform-be/internal/entity"

	"github.com/google/uuid"
)

type ReceiptRepository interface {
	// Create inserts the receipt unless one already exists for the
	// purchase; returns false when the unique index swallowed the insert.
	Create(ctx context.Context, receipt *entity.Receipt) (bool, error)
	FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Receipt, error)
}
