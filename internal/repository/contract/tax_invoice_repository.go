package contract

import (
	"context"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TaxInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.TaxInvoice) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TaxInvoice, error)
	FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.TaxInvoice, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TaxInvoice, error)
	Update(ctx context.Context, invoice *entity.TaxInvoice) error
}
