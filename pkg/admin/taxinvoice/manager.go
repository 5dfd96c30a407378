// Package taxinvoice tracks business-purchase tax invoice requests. The
// engine only records status; document issuance happens in an external
// accounting system.
package taxinvoice

import (
	"context"
	"time"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger}
}

// Request files a tax invoice request for a completed purchase.
func (m *Manager) Request(ctx context.Context, uow unitofwork.UnitOfWork, purchaseId uuid.UUID, businessName, businessNumber string) (*entity.TaxInvoice, error) {
	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: purchaseId})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NotFound("purchase not found")
	}
	if purchase.Status != entity.PurchaseStatusCompleted {
		return nil, apperror.Conflict("tax invoice requires a completed purchase")
	}

	existing, err := uow.TaxInvoiceRepository().FindByPurchaseId(ctx, purchaseId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("tax invoice already requested for this purchase")
	}

	invoice := &entity.TaxInvoice{
		Id:             uuid.New(),
		PurchaseId:     purchaseId,
		BusinessName:   businessName,
		BusinessNumber: businessNumber,
		Status:         entity.TaxInvoiceStatusRequested,
	}
	if err := uow.TaxInvoiceRepository().Create(ctx, invoice); err != nil {
		return nil, err
	}

	m.logger.Info("TAX_INVOICE", "Tax invoice requested", map[string]interface{}{
		"invoice_id":  invoice.Id.String(),
		"purchase_id": purchaseId.String(),
	})
	return invoice, nil
}

// MarkIssued records that the external accounting system issued the document.
func (m *Manager) MarkIssued(ctx context.Context, uow unitofwork.UnitOfWork, invoiceId uuid.UUID) (*entity.TaxInvoice, error) {
	invoice, err := uow.TaxInvoiceRepository().FindOne(ctx, specification.ByID{ID: invoiceId})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NotFound("tax invoice not found")
	}
	if invoice.Status == entity.TaxInvoiceStatusIssued {
		return nil, apperror.Conflict("tax invoice already issued")
	}

	now := time.Now()
	invoice.Status = entity.TaxInvoiceStatusIssued
	invoice.IssuedAt = &now
	if err := uow.TaxInvoiceRepository().Update(ctx, invoice); err != nil {
		return nil, err
	}

	m.logger.Info("TAX_INVOICE", "Tax invoice issued", map[string]interface{}{
		"invoice_id": invoice.Id.String(),
	})
	return invoice, nil
}

// GetAll retrieves paginated invoice requests with optional status filter.
func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.TaxInvoice, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: (page - 1) * limit})
	specs = append(specs, specification.OrderBy{Field: "requested_at", Desc: true})

	return uow.TaxInvoiceRepository().FindAll(ctx, specs...)
}
