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

type taxInvoiceRepositoryImpl struct {
	db *gorm.DB
}

func NewTaxInvoiceRepository(db *gorm.DB) contract.TaxInvoiceRepository {
	return &taxInvoiceRepositoryImpl{db: db}
}

func (r *taxInvoiceRepositoryImpl) Create(ctx context.Context, invoice *entity.TaxInvoice) error {
	return r.db.WithContext(ctx).Create(&model.TaxInvoice{
		Id:             invoice.Id,
		PurchaseId:     invoice.PurchaseId,
		BusinessName:   invoice.BusinessName,
		BusinessNumber: invoice.BusinessNumber,
		Status:         string(invoice.Status),
	}).Error
}

func (r *taxInvoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TaxInvoice, error) {
	var mi model.TaxInvoice
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mi).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapTaxInvoiceToEntity(&mi), nil
}

func (r *taxInvoiceRepositoryImpl) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.TaxInvoice, error) {
	var mi model.TaxInvoice
	if err := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseId).First(&mi).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapTaxInvoiceToEntity(&mi), nil
}

func (r *taxInvoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TaxInvoice, error) {
	var mis []*model.TaxInvoice
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&mis).Error; err != nil {
		return nil, err
	}
	invoices := make([]*entity.TaxInvoice, 0, len(mis))
	for _, mi := range mis {
		invoices = append(invoices, mapTaxInvoiceToEntity(mi))
	}
	return invoices, nil
}

func (r *taxInvoiceRepositoryImpl) Update(ctx context.Context, invoice *entity.TaxInvoice) error {
	return r.db.WithContext(ctx).Model(&model.TaxInvoice{}).
		Where("id = ?", invoice.Id).
		Updates(map[string]interface{}{
			"status":    string(invoice.Status),
			"issued_at": invoice.IssuedAt,
		}).Error
}

func mapTaxInvoiceToEntity(mi *model.TaxInvoice) *entity.TaxInvoice {
	return &entity.TaxInvoice{
		Id:             mi.Id,
		PurchaseId:     mi.PurchaseId,
		BusinessName:   mi.BusinessName,
		BusinessNumber: mi.BusinessNumber,
		Status:         entity.TaxInvoiceStatus(mi.Status),
		RequestedAt:    mi.RequestedAt,
		IssuedAt:       mi.IssuedAt,
	}
}
