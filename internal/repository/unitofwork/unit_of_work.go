package unitofwork

import (
	"context"

	"course-platform-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CourseRepository() contract.CourseRepository
	PurchaseRepository() contract.PurchaseRepository
	PaymentRepository() contract.PaymentRepository
	BankTransferRepository() contract.BankTransferRepository
	CouponRepository() contract.CouponRepository
	EnrollmentRepository() contract.EnrollmentRepository
	ReceiptRepository() contract.ReceiptRepository
	RefundRepository() contract.RefundRepository
	ProgressRepository() contract.ProgressRepository
	TaxInvoiceRepository() contract.TaxInvoiceRepository
}
