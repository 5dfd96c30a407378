// Package banktransfer handles the admin side of manual deposit payments.
package banktransfer

import (
	"context"
	"time"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"
	"course-platform-be/pkg/checkout"
	commerceEvents "course-platform-be/pkg/commerce/events"

	"github.com/google/uuid"
)

type ApproveResult struct {
	TransferId uuid.UUID
	PurchaseId uuid.UUID
	Receipt    *entity.Receipt
	ApprovedAt time.Time
}

// Approver confirms deposits and runs purchase completion in the same
// transaction as the approval, so a crash can never approve a transfer
// without granting access.
type Approver struct {
	logger    logger.ILogger
	completer *checkout.Completer
	publisher commerceEvents.Publisher
}

func NewApprover(logger logger.ILogger, completer *checkout.Completer, publisher commerceEvents.Publisher) *Approver {
	return &Approver{
		logger:    logger,
		completer: completer,
		publisher: publisher,
	}
}

// GetAll retrieves paginated bank transfers with optional status filter.
func (a *Approver) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.BankTransfer, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	return uow.BankTransferRepository().FindAll(ctx, specs...)
}

// Approve marks the deposit as received and completes the purchase.
func (a *Approver) Approve(ctx context.Context, uow unitofwork.UnitOfWork, transferId, adminId uuid.UUID) (*ApproveResult, error) {
	transfer, err := uow.BankTransferRepository().FindOne(ctx, specification.ByID{ID: transferId})
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, apperror.NotFound("bank transfer not found")
	}
	if transfer.IsTerminal() {
		return nil, apperror.Conflict("bank transfer already processed")
	}

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: transfer.PaymentId})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NotFound("payment not found for bank transfer")
	}

	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: payment.PurchaseId})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NotFound("purchase not found for bank transfer")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The terminal check above is advisory; the conditional update is what
	// serializes concurrent decisions inside the transaction.
	now := time.Now()
	transfer.Status = entity.BankTransferStatusApproved
	transfer.ApprovedAt = &now
	transfer.ApprovedBy = &adminId
	ok, err := uow.BankTransferRepository().UpdateIfStatus(ctx, transfer, entity.BankTransferStatusPending)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("bank transfer already processed")
	}

	payment.Status = entity.PaymentStatusCompleted
	payment.PaidAt = &now
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	receipt, err := a.completer.Complete(ctx, uow, purchase)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	a.logger.Info("ADMIN_BANK_TRANSFER", "Bank transfer approved", map[string]interface{}{
		"transfer_id": transfer.Id.String(),
		"purchase_id": purchase.Id.String(),
		"approved_by": adminId.String(),
	})
	a.publisher.PublishBankTransferApproved(ctx, transfer.Id, purchase.Id, adminId)
	a.publisher.PublishPurchaseCompleted(ctx, purchase.Id, purchase.UserId, purchase.CourseId, purchase.Amount, string(entity.PaymentMethodBankTransfer))

	return &ApproveResult{
		TransferId: transfer.Id,
		PurchaseId: purchase.Id,
		Receipt:    receipt,
		ApprovedAt: now,
	}, nil
}

// Reject declines a pending deposit claim and cancels the purchase.
func (a *Approver) Reject(ctx context.Context, uow unitofwork.UnitOfWork, transferId uuid.UUID) error {
	transfer, err := uow.BankTransferRepository().FindOne(ctx, specification.ByID{ID: transferId})
	if err != nil {
		return err
	}
	if transfer == nil {
		return apperror.NotFound("bank transfer not found")
	}
	if transfer.IsTerminal() {
		return apperror.Conflict("bank transfer already processed")
	}

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: transfer.PaymentId})
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NotFound("payment not found for bank transfer")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	transfer.Status = entity.BankTransferStatusRejected
	ok, err := uow.BankTransferRepository().UpdateIfStatus(ctx, transfer, entity.BankTransferStatusPending)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Conflict("bank transfer already processed")
	}

	payment.Status = entity.PaymentStatusCanceled
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return err
	}

	if err := uow.PurchaseRepository().UpdateStatus(ctx, payment.PurchaseId, entity.PurchaseStatusCanceled); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	a.logger.Info("ADMIN_BANK_TRANSFER", "Bank transfer rejected", map[string]interface{}{
		"transfer_id": transfer.Id.String(),
	})
	return nil
}
