// Package refund orchestrates the admin side of the refund workflow:
// gateway cancellation, the local unwind transaction, and rejection.
package refund

import (
	"context"
	"time"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"
	commerceEvents "course-platform-be/pkg/commerce/events"
	"course-platform-be/pkg/tosspay"

	"github.com/google/uuid"
)

// ManualRefundCutoff is how long after payment a card refund can still go
// through the gateway. Older payments need a manual wire from finance.
const ManualRefundCutoff = 366 * 24 * time.Hour

// ApproveResult contains approval operation results.
type ApproveResult struct {
	RefundId       uuid.UUID
	RefundedAmount int
	ProcessedAt    time.Time
}

// RejectResult contains rejection operation results.
type RejectResult struct {
	RefundId    uuid.UUID
	ProcessedAt time.Time
}

// Processor handles refund approval/rejection workflow.
type Processor struct {
	logger    logger.ILogger
	gateway   tosspay.IClient
	publisher commerceEvents.Publisher
}

func NewProcessor(logger logger.ILogger, gateway tosspay.IClient, publisher commerceEvents.Publisher) *Processor {
	return &Processor{
		logger:    logger,
		gateway:   gateway,
		publisher: publisher,
	}
}

// GetAll retrieves paginated refund requests with optional status filter.
func (p *Processor) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.Refund, error) {
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
	specs = append(specs, specification.OrderBy{Field: "requested_at", Desc: true})

	return uow.RefundRepository().FindAll(ctx, specs...)
}

// CanCancelViaGateway reports whether a card payment is still inside the
// gateway's cancellation window at the given instant.
func CanCancelViaGateway(paidAt time.Time, now time.Time) bool {
	return now.Sub(paidAt) <= ManualRefundCutoff
}

// Approve executes an approved refund end to end.
//
// The gateway cancel runs BEFORE the local transaction: money movement is the
// step that cannot be rolled back, so it goes first and a crash between the
// two leaves a PENDING refund that a retry converges. Card payments older
// than the cutoff never reach the gateway; the caller gets a
// manual-intervention error carrying wire instructions and the refund stays
// PENDING until finance settles it out of band.
func (p *Processor) Approve(ctx context.Context, uow unitofwork.UnitOfWork, refundId uuid.UUID) (*ApproveResult, error) {
	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("refund request not found")
	}
	if refund.IsTerminal() {
		return nil, apperror.Conflict("refund already processed")
	}

	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: refund.PurchaseId})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NotFound("purchase not found for refund")
	}

	payment, err := uow.PaymentRepository().FindByPurchaseId(ctx, purchase.Id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NotFound("payment not found for refund")
	}

	if payment.Method == entity.PaymentMethodCard {
		if payment.PaymentKey == nil || payment.PaidAt == nil {
			return nil, apperror.Conflict("card payment has no gateway record")
		}
		if !CanCancelViaGateway(*payment.PaidAt, time.Now()) {
			return nil, apperror.ManualIntervention(
				"card payment is past the gateway cancellation window",
				map[string]interface{}{
					"refund_id":     refund.Id.String(),
					"payment_key":   *payment.PaymentKey,
					"paid_at":       payment.PaidAt.Format(time.RFC3339),
					"refund_amount": refund.RefundAmount,
					"instruction":   "process a manual wire transfer and settle this refund out of band",
				},
			)
		}
		if _, err := p.gateway.Cancel(ctx, *payment.PaymentKey, refund.Reason); err != nil {
			return nil, apperror.External("payment gateway cancellation failed", err)
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The PENDING check above is advisory; the conditional update is what
	// actually serializes concurrent approvals inside the transaction.
	now := time.Now()
	refund.Status = entity.RefundStatusCompleted
	refund.ProcessedAt = &now
	ok, err := uow.RefundRepository().UpdateIfStatus(ctx, refund, entity.RefundStatusPending)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("refund already processed")
	}

	if err := uow.PurchaseRepository().UpdateStatus(ctx, purchase.Id, entity.PurchaseStatusRefunded); err != nil {
		return nil, err
	}

	payment.Status = entity.PaymentStatusCanceled
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	if err := uow.EnrollmentRepository().DeleteByUserAndCourse(ctx, purchase.UserId, purchase.CourseId); err != nil {
		return nil, err
	}

	if err := uow.ProgressRepository().DeleteByUserAndCourse(ctx, purchase.UserId, purchase.CourseId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	p.logger.Info("ADMIN_REFUND", "Refund approved", map[string]interface{}{
		"refund_id":   refund.Id.String(),
		"purchase_id": purchase.Id.String(),
		"amount":      refund.RefundAmount,
		"method":      string(payment.Method),
	})
	p.publisher.PublishRefundApproved(ctx, refund.Id, purchase.Id, purchase.UserId, refund.RefundAmount)

	return &ApproveResult{
		RefundId:       refund.Id,
		RefundedAmount: refund.RefundAmount,
		ProcessedAt:    now,
	}, nil
}

// Reject declines a pending refund request.
func (p *Processor) Reject(ctx context.Context, uow unitofwork.UnitOfWork, refundId uuid.UUID, rejectReason string) (*RejectResult, error) {
	if rejectReason == "" {
		return nil, apperror.Validation("reject reason is required")
	}

	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("refund request not found")
	}
	if refund.Status != entity.RefundStatusPending {
		return nil, apperror.Conflict("refund already processed")
	}

	purchase, err := uow.PurchaseRepository().FindOne(ctx, specification.ByID{ID: refund.PurchaseId})
	if err != nil {
		return nil, err
	}

	// Single conditional statement, so no explicit transaction is needed;
	// a concurrent approve or reject makes this a zero-row update.
	now := time.Now()
	refund.Status = entity.RefundStatusRejected
	refund.RejectReason = &rejectReason
	refund.ProcessedAt = &now
	ok, err := uow.RefundRepository().UpdateIfStatus(ctx, refund, entity.RefundStatusPending)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Conflict("refund already processed")
	}

	p.logger.Info("ADMIN_REFUND", "Refund rejected", map[string]interface{}{
		"refund_id": refund.Id.String(),
		"reason":    rejectReason,
	})
	if purchase != nil {
		p.publisher.PublishRefundRejected(ctx, refund.Id, purchase.Id, purchase.UserId, rejectReason)
	}

	return &RejectResult{
		RefundId:    refund.Id,
		ProcessedAt: now,
	}, nil
}
