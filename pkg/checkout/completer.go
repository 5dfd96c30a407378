// Package checkout holds the purchase completion transaction shared by the
// card confirmation flow and the bank-transfer approval flow.
package checkout

import (
	"context"
	"fmt"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/logger"
	"course-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type Completer struct {
	log logger.ILogger
}

func NewCompleter(log logger.ILogger) *Completer {
	return &Completer{log: log}
}

// Complete finalizes a paid purchase inside the caller's transaction. The
// caller owns Begin/Commit/Rollback so approval flows can bundle their own
// writes into the same transaction.
//
// Every step is a guarded create backed by a unique index, so replaying a
// completion signal converges on the same end state: one enrollment, one
// receipt, at most one coupon redemption. A uniqueness conflict means the
// work was already done and is treated as success.
func (c *Completer) Complete(ctx context.Context, uow unitofwork.UnitOfWork, purchase *entity.Purchase) (*entity.Receipt, error) {
	if purchase.Status != entity.PurchaseStatusCompleted {
		if err := uow.PurchaseRepository().UpdateStatus(ctx, purchase.Id, entity.PurchaseStatusCompleted); err != nil {
			return nil, fmt.Errorf("marking purchase completed: %w", err)
		}
	}

	enrollment, err := uow.EnrollmentRepository().FindByUserAndCourse(ctx, purchase.UserId, purchase.CourseId)
	if err != nil {
		return nil, fmt.Errorf("looking up enrollment: %w", err)
	}
	if enrollment == nil {
		err = uow.EnrollmentRepository().Create(ctx, &entity.Enrollment{
			Id:       uuid.New(),
			UserId:   purchase.UserId,
			CourseId: purchase.CourseId,
		})
		if err != nil {
			return nil, fmt.Errorf("creating enrollment: %w", err)
		}
	}

	receipt, err := uow.ReceiptRepository().FindByPurchaseId(ctx, purchase.Id)
	if err != nil {
		return nil, fmt.Errorf("looking up receipt: %w", err)
	}
	if receipt == nil {
		receipt = &entity.Receipt{
			Id:            uuid.New(),
			PurchaseId:    purchase.Id,
			ReceiptNumber: NewReceiptNumber(),
			Amount:        purchase.Amount,
		}
		inserted, err := uow.ReceiptRepository().Create(ctx, receipt)
		if err != nil {
			return nil, fmt.Errorf("creating receipt: %w", err)
		}
		if !inserted {
			// Lost the race to another completion; return its receipt.
			receipt, err = uow.ReceiptRepository().FindByPurchaseId(ctx, purchase.Id)
			if err != nil {
				return nil, fmt.Errorf("looking up receipt after conflict: %w", err)
			}
			if receipt == nil {
				return nil, fmt.Errorf("receipt for purchase %s vanished after insert conflict", purchase.Id)
			}
		}
	}

	if purchase.Discount != nil {
		usage, err := uow.CouponRepository().FindUsageByPurchase(ctx, purchase.Id)
		if err != nil {
			return nil, fmt.Errorf("looking up coupon usage: %w", err)
		}
		if usage == nil {
			inserted, err := uow.CouponRepository().CreateUsage(ctx, &entity.CouponUsage{
				Id:             uuid.New(),
				CouponId:       purchase.Discount.CouponId,
				PurchaseId:     purchase.Id,
				UserId:         purchase.UserId,
				DiscountAmount: purchase.Discount.Amount,
			})
			if err != nil {
				return nil, fmt.Errorf("recording coupon usage: %w", err)
			}
			// Only the insert that actually landed bumps the counter, so a
			// replay can never redeem the coupon twice.
			if inserted {
				if err := uow.CouponRepository().IncrementUsage(ctx, purchase.Discount.CouponId); err != nil {
					return nil, fmt.Errorf("incrementing coupon usage count: %w", err)
				}
			}
		}
	}

	c.log.Info("checkout", "purchase completed", map[string]interface{}{
		"purchase_id": purchase.Id.String(),
		"receipt":     receipt.ReceiptNumber,
	})

	return receipt, nil
}
