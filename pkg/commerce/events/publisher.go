// Package events publishes the engine's domain events. Downstream consumers
// (analytics, CRM sync) subscribe on the NATS side; the engine only emits.
package events

import (
	"context"
	"time"

	"course-platform-be/internal/pkg/logger"
	pkgEvents "course-platform-be/pkg/events"
	pkgNats "course-platform-be/pkg/nats"

	"github.com/google/uuid"
)

type Publisher interface {
	PublishPurchaseCompleted(ctx context.Context, purchaseId, userId, courseId uuid.UUID, amount int, method string)
	PublishRefundRequested(ctx context.Context, refundId, purchaseId, userId uuid.UUID, amount int)
	PublishRefundApproved(ctx context.Context, refundId, purchaseId, userId uuid.UUID, amount int)
	PublishRefundRejected(ctx context.Context, refundId, purchaseId, userId uuid.UUID, reason string)
	PublishBankTransferApproved(ctx context.Context, transferId, purchaseId uuid.UUID, approvedBy uuid.UUID)
}

// NatsPublisher implements Publisher using NATS. A nil inner publisher
// degrades to a no-op so the engine runs without a bus in development.
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}
	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishPurchaseCompleted(ctx context.Context, purchaseId, userId, courseId uuid.UUID, amount int, method string) {
	p.publish(ctx, "PURCHASE_COMPLETED", map[string]interface{}{
		"purchase_id": purchaseId.String(),
		"user_id":     userId.String(),
		"course_id":   courseId.String(),
		"amount":      amount,
		"method":      method,
	})
}

func (p *NatsPublisher) PublishRefundRequested(ctx context.Context, refundId, purchaseId, userId uuid.UUID, amount int) {
	p.publish(ctx, "REFUND_REQUESTED", map[string]interface{}{
		"refund_id":   refundId.String(),
		"purchase_id": purchaseId.String(),
		"user_id":     userId.String(),
		"amount":      amount,
	})
}

func (p *NatsPublisher) PublishRefundApproved(ctx context.Context, refundId, purchaseId, userId uuid.UUID, amount int) {
	p.publish(ctx, "REFUND_APPROVED", map[string]interface{}{
		"refund_id":   refundId.String(),
		"purchase_id": purchaseId.String(),
		"user_id":     userId.String(),
		"amount":      amount,
	})
}

func (p *NatsPublisher) PublishRefundRejected(ctx context.Context, refundId, purchaseId, userId uuid.UUID, reason string) {
	p.publish(ctx, "REFUND_REJECTED", map[string]interface{}{
		"refund_id":   refundId.String(),
		"purchase_id": purchaseId.String(),
		"user_id":     userId.String(),
		"reason":      reason,
	})
}

func (p *NatsPublisher) PublishBankTransferApproved(ctx context.Context, transferId, purchaseId uuid.UUID, approvedBy uuid.UUID) {
	p.publish(ctx, "BANK_TRANSFER_APPROVED", map[string]interface{}{
		"transfer_id": transferId.String(),
		"purchase_id": purchaseId.String(),
		"approved_by": approvedBy.String(),
	})
}
