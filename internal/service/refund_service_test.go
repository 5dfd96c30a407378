package service

import (
	"context"
	"testing"
	"time"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRefundFixture(method entity.PaymentMethod) (*memStore, IRefundService) {
	userId := uuid.New()
	courseId := uuid.New()
	purchaseId := uuid.New()
	paidAt := time.Now().Add(-24 * time.Hour)

	store := &memStore{
		courses: []*entity.Course{{Id: courseId, Title: "PostgreSQL Deep Dive", Price: 79000, IsPublished: true}},
		users:   []*entity.User{{Id: userId, Email: "student@example.com"}},
		purchases: []*entity.Purchase{{
			Id:        purchaseId,
			UserId:    userId,
			CourseId:  courseId,
			Amount:    79000,
			Status:    entity.PurchaseStatusCompleted,
			UpdatedAt: paidAt,
		}},
		payments: []*entity.Payment{{
			Id:         uuid.New(),
			PurchaseId: purchaseId,
			OrderId:    "ORDER_TEST_1",
			Method:     method,
			Status:     entity.PaymentStatusCompleted,
			PaidAt:     &paidAt,
		}},
		videosPerCourse: 10,
	}
	svc := NewRefundService(memFactory{store}, nopPublisher{}, nopLogger{})
	return store, svc
}

func TestRequestRefundRequiresAccountForBankTransfer(t *testing.T) {
	store, svc := newRefundFixture(entity.PaymentMethodBankTransfer)

	_, err := svc.RequestRefund(context.Background(), store.users[0].Id, &dto.CreateRefundRequest{
		PurchaseId: store.purchases[0].Id,
		Reason:     "course not as described",
	})
	require.Error(t, err)

	appErr := apperror.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)

	// The request must fail before any refund row exists.
	assert.Empty(t, store.refunds)
}

func TestRequestRefundAcceptsBankTransferWithAccount(t *testing.T) {
	store, svc := newRefundFixture(entity.PaymentMethodBankTransfer)

	res, err := svc.RequestRefund(context.Background(), store.users[0].Id, &dto.CreateRefundRequest{
		PurchaseId:    store.purchases[0].Id,
		Reason:        "course not as described",
		AccountBank:   "KB",
		AccountNumber: "110-222-333444",
		AccountHolder: "Test Student",
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", res.Status)
	require.Len(t, store.refunds, 1)
	require.NotNil(t, store.refunds[0].Account)
	assert.Equal(t, "KB", store.refunds[0].Account.Bank)
	assert.Equal(t, 79000, store.refunds[0].RefundAmount)
}

func TestRequestRefundCardNeedsNoAccount(t *testing.T) {
	store, svc := newRefundFixture(entity.PaymentMethodCard)

	_, err := svc.RequestRefund(context.Background(), store.users[0].Id, &dto.CreateRefundRequest{
		PurchaseId: store.purchases[0].Id,
		Reason:     "bought by mistake",
	})
	require.NoError(t, err)

	require.Len(t, store.refunds, 1)
	assert.Nil(t, store.refunds[0].Account)
}
