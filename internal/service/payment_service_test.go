package service

import (
	"context"
	"testing"
	"time"

	"course-platform-be/internal/config"
	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/pkg/checkout"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture() (*memStore, IPaymentService, *fakeGateway) {
	store := &memStore{
		courses: []*entity.Course{{
			Id:          uuid.New(),
			Title:       "Go Backend Bootcamp",
			Price:       99000,
			IsPublished: true,
		}},
		users: []*entity.User{{
			Id:    uuid.New(),
			Email: "student@example.com",
			Name:  "Test Student",
		}},
		videosPerCourse: 10,
	}
	gateway := &fakeGateway{}
	svc := NewPaymentService(
		memFactory{store},
		gateway,
		checkout.NewCompleter(nopLogger{}),
		nopPublisher{},
		nopMailQueue{},
		nil,
		config.DepositConfig{BankName: "KB", AccountNumber: "123-456", AccountHolder: "Platform", DeadlineDays: 3},
		nopLogger{},
	)
	return store, svc, gateway
}

func cardRequest(courseId uuid.UUID) *dto.RequestCardPaymentRequest {
	return &dto.RequestCardPaymentRequest{
		CourseId:   courseId,
		BuyerName:  "Test Student",
		BuyerEmail: "student@example.com",
		BuyerPhone: "010-1234-5678",
	}
}

func TestRequestCardPaymentSupersedesStaleAttempt(t *testing.T) {
	store, svc, _ := newPaymentFixture()
	userId := store.users[0].Id
	courseId := store.courses[0].Id

	first, err := svc.RequestCardPayment(context.Background(), userId, cardRequest(courseId))
	require.NoError(t, err)

	// The buyer abandons the widget and starts over. The first attempt's
	// purchase AND payment rows must be gone, not just the purchase.
	second, err := svc.RequestCardPayment(context.Background(), userId, cardRequest(courseId))
	require.NoError(t, err)
	require.NotEqual(t, first.PurchaseId, second.PurchaseId)

	require.Len(t, store.purchases, 1)
	require.Len(t, store.payments, 1)
	assert.Equal(t, second.PurchaseId, store.purchases[0].Id)
	assert.Equal(t, second.PurchaseId, store.payments[0].PurchaseId)
	assert.Equal(t, second.OrderId, store.payments[0].OrderId)
	assert.Equal(t, entity.PurchaseStatusPending, store.purchases[0].Status)

	// The stale order id no longer resolves to anything payable.
	stale, err := memPaymentRepo{store}.FindByOrderId(context.Background(), first.OrderId)
	require.NoError(t, err)
	assert.Nil(t, stale)
}

func TestRequestCardPaymentClearsAbandonedBankTransfer(t *testing.T) {
	store, svc, _ := newPaymentFixture()
	userId := store.users[0].Id
	courseId := store.courses[0].Id

	_, err := svc.RequestBankTransfer(context.Background(), userId, &dto.RequestBankTransferRequest{
		CourseId:            courseId,
		BuyerName:           "Test Student",
		BuyerEmail:          "student@example.com",
		BuyerPhone:          "010-1234-5678",
		DepositorName:       "Test Student",
		ExpectedDepositDate: time.Now().AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	require.Len(t, store.transfers, 1)

	// Switching to card abandons the deposit claim; its whole row chain
	// must disappear with the stale purchase.
	res, err := svc.RequestCardPayment(context.Background(), userId, cardRequest(courseId))
	require.NoError(t, err)

	assert.Len(t, store.purchases, 1)
	assert.Len(t, store.payments, 1)
	assert.Empty(t, store.transfers)
	assert.Equal(t, res.PurchaseId, store.purchases[0].Id)
}

func TestRequestCardPaymentRecordsBuyerSnapshot(t *testing.T) {
	store, svc, _ := newPaymentFixture()
	userId := store.users[0].Id

	_, err := svc.RequestCardPayment(context.Background(), userId, cardRequest(store.courses[0].Id))
	require.NoError(t, err)

	require.Len(t, store.purchases, 1)
	assert.Equal(t, "Test Student", store.purchases[0].BuyerName)
	assert.Equal(t, "student@example.com", store.purchases[0].BuyerEmail)
	assert.Equal(t, "010-1234-5678", store.purchases[0].BuyerPhone)
}

func TestConfirmPaymentReturnsCourseDetails(t *testing.T) {
	store, svc, gateway := newPaymentFixture()
	userId := store.users[0].Id
	courseId := store.courses[0].Id

	requested, err := svc.RequestCardPayment(context.Background(), userId, cardRequest(courseId))
	require.NoError(t, err)

	res, err := svc.ConfirmPayment(context.Background(), userId, &dto.ConfirmPaymentRequest{
		PaymentKey: "tosskey-0002",
		OrderId:    requested.OrderId,
		Amount:     requested.Amount,
	})
	require.NoError(t, err)
	require.Equal(t, 1, gateway.confirmCalls)

	assert.Equal(t, courseId, res.CourseId)
	assert.Equal(t, "Go Backend Bootcamp", res.CourseName)
	assert.Equal(t, string(entity.PurchaseStatusCompleted), res.Status)
	assert.NotEmpty(t, res.ReceiptNumber)

	// Replaying the confirmation returns the same receipt and course info
	// without touching the gateway again.
	replay, err := svc.ConfirmPayment(context.Background(), userId, &dto.ConfirmPaymentRequest{
		PaymentKey: "tosskey-0002",
		OrderId:    requested.OrderId,
		Amount:     requested.Amount,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.confirmCalls)
	assert.Equal(t, res.ReceiptNumber, replay.ReceiptNumber)
	assert.Equal(t, courseId, replay.CourseId)
	assert.Equal(t, "Go Backend Bootcamp", replay.CourseName)
}
