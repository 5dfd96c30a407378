package refund

import (
	"context"
	"testing"
	"time"

	"course-platform-be/internal/entity"
	"course-platform-be/internal/pkg/apperror"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"
	"course-platform-be/pkg/tosspay"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishPurchaseCompleted(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, int, string) {
}
func (nopPublisher) PublishRefundRequested(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, int) {}
func (nopPublisher) PublishRefundApproved(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, int)  {}
func (nopPublisher) PublishRefundRejected(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, string) {
}
func (nopPublisher) PublishBankTransferApproved(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) {}

// fakeGateway counts cancel calls so tests can prove the gateway was never
// reached for payments past the cancellation window.
type fakeGateway struct {
	cancelCalls int
}

func (f *fakeGateway) Confirm(ctx context.Context, paymentKey, orderId string, amount int) (*tosspay.ConfirmResult, error) {
	return &tosspay.ConfirmResult{PaymentKey: paymentKey, OrderId: orderId}, nil
}

func (f *fakeGateway) Cancel(ctx context.Context, paymentKey, cancelReason string) (*tosspay.CancelResult, error) {
	f.cancelCalls++
	return &tosspay.CancelResult{}, nil
}

// fakeRefundRepo holds one refund. When staleRead is set, FindOne reports a
// PENDING copy while the stored row has already been decided, modelling a
// concurrent admin committing between the read and the transition.
type fakeRefundRepo struct {
	stored    *entity.Refund
	staleRead bool
}

func (f *fakeRefundRepo) Create(ctx context.Context, r *entity.Refund) error { return nil }
func (f *fakeRefundRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Refund, error) {
	if f.stored == nil {
		return nil, nil
	}
	snapshot := *f.stored
	if f.staleRead {
		snapshot.Status = entity.RefundStatusPending
	}
	return &snapshot, nil
}
func (f *fakeRefundRepo) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Refund, error) {
	return f.FindOne(ctx)
}
func (f *fakeRefundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Refund, error) {
	return nil, nil
}
func (f *fakeRefundRepo) UpdateIfStatus(ctx context.Context, r *entity.Refund, expected entity.RefundStatus) (bool, error) {
	if f.stored == nil || f.stored.Status != expected {
		return false, nil
	}
	f.stored.Status = r.Status
	f.stored.RejectReason = r.RejectReason
	f.stored.ProcessedAt = r.ProcessedAt
	return true, nil
}

type fakePurchaseRepo struct {
	stored *entity.Purchase
}

func (f *fakePurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error { return nil }
func (f *fakePurchaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Purchase, error) {
	return f.stored, nil
}
func (f *fakePurchaseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) FindAllDetailed(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) DeletePending(ctx context.Context, userId, courseId uuid.UUID) error {
	return nil
}
func (f *fakePurchaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PurchaseStatus) error {
	if f.stored != nil && f.stored.Id == id {
		f.stored.Status = status
	}
	return nil
}

type fakePaymentRepo struct {
	stored *entity.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *entity.Payment) error { return nil }
func (f *fakePaymentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	return f.stored, nil
}
func (f *fakePaymentRepo) FindByOrderId(ctx context.Context, orderId string) (*entity.Payment, error) {
	return f.stored, nil
}
func (f *fakePaymentRepo) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Payment, error) {
	return f.stored, nil
}
func (f *fakePaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	f.stored = p
	return nil
}

type fakeEnrollmentRepo struct{}

func (fakeEnrollmentRepo) Create(ctx context.Context, e *entity.Enrollment) error { return nil }
func (fakeEnrollmentRepo) FindByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.Enrollment, error) {
	return nil, nil
}
func (fakeEnrollmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error) {
	return nil, nil
}
func (fakeEnrollmentRepo) DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error {
	return nil
}

type fakeProgressRepo struct{}

func (fakeProgressRepo) CountCompleted(ctx context.Context, userId, courseId uuid.UUID) (int64, error) {
	return 0, nil
}
func (fakeProgressRepo) DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error {
	return nil
}

type fakeUnitOfWork struct {
	refunds   *fakeRefundRepo
	purchases *fakePurchaseRepo
	payments  *fakePaymentRepo

	commits   int
	rollbacks int
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error {
	f.commits++
	return nil
}
func (f *fakeUnitOfWork) Rollback() error {
	f.rollbacks++
	return nil
}

func (f *fakeUnitOfWork) UserRepository() contract.UserRepository                 { return nil }
func (f *fakeUnitOfWork) CourseRepository() contract.CourseRepository             { return nil }
func (f *fakeUnitOfWork) PurchaseRepository() contract.PurchaseRepository         { return f.purchases }
func (f *fakeUnitOfWork) PaymentRepository() contract.PaymentRepository           { return f.payments }
func (f *fakeUnitOfWork) BankTransferRepository() contract.BankTransferRepository { return nil }
func (f *fakeUnitOfWork) CouponRepository() contract.CouponRepository             { return nil }
func (f *fakeUnitOfWork) EnrollmentRepository() contract.EnrollmentRepository {
	return fakeEnrollmentRepo{}
}
func (f *fakeUnitOfWork) ReceiptRepository() contract.ReceiptRepository       { return nil }
func (f *fakeUnitOfWork) RefundRepository() contract.RefundRepository         { return f.refunds }
func (f *fakeUnitOfWork) ProgressRepository() contract.ProgressRepository     { return fakeProgressRepo{} }
func (f *fakeUnitOfWork) TaxInvoiceRepository() contract.TaxInvoiceRepository { return nil }

var _ unitofwork.UnitOfWork = (*fakeUnitOfWork)(nil)

func newApprovalFixture(paidAt time.Time) (*fakeUnitOfWork, *fakeGateway, *Processor) {
	purchaseId := uuid.New()
	paymentKey := "tosskey-0001"

	uow := &fakeUnitOfWork{
		refunds: &fakeRefundRepo{stored: &entity.Refund{
			Id:           uuid.New(),
			PurchaseId:   purchaseId,
			Reason:       "changed my mind",
			RefundAmount: 90000,
			Status:       entity.RefundStatusPending,
		}},
		purchases: &fakePurchaseRepo{stored: &entity.Purchase{
			Id:       purchaseId,
			UserId:   uuid.New(),
			CourseId: uuid.New(),
			Amount:   90000,
			Status:   entity.PurchaseStatusCompleted,
		}},
		payments: &fakePaymentRepo{stored: &entity.Payment{
			Id:         uuid.New(),
			PurchaseId: purchaseId,
			Method:     entity.PaymentMethodCard,
			Status:     entity.PaymentStatusCompleted,
			PaymentKey: &paymentKey,
			PaidAt:     &paidAt,
		}},
	}
	gateway := &fakeGateway{}
	processor := NewProcessor(nopLogger{}, gateway, nopPublisher{})
	return uow, gateway, processor
}

func TestCanCancelViaGateway(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		paidAt time.Time
		want   bool
	}{
		{"paid yesterday", now.Add(-24 * time.Hour), true},
		{"paid 365 days ago", now.Add(-365 * 24 * time.Hour), true},
		{"paid exactly at cutoff", now.Add(-ManualRefundCutoff), true},
		{"paid one hour past cutoff", now.Add(-ManualRefundCutoff - time.Hour), false},
		{"paid two years ago", now.Add(-2 * 365 * 24 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanCancelViaGateway(tc.paidAt, now))
		})
	}
}

func TestApprovePastCutoffNeverCallsGateway(t *testing.T) {
	paidAt := time.Now().Add(-400 * 24 * time.Hour)
	uow, gateway, processor := newApprovalFixture(paidAt)

	_, err := processor.Approve(context.Background(), uow, uow.refunds.stored.Id)
	require.Error(t, err)

	appErr := apperror.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.KindManualIntervention, appErr.Kind)
	assert.Equal(t, "tosskey-0001", appErr.Details["payment_key"])
	assert.Equal(t, 90000, appErr.Details["refund_amount"])

	// No money moved and the request stays open for finance to settle.
	assert.Equal(t, 0, gateway.cancelCalls)
	assert.Equal(t, entity.RefundStatusPending, uow.refunds.stored.Status)
	assert.Equal(t, 0, uow.commits)
}

func TestApproveConflictsWhenTransitionAlreadyWon(t *testing.T) {
	paidAt := time.Now().Add(-24 * time.Hour)
	uow, _, processor := newApprovalFixture(paidAt)

	// Another admin's approval committed after our read; the conditional
	// transition must see zero rows and surface a conflict.
	done := time.Now()
	uow.refunds.stored.Status = entity.RefundStatusCompleted
	uow.refunds.stored.ProcessedAt = &done
	uow.refunds.staleRead = true

	_, err := processor.Approve(context.Background(), uow, uow.refunds.stored.Id)
	require.Error(t, err)

	appErr := apperror.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, 0, uow.commits)
	assert.Equal(t, 1, uow.rollbacks)
}

func TestRejectConflictsWhenTransitionAlreadyWon(t *testing.T) {
	paidAt := time.Now().Add(-24 * time.Hour)
	uow, _, processor := newApprovalFixture(paidAt)

	uow.refunds.stored.Status = entity.RefundStatusRejected
	uow.refunds.staleRead = true

	_, err := processor.Reject(context.Background(), uow, uow.refunds.stored.Id, "duplicate request")
	require.Error(t, err)

	appErr := apperror.From(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, entity.RefundStatusRejected, uow.refunds.stored.Status)
}
