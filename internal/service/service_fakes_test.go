package service

import (
	"context"

	"course-platform-be/internal/dto"
	"course-platform-be/internal/entity"
	"course-platform-be/internal/repository/contract"
	"course-platform-be/internal/repository/specification"
	"course-platform-be/internal/repository/unitofwork"
	"course-platform-be/pkg/tosspay"

	"github.com/google/uuid"
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

type nopMailQueue struct{}

func (nopMailQueue) Enqueue(context.Context, dto.EmailMessage) {}

type fakeGateway struct {
	confirmCalls int
}

func (f *fakeGateway) Confirm(ctx context.Context, paymentKey, orderId string, amount int) (*tosspay.ConfirmResult, error) {
	f.confirmCalls++
	return &tosspay.ConfirmResult{PaymentKey: paymentKey, OrderId: orderId}, nil
}

func (f *fakeGateway) Cancel(ctx context.Context, paymentKey, cancelReason string) (*tosspay.CancelResult, error) {
	return &tosspay.CancelResult{}, nil
}

// memStore is the shared backing state for all repository fakes, standing in
// for the database across a test's service calls.
type memStore struct {
	courses     []*entity.Course
	users       []*entity.User
	purchases   []*entity.Purchase
	payments    []*entity.Payment
	transfers   []*entity.BankTransfer
	enrollments []*entity.Enrollment
	receipts    []*entity.Receipt
	refunds     []*entity.Refund

	videosPerCourse int64
	completedVideos int64
}

func idFromSpecs(specs []specification.Specification) (uuid.UUID, bool) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return byId.ID, true
		}
	}
	return uuid.Nil, false
}

type memCourseRepo struct{ store *memStore }

func (r memCourseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	id, hasId := idFromSpecs(specs)
	for _, c := range r.store.courses {
		if !hasId || c.Id == id {
			return c, nil
		}
	}
	return nil, nil
}
func (r memCourseRepo) FindAllPublished(ctx context.Context) ([]*entity.Course, error) {
	var out []*entity.Course
	for _, c := range r.store.courses {
		if c.IsPublished {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r memCourseRepo) CountVideos(ctx context.Context, courseId uuid.UUID) (int64, error) {
	return r.store.videosPerCourse, nil
}

type memUserRepo struct{ store *memStore }

func (r memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	id, hasId := idFromSpecs(specs)
	for _, u := range r.store.users {
		if !hasId || u.Id == id {
			return u, nil
		}
	}
	return nil, nil
}

type memPurchaseRepo struct{ store *memStore }

func (r memPurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	r.store.purchases = append(r.store.purchases, p)
	return nil
}
func (r memPurchaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Purchase, error) {
	id, hasId := idFromSpecs(specs)
	for _, p := range r.store.purchases {
		if !hasId || p.Id == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r memPurchaseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	return r.store.purchases, nil
}
func (r memPurchaseRepo) FindAllDetailed(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	return r.store.purchases, nil
}

// DeletePending mirrors the production contract: the stale purchase goes
// together with its payment and bank-transfer rows.
func (r memPurchaseRepo) DeletePending(ctx context.Context, userId, courseId uuid.UUID) error {
	keptPurchases := r.store.purchases[:0]
	for _, p := range r.store.purchases {
		if p.UserId == userId && p.CourseId == courseId && p.Status == entity.PurchaseStatusPending {
			keptPayments := r.store.payments[:0]
			for _, pay := range r.store.payments {
				if pay.PurchaseId == p.Id {
					keptTransfers := r.store.transfers[:0]
					for _, tr := range r.store.transfers {
						if tr.PaymentId != pay.Id {
							keptTransfers = append(keptTransfers, tr)
						}
					}
					r.store.transfers = keptTransfers
					continue
				}
				keptPayments = append(keptPayments, pay)
			}
			r.store.payments = keptPayments
			continue
		}
		keptPurchases = append(keptPurchases, p)
	}
	r.store.purchases = keptPurchases
	return nil
}
func (r memPurchaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PurchaseStatus) error {
	for _, p := range r.store.purchases {
		if p.Id == id {
			p.Status = status
		}
	}
	return nil
}

type memPaymentRepo struct{ store *memStore }

func (r memPaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.store.payments = append(r.store.payments, p)
	return nil
}
func (r memPaymentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	id, hasId := idFromSpecs(specs)
	for _, p := range r.store.payments {
		if !hasId || p.Id == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r memPaymentRepo) FindByOrderId(ctx context.Context, orderId string) (*entity.Payment, error) {
	for _, p := range r.store.payments {
		if p.OrderId == orderId {
			return p, nil
		}
	}
	return nil, nil
}
func (r memPaymentRepo) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.store.payments {
		if p.PurchaseId == purchaseId {
			return p, nil
		}
	}
	return nil, nil
}
func (r memPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	for i, p := range r.store.payments {
		if p.Id == payment.Id {
			r.store.payments[i] = payment
		}
	}
	return nil
}

type memBankTransferRepo struct{ store *memStore }

func (r memBankTransferRepo) Create(ctx context.Context, t *entity.BankTransfer) error {
	r.store.transfers = append(r.store.transfers, t)
	return nil
}
func (r memBankTransferRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BankTransfer, error) {
	id, hasId := idFromSpecs(specs)
	for _, t := range r.store.transfers {
		if !hasId || t.Id == id {
			return t, nil
		}
	}
	return nil, nil
}
func (r memBankTransferRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BankTransfer, error) {
	return r.store.transfers, nil
}
func (r memBankTransferRepo) UpdateIfStatus(ctx context.Context, transfer *entity.BankTransfer, expected entity.BankTransferStatus) (bool, error) {
	for _, t := range r.store.transfers {
		if t.Id == transfer.Id && t.Status == expected {
			t.Status = transfer.Status
			t.ApprovedAt = transfer.ApprovedAt
			t.ApprovedBy = transfer.ApprovedBy
			return true, nil
		}
	}
	return false, nil
}

type memEnrollmentRepo struct{ store *memStore }

func (r memEnrollmentRepo) Create(ctx context.Context, e *entity.Enrollment) error {
	for _, existing := range r.store.enrollments {
		if existing.UserId == e.UserId && existing.CourseId == e.CourseId {
			return nil
		}
	}
	r.store.enrollments = append(r.store.enrollments, e)
	return nil
}
func (r memEnrollmentRepo) FindByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) (*entity.Enrollment, error) {
	for _, e := range r.store.enrollments {
		if e.UserId == userId && e.CourseId == courseId {
			return e, nil
		}
	}
	return nil, nil
}
func (r memEnrollmentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Enrollment, error) {
	return r.store.enrollments, nil
}
func (r memEnrollmentRepo) DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error {
	kept := r.store.enrollments[:0]
	for _, e := range r.store.enrollments {
		if e.UserId != userId || e.CourseId != courseId {
			kept = append(kept, e)
		}
	}
	r.store.enrollments = kept
	return nil
}

type memReceiptRepo struct{ store *memStore }

func (r memReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) (bool, error) {
	for _, existing := range r.store.receipts {
		if existing.PurchaseId == receipt.PurchaseId {
			return false, nil
		}
	}
	r.store.receipts = append(r.store.receipts, receipt)
	return true, nil
}
func (r memReceiptRepo) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Receipt, error) {
	for _, receipt := range r.store.receipts {
		if receipt.PurchaseId == purchaseId {
			return receipt, nil
		}
	}
	return nil, nil
}

type memRefundRepo struct{ store *memStore }

func (r memRefundRepo) Create(ctx context.Context, refund *entity.Refund) error {
	r.store.refunds = append(r.store.refunds, refund)
	return nil
}
func (r memRefundRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Refund, error) {
	id, hasId := idFromSpecs(specs)
	for _, ref := range r.store.refunds {
		if !hasId || ref.Id == id {
			return ref, nil
		}
	}
	return nil, nil
}
func (r memRefundRepo) FindByPurchaseId(ctx context.Context, purchaseId uuid.UUID) (*entity.Refund, error) {
	for _, ref := range r.store.refunds {
		if ref.PurchaseId == purchaseId {
			return ref, nil
		}
	}
	return nil, nil
}
func (r memRefundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Refund, error) {
	return r.store.refunds, nil
}
func (r memRefundRepo) UpdateIfStatus(ctx context.Context, refund *entity.Refund, expected entity.RefundStatus) (bool, error) {
	for _, ref := range r.store.refunds {
		if ref.Id == refund.Id && ref.Status == expected {
			ref.Status = refund.Status
			ref.RejectReason = refund.RejectReason
			ref.ProcessedAt = refund.ProcessedAt
			return true, nil
		}
	}
	return false, nil
}

type memProgressRepo struct{ store *memStore }

func (r memProgressRepo) CountCompleted(ctx context.Context, userId, courseId uuid.UUID) (int64, error) {
	return r.store.completedVideos, nil
}
func (r memProgressRepo) DeleteByUserAndCourse(ctx context.Context, userId, courseId uuid.UUID) error {
	return nil
}

type memUnitOfWork struct{ store *memStore }

func (u *memUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memUnitOfWork) Commit() error                   { return nil }
func (u *memUnitOfWork) Rollback() error                 { return nil }

func (u *memUnitOfWork) UserRepository() contract.UserRepository     { return memUserRepo{u.store} }
func (u *memUnitOfWork) CourseRepository() contract.CourseRepository { return memCourseRepo{u.store} }
func (u *memUnitOfWork) PurchaseRepository() contract.PurchaseRepository {
	return memPurchaseRepo{u.store}
}
func (u *memUnitOfWork) PaymentRepository() contract.PaymentRepository {
	return memPaymentRepo{u.store}
}
func (u *memUnitOfWork) BankTransferRepository() contract.BankTransferRepository {
	return memBankTransferRepo{u.store}
}
func (u *memUnitOfWork) CouponRepository() contract.CouponRepository { return nil }
func (u *memUnitOfWork) EnrollmentRepository() contract.EnrollmentRepository {
	return memEnrollmentRepo{u.store}
}
func (u *memUnitOfWork) ReceiptRepository() contract.ReceiptRepository {
	return memReceiptRepo{u.store}
}
func (u *memUnitOfWork) RefundRepository() contract.RefundRepository { return memRefundRepo{u.store} }
func (u *memUnitOfWork) ProgressRepository() contract.ProgressRepository {
	return memProgressRepo{u.store}
}
func (u *memUnitOfWork) TaxInvoiceRepository() contract.TaxInvoiceRepository { return nil }

var _ unitofwork.UnitOfWork = (*memUnitOfWork)(nil)

type memFactory struct{ store *memStore }

func (f memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUnitOfWork{store: f.store}
}
